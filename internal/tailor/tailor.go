package tailor

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/ai"
	"github.com/spigell/jobfit/internal/career"
	"github.com/spigell/jobfit/internal/jobs"
	"github.com/spigell/jobfit/internal/logger"
	"github.com/spigell/jobfit/internal/resume"
)

const writerSystemPrompt = "You are an expert resume writer for %s roles. Emphasise %s. Never invent experience, employers, dates or metrics the candidate does not already have."

const summaryPrompt = `Rewrite the professional summary below for the target job in 3-4 sentences.
Reflect only the candidate's existing experience, work in keywords from the job description and return only the summary text, ready to use without further editing.

Original summary: %s

Job title: %s
Company: %s
Job description: %s
Required skills: %s`

const experiencePrompt = `Rewrite the experience description below to emphasise its relevance to the target job.
Keep roughly the same length (about %d words) and return only the new description.

Role: %s at %s
Original description: %s

Job title: %s
Job description: %s
Required skills: %s`

// Tailor rewrites resume content for a target job.
type Tailor struct {
	gen        ai.Generator
	classifier *career.Classifier
	logger     *zap.Logger
}

// New returns a Tailor. A nil generator keeps the original wording and only
// merges skills.
func New(gen ai.Generator, log *zap.Logger) *Tailor {
	log = logger.ForComponent(log, "tailor")
	return &Tailor{
		gen:        gen,
		classifier: career.NewClassifier(gen, log),
		logger:     log,
	}
}

// TailorToJob rewrites the summary and the first MaxTailoredExperience
// experience descriptions in separate calls; each one that fails keeps the
// original text. Later experience entries are passed through unchanged.
func (t *Tailor) TailorToJob(ctx context.Context, r resume.Resume, job jobs.Job) Content {
	content := deterministic(r, job)
	if t.gen == nil {
		return content
	}

	path := t.classifier.Classify(ctx, career.ContextFromResume(r))
	system := writerPrompt(path)

	content.Summary = t.rewriteSummary(ctx, system, r, job)
	for i, exp := range r.Experience {
		if i >= MaxTailoredExperience {
			break
		}
		content.ExperienceImprovements[i].ImprovedDescription = t.rewriteExperience(ctx, system, exp, job)
	}

	return content
}

func (t *Tailor) rewriteSummary(ctx context.Context, system string, r resume.Resume, job jobs.Job) string {
	original := r.PersonalInfo.Summary

	reply, err := t.gen.Generate(ctx, ai.Request{
		System: system,
		Prompt: fmt.Sprintf(summaryPrompt, original, job.Title, job.Company, job.Description, strings.Join(job.Skills, ", ")),
		Format: ai.FormatText,
	})
	if err == nil {
		if summary := cleanReply(reply); summary != "" {
			return summary
		}
		err = ai.ErrEmptyResponse
	}

	t.logger.Warn("summary rewrite failed, keeping original", logger.Cause(string(ai.Classify(err))), zap.Error(err))
	return original
}

func (t *Tailor) rewriteExperience(ctx context.Context, system string, exp resume.ExperienceItem, job jobs.Job) string {
	original := exp.Description
	if strings.TrimSpace(original) == "" {
		return original
	}

	reply, err := t.gen.Generate(ctx, ai.Request{
		System: system,
		Prompt: fmt.Sprintf(experiencePrompt, len(strings.Fields(original)), exp.Title, exp.Company, original,
			job.Title, job.Description, strings.Join(job.Skills, ", ")),
		Format: ai.FormatText,
	})
	if err == nil {
		if improved := cleanReply(reply); improved != "" {
			return improved
		}
		err = ai.ErrEmptyResponse
	}

	t.logger.Warn("experience rewrite failed, keeping original",
		zap.String("experience_id", exp.ID),
		logger.Cause(string(ai.Classify(err))),
		zap.Error(err),
	)
	return original
}

// deterministic is the content produced without a model.
func deterministic(r resume.Resume, job jobs.Job) Content {
	improvements := make([]ExperienceImprovement, 0, len(r.Experience))
	for _, exp := range r.Experience {
		improvements = append(improvements, ExperienceImprovement{ID: exp.ID, ImprovedDescription: exp.Description})
	}

	return Content{
		Summary:                r.PersonalInfo.Summary,
		Skills:                 MergeSkills(r.SkillNames(), job.Skills),
		ExperienceImprovements: improvements,
	}
}

func writerPrompt(path career.Path) string {
	g := path.Guidance()
	return fmt.Sprintf(writerSystemPrompt, g.Name, g.Focus)
}

// cleanReply trims whitespace and wrapping quotes from a free-text reply.
func cleanReply(reply string) string {
	reply = strings.TrimSpace(reply)
	reply = strings.Trim(reply, "\"`")
	return strings.TrimSpace(reply)
}
