package tailor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/ai"
	"github.com/spigell/jobfit/internal/career"
	"github.com/spigell/jobfit/internal/jobs"
	"github.com/spigell/jobfit/internal/logger"
	"github.com/spigell/jobfit/internal/resume"
)

const enhancedPrompt = `Tailor the resume below to the target job.
Rewrite the professional summary in 3-4 sentences and rewrite the descriptions of the listed experience entries, keeping each about the same length.
Reflect only experience the candidate already has.

Respond with a JSON object:
{"summary": "...", "experience": [{"id": "...", "description": "..."}], "keywordsIncorporated": ["..."], "matchAnalysis": "..."}
where keywordsIncorporated lists the job keywords you worked in and matchAnalysis is a short assessment of how well the candidate fits.

Resume summary: %s
Experience entries: %s
Skills: %s

Job title: %s
Company: %s
Job description: %s
Required skills: %s`

type enhancedReply struct {
	Summary    string `json:"summary"`
	Experience []struct {
		ID          string `json:"id"`
		Description string `json:"description"`
	} `json:"experience"`
	KeywordsIncorporated []string `json:"keywordsIncorporated"`
	MatchAnalysis        string   `json:"matchAnalysis"`
}

// TailorToJobEnhanced asks for all rewrites plus the incorporated keywords and
// a match analysis in one JSON reply. When that call fails the result is built
// from the original text with a keyword-based analysis.
func (t *Tailor) TailorToJobEnhanced(ctx context.Context, r resume.Resume, job jobs.Job) Content {
	content := deterministic(r, job)
	keywords, analysis := keywordAnalysis(r, job)

	if t.gen == nil {
		content.KeywordsIncorporated = keywords
		content.MatchAnalysis = analysis
		return content
	}

	path := t.classifier.Classify(ctx, career.ContextFromResume(r))

	tailored := r.Experience
	if len(tailored) > MaxTailoredExperience {
		tailored = tailored[:MaxTailoredExperience]
	}
	experience, _ := json.Marshal(tailored)

	reply, err := t.gen.Generate(ctx, ai.Request{
		System: writerPrompt(path),
		Prompt: fmt.Sprintf(enhancedPrompt, r.PersonalInfo.Summary, experience, strings.Join(r.SkillNames(), ", "),
			job.Title, job.Company, job.Description, strings.Join(job.Skills, ", ")),
		Format: ai.FormatJSON,
	})

	var decoded enhancedReply
	if err == nil {
		decoded, err = ai.DecodeJSON[enhancedReply](reply, "summary")
	}
	if err != nil {
		t.logger.Warn("enhanced tailoring failed, keeping original content",
			logger.Cause(string(ai.Classify(err))),
			zap.Error(err),
		)
		content.KeywordsIncorporated = keywords
		content.MatchAnalysis = analysis
		return content
	}

	if summary := strings.TrimSpace(decoded.Summary); summary != "" {
		content.Summary = summary
	}

	improved := make(map[string]string, len(decoded.Experience))
	for _, item := range decoded.Experience {
		improved[item.ID] = strings.TrimSpace(item.Description)
	}
	for i := range content.ExperienceImprovements {
		if i >= MaxTailoredExperience {
			break
		}
		if desc := improved[content.ExperienceImprovements[i].ID]; desc != "" {
			content.ExperienceImprovements[i].ImprovedDescription = desc
		}
	}

	content.KeywordsIncorporated = nonEmpty(decoded.KeywordsIncorporated)
	if len(content.KeywordsIncorporated) == 0 {
		content.KeywordsIncorporated = keywords
	}
	content.MatchAnalysis = strings.TrimSpace(decoded.MatchAnalysis)
	if content.MatchAnalysis == "" {
		content.MatchAnalysis = analysis
	}

	return content
}

// keywordAnalysis lists the required job skills already present in the
// resume text and summarises the overlap.
func keywordAnalysis(r resume.Resume, job jobs.Job) ([]string, string) {
	var text strings.Builder
	text.WriteString(r.PersonalInfo.Summary)
	for _, exp := range r.Experience {
		text.WriteString(" " + exp.Title + " " + exp.Description)
	}
	text.WriteString(" " + strings.Join(r.SkillNames(), " "))
	haystack := strings.ToLower(text.String())

	found := make([]string, 0, len(job.Skills))
	for _, skill := range job.Skills {
		if skill != "" && strings.Contains(haystack, strings.ToLower(skill)) {
			found = append(found, skill)
		}
	}

	if len(job.Skills) == 0 {
		return found, "The job lists no required skills to compare against."
	}
	return found, fmt.Sprintf("%d of %d required skills already appear in the resume.", len(found), len(job.Skills))
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
