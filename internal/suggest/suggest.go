package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/ai"
	"github.com/spigell/jobfit/internal/career"
	"github.com/spigell/jobfit/internal/logger"
	"github.com/spigell/jobfit/internal/resume"
)

const (
	summaryCount     = 3
	bulletCount      = 5
	skillCount       = 10
	suggestionsCount = 5

	minSummaryLen    = 20
	minBulletLen     = 15
	minSuggestionLen = 15
	minSkillLen      = 2
)

const writerSystem = "You are an expert resume writer. Reply with plain text only, one item per line, without headings or commentary."

// Engine produces resume improvement suggestions that are not tied to a job.
type Engine struct {
	gen        ai.Generator
	classifier *career.Classifier
	logger     *zap.Logger
}

// New returns an Engine. With a nil generator every operation returns its
// fixed fallback list.
func New(gen ai.Generator, log *zap.Logger) *Engine {
	log = logger.ForComponent(log, "suggest")
	return &Engine{
		gen:        gen,
		classifier: career.NewClassifier(gen, log),
		logger:     log,
	}
}

// GenerateSummaries returns up to three alternative professional summaries.
func (e *Engine) GenerateSummaries(ctx context.Context, r resume.Resume, jobTitle string) []string {
	prompt := fmt.Sprintf(`Write %d alternative professional summaries for this candidate%s.
Each must be 3-4 sentences, self-contained and ready to use, and the three should differ noticeably in tone.
Put each summary on its own single line.

%s`, summaryCount, targetClause(jobTitle), describe(r))

	return e.lines(ctx, "summaries", prompt, parser(minSummaryLen), summaryCount, clone(fallbackSummaries))
}

// GenerateExperienceBulletPoints returns up to five achievement bullet points.
func (e *Engine) GenerateExperienceBulletPoints(ctx context.Context, r resume.Resume, jobTitle string) []string {
	prompt := fmt.Sprintf(`Write %d achievement-oriented resume bullet points for this candidate%s.
Start each with a strong action verb, keep each between 15 and 20 words and include a measurable result where plausible.

%s`, bulletCount, targetClause(jobTitle), describe(r))

	return e.lines(ctx, "bullet points", prompt, parser(minBulletLen), bulletCount, clone(fallbackBulletPoints))
}

// GenerateSkillSuggestions returns up to ten skills the resume does not list
// yet. The fallback list is chosen by keywords in jobTitle.
func (e *Engine) GenerateSkillSuggestions(ctx context.Context, r resume.Resume, jobTitle string) []string {
	prompt := fmt.Sprintf(`Suggest %d specific skills this candidate should add to their resume%s.
Do not repeat skills they already list. Reply with one skill name per line.

%s`, skillCount, targetClause(jobTitle), describe(r))

	return e.lines(ctx, "skills", prompt, skillParser(r.SkillNames()), skillCount, fallbackSkills(jobTitle))
}

type suggestionsReply struct {
	Suggestions []string `json:"suggestions"`
}

// GenerateGeneralSuggestions returns three to five holistic improvements. The
// system prompt is picked by career path; an empty path is classified first.
func (e *Engine) GenerateGeneralSuggestions(ctx context.Context, r resume.Resume, path career.Path) []string {
	fallback := clone(fallbackGeneral)
	if e.gen == nil {
		return fallback
	}

	if !path.Valid() {
		path = e.classifier.Classify(ctx, career.ContextFromResume(r))
	}

	payload, err := json.Marshal(struct {
		PersonalInfo resume.PersonalInfo     `json:"personalInfo"`
		Experience   []resume.ExperienceItem `json:"experience"`
		Education    []resume.EducationItem  `json:"education"`
		Skills       []resume.SkillItem      `json:"skills"`
		Projects     []resume.ProjectItem    `json:"projects"`
	}{r.PersonalInfo, r.Experience, r.Education, r.Skills, r.Projects})
	if err != nil {
		return fallback
	}

	reply, err := e.gen.Generate(ctx, ai.Request{
		System: path.Guidance().Advisor + ` Respond with a JSON object {"suggestions": ["..."]}.`,
		Prompt: "Please analyze this resume and provide suggestions for improvement: " + string(payload),
		Format: ai.FormatJSON,
	})
	if err != nil {
		e.warn("general suggestions", err)
		return fallback
	}

	decoded, err := ai.DecodeJSON[suggestionsReply](reply, "suggestions")
	switch {
	case err == nil:
		if items := clean(decoded.Suggestions, minSuggestionLen); len(items) > 0 {
			return ai.Limit(items, suggestionsCount)
		}
		err = ai.ErrEmptyResponse
	case !strings.ContainsAny(reply, "{}"):
		// The model ignored the JSON instruction and answered with a list.
		if items := ai.ParseLines(reply, minSuggestionLen); len(items) > 0 {
			return ai.Limit(items, suggestionsCount)
		}
	}

	e.warn("general suggestions", err)
	return fallback
}

// lines runs a free-text request and parses it into items. Zero usable
// items counts as a failure and returns fallback.
func (e *Engine) lines(ctx context.Context, operation, prompt string, parse func(string) []string, limit int, fallback []string) []string {
	if e.gen == nil {
		return fallback
	}

	reply, err := e.gen.Generate(ctx, ai.Request{
		System: writerSystem,
		Prompt: prompt,
		Format: ai.FormatText,
	})
	if err != nil {
		e.warn(operation, err)
		return fallback
	}

	items := parse(reply)
	if len(items) == 0 {
		e.warn(operation, ai.ErrEmptyResponse)
		return fallback
	}

	return ai.Limit(items, limit)
}

func parser(minLen int) func(string) []string {
	return func(reply string) []string {
		return ai.ParseLines(reply, minLen)
	}
}

// skillParser accepts one skill per line or a single comma-separated line and
// drops skills the resume already lists.
func skillParser(existing []string) func(string) []string {
	known := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		known[strings.ToLower(name)] = struct{}{}
	}

	return func(reply string) []string {
		items := ai.ParseLines(reply, minSkillLen)
		if len(items) == 1 && strings.Contains(items[0], ",") {
			items = ai.ParseLines(strings.ReplaceAll(items[0], ",", "\n"), minSkillLen)
		}

		seen := make(map[string]struct{}, len(items))
		out := make([]string, 0, len(items))
		for _, item := range items {
			key := strings.ToLower(strings.TrimSuffix(item, "."))
			if _, ok := known[key]; ok {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, strings.TrimSuffix(item, "."))
		}
		return out
	}
}

func (e *Engine) warn(operation string, err error) {
	e.logger.Warn("suggestion generation failed, using fallback",
		zap.String("operation", operation),
		logger.Cause(string(ai.Classify(err))),
		zap.Error(err),
	)
}

func targetClause(jobTitle string) string {
	if title := strings.TrimSpace(jobTitle); title != "" {
		return fmt.Sprintf(" targeting a %s position", title)
	}
	return ""
}

// describe renders the parts of a resume the writing prompts need.
func describe(r resume.Resume) string {
	var b strings.Builder

	if name := r.FullName(); name != "" {
		fmt.Fprintf(&b, "Name: %s\n", name)
	}
	if r.PersonalInfo.Headline != "" {
		fmt.Fprintf(&b, "Headline: %s\n", r.PersonalInfo.Headline)
	}
	if r.PersonalInfo.Summary != "" {
		fmt.Fprintf(&b, "Current summary: %s\n", r.PersonalInfo.Summary)
	}
	for _, exp := range r.Experience {
		end := exp.EndDate
		if exp.IsCurrent() {
			end = "present, current role"
		}
		fmt.Fprintf(&b, "Experience: %s at %s (%s - %s): %s\n", exp.Title, exp.Company, exp.StartDate, end, exp.Description)
	}
	for _, edu := range r.Education {
		fmt.Fprintf(&b, "Education: %s, %s\n", edu.Degree, edu.Institution)
	}
	if skills := r.SkillNames(); len(skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(skills, ", "))
	}

	if b.Len() == 0 {
		return "The resume is still empty."
	}
	return strings.TrimSpace(b.String())
}

func clean(items []string, minLen int) []string {
	return ai.ParseLines(strings.Join(items, "\n"), minLen)
}
