package suggest

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/jobfit/internal/ai"
	"github.com/spigell/jobfit/internal/ai/aitest"
	"github.com/spigell/jobfit/internal/career"
	"github.com/spigell/jobfit/internal/resume"
)

func sampleResume() resume.Resume {
	return resume.Resume{
		ID: "r1",
		PersonalInfo: resume.PersonalInfo{
			FirstName: "Jane",
			LastName:  "Doe",
			Summary:   "Frontend developer focused on accessible interfaces.",
		},
		Experience: []resume.ExperienceItem{
			{ID: "e1", Title: "Frontend Developer", Company: "Acme", StartDate: "2020-01", EndDate: resume.PresentEndDate, Description: "Built React dashboards"},
		},
		Skills: []resume.SkillItem{{ID: "s1", Name: "React", Proficiency: 4}, {ID: "s2", Name: "TypeScript", Proficiency: 4}},
	}
}

func TestNoModelReturnsFallbacks(t *testing.T) {
	t.Parallel()

	engine := New(nil, zap.NewNop())
	ctx := context.Background()
	r := sampleResume()

	for i := 0; i < 2; i++ {
		if got := engine.GenerateSummaries(ctx, r, "Developer"); !reflect.DeepEqual(got, fallbackSummaries) {
			t.Fatalf("GenerateSummaries() = %v", got)
		}
		if got := engine.GenerateExperienceBulletPoints(ctx, r, ""); !reflect.DeepEqual(got, fallbackBulletPoints) {
			t.Fatalf("GenerateExperienceBulletPoints() = %v", got)
		}
		if got := engine.GenerateGeneralSuggestions(ctx, r, ""); !reflect.DeepEqual(got, fallbackGeneral) {
			t.Fatalf("GenerateGeneralSuggestions() = %v", got)
		}
	}
}

func TestFallbackSkillsByTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  []string
	}{
		{title: "Senior Software Engineer", want: developmentSkills},
		{title: "Product Designer", want: designSkills},
		{title: "Engineering Manager", want: developmentSkills},
		{title: "Project Manager", want: managementSkills},
		{title: "Team Lead", want: managementSkills},
		{title: "Accountant", want: generalSkills},
		{title: "", want: generalSkills},
	}

	engine := New(nil, zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			t.Parallel()

			got := engine.GenerateSkillSuggestions(context.Background(), sampleResume(), tt.title)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("GenerateSkillSuggestions(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestFallbackIsACopy(t *testing.T) {
	t.Parallel()

	engine := New(nil, zap.NewNop())
	got := engine.GenerateSummaries(context.Background(), sampleResume(), "")
	got[0] = "changed"

	if fallbackSummaries[0] == "changed" {
		t.Fatal("callers must not be able to modify the fallback list")
	}
}

func TestGenerateSummariesParsesLines(t *testing.T) {
	t.Parallel()

	reply := `Here are three options:
1. Frontend developer with five years of experience building accessible React applications.
2. Product-minded engineer who turns designs into fast and reliable user interfaces.
3. TypeScript specialist who cares about performance, testing and clean component design.
4. An extra summary that should be cut off by the limit of three.`

	stub := aitest.Text(reply)
	got := New(stub, zap.NewNop()).GenerateSummaries(context.Background(), sampleResume(), "Frontend Developer")

	if len(got) != summaryCount {
		t.Fatalf("expected %d summaries, got %d: %v", summaryCount, len(got), got)
	}
	if !strings.HasPrefix(got[0], "Frontend developer") || !strings.HasPrefix(got[2], "TypeScript specialist") {
		t.Fatalf("preamble must not be kept as a summary, got %q", got)
	}

	reqs := stub.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected one request, got %d", len(reqs))
	}
	if reqs[0].Format != ai.FormatText || reqs[0].System == "" {
		t.Fatalf("unexpected request %+v", reqs[0])
	}
	if !strings.Contains(reqs[0].Prompt, "targeting a Frontend Developer position") {
		t.Fatalf("prompt misses target title: %q", reqs[0].Prompt)
	}
	if !strings.Contains(reqs[0].Prompt, "Skills: React, TypeScript") {
		t.Fatalf("prompt misses resume skills: %q", reqs[0].Prompt)
	}
	if !strings.Contains(reqs[0].Prompt, "Name: Jane Doe") || !strings.Contains(reqs[0].Prompt, "(2020-01 - present, current role)") {
		t.Fatalf("prompt misses name or current role: %q", reqs[0].Prompt)
	}
}

func TestUnusableReplyFallsBack(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	engine := New(aitest.Text("-\n*\nok\n```"), zap.New(core))

	got := engine.GenerateExperienceBulletPoints(context.Background(), sampleResume(), "")
	if !reflect.DeepEqual(got, fallbackBulletPoints) {
		t.Fatalf("expected fallback bullet points, got %v", got)
	}

	entries := logs.FilterMessage("suggestion generation failed, using fallback").All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["operation"] != "bullet points" || fields["cause"] != string(ai.CauseMalformed) {
		t.Fatalf("unexpected fields %v", fields)
	}
}

func TestGeneratorErrorFallsBack(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	engine := New(aitest.Error(ai.ErrQuotaExceeded), zap.New(core))

	got := engine.GenerateSkillSuggestions(context.Background(), sampleResume(), "Designer")
	if !reflect.DeepEqual(got, designSkills) {
		t.Fatalf("expected design fallback, got %v", got)
	}

	entries := logs.FilterMessage("suggestion generation failed, using fallback").All()
	if len(entries) != 1 || entries[0].ContextMap()["cause"] != string(ai.CauseQuota) {
		t.Fatalf("expected one quota warning, got %v", logs.All())
	}
}

func TestSkillSuggestionsDropKnownSkills(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{
			name:  "one per line",
			reply: "- react\n- Next.js\n- GraphQL\n- Next.js\n- Jest.",
			want:  []string{"Next.js", "GraphQL", "Jest"},
		},
		{
			name:  "comma separated",
			reply: "Next.js, typescript, Storybook, Cypress",
			want:  []string{"Next.js", "Storybook", "Cypress"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := New(aitest.Text(tt.reply), zap.NewNop()).GenerateSkillSuggestions(context.Background(), sampleResume(), "")
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("GenerateSkillSuggestions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSkillSuggestionsOnlyKnownFallsBack(t *testing.T) {
	t.Parallel()

	got := New(aitest.Text("React\nTypeScript"), zap.NewNop()).GenerateSkillSuggestions(context.Background(), sampleResume(), "Frontend Developer")
	if !reflect.DeepEqual(got, developmentSkills) {
		t.Fatalf("expected development fallback, got %v", got)
	}
}

func TestGeneralSuggestions(t *testing.T) {
	t.Parallel()

	long := func(s string) string { return s + " to make the resume stronger." }

	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{
			name:  "json object",
			reply: "```json\n" + `{"suggestions": ["` + long("Quantify the dashboard work") + `", "` + long("Add an accessibility audit project") + `"]}` + "\n```",
			want:  []string{long("Quantify the dashboard work"), long("Add an accessibility audit project")},
		},
		{
			name:  "plain list",
			reply: "1. " + long("Quantify the dashboard work") + "\n2. " + long("Mention design system ownership"),
			want:  []string{long("Quantify the dashboard work"), long("Mention design system ownership")},
		},
		{
			name:  "broken json",
			reply: `{"suggestions": ["` + long("Quantify the dashboard work"),
			want:  fallbackGeneral,
		},
		{
			name:  "empty list",
			reply: `{"suggestions": []}`,
			want:  fallbackGeneral,
		},
		{
			name: "limited to five",
			reply: `{"suggestions": ["` + strings.Join([]string{
				long("Suggestion number one"), long("Suggestion number two"), long("Suggestion number three"),
				long("Suggestion number four"), long("Suggestion number five"), long("Suggestion number six"),
			}, `", "`) + `"]}`,
			want: []string{
				long("Suggestion number one"), long("Suggestion number two"), long("Suggestion number three"),
				long("Suggestion number four"), long("Suggestion number five"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stub := aitest.Text(tt.reply)
			got := New(stub, zap.NewNop()).GenerateGeneralSuggestions(context.Background(), sampleResume(), career.SoftwareEngineering)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("GenerateGeneralSuggestions() = %v, want %v", got, tt.want)
			}
			if stub.Calls() != 1 {
				t.Fatalf("expected a single call with a known path, got %d", stub.Calls())
			}
		})
	}
}

func TestGeneralSuggestionsUsesCareerGuidance(t *testing.T) {
	t.Parallel()

	reply := `{"suggestions": ["Lead with the design system you built and its adoption numbers."]}`
	stub := &aitest.Stub{Respond: func(req ai.Request) (string, error) {
		if req.Format == ai.FormatText {
			return string(career.Design), nil
		}
		return reply, nil
	}}

	got := New(stub, zap.NewNop()).GenerateGeneralSuggestions(context.Background(), sampleResume(), "")
	if len(got) != 1 {
		t.Fatalf("unexpected suggestions %v", got)
	}

	reqs := stub.Requests()
	if len(reqs) != 2 {
		t.Fatalf("expected classification and suggestion calls, got %d", len(reqs))
	}

	last := reqs[1]
	if last.Format != ai.FormatJSON {
		t.Fatalf("suggestions must request json, got %q", last.Format)
	}
	if !strings.HasPrefix(last.System, career.Design.Guidance().Advisor) {
		t.Fatalf("system prompt %q does not use design guidance", last.System)
	}
	if !strings.Contains(last.Prompt, `"firstName":"Jane"`) {
		t.Fatalf("prompt must carry the resume json: %q", last.Prompt)
	}
}

func TestGeneralSuggestionsClassificationFailure(t *testing.T) {
	t.Parallel()

	stub := &aitest.Stub{Respond: func(req ai.Request) (string, error) {
		if req.Format == ai.FormatText {
			return "", errors.New("boom")
		}
		return `{"suggestions": ["Add measurable outcomes to each of your recent roles."]}`, nil
	}}

	New(stub, zap.NewNop()).GenerateGeneralSuggestions(context.Background(), sampleResume(), "")

	reqs := stub.Requests()
	if len(reqs) != 2 {
		t.Fatalf("expected two requests, got %d", len(reqs))
	}
	if !strings.HasPrefix(reqs[1].System, career.General.Guidance().Advisor) {
		t.Fatalf("failed classification must use general guidance, got %q", reqs[1].System)
	}
}
