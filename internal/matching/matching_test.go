package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/jobfit/internal/ai"
	"github.com/spigell/jobfit/internal/ai/aitest"
	"github.com/spigell/jobfit/internal/jobs"
	"github.com/spigell/jobfit/internal/resume"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func reactResume() resume.Resume {
	return resume.Resume{
		Skills: []resume.SkillItem{{Name: "React"}, {Name: "Node.js"}},
		Experience: []resume.ExperienceItem{{
			Title:       "Software Engineer",
			Description: "Built web apps using React and APIs",
		}},
	}
}

func newTestScorer(gen ai.Generator, log *zap.Logger) *Scorer {
	s := NewScorer(gen, 3, log)
	s.now = func() time.Time { return now }
	return s
}

func TestKeywords(t *testing.T) {
	t.Parallel()

	got := Keywords(reactResume())
	want := []string{"react", "node.js", "software", "engineer", "built", "apps", "using", "apis"}

	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("Keywords() = %v, want %v", got, want)
	}
}

func TestKeywordScoreReactScenario(t *testing.T) {
	t.Parallel()

	job := jobs.Job{
		Title:       "React Developer",
		Description: "Looking for React and Node.js expert",
		Skills:      []string{"React", "Node.js"},
	}

	first := KeywordScore(job, Keywords(reactResume()))
	second := KeywordScore(job, Keywords(reactResume()))

	if first != 50 {
		t.Fatalf("expected floor score 50 for two hits, got %d", first)
	}
	if first != second {
		t.Fatalf("keyword score must be deterministic: %d vs %d", first, second)
	}
}

func TestKeywordScoreBounds(t *testing.T) {
	t.Parallel()

	many := make([]string, 0, 40)
	for i := 0; i < 40; i++ {
		many = append(many, fmt.Sprintf("skill%02d", i))
	}
	richJob := jobs.Job{Description: strings.Join(many, " ")}

	tests := []struct {
		name     string
		keywords []string
		job      jobs.Job
		want     int
	}{
		{name: "no keywords", keywords: nil, job: richJob, want: 50},
		{name: "eleven hits", keywords: many[:11], job: richJob, want: 55},
		{name: "nineteen hits", keywords: many[:19], job: richJob, want: 95},
		{name: "capped", keywords: many, job: richJob, want: 95},
		{name: "empty job", keywords: many, job: jobs.Job{}, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := KeywordScore(tt.job, tt.keywords)
			if got != tt.want {
				t.Fatalf("KeywordScore() = %d, want %d", got, tt.want)
			}
			if got < 50 || got > 95 {
				t.Fatalf("score %d outside fallback range", got)
			}
		})
	}
}

func TestScoreAllFallbackMode(t *testing.T) {
	s := newTestScorer(nil, zap.NewNop())

	skills := []string{"React", "Node.js", "TypeScript", "GraphQL", "Docker", "Kubernetes", "PostgreSQL", "Redis", "AWS", "Terraform", "Jest", "Cypress"}
	r := resume.Resume{}
	for _, name := range skills {
		r.Skills = append(r.Skills, resume.SkillItem{Name: name})
	}

	list := []jobs.Job{
		{ID: "plain", Title: "Accountant", PostedAt: now.Add(-72*time.Hour - time.Second)},
		{ID: "react", Title: "React Developer", Skills: skills, PostedAt: now.Add(-72 * time.Hour)},
		{ID: "other", Title: "Nurse", PostedAt: now},
	}

	scored := s.ScoreAll(context.Background(), list, r)

	if len(scored) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(scored))
	}
	for _, job := range scored {
		if job.Match < 50 || job.Match > 95 {
			t.Fatalf("job %s score %d outside fallback range", job.ID, job.Match)
		}
	}

	if scored[0].ID != "react" || scored[0].Match != 60 {
		t.Fatalf("expected react job first, got %+v", scored[0])
	}
	// Equal scores keep input order.
	if scored[1].ID != "plain" || scored[2].ID != "other" {
		t.Fatalf("ties must keep input order: %s, %s", scored[1].ID, scored[2].ID)
	}

	byID := map[string]jobs.Job{}
	for _, job := range scored {
		byID[job.ID] = job
	}
	if byID["plain"].IsNew || !byID["react"].IsNew || !byID["other"].IsNew {
		t.Fatalf("unexpected isNew flags: %+v", byID)
	}

	if list[0].Match != 0 {
		t.Fatalf("input slice must not be modified")
	}
}

func scoreFor(req ai.Request) (string, bool) {
	for id, score := range map[string]string{"a": "40", "b": "90", "c": "65", "d": "90"} {
		if strings.Contains(req.Prompt, fmt.Sprintf(`"id":"%s"`, id)) {
			return score, true
		}
	}
	return "", false
}

func TestScoreAllModelModeOrdering(t *testing.T) {
	delays := map[string]time.Duration{"a": 0, "b": 30 * time.Millisecond, "c": 10 * time.Millisecond, "d": 0}

	stub := &aitest.Stub{Respond: func(req ai.Request) (string, error) {
		if req.Format == ai.FormatText {
			return "software_engineering", nil
		}
		score, ok := scoreFor(req)
		if !ok {
			return "", errors.New("unknown job")
		}
		for id, delay := range delays {
			if strings.Contains(req.Prompt, fmt.Sprintf(`"id":"%s"`, id)) {
				time.Sleep(delay)
			}
		}
		return fmt.Sprintf(`{"match": %q}`, score), nil
	}}

	s := newTestScorer(stub, zap.NewNop())
	list := []jobs.Job{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}

	scored := s.ScoreAll(context.Background(), list, reactResume())

	got := make([]string, 0, len(scored))
	for _, job := range scored {
		got = append(got, fmt.Sprintf("%s=%d", job.ID, job.Match))
	}
	if strings.Join(got, ",") != "b=90,d=90,c=65,a=40" {
		t.Fatalf("unexpected order %v", got)
	}

	requests := stub.Requests()
	if len(requests) != 5 {
		t.Fatalf("expected one classification and four scoring calls, got %d", len(requests))
	}
	for _, req := range requests {
		if req.Format == ai.FormatJSON && !strings.Contains(req.System, "Software Engineering") {
			t.Fatalf("scoring prompt must carry the career path: %q", req.System)
		}
	}
}

func TestScoreAllPerJobFallback(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	stub := &aitest.Stub{Respond: func(req ai.Request) (string, error) {
		switch {
		case req.Format == ai.FormatText:
			return "general", nil
		case strings.Contains(req.Prompt, `"id":"broken"`):
			return "", ai.ErrQuotaExceeded
		case strings.Contains(req.Prompt, `"id":"garbled"`):
			return "I think it is a good match", nil
		case strings.Contains(req.Prompt, `"id":"high"`):
			return `{"match": 150}`, nil
		default:
			return "```json\n{\"match\": -3}\n```", nil
		}
	}}

	s := newTestScorer(stub, zap.New(core))
	list := []jobs.Job{
		{ID: "low", Title: "Chef"},
		{ID: "broken", Title: "React Developer", Description: "React and Node.js"},
		{ID: "garbled", Title: "Nurse"},
		{ID: "high", Title: "Pilot"},
	}

	scored := s.ScoreAll(context.Background(), list, reactResume())

	byID := map[string]int{}
	for _, job := range scored {
		byID[job.ID] = job.Match
	}

	if byID["high"] != 100 || byID["low"] != 0 {
		t.Fatalf("llm scores must be clamped: %v", byID)
	}
	if byID["broken"] != 50 || byID["garbled"] != 50 {
		t.Fatalf("failed jobs must use keyword scores: %v", byID)
	}
	if scored[0].ID != "high" || scored[len(scored)-1].ID != "low" {
		t.Fatalf("unexpected ordering %+v", scored)
	}

	warnings := logs.FilterMessage("llm scoring failed, using keyword score").All()
	if len(warnings) != 2 {
		t.Fatalf("expected two fallback warnings, got %d", len(warnings))
	}
	causes := map[any]bool{}
	for _, entry := range warnings {
		causes[entry.ContextMap()["cause"]] = true
	}
	if !causes["quota"] || !causes["malformed"] {
		t.Fatalf("expected quota and malformed causes, got %v", causes)
	}
}

func TestScoreAllRespectsConcurrencyLimit(t *testing.T) {
	var inFlight, peak atomic.Int32

	stub := &aitest.Stub{Respond: func(req ai.Request) (string, error) {
		if req.Format == ai.FormatText {
			return "general", nil
		}
		current := inFlight.Add(1)
		for {
			old := peak.Load()
			if current <= old || peak.CompareAndSwap(old, current) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return `{"match": 70}`, nil
	}}

	s := NewScorer(stub, 2, zap.NewNop())
	list := make([]jobs.Job, 8)
	for i := range list {
		list[i].ID = fmt.Sprint(i)
	}

	scored := s.ScoreAll(context.Background(), list, resume.Resume{})

	if peak.Load() > 2 {
		t.Fatalf("expected at most 2 concurrent calls, saw %d", peak.Load())
	}
	for i, job := range scored {
		if job.ID != fmt.Sprint(i) || job.Match != 70 {
			t.Fatalf("equal scores must keep input order, got %+v at %d", job, i)
		}
	}
}

func TestClamp(t *testing.T) {
	t.Parallel()

	tests := map[float64]int{-1: 0, 0: 0, 49.5: 50, 87.2: 87, 100: 100, 250: 100}
	for in, want := range tests {
		if got := clamp(in); got != want {
			t.Fatalf("clamp(%v) = %d, want %d", in, got, want)
		}
	}
}
