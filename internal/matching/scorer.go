package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/jobfit/internal/ai"
	"github.com/spigell/jobfit/internal/career"
	"github.com/spigell/jobfit/internal/jobs"
	"github.com/spigell/jobfit/internal/logger"
	"github.com/spigell/jobfit/internal/resume"
)

const systemPrompt = "You are an expert job matching algorithm. You will analyze a job description and a candidate's resume to calculate a match percentage between 0-100. Consider skills, experience, and fit. The candidate works in %s; weigh %s. Respond with a JSON object of the form {\"match\": <number>} and nothing else."

type matchReply struct {
	Match float64 `json:"match"`
}

// Scorer assigns a match score and the isNew flag to jobs.
type Scorer struct {
	gen         ai.Generator
	classifier  *career.Classifier
	concurrency int
	now         func() time.Time
	logger      *zap.Logger
}

// NewScorer returns a scorer. With a nil generator every job is scored by
// keyword overlap.
func NewScorer(gen ai.Generator, concurrency int, log *zap.Logger) *Scorer {
	if concurrency <= 0 {
		concurrency = ai.DefaultMaxConcurrency
	}
	log = logger.ForComponent(log, "matching")

	return &Scorer{
		gen:         gen,
		classifier:  career.NewClassifier(gen, log),
		concurrency: concurrency,
		now:         time.Now,
		logger:      log,
	}
}

// ScoreAll returns copies of list with Match and IsNew set, sorted by Match
// descending. Ties keep their input order. A failed LLM evaluation only
// affects its own job, which is scored by keyword overlap instead.
func (s *Scorer) ScoreAll(ctx context.Context, list []jobs.Job, r resume.Resume) []jobs.Job {
	scored := make([]jobs.Job, len(list))
	copy(scored, list)

	now := s.now()
	keywords := Keywords(r)

	if s.gen == nil {
		for i := range scored {
			scored[i].Match = KeywordScore(scored[i], keywords)
		}
	} else {
		s.scoreWithModel(ctx, scored, r, keywords)
	}

	for i := range scored {
		scored[i].IsNew = jobs.IsNew(scored[i].PostedAt, now)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Match > scored[j].Match
	})

	return scored
}

func (s *Scorer) scoreWithModel(ctx context.Context, scored []jobs.Job, r resume.Resume, keywords []string) {
	path := s.classifier.Classify(ctx, career.ContextFromResume(r))
	guidance := path.Guidance()
	system := fmt.Sprintf(systemPrompt, guidance.Name, guidance.Focus)
	candidate := candidateSection(r)

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i := range scored {
		g.Go(func() error {
			scored[i].Match = s.scoreOne(ctx, scored[i], system, candidate, keywords)
			return nil
		})
	}

	// Workers never return errors.
	_ = g.Wait()
}

func (s *Scorer) scoreOne(ctx context.Context, job jobs.Job, system, candidate string, keywords []string) int {
	payload, err := json.Marshal(job)
	if err != nil {
		return KeywordScore(job, keywords)
	}

	reply, err := s.gen.Generate(ctx, ai.Request{
		System: system,
		Prompt: fmt.Sprintf("Job: %s\n\nCandidate Resume:\n%s", payload, candidate),
		Format: ai.FormatJSON,
	})
	if err == nil {
		var decoded matchReply
		decoded, err = ai.DecodeJSON[matchReply](reply, "match")
		if err == nil {
			return clamp(decoded.Match)
		}
	}

	fallback := KeywordScore(job, keywords)
	s.logger.Warn("llm scoring failed, using keyword score",
		zap.String("job_id", job.ID),
		zap.Int("score", fallback),
		logger.Cause(string(ai.Classify(err))),
		zap.Error(err),
	)
	return fallback
}

func candidateSection(r resume.Resume) string {
	skills, _ := json.Marshal(r.Skills)
	experience, _ := json.Marshal(r.Experience)
	personal, _ := json.Marshal(r.PersonalInfo)

	return fmt.Sprintf("Skills: %s\nExperience: %s\nPersonal Info: %s", skills, experience, personal)
}

func clamp(score float64) int {
	if math.IsNaN(score) {
		return 0
	}
	return int(math.Round(math.Max(0, math.Min(100, score))))
}
