package career

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/ai"
)

const classifySystemPrompt = "You are a career classification assistant. Read the resume details and reply with exactly one label from this list and nothing else: %s."

// Classifier infers a career path from resume content.
type Classifier struct {
	gen    ai.Generator
	logger *zap.Logger
}

// NewClassifier returns a classifier. A nil generator makes every result General.
func NewClassifier(gen ai.Generator, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{gen: gen, logger: logger}
}

// Classify never fails: unconfigured models, empty input, call errors and
// replies outside the vocabulary all resolve to General.
func (c *Classifier) Classify(ctx context.Context, input Context) Path {
	if c == nil || c.gen == nil {
		return General
	}
	if input.Empty() {
		c.logger.Debug("nothing to classify, using general")
		return General
	}

	reply, err := c.gen.Generate(ctx, ai.Request{
		System: fmt.Sprintf(classifySystemPrompt, labels()),
		Prompt: classifyPrompt(input),
		Format: ai.FormatText,
	})
	if err != nil {
		c.logger.Warn("career classification failed, using general",
			zap.String("cause", string(ai.Classify(err))),
			zap.Error(err),
		)
		return General
	}

	path, ok := Parse(reply)
	if !ok {
		c.logger.Warn("career classification returned unknown label, using general",
			zap.String("reply", reply),
		)
		return General
	}

	c.logger.Debug("career path classified", zap.String("career_path", path.String()))
	return path
}

func classifyPrompt(input Context) string {
	var b strings.Builder
	b.WriteString("Job titles: ")
	b.WriteString(strings.Join(input.JobTitles, ", "))
	b.WriteString("\nSkills: ")
	b.WriteString(strings.Join(input.Skills, ", "))
	b.WriteString("\nSummary: ")
	b.WriteString(input.Summary)
	return b.String()
}

func labels() string {
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, p.String())
	}
	return strings.Join(names, ", ")
}
