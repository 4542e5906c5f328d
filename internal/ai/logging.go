package ai

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/utils"
)

type loggedGenerator struct {
	next   Generator
	logger *zap.Logger
	limit  int
}

// WithLogging wraps gen so every exchange is logged at debug level with
// previews truncated to limit runes. A nil gen stays nil.
func WithLogging(gen Generator, logger *zap.Logger, limit int) Generator {
	if gen == nil {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if limit <= 0 {
		limit = DefaultMaxLogLength
	}
	return &loggedGenerator{next: gen, logger: logger, limit: limit}
}

func (l *loggedGenerator) Generate(ctx context.Context, req Request) (string, error) {
	l.logger.Debug("llm request",
		zap.String("format", string(req.Format)),
		zap.String("prompt", utils.TruncateForLog(req.Prompt, l.limit)),
	)

	started := time.Now()
	reply, err := l.next.Generate(ctx, req)
	if err != nil {
		l.logger.Debug("llm call failed",
			zap.Duration("took", time.Since(started)),
			zap.String("cause", string(Classify(err))),
			zap.Error(err),
		)
		return "", err
	}

	l.logger.Debug("llm response",
		zap.Duration("took", time.Since(started)),
		zap.String("reply", utils.TruncateForLog(reply, l.limit)),
	)
	return reply, nil
}

func (l *loggedGenerator) Model() string {
	return l.next.Model()
}
