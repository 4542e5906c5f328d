package ai

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/utils"
)

// RetryPolicy decides whether a failed attempt is worth repeating and how long
// to wait before the next one.
type RetryPolicy func(err error, attempt int) (retry bool, delay time.Duration)

// Retry runs call up to attempts times. The last error is returned when every
// attempt fails or the policy refuses to retry.
func Retry(ctx context.Context, logger *zap.Logger, attempts int, policy RetryPolicy, call func(context.Context) (string, error)) (string, error) {
	if attempts <= 0 {
		attempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		out, err := call(ctx)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if attempt == attempts || policy == nil {
			break
		}

		retry, delay := policy(err, attempt)
		if !retry {
			break
		}

		logger.Debug("retrying llm call",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		if err := utils.WaitFor(ctx, delay); err != nil {
			return "", err
		}
	}

	return "", lastErr
}
