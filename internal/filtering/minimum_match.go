package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/jobs"
)

type minimumMatchFilter struct {
	enabled bool
	reason  string
	minimum int
}

// NewMinimumMatch creates a filter that drops jobs scored under the configured
// minimum. A zero minimum keeps every job.
func NewMinimumMatch() Filter {
	return &minimumMatchFilter{enabled: true}
}

func (f *minimumMatchFilter) Name() string { return "minimum_match" }

func (f *minimumMatchFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *minimumMatchFilter) IsEnabled() bool { return f.enabled }

func (f *minimumMatchFilter) Validate(cfg *Config) error {
	f.minimum = 0
	if cfg != nil {
		f.minimum = cfg.MinimumMatch
	}
	if f.minimum < 0 || f.minimum > 100 {
		return fmt.Errorf("minimum match score must be between 0 and 100, got %d", f.minimum)
	}
	return nil
}

func (f *minimumMatchFilter) Apply(_ context.Context, deps Deps, j *jobs.Jobs) (*jobs.Jobs, Step, error) {
	initial := j.Len()
	if f.minimum == 0 {
		return j, Step{Initial: initial, Dropped: 0, Left: j.Len()}, nil
	}

	excluded := j.ExcludeBelow(f.minimum)
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding jobs under minimum match score",
			zap.Int("minimum_match", f.minimum),
			zap.Strings("excluded_jobs", excluded),
			zap.Int("jobs_left", j.Len()),
		)
	}

	return j, Step{Initial: initial, Dropped: len(excluded), Left: j.Len()}, nil
}

func (f *minimumMatchFilter) Status() Status {
	status := Status{Name: f.Name(), Enabled: f.enabled, Reason: f.reason}
	if f.enabled {
		status.Details = map[string]string{"minimum": strconv.Itoa(f.minimum)}
	}
	return status
}
