package ai

import (
	"context"
	"errors"
	"net"
	"strings"
)

var (
	ErrNotConfigured     = errors.New("llm is not configured")
	ErrQuotaExceeded     = errors.New("llm quota exceeded")
	ErrEmptyResponse     = errors.New("llm returned empty response")
	ErrMalformedResponse = errors.New("malformed llm response")
)

// Cause groups failures by how they are reported to the user. Every cause
// resolves to the same fallback behaviour.
type Cause string

const (
	CauseNone          Cause = ""
	CauseNotConfigured Cause = "not_configured"
	CauseTransient     Cause = "transient"
	CauseQuota         Cause = "quota"
	CauseMalformed     Cause = "malformed"
)

// Classify maps an error returned by a generator or a decoder to its Cause.
func Classify(err error) Cause {
	switch {
	case err == nil:
		return CauseNone
	case errors.Is(err, ErrNotConfigured):
		return CauseNotConfigured
	case errors.Is(err, ErrQuotaExceeded):
		return CauseQuota
	case errors.Is(err, ErrMalformedResponse), errors.Is(err, ErrEmptyResponse):
		return CauseMalformed
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return CauseTransient
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return CauseTransient
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"quota", "rate limit", "resource_exhausted", "429"} {
		if strings.Contains(msg, marker) {
			return CauseQuota
		}
	}

	return CauseTransient
}
