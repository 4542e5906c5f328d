// Package aitest provides a scripted ai.Generator for tests.
package aitest

import (
	"context"
	"sync"

	"github.com/spigell/jobfit/internal/ai"
)

// Stub answers every request with Respond and records what it was asked.
type Stub struct {
	Respond func(req ai.Request) (string, error)

	mu       sync.Mutex
	requests []ai.Request
}

// Text returns a stub that always replies with text.
func Text(text string) *Stub {
	return &Stub{Respond: func(ai.Request) (string, error) { return text, nil }}
}

// Error returns a stub that always fails with err.
func Error(err error) *Stub {
	return &Stub{Respond: func(ai.Request) (string, error) { return "", err }}
}

func (s *Stub) Generate(ctx context.Context, req ai.Request) (string, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.Respond(req)
}

func (s *Stub) Model() string {
	return "stub"
}

// Requests returns a copy of every request received so far.
func (s *Stub) Requests() []ai.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ai.Request(nil), s.requests...)
}

func (s *Stub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}
