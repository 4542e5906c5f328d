package ai

import (
	"context"
	"time"
)

// Format selects the shape of the reply requested from the model.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json_object"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	DefaultTimeout        = 30 * time.Second
	DefaultMaxConcurrency = 4
	DefaultMaxLogLength   = 200
)

// Request is a single chat-completion exchange.
type Request struct {
	System string
	Prompt string
	Format Format
}

// Generator is implemented by every LLM provider. A nil Generator means no
// credential was configured and callers must use their deterministic path.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	Model() string
}

// Config is resolved once at start-up and passed by value to the components.
type Config struct {
	Provider       string
	Model          string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	MaxConcurrency int
	MaxLogLength   int
}

// WithDefaults fills zero values with the package defaults.
func (c Config) WithDefaults() Config {
	if c.Provider == "" {
		c.Provider = ProviderOpenAI
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 1
	}
	if c.MaxConcurrency <= 0 {
		c.MaxConcurrency = DefaultMaxConcurrency
	}
	if c.MaxLogLength <= 0 {
		c.MaxLogLength = DefaultMaxLogLength
	}
	return c
}

// Enabled reports whether a credential is present.
func (c Config) Enabled() bool {
	return c.APIKey != ""
}
