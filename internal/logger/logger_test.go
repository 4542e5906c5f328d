package logger

import (
	"reflect"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		json     bool
		debug    bool
		encoding string
		level    zapcore.Level
	}{
		{name: "console", encoding: "console", level: zapcore.InfoLevel},
		{name: "json debug", json: true, debug: true, encoding: "json", level: zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config(tt.json, tt.debug)
			if cfg.Encoding != tt.encoding || cfg.Level.Level() != tt.level {
				t.Fatalf("unexpected encoding %q or level %v", cfg.Encoding, cfg.Level.Level())
			}
			// stdout is reserved for command results.
			if !reflect.DeepEqual(cfg.OutputPaths, []string{"stderr"}) {
				t.Fatalf("logs must go to stderr, got %v", cfg.OutputPaths)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	logger, err := New(false, false)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug level must be off by default")
	}
}
