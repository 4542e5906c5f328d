package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type echoGenerator struct {
	err error
}

func (e echoGenerator) Generate(_ context.Context, req Request) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return req.Prompt, nil
}

func (echoGenerator) Model() string { return "echo" }

func TestWithLoggingNil(t *testing.T) {
	t.Parallel()

	if WithLogging(nil, zap.NewNop(), 10) != nil {
		t.Fatal("wrapping a nil generator must stay nil")
	}
}

func TestWithLoggingTruncatesPreviews(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gen := WithLogging(echoGenerator{}, zap.New(core), 5)

	out, err := gen.Generate(context.Background(), Request{Prompt: "abcdefghij"})
	if err != nil || out != "abcdefghij" {
		t.Fatalf("unexpected result %q, %v", out, err)
	}
	if gen.Model() != "echo" {
		t.Fatalf("model must pass through, got %q", gen.Model())
	}

	entries := logs.FilterMessage("llm request").All()
	if len(entries) != 1 || entries[0].ContextMap()["prompt"] != "abcde..." {
		t.Fatalf("unexpected request log %v", logs.All())
	}
	reply := logs.FilterMessage("llm response").All()
	if len(reply) != 1 || !strings.HasSuffix(reply[0].ContextMap()["reply"].(string), "...") {
		t.Fatalf("unexpected response log %v", logs.All())
	}
}

func TestWithLoggingReportsCause(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gen := WithLogging(echoGenerator{err: ErrQuotaExceeded}, zap.New(core), 0)

	_, err := gen.Generate(context.Background(), Request{Prompt: "x"})
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("error must pass through, got %v", err)
	}

	failed := logs.FilterMessage("llm call failed").All()
	if len(failed) != 1 || failed[0].ContextMap()["cause"] != "quota" {
		t.Fatalf("unexpected failure log %v", logs.All())
	}
}
