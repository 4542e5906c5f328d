package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	sdk "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/ai"
)

const (
	defaultModel   = sdk.GPT4o
	defaultBackoff = time.Second

	insufficientQuota = "insufficient_quota"
)

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req sdk.ChatCompletionRequest) (sdk.ChatCompletionResponse, error)
}

// Generator talks to the OpenAI chat-completions endpoint.
type Generator struct {
	client     chatCompleter
	model      string
	maxRetries int
	timeout    time.Duration
	backoff    time.Duration
	logger     *zap.Logger
}

func NewGenerator(cfg ai.Config, logger *zap.Logger) (*Generator, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	cfg = cfg.WithDefaults()

	return &Generator{
		client:     sdk.NewClient(apiKey),
		model:      model,
		maxRetries: cfg.MaxRetries,
		timeout:    cfg.Timeout,
		backoff:    defaultBackoff,
		logger:     logger,
	}, nil
}

// Generate sends a system and a user message and returns the first choice.
func (g *Generator) Generate(ctx context.Context, req ai.Request) (string, error) {
	if g == nil || g.client == nil {
		return "", ai.ErrNotConfigured
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	messages := make([]sdk.ChatCompletionMessage, 0, 2)
	if system := strings.TrimSpace(req.System); system != "" {
		messages = append(messages, sdk.ChatCompletionMessage{Role: sdk.ChatMessageRoleSystem, Content: system})
	}
	messages = append(messages, sdk.ChatCompletionMessage{Role: sdk.ChatMessageRoleUser, Content: prompt})

	request := sdk.ChatCompletionRequest{
		Model:    g.model,
		Messages: messages,
	}
	if req.Format == ai.FormatJSON {
		request.ResponseFormat = &sdk.ChatCompletionResponseFormat{Type: sdk.ChatCompletionResponseFormatTypeJSONObject}
	}

	return ai.Retry(ctx, g.logger, g.maxRetries, g.retryPolicy, func(ctx context.Context) (string, error) {
		return g.send(ctx, request)
	})
}

func (g *Generator) send(ctx context.Context, request sdk.ChatCompletionRequest) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", wrapError(err))
	}

	if len(resp.Choices) == 0 {
		return "", ai.ErrEmptyResponse
	}

	output := strings.TrimSpace(resp.Choices[0].Message.Content)
	if output == "" {
		return "", ai.ErrEmptyResponse
	}

	return output, nil
}

func (g *Generator) retryPolicy(err error, attempt int) (bool, time.Duration) {
	if errors.Is(err, context.DeadlineExceeded) {
		return true, g.backoff
	}

	status, kind := statusOf(err)
	switch {
	case kind == insufficientQuota:
		return false, 0
	case status == http.StatusTooManyRequests, status >= http.StatusInternalServerError:
		return true, g.backoff * time.Duration(attempt)
	default:
		return false, 0
	}
}

// Model returns the configured model name.
func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

func statusOf(err error) (int, string) {
	var apiErr *sdk.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode, apiErr.Type
	}

	var reqErr *sdk.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode, ""
	}

	return 0, ""
}

func wrapError(err error) error {
	status, kind := statusOf(err)
	if status == http.StatusTooManyRequests || kind == insufficientQuota {
		return fmt.Errorf("%w: %w", ai.ErrQuotaExceeded, err)
	}
	return err
}
