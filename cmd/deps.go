package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/ai"
	"github.com/spigell/jobfit/internal/ai/gemini"
	"github.com/spigell/jobfit/internal/ai/openai"
	"github.com/spigell/jobfit/internal/extract"
	"github.com/spigell/jobfit/internal/jobs"
	"github.com/spigell/jobfit/internal/logger"
	"github.com/spigell/jobfit/internal/parser"
	"github.com/spigell/jobfit/internal/resume"
	"github.com/spigell/jobfit/internal/secrets"
)

var apiKeyEnv = map[string]string{
	ai.ProviderOpenAI: "OPENAI_API_KEY",
	ai.ProviderGemini: "GEMINI_API_KEY",
}

// deps is what every command needs before doing its work.
type deps struct {
	config *Config
	logger *zap.Logger
	ai     ai.Config
	gen    ai.Generator
}

func prepare(ctx context.Context) *deps {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug("starting jobfit", zap.String("version", version))

	aiConfig, gen, err := newGenerator(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building llm client", zap.Error(err))
	}

	return &deps{config: config, logger: logger, ai: aiConfig, gen: gen}
}

// newGenerator returns a nil generator when no credential is configured, which
// switches every component to its deterministic path.
func newGenerator(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Config, ai.Generator, error) {
	aiConfig := ai.Config{
		Provider:       strings.ToLower(strings.TrimSpace(cfg.Provider)),
		Model:          cfg.Model,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		MaxConcurrency: cfg.MaxConcurrency,
		MaxLogLength:   cfg.MaxLogLength,
	}.WithDefaults()

	env, ok := apiKeyEnv[aiConfig.Provider]
	if !ok {
		return aiConfig, nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	key, err := secrets.LoadOptional(secrets.Source{
		Name:  aiConfig.Provider + " api key",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
		Env:   env,
	})
	if err != nil {
		return aiConfig, nil, err
	}
	if key == "" {
		log.Warn("llm credential is not set, running with deterministic fallbacks",
			zap.String("hint", fmt.Sprintf("set %s, ai.api-key or ai.api-key-file", env)),
		)
		return aiConfig, nil, nil
	}
	aiConfig.APIKey = key

	var gen ai.Generator
	switch aiConfig.Provider {
	case ai.ProviderGemini:
		g, err := gemini.NewGenerator(ctx, aiConfig, log)
		if err != nil {
			return aiConfig, nil, err
		}
		gen = g
	default:
		g, err := openai.NewGenerator(aiConfig, log)
		if err != nil {
			return aiConfig, nil, err
		}
		gen = g
	}

	genLogger := logger.WithCommonFields(log, aiConfig.Provider, gen.Model())
	genLogger.Info("llm client ready", zap.Duration("timeout", aiConfig.Timeout), zap.Int("max_retries", aiConfig.MaxRetries))

	return aiConfig, ai.WithLogging(gen, genLogger, aiConfig.MaxLogLength), nil
}

func (d *deps) jobsClient() (*jobs.Client, error) {
	cfg := d.config.Adzuna

	apiKey, err := secrets.LoadOptional(secrets.Source{
		Name:  "adzuna api key",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
		Env:   "ADZUNA_API_KEY",
	})
	if err != nil {
		return nil, err
	}

	appID, err := secrets.LoadOptional(secrets.Source{
		Name:  "adzuna app id",
		Value: cfg.AppID,
		Env:   "ADZUNA_APP_ID",
	})
	if err != nil {
		return nil, err
	}

	return jobs.New(logger.ForComponent(d.logger, "jobs"), appID, apiKey, cfg.Country), nil
}

// loadResume reads a JSON resume or parses a pdf/txt document with the LLM.
func (d *deps) loadResume(ctx context.Context) (resume.Resume, error) {
	path := strings.TrimSpace(d.config.Resume)
	if path == "" {
		return resume.Resume{}, errors.New("resume is required: pass --resume or set resume in the config")
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return resume.LoadFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return resume.Resume{}, err
	}

	result := d.parser().Parse(ctx, data, filepath.Base(path))
	if !result.Success {
		return resume.Resume{}, errors.New(result.Error)
	}
	if result.Warning != "" {
		d.logger.Warn("resume parsed with a warning", zap.String("warning", result.Warning))
	}

	return *result.Data, nil
}

func (d *deps) parser() *parser.Parser {
	return parser.New(d.gen, extract.New(d.ai.Timeout, d.logger), d.logger)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
