package cmd

import (
	"errors"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/jobfit/internal/ai"
	"github.com/spigell/jobfit/internal/jobs"
)

const (
	app = "jobfit"
)

type Config struct {
	Resume      string             `mapstructure:"resume"`
	ExcludeFile string             `mapstructure:"exclude-file"`
	Search      *jobs.SearchParams `mapstructure:"search"`
	AI          *AIConfig          `mapstructure:"ai"`
	Adzuna      *AdzunaConfig      `mapstructure:"adzuna"`
	Match       *MatchConfig       `mapstructure:"match"`
}

type AIConfig struct {
	Provider       string        `mapstructure:"provider"`
	Model          string        `mapstructure:"model"`
	APIKey         string        `mapstructure:"api-key"`
	APIKeyFile     string        `mapstructure:"api-key-file"`
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxRetries     int           `mapstructure:"max-retries"`
	MaxConcurrency int           `mapstructure:"max-concurrency"`
	MaxLogLength   int           `mapstructure:"max-log-length"`
}

type AdzunaConfig struct {
	AppID      string `mapstructure:"app-id"`
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Country    string `mapstructure:"country"`
}

type MatchConfig struct {
	MinimumScore     int      `mapstructure:"minimum-score"`
	ExcludeCompanies []string `mapstructure:"exclude-companies"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobfit scores job postings against a resume and tailors the resume for them",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobfit.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("resume", "r", "", "resume file: json, or a pdf/txt document parsed on the fly")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("resume", rootCmd.PersistentFlags().Lookup("resume"))

	viper.SetDefault("ai.provider", ai.ProviderOpenAI)
	viper.SetDefault("ai.timeout", ai.DefaultTimeout)
	viper.SetDefault("ai.max-retries", 1)
	viper.SetDefault("ai.max-concurrency", ai.DefaultMaxConcurrency)
	viper.SetDefault("ai.max-log-length", ai.DefaultMaxLogLength)
	viper.SetDefault("search.page", 1)
}

func initConfig() {
	// Credentials may live in a .env file next to the config.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	viper.SetEnvPrefix(app)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	err := viper.ReadInConfig()

	// Every command works without a config file when it was not asked for explicitly.
	var notFound viper.ConfigFileNotFoundError
	if cfgFile == "" && errors.As(err, &notFound) {
		return
	}

	// We can't proceed if the config file parsed with error.
	if err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Search == nil {
		config.Search = &jobs.SearchParams{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.Adzuna == nil {
		config.Adzuna = &AdzunaConfig{}
	}
	if config.Match == nil {
		config.Match = &MatchConfig{}
	}

	return config, nil
}
