// Package config loads the bot configuration from the environment and an optional .env file.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DiscordToken  string `env:"DISCORD_TOKEN,required,notEmpty"`
	CommandPrefix string `env:"COMMAND_PREFIX" envDefault:"e!"`

	// AI
	AIBaseURL         string        `env:"AI_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	AIAPIKey          string        `env:"AI_API_KEY"`
	AIModel           string        `env:"AI_MODEL" envDefault:"openai/gpt-4o-mini"`
	AIMaxTokens       int           `env:"AI_MAX_TOKENS" envDefault:"400"`
	AITemperature     float32       `env:"AI_TEMPERATURE" envDefault:"0.9"`
	AIMaxAttempts     int           `env:"AI_MAX_ATTEMPTS" envDefault:"2"`
	CompletionTimeout time.Duration `env:"COMPLETION_TIMEOUT" envDefault:"60s"`

	// Persona
	PersonaPromptPath string   `env:"PERSONA_PROMPT_PATH"`
	TriggerWords      []string `env:"TRIGGER_WORDS" envSeparator:","`

	// Probabilities used when a channel has no stored record
	DefaultReplyProbability    float64 `env:"DEFAULT_REPLY_PROBABILITY" envDefault:"0"`
	DefaultReactionProbability float64 `env:"DEFAULT_REACTION_PROBABILITY" envDefault:"0"`

	// Storage
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"json"`
	StoragePath   string `env:"STORAGE_PATH" envDefault:"data/probabilities.json"`
	StorageDSN    string `env:"STORAGE_DSN"`
	TranscriptDir string `env:"TRANSCRIPT_DIR" envDefault:"conversations"`

	// History maintenance
	HistoryMaxLength    int           `env:"HISTORY_MAX_LENGTH" envDefault:"50"`
	HistoryIdleTTL      time.Duration `env:"HISTORY_IDLE_TTL" envDefault:"6h"`
	HistoryCleanupEvery time.Duration `env:"HISTORY_CLEANUP_INTERVAL" envDefault:"1h"`
	PresenceEvery       time.Duration `env:"PRESENCE_INTERVAL" envDefault:"30m"`

	SentimentWorkers int `env:"SENTIMENT_WORKERS" envDefault:"2"`

	// Observability
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty   bool   `env:"LOG_PRETTY" envDefault:"true"`
	LogFile     string `env:"LOG_FILE"`
	MetricsAddr string `env:"METRICS_ADDR"`
}

// LoadDotEnv loads variables from a .env file if present. It reports whether a file was loaded.
func LoadDotEnv(paths ...string) bool {
	return godotenv.Load(paths...) == nil
}

// New parses the environment into a Config and validates it.
func New() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DefaultReplyProbability < 0 || c.DefaultReplyProbability > 1 {
		return fmt.Errorf("DEFAULT_REPLY_PROBABILITY must be within [0,1], got %v", c.DefaultReplyProbability)
	}
	if c.DefaultReactionProbability < 0 || c.DefaultReactionProbability > 1 {
		return fmt.Errorf("DEFAULT_REACTION_PROBABILITY must be within [0,1], got %v", c.DefaultReactionProbability)
	}
	if c.HistoryMaxLength <= 0 {
		return fmt.Errorf("HISTORY_MAX_LENGTH must be positive, got %d", c.HistoryMaxLength)
	}
	if c.CompletionTimeout <= 0 {
		return fmt.Errorf("COMPLETION_TIMEOUT must be positive, got %v", c.CompletionTimeout)
	}
	if c.CommandPrefix == "" {
		return fmt.Errorf("COMMAND_PREFIX must not be empty")
	}
	switch c.StorageDriver {
	case "json":
		if c.StoragePath == "" {
			return fmt.Errorf("STORAGE_PATH is required for the json driver")
		}
	case "sqlite", "postgres":
		if c.StorageDSN == "" {
			return fmt.Errorf("STORAGE_DSN is required for the %s driver", c.StorageDriver)
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER: %s", c.StorageDriver)
	}
	return nil
}
