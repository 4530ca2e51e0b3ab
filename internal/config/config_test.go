package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "e!", cfg.CommandPrefix)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.AIBaseURL)
	assert.Equal(t, 60*time.Second, cfg.CompletionTimeout)
	assert.Equal(t, 50, cfg.HistoryMaxLength)
	assert.Equal(t, 6*time.Hour, cfg.HistoryIdleTTL)
	assert.Equal(t, time.Hour, cfg.HistoryCleanupEvery)
	assert.Equal(t, 30*time.Minute, cfg.PresenceEvery)
	assert.Equal(t, 0.0, cfg.DefaultReplyProbability)
	assert.Equal(t, "json", cfg.StorageDriver)
	assert.Empty(t, cfg.TriggerWords)
}

func TestNewRequiresToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	os.Unsetenv("DISCORD_TOKEN")

	_, err := New()
	assert.Error(t, err)
}

func TestNewParsesLists(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("TRIGGER_WORDS", "aisling,dreamer")
	t.Setenv("DEFAULT_REACTION_PROBABILITY", "0.25")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, []string{"aisling", "dreamer"}, cfg.TriggerWords)
	assert.Equal(t, 0.25, cfg.DefaultReactionProbability)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			DiscordToken:      "t",
			CommandPrefix:     "e!",
			HistoryMaxLength:  50,
			CompletionTimeout: time.Minute,
			StorageDriver:     "json",
			StoragePath:       "data/p.json",
		}
	}

	ok := base()
	assert.NoError(t, ok.Validate())

	cases := map[string]func(*Config){
		"reply above one":    func(c *Config) { c.DefaultReplyProbability = 1.5 },
		"negative reaction":  func(c *Config) { c.DefaultReactionProbability = -0.1 },
		"zero history":       func(c *Config) { c.HistoryMaxLength = 0 },
		"zero timeout":       func(c *Config) { c.CompletionTimeout = 0 },
		"empty prefix":       func(c *Config) { c.CommandPrefix = "" },
		"sqlite without dsn": func(c *Config) { c.StorageDriver = "sqlite" },
		"unknown driver":     func(c *Config) { c.StorageDriver = "redis" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base()
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("AISLING_TEST_VALUE=loaded\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("AISLING_TEST_VALUE") })

	assert.True(t, LoadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("AISLING_TEST_VALUE"))
	assert.False(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
