package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"JOURNAL_STORAGE", "JOURNAL_DATA_DIR", "DATABASE_URL",
	"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL", "AI_TIMEOUT",
	"SLACK_BOT_TOKEN", "SLACK_SIGNING_SECRET", "SLACK_CHANNEL_ID", "PORT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
	// keep godotenv from picking up a developer's .env
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	c, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "journal-companion", c.Name)
	assert.Equal(t, 5000, c.Port)
	assert.Equal(t, StorageFile, c.Storage.Backend)
	assert.Equal(t, ".", c.Storage.DataDir)
	assert.Equal(t, "gpt-3.5-turbo", c.AI.Model)
	assert.Equal(t, 30*time.Second, c.AI.Timeout)
	assert.Equal(t, 10*time.Minute, c.TrendCacheTTL)
	assert.False(t, c.Slack.Enabled())

	assert.EqualError(t, c.Validate(), "OPENAI_API_KEY is required")
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JOURNAL_STORAGE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/journal")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("AI_TIMEOUT", "5s")
	t.Setenv("PORT", "8080")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-1")
	t.Setenv("SLACK_SIGNING_SECRET", "secret")

	c, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, StoragePostgres, c.Storage.Backend)
	assert.Equal(t, "postgres://localhost/journal", c.Storage.DatabaseURL)
	assert.Equal(t, "gpt-4o-mini", c.AI.Model)
	assert.Equal(t, 5*time.Second, c.AI.Timeout)
	assert.Equal(t, 8080, c.Port)
	assert.True(t, c.Slack.Enabled())
	assert.NoError(t, c.Validate())
}

func TestInvalidEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_TIMEOUT", "soon")
	_, err := LoadConfig("")
	assert.ErrorContains(t, err, "AI_TIMEOUT")

	t.Setenv("AI_TIMEOUT", "")
	t.Setenv("PORT", "http")
	_, err = LoadConfig("")
	assert.ErrorContains(t, err, "PORT")
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("JOURNAL_TEST_KEY", "sk-from-file")

	path := filepath.Join(t.TempDir(), "journal.yaml")
	yaml := `Name: journal
Port: 7000
Storage:
  DataDir: /var/lib/journal
AI:
  APIKey: ${JOURNAL_TEST_KEY}
  Timeout: 12s
TrendCacheTTL: 1m
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7000, c.Port)
	assert.Equal(t, "/var/lib/journal", c.Storage.DataDir)
	assert.Equal(t, "sk-from-file", c.AI.APIKey)
	assert.Equal(t, 12*time.Second, c.AI.Timeout)
	assert.Equal(t, time.Minute, c.TrendCacheTTL)
	assert.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Storage: StorageConf{Backend: StorageFile, DataDir: "."},
			AI:      AIConf{APIKey: "sk", Timeout: time.Second},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"valid", func(*Config) {}, ""},
		{"postgres without url", func(c *Config) { c.Storage.Backend = StoragePostgres }, "DATABASE_URL is required for postgres storage"},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "s3" }, `unknown storage backend "s3"`},
		{"slack without secret", func(c *Config) { c.Slack.BotToken = "xoxb" }, "SLACK_SIGNING_SECRET is required when SLACK_BOT_TOKEN is set"},
		{"zero timeout", func(c *Config) { c.AI.Timeout = 0 }, "AI_TIMEOUT must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			err := c.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.want)
		})
	}
}
