package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest"
)

const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

type Config struct {
	rest.RestConf
	Storage       StorageConf
	AI            AIConf
	Slack         SlackConf     `json:",optional"`
	TrendCacheTTL time.Duration `json:",default=10m"`
}

type StorageConf struct {
	Backend     string `json:",default=file,options=file|postgres"`
	DataDir     string `json:",default=."`
	DatabaseURL string `json:",optional"`
}

type AIConf struct {
	APIKey  string        `json:",optional"`
	BaseURL string        `json:",optional"`
	Model   string        `json:",default=gpt-3.5-turbo"`
	Timeout time.Duration `json:",default=30s"`
}

// SlackConf enables the Slack surface when BotToken is set.
type SlackConf struct {
	BotToken      string `json:",optional"`
	SigningSecret string `json:",optional"`
	ChannelID     string `json:",optional"`
}

// Enabled reports whether the Slack surface should be started.
func (s SlackConf) Enabled() bool {
	return s.BotToken != ""
}

var defaultYAML = []byte(`Name: journal-companion
Host: 0.0.0.0
Port: 5000
Timeout: 60000
Log:
  Mode: console
  Encoding: plain
`)

// LoadConfig loads configuration from an optional YAML file and the environment.
// It first tries to load a .env file, then reads the YAML file (or the built-in
// defaults when file is empty), then applies environment variable overrides.
func LoadConfig(file string) (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		logx.Infof("No .env file loaded: %v", err)
	}

	var c Config
	if file != "" {
		if err := conf.Load(file, &c, conf.UseEnv()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", file, err)
		}
	} else if err := conf.LoadFromYamlBytes(defaultYAML, &c); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyEnv() error {
	c.Storage.Backend = getEnv("JOURNAL_STORAGE", c.Storage.Backend)
	c.Storage.DataDir = getEnv("JOURNAL_DATA_DIR", c.Storage.DataDir)
	c.Storage.DatabaseURL = getEnv("DATABASE_URL", c.Storage.DatabaseURL)

	c.AI.APIKey = getEnv("OPENAI_API_KEY", c.AI.APIKey)
	c.AI.Model = getEnv("OPENAI_MODEL", c.AI.Model)
	c.AI.BaseURL = getEnv("OPENAI_BASE_URL", c.AI.BaseURL)
	if v := os.Getenv("AI_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid AI_TIMEOUT %q: %w", v, err)
		}
		c.AI.Timeout = d
	}

	c.Slack.BotToken = getEnv("SLACK_BOT_TOKEN", c.Slack.BotToken)
	c.Slack.SigningSecret = getEnv("SLACK_SIGNING_SECRET", c.Slack.SigningSecret)
	c.Slack.ChannelID = getEnv("SLACK_CHANNEL_ID", c.Slack.ChannelID)

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Port = port
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case StorageFile:
		if c.Storage.DataDir == "" {
			return fmt.Errorf("JOURNAL_DATA_DIR is required for file storage")
		}
	case StoragePostgres:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for postgres storage")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.AI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT must be positive")
	}
	if c.Slack.Enabled() && c.Slack.SigningSecret == "" {
		return fmt.Errorf("SLACK_SIGNING_SECRET is required when SLACK_BOT_TOKEN is set")
	}
	return nil
}
