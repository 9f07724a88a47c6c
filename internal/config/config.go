// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreREST     = "rest"
)

// Config holds the environment driven configuration for the web server.
type Config struct {
	Port      int    `env:"GOLDEN_PORT" envDefault:"8080"`
	LogLevel  string `env:"GOLDEN_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"GOLDEN_LOG_FORMAT" envDefault:"console"`

	// Comment store
	Store       string `env:"GOLDEN_STORE" envDefault:"sqlite"`
	Table       string `env:"GOLDEN_TABLE" envDefault:"Comments"`
	DBPath      string `env:"GOLDEN_DB_PATH"`
	DatabaseURL string `env:"DATABASE_URL"`
	AutoMigrate bool   `env:"GOLDEN_AUTO_MIGRATE" envDefault:"false"`
	SupabaseURL string `env:"SUPABASE_URL"`
	SupabaseKey string `env:"SUPABASE_ANON_KEY"`

	// Upstreams
	OpenAIKey     string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	OpenAIModel   string        `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	RandomUserURL string        `env:"RANDOMUSER_URL" envDefault:"https://randomuser.me/api/"`
	HTTPTimeout   time.Duration `env:"GOLDEN_HTTP_TIMEOUT" envDefault:"15s"`

	// Client state
	FeedInterval time.Duration `env:"GOLDEN_FEED_INTERVAL" envDefault:"5s"`
	BoardTTL     time.Duration `env:"GOLDEN_BOARD_TTL" envDefault:"30m"`
}

// Load reads an optional .env file and parses the environment into Config.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	cfg.SupabaseURL = strings.TrimSpace(cfg.SupabaseURL)
	cfg.SupabaseKey = strings.TrimSpace(cfg.SupabaseKey)
	cfg.OpenAIKey = strings.TrimSpace(cfg.OpenAIKey)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store {
	case StoreSQLite, StorePostgres, StoreREST:
	default:
		return fmt.Errorf("GOLDEN_STORE must be one of sqlite, postgres, rest (got %q)", c.Store)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("GOLDEN_PORT out of range: %d", c.Port)
	}
	if c.FeedInterval <= 0 {
		return fmt.Errorf("GOLDEN_FEED_INTERVAL must be positive")
	}
	if c.BoardTTL <= 0 {
		return fmt.Errorf("GOLDEN_BOARD_TTL must be positive")
	}
	return nil
}

// StoreConfigured reports whether the selected store has the settings it
// needs. An unconfigured store still lets the server start.
func (c *Config) StoreConfigured() bool {
	switch c.Store {
	case StorePostgres:
		return c.DatabaseURL != ""
	case StoreREST:
		return c.SupabaseURL != "" && c.SupabaseKey != ""
	default:
		return true
	}
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
