// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the service settings read by Load.
type Config struct {
	Port     string
	RedisURL string
	// SessionDB selects the Redis database for draw sessions; negative keeps
	// the one in RedisURL.
	SessionDB    int
	DatabaseURL  string
	CatalogURL   string
	CatalogFile  string
	BearerToken  string
	SessionTTL   time.Duration
	RateLimit    int
	LogLevel     slog.Level
	ShutdownWait time.Duration
}

// Load reads the configuration from environment variables, falling back to
// an optional .env file in the working directory.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("CATALOG_FILE", "data/destinations.json")
	v.SetDefault("REDIS_SESSION_DB", -1)
	v.SetDefault("SESSION_TTL", "1h")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 60)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SHUTDOWN_TIMEOUT", "30s")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading .env: %w", err)
		}
	}

	cfg := &Config{
		Port:         v.GetString("PORT"),
		RedisURL:     v.GetString("REDIS_URL"),
		SessionDB:    v.GetInt("REDIS_SESSION_DB"),
		DatabaseURL:  v.GetString("DATABASE_URL"),
		CatalogURL:   v.GetString("CATALOG_URL"),
		CatalogFile:  v.GetString("CATALOG_FILE"),
		BearerToken:  v.GetString("BEARER_TOKEN"),
		SessionTTL:   v.GetDuration("SESSION_TTL"),
		RateLimit:    v.GetInt("RATE_LIMIT_PER_MINUTE"),
		ShutdownWait: v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		cfg.LogLevel = slog.LevelInfo
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.RedisURL == "" {
		missing = append(missing, "REDIS_URL")
	}
	if c.BearerToken == "" {
		missing = append(missing, "BEARER_TOKEN")
	}
	if c.DatabaseURL == "" && c.CatalogURL == "" && c.CatalogFile == "" {
		missing = append(missing, "DATABASE_URL, CATALOG_URL or CATALOG_FILE")
	}
	if len(missing) > 0 {
		return fmt.Errorf("required configuration not set: %s", strings.Join(missing, ", "))
	}
	if c.SessionDB > 15 {
		return fmt.Errorf("REDIS_SESSION_DB must be at most 15, got %d", c.SessionDB)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimit)
	}
	return nil
}

// UseDatabase reports whether the catalog is served from Postgres.
func (c *Config) UseDatabase() bool {
	return c.DatabaseURL != ""
}

// UseCatalogURL reports whether the catalog is fetched over HTTP.
// DATABASE_URL takes precedence.
func (c *Config) UseCatalogURL() bool {
	return !c.UseDatabase() && c.CatalogURL != ""
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}
