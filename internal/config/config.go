// Package config handles environment-based configuration for the
// groupvault tooling.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds the directory database location and logging settings.
type Config struct {
	DBPath       string // path to the SQLite directory database
	ReadPoolSize int    // read pool connections (default 4)
	LogLevel     string // debug, info, warn, error (default "info")

	// Warnings collects non-fatal problems found during loading. They are
	// logged by the caller once the logger exists.
	Warnings []string
}

// Load reads configuration from GROUPVAULT_* environment variables and
// applies defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:       os.Getenv("GROUPVAULT_DB_PATH"),
		LogLevel:     os.Getenv("GROUPVAULT_LOG_LEVEL"),
		ReadPoolSize: 4,
	}

	if cfg.DBPath == "" {
		cfg.DBPath = "groupvault.sqlite"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if v := os.Getenv("GROUPVAULT_READ_POOL_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			cfg.Warnings = append(cfg.Warnings,
				fmt.Sprintf("invalid GROUPVAULT_READ_POOL_SIZE %q, using default", v))
		} else {
			cfg.ReadPoolSize = n
		}
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		cfg.Warnings = append(cfg.Warnings,
			fmt.Sprintf("unknown GROUPVAULT_LOG_LEVEL %q, using info", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
