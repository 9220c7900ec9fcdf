package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GROUPVAULT_DB_PATH", "")
	t.Setenv("GROUPVAULT_LOG_LEVEL", "")
	t.Setenv("GROUPVAULT_READ_POOL_SIZE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "groupvault.sqlite", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 4, cfg.ReadPoolSize)
	assert.Empty(t, cfg.Warnings)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("GROUPVAULT_DB_PATH", "/var/lib/groupvault/dir.sqlite")
	t.Setenv("GROUPVAULT_LOG_LEVEL", "debug")
	t.Setenv("GROUPVAULT_READ_POOL_SIZE", "8")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/groupvault/dir.sqlite", cfg.DBPath)
	assert.Equal(t, 8, cfg.ReadPoolSize)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_InvalidValuesWarn(t *testing.T) {
	t.Setenv("GROUPVAULT_DB_PATH", "")
	t.Setenv("GROUPVAULT_LOG_LEVEL", "loud")
	t.Setenv("GROUPVAULT_READ_POOL_SIZE", "many")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 4, cfg.ReadPoolSize)
	assert.Len(t, cfg.Warnings, 2)
}

func TestSlogLevel(t *testing.T) {
	for level, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	} {
		cfg := &Config{LogLevel: level}
		assert.Equal(t, want, cfg.SlogLevel())
	}
}
