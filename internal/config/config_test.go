package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "zentra", cfg.Database.DBName)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, "http://localhost:3000", cfg.App.BaseURL)
	assert.Equal(t, "log", cfg.Email.Mode)
	assert.Equal(t, "development", cfg.Env)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("DB_NAME", "zentra_test")
	t.Setenv("EMAIL_MODE", "ses")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "zentra_test", cfg.Database.DBName)
	assert.Equal(t, "ses", cfg.Email.Mode)
}
