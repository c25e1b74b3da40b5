package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"PORT", "PROD", "MIGRATE_POSTGRES", "JWT_SECRET", "CORS_ORIGINS", "REDIS_URL",
		"MATCH_SEARCH_LIMIT", "MATCH_SEARCH_WINDOW", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.Prod)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "localhost:6379", cfg.RedisURL)
	assert.Equal(t, 30, cfg.MatchSearchLimit)
	assert.Equal(t, time.Minute, cfg.MatchSearchWindow)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("PROD", "true")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CORS_ORIGINS", "https://squadup.gg, http://localhost:5173")
	t.Setenv("MATCH_SEARCH_LIMIT", "0")
	t.Setenv("MATCH_SEARCH_WINDOW", "30s")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.Prod)
	assert.Equal(t, []string{"https://squadup.gg", "http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, 0, cfg.MatchSearchLimit)
	assert.Equal(t, 30*time.Second, cfg.MatchSearchWindow)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("MATCH_SEARCH_LIMIT", "lots")
	_, err := Load()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("MATCH_SEARCH_WINDOW", "-1m")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadRequiresSecretInProd(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROD", "true")

	_, err := Load()
	assert.Error(t, err)
}
