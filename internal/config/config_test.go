package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.AnalyzerBaseURL)
	assert.Equal(t, 30*time.Second, cfg.HealthInterval)
	assert.Equal(t, 2*time.Second, cfg.HealthDelay)
	assert.Equal(t, 10.0, cfg.IngestRatePerIP)
	assert.Equal(t, 20, cfg.IngestBurst)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("ANALYZER_BASE_URL", "http://analyzer:5000")
	t.Setenv("HEALTH_POLL_INTERVAL", "10s")
	t.Setenv("HEALTH_POLL_DELAY", "500ms")
	t.Setenv("INGEST_RATE_PER_IP", "2.5")
	t.Setenv("INGEST_BURST", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, "http://analyzer:5000", cfg.AnalyzerBaseURL)
	assert.Equal(t, 10*time.Second, cfg.HealthInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.HealthDelay)
	assert.Equal(t, 2.5, cfg.IngestRatePerIP)
	assert.Equal(t, 5, cfg.IngestBurst)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"malformed duration", "HEALTH_POLL_INTERVAL", "soon"},
		{"non-positive interval", "HEALTH_POLL_INTERVAL", "0s"},
		{"malformed rate", "INGEST_RATE_PER_IP", "fast"},
		{"non-positive rate", "INGEST_RATE_PER_IP", "-1"},
		{"malformed burst", "INGEST_BURST", "lots"},
		{"non-positive burst", "INGEST_BURST", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
