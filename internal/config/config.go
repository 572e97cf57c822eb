package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv          string
	Port            string
	LogLevel        string
	LogFormat       string
	RedisURL        string
	AnalyzerBaseURL string
	HealthInterval  time.Duration
	HealthDelay     time.Duration
	IngestRatePerIP float64
	IngestBurst     int
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		RedisURL:        getEnv("REDIS_URL", ""),
		AnalyzerBaseURL: getEnv("ANALYZER_BASE_URL", ""),
	}

	var err error
	if cfg.HealthInterval, err = getDuration("HEALTH_POLL_INTERVAL", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.HealthDelay, err = getDuration("HEALTH_POLL_DELAY", 2*time.Second); err != nil {
		return nil, err
	}
	if cfg.IngestRatePerIP, err = getFloat("INGEST_RATE_PER_IP", 10); err != nil {
		return nil, err
	}
	if cfg.IngestBurst, err = getInt("INGEST_BURST", 20); err != nil {
		return nil, err
	}

	if cfg.HealthInterval <= 0 {
		return nil, fmt.Errorf("HEALTH_POLL_INTERVAL must be positive")
	}
	if cfg.IngestRatePerIP <= 0 {
		return nil, fmt.Errorf("INGEST_RATE_PER_IP must be positive")
	}
	if cfg.IngestBurst <= 0 {
		return nil, fmt.Errorf("INGEST_BURST must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	return d, nil
}

func getFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	return f, nil
}

func getInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}
