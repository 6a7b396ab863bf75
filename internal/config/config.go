package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Port string

	// Upstream download behavior
	FetchTimeout     time.Duration
	MaxDownloadBytes int64

	// Background re-warm cadence for the small datasets
	RefreshInterval time.Duration
	RefreshEnabled  bool
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "3001"),
		FetchTimeout:     getDurationEnv("FETCH_TIMEOUT", 5*time.Minute),
		MaxDownloadBytes: getInt64Env("MAX_DOWNLOAD_BYTES", 512*1024*1024),
		RefreshInterval:  getDurationEnv("REFRESH_INTERVAL", 6*time.Hour),
		RefreshEnabled:   getBoolEnv("REFRESH_ENABLED", true),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
