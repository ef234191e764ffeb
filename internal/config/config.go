package config

import (
	"os"
	"strconv"
)

// Config holds the demo binary's configuration. The engine itself takes all
// of its inputs through the ProducerCommand; these knobs only shape the demo
// command and observability.
type Config struct {
	// Environment
	Environment string

	// Demo command defaults
	Genre string
	BPM   float64
	Seed  int64

	// Observability
	SentryDSN string // Sentry DSN for error tracking
}

func Load() *Config {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Genre:       getEnv("GENRE", "electronic"),
		BPM:         getEnvFloat("BPM", 120),
		Seed:        getEnvInt("SEED", 1),
		SentryDSN:   getEnv("SENTRY_DSN", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
