// Package config centralises configuration parsing for the workout tracker.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures runtime configuration values for the workout API.
type Config struct {
	HTTPAddress     string
	JWTSecret       string
	JWTIssuer       string
	AuthEnabled     bool          // Disables bearer validation when false; meant for local runs.
	KafkaBrokers    []string      // Empty leaves the summary sink disabled.
	SummaryTopic    string
	PublishTimeout  time.Duration // Upper bound for a single summary publish.
	ShutdownTimeout time.Duration
}

// Load reads environment variables into Config, applying sensible defaults for local dev.
func Load() Config {
	return Config{
		HTTPAddress:     getEnv("HTTP_ADDRESS", ":8080"),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTIssuer:       getEnv("JWT_ISSUER", "i5e.identity"),
		AuthEnabled:     getBoolEnv("AUTH_ENABLED", true),
		KafkaBrokers:    splitAndTrim(getEnv("KAFKA_BROKERS", "")),
		SummaryTopic:    getEnv("SUMMARY_TOPIC", "workout_summaries"),
		PublishTimeout:  getDurationEnv("PUBLISH_TIMEOUT", 5*time.Second),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
