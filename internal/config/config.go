// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Web server
	Bind string

	// Database
	DBPath string

	// Session
	JWTSecret     string
	TokenDuration time.Duration

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables, consulting .env first
// (non-fatal if missing).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Bind:      getEnvDefault("BIND", "0.0.0.0:8080"),
		DBPath:    getEnvDefault("DB_PATH", "./data/splitzy.db"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		LogLevel:  getEnvDefault("LOG_LEVEL", "info"),
	}

	tokenHours := getEnvDefault("TOKEN_DURATION_HOURS", "24")
	d, err := time.ParseDuration(tokenHours + "h")
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_DURATION_HOURS %q: %w", tokenHours, err)
	}
	cfg.TokenDuration = d

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnvDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
