// Package auth provides JWT authentication for the rentalhub API.
package auth

import (
	"os"
	"time"
)

// Config holds authentication configuration.
type Config struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string
	DevMode       bool
}

// ConfigFromEnv creates a Config from environment variables.
func ConfigFromEnv() Config {
	return Config{
		JWTSecret:     os.Getenv("RH_JWT_SECRET"),
		TokenTTL:      ttlFromEnv("RH_TOKEN_TTL", 24*time.Hour),
		AdminEmail:    envOrDefault("RH_ADMIN_EMAIL", "admin@rentalhub.com"),
		AdminPassword: envOrDefault("RH_ADMIN_PASSWORD", "admin123"),
		DevMode:       os.Getenv("RH_DEV_MODE") == "true",
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func ttlFromEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
