package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all process-wide configuration, loaded once at startup
// and passed explicitly into the services that need it.
type Config struct {
	Port        string
	Environment string
	CORSOrigin  string

	DatabaseURL string

	AccessTokenSecret  []byte
	AccessTokenExpiry  time.Duration
	RefreshTokenSecret []byte
	RefreshTokenExpiry time.Duration

	AWSRegion  string
	AWSBucket  string
	CDNBaseURL string

	RedisHost     string
	RedisPort     string
	RedisPassword string

	LogLevel string
	LogFile  string
}

// Load builds a Config from environment variables. The token secrets are
// required; everything else has a development default.
func Load() (*Config, error) {
	accessSecret := os.Getenv("ACCESS_TOKEN_SECRET")
	if accessSecret == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET environment variable is required")
	}
	refreshSecret := os.Getenv("REFRESH_TOKEN_SECRET")
	if refreshSecret == "" {
		return nil, fmt.Errorf("REFRESH_TOKEN_SECRET environment variable is required")
	}

	cfg := &Config{
		Port:               getEnvOrDefault("PORT", "8000"),
		Environment:        getEnvOrDefault("ENVIRONMENT", "development"),
		CORSOrigin:         getEnvOrDefault("CORS_ORIGIN", "*"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		AccessTokenSecret:  []byte(accessSecret),
		AccessTokenExpiry:  parseDurationOrDefault(os.Getenv("ACCESS_TOKEN_EXPIRY"), 15*time.Minute),
		RefreshTokenSecret: []byte(refreshSecret),
		RefreshTokenExpiry: parseDurationOrDefault(os.Getenv("REFRESH_TOKEN_EXPIRY"), 10*24*time.Hour),
		AWSRegion:          getEnvOrDefault("AWS_REGION", "us-east-1"),
		AWSBucket:          os.Getenv("AWS_BUCKET"),
		CDNBaseURL:         os.Getenv("CDN_BASE_URL"),
		RedisHost:          os.Getenv("REDIS_HOST"),
		RedisPort:          getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:            getEnvOrDefault("LOG_FILE", "server.log"),
	}

	return cfg, nil
}

// parseDurationOrDefault parses values like "15m" or "240h", falling back
// to the default on empty or malformed input.
func parseDurationOrDefault(s string, defaultValue time.Duration) time.Duration {
	if s == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultValue
	}
	return d
}

// getEnvOrDefault returns environment variable or default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
