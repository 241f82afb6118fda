// Package config handles loading and validating configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the CostPilot service.
type Config struct {
	// Server
	Port     string
	LogLevel string

	// CORS
	CORSOrigins []string

	// Redis (optional; the service degrades to no caching / no rate
	// limiting when unreachable)
	RedisHost     string
	RedisPort     int
	RedisPassword string

	// Rate limiting
	RateLimitRequests int64
	RateLimitWindow   time.Duration

	// Estimate response cache
	EstimateCacheTTL time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:     getEnv("COSTPILOT_PORT", "8080"),
		LogLevel: getEnv("COSTPILOT_LOG_LEVEL", "info"),

		CORSOrigins: strings.Split(getEnv("COSTPILOT_CORS_ORIGINS", "*"), ","),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
	}

	redisPort, err := strconv.Atoi(getEnv("REDIS_PORT", "6379"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}
	cfg.RedisPort = redisPort

	rateLimit, err := strconv.ParseInt(getEnv("COSTPILOT_RATE_LIMIT_REQUESTS", "120"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid COSTPILOT_RATE_LIMIT_REQUESTS: %w", err)
	}
	cfg.RateLimitRequests = rateLimit

	windowSeconds, err := strconv.Atoi(getEnv("COSTPILOT_RATE_LIMIT_WINDOW_SECONDS", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid COSTPILOT_RATE_LIMIT_WINDOW_SECONDS: %w", err)
	}
	cfg.RateLimitWindow = time.Duration(windowSeconds) * time.Second

	cacheTTLSeconds, err := strconv.Atoi(getEnv("COSTPILOT_ESTIMATE_CACHE_TTL_SECONDS", "300"))
	if err != nil {
		return nil, fmt.Errorf("invalid COSTPILOT_ESTIMATE_CACHE_TTL_SECONDS: %w", err)
	}
	cfg.EstimateCacheTTL = time.Duration(cacheTTLSeconds) * time.Second

	return cfg, nil
}

// RedisAddr returns the Redis address in host:port format.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
