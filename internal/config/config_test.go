package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are clean.
	os.Unsetenv("COSTPILOT_PORT")
	os.Unsetenv("REDIS_PORT")
	os.Unsetenv("COSTPILOT_RATE_LIMIT_REQUESTS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.RedisHost != "localhost" {
		t.Errorf("expected default Redis host localhost, got %s", cfg.RedisHost)
	}
	if cfg.RedisPort != 6379 {
		t.Errorf("expected default Redis port 6379, got %d", cfg.RedisPort)
	}
	if cfg.RateLimitRequests != 120 {
		t.Errorf("expected default rate limit 120, got %d", cfg.RateLimitRequests)
	}
	if cfg.RateLimitWindow != time.Minute {
		t.Errorf("expected default rate limit window 1m, got %v", cfg.RateLimitWindow)
	}
	if cfg.EstimateCacheTTL != 5*time.Minute {
		t.Errorf("expected default estimate cache TTL 5m, got %v", cfg.EstimateCacheTTL)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Setenv("COSTPILOT_PORT", "9090")
	os.Setenv("REDIS_HOST", "redis.example.com")
	os.Setenv("REDIS_PORT", "6380")
	os.Setenv("COSTPILOT_CORS_ORIGINS", "https://a.example.com,https://b.example.com")
	defer func() {
		os.Unsetenv("COSTPILOT_PORT")
		os.Unsetenv("REDIS_HOST")
		os.Unsetenv("REDIS_PORT")
		os.Unsetenv("COSTPILOT_CORS_ORIGINS")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.RedisHost != "redis.example.com" {
		t.Errorf("expected Redis host redis.example.com, got %s", cfg.RedisHost)
	}
	if cfg.RedisPort != 6380 {
		t.Errorf("expected Redis port 6380, got %d", cfg.RedisPort)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "https://a.example.com" {
		t.Errorf("unexpected CORS origins: %v", cfg.CORSOrigins)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	os.Setenv("REDIS_PORT", "not_a_number")
	defer os.Unsetenv("REDIS_PORT")

	_, err := Load()
	if err == nil {
		t.Error("expected error for invalid REDIS_PORT, got nil")
	}
}

func TestRedisAddr(t *testing.T) {
	cfg := &Config{
		RedisHost: "redis.example.com",
		RedisPort: 6380,
	}

	expected := "redis.example.com:6380"
	if cfg.RedisAddr() != expected {
		t.Errorf("RedisAddr() = %s, want %s", cfg.RedisAddr(), expected)
	}
}
