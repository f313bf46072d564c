package config

import (
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	for _, key := range []string{"POSTGRES_HOST", "APP_ENV", "JWT_ACCESS_TOKEN_TTL", "RATE_LIMIT_PER_MINUTE", "OTEL_SAMPLING_RATIO"} {
		t.Setenv(key, "")
	}

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Postgres.Host != "" {
		t.Fatalf("expected in-memory store by default, got host %q", cfg.Postgres.Host)
	}
	if cfg.JWT.AccessTokenTTL != 12*time.Hour {
		t.Fatalf("expected 12h token ttl, got %s", cfg.JWT.AccessTokenTTL)
	}
	if cfg.Redis.RateLimitPerMinute != 60 {
		t.Fatalf("expected 60 requests per minute, got %d", cfg.Redis.RateLimitPerMinute)
	}
	if cfg.Otel.SamplingRatio != 1 {
		t.Fatalf("expected sampling ratio 1, got %v", cfg.Otel.SamplingRatio)
	}
	if cfg.IsProduction() {
		t.Fatalf("expected development environment by default")
	}
}

func TestNewConfigOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")
	t.Setenv("OTEL_SAMPLING_RATIO", "0.25")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.IsProduction() || cfg.Postgres.Host != "db" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Redis.RateLimitPerMinute != 60 {
		t.Fatalf("malformed int must fall back to default, got %d", cfg.Redis.RateLimitPerMinute)
	}
	if cfg.Otel.SamplingRatio != 0.25 {
		t.Fatalf("expected 0.25, got %v", cfg.Otel.SamplingRatio)
	}
	if cfg.Kafka.Brokers != "k1:9092,k2:9092" {
		t.Fatalf("unexpected brokers %q", cfg.Kafka.Brokers)
	}
}

func TestNewConfigRejectsBadDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "soon")
	if _, err := NewConfig(); err == nil {
		t.Fatalf("expected error for malformed duration")
	}
}
