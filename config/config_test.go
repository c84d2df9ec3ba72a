package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Environment != "development" {
		t.Fatalf("expected development environment, got %s", cfg.Environment)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("expected 2 default origins, got %v", cfg.AllowedOrigins)
	}
	if cfg.PresenceTimeout != 2*time.Second {
		t.Fatalf("expected 2s presence timeout, got %s", cfg.PresenceTimeout)
	}
	if cfg.Redis.Host != "localhost" || cfg.Redis.Port != "6379" || cfg.Redis.DB != 0 {
		t.Fatalf("unexpected default redis config: %+v", cfg.Redis)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example,https://c.example")
	t.Setenv("PRESENCE_TIMEOUT", "500ms")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Fatalf("expected port 9000, got %s", cfg.Port)
	}
	if cfg.Environment != "production" {
		t.Fatalf("expected production, got %s", cfg.Environment)
	}
	if len(cfg.AllowedOrigins) != 3 || cfg.AllowedOrigins[2] != "https://c.example" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if cfg.PresenceTimeout != 500*time.Millisecond {
		t.Fatalf("expected 500ms presence timeout, got %s", cfg.PresenceTimeout)
	}
	if cfg.Redis.Host != "redis.internal" || cfg.Redis.DB != 3 {
		t.Fatalf("unexpected redis config: %+v", cfg.Redis)
	}
}
