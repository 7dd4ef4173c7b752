package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaultsAndOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hradmin")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("DEFAULT_PER_PAGE", "not-a-number")

	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
	if !cfg.AuthEnabled || cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("expected overrides applied, got auth=%v ttl=%v", cfg.AuthEnabled, cfg.TokenTTL)
	}
	if cfg.DefaultPerPage != 15 {
		t.Fatalf("expected invalid per page to fall back to 15, got %d", cfg.DefaultPerPage)
	}
	if cfg.StorageConfigured() {
		t.Fatal("expected storage unconfigured without an endpoint")
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		DatabaseURL:        "postgres://localhost/hradmin",
		MaxBodyBytes:       1 << 20,
		RateLimitPerMinute: 60,
		DefaultPerPage:     15,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing database", func(c *Config) { c.DatabaseURL = "" }, "DATABASE_URL"},
		{"auth without secret", func(c *Config) { c.AuthEnabled = true }, "JWT_SECRET"},
		{"production without auth", func(c *Config) { c.Environment = "production" }, "AUTH_ENABLED"},
		{"tiny body limit", func(c *Config) { c.MaxBodyBytes = 10 }, "MAX_BODY_BYTES"},
		{"zero rate limit", func(c *Config) { c.RateLimitPerMinute = 0 }, "RATE_LIMIT_PER_MINUTE"},
		{"per page too large", func(c *Config) { c.DefaultPerPage = 500 }, "DEFAULT_PER_PAGE"},
		{"storage without bucket", func(c *Config) { c.MinioEndpoint = "localhost:9000" }, "MINIO_BUCKET"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %s, got %v", tc.want, err)
			}
		})
	}
}
