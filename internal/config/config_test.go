// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 5000 {
		t.Errorf("default port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Database.Path != "/data/olive.duckdb" {
		t.Errorf("default db path = %q", cfg.Database.Path)
	}
	if cfg.Generator.Seed != 42 {
		t.Errorf("default generator seed = %d, want 42", cfg.Generator.Seed)
	}
	if cfg.Generator.Days != 90 {
		t.Errorf("default generator days = %d, want 90", cfg.Generator.Days)
	}
	if cfg.Generator.CampaignsPerChannel != 15 || cfg.Generator.OrganicBase != 2500 {
		t.Errorf("default generator volume = %d/%d, want 15/2500",
			cfg.Generator.CampaignsPerChannel, cfg.Generator.OrganicBase)
	}
	if cfg.API.DefaultDays != 30 || cfg.API.MaxDays != 365 {
		t.Errorf("default API window = %d/%d, want 30/365", cfg.API.DefaultDays, cfg.API.MaxDays)
	}
	if cfg.API.CacheTTL != 5*time.Minute {
		t.Errorf("default cache TTL = %v, want 5m", cfg.API.CacheTTL)
	}
	if cfg.Security.AuthMode != "none" {
		t.Errorf("default auth mode = %q, want none", cfg.Security.AuthMode)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("API_PORT", "8080")
	t.Setenv("DUCKDB_PATH", ":memory:")
	t.Setenv("GENERATOR_DAYS", "14")
	t.Setenv("GENERATOR_CAMPAIGNS_PER_CHANNEL", "5")
	t.Setenv("GENERATOR_ORGANIC_BASE", "800")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Path != ":memory:" {
		t.Errorf("db path = %q, want :memory:", cfg.Database.Path)
	}
	if cfg.Generator.Days != 14 {
		t.Errorf("generator days = %d, want 14", cfg.Generator.Days)
	}
	if cfg.Generator.CampaignsPerChannel != 5 || cfg.Generator.OrganicBase != 800 {
		t.Errorf("generator volume = %d/%d, want 5/800",
			cfg.Generator.CampaignsPerChannel, cfg.Generator.OrganicBase)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9000
generator:
  days: 30
  seed: 7
security:
  cors_origins:
    - http://localhost:5173
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Generator.Seed != 7 {
		t.Errorf("seed = %d, want 7", cfg.Generator.Seed)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "http://localhost:5173" {
		t.Errorf("cors origins = %v", cfg.Security.CORSOrigins)
	}
}

func TestEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("API_PORT", "7777")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("env should override file: port = %d, want 7777", cfg.Server.Port)
	}
}

func TestCORSFromEnvCommaSeparated(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "http://a.example.com, http://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Security.CORSOrigins) != 2 {
		t.Fatalf("cors origins = %v, want 2 entries", cfg.Security.CORSOrigins)
	}
	if cfg.Security.CORSOrigins[1] != "http://b.example.com" {
		t.Errorf("second origin = %q", cfg.Security.CORSOrigins[1])
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "port out of range",
			mutate: func(c *Config) { c.Server.Port = 0 },
			want:   "API_PORT",
		},
		{
			name:   "generator days too small",
			mutate: func(c *Config) { c.Generator.Days = 2 },
			want:   "GENERATOR_DAYS",
		},
		{
			name:   "max days below default days",
			mutate: func(c *Config) { c.API.MaxDays = 7 },
			want:   "API_MAX_DAYS",
		},
		{
			name:   "unknown auth mode",
			mutate: func(c *Config) { c.Security.AuthMode = "oauth" },
			want:   "AUTH_MODE",
		},
		{
			name: "jwt without secret",
			mutate: func(c *Config) {
				c.Security.AuthMode = "jwt"
			},
			want: "JWT_SECRET",
		},
		{
			name: "jwt secret too short",
			mutate: func(c *Config) {
				c.Security.AuthMode = "jwt"
				c.Security.JWTSecret = "short"
			},
			want: "32 characters",
		},
		{
			name: "placeholder jwt secret",
			mutate: func(c *Config) {
				c.Security.AuthMode = "jwt"
				c.Security.JWTSecret = strings.Repeat("CHANGEME", 5)
			},
			want: "placeholder",
		},
		{
			name: "auth none in production",
			mutate: func(c *Config) {
				c.Server.Environment = "production"
			},
			want: "AUTH_MODE=none",
		},
		{
			name: "wildcard cors in production with auth",
			mutate: func(c *Config) {
				c.Server.Environment = "production"
				c.Security.AuthMode = "jwt"
				c.Security.JWTSecret = strings.Repeat("s", 32)
				c.Security.AdminUsername = "admin"
				c.Security.AdminPassword = "v3ry-Str0ng-Passw0rd!"
				c.Security.CORSOrigins = []string{"*"}
			},
			want: "CORS_ORIGINS",
		},
		{
			name:   "spike factor too low",
			mutate: func(c *Config) { c.Signals.CPISpikeFactor = 0.9 },
			want:   "SIGNALS_CPI_SPIKE_FACTOR",
		},
		{
			name:   "bad log level",
			mutate: func(c *Config) { c.Logging.Level = "verbose" },
			want:   "LOG_LEVEL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestValidJWTConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Security.AuthMode = "jwt"
	cfg.Security.JWTSecret = strings.Repeat("k", 48)
	cfg.Security.AdminUsername = "admin"
	cfg.Security.AdminPassword = "v3ry-Str0ng-Passw0rd!"

	if err := cfg.Validate(); err != nil {
		t.Errorf("valid jwt config should pass: %v", err)
	}
}

func TestIsProduction(t *testing.T) {
	cfg := defaultConfig()

	for _, env := range []string{"production", "PROD", "prod"} {
		cfg.Server.Environment = env
		if !cfg.IsProduction() {
			t.Errorf("IsProduction(%q) = false, want true", env)
		}
	}
	for _, env := range []string{"", "development", "dev"} {
		cfg.Server.Environment = env
		if cfg.IsProduction() {
			t.Errorf("IsProduction(%q) = true, want false", env)
		}
		if !cfg.IsDevelopment() {
			t.Errorf("IsDevelopment(%q) = false, want true", env)
		}
	}
}

func TestEnvTransformSkipsUnknown(t *testing.T) {
	if got := envTransformFunc("PATH"); got != "" {
		t.Errorf("unmapped env var should be skipped, got %q", got)
	}
	if got := envTransformFunc("JWT_SECRET"); got != "security.jwt_secret" {
		t.Errorf("JWT_SECRET mapped to %q", got)
	}
}
