// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

// Package config defines the application configuration and its layered
// loading via koanf: built-in defaults, then an optional YAML file, then
// environment variables.
package config

import (
	"time"
)

// Config is the root configuration for the Olive server.
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Generator GeneratorConfig `koanf:"generator"`
	Server    ServerConfig    `koanf:"server"`
	API       APIConfig       `koanf:"api"`
	Security  SecurityConfig  `koanf:"security"`
	ML        MLConfig        `koanf:"ml"`
	Signals   SignalsConfig   `koanf:"signals"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DatabaseConfig controls the embedded DuckDB instance.
type DatabaseConfig struct {
	Path      string `koanf:"path"`       // DuckDB file path, ":memory:" for tests
	MaxMemory string `koanf:"max_memory"` // DuckDB memory_limit pragma
	Threads   int    `koanf:"threads"`    // 0 = use runtime.NumCPU()
}

// GeneratorConfig controls synthetic dataset generation at startup.
type GeneratorConfig struct {
	Enabled             bool  `koanf:"enabled"`               // Generate data when the DB is empty
	Force               bool  `koanf:"force"`                 // Regenerate even when data exists
	Days                int   `koanf:"days"`                  // History length in days
	Seed                int64 `koanf:"seed"`                  // RNG seed for reproducible datasets
	UsersPerDay         int   `koanf:"users_per_day"`         // Cap on per-day install rows
	SessionYield        int   `koanf:"session_yield"`         // Max sessions generated per retained user
	BatchSize           int   `koanf:"batch_size"`            // Insert batch size
	CampaignsPerChannel int   `koanf:"campaigns_per_channel"` // Campaigns generated per channel
	OrganicBase         int   `koanf:"organic_base"`          // Baseline daily organic installs
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// APIConfig controls query parameter defaults and caching.
type APIConfig struct {
	DefaultDays int           `koanf:"default_days"` // Default lookback window
	MaxDays     int           `koanf:"max_days"`     // Upper bound on lookback window
	CacheTTL    time.Duration `koanf:"cache_ttl"`    // Analytics response cache TTL
}

// SecurityConfig controls authentication and rate limiting.
type SecurityConfig struct {
	AuthMode          string        `koanf:"auth_mode"` // none, jwt
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	AdminUsername     string        `koanf:"admin_username"`
	AdminPassword     string        `koanf:"admin_password"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// MLConfig controls prediction model loading.
type MLConfig struct {
	Enabled   bool   `koanf:"enabled"`    // Load checkpoints; heuristics still serve when false
	ModelsDir string `koanf:"models_dir"` // Directory holding JSON checkpoint files
}

// SignalsConfig controls the background signal detector.
type SignalsConfig struct {
	Enabled        bool          `koanf:"enabled"`
	SweepInterval  time.Duration `koanf:"sweep_interval"`
	CPISpikeFactor float64       `koanf:"cpi_spike_factor"` // Spike threshold vs trailing mean
	LookbackDays   int           `koanf:"lookback_days"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}
