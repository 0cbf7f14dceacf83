// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateGenerator(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateSignals(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("API_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout < time.Second {
		return fmt.Errorf("HTTP_TIMEOUT must be at least 1s")
	}
	return nil
}

// Generator bounds. History shorter than a week breaks the trailing-window
// aggregates; anything past ten years is a misconfiguration.
const (
	generatorMinDays      = 7
	generatorMaxDays      = 3650
	generatorMaxBatchSize = 10000
)

func (c *Config) validateGenerator() error {
	if !c.Generator.Enabled {
		return nil
	}

	if c.Generator.Days < generatorMinDays || c.Generator.Days > generatorMaxDays {
		return fmt.Errorf("GENERATOR_DAYS must be between %d and %d", generatorMinDays, generatorMaxDays)
	}
	if c.Generator.UsersPerDay < 1 {
		return fmt.Errorf("GENERATOR_USERS_PER_DAY must be at least 1")
	}
	if c.Generator.BatchSize < 1 || c.Generator.BatchSize > generatorMaxBatchSize {
		return fmt.Errorf("GENERATOR_BATCH_SIZE must be between 1 and %d", generatorMaxBatchSize)
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.DefaultDays < 1 {
		return fmt.Errorf("API_DEFAULT_DAYS must be at least 1")
	}
	if c.API.MaxDays < c.API.DefaultDays {
		return fmt.Errorf("API_MAX_DAYS must be >= API_DEFAULT_DAYS")
	}
	if c.API.CacheTTL < 0 {
		return fmt.Errorf("API_CACHE_TTL must be non-negative")
	}
	return nil
}

// validAuthModes defines the allowed authentication modes.
var validAuthModes = map[string]bool{
	"none": true,
	"jwt":  true,
}

// Rate limit bounds.
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateSecurity() error {
	if !validAuthModes[c.Security.AuthMode] {
		return fmt.Errorf("AUTH_MODE must be one of: none, jwt")
	}

	if c.Security.AuthMode == "none" && c.IsProduction() {
		return fmt.Errorf("AUTH_MODE=none is not allowed when ENVIRONMENT=production. " +
			"Set AUTH_MODE=jwt or use ENVIRONMENT=development for testing purposes")
	}

	if c.Security.AuthMode == "jwt" {
		if err := c.validateJWTAuth(); err != nil {
			return err
		}
	}

	if err := c.validateCORS(); err != nil {
		return err
	}

	return c.validateRateLimits()
}

func (c *Config) validateJWTAuth() error {
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_MODE is jwt")
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters for security")
	}
	if containsPlaceholder(c.Security.JWTSecret) {
		return fmt.Errorf("JWT_SECRET contains a placeholder value - generate a secure secret with: openssl rand -base64 32")
	}
	if c.Security.AdminUsername == "" {
		return fmt.Errorf("ADMIN_USERNAME is required when AUTH_MODE is jwt")
	}
	if c.Security.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required when AUTH_MODE is jwt")
	}
	if containsPlaceholder(c.Security.AdminPassword) {
		return fmt.Errorf("ADMIN_PASSWORD contains a placeholder value - set a secure password")
	}
	return nil
}

// validateCORS rejects wildcard CORS with authentication in production.
// Wildcard origins plus credentials let any site replay stolen tokens.
func (c *Config) validateCORS() error {
	if c.Security.AuthMode != "none" && c.hasWildcardCORS() && c.IsProduction() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production with authentication enabled. " +
			"Set specific origins: CORS_ORIGINS=https://yourdomain.com")
	}
	return nil
}

func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) validateSignals() error {
	if !c.Signals.Enabled {
		return nil
	}

	if c.Signals.SweepInterval < time.Minute {
		return fmt.Errorf("SIGNALS_SWEEP_INTERVAL must be at least 1m")
	}
	if c.Signals.CPISpikeFactor <= 1.0 {
		return fmt.Errorf("SIGNALS_CPI_SPIKE_FACTOR must be greater than 1.0")
	}
	if c.Signals.LookbackDays < 1 {
		return fmt.Errorf("SIGNALS_LOOKBACK_DAYS must be at least 1")
	}
	return nil
}

// validLogLevels defines the allowed log levels.
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats.
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// IsProduction returns true when running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// IsDevelopment returns true when running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "" || env == "development" || env == "dev"
}

// placeholderPatterns are values that indicate the operator forgot to set
// a real secret.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_SECRET",
	"YOUR_PASSWORD",
	"PLACEHOLDER",
	"EXAMPLE",
}

func containsPlaceholder(value string) bool {
	upperValue := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upperValue, pattern) {
			return true
		}
	}
	return false
}
