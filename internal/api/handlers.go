// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

// Package api provides HTTP routing and handlers for the analytics
// dashboard. Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response and parameter helpers
//   - executor.go: cache-first query execution for GET aggregations
//   - handlers_analytics.go: executive, paid, organic, funnel, signals
//   - handlers_predictions.go: scenario and ML prediction endpoints
//   - handlers_health.go: health and login endpoints
//   - chi_router.go: route wiring
package api

import (
	"time"

	"github.com/olivehq/olive/internal/auth"
	"github.com/olivehq/olive/internal/cache"
	"github.com/olivehq/olive/internal/config"
	"github.com/olivehq/olive/internal/database"
	"github.com/olivehq/olive/internal/logging"
	"github.com/olivehq/olive/internal/ml"
)

// apiVersion is reported by the health endpoint.
const apiVersion = "1.0.0"

// Handler contains dependencies for API handlers.
type Handler struct {
	db        *database.DB
	cfg       *config.Config
	cache     *cache.Cache
	ml        *ml.Service
	auth      *auth.Authenticator
	startTime time.Time
}

// NewHandler creates an API handler with all required dependencies.
// Aggregation responses are cached with the configured TTL; mutations
// (signal dismissal, regeneration) clear the cache so clients see fresh
// aggregates.
func NewHandler(db *database.DB, cfg *config.Config, mlService *ml.Service, authenticator *auth.Authenticator) *Handler {
	return &Handler{
		db:        db,
		cfg:       cfg,
		cache:     cache.New("analytics", cfg.API.CacheTTL),
		ml:        mlService,
		auth:      authenticator,
		startTime: time.Now(),
	}
}

// ClearCache invalidates all cached analytics data. Called after signal
// dismissal and dataset regeneration.
func (h *Handler) ClearCache() {
	h.cache.Clear()
	logging.Info().Msg("Analytics cache cleared")
}

// Cache exposes the analytics cache for background jobs that mutate
// signal state outside the request path.
func (h *Handler) Cache() *cache.Cache {
	return h.cache
}
