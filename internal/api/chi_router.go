// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/olivehq/olive/internal/middleware"
)

// Per-window request limits for the special route groups. Data
// endpoints use the configured limit.
const (
	healthRateLimitReqs = 1000
	loginRateLimitReqs  = 5
)

// Router wires handlers to routes.
type Router struct {
	handler *Handler
}

// NewRouter creates the router for an initialized handler.
func NewRouter(handler *Handler) *Router {
	return &Router{handler: handler}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.Security.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health endpoints get a permissive limit so monitors can poll
	// frequently, and no auth so probes work before login.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.rateLimit(healthRateLimitReqs))
		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	// Login gets the strictest limit to slow brute forcing.
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(router.rateLimit(loginRateLimitReqs))
		r.Post("/login", h.Login)
	})

	// Data endpoints: rate limited, instrumented, authenticated.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.rateLimit(h.cfg.Security.RateLimitReqs))
		r.Use(middleware.PrometheusMetrics)
		r.Use(h.auth.Middleware)

		r.Get("/executive/summary", h.ExecutiveSummary)
		r.Get("/executive/trends", h.ExecutiveTrends)
		r.Get("/paid/channels", h.PaidChannels)
		r.Get("/paid/campaigns", h.PaidCampaigns)
		r.Get("/organic/summary", h.OrganicSummary)
		r.Get("/organic/trends", h.OrganicTrends)
		r.Get("/funnel/summary", h.FunnelSummary)
		r.Get("/funnel/trends", h.FunnelTrends)
		r.Get("/signals", h.Signals)
		r.Post("/signals/{id}/dismiss", h.DismissSignal)
		r.Post("/scenarios/predict", h.PredictScenario)
		r.Post("/predictions/ltv", h.PredictLTV)
		r.Post("/predictions/churn", h.PredictChurn)
		r.Post("/predictions/campaign", h.ForecastCampaign)
	})

	// Prometheus scrape endpoint, outside the API groups.
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// rateLimit builds a per-IP limiter over the configured window, or a
// passthrough when rate limiting is disabled (tests, local dev).
func (router *Router) rateLimit(requests int) func(http.Handler) http.Handler {
	if router.handler.cfg.Security.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.LimitByIP(requests, router.handler.cfg.Security.RateLimitWindow)
}
