// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/olivehq/olive/internal/auth"
	"github.com/olivehq/olive/internal/logging"
	"github.com/olivehq/olive/internal/models"
)

// Health handles GET /api/v1/health. It reports database connectivity
// and the channel count so an empty or unreachable database is visible
// from monitoring.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := models.HealthStatus{
		Status:        "healthy",
		Database:      "connected",
		Version:       apiVersion,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		Timestamp:     time.Now(),
	}

	channels, err := h.db.CountChannels(r.Context())
	if err != nil {
		status.Status = "unhealthy"
		status.Database = "disconnected"
		respondJSON(w, http.StatusInternalServerError, &models.APIResponse{
			Status:   "error",
			Data:     status,
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error: &models.APIError{
				Code:    "DATABASE_ERROR",
				Message: "Database is not reachable",
			},
		})
		return
	}
	status.Channels = channels

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     status,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthLive handles GET /api/v1/health/live. Liveness is process-level
// only; it never touches the database.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"status": "alive"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady handles GET /api/v1/health/ready. Readiness requires a
// reachable database.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_ERROR", "Database is not ready", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"status": "ready"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// Login handles POST /api/v1/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	token, expiresAt, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrAuthDisabled):
			respondError(w, http.StatusBadRequest, "AUTHENTICATION_ERROR", "Authentication is disabled", nil)
		case errors.Is(err, auth.ErrInvalidCredentials):
			logging.Warn().Str("username", sanitizeLogValue(req.Username)).Msg("Failed login attempt")
			respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Invalid credentials", nil)
		default:
			respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.LoginResponse{
			Token:     token,
			TokenType: "Bearer",
			ExpiresAt: expiresAt,
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
