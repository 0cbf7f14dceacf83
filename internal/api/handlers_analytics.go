// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olivehq/olive/internal/database"
	"github.com/olivehq/olive/internal/models"
)

// signalsDefaultDays is the default lookback for the signals feed. It is
// deliberately shorter than the analytics default so the feed surfaces
// current issues rather than resolved history.
const signalsDefaultDays = 7

// windowParams keys aggregation caches by their lookback window.
type windowParams struct {
	Days int `json:"days"`
}

// ExecutiveSummary handles GET /api/v1/executive/summary.
func (h *Handler) ExecutiveSummary(w http.ResponseWriter, r *http.Request) {
	days := h.daysParam(r, h.cfg.API.DefaultDays)
	h.executeCached(w, r, "ExecutiveSummary", windowParams{Days: days}, func(ctx context.Context) (interface{}, error) {
		return h.db.GetExecutiveSummary(ctx, days)
	})
}

// ExecutiveTrends handles GET /api/v1/executive/trends.
func (h *Handler) ExecutiveTrends(w http.ResponseWriter, r *http.Request) {
	days := h.daysParam(r, h.cfg.API.DefaultDays)
	h.executeCached(w, r, "ExecutiveTrends", windowParams{Days: days}, func(ctx context.Context) (interface{}, error) {
		return h.db.GetExecutiveTrends(ctx, days)
	})
}

// PaidChannels handles GET /api/v1/paid/channels.
func (h *Handler) PaidChannels(w http.ResponseWriter, r *http.Request) {
	days := h.daysParam(r, h.cfg.API.DefaultDays)
	h.executeCached(w, r, "PaidChannels", windowParams{Days: days}, func(ctx context.Context) (interface{}, error) {
		return h.db.GetChannelPerformance(ctx, days)
	})
}

// PaidCampaigns handles GET /api/v1/paid/campaigns with an optional
// channel name filter.
func (h *Handler) PaidCampaigns(w http.ResponseWriter, r *http.Request) {
	days := h.daysParam(r, h.cfg.API.DefaultDays)
	channel := r.URL.Query().Get("channel")

	params := struct {
		Days    int    `json:"days"`
		Channel string `json:"channel"`
	}{Days: days, Channel: channel}

	h.executeCached(w, r, "PaidCampaigns", params, func(ctx context.Context) (interface{}, error) {
		return h.db.GetCampaignPerformance(ctx, days, channel)
	})
}

// OrganicSummary handles GET /api/v1/organic/summary.
func (h *Handler) OrganicSummary(w http.ResponseWriter, r *http.Request) {
	days := h.daysParam(r, h.cfg.API.DefaultDays)
	h.executeCached(w, r, "OrganicSummary", windowParams{Days: days}, func(ctx context.Context) (interface{}, error) {
		return h.db.GetOrganicSummary(ctx, days)
	})
}

// OrganicTrends handles GET /api/v1/organic/trends.
func (h *Handler) OrganicTrends(w http.ResponseWriter, r *http.Request) {
	days := h.daysParam(r, h.cfg.API.DefaultDays)
	h.executeCached(w, r, "OrganicTrends", windowParams{Days: days}, func(ctx context.Context) (interface{}, error) {
		return h.db.GetOrganicTrends(ctx, days)
	})
}

// FunnelSummary handles GET /api/v1/funnel/summary.
func (h *Handler) FunnelSummary(w http.ResponseWriter, r *http.Request) {
	days := h.daysParam(r, h.cfg.API.DefaultDays)
	h.executeCached(w, r, "FunnelSummary", windowParams{Days: days}, func(ctx context.Context) (interface{}, error) {
		return h.db.GetFunnelSummary(ctx, days)
	})
}

// FunnelTrends handles GET /api/v1/funnel/trends.
func (h *Handler) FunnelTrends(w http.ResponseWriter, r *http.Request) {
	days := h.daysParam(r, h.cfg.API.DefaultDays)
	h.executeCached(w, r, "FunnelTrends", windowParams{Days: days}, func(ctx context.Context) (interface{}, error) {
		return h.db.GetFunnelTrends(ctx, days)
	})
}

// validSeverities are the accepted values for the signals severity
// filter. Empty and "all" disable the filter.
var validSeverities = map[string]bool{
	"":         true,
	"all":      true,
	"info":     true,
	"warning":  true,
	"critical": true,
}

// Signals handles GET /api/v1/signals with optional days and severity
// query parameters.
func (h *Handler) Signals(w http.ResponseWriter, r *http.Request) {
	days := h.daysParam(r, signalsDefaultDays)
	severity := r.URL.Query().Get("severity")

	if !validSeverities[severity] {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "severity must be one of: all, info, warning, critical", nil)
		return
	}

	params := struct {
		Days     int    `json:"days"`
		Severity string `json:"severity"`
	}{Days: days, Severity: severity}

	h.executeCached(w, r, "Signals", params, func(ctx context.Context) (interface{}, error) {
		return h.db.ListSignals(ctx, days, severity)
	})
}

// DismissSignal handles POST /api/v1/signals/{id}/dismiss. Dismissal is
// idempotent: re-dismissing an already-dismissed signal succeeds again;
// only an unknown ID yields 404.
func (h *Handler) DismissSignal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Signal ID must be an integer", nil)
		return
	}

	result, err := h.db.DismissSignal(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrSignalNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Signal not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to dismiss signal", err)
		return
	}

	// Cached signal lists are stale now.
	h.ClearCache()

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   result,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
