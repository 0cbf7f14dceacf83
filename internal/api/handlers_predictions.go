// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

package api

import (
	"net/http"
	"time"

	"github.com/olivehq/olive/internal/ml"
	"github.com/olivehq/olive/internal/models"
)

// forecastLookbackDays is how much CPI history feeds the campaign
// forecaster.
const forecastLookbackDays = 30

// ScenarioRequest is a what-if budget reallocation. Keys are channel
// names, values are budget shifts in percentage points.
type ScenarioRequest struct {
	BudgetShift map[string]float64 `json:"budget_shift" validate:"required,min=1,dive,keys,oneof=meta google tiktok programmatic,endkeys,gte=-100,lte=100"`
}

// PredictionRequest carries the behavioral profile for LTV and churn
// predictions.
type PredictionRequest struct {
	RetentionD1        float64 `json:"retention_d1" validate:"gte=0,lte=1"`
	RetentionD7        float64 `json:"retention_d7" validate:"gte=0,lte=1"`
	RetentionD30       float64 `json:"retention_d30" validate:"gte=0,lte=1"`
	SessionCount7D     int     `json:"session_count_7d" validate:"gte=0"`
	SessionCount30D    int     `json:"session_count_30d" validate:"gte=0"`
	AvgSessionDuration float64 `json:"avg_session_duration" validate:"gte=0"`
	IsPayer            bool    `json:"is_payer"`
}

func (req *PredictionRequest) features() ml.UserFeatures {
	return ml.UserFeatures{
		RetentionD1:        req.RetentionD1,
		RetentionD7:        req.RetentionD7,
		RetentionD30:       req.RetentionD30,
		SessionCount7D:     req.SessionCount7D,
		SessionCount30D:    req.SessionCount30D,
		AvgSessionDuration: req.AvgSessionDuration,
		IsPayer:            req.IsPayer,
	}
}

// CampaignForecastRequest names the channel to forecast.
type CampaignForecastRequest struct {
	Channel string `json:"channel" validate:"required,oneof=meta google tiktok programmatic"`
}

// PredictScenario handles POST /api/v1/scenarios/predict.
func (h *Handler) PredictScenario(w http.ResponseWriter, r *http.Request) {
	var req ScenarioRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   h.ml.PredictScenario(req.BudgetShift),
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// PredictLTV handles POST /api/v1/predictions/ltv.
func (h *Handler) PredictLTV(w http.ResponseWriter, r *http.Request) {
	var req PredictionRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   h.ml.PredictLTV(req.features()),
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// PredictChurn handles POST /api/v1/predictions/churn.
func (h *Handler) PredictChurn(w http.ResponseWriter, r *http.Request) {
	var req PredictionRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   h.ml.PredictChurn(req.features()),
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// ForecastCampaign handles POST /api/v1/predictions/campaign. The
// channel's daily CPI history over the last 30 days feeds the
// forecaster; an empty history still yields a heuristic forecast.
func (h *Handler) ForecastCampaign(w http.ResponseWriter, r *http.Request) {
	var req CampaignForecastRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	rows, err := h.db.GetChannelDailyCPI(r.Context(), forecastLookbackDays)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load CPI history", err)
		return
	}

	var history []float64
	for _, row := range rows {
		if row.ChannelName == req.Channel {
			history = append(history, row.AvgCPI)
		}
	}

	forecast, source := h.ml.ForecastCPI(history)
	points := make([]models.CampaignForecastPoint, len(forecast))
	for i, cpi := range forecast {
		points[i] = models.CampaignForecastPoint{Day: i + 1, PredictedCPI: cpi}
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.CampaignForecast{
			Channel:  req.Channel,
			Horizon:  len(points),
			Forecast: points,
			Source:   source,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
