// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

// Package ml serves LTV, churn, and CPI predictions. Trained linear
// checkpoints are used when present in the models directory; otherwise
// calibrated rule-based heuristics answer every request, so the
// prediction endpoints never fail for lack of model files.
package ml

import (
	"math"
	"time"

	"github.com/olivehq/olive/internal/config"
	"github.com/olivehq/olive/internal/logging"
	"github.com/olivehq/olive/internal/metrics"
	"github.com/olivehq/olive/internal/models"
)

// Prediction sources reported to callers and metrics.
const (
	SourceCheckpoint = "checkpoint"
	SourceHeuristic  = "heuristic"
)

// Heuristic constants.
const (
	baseLTV           = 15.0
	retentionBaseline = 0.5
	payerMultiplier   = 2.0
	defaultCPI        = 2.5
	forecastHorizon   = 7
	cpiTrendPerDay    = 0.01

	// Scenario model coefficients: net budget shift percentage points
	// map to install, CAC, and dollar impact.
	scenarioInstallFactor = 0.8
	scenarioCACFactor     = 0.5
	scenarioDollarFactor  = 1000.0
)

// UserFeatures are the behavioral inputs to LTV and churn predictions.
type UserFeatures struct {
	RetentionD1        float64
	RetentionD7        float64
	RetentionD30       float64
	SessionCount7D     int
	SessionCount30D    int
	AvgSessionDuration float64
	IsPayer            bool
}

// Service answers predictions from checkpoints or heuristics.
type Service struct {
	ltv      *Checkpoint
	churn    *Checkpoint
	campaign *Checkpoint
}

// New loads whatever checkpoints exist in the configured directory.
// Load failures are logged and degrade to heuristics rather than
// blocking startup.
func New(cfg *config.MLConfig) *Service {
	s := &Service{}
	if !cfg.Enabled {
		logging.Info().Msg("ML checkpoints disabled, serving heuristic predictions")
		return s
	}

	loaded := 0
	for _, entry := range []struct {
		file string
		dst  **Checkpoint
	}{
		{ltvCheckpointFile, &s.ltv},
		{churnCheckpointFile, &s.churn},
		{campaignCheckpointFile, &s.campaign},
	} {
		cp, err := loadCheckpoint(cfg.ModelsDir, entry.file)
		if err != nil {
			logging.Warn().Err(err).Str("checkpoint", entry.file).Msg("Checkpoint load failed, heuristic will serve")
			continue
		}
		if cp != nil {
			*entry.dst = cp
			loaded++
		}
	}

	if loaded > 0 {
		logging.Info().Int("loaded", loaded).Str("dir", cfg.ModelsDir).Msg("ML checkpoints loaded")
	} else {
		logging.Info().Str("dir", cfg.ModelsDir).Msg("No ML checkpoints found, serving heuristic predictions")
	}
	return s
}

// PredictLTV predicts 90-day lifetime value for a user profile.
func (s *Service) PredictLTV(f UserFeatures) models.LTVPrediction {
	start := time.Now()
	value, source := s.predictLTV(f)
	metrics.RecordPrediction("ltv", source, time.Since(start))
	return models.LTVPrediction{
		PredictedLTV90D: math.Round(value*100) / 100,
		Source:          source,
	}
}

func (s *Service) predictLTV(f UserFeatures) (float64, string) {
	if s.ltv != nil {
		score, err := s.ltv.score(ltvFeatureVector(f))
		if err == nil {
			return math.Max(0, score), SourceCheckpoint
		}
		logging.Warn().Err(err).Msg("LTV checkpoint scoring failed, using heuristic")
	}

	// Baseline LTV scaled by D7 retention against the portfolio median,
	// doubled for payers.
	retentionMult := f.RetentionD7 / retentionBaseline
	value := baseLTV * retentionMult
	if f.IsPayer {
		value *= payerMultiplier
	}
	return value, SourceHeuristic
}

// PredictChurn predicts churn probability and a risk tier.
func (s *Service) PredictChurn(f UserFeatures) models.ChurnPrediction {
	start := time.Now()
	prob, source := s.predictChurn(f)
	metrics.RecordPrediction("churn", source, time.Since(start))
	return models.ChurnPrediction{
		ChurnProbability: math.Round(prob*100) / 100,
		RiskTier:         riskTier(prob),
		Source:           source,
	}
}

func (s *Service) predictChurn(f UserFeatures) (float64, string) {
	if s.churn != nil {
		score, err := s.churn.score(churnFeatureVector(f))
		if err == nil {
			return sigmoid(score), SourceCheckpoint
		}
		logging.Warn().Err(err).Msg("Churn checkpoint scoring failed, using heuristic")
	}

	switch {
	case f.SessionCount7D == 0:
		return 0.9, SourceHeuristic
	case f.RetentionD7 < 0.3:
		return 0.7, SourceHeuristic
	case f.RetentionD7 < 0.5:
		return 0.4, SourceHeuristic
	default:
		return 0.2, SourceHeuristic
	}
}

// ForecastCPI predicts the next seven days of CPI from a daily history.
func (s *Service) ForecastCPI(history []float64) ([]float64, string) {
	start := time.Now()
	forecast, source := s.forecastCPI(history)
	metrics.RecordPrediction("campaign", source, time.Since(start))
	return forecast, source
}

func (s *Service) forecastCPI(history []float64) ([]float64, string) {
	if s.campaign != nil && len(history) >= len(s.campaign.Weights) {
		window := history[len(history)-len(s.campaign.Weights):]
		forecast := make([]float64, 0, forecastHorizon)
		rolling := append([]float64(nil), window...)
		ok := true
		for i := 0; i < forecastHorizon; i++ {
			next, err := s.campaign.score(rolling)
			if err != nil {
				ok = false
				break
			}
			next = math.Max(0, next)
			forecast = append(forecast, next)
			rolling = append(rolling[1:], next)
		}
		if ok {
			return forecast, SourceCheckpoint
		}
		logging.Warn().Msg("Campaign checkpoint scoring failed, using heuristic")
	}

	// Heuristic: mean of the trailing week with a 1%/day upward drift.
	base := defaultCPI
	if len(history) > 0 {
		window := history
		if len(window) > 7 {
			window = window[len(window)-7:]
		}
		sum := 0.0
		for _, v := range window {
			sum += v
		}
		base = sum / float64(len(window))
	}

	forecast := make([]float64, forecastHorizon)
	for i := range forecast {
		forecast[i] = math.Round(base*(1+float64(i)*cpiTrendPerDay)*10000) / 10000
	}
	return forecast, SourceHeuristic
}

// PredictScenario estimates the impact of a what-if budget reallocation.
// The budget shift map holds percentage-point deltas per channel; the
// net shift drives linear install, CAC, and dollar estimates.
func (s *Service) PredictScenario(budgetShift map[string]float64) models.ScenarioPrediction {
	start := time.Now()
	net := 0.0
	for _, pct := range budgetShift {
		net += pct
	}
	prediction := models.ScenarioPrediction{
		InstallsChangePct:      math.Round(net*scenarioInstallFactor*100) / 100,
		CACChangePct:           math.Round(-net*scenarioCACFactor*100) / 100,
		EstimatedMonthlyImpact: math.Round(net * scenarioDollarFactor),
	}
	metrics.RecordPrediction("scenario", SourceHeuristic, time.Since(start))
	return prediction
}

func ltvFeatureVector(f UserFeatures) []float64 {
	payer := 0.0
	if f.IsPayer {
		payer = 1.0
	}
	return []float64{
		f.RetentionD1, f.RetentionD7, f.RetentionD30,
		float64(f.SessionCount7D), f.AvgSessionDuration, payer,
	}
}

func churnFeatureVector(f UserFeatures) []float64 {
	return []float64{
		float64(f.SessionCount7D), float64(f.SessionCount30D),
		f.RetentionD7, f.AvgSessionDuration,
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// riskTier buckets a churn probability for the dashboard.
func riskTier(prob float64) string {
	switch {
	case prob >= 0.8:
		return "critical"
	case prob >= 0.6:
		return "high"
	case prob >= 0.3:
		return "medium"
	default:
		return "low"
	}
}
