// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

package ml

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/olivehq/olive/internal/config"
)

func heuristicService() *Service {
	return New(&config.MLConfig{Enabled: false})
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPredictLTVHeuristic(t *testing.T) {
	s := heuristicService()

	tests := []struct {
		name string
		f    UserFeatures
		want float64
	}{
		{"baseline retention non-payer", UserFeatures{RetentionD7: 0.5}, 15.0},
		{"baseline retention payer", UserFeatures{RetentionD7: 0.5, IsPayer: true}, 30.0},
		{"high retention payer", UserFeatures{RetentionD7: 0.8, IsPayer: true}, 48.0},
		{"zero retention", UserFeatures{RetentionD7: 0}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.PredictLTV(tt.f)
			if !almostEqual(got.PredictedLTV90D, tt.want) {
				t.Errorf("PredictLTV = %v, want %v", got.PredictedLTV90D, tt.want)
			}
			if got.Source != SourceHeuristic {
				t.Errorf("source = %q, want heuristic", got.Source)
			}
		})
	}
}

func TestPredictChurnHeuristicTiers(t *testing.T) {
	s := heuristicService()

	tests := []struct {
		name     string
		f        UserFeatures
		wantProb float64
		wantTier string
	}{
		{"dormant user", UserFeatures{SessionCount7D: 0, RetentionD7: 0.6}, 0.9, "critical"},
		{"weak retention", UserFeatures{SessionCount7D: 2, RetentionD7: 0.2}, 0.7, "high"},
		{"moderate retention", UserFeatures{SessionCount7D: 3, RetentionD7: 0.4}, 0.4, "medium"},
		{"healthy user", UserFeatures{SessionCount7D: 8, RetentionD7: 0.7}, 0.2, "low"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.PredictChurn(tt.f)
			if !almostEqual(got.ChurnProbability, tt.wantProb) {
				t.Errorf("probability = %v, want %v", got.ChurnProbability, tt.wantProb)
			}
			if got.RiskTier != tt.wantTier {
				t.Errorf("tier = %q, want %q", got.RiskTier, tt.wantTier)
			}
			if got.Source != SourceHeuristic {
				t.Errorf("source = %q, want heuristic", got.Source)
			}
		})
	}
}

func TestForecastCPIHeuristic(t *testing.T) {
	s := heuristicService()

	history := []float64{1, 1, 1, 2.0, 2.0, 2.0, 2.0, 2.0, 2.0, 2.0}
	forecast, source := s.ForecastCPI(history)

	if source != SourceHeuristic {
		t.Fatalf("source = %q, want heuristic", source)
	}
	if len(forecast) != 7 {
		t.Fatalf("forecast length = %d, want 7", len(forecast))
	}
	// Only the trailing week feeds the mean, so the early 1.0 values
	// are ignored.
	if !almostEqual(forecast[0], 2.0) {
		t.Errorf("day 0 = %v, want 2.0", forecast[0])
	}
	if !almostEqual(forecast[3], 2.0*1.03) {
		t.Errorf("day 3 = %v, want %v", forecast[3], 2.0*1.03)
	}
	for i := 1; i < len(forecast); i++ {
		if forecast[i] <= forecast[i-1] {
			t.Errorf("forecast should drift upward: day %d %v <= day %d %v", i, forecast[i], i-1, forecast[i-1])
		}
	}
}

func TestForecastCPIEmptyHistory(t *testing.T) {
	s := heuristicService()

	forecast, _ := s.ForecastCPI(nil)
	if !almostEqual(forecast[0], 2.5) {
		t.Errorf("empty-history day 0 = %v, want default 2.5", forecast[0])
	}
}

func TestPredictScenario(t *testing.T) {
	s := heuristicService()

	got := s.PredictScenario(map[string]float64{"tiktok": 15, "meta": -5})

	// Net shift of +10 points.
	if !almostEqual(got.InstallsChangePct, 8.0) {
		t.Errorf("installs change = %v, want 8.0", got.InstallsChangePct)
	}
	if !almostEqual(got.CACChangePct, -5.0) {
		t.Errorf("CAC change = %v, want -5.0", got.CACChangePct)
	}
	if !almostEqual(got.EstimatedMonthlyImpact, 10000) {
		t.Errorf("monthly impact = %v, want 10000", got.EstimatedMonthlyImpact)
	}
}

func TestPredictScenarioEmptyShift(t *testing.T) {
	s := heuristicService()

	got := s.PredictScenario(map[string]float64{})
	if got.InstallsChangePct != 0 || got.CACChangePct != 0 || got.EstimatedMonthlyImpact != 0 {
		t.Errorf("empty shift should predict zero impact, got %+v", got)
	}
}

func writeCheckpoint(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestCheckpointLTVPrediction(t *testing.T) {
	dir := t.TempDir()
	// Weight only the payer flag: bias 10, +20 for payers.
	writeCheckpoint(t, dir, ltvCheckpointFile,
		`{"model":"ltv","weights":[0,0,0,0,0,20],"bias":10}`)

	s := New(&config.MLConfig{Enabled: true, ModelsDir: dir})

	got := s.PredictLTV(UserFeatures{IsPayer: true})
	if got.Source != SourceCheckpoint {
		t.Fatalf("source = %q, want checkpoint", got.Source)
	}
	if !almostEqual(got.PredictedLTV90D, 30.0) {
		t.Errorf("checkpoint LTV = %v, want 30.0", got.PredictedLTV90D)
	}

	// Churn has no checkpoint, so the heuristic still serves.
	churn := s.PredictChurn(UserFeatures{SessionCount7D: 0})
	if churn.Source != SourceHeuristic {
		t.Errorf("churn source = %q, want heuristic", churn.Source)
	}
}

func TestCheckpointChurnSigmoid(t *testing.T) {
	dir := t.TempDir()
	// Bias 0 and zero weights gives sigmoid(0) = 0.5.
	writeCheckpoint(t, dir, churnCheckpointFile,
		`{"model":"churn","weights":[0,0,0,0],"bias":0}`)

	s := New(&config.MLConfig{Enabled: true, ModelsDir: dir})

	got := s.PredictChurn(UserFeatures{SessionCount7D: 5, RetentionD7: 0.6})
	if got.Source != SourceCheckpoint {
		t.Fatalf("source = %q, want checkpoint", got.Source)
	}
	if !almostEqual(got.ChurnProbability, 0.5) {
		t.Errorf("probability = %v, want 0.5", got.ChurnProbability)
	}
	if got.RiskTier != "medium" {
		t.Errorf("tier = %q, want medium", got.RiskTier)
	}
}

func TestCorruptCheckpointFallsBack(t *testing.T) {
	dir := t.TempDir()
	writeCheckpoint(t, dir, ltvCheckpointFile, `{not json`)
	writeCheckpoint(t, dir, churnCheckpointFile, `{"model":"churn","weights":[]}`)

	s := New(&config.MLConfig{Enabled: true, ModelsDir: dir})

	if got := s.PredictLTV(UserFeatures{RetentionD7: 0.5}); got.Source != SourceHeuristic {
		t.Errorf("corrupt LTV checkpoint should fall back, source = %q", got.Source)
	}
	if got := s.PredictChurn(UserFeatures{SessionCount7D: 1, RetentionD7: 0.6}); got.Source != SourceHeuristic {
		t.Errorf("empty churn checkpoint should fall back, source = %q", got.Source)
	}
}

func TestMissingModelsDir(t *testing.T) {
	s := New(&config.MLConfig{Enabled: true, ModelsDir: "/nonexistent/models"})

	if got := s.PredictLTV(UserFeatures{RetentionD7: 0.5}); got.Source != SourceHeuristic {
		t.Errorf("missing models dir should serve heuristics, source = %q", got.Source)
	}
}
