// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

package services

import (
	"context"
	"testing"
	"time"

	"github.com/olivehq/olive/internal/cache"
	"github.com/olivehq/olive/internal/config"
	"github.com/olivehq/olive/internal/database"
	"github.com/olivehq/olive/internal/models"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(&config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "512MB",
		Threads:   2,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})
	return db
}

func daysAgo(n int) time.Time {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -n)
}

// seedSpikeData writes a flat CPI history with a doubled final day for
// the meta channel.
func seedSpikeData(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()

	channels := []models.MarketingChannel{
		{ID: 1, Name: "meta", DisplayName: "Meta Ads", BaseCPI: 2.50, CPIVariance: 0.40,
			DailyVolume: 5000, WeekendMultiplier: 0.85, QualityScore: 0.72, LTVMultiplier: 1.0, CreativeFatigueDays: 14},
	}
	if err := db.InsertChannels(ctx, channels); err != nil {
		t.Fatalf("InsertChannels: %v", err)
	}

	campaigns := []models.Campaign{
		{ID: 10, ChannelID: 1, Name: "meta_prospecting_q3", StartDate: daysAgo(30), Status: models.CampaignStatusActive, DailyBudget: 500},
	}
	if err := db.InsertCampaigns(ctx, campaigns); err != nil {
		t.Fatalf("InsertCampaigns: %v", err)
	}

	perf := make([]models.DailyCampaignPerformance, 0, 5)
	for i := 0; i < 5; i++ {
		cpi := 2.0
		if i == 4 {
			cpi = 4.0
		}
		perf = append(perf, models.DailyCampaignPerformance{
			ID: int64(100 + i), CampaignID: 10, Date: daysAgo(5 - i), Spend: 100,
			Impressions: 10000, Clicks: 500, Installs: 50, CPI: cpi,
		})
	}
	if err := db.InsertDailyPerformance(ctx, perf); err != nil {
		t.Fatalf("InsertDailyPerformance: %v", err)
	}
}

func detectorConfig() *config.SignalsConfig {
	return &config.SignalsConfig{
		Enabled:        true,
		SweepInterval:  time.Minute,
		CPISpikeFactor: 1.5,
		LookbackDays:   30,
	}
}

func TestSweepRaisesCPISpike(t *testing.T) {
	db := setupTestDB(t)
	seedSpikeData(t, db)
	apiCache := cache.New("analytics-test", time.Minute)
	apiCache.Set("stale", "value")

	detector := NewSignalDetectorService(db, apiCache, detectorConfig())
	if err := detector.sweep(context.Background()); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	signals, err := db.ListSignals(context.Background(), 7, "")
	if err != nil {
		t.Fatalf("ListSignals: %v", err)
	}
	if len(signals.Signals) != 1 {
		t.Fatalf("signal count = %d, want 1", len(signals.Signals))
	}
	got := signals.Signals[0]
	if got.Type != "cpi_spike" || got.Severity != "warning" {
		t.Errorf("signal = %s/%s, want cpi_spike/warning", got.Type, got.Severity)
	}
	if got.Metrics["ratio"] != 2.0 {
		t.Errorf("spike ratio = %v, want 2.0", got.Metrics["ratio"])
	}

	// Raising a signal invalidates cached analytics.
	if _, found := apiCache.Get("stale"); found {
		t.Error("cache should be cleared after a signal is raised")
	}
}

func TestSweepDeduplicatesActiveSignals(t *testing.T) {
	db := setupTestDB(t)
	seedSpikeData(t, db)

	detector := NewSignalDetectorService(db, nil, detectorConfig())
	for i := 0; i < 3; i++ {
		if err := detector.sweep(context.Background()); err != nil {
			t.Fatalf("sweep %d: %v", i, err)
		}
	}

	signals, err := db.ListSignals(context.Background(), 7, "")
	if err != nil {
		t.Fatalf("ListSignals: %v", err)
	}
	if len(signals.Signals) != 1 {
		t.Errorf("signal count after repeated sweeps = %d, want 1", len(signals.Signals))
	}
}

func TestSweepQuietOnStableCPI(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// Stable series: no day exceeds the baseline by the spike factor.
	channels := []models.MarketingChannel{
		{ID: 1, Name: "meta", DisplayName: "Meta Ads", BaseCPI: 2.50, CPIVariance: 0.40,
			DailyVolume: 5000, WeekendMultiplier: 0.85, QualityScore: 0.72, LTVMultiplier: 1.0, CreativeFatigueDays: 14},
	}
	if err := db.InsertChannels(ctx, channels); err != nil {
		t.Fatalf("InsertChannels: %v", err)
	}
	campaigns := []models.Campaign{
		{ID: 10, ChannelID: 1, Name: "meta_prospecting_q3", StartDate: daysAgo(30), Status: models.CampaignStatusActive, DailyBudget: 500},
	}
	if err := db.InsertCampaigns(ctx, campaigns); err != nil {
		t.Fatalf("InsertCampaigns: %v", err)
	}
	perf := make([]models.DailyCampaignPerformance, 0, 5)
	for i := 0; i < 5; i++ {
		perf = append(perf, models.DailyCampaignPerformance{
			ID: int64(100 + i), CampaignID: 10, Date: daysAgo(5 - i), Spend: 100,
			Impressions: 10000, Clicks: 500, Installs: 50, CPI: 2.0 + float64(i)*0.1,
		})
	}
	if err := db.InsertDailyPerformance(ctx, perf); err != nil {
		t.Fatalf("InsertDailyPerformance: %v", err)
	}

	detector := NewSignalDetectorService(db, nil, detectorConfig())
	if err := detector.sweep(ctx); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	signals, err := db.ListSignals(ctx, 7, "")
	if err != nil {
		t.Fatalf("ListSignals: %v", err)
	}
	if len(signals.Signals) != 0 {
		t.Errorf("signal count = %d, want 0", len(signals.Signals))
	}
}

func TestDetectSpike(t *testing.T) {
	mkDays := func(cpis ...float64) []database.ChannelCPIDay {
		days := make([]database.ChannelCPIDay, len(cpis))
		for i, cpi := range cpis {
			days[i] = database.ChannelCPIDay{ChannelID: 1, ChannelName: "meta", AvgCPI: cpi}
		}
		return days
	}

	if _, ok := detectSpike(mkDays(2.0, 2.0, 4.0), 1.5); ok {
		t.Error("short history should not produce a spike")
	}
	if _, ok := detectSpike(mkDays(2.0, 2.0, 2.0, 2.2), 1.5); ok {
		t.Error("stable series should not produce a spike")
	}

	sp, ok := detectSpike(mkDays(2.0, 2.0, 2.0, 4.0), 1.5)
	if !ok {
		t.Fatal("doubled CPI should produce a spike")
	}
	if sp.baseline != 2.0 || sp.latest != 4.0 || sp.ratio != 2.0 {
		t.Errorf("spike = %+v, want baseline 2.0 latest 4.0 ratio 2.0", sp)
	}
}

func TestGroupByChannel(t *testing.T) {
	series := []database.ChannelCPIDay{
		{ChannelID: 1, ChannelName: "meta", AvgCPI: 2.0},
		{ChannelID: 1, ChannelName: "meta", AvgCPI: 2.1},
		{ChannelID: 2, ChannelName: "tiktok", AvgCPI: 1.8},
	}

	grouped := groupByChannel(series)
	if len(grouped) != 2 {
		t.Fatalf("group count = %d, want 2", len(grouped))
	}
	if grouped[0].name != "meta" || len(grouped[0].days) != 2 {
		t.Errorf("first group = %s/%d days, want meta/2", grouped[0].name, len(grouped[0].days))
	}
	if grouped[1].name != "tiktok" || len(grouped[1].days) != 1 {
		t.Errorf("second group = %s/%d days, want tiktok/1", grouped[1].name, len(grouped[1].days))
	}
}
