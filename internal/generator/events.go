// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

package generator

import (
	"math"
)

// Effect metric keys recognized by goldenEvents. Multiplier keys scale
// a metric; boost and decline keys are additive percentage points.
const (
	effectCPIMultiplier     = "cpi_multiplier"
	effectVolumeMultiplier  = "volume_multiplier"
	effectOrganicMultiplier = "organic_multiplier"
	effectRankBoost         = "app_store_rank_boost"
	effectMentionsMult      = "social_mentions_multiplier"
	effectSentimentBoost    = "sentiment_boost"
	effectSpendMultiplier   = "spend_multiplier"
	effectRetentionBoost    = "retention_boost"
	effectCTRBoost          = "ctr_boost"
	effectCTRDecline        = "ctr_decline"
)

// GoldenEvent is a scripted performance moment injected into the data so
// the dashboard always has dramatic, explainable stories to tell.
type GoldenEvent struct {
	Name         string
	DayOffset    int
	Type         string
	Channel      string // channel name, "organic", "all", or "multiple"
	Description  string
	Effect       map[string]float64
	Tier1Only    bool // effect is concentrated in tier-1 geos
	DurationDays int
	SignalTitle  string
	Severity     string
	Action       string
	ImpactJSON   string
}

var goldenEvents = []GoldenEvent{
	{
		Name:        "tiktok_breakthrough",
		DayOffset:   31,
		Type:        "creative_breakthrough",
		Channel:     "tiktok",
		Description: "New video creative format drives 34% CPI drop",
		Effect: map[string]float64{
			effectCPIMultiplier:    0.66,
			effectVolumeMultiplier: 1.73,
			effectRetentionBoost:   0.09,
			effectCTRBoost:         0.015,
		},
		DurationDays: 30,
		SignalTitle:  "TikTok CPI dropped 34% WoW following creative refresh",
		Severity:     "info",
		Action:       "Shift +15% budget from Meta to TikTok",
		ImpactJSON:   `{"monthly_savings":45000,"install_increase_pct":18,"roi_improvement":0.28}`,
	},
	{
		Name:        "meta_fatigue",
		DayOffset:   46,
		Type:        "creative_fatigue",
		Channel:     "meta",
		Description: "Creative fatigue causes 52% CPI increase",
		Effect: map[string]float64{
			effectCPIMultiplier:    1.52,
			effectVolumeMultiplier: 0.64,
			effectCTRDecline:       0.014,
		},
		DurationDays: 15,
		SignalTitle:  "Meta CPI rising 7 consecutive days (+38% vs baseline)",
		Severity:     "warning",
		Action:       "Pause fatigued creatives, launch new batch",
		ImpactJSON:   `{"cpi_reduction":0.38,"volume_recovery":1500,"daily_savings":4200}`,
	},
	{
		Name:        "influencer_surge",
		DayOffset:   42,
		Type:        "viral_moment",
		Channel:     "organic",
		Description: "Influencer campaign drives 240% organic surge",
		Effect: map[string]float64{
			effectOrganicMultiplier: 3.4,
			effectRankBoost:         -33,
			effectMentionsMult:      4.5,
			effectSentimentBoost:    0.15,
		},
		DurationDays: 8,
		SignalTitle:  "Influencer campaign drove 6K incremental organic installs",
		Severity:     "info",
		Action:       "Retarget organic cohort with paid ads within 48h",
		ImpactJSON:   `{"ltv_boost_pct":25,"cohort_size":6000,"estimated_value":90000}`,
	},
	{
		Name:        "google_efficiency_drop",
		DayOffset:   68,
		Type:        "competitor_launch",
		Channel:     "google",
		Description: "Competitor launch causes 52% CPI spike in Tier-1",
		Effect: map[string]float64{
			effectCPIMultiplier:    1.52,
			effectVolumeMultiplier: 0.80,
		},
		Tier1Only:    true,
		DurationDays: 14,
		SignalTitle:  "Google UAC ROAS dipped 28% in Tier-1 markets",
		Severity:     "warning",
		Action:       "Pause bottom 15% of ad groups, shift budget to Tier-2",
		ImpactJSON:   `{"roas_recovery":0.21,"weekly_savings":18000,"tier2_opportunity":12000}`,
	},
	{
		Name:        "budget_pacing_alert",
		DayOffset:   20,
		Type:        "budget_overrun",
		Channel:     "all",
		Description: "Spend pacing 38% over budget",
		Effect: map[string]float64{
			effectSpendMultiplier: 1.40,
		},
		DurationDays: 5,
		SignalTitle:  "Spend pacing 38% over budget - projected $202K overage",
		Severity:     "critical",
		Action:       "Reduce daily budgets by 25% across all channels",
		ImpactJSON:   `{"budget_saved":202000,"month_end_projection":495000,"target_budget":500000}`,
	},
	{
		Name:        "cross_channel_synergy",
		DayOffset:   55,
		Type:        "synergy_detected",
		Channel:     "multiple",
		Description: "Meta + Influencer synergy detected",
		Effect: map[string]float64{
			"meta_ltv_boost":     0.18,
			"organic_halo_boost": 0.12,
		},
		DurationDays: 10,
		SignalTitle:  "Meta campaigns + influencer activity show 18% LTV synergy",
		Severity:     "info",
		Action:       "Coordinate Meta campaigns with influencer drops",
		ImpactJSON:   `{"ltv_improvement":0.18,"monthly_value":32000,"optimal_timing":"24-48h after influencer post"}`,
	},
}

// isActive reports whether the event affects the given day.
func (e *GoldenEvent) isActive(day int) bool {
	return day >= e.DayOffset && day < e.DayOffset+e.DurationDays
}

// multiplier returns the effect multiplier for a metric on a given day,
// with the decay curve that matches the event's nature: viral moments
// spike and fade exponentially, creative fatigue ramps up linearly, and
// everything else holds constant for its duration.
func (e *GoldenEvent) multiplier(day int, metric string) float64 {
	if !e.isActive(day) {
		return 1.0
	}

	mult, ok := e.Effect[metric]
	if !ok {
		return 1.0
	}

	elapsed := float64(day - e.DayOffset)
	duration := float64(e.DurationDays)

	switch e.Type {
	case "viral_moment":
		decay := math.Exp(-elapsed / (duration / 3))
		return 1.0 + (mult-1.0)*decay
	case "creative_fatigue":
		progress := elapsed / duration
		return 1.0 + (mult-1.0)*progress
	default:
		return mult
	}
}

// delta returns the additive effect of a metric on a given day, scaled
// by the same decay curve as multiplier. Missing metrics contribute 0.
func (e *GoldenEvent) delta(day int, metric string) float64 {
	if !e.isActive(day) {
		return 0
	}

	boost, ok := e.Effect[metric]
	if !ok {
		return 0
	}

	elapsed := float64(day - e.DayOffset)
	duration := float64(e.DurationDays)

	switch e.Type {
	case "viral_moment":
		return boost * math.Exp(-elapsed/(duration/3))
	case "creative_fatigue":
		return boost * (elapsed / duration)
	default:
		return boost
	}
}

// channelEventMultiplier folds all active events for a channel on a day.
func channelEventMultiplier(channel string, day int, metric string) float64 {
	mult := 1.0
	for i := range goldenEvents {
		e := &goldenEvents[i]
		if e.Channel == channel || e.Channel == "all" {
			mult *= e.multiplier(day, metric)
		}
	}
	return mult
}

// channelEventDelta sums the additive effects for a channel on a day.
func channelEventDelta(channel string, day int, metric string) float64 {
	total := 0.0
	for i := range goldenEvents {
		e := &goldenEvents[i]
		if e.Channel == channel || e.Channel == "all" {
			total += e.delta(day, metric)
		}
	}
	return total
}
