// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

package generator

import (
	"math"
	"testing"
)

func eventByName(t *testing.T, name string) *GoldenEvent {
	t.Helper()
	for i := range goldenEvents {
		if goldenEvents[i].Name == name {
			return &goldenEvents[i]
		}
	}
	t.Fatalf("unknown event %q", name)
	return nil
}

func TestEventInactiveOutsideWindow(t *testing.T) {
	e := eventByName(t, "tiktok_breakthrough")

	if got := e.multiplier(e.DayOffset-1, effectCPIMultiplier); got != 1.0 {
		t.Errorf("multiplier before start = %v, want 1.0", got)
	}
	if got := e.multiplier(e.DayOffset+e.DurationDays, effectCPIMultiplier); got != 1.0 {
		t.Errorf("multiplier after end = %v, want 1.0", got)
	}
}

func TestConstantEventHoldsFullEffect(t *testing.T) {
	e := eventByName(t, "tiktok_breakthrough") // creative_breakthrough: constant

	for _, day := range []int{e.DayOffset, e.DayOffset + 10, e.DayOffset + e.DurationDays - 1} {
		if got := e.multiplier(day, effectCPIMultiplier); got != 0.66 {
			t.Errorf("day %d multiplier = %v, want 0.66", day, got)
		}
	}
}

func TestViralMomentDecaysExponentially(t *testing.T) {
	e := eventByName(t, "influencer_surge")

	// Full effect on day zero, fading toward 1.0.
	first := e.multiplier(e.DayOffset, effectOrganicMultiplier)
	if first != 3.4 {
		t.Errorf("day-zero multiplier = %v, want 3.4", first)
	}

	prev := first
	for d := 1; d < e.DurationDays; d++ {
		cur := e.multiplier(e.DayOffset+d, effectOrganicMultiplier)
		if cur >= prev {
			t.Errorf("day %d multiplier %v should be below previous %v", d, cur, prev)
		}
		if cur < 1.0 {
			t.Errorf("day %d multiplier %v decayed below 1.0", d, cur)
		}
		prev = cur
	}

	// Matches the closed form: 1 + (m-1) * exp(-t / (d/3)).
	want := 1.0 + (3.4-1.0)*math.Exp(-4.0/(float64(e.DurationDays)/3))
	got := e.multiplier(e.DayOffset+4, effectOrganicMultiplier)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("day 4 multiplier = %v, want %v", got, want)
	}
}

func TestCreativeFatigueRampsLinearly(t *testing.T) {
	e := eventByName(t, "meta_fatigue")

	start := e.multiplier(e.DayOffset, effectCPIMultiplier)
	if start != 1.0 {
		t.Errorf("fatigue starts at %v, want 1.0", start)
	}

	mid := e.multiplier(e.DayOffset+e.DurationDays/2, effectCPIMultiplier)
	end := e.multiplier(e.DayOffset+e.DurationDays-1, effectCPIMultiplier)
	if !(start < mid && mid < end) {
		t.Errorf("fatigue should ramp: start=%v mid=%v end=%v", start, mid, end)
	}
	if end >= 1.52 {
		t.Errorf("fatigue end %v should stay below the full multiplier before the last day", end)
	}
}

func TestUnknownMetricIsNeutral(t *testing.T) {
	e := eventByName(t, "budget_pacing_alert")

	if got := e.multiplier(e.DayOffset, effectOrganicMultiplier); got != 1.0 {
		t.Errorf("unrelated metric multiplier = %v, want 1.0", got)
	}
}

func TestChannelEventMultiplierFoldsAllChannels(t *testing.T) {
	// Day 20 is inside budget_pacing_alert, which hits every channel.
	if got := channelEventMultiplier("meta", 20, effectSpendMultiplier); got != 1.40 {
		t.Errorf("spend multiplier = %v, want 1.40", got)
	}
	// CPI is untouched by the pacing event.
	if got := channelEventMultiplier("meta", 20, effectCPIMultiplier); got != 1.0 {
		t.Errorf("cpi multiplier = %v, want 1.0", got)
	}
	// TikTok breakthrough applies on day 35 for tiktok only.
	if got := channelEventMultiplier("tiktok", 35, effectCPIMultiplier); got != 0.66 {
		t.Errorf("tiktok cpi multiplier = %v, want 0.66", got)
	}
	if got := channelEventMultiplier("google", 35, effectCPIMultiplier); got != 1.0 {
		t.Errorf("google cpi multiplier = %v, want 1.0", got)
	}
}

func TestEventDeltasCarryMinorEffects(t *testing.T) {
	// The breakthrough holds its retention and CTR boosts for its whole
	// duration and contributes nothing outside the window.
	if got := channelEventDelta("tiktok", 35, effectRetentionBoost); got != 0.09 {
		t.Errorf("retention boost = %v, want 0.09", got)
	}
	if got := channelEventDelta("tiktok", 35, effectCTRBoost); got != 0.015 {
		t.Errorf("ctr boost = %v, want 0.015", got)
	}
	if got := channelEventDelta("tiktok", 20, effectCTRBoost); got != 0 {
		t.Errorf("ctr boost before event = %v, want 0", got)
	}

	// Fatigue CTR decline ramps linearly from zero.
	e := eventByName(t, "meta_fatigue")
	if got := e.delta(e.DayOffset, effectCTRDecline); got != 0 {
		t.Errorf("decline at onset = %v, want 0", got)
	}
	mid := e.delta(e.DayOffset+e.DurationDays/2, effectCTRDecline)
	if mid <= 0 || mid >= 0.014 {
		t.Errorf("mid-fatigue decline = %v, want within (0, 0.014)", mid)
	}
}

func TestTier1FlagCarried(t *testing.T) {
	if !eventByName(t, "google_efficiency_drop").Tier1Only {
		t.Error("competitor launch should be flagged tier-1 only")
	}
	if eventByName(t, "tiktok_breakthrough").Tier1Only {
		t.Error("breakthrough should not be flagged tier-1 only")
	}
}

func TestGoldenEventInventory(t *testing.T) {
	if len(goldenEvents) != 6 {
		t.Fatalf("golden events = %d, want 6", len(goldenEvents))
	}
	for _, e := range goldenEvents {
		if e.DurationDays < 1 {
			t.Errorf("event %s has no duration", e.Name)
		}
		if e.SignalTitle == "" || e.Action == "" {
			t.Errorf("event %s is missing signal copy", e.Name)
		}
		if e.Severity != "info" && e.Severity != "warning" && e.Severity != "critical" {
			t.Errorf("event %s has unknown severity %q", e.Name, e.Severity)
		}
	}
}
