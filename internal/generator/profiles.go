// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

// Package generator produces the deterministic synthetic marketing
// dataset: channels, campaigns, daily performance, user installs,
// sessions, organic metrics, and the scripted signals that make the
// demo dashboard interesting.
package generator

// ChannelProfile captures the cost and quality characteristics of one
// acquisition channel, calibrated against real-world benchmarks.
type ChannelProfile struct {
	Name                string
	DisplayName         string
	BaseCPI             float64
	CPIVariance         float64
	DailyVolume         int
	WeekendMultiplier   float64
	QualityScore        float64 // D7 retention baseline
	LTVMultiplier       float64
	CreativeFatigueDays int
	PropertiesJSON      string
}

var channelProfiles = []ChannelProfile{
	{
		Name:                "meta",
		DisplayName:         "Meta (Facebook/Instagram)",
		BaseCPI:             2.50,
		CPIVariance:         0.40,
		DailyVolume:         5000,
		WeekendMultiplier:   0.85,
		QualityScore:        0.72,
		LTVMultiplier:       1.0,
		CreativeFatigueDays: 14,
		PropertiesJSON:      `{"auction_competition":"high","targeting_precision":"high","creative_formats":["video","image","carousel"],"best_geos":["US","UK","CA","AU"],"peak_hours":[18,19,20,21]}`,
	},
	{
		Name:                "google",
		DisplayName:         "Google UAC",
		BaseCPI:             3.20,
		CPIVariance:         0.30,
		DailyVolume:         3500,
		WeekendMultiplier:   0.90,
		QualityScore:        0.68,
		LTVMultiplier:       0.95,
		CreativeFatigueDays: 21,
		PropertiesJSON:      `{"auction_competition":"medium","targeting_precision":"medium","creative_formats":["video","image"],"best_geos":["US","UK","DE","JP"],"peak_hours":[10,11,14,15,20]}`,
	},
	{
		Name:                "tiktok",
		DisplayName:         "TikTok Ads",
		BaseCPI:             1.80,
		CPIVariance:         0.60,
		DailyVolume:         8000,
		WeekendMultiplier:   1.15,
		QualityScore:        0.55,
		LTVMultiplier:       0.75,
		CreativeFatigueDays: 7,
		PropertiesJSON:      `{"auction_competition":"low","targeting_precision":"medium","creative_formats":["video"],"best_geos":["US","BR","MX","IN"],"peak_hours":[19,20,21,22,23]}`,
	},
	{
		Name:                "programmatic",
		DisplayName:         "Programmatic DSP",
		BaseCPI:             4.50,
		CPIVariance:         0.50,
		DailyVolume:         1500,
		WeekendMultiplier:   0.95,
		QualityScore:        0.80,
		LTVMultiplier:       1.25,
		CreativeFatigueDays: 30,
		PropertiesJSON:      `{"auction_competition":"low","targeting_precision":"very_high","creative_formats":["video","image","native"],"best_geos":["US","UK","CA","AU","DE"],"peak_hours":[9,10,11,14,15,16]}`,
	},
}

// segmentWeights is the power_user / regular / casual split per channel.
var segmentWeights = map[string][3]float64{
	"meta":         {0.12, 0.45, 0.43},
	"google":       {0.10, 0.42, 0.48},
	"tiktok":       {0.06, 0.32, 0.62},
	"programmatic": {0.18, 0.52, 0.30},
}

var segmentNames = [3]string{"power_user", "regular", "casual"}

// iosShare is the iOS fraction of installs per channel; the remainder is
// Android.
var iosShare = map[string]float64{
	"meta":         0.55,
	"google":       0.48,
	"tiktok":       0.42,
	"programmatic": 0.62,
}

type countryWeight struct {
	Code   string
	Weight float64
}

var countryWeights = []countryWeight{
	{"US", 0.40},
	{"UK", 0.12},
	{"CA", 0.08},
	{"AU", 0.06},
	{"DE", 0.07},
	{"FR", 0.05},
	{"BR", 0.08},
	{"MX", 0.06},
	{"IN", 0.05},
	{"JP", 0.03},
}

// MonetizationProfile drives payer conversion and revenue per segment.
type MonetizationProfile struct {
	PayingRate          float64
	AvgRevenue          float64
	FirstPurchaseDayMin int
	FirstPurchaseDayMax int
	SessionDurationMin  float64 // minutes
	SessionDurationMax  float64
}

var monetizationProfiles = map[string]MonetizationProfile{
	"power_user": {PayingRate: 0.35, AvgRevenue: 45.0, FirstPurchaseDayMin: 1, FirstPurchaseDayMax: 3, SessionDurationMin: 30, SessionDurationMax: 60},
	"regular":    {PayingRate: 0.08, AvgRevenue: 15.0, FirstPurchaseDayMin: 3, FirstPurchaseDayMax: 14, SessionDurationMin: 10, SessionDurationMax: 20},
	"casual":     {PayingRate: 0.01, AvgRevenue: 5.0, FirstPurchaseDayMin: 7, FirstPurchaseDayMax: 30, SessionDurationMin: 5, SessionDurationMax: 10},
}

// ChurnProfile drives churn probability and timing per segment.
type ChurnProfile struct {
	ChurnRate      float64
	AvgDaysToChurn int
}

var churnProfiles = map[string]ChurnProfile{
	"power_user": {ChurnRate: 0.10, AvgDaysToChurn: 60},
	"regular":    {ChurnRate: 0.30, AvgDaysToChurn: 30},
	"casual":     {ChurnRate: 0.60, AvgDaysToChurn: 14},
}
