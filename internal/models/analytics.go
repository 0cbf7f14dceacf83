// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

package models

// ExecutiveSummary aggregates spend, installs, and efficiency for the
// executive dashboard over a lookback window.
type ExecutiveSummary struct {
	TotalSpend      float64 `json:"total_spend"`
	TotalInstalls   int64   `json:"total_installs"`
	OrganicInstalls int64   `json:"organic_installs"`
	BlendedCAC      float64 `json:"blended_cac"`
	ROAS30D         float64 `json:"roas_30d"`
	LTVCACRatio     float64 `json:"ltv_cac_ratio"`
	PeriodDays      int     `json:"period_days"`
}

// ExecutiveTrendPoint is one day of executive trend data.
type ExecutiveTrendPoint struct {
	Date     string  `json:"date"`
	Spend    float64 `json:"spend"`
	Installs int64   `json:"installs"`
	CPI      float64 `json:"cpi"`
}

// ExecutiveTrendsResponse wraps the daily trend series.
type ExecutiveTrendsResponse struct {
	Trends     []ExecutiveTrendPoint `json:"trends"`
	PeriodDays int                   `json:"period_days"`
}

// ChannelPerformance compares one channel's totals over a window.
type ChannelPerformance struct {
	Channel     string  `json:"channel"`
	DisplayName string  `json:"display_name"`
	Spend       float64 `json:"spend"`
	Installs    int64   `json:"installs"`
	CPI         float64 `json:"cpi"`
	ROAS        float64 `json:"roas"`
}

// ChannelPerformanceResponse wraps the channel comparison.
type ChannelPerformanceResponse struct {
	Channels   []ChannelPerformance `json:"channels"`
	PeriodDays int                  `json:"period_days"`
}

// CampaignPerformance is one campaign's totals over a window.
type CampaignPerformance struct {
	Campaign string  `json:"campaign"`
	Channel  string  `json:"channel"`
	Spend    float64 `json:"spend"`
	Installs int64   `json:"installs"`
	CPI      float64 `json:"cpi"`
	ROAS     float64 `json:"roas"`
}

// CampaignPerformanceResponse wraps the campaign list.
type CampaignPerformanceResponse struct {
	Campaigns  []CampaignPerformance `json:"campaigns"`
	PeriodDays int                   `json:"period_days"`
}

// OrganicSummary aggregates organic acquisition over a window.
type OrganicSummary struct {
	OrganicInstalls     int64   `json:"organic_installs"`
	AvgAppStoreRank     float64 `json:"avg_app_store_rank"`
	AvgSentiment        float64 `json:"avg_sentiment"`
	TotalSocialMentions int64   `json:"total_social_mentions"`
	PeriodDays          int     `json:"period_days"`
}

// OrganicTrendPoint is one day of organic trend data.
type OrganicTrendPoint struct {
	Date            string  `json:"date"`
	OrganicInstalls int64   `json:"organic_installs"`
	AppStoreRank    int     `json:"app_store_rank"`
	SentimentScore  float64 `json:"sentiment_score"`
}

// OrganicTrendsResponse wraps the organic trend series.
type OrganicTrendsResponse struct {
	Trends     []OrganicTrendPoint `json:"trends"`
	PeriodDays int                 `json:"period_days"`
}

// FunnelSummary aggregates the impression-to-retention funnel.
// Rate fields (CTR, CVR, retention) are percentages.
type FunnelSummary struct {
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Installs    int64   `json:"installs"`
	Spend       float64 `json:"spend"`
	CPM         float64 `json:"cpm"`
	CPC         float64 `json:"cpc"`
	CPI         float64 `json:"cpi"`
	CTR         float64 `json:"ctr"`
	CVR         float64 `json:"cvr"`
	RetentionD1 float64 `json:"retention_d1"`
	RetentionD7 float64 `json:"retention_d7"`
	PeriodDays  int     `json:"period_days"`
}

// FunnelTrendPoint is one day of funnel conversion data.
type FunnelTrendPoint struct {
	Date        string  `json:"date"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Installs    int64   `json:"installs"`
	CTR         float64 `json:"ctr"`
	CVR         float64 `json:"cvr"`
}

// FunnelTrendsResponse wraps the funnel trend series.
type FunnelTrendsResponse struct {
	Trends     []FunnelTrendPoint `json:"trends"`
	PeriodDays int                `json:"period_days"`
}

// SignalView is the API projection of a Signal, with the JSON metric
// blobs decoded into maps.
type SignalView struct {
	ID                int64                  `json:"id"`
	Date              string                 `json:"date"`
	Type              string                 `json:"type"`
	Title             string                 `json:"title"`
	Description       string                 `json:"description"`
	Severity          string                 `json:"severity"`
	RecommendedAction string                 `json:"recommended_action"`
	PriorityScore     float64                `json:"priority_score"`
	Confidence        float64                `json:"confidence"`
	Metrics           map[string]interface{} `json:"metrics"`
	PredictedImpact   map[string]interface{} `json:"predicted_impact"`
}

// SignalsResponse wraps the active signal list.
type SignalsResponse struct {
	Signals    []SignalView `json:"signals"`
	PeriodDays int          `json:"period_days"`
}

// DismissSignalResponse acknowledges a signal dismissal.
type DismissSignalResponse struct {
	ID          int64  `json:"id"`
	IsDismissed bool   `json:"is_dismissed"`
	DismissedAt string `json:"dismissed_at"`
}

// ScenarioPrediction is the outcome of a what-if budget shift.
type ScenarioPrediction struct {
	InstallsChangePct      float64 `json:"installs_change_pct"`
	CACChangePct           float64 `json:"cac_change_pct"`
	EstimatedMonthlyImpact float64 `json:"estimated_monthly_impact"`
}

// LTVPrediction is a predicted lifetime value for one user profile.
type LTVPrediction struct {
	PredictedLTV90D float64 `json:"predicted_ltv_90d"`
	Source          string  `json:"source"` // checkpoint or heuristic
}

// ChurnPrediction is a churn probability for one user profile.
type ChurnPrediction struct {
	ChurnProbability float64 `json:"churn_probability"`
	RiskTier         string  `json:"risk_tier"` // low, medium, high, critical
	Source           string  `json:"source"`
}

// CampaignForecastPoint is one forecast day of CPI.
type CampaignForecastPoint struct {
	Day          int     `json:"day"`
	PredictedCPI float64 `json:"predicted_cpi"`
}

// CampaignForecast is a short-horizon CPI forecast for a channel.
type CampaignForecast struct {
	Channel  string                  `json:"channel"`
	Horizon  int                     `json:"horizon_days"`
	Forecast []CampaignForecastPoint `json:"forecast"`
	Source   string                  `json:"source"`
}
