// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

// Package models defines the domain entities and API payload types shared
// by the database, generator, and HTTP layers.
package models

import (
	"time"
)

// Campaign lifecycle states.
const (
	CampaignStatusLearning = "learning"
	CampaignStatusActive   = "active"
	CampaignStatusFatigued = "fatigued"
	CampaignStatusPaused   = "paused"
)

// Signal severity levels.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Install attribution sources.
const (
	InstallSourcePaid    = "paid"
	InstallSourceOrganic = "organic"
)

// MarketingChannel is an acquisition channel (Meta, Google, TikTok,
// Programmatic) with the cost and quality characteristics that drive
// synthetic data generation.
type MarketingChannel struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	DisplayName         string    `json:"display_name"`
	BaseCPI             float64   `json:"base_cpi"`
	CPIVariance         float64   `json:"cpi_variance"`
	DailyVolume         int       `json:"daily_volume"`
	WeekendMultiplier   float64   `json:"weekend_multiplier"`
	QualityScore        float64   `json:"quality_score"` // D7 retention baseline
	LTVMultiplier       float64   `json:"ltv_multiplier"`
	CreativeFatigueDays int       `json:"creative_fatigue_days"`
	Properties          string    `json:"properties,omitempty"` // JSON blob
	CreatedAt           time.Time `json:"created_at"`
}

// Campaign is a marketing campaign on one channel.
type Campaign struct {
	ID          int64      `json:"id"`
	ChannelID   int64      `json:"channel_id"`
	Name        string     `json:"name"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Status      string     `json:"status"`
	DailyBudget float64    `json:"daily_budget"`
	TotalBudget float64    `json:"total_budget,omitempty"`
	CreativeID  *int64     `json:"creative_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Creative is an ad creative asset.
type Creative struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	CreativeType     string    `json:"creative_type"` // video, image, carousel
	CreatedDate      time.Time `json:"created_date"`
	PerformanceScore float64   `json:"performance_score"` // 0-100
}

// DailyCampaignPerformance is one campaign-day of spend and outcome metrics.
type DailyCampaignPerformance struct {
	ID           int64     `json:"id"`
	CampaignID   int64     `json:"campaign_id"`
	Date         time.Time `json:"date"`
	Spend        float64   `json:"spend"`
	Impressions  int64     `json:"impressions"`
	Clicks       int64     `json:"clicks"`
	Installs     int64     `json:"installs"`
	CPI          float64   `json:"cpi"`
	CTR          float64   `json:"ctr"`
	CVR          float64   `json:"cvr"`
	RetentionD1  float64   `json:"retention_d1"`
	RetentionD7  float64   `json:"retention_d7"`
	RetentionD30 float64   `json:"retention_d30"`
	Revenue7D    float64   `json:"revenue_7d"`
	Revenue30D   float64   `json:"revenue_30d"`
	LTVPredicted float64   `json:"ltv_predicted"`
	ROAS7D       float64   `json:"roas_7d"`
	ROAS30D      float64   `json:"roas_30d"`
}

// UserInstall is an attributed install with behavioral and monetization
// outcomes. The generator writes these; the prediction endpoints read the
// behavioral columns as features.
type UserInstall struct {
	ID                 int64      `json:"id"`
	UserID             string     `json:"user_id"`
	CampaignID         int64      `json:"campaign_id"`
	CreativeID         *int64     `json:"creative_id,omitempty"`
	ChannelID          int64      `json:"channel_id"`
	InstallDate        time.Time  `json:"install_date"`
	InstallSource      string     `json:"install_source"`
	DeviceType         string     `json:"device_type"`
	OSVersion          string     `json:"os_version,omitempty"`
	DeviceModel        string     `json:"device_model,omitempty"`
	Country            string     `json:"country"`
	Region             string     `json:"region,omitempty"`
	City               string     `json:"city,omitempty"`
	D1Active           bool       `json:"d1_active"`
	D3Active           bool       `json:"d3_active"`
	D7Active           bool       `json:"d7_active"`
	D30Active          bool       `json:"d30_active"`
	RetentionD1        float64    `json:"retention_d1"`
	RetentionD7        float64    `json:"retention_d7"`
	RetentionD30       float64    `json:"retention_d30"`
	SessionCount7D     int        `json:"session_count_7d"`
	SessionCount30D    int        `json:"session_count_30d"`
	AvgSessionDuration float64    `json:"avg_session_duration"` // minutes
	TotalPlaytime      float64    `json:"total_playtime_minutes"`
	IsPayer            bool       `json:"is_payer"`
	FirstPurchaseDay   *int       `json:"first_purchase_day,omitempty"`
	TotalRevenue       float64    `json:"total_revenue"`
	LTV7D              float64    `json:"ltv_7d"`
	LTV30D             float64    `json:"ltv_30d"`
	LTV90D             float64    `json:"ltv_90d"`
	LTV180D            float64    `json:"ltv_180d"`
	ARPU               float64    `json:"arpu"`
	ARPPU              float64    `json:"arppu"`
	IsChurned          bool       `json:"is_churned"`
	ChurnDate          *time.Time `json:"churn_date,omitempty"`
	DaysToChurn        *int       `json:"days_to_churn,omitempty"`
	ChurnReason        string     `json:"churn_reason,omitempty"`
	UserSegment        string     `json:"user_segment"` // power_user, regular, casual, churner
	CreatedAt          time.Time  `json:"created_at"`
}

// UserSession is a single app session for an installed user.
type UserSession struct {
	ID              int64     `json:"id"`
	UserID          string    `json:"user_id"`
	SessionID       string    `json:"session_id"`
	SessionDate     time.Time `json:"session_date"`
	StartTime       time.Time `json:"session_start_time"`
	DurationSeconds int       `json:"duration_seconds"`
	EventsTriggered string    `json:"events_triggered,omitempty"` // JSON array
	Revenue         float64   `json:"revenue_this_session"`
	FeaturesUsed    string    `json:"features_used,omitempty"` // JSON array
	QualityScore    float64   `json:"session_quality_score"`   // 0-100
}

// DailyOrganicMetric is one day of organic acquisition metrics.
type DailyOrganicMetric struct {
	ID                   int64     `json:"id"`
	Date                 time.Time `json:"date"`
	OrganicInstalls      int64     `json:"organic_installs"`
	AppStoreRank         int       `json:"app_store_rank"`
	AppStoreRating       float64   `json:"app_store_rating"`
	AppStoreReviews      int       `json:"app_store_reviews"`
	SocialMentions       int       `json:"social_mentions"`
	SentimentScore       float64   `json:"sentiment_score"`             // -1 to 1
	InfluencerEvents     string    `json:"influencer_events,omitempty"` // JSON array
	PaidHaloContribution float64   `json:"paid_halo_contribution"`
}

// Signal is a pre-computed performance insight surfaced on the dashboard.
type Signal struct {
	ID                 int64      `json:"id"`
	DateDetected       time.Time  `json:"date_detected"`
	SignalType         string     `json:"signal_type"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Severity           string     `json:"severity"`
	AffectedEntityType string     `json:"affected_entity_type,omitempty"` // channel, campaign, creative
	AffectedEntityID   *int64     `json:"affected_entity_id,omitempty"`
	Metrics            string     `json:"metrics,omitempty"` // JSON: before/after values
	RecommendedAction  string     `json:"recommended_action"`
	PredictedImpact    string     `json:"predicted_impact,omitempty"` // JSON: expected outcomes
	PriorityScore      float64    `json:"priority_score"`             // 0-100
	Confidence         float64    `json:"confidence"`                 // 0-1
	IsDismissed        bool       `json:"is_dismissed"`
	DismissedAt        *time.Time `json:"dismissed_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}
