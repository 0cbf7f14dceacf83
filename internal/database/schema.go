// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

package database

import (
	"context"
	"fmt"
)

// schemaStatements create the analytics tables. All statements are
// idempotent so startup can run them unconditionally.
var schemaStatements = []string{
	`CREATE SEQUENCE IF NOT EXISTS seq_signals START 1`,

	`CREATE TABLE IF NOT EXISTS marketing_channels (
		id BIGINT PRIMARY KEY,
		name VARCHAR NOT NULL UNIQUE,
		display_name VARCHAR NOT NULL,
		base_cpi DOUBLE NOT NULL,
		cpi_variance DOUBLE NOT NULL,
		daily_volume INTEGER NOT NULL,
		weekend_multiplier DOUBLE NOT NULL,
		quality_score DOUBLE NOT NULL,
		ltv_multiplier DOUBLE NOT NULL,
		creative_fatigue_days INTEGER NOT NULL,
		properties VARCHAR,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS creatives (
		id BIGINT PRIMARY KEY,
		name VARCHAR NOT NULL,
		creative_type VARCHAR NOT NULL,
		created_date DATE NOT NULL,
		performance_score DOUBLE NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS campaigns (
		id BIGINT PRIMARY KEY,
		channel_id BIGINT NOT NULL,
		name VARCHAR NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE,
		status VARCHAR NOT NULL,
		daily_budget DOUBLE NOT NULL,
		total_budget DOUBLE,
		creative_id BIGINT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS daily_campaign_performance (
		id BIGINT PRIMARY KEY,
		campaign_id BIGINT NOT NULL,
		date DATE NOT NULL,
		spend DOUBLE NOT NULL,
		impressions BIGINT NOT NULL,
		clicks BIGINT NOT NULL,
		installs BIGINT NOT NULL,
		cpi DOUBLE NOT NULL,
		ctr DOUBLE NOT NULL,
		cvr DOUBLE NOT NULL,
		retention_d1 DOUBLE NOT NULL,
		retention_d7 DOUBLE NOT NULL,
		retention_d30 DOUBLE NOT NULL,
		revenue_7d DOUBLE NOT NULL,
		revenue_30d DOUBLE NOT NULL,
		ltv_predicted DOUBLE NOT NULL,
		roas_7d DOUBLE NOT NULL,
		roas_30d DOUBLE NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS user_installs (
		id BIGINT PRIMARY KEY,
		user_id VARCHAR NOT NULL,
		campaign_id BIGINT NOT NULL,
		creative_id BIGINT,
		channel_id BIGINT NOT NULL,
		install_date DATE NOT NULL,
		install_source VARCHAR NOT NULL,
		device_type VARCHAR NOT NULL,
		os_version VARCHAR,
		device_model VARCHAR,
		country VARCHAR NOT NULL,
		region VARCHAR,
		city VARCHAR,
		d1_active BOOLEAN NOT NULL,
		d3_active BOOLEAN NOT NULL,
		d7_active BOOLEAN NOT NULL,
		d30_active BOOLEAN NOT NULL,
		retention_d1 DOUBLE NOT NULL,
		retention_d7 DOUBLE NOT NULL,
		retention_d30 DOUBLE NOT NULL,
		session_count_7d INTEGER NOT NULL,
		session_count_30d INTEGER NOT NULL,
		avg_session_duration DOUBLE NOT NULL,
		total_playtime_minutes DOUBLE NOT NULL,
		is_payer BOOLEAN NOT NULL,
		first_purchase_day INTEGER,
		total_revenue DOUBLE NOT NULL,
		ltv_7d DOUBLE NOT NULL,
		ltv_30d DOUBLE NOT NULL,
		ltv_90d DOUBLE NOT NULL,
		ltv_180d DOUBLE NOT NULL,
		arpu DOUBLE NOT NULL,
		arppu DOUBLE NOT NULL,
		is_churned BOOLEAN NOT NULL,
		churn_date DATE,
		days_to_churn INTEGER,
		churn_reason VARCHAR,
		user_segment VARCHAR NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS user_sessions (
		id BIGINT PRIMARY KEY,
		user_id VARCHAR NOT NULL,
		session_id VARCHAR NOT NULL,
		session_date DATE NOT NULL,
		session_start_time TIMESTAMP NOT NULL,
		duration_seconds INTEGER NOT NULL,
		events_triggered VARCHAR,
		revenue_this_session DOUBLE NOT NULL,
		features_used VARCHAR,
		session_quality_score DOUBLE NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS daily_organic_metrics (
		id BIGINT PRIMARY KEY,
		date DATE NOT NULL UNIQUE,
		organic_installs BIGINT NOT NULL,
		app_store_rank INTEGER NOT NULL,
		app_store_rating DOUBLE NOT NULL,
		app_store_reviews INTEGER NOT NULL,
		social_mentions INTEGER NOT NULL,
		sentiment_score DOUBLE NOT NULL,
		influencer_events VARCHAR,
		paid_halo_contribution DOUBLE NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS signals (
		id BIGINT PRIMARY KEY DEFAULT nextval('seq_signals'),
		date_detected DATE NOT NULL,
		signal_type VARCHAR NOT NULL,
		title VARCHAR NOT NULL,
		description VARCHAR NOT NULL,
		severity VARCHAR NOT NULL,
		affected_entity_type VARCHAR,
		affected_entity_id BIGINT,
		metrics VARCHAR,
		recommended_action VARCHAR NOT NULL,
		predicted_impact VARCHAR,
		priority_score DOUBLE NOT NULL,
		confidence DOUBLE NOT NULL,
		is_dismissed BOOLEAN NOT NULL DEFAULT false,
		dismissed_at TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
}

// indexStatements speed up the hot aggregation paths. Created after the
// tables so a partially initialized database still converges.
var indexStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_perf_date ON daily_campaign_performance(date)`,
	`CREATE INDEX IF NOT EXISTS idx_perf_campaign ON daily_campaign_performance(campaign_id)`,
	`CREATE INDEX IF NOT EXISTS idx_campaigns_channel ON campaigns(channel_id)`,
	`CREATE INDEX IF NOT EXISTS idx_installs_date ON user_installs(install_date)`,
	`CREATE INDEX IF NOT EXISTS idx_installs_channel ON user_installs(channel_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_user ON user_sessions(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_organic_date ON daily_organic_metrics(date)`,
	`CREATE INDEX IF NOT EXISTS idx_signals_detected ON signals(date_detected)`,
}

// initSchema creates all tables and indexes if they do not exist.
func (db *DB) initSchema() error {
	ctx, cancel := db.ensureContext(context.Background())
	defer cancel()

	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	for _, stmt := range indexStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("index statement failed: %w", err)
		}
	}
	return nil
}
