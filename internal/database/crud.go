// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/olivehq/olive/internal/metrics"
	"github.com/olivehq/olive/internal/models"
)

// insertBatch runs fn for each row inside a single transaction against a
// prepared statement. All generator inserts funnel through here.
func (db *DB) insertBatch(ctx context.Context, table, query string, count int, bind func(i int) []any) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	err := db.execBatch(ctx, query, count, bind)
	metrics.RecordDBQuery("insert", table, time.Since(start), err)
	if err != nil {
		return err
	}
	metrics.DBRowsInserted.WithLabelValues(table).Add(float64(count))
	return nil
}

func (db *DB) execBatch(ctx context.Context, query string, count int, bind func(i int) []any) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < count; i++ {
		if _, err := stmt.ExecContext(ctx, bind(i)...); err != nil {
			return fmt.Errorf("insert row %d failed: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// InsertChannels inserts marketing channels.
func (db *DB) InsertChannels(ctx context.Context, channels []models.MarketingChannel) error {
	const query = `INSERT INTO marketing_channels
		(id, name, display_name, base_cpi, cpi_variance, daily_volume,
		 weekend_multiplier, quality_score, ltv_multiplier, creative_fatigue_days, properties)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return db.insertBatch(ctx, "marketing_channels", query, len(channels), func(i int) []any {
		c := channels[i]
		return []any{c.ID, c.Name, c.DisplayName, c.BaseCPI, c.CPIVariance, c.DailyVolume,
			c.WeekendMultiplier, c.QualityScore, c.LTVMultiplier, c.CreativeFatigueDays, nullString(c.Properties)}
	})
}

// InsertCreatives inserts ad creatives.
func (db *DB) InsertCreatives(ctx context.Context, creatives []models.Creative) error {
	const query = `INSERT INTO creatives
		(id, name, creative_type, created_date, performance_score)
		VALUES (?, ?, ?, ?, ?)`
	return db.insertBatch(ctx, "creatives", query, len(creatives), func(i int) []any {
		c := creatives[i]
		return []any{c.ID, c.Name, c.CreativeType, c.CreatedDate, c.PerformanceScore}
	})
}

// InsertCampaigns inserts campaigns.
func (db *DB) InsertCampaigns(ctx context.Context, campaigns []models.Campaign) error {
	const query = `INSERT INTO campaigns
		(id, channel_id, name, start_date, end_date, status, daily_budget, total_budget, creative_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return db.insertBatch(ctx, "campaigns", query, len(campaigns), func(i int) []any {
		c := campaigns[i]
		return []any{c.ID, c.ChannelID, c.Name, c.StartDate, c.EndDate, c.Status,
			c.DailyBudget, c.TotalBudget, c.CreativeID}
	})
}

// InsertDailyPerformance inserts campaign-day performance rows.
func (db *DB) InsertDailyPerformance(ctx context.Context, rows []models.DailyCampaignPerformance) error {
	const query = `INSERT INTO daily_campaign_performance
		(id, campaign_id, date, spend, impressions, clicks, installs, cpi, ctr, cvr,
		 retention_d1, retention_d7, retention_d30, revenue_7d, revenue_30d,
		 ltv_predicted, roas_7d, roas_30d)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return db.insertBatch(ctx, "daily_campaign_performance", query, len(rows), func(i int) []any {
		r := rows[i]
		return []any{r.ID, r.CampaignID, r.Date, r.Spend, r.Impressions, r.Clicks, r.Installs,
			r.CPI, r.CTR, r.CVR, r.RetentionD1, r.RetentionD7, r.RetentionD30,
			r.Revenue7D, r.Revenue30D, r.LTVPredicted, r.ROAS7D, r.ROAS30D}
	})
}

// InsertUserInstalls inserts attributed installs.
func (db *DB) InsertUserInstalls(ctx context.Context, installs []models.UserInstall) error {
	const query = `INSERT INTO user_installs
		(id, user_id, campaign_id, creative_id, channel_id, install_date, install_source,
		 device_type, os_version, device_model, country, region, city,
		 d1_active, d3_active, d7_active, d30_active,
		 retention_d1, retention_d7, retention_d30,
		 session_count_7d, session_count_30d, avg_session_duration, total_playtime_minutes,
		 is_payer, first_purchase_day, total_revenue,
		 ltv_7d, ltv_30d, ltv_90d, ltv_180d, arpu, arppu,
		 is_churned, churn_date, days_to_churn, churn_reason, user_segment)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
		        ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return db.insertBatch(ctx, "user_installs", query, len(installs), func(i int) []any {
		u := installs[i]
		return []any{u.ID, u.UserID, u.CampaignID, u.CreativeID, u.ChannelID, u.InstallDate,
			u.InstallSource, u.DeviceType, nullString(u.OSVersion), nullString(u.DeviceModel),
			u.Country, nullString(u.Region), nullString(u.City),
			u.D1Active, u.D3Active, u.D7Active, u.D30Active,
			u.RetentionD1, u.RetentionD7, u.RetentionD30,
			u.SessionCount7D, u.SessionCount30D, u.AvgSessionDuration, u.TotalPlaytime,
			u.IsPayer, u.FirstPurchaseDay, u.TotalRevenue,
			u.LTV7D, u.LTV30D, u.LTV90D, u.LTV180D, u.ARPU, u.ARPPU,
			u.IsChurned, u.ChurnDate, u.DaysToChurn, nullString(u.ChurnReason), u.UserSegment}
	})
}

// InsertUserSessions inserts app sessions.
func (db *DB) InsertUserSessions(ctx context.Context, sessions []models.UserSession) error {
	const query = `INSERT INTO user_sessions
		(id, user_id, session_id, session_date, session_start_time, duration_seconds,
		 events_triggered, revenue_this_session, features_used, session_quality_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return db.insertBatch(ctx, "user_sessions", query, len(sessions), func(i int) []any {
		s := sessions[i]
		return []any{s.ID, s.UserID, s.SessionID, s.SessionDate, s.StartTime, s.DurationSeconds,
			nullString(s.EventsTriggered), s.Revenue, nullString(s.FeaturesUsed), s.QualityScore}
	})
}

// InsertOrganicMetrics inserts daily organic rows.
func (db *DB) InsertOrganicMetrics(ctx context.Context, rows []models.DailyOrganicMetric) error {
	const query = `INSERT INTO daily_organic_metrics
		(id, date, organic_installs, app_store_rank, app_store_rating, app_store_reviews,
		 social_mentions, sentiment_score, influencer_events, paid_halo_contribution)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return db.insertBatch(ctx, "daily_organic_metrics", query, len(rows), func(i int) []any {
		r := rows[i]
		return []any{r.ID, r.Date, r.OrganicInstalls, r.AppStoreRank, r.AppStoreRating,
			r.AppStoreReviews, r.SocialMentions, r.SentimentScore,
			nullString(r.InfluencerEvents), r.PaidHaloContribution}
	})
}

// CountChannels returns the number of marketing channels. Used by the
// health endpoint and the generator's empty-database check.
func (db *DB) CountChannels(ctx context.Context) (int, error) {
	return db.countRows(ctx, "marketing_channels")
}

// CountPerformanceRows returns the number of campaign-day rows.
func (db *DB) CountPerformanceRows(ctx context.Context) (int, error) {
	return db.countRows(ctx, "daily_campaign_performance")
}

func (db *DB) countRows(ctx context.Context, table string) (int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var count int
	// table names come from the fixed call sites above, never user input
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count)
	metrics.RecordDBQuery("count", table, time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}

// ResetDataset deletes all generated rows. Used when regeneration is forced.
func (db *DB) ResetDataset(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tables := []string{
		"signals",
		"user_sessions",
		"user_installs",
		"daily_organic_metrics",
		"daily_campaign_performance",
		"campaigns",
		"creatives",
		"marketing_channels",
	}
	for _, table := range tables {
		start := time.Now()
		_, err := db.conn.ExecContext(ctx, "DELETE FROM "+table)
		metrics.RecordDBQuery("delete", table, time.Since(start), err)
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
