// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/olivehq/olive/internal/metrics"
	"github.com/olivehq/olive/internal/models"
)

// GetChannelPerformance compares paid channels over the trailing window,
// ordered by total spend descending.
func (db *DB) GetChannelPerformance(ctx context.Context, days int) (*models.ChannelPerformanceResponse, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT
			ch.name,
			ch.display_name,
			COALESCE(SUM(p.spend), 0),
			COALESCE(SUM(p.installs), 0),
			COALESCE(AVG(p.cpi), 0),
			COALESCE(AVG(p.roas_30d), 0)
		FROM daily_campaign_performance p
		JOIN campaigns c ON p.campaign_id = c.id
		JOIN marketing_channels ch ON c.channel_id = ch.id
		WHERE p.date >= ?
		GROUP BY ch.name, ch.display_name
		ORDER BY SUM(p.spend) DESC`, cutoffDate(days))
	metrics.RecordDBQuery("select", "daily_campaign_performance", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query channel performance: %w", err)
	}
	defer rows.Close()

	channels := make([]models.ChannelPerformance, 0, 4)
	for rows.Next() {
		var ch models.ChannelPerformance
		if err := rows.Scan(&ch.Channel, &ch.DisplayName, &ch.Spend, &ch.Installs, &ch.CPI, &ch.ROAS); err != nil {
			return nil, fmt.Errorf("failed to scan channel row: %w", err)
		}
		ch.Spend = round2(ch.Spend)
		ch.CPI = round2(ch.CPI)
		ch.ROAS = round2(ch.ROAS)
		channels = append(channels, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating channel rows: %w", err)
	}

	return &models.ChannelPerformanceResponse{Channels: channels, PeriodDays: days}, nil
}

// GetCampaignPerformance lists per-campaign totals over the trailing
// window, optionally restricted to one channel name.
func (db *DB) GetCampaignPerformance(ctx context.Context, days int, channel string) (*models.CampaignPerformanceResponse, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT
			c.name,
			ch.name,
			COALESCE(SUM(p.spend), 0),
			COALESCE(SUM(p.installs), 0),
			COALESCE(AVG(p.cpi), 0),
			COALESCE(AVG(p.roas_30d), 0)
		FROM daily_campaign_performance p
		JOIN campaigns c ON p.campaign_id = c.id
		JOIN marketing_channels ch ON c.channel_id = ch.id
		WHERE p.date >= ?`
	args := []any{cutoffDate(days)}
	if channel != "" {
		query += " AND ch.name = ?"
		args = append(args, channel)
	}
	query += `
		GROUP BY c.name, ch.name
		ORDER BY SUM(p.spend) DESC`

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("select", "daily_campaign_performance", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaign performance: %w", err)
	}
	defer rows.Close()

	campaigns := make([]models.CampaignPerformance, 0, 16)
	for rows.Next() {
		var cp models.CampaignPerformance
		if err := rows.Scan(&cp.Campaign, &cp.Channel, &cp.Spend, &cp.Installs, &cp.CPI, &cp.ROAS); err != nil {
			return nil, fmt.Errorf("failed to scan campaign row: %w", err)
		}
		cp.Spend = round2(cp.Spend)
		cp.CPI = round2(cp.CPI)
		cp.ROAS = round2(cp.ROAS)
		campaigns = append(campaigns, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating campaign rows: %w", err)
	}

	return &models.CampaignPerformanceResponse{Campaigns: campaigns, PeriodDays: days}, nil
}
