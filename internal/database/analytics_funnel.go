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

// GetFunnelSummary aggregates the impression-to-retention funnel over the
// trailing window. CTR, CVR, and retention are returned as percentages.
func (db *DB) GetFunnelSummary(ctx context.Context, days int) (*models.FunnelSummary, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var impressions, clicks, installs int64
	var spend, avgCTR, avgCVR, avgD1, avgD7 float64
	err := db.conn.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(impressions), 0),
			COALESCE(SUM(clicks), 0),
			COALESCE(SUM(installs), 0),
			COALESCE(SUM(spend), 0),
			COALESCE(AVG(ctr), 0),
			COALESCE(AVG(cvr), 0),
			COALESCE(AVG(retention_d1), 0),
			COALESCE(AVG(retention_d7), 0)
		FROM daily_campaign_performance
		WHERE date >= ?`, cutoffDate(days)).
		Scan(&impressions, &clicks, &installs, &spend, &avgCTR, &avgCVR, &avgD1, &avgD7)
	metrics.RecordDBQuery("select", "daily_campaign_performance", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query funnel summary: %w", err)
	}

	return &models.FunnelSummary{
		Impressions: impressions,
		Clicks:      clicks,
		Installs:    installs,
		Spend:       round2(spend),
		CPM:         round2(safeDiv(spend, float64(impressions)/1000)),
		CPC:         round2(safeDiv(spend, float64(clicks))),
		CPI:         round2(safeDiv(spend, float64(installs))),
		CTR:         round2(avgCTR * 100),
		CVR:         round2(avgCVR * 100),
		RetentionD1: round2(avgD1 * 100),
		RetentionD7: round2(avgD7 * 100),
		PeriodDays:  days,
	}, nil
}

// GetFunnelTrends returns the daily funnel series over the trailing window.
func (db *DB) GetFunnelTrends(ctx context.Context, days int) (*models.FunnelTrendsResponse, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT
			date,
			COALESCE(SUM(impressions), 0),
			COALESCE(SUM(clicks), 0),
			COALESCE(SUM(installs), 0),
			COALESCE(AVG(ctr), 0),
			COALESCE(AVG(cvr), 0)
		FROM daily_campaign_performance
		WHERE date >= ?
		GROUP BY date
		ORDER BY date`, cutoffDate(days))
	metrics.RecordDBQuery("select", "daily_campaign_performance", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query funnel trends: %w", err)
	}
	defer rows.Close()

	trends := make([]models.FunnelTrendPoint, 0, days)
	for rows.Next() {
		var date time.Time
		var point models.FunnelTrendPoint
		var ctr, cvr float64
		if err := rows.Scan(&date, &point.Impressions, &point.Clicks, &point.Installs, &ctr, &cvr); err != nil {
			return nil, fmt.Errorf("failed to scan funnel trend row: %w", err)
		}
		point.Date = isoDate(date)
		point.CTR = round2(ctr * 100)
		point.CVR = round2(cvr * 100)
		trends = append(trends, point)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating funnel trend rows: %w", err)
	}

	return &models.FunnelTrendsResponse{Trends: trends, PeriodDays: days}, nil
}
