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

// ltvCACMultiplier projects the 30-day ROAS out to lifetime value.
const ltvCACMultiplier = 5.0

// GetExecutiveSummary aggregates spend, installs, and efficiency across
// all paid channels plus organic installs over the trailing window.
func (db *DB) GetExecutiveSummary(ctx context.Context, days int) (*models.ExecutiveSummary, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	cutoff := cutoffDate(days)

	start := time.Now()
	var totalSpend, revenue30D float64
	var totalInstalls int64
	err := db.conn.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(spend), 0),
			COALESCE(SUM(installs), 0),
			COALESCE(SUM(revenue_30d), 0)
		FROM daily_campaign_performance
		WHERE date >= ?`, cutoff).Scan(&totalSpend, &totalInstalls, &revenue30D)
	metrics.RecordDBQuery("select", "daily_campaign_performance", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query executive summary: %w", err)
	}

	start = time.Now()
	var organicInstalls int64
	err = db.conn.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(organic_installs), 0)
		FROM daily_organic_metrics
		WHERE date >= ?`, cutoff).Scan(&organicInstalls)
	metrics.RecordDBQuery("select", "daily_organic_metrics", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query organic installs: %w", err)
	}

	blendedCAC := safeDiv(totalSpend, float64(totalInstalls))
	roas := safeDiv(revenue30D, totalSpend)

	return &models.ExecutiveSummary{
		TotalSpend:      round2(totalSpend),
		TotalInstalls:   totalInstalls,
		OrganicInstalls: organicInstalls,
		BlendedCAC:      round2(blendedCAC),
		ROAS30D:         round2(roas),
		LTVCACRatio:     round2(roas * ltvCACMultiplier),
		PeriodDays:      days,
	}, nil
}

// GetExecutiveTrends returns daily spend, installs, and average CPI over
// the trailing window.
func (db *DB) GetExecutiveTrends(ctx context.Context, days int) (*models.ExecutiveTrendsResponse, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT
			date,
			COALESCE(SUM(spend), 0),
			COALESCE(SUM(installs), 0),
			COALESCE(AVG(cpi), 0)
		FROM daily_campaign_performance
		WHERE date >= ?
		GROUP BY date
		ORDER BY date`, cutoffDate(days))
	metrics.RecordDBQuery("select", "daily_campaign_performance", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query executive trends: %w", err)
	}
	defer rows.Close()

	trends := make([]models.ExecutiveTrendPoint, 0, days)
	for rows.Next() {
		var date time.Time
		var spend, cpi float64
		var installs int64
		if err := rows.Scan(&date, &spend, &installs, &cpi); err != nil {
			return nil, fmt.Errorf("failed to scan trend row: %w", err)
		}
		trends = append(trends, models.ExecutiveTrendPoint{
			Date:     isoDate(date),
			Spend:    round2(spend),
			Installs: installs,
			CPI:      round2(cpi),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trend rows: %w", err)
	}

	return &models.ExecutiveTrendsResponse{Trends: trends, PeriodDays: days}, nil
}
