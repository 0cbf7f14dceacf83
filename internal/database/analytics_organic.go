// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

package database

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/olivehq/olive/internal/metrics"
	"github.com/olivehq/olive/internal/models"
)

// GetOrganicSummary aggregates organic acquisition over the trailing window.
func (db *DB) GetOrganicSummary(ctx context.Context, days int) (*models.OrganicSummary, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var installs, mentions int64
	var avgRank, avgSentiment float64
	err := db.conn.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(organic_installs), 0),
			COALESCE(AVG(app_store_rank), 0),
			COALESCE(AVG(sentiment_score), 0),
			COALESCE(SUM(social_mentions), 0)
		FROM daily_organic_metrics
		WHERE date >= ?`, cutoffDate(days)).Scan(&installs, &avgRank, &avgSentiment, &mentions)
	metrics.RecordDBQuery("select", "daily_organic_metrics", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query organic summary: %w", err)
	}

	return &models.OrganicSummary{
		OrganicInstalls:     installs,
		AvgAppStoreRank:     math.Round(avgRank*10) / 10,
		AvgSentiment:        round2(avgSentiment),
		TotalSocialMentions: mentions,
		PeriodDays:          days,
	}, nil
}

// GetOrganicTrends returns the daily organic series over the trailing window.
func (db *DB) GetOrganicTrends(ctx context.Context, days int) (*models.OrganicTrendsResponse, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT date, organic_installs, app_store_rank, sentiment_score
		FROM daily_organic_metrics
		WHERE date >= ?
		ORDER BY date`, cutoffDate(days))
	metrics.RecordDBQuery("select", "daily_organic_metrics", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query organic trends: %w", err)
	}
	defer rows.Close()

	trends := make([]models.OrganicTrendPoint, 0, days)
	for rows.Next() {
		var date time.Time
		var point models.OrganicTrendPoint
		if err := rows.Scan(&date, &point.OrganicInstalls, &point.AppStoreRank, &point.SentimentScore); err != nil {
			return nil, fmt.Errorf("failed to scan organic trend row: %w", err)
		}
		point.Date = isoDate(date)
		point.SentimentScore = round2(point.SentimentScore)
		trends = append(trends, point)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating organic trend rows: %w", err)
	}

	return &models.OrganicTrendsResponse{Trends: trends, PeriodDays: days}, nil
}
