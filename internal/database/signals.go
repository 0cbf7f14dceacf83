// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/olivehq/olive/internal/metrics"
	"github.com/olivehq/olive/internal/models"
)

// ErrSignalNotFound is returned when a signal ID does not exist.
var ErrSignalNotFound = errors.New("signal not found")

// ListSignals returns active (undismissed) signals detected within the
// trailing window, highest priority first. An empty or "all" severity
// disables the severity filter.
func (db *DB) ListSignals(ctx context.Context, days int, severity string) (*models.SignalsResponse, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT id, date_detected, signal_type, title, description, severity,
		       recommended_action, priority_score, confidence, metrics, predicted_impact
		FROM signals
		WHERE is_dismissed = false AND date_detected >= ?`
	args := []any{cutoffDate(days)}
	if severity != "" && severity != "all" {
		query += " AND severity = ?"
		args = append(args, severity)
	}
	query += " ORDER BY priority_score DESC"

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("select", "signals", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query signals: %w", err)
	}
	defer rows.Close()

	signals := make([]models.SignalView, 0, 8)
	for rows.Next() {
		var s models.SignalView
		var date time.Time
		var metricsJSON, impactJSON sql.NullString
		if err := rows.Scan(&s.ID, &date, &s.Type, &s.Title, &s.Description, &s.Severity,
			&s.RecommendedAction, &s.PriorityScore, &s.Confidence, &metricsJSON, &impactJSON); err != nil {
			return nil, fmt.Errorf("failed to scan signal row: %w", err)
		}
		s.Date = isoDate(date)
		s.Metrics = decodeJSONMap(metricsJSON)
		s.PredictedImpact = decodeJSONMap(impactJSON)
		signals = append(signals, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating signal rows: %w", err)
	}

	return &models.SignalsResponse{Signals: signals, PeriodDays: days}, nil
}

// decodeJSONMap parses a JSON column into a map, falling back to an empty
// map on NULL or malformed content so one bad row cannot break the list.
func decodeJSONMap(raw sql.NullString) map[string]interface{} {
	if !raw.Valid || raw.String == "" {
		return map[string]interface{}{}
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(raw.String), &m); err != nil {
		return map[string]interface{}{}
	}
	return m
}

// DismissSignal marks a signal dismissed. Returns ErrSignalNotFound when
// the ID does not exist.
func (db *DB) DismissSignal(ctx context.Context, id int64) (*models.DismissSignalResponse, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	dismissedAt := time.Now().UTC()

	start := time.Now()
	res, err := db.conn.ExecContext(ctx, `
		UPDATE signals
		SET is_dismissed = true, dismissed_at = ?
		WHERE id = ?`, dismissedAt, id)
	metrics.RecordDBQuery("update", "signals", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to dismiss signal %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrSignalNotFound
	}

	metrics.SignalsDismissed.Inc()

	return &models.DismissSignalResponse{
		ID:          id,
		IsDismissed: true,
		DismissedAt: dismissedAt.Format(time.RFC3339),
	}, nil
}

// InsertSignal stores a new signal. The ID is assigned by the database.
func (db *DB) InsertSignal(ctx context.Context, s *models.Signal) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO signals
			(date_detected, signal_type, title, description, severity,
			 affected_entity_type, affected_entity_id, metrics,
			 recommended_action, predicted_impact, priority_score, confidence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.DateDetected, s.SignalType, s.Title, s.Description, s.Severity,
		nullString(s.AffectedEntityType), s.AffectedEntityID, nullString(s.Metrics),
		s.RecommendedAction, nullString(s.PredictedImpact), s.PriorityScore, s.Confidence)
	metrics.RecordDBQuery("insert", "signals", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to insert signal: %w", err)
	}
	metrics.DBRowsInserted.WithLabelValues("signals").Inc()
	return nil
}

// HasRecentSignal reports whether an undismissed signal of the given type
// already exists for an entity within the window. The detector uses this
// to avoid raising duplicates on every sweep.
func (db *DB) HasRecentSignal(ctx context.Context, signalType string, entityID int64, days int) (bool, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var count int
	err := db.conn.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM signals
		WHERE signal_type = ?
		  AND affected_entity_id = ?
		  AND is_dismissed = false
		  AND date_detected >= ?`,
		signalType, entityID, cutoffDate(days)).Scan(&count)
	metrics.RecordDBQuery("select", "signals", time.Since(start), err)
	if err != nil {
		return false, fmt.Errorf("failed to check recent signals: %w", err)
	}
	return count > 0, nil
}

// ChannelCPIDay is one channel-day of average CPI, consumed by the
// signal detector and the CPI forecaster.
type ChannelCPIDay struct {
	ChannelID   int64
	ChannelName string
	Date        time.Time
	AvgCPI      float64
}

// GetChannelDailyCPI returns the per-channel daily average CPI series
// over the trailing window, ordered by channel then date.
func (db *DB) GetChannelDailyCPI(ctx context.Context, days int) ([]ChannelCPIDay, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT ch.id, ch.name, p.date, COALESCE(AVG(p.cpi), 0)
		FROM daily_campaign_performance p
		JOIN campaigns c ON p.campaign_id = c.id
		JOIN marketing_channels ch ON c.channel_id = ch.id
		WHERE p.date >= ?
		GROUP BY ch.id, ch.name, p.date
		ORDER BY ch.id, p.date`, cutoffDate(days))
	metrics.RecordDBQuery("select", "daily_campaign_performance", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query channel CPI series: %w", err)
	}
	defer rows.Close()

	series := make([]ChannelCPIDay, 0, days*4)
	for rows.Next() {
		var day ChannelCPIDay
		if err := rows.Scan(&day.ChannelID, &day.ChannelName, &day.Date, &day.AvgCPI); err != nil {
			return nil, fmt.Errorf("failed to scan CPI row: %w", err)
		}
		series = append(series, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating CPI rows: %w", err)
	}
	return series, nil
}
