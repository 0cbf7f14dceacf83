// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

package database

import (
	"math"
	"time"
)

// cutoffDate returns the inclusive start date for a trailing window of
// the given number of days, anchored to the current local date.
func cutoffDate(days int) time.Time {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -days)
}

// round2 rounds to two decimal places, the precision the dashboard shows.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round4 rounds to four decimal places, used for rate fields.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// safeDiv divides a by b, returning 0 when the denominator is 0.
func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// isoDate formats a scanned DATE column the way the API exposes dates.
func isoDate(t time.Time) string {
	return t.Format("2006-01-02")
}
