// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/goccy/go-json"

	"github.com/olivehq/olive/internal/cache"
	"github.com/olivehq/olive/internal/config"
	"github.com/olivehq/olive/internal/database"
	"github.com/olivehq/olive/internal/logging"
	"github.com/olivehq/olive/internal/metrics"
	"github.com/olivehq/olive/internal/models"
)

const (
	// minCPIHistoryDays is the fewest channel-days needed before a
	// spike can be judged against a baseline.
	minCPIHistoryDays = 4

	// signalDedupeDays suppresses repeat signals for the same channel
	// while the previous one is still active.
	signalDedupeDays = 3
)

// SignalDetectorService periodically re-evaluates channel CPI series and
// raises cpi_spike signals, so the signal feed stays current between
// dataset regenerations.
type SignalDetectorService struct {
	db    *database.DB
	cache *cache.Cache
	cfg   *config.SignalsConfig
	name  string
}

// NewSignalDetectorService creates the detector. The cache, when
// non-nil, is cleared after a signal is raised so clients see it
// immediately.
func NewSignalDetectorService(db *database.DB, apiCache *cache.Cache, cfg *config.SignalsConfig) *SignalDetectorService {
	return &SignalDetectorService{
		db:    db,
		cache: apiCache,
		cfg:   cfg,
		name:  "signal-detector",
	}
}

// Serve implements suture.Service. One sweep runs immediately so a
// restart never leaves a full interval without evaluation.
func (s *SignalDetectorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	if err := s.sweep(ctx); err != nil {
		logging.Warn().Err(err).Msg("Signal sweep failed")
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.sweep(ctx); err != nil {
				logging.Warn().Err(err).Msg("Signal sweep failed")
			}
		}
	}
}

// String implements fmt.Stringer; suture uses it in event logs.
func (s *SignalDetectorService) String() string {
	return s.name
}

// sweep compares each channel's latest daily CPI against its trailing
// baseline and raises a warning when it exceeds the spike factor.
func (s *SignalDetectorService) sweep(ctx context.Context) error {
	metrics.SignalEvaluations.Inc()

	series, err := s.db.GetChannelDailyCPI(ctx, s.cfg.LookbackDays)
	if err != nil {
		return fmt.Errorf("failed to load CPI series: %w", err)
	}

	raised := 0
	for _, channel := range groupByChannel(series) {
		spike, ok := detectSpike(channel.days, s.cfg.CPISpikeFactor)
		if !ok {
			continue
		}

		recent, err := s.db.HasRecentSignal(ctx, "cpi_spike", channel.id, signalDedupeDays)
		if err != nil {
			return fmt.Errorf("failed to check recent signals: %w", err)
		}
		if recent {
			continue
		}

		if err := s.raiseSpike(ctx, channel, spike); err != nil {
			return err
		}
		raised++
	}

	if raised > 0 {
		if s.cache != nil {
			s.cache.Clear()
		}
		logging.Info().Int("raised", raised).Msg("Signal sweep raised new signals")
	}
	return nil
}

type channelSeries struct {
	id   int64
	name string
	days []database.ChannelCPIDay
}

// groupByChannel splits the flat series, which arrives ordered by
// channel then date, into per-channel runs.
func groupByChannel(series []database.ChannelCPIDay) []channelSeries {
	var grouped []channelSeries
	for _, day := range series {
		n := len(grouped)
		if n == 0 || grouped[n-1].id != day.ChannelID {
			grouped = append(grouped, channelSeries{id: day.ChannelID, name: day.ChannelName})
			n++
		}
		grouped[n-1].days = append(grouped[n-1].days, day)
	}
	return grouped
}

type spike struct {
	baseline float64
	latest   float64
	ratio    float64
}

// detectSpike compares the most recent day against the mean of the
// preceding days.
func detectSpike(days []database.ChannelCPIDay, factor float64) (spike, bool) {
	if len(days) < minCPIHistoryDays {
		return spike{}, false
	}

	latest := days[len(days)-1].AvgCPI
	sum := 0.0
	for _, day := range days[:len(days)-1] {
		sum += day.AvgCPI
	}
	baseline := sum / float64(len(days)-1)
	if baseline <= 0 || latest < baseline*factor {
		return spike{}, false
	}

	return spike{
		baseline: baseline,
		latest:   latest,
		ratio:    latest / baseline,
	}, true
}

func (s *SignalDetectorService) raiseSpike(ctx context.Context, channel channelSeries, sp spike) error {
	metricsJSON, err := json.Marshal(map[string]float64{
		"cpi_baseline": math.Round(sp.baseline*100) / 100,
		"cpi_latest":   math.Round(sp.latest*100) / 100,
		"ratio":        math.Round(sp.ratio*100) / 100,
	})
	if err != nil {
		return fmt.Errorf("failed to encode spike metrics: %w", err)
	}

	// Priority grows with the spike magnitude, capped below the most
	// severe generator signals.
	priority := math.Min(95, 70+(sp.ratio-1)*25)

	entityID := channel.id
	signal := &models.Signal{
		DateDetected:       time.Now(),
		SignalType:         "cpi_spike",
		Title:              fmt.Sprintf("CPI spike on %s", channel.name),
		Description:        fmt.Sprintf("Daily CPI reached %.2f against a %.2f trailing baseline", sp.latest, sp.baseline),
		Severity:           "warning",
		AffectedEntityType: "channel",
		AffectedEntityID:   &entityID,
		Metrics:            string(metricsJSON),
		RecommendedAction:  "Review recent bid and creative changes on the channel",
		PriorityScore:      math.Round(priority*100) / 100,
		Confidence:         0.8,
	}

	if err := s.db.InsertSignal(ctx, signal); err != nil {
		return fmt.Errorf("failed to insert cpi_spike signal: %w", err)
	}
	metrics.RecordSignalRaised("cpi_spike", "warning")
	logging.Info().Str("channel", channel.name).Float64("ratio", sp.ratio).Msg("CPI spike signal raised")
	return nil
}
