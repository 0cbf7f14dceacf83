// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	DBRowsInserted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_rows_inserted_total",
			Help: "Total number of rows inserted per table",
		},
		[]string{"table"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry)",
		},
		[]string{"cache_type"},
	)

	// Data Generator Metrics
	GeneratorDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "generator_run_duration_seconds",
			Help:    "Duration of synthetic dataset generation in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	GeneratorRowsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generator_rows_written_total",
			Help: "Total number of synthetic rows written per table",
		},
		[]string{"table"},
	)

	GeneratorLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "generator_last_success_timestamp",
			Help: "Unix timestamp of the last successful generator run",
		},
	)

	// Signal Detection Metrics
	SignalEvaluations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "signal_evaluations_total",
			Help: "Total number of signal detection sweeps",
		},
	)

	SignalsRaised = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signals_raised_total",
			Help: "Total number of signals raised by the detector",
		},
		[]string{"signal_type", "severity"},
	)

	SignalsDismissed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "signals_dismissed_total",
			Help: "Total number of signals dismissed via the API",
		},
	)

	// Prediction Metrics
	PredictionsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictions_served_total",
			Help: "Total number of predictions served",
		},
		[]string{"model", "source"}, // source: "checkpoint", "heuristic"
	)

	PredictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prediction_duration_seconds",
			Help:    "Duration of prediction computation in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordGeneratorRun records a completed generator run.
func RecordGeneratorRun(duration time.Duration, err error) {
	GeneratorDuration.Observe(duration.Seconds())
	if err == nil {
		GeneratorLastSuccess.Set(float64(time.Now().Unix()))
	}
}

// RecordSignalRaised records a signal raised by the detector.
func RecordSignalRaised(signalType, severity string) {
	SignalsRaised.WithLabelValues(signalType, severity).Inc()
}

// RecordPrediction records a served prediction and its duration.
func RecordPrediction(model, source string, duration time.Duration) {
	PredictionsServed.WithLabelValues(model, source).Inc()
	PredictionDuration.WithLabelValues(model).Observe(duration.Seconds())
}
