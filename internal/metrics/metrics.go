package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis Pipeline Metrics
var (
	// AnalysisRequestsTotal tracks ingested analysis records by path (ml/fallback)
	AnalysisRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_requests_total",
			Help: "Total analysis records ingested by classification path (ml/fallback)",
		},
		[]string{"path"},
	)

	// AnalysisRequestDuration tracks end-to-end analysis request latency
	AnalysisRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_request_duration_seconds",
			Help:    "End-to-end analysis request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	// AnalysisErrorsTotal tracks analysis pipeline errors
	AnalysisErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analysis_errors_total",
			Help: "Total analysis pipeline errors",
		},
	)

	// AnalysisCacheTotal tracks analysis cache lookups by result (hit/miss)
	AnalysisCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_cache_total",
			Help: "Total analysis cache lookups by result (hit/miss)",
		},
		[]string{"result"},
	)

	// MLStageDuration tracks per-stage ML processing time (bert/intent)
	MLStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ml_stage_duration_seconds",
			Help:    "ML processing stage duration in seconds by stage (bert/intent)",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"stage"},
	)
)

// Strategy Engine Metrics
var (
	// StrategiesGeneratedTotal tracks generated strategies by type tag
	StrategiesGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strategies_generated_total",
			Help: "Total strategies generated by rule type",
		},
		[]string{"type"},
	)
)

// History Store Metrics
var (
	// HistorySize tracks the current number of persisted analysis records
	HistorySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "history_records_current",
			Help: "Current number of persisted analysis records (bounded at 100)",
		},
	)

	// HistoryCorruptionsTotal tracks corrupted-payload recoveries
	HistoryCorruptionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "history_corruptions_total",
			Help: "Total times the persisted history was corrupted and recovered to empty",
		},
	)
)

// Redis Operations Metrics
var (
	// RedisOpsTotal tracks total Redis operations by operation type and status
	RedisOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_operations_total",
			Help: "Total Redis operations by operation and status",
		},
		[]string{"operation", "status"},
	)

	// RedisOpDuration tracks Redis operation latency in seconds
	RedisOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	// RedisConnectionErrors tracks Redis connection errors
	RedisConnectionErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "redis_connection_errors_total",
			Help: "Total Redis connection errors",
		},
	)

	// CircuitBreakerStateChanges tracks circuit breaker state transitions
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)

	// CircuitBreakerState tracks current circuit breaker state (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)
)

// Health Poller Metrics
var (
	// HealthChecksTotal tracks analyzer health checks by result
	HealthChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "health_checks_total",
			Help: "Total analyzer health checks by result (ok/error/superseded)",
		},
		[]string{"result"},
	)

	// SubsystemUp tracks the last observed state of each monitored subsystem
	SubsystemUp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "analyzer_subsystem_up",
			Help: "Last observed subsystem state (1=active, 0=inactive or error)",
		},
		[]string{"subsystem"},
	)
)

// Ingest Rate Limiting Metrics
var (
	// IngestRejectedTotal tracks rejected ingest requests by reason
	IngestRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_rejected_total",
			Help: "Total ingest requests rejected by reason (rate_limit)",
		},
		[]string{"reason"},
	)
)

// Build Information Metrics
var (
	// BuildInfo is a gauge that always returns 1, with build metadata as labels
	BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "build_info",
			Help: "Build information with version, commit, build_time, and go_version labels (value is always 1)",
		},
		[]string{"version", "commit", "build_time", "go_version"},
	)
)

// HTTP Error Metrics
// Note: http_errors_total{type} is provided by internal/errors package
