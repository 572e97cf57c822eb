// Package monitor tracks operational counters for the analysis pipeline:
// API latency, ML processing time, cache effectiveness, and errors.
package monitor

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/commentpulse/commentpulse/internal/metrics"
)

// Stats is a point-in-time snapshot of the raw counters and their derived
// rates. Every rate is 0 when its denominator is 0.
type Stats struct {
	APICalls        int64   `json:"apiCalls"`
	MLAnalyses      int64   `json:"mlAnalyses"`
	Errors          int64   `json:"errors"`
	CacheHits       int64   `json:"cacheHits"`
	CacheMisses     int64   `json:"cacheMisses"`
	AvgResponseMs   float64 `json:"avgResponseMs"`
	UptimeSeconds   float64 `json:"uptimeSeconds"`
	ErrorRatePct    float64 `json:"errorRatePct"`
	MLUsageRatePct  float64 `json:"mlUsageRatePct"`
	AvgBertMs       float64 `json:"avgBertMs"`
	AvgIntentMs     float64 `json:"avgIntentMs"`
	CacheHitRatePct float64 `json:"cacheHitRatePct"`
}

// Monitor is a process-lifetime counter set. One instance is constructed at
// startup and passed to whatever records into it; all methods are safe for
// concurrent use.
type Monitor struct {
	clock clockwork.Clock

	mu              sync.Mutex
	startTime       time.Time
	apiCalls        int64
	mlAnalyses      int64
	errors          int64
	cacheHits       int64
	cacheMisses     int64
	responseTimeSum time.Duration
	bertTimeSum     time.Duration
	bertSamples     int64
	intentTimeSum   time.Duration
	intentSamples   int64
}

func New(clock clockwork.Clock) *Monitor {
	return &Monitor{
		clock:     clock,
		startTime: clock.Now(),
	}
}

// RecordAPICall counts one analysis API call and its response time. The ML
// analysis counter moves only when the call took the ML-enhanced path.
func (m *Monitor) RecordAPICall(responseTime time.Duration, mlEnhanced bool) {
	m.mu.Lock()
	m.apiCalls++
	m.responseTimeSum += responseTime
	if mlEnhanced {
		m.mlAnalyses++
	}
	m.mu.Unlock()

	metrics.AnalysisRequestsTotal.WithLabelValues(mlLabel(mlEnhanced)).Inc()
	metrics.AnalysisRequestDuration.Observe(responseTime.Seconds())
}

// RecordMLProcessing accumulates per-stage ML timings.
func (m *Monitor) RecordMLProcessing(bertTime, intentTime time.Duration) {
	m.mu.Lock()
	m.bertTimeSum += bertTime
	m.bertSamples++
	m.intentTimeSum += intentTime
	m.intentSamples++
	m.mu.Unlock()

	metrics.MLStageDuration.WithLabelValues("bert").Observe(bertTime.Seconds())
	metrics.MLStageDuration.WithLabelValues("intent").Observe(intentTime.Seconds())
}

func (m *Monitor) RecordCacheHit() {
	m.mu.Lock()
	m.cacheHits++
	m.mu.Unlock()
	metrics.AnalysisCacheTotal.WithLabelValues("hit").Inc()
}

func (m *Monitor) RecordCacheMiss() {
	m.mu.Lock()
	m.cacheMisses++
	m.mu.Unlock()
	metrics.AnalysisCacheTotal.WithLabelValues("miss").Inc()
}

func (m *Monitor) RecordError() {
	m.mu.Lock()
	m.errors++
	m.mu.Unlock()
	metrics.AnalysisErrorsTotal.Inc()
}

// Snapshot returns the current counters with derived rates.
func (m *Monitor) Snapshot() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Stats{
		APICalls:      m.apiCalls,
		MLAnalyses:    m.mlAnalyses,
		Errors:        m.errors,
		CacheHits:     m.cacheHits,
		CacheMisses:   m.cacheMisses,
		UptimeSeconds: m.clock.Since(m.startTime).Seconds(),
	}

	if m.apiCalls > 0 {
		s.AvgResponseMs = float64(m.responseTimeSum.Milliseconds()) / float64(m.apiCalls)
		s.ErrorRatePct = float64(m.errors) / float64(m.apiCalls) * 100
		s.MLUsageRatePct = float64(m.mlAnalyses) / float64(m.apiCalls) * 100
	}
	if m.bertSamples > 0 {
		s.AvgBertMs = float64(m.bertTimeSum.Milliseconds()) / float64(m.bertSamples)
	}
	if m.intentSamples > 0 {
		s.AvgIntentMs = float64(m.intentTimeSum.Milliseconds()) / float64(m.intentSamples)
	}
	if total := m.cacheHits + m.cacheMisses; total > 0 {
		s.CacheHitRatePct = float64(m.cacheHits) / float64(total) * 100
	}

	return s
}

func mlLabel(mlEnhanced bool) string {
	if mlEnhanced {
		return "ml"
	}
	return "fallback"
}
