package server

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// IngestRateLimiter limits the rate of ingest requests per source IP.
// Uses a token bucket per IP via golang.org/x/time/rate.
type IngestRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*rateLimiterEntry
	rate      rate.Limit
	burst     int
	cleanupAt time.Time
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const (
	limiterCleanupEvery = 5 * time.Minute
	limiterIdleExpiry   = 10 * time.Minute
)

// NewIngestRateLimiter creates a limiter with the given sustained
// requests-per-second and burst size, applied per source IP.
func NewIngestRateLimiter(requestsPerSecond float64, burst int) *IngestRateLimiter {
	return &IngestRateLimiter{
		limiters:  make(map[string]*rateLimiterEntry),
		rate:      rate.Limit(requestsPerSecond),
		burst:     burst,
		cleanupAt: time.Now().Add(limiterCleanupEvery),
	}
}

// Allow reports whether a request from the given IP may proceed.
func (l *IngestRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if time.Now().After(l.cleanupAt) {
		l.cleanup()
		l.cleanupAt = time.Now().Add(limiterCleanupEvery)
	}

	entry, exists := l.limiters[ip]
	if !exists {
		entry = &rateLimiterEntry{
			limiter: rate.NewLimiter(l.rate, l.burst),
		}
		l.limiters[ip] = entry
	}

	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

// cleanup removes limiters idle past expiry. Must be called with mu held.
func (l *IngestRateLimiter) cleanup() {
	cutoff := time.Now().Add(-limiterIdleExpiry)
	for ip, entry := range l.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(l.limiters, ip)
		}
	}
}

// ActiveLimiters returns the number of tracked IPs.
func (l *IngestRateLimiter) ActiveLimiters() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}
