// Package health polls the external analyzer's health endpoint and maintains
// the latest status of its monitored subsystems.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/commentpulse/commentpulse/internal/metrics"
)

// Monitored subsystems.
const (
	SubsystemIntentClassifier = "intentClassifier"
	SubsystemSentimentModel   = "sentimentModel"
	SubsystemCache            = "cache"
)

// Subsystem states.
const (
	StateActive   = "active"
	StateInactive = "inactive"
	StateError    = "error"
)

const (
	defaultRequestTimeout = 5 * time.Second
	defaultInitialDelay   = 2 * time.Second
	defaultInterval       = 30 * time.Second
)

// StatusMap maps each monitored subsystem to its last observed state.
type StatusMap map[string]string

// healthResponse is the analyzer's /health payload.
type healthResponse struct {
	IntentClassifier bool `json:"intent_classifier"`
	BertModel        bool `json:"bert_model"`
}

// Poller periodically checks {baseURL}/health. A new cycle cancels any check
// still in flight, so a hung request never blocks fresher results.
type Poller struct {
	baseURL      string
	client       *http.Client
	clock        clockwork.Clock
	interval     time.Duration
	initialDelay time.Duration

	mu             sync.Mutex
	status         StatusMap
	cancelInFlight context.CancelFunc
	generation     uint64
}

// Option configures a Poller.
type Option func(*Poller)

func WithInterval(d time.Duration) Option {
	return func(p *Poller) { p.interval = d }
}

func WithInitialDelay(d time.Duration) Option {
	return func(p *Poller) { p.initialDelay = d }
}

func WithHTTPClient(c *http.Client) Option {
	return func(p *Poller) { p.client = c }
}

// NewPoller creates a poller against the analyzer at baseURL. An empty
// baseURL disables polling entirely: Run returns immediately and Status
// stays empty.
func NewPoller(baseURL string, clock clockwork.Clock, opts ...Option) *Poller {
	p := &Poller{
		baseURL:      baseURL,
		client:       &http.Client{Timeout: defaultRequestTimeout},
		clock:        clock,
		interval:     defaultInterval,
		initialDelay: defaultInitialDelay,
		status:       StatusMap{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run polls once after the initial delay and then on the fixed interval,
// blocking until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	if p.baseURL == "" {
		slog.Info("Analyzer base URL not configured, health polling disabled")
		return
	}

	select {
	case <-p.clock.After(p.initialDelay):
	case <-ctx.Done():
		return
	}
	p.poll(ctx)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			p.poll(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Status returns a copy of the latest subsystem states. Empty until the
// first completed check.
func (p *Poller) Status() StatusMap {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(StatusMap, len(p.status))
	for k, v := range p.status {
		out[k] = v
	}
	return out
}

// CheckStatus performs one bounded health request. It never returns an
// error: any network, timeout, or decode failure degrades every subsystem
// to the uniform error state.
func (p *Poller) CheckStatus(ctx context.Context) StatusMap {
	resp, err := p.fetch(ctx)
	if err != nil {
		slog.Warn("Analyzer health check failed", "error", err)
		metrics.HealthChecksTotal.WithLabelValues("error").Inc()
		return StatusMap{
			SubsystemIntentClassifier: StateError,
			SubsystemSentimentModel:   StateError,
			SubsystemCache:            StateError,
		}
	}

	metrics.HealthChecksTotal.WithLabelValues("ok").Inc()
	status := StatusMap{
		SubsystemIntentClassifier: activeOrInactive(resp.IntentClassifier),
		SubsystemSentimentModel:   activeOrInactive(resp.BertModel),
		// A cache subsystem state is not reported by the endpoint; any
		// successful response means the analyzer process (and its cache)
		// is reachable. Coarse, but matches the upstream contract.
		SubsystemCache: StateActive,
	}
	return status
}

func (p *Poller) poll(ctx context.Context) {
	checkCtx, cancel := context.WithCancel(ctx)

	p.mu.Lock()
	if p.cancelInFlight != nil {
		// Supersede the outstanding check; its result would be stale.
		p.cancelInFlight()
		metrics.HealthChecksTotal.WithLabelValues("superseded").Inc()
	}
	p.cancelInFlight = cancel
	p.generation++
	gen := p.generation
	p.mu.Unlock()

	go func() {
		defer cancel()
		status := p.CheckStatus(checkCtx)
		if checkCtx.Err() != nil {
			return // superseded or shutting down, discard
		}

		p.mu.Lock()
		p.status = status
		if p.generation == gen {
			p.cancelInFlight = nil
		}
		p.mu.Unlock()

		for subsystem, state := range status {
			metrics.SubsystemUp.WithLabelValues(subsystem).Set(upValue(state))
		}
	}()
}

func (p *Poller) fetch(ctx context.Context) (*healthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("health endpoint returned status %d", resp.StatusCode)
	}

	var payload healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode health response: %w", err)
	}
	return &payload, nil
}

func activeOrInactive(up bool) string {
	if up {
		return StateActive
	}
	return StateInactive
}

func upValue(state string) float64 {
	if state == StateActive {
		return 1
	}
	return 0
}
