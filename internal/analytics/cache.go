package analytics

import (
	"context"
	"sync"

	"github.com/commentpulse/commentpulse/internal/models"
)

// HistorySource is the subset of the history store the cache reads from.
type HistorySource interface {
	List(ctx context.Context) ([]models.AnalysisRecord, error)
}

// Cache memoizes the latest Summary. It implements history.Observer: each
// save invalidates the cached value, and the next Summary call recomputes it
// from a fresh store snapshot.
type Cache struct {
	source HistorySource

	mu      sync.Mutex
	summary Summary
	valid   bool
}

func NewCache(source HistorySource) *Cache {
	return &Cache{source: source}
}

// HistoryUpdated marks the cached summary stale. Recomputation is deferred
// to the next read so a burst of saves costs one aggregation.
func (c *Cache) HistoryUpdated(_ models.AnalysisRecord) {
	c.invalidate()
}

// HistoryCleared marks the cached summary stale after the history is wiped.
func (c *Cache) HistoryCleared() {
	c.invalidate()
}

func (c *Cache) invalidate() {
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()
}

// Summary returns the current summary, recomputing it if a save happened
// since the last call.
func (c *Cache) Summary(ctx context.Context) (Summary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid {
		return c.summary, nil
	}

	records, err := c.source.List(ctx)
	if err != nil {
		return Summary{}, err
	}
	c.summary = Summarize(records)
	c.valid = true
	return c.summary, nil
}
