package history

import (
	"context"
	"errors"

	"github.com/commentpulse/commentpulse/internal/models"
)

// MaxEntries bounds the history. Saving beyond it evicts the oldest record.
const MaxEntries = 100

// ErrRecordNotFound is returned by FindByID when no record has the given id.
var ErrRecordNotFound = errors.New("analysis record not found")

// Observer is notified after each successful mutation. Notifications are
// delivered outside the store's internal lock, so an observer may hold its
// own lock or read back through the store without deadlocking.
type Observer interface {
	HistoryUpdated(record models.AnalysisRecord)
	HistoryCleared()
}

// Store abstracts history persistence. The Redis implementation is the
// durable production store; the in-memory implementation backs tests and
// no-Redis development mode.
type Store interface {
	// Save assigns id and timestamp, prepends the record, truncates the
	// sequence to MaxEntries, persists it, and notifies observers. The
	// read-modify-truncate-write is a single critical section.
	Save(ctx context.Context, record models.AnalysisRecord) (models.AnalysisRecord, error)

	// List returns all records, most-recent-first. An unset or corrupted
	// persisted sequence yields an empty slice, never an error.
	List(ctx context.Context) ([]models.AnalysisRecord, error)

	// FindByID returns the record with the given id or ErrRecordNotFound.
	FindByID(ctx context.Context, id string) (models.AnalysisRecord, error)

	// Clear removes all persisted records and notifies observers.
	Clear(ctx context.Context) error

	// AddObserver registers an observer for mutation notifications. Not safe
	// to call concurrently with Save; register everything during wiring.
	AddObserver(obs Observer)
}
