package history

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/commentpulse/commentpulse/internal/models"
)

// MemoryStore keeps the history in process memory. Used in tests and when
// running without Redis.
type MemoryStore struct {
	clock clockwork.Clock

	mu        sync.Mutex
	records   []models.AnalysisRecord
	observers []Observer
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(clock clockwork.Clock) *MemoryStore {
	return &MemoryStore{clock: clock}
}

func (s *MemoryStore) Save(_ context.Context, record models.AnalysisRecord) (models.AnalysisRecord, error) {
	s.mu.Lock()
	record.ID = uuid.NewString()
	record.Timestamp = s.clock.Now().UnixMilli()

	s.records = append([]models.AnalysisRecord{record}, s.records...)
	if len(s.records) > MaxEntries {
		s.records = s.records[:MaxEntries]
	}
	observers := s.observers
	s.mu.Unlock()

	for _, obs := range observers {
		obs.HistoryUpdated(record)
	}
	return record, nil
}

func (s *MemoryStore) List(_ context.Context) ([]models.AnalysisRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AnalysisRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (models.AnalysisRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return models.AnalysisRecord{}, ErrRecordNotFound
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.records = nil
	observers := s.observers
	s.mu.Unlock()

	for _, obs := range observers {
		obs.HistoryCleared()
	}
	return nil
}

func (s *MemoryStore) AddObserver(obs Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, obs)
}
