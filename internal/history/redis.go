package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/commentpulse/commentpulse/internal/metrics"
	"github.com/commentpulse/commentpulse/internal/models"
)

const historyKey = "commentpulse:history"

// RedisStore persists the history as a single JSON-encoded array under one
// key, newest first. Save serializes writers behind a mutex so the
// read-modify-truncate-write cycle stays atomic within this instance.
type RedisStore struct {
	rdb   *goredis.Client
	clock clockwork.Clock

	mu        sync.Mutex
	observers []Observer
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(rdb *goredis.Client, clock clockwork.Clock) *RedisStore {
	return &RedisStore{rdb: rdb, clock: clock}
}

func (s *RedisStore) Save(ctx context.Context, record models.AnalysisRecord) (models.AnalysisRecord, error) {
	s.mu.Lock()

	records, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return models.AnalysisRecord{}, err
	}

	record.ID = uuid.NewString()
	record.Timestamp = s.clock.Now().UnixMilli()

	records = append([]models.AnalysisRecord{record}, records...)
	if len(records) > MaxEntries {
		records = records[:MaxEntries]
	}

	payload, err := json.Marshal(records)
	if err != nil {
		s.mu.Unlock()
		return models.AnalysisRecord{}, fmt.Errorf("failed to encode history: %w", err)
	}
	if err := s.rdb.Set(ctx, historyKey, payload, 0).Err(); err != nil {
		s.mu.Unlock()
		return models.AnalysisRecord{}, fmt.Errorf("failed to persist history: %w", err)
	}
	metrics.HistorySize.Set(float64(len(records)))
	observers := s.observers
	s.mu.Unlock()

	// Notify outside the lock: observers may read back through the store.
	for _, obs := range observers {
		obs.HistoryUpdated(record)
	}
	return record, nil
}

func (s *RedisStore) List(ctx context.Context) ([]models.AnalysisRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *RedisStore) FindByID(ctx context.Context, id string) (models.AnalysisRecord, error) {
	records, err := s.List(ctx)
	if err != nil {
		return models.AnalysisRecord{}, err
	}
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
	}
	return models.AnalysisRecord{}, ErrRecordNotFound
}

func (s *RedisStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	if err := s.rdb.Del(ctx, historyKey).Err(); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to clear history: %w", err)
	}
	metrics.HistorySize.Set(0)
	observers := s.observers
	s.mu.Unlock()

	for _, obs := range observers {
		obs.HistoryCleared()
	}
	return nil
}

func (s *RedisStore) AddObserver(obs Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, obs)
}

// load reads and decodes the persisted sequence. A missing key yields an
// empty history; so does undecodable data, which is logged and dropped
// rather than surfaced as an error to the caller.
func (s *RedisStore) load(ctx context.Context) ([]models.AnalysisRecord, error) {
	payload, err := s.rdb.Get(ctx, historyKey).Bytes()
	if errors.Is(err, goredis.Nil) {
		return []models.AnalysisRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var records []models.AnalysisRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		slog.Warn("Persisted history is corrupted, recovering with empty history", "error", err)
		metrics.HistoryCorruptionsTotal.Inc()
		return []models.AnalysisRecord{}, nil
	}
	return records, nil
}
