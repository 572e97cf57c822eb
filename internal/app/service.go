package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/commentpulse/commentpulse/internal/analytics"
	apperrors "github.com/commentpulse/commentpulse/internal/errors"
	"github.com/commentpulse/commentpulse/internal/history"
	"github.com/commentpulse/commentpulse/internal/metrics"
	"github.com/commentpulse/commentpulse/internal/models"
	"github.com/commentpulse/commentpulse/internal/monitor"
	"github.com/commentpulse/commentpulse/internal/strategy"
)

// Service orchestrates one ingest cycle: persist the record, evaluate the
// rule set against the fresh history snapshot, and account the call in the
// performance monitor. It is constructed once at startup and shared.
type Service struct {
	store     history.Store
	engine    *strategy.Engine
	summaries *analytics.Cache
	monitor   *monitor.Monitor
	clock     clockwork.Clock
}

func NewService(store history.Store, engine *strategy.Engine, summaries *analytics.Cache, mon *monitor.Monitor, clock clockwork.Clock) *Service {
	return &Service{
		store:     store,
		engine:    engine,
		summaries: summaries,
		monitor:   mon,
		clock:     clock,
	}
}

// Ingest validates and persists an analyzer-produced record, then returns
// the stored record together with the strategies derived from it and the
// updated history.
func (s *Service) Ingest(ctx context.Context, record models.AnalysisRecord) (models.AnalysisRecord, []models.Strategy, error) {
	start := s.clock.Now()

	if err := validateRecord(record); err != nil {
		return models.AnalysisRecord{}, nil, err
	}

	stored, err := s.store.Save(ctx, record)
	if err != nil {
		s.monitor.RecordError()
		return models.AnalysisRecord{}, nil, apperrors.InternalError("failed to persist analysis record", err)
	}

	snapshot, err := s.store.List(ctx)
	if err != nil {
		// The record is saved; degrade to record-only rules instead of
		// failing the whole ingest.
		slog.WarnContext(ctx, "History snapshot unavailable, evaluating record-only rules", "error", err)
		snapshot = []models.AnalysisRecord{stored}
	}

	strategies := s.engine.GenerateStrategies(stored, snapshot)
	for _, st := range strategies {
		metrics.StrategiesGeneratedTotal.WithLabelValues(st.Type).Inc()
	}

	s.monitor.RecordAPICall(s.clock.Since(start), stored.MLEnhanced)
	slog.InfoContext(ctx, "Analysis record ingested",
		"record_id", stored.ID,
		"category", stored.PredictedCategory,
		"strategies", len(strategies),
		"ml_enhanced", stored.MLEnhanced,
	)

	return stored, strategies, nil
}

// History returns the current history snapshot, most-recent-first.
func (s *Service) History(ctx context.Context) ([]models.AnalysisRecord, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, apperrors.InternalError("failed to load history", err)
	}
	return records, nil
}

// Record returns a single record by id.
func (s *Service) Record(ctx context.Context, id string) (models.AnalysisRecord, error) {
	record, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, history.ErrRecordNotFound) {
			return models.AnalysisRecord{}, apperrors.NotFoundError("analysis record not found").WithField("record_id", id)
		}
		return models.AnalysisRecord{}, apperrors.InternalError("failed to load record", err)
	}
	return record, nil
}

// ClearHistory removes all persisted records.
func (s *Service) ClearHistory(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return apperrors.InternalError("failed to clear history", err)
	}
	slog.InfoContext(ctx, "Analysis history cleared")
	return nil
}

// Summary returns the aggregate summary, served from the analytics cache.
func (s *Service) Summary(ctx context.Context) (analytics.Summary, error) {
	summary, err := s.summaries.Summary(ctx)
	if err != nil {
		return analytics.Summary{}, apperrors.InternalError("failed to compute summary", err)
	}
	return summary, nil
}

// MLMetrics returns the ML-subset summary.
func (s *Service) MLMetrics(ctx context.Context) (analytics.MLSummary, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return analytics.MLSummary{}, apperrors.InternalError("failed to load history", err)
	}
	return analytics.MLMetrics(records), nil
}

// Performance returns the current performance counter snapshot.
func (s *Service) Performance() monitor.Stats {
	return s.monitor.Snapshot()
}

func validateRecord(record models.AnalysisRecord) error {
	if record.InputText == "" {
		return apperrors.ValidationError("input_text must not be empty")
	}
	c := record.SentimentAnalysis.Bert.Confidence
	if c < 0 || c > 1 {
		return apperrors.ValidationError("bert confidence must be within [0, 1]").WithField("confidence", c)
	}
	return nil
}
