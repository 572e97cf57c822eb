package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commentpulse/commentpulse/internal/models"
)

type captureObserver struct {
	updates []models.AnalysisRecord
	clears  int
}

func (c *captureObserver) HistoryUpdated(record models.AnalysisRecord) {
	c.updates = append(c.updates, record)
}

func (c *captureObserver) HistoryCleared() {
	c.clears++
}

func TestMemoryStore_SaveAssignsIdentity(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.UnixMilli(1_700_000_000_000))
	store := NewMemoryStore(clock)

	saved, err := store.Save(context.Background(), models.AnalysisRecord{InputText: "great car"})
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, int64(1_700_000_000_000), saved.Timestamp)
	assert.Equal(t, "great car", saved.InputText)
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := NewMemoryStore(clock)
	ctx := context.Background()

	for i := range 3 {
		_, err := store.Save(ctx, models.AnalysisRecord{InputText: fmt.Sprintf("comment %d", i)})
		require.NoError(t, err)
		clock.Advance(time.Second)
	}

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "comment 2", records[0].InputText)
	assert.Equal(t, "comment 1", records[1].InputText)
	assert.Equal(t, "comment 0", records[2].InputText)
}

func TestMemoryStore_BoundedAtMaxEntries(t *testing.T) {
	store := NewMemoryStore(clockwork.NewFakeClock())
	ctx := context.Background()

	for i := range MaxEntries + 20 {
		_, err := store.Save(ctx, models.AnalysisRecord{InputText: fmt.Sprintf("comment %d", i)})
		require.NoError(t, err)
	}

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, MaxEntries)
	// Newest survives, oldest 20 are gone.
	assert.Equal(t, fmt.Sprintf("comment %d", MaxEntries+19), records[0].InputText)
	assert.Equal(t, "comment 20", records[MaxEntries-1].InputText)
}

func TestMemoryStore_FindByID(t *testing.T) {
	store := NewMemoryStore(clockwork.NewFakeClock())
	ctx := context.Background()

	saved, err := store.Save(ctx, models.AnalysisRecord{InputText: "needle"})
	require.NoError(t, err)

	found, err := store.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, found)

	_, err = store.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestMemoryStore_Clear(t *testing.T) {
	store := NewMemoryStore(clockwork.NewFakeClock())
	ctx := context.Background()

	_, err := store.Save(ctx, models.AnalysisRecord{InputText: "gone soon"})
	require.NoError(t, err)
	require.NoError(t, store.Clear(ctx))

	records, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestMemoryStore_NotifiesObservers(t *testing.T) {
	store := NewMemoryStore(clockwork.NewFakeClock())
	ctx := context.Background()

	obs := &captureObserver{}
	store.AddObserver(obs)

	saved, err := store.Save(ctx, models.AnalysisRecord{InputText: "observed"})
	require.NoError(t, err)

	require.Len(t, obs.updates, 1)
	assert.Equal(t, saved, obs.updates[0])
}

func TestMemoryStore_NotifiesObserversOnClear(t *testing.T) {
	store := NewMemoryStore(clockwork.NewFakeClock())
	ctx := context.Background()

	obs := &captureObserver{}
	store.AddObserver(obs)

	_, err := store.Save(ctx, models.AnalysisRecord{InputText: "gone soon"})
	require.NoError(t, err)
	require.NoError(t, store.Clear(ctx))

	assert.Equal(t, 1, obs.clears)
}
