package history

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/commentpulse/commentpulse/internal/metrics"
	"github.com/commentpulse/commentpulse/internal/models"
)

var (
	testRedisURL string
	redContainer testcontainers.Container
)

func TestMain(m *testing.M) {
	// Parse flags to check for -short
	flag.Parse()

	// Skip container setup if running in short mode
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	var err error
	redContainer, err = tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start redis container: %v\n", err)
		os.Exit(1)
	}

	endpoint, err := redContainer.Endpoint(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get redis endpoint: %v\n", err)
		os.Exit(1)
	}
	testRedisURL = "redis://" + endpoint

	defer func() {
		if err := redContainer.Terminate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "failed to terminate redis container: %v\n", err)
		}
	}()
	os.Exit(m.Run())
}

func setupRedisStore(t *testing.T) (*RedisStore, *goredis.Client) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	opts, err := goredis.ParseURL(testRedisURL)
	require.NoError(t, err)
	client := goredis.NewClient(opts)

	require.NoError(t, client.FlushAll(ctx).Err())
	t.Cleanup(func() {
		_ = client.Close()
	})

	return NewRedisStore(client, clockwork.NewRealClock()), client
}

func TestRedisStore_SaveAndList(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	first, err := store.Save(ctx, models.AnalysisRecord{InputText: "first"})
	require.NoError(t, err)
	second, err := store.Save(ctx, models.AnalysisRecord{InputText: "second"})
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "second", records[0].InputText)
	assert.Equal(t, "first", records[1].InputText)
}

func TestRedisStore_ListEmpty(t *testing.T) {
	store, _ := setupRedisStore(t)

	records, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRedisStore_BoundedAtMaxEntries(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	for i := range MaxEntries + 5 {
		_, err := store.Save(ctx, models.AnalysisRecord{InputText: fmt.Sprintf("comment %d", i)})
		require.NoError(t, err)
	}

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, MaxEntries)
	assert.Equal(t, fmt.Sprintf("comment %d", MaxEntries+4), records[0].InputText)
}

func TestRedisStore_FindByID(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	saved, err := store.Save(ctx, models.AnalysisRecord{InputText: "needle"})
	require.NoError(t, err)

	found, err := store.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.InputText, found.InputText)

	_, err = store.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestRedisStore_Clear(t *testing.T) {
	store, client := setupRedisStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, models.AnalysisRecord{InputText: "gone soon"})
	require.NoError(t, err)
	require.NoError(t, store.Clear(ctx))

	records, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	exists, err := client.Exists(ctx, "commentpulse:history").Result()
	require.NoError(t, err)
	assert.Zero(t, exists)

	assert.Zero(t, testutil.ToFloat64(metrics.HistorySize))
}

func TestRedisStore_RecoversFromCorruptedPayload(t *testing.T) {
	store, client := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "commentpulse:history", "{not json", 0).Err())

	records, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	// Next save starts a fresh history instead of failing.
	saved, err := store.Save(ctx, models.AnalysisRecord{InputText: "fresh start"})
	require.NoError(t, err)

	records, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, saved.ID, records[0].ID)
}

func TestRedisStore_NotifiesObservers(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	obs := &captureObserver{}
	store.AddObserver(obs)

	saved, err := store.Save(ctx, models.AnalysisRecord{InputText: "observed"})
	require.NoError(t, err)

	require.Len(t, obs.updates, 1)
	assert.Equal(t, saved.ID, obs.updates[0].ID)
}

func TestRedisStore_NotifiesObserversOnClear(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	obs := &captureObserver{}
	store.AddObserver(obs)

	_, err := store.Save(ctx, models.AnalysisRecord{InputText: "gone soon"})
	require.NoError(t, err)
	require.NoError(t, store.Clear(ctx))

	assert.Equal(t, 1, obs.clears)
}

// lockedObserver mimics a consumer that guards its own state with a mutex and
// reads back through the store, the shape of the summary cache.
type lockedObserver struct {
	store *RedisStore

	mu    sync.Mutex
	stale bool
}

func (o *lockedObserver) HistoryUpdated(_ models.AnalysisRecord) {
	o.mu.Lock()
	o.stale = true
	o.mu.Unlock()
}

func (o *lockedObserver) HistoryCleared() {
	o.mu.Lock()
	o.stale = true
	o.mu.Unlock()
}

func (o *lockedObserver) refresh(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, err := o.store.List(ctx)
	o.stale = false
	return err
}

func TestRedisStore_ConcurrentSaveAndObserverRead(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	obs := &lockedObserver{store: store}
	store.AddObserver(obs)

	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := store.Save(ctx, models.AnalysisRecord{InputText: "concurrent"})
				assert.NoError(t, err)
				assert.NoError(t, obs.refresh(ctx))
			}()
		}
		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("concurrent saves and observer reads deadlocked")
	}
}
