package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeStoreDefault(t *testing.T) {
	client := setupTestClient(t)
	store := NewThemeStore(client)
	ctx := context.Background()

	theme, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "light", theme)
}

func TestThemeStoreRoundTrip(t *testing.T) {
	client := setupTestClient(t)
	store := NewThemeStore(client)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "dark"))

	theme, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)
}
