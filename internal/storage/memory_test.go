package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalworks/gardencore/internal/storage"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	_, found, err := store.Get(ctx, storage.KeyLedger)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, storage.KeyLedger, []byte(`{"gems":5}`)))

	value, found, err := store.Get(ctx, storage.KeyLedger)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`{"gems":5}`), value)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, storage.KeyInventory, []byte("abc")))

	value, _, err := store.Get(ctx, storage.KeyInventory)
	require.NoError(t, err)
	value[0] = 'z'

	again, _, err := store.Get(ctx, storage.KeyInventory)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestMemoryStore_ClearRemovesEverything(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	for _, key := range storage.AllKeys() {
		require.NoError(t, store.Set(ctx, key, []byte("x")))
	}

	require.NoError(t, store.Clear(ctx))

	for _, key := range storage.AllKeys() {
		_, found, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, found, "key %s should be gone", key)
	}
}
