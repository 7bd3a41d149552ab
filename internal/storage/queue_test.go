package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalworks/gardencore/internal/storage"
)

func TestWriteQueue_FlushAppliesWrites(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	queue := storage.NewWriteQueue(store)
	defer func() { _ = queue.Shutdown(context.Background()) }()

	queue.Enqueue(storage.KeyLedger, []byte("v1"))

	flushCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, queue.Flush(flushCtx))

	value, found, err := store.Get(ctx, storage.KeyLedger)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("v1"), value)
}

func TestWriteQueue_LastWriteWinsPerKey(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	queue := storage.NewWriteQueue(store)
	defer func() { _ = queue.Shutdown(context.Background()) }()

	for i := 0; i < 50; i++ {
		queue.Enqueue(storage.KeyProgression, []byte{byte(i)})
	}
	queue.Enqueue(storage.KeyProgression, []byte("final"))

	flushCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, queue.Flush(flushCtx))

	value, found, err := store.Get(ctx, storage.KeyProgression)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("final"), value)
}

func TestWriteQueue_EnqueueCopiesValue(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	queue := storage.NewWriteQueue(store)
	defer func() { _ = queue.Shutdown(context.Background()) }()

	buf := []byte("before")
	queue.Enqueue(storage.KeyQuests, buf)
	copy(buf, "mutate")

	flushCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, queue.Flush(flushCtx))

	value, _, err := store.Get(ctx, storage.KeyQuests)
	require.NoError(t, err)
	assert.Equal(t, []byte("before"), value)
}

func TestWriteQueue_ShutdownDrainsPending(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	queue := storage.NewWriteQueue(store)

	queue.Enqueue(storage.KeyMilestones, []byte("pending"))

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, queue.Shutdown(shutdownCtx))

	value, found, err := store.Get(ctx, storage.KeyMilestones)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("pending"), value)
}
