package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalworks/gardencore/internal/domain"
	"github.com/petalworks/gardencore/internal/inventory"
	"github.com/petalworks/gardencore/internal/storage"
)

func newInventory(t *testing.T) (inventory.Service, *storage.MemoryStore, *storage.WriteQueue) {
	t.Helper()
	store := storage.NewMemoryStore()
	queue := storage.NewWriteQueue(store)
	t.Cleanup(func() { _ = queue.Shutdown(context.Background()) })

	svc, err := inventory.NewService(context.Background(), store, queue)
	require.NoError(t, err)
	return svc, store, queue
}

func TestAddBloom_CreatesBloomingItemWithDerivedRarity(t *testing.T) {
	svc, _, _ := newInventory(t)

	item, err := svc.AddBloom(context.Background(), "rose", "gold", time.Now())
	require.NoError(t, err)

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, domain.StageBlooming, item.Stage)
	assert.Equal(t, domain.RarityLegendary, item.Rarity())

	stored, ok := svc.Get(item.ID)
	require.True(t, ok)
	assert.Equal(t, item, stored)
}

func TestItems_OrderedByCollectionTime(t *testing.T) {
	svc, _, _ := newInventory(t)
	ctx := context.Background()
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	later, err := svc.AddBloom(ctx, "fern", "green", base.Add(time.Hour))
	require.NoError(t, err)
	earlier, err := svc.AddBloom(ctx, "rose", "blue", base)
	require.NoError(t, err)

	items := svc.Items()
	require.Len(t, items, 2)
	assert.Equal(t, earlier.ID, items[0].ID)
	assert.Equal(t, later.ID, items[1].ID)
}

func TestRemove_MissingItemRejected(t *testing.T) {
	svc, _, _ := newInventory(t)

	err := svc.Remove(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestConsumeBlooms_AllOrNothing(t *testing.T) {
	svc, _, _ := newInventory(t)
	ctx := context.Background()

	a, err := svc.AddBloom(ctx, "rose", "green", time.Now())
	require.NoError(t, err)
	b, err := svc.AddBloom(ctx, "fern", "blue", time.Now())
	require.NoError(t, err)

	// One bad id poisons the whole batch; nothing is consumed
	_, err = svc.ConsumeBlooms(ctx, []string{a.ID, "missing"})
	require.ErrorIs(t, err, domain.ErrItemNotFound)
	assert.Len(t, svc.Items(), 2)

	_, err = svc.ConsumeBlooms(ctx, []string{a.ID, a.ID})
	require.ErrorIs(t, err, domain.ErrInvalidCraftInput)
	assert.Len(t, svc.Items(), 2)

	consumed, err := svc.ConsumeBlooms(ctx, []string{a.ID, b.ID})
	require.NoError(t, err)
	assert.Len(t, consumed, 2)
	assert.Empty(t, svc.Items())
}

func TestBloomedCount(t *testing.T) {
	svc, _, _ := newInventory(t)
	ctx := context.Background()

	assert.Zero(t, svc.BloomedCount())
	_, err := svc.AddBloom(ctx, "rose", "green", time.Now())
	require.NoError(t, err)
	_, err = svc.AddBloom(ctx, "fern", "pink", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 2, svc.BloomedCount())
}

func TestInventory_PersistsAcrossRestart(t *testing.T) {
	svc, store, queue := newInventory(t)
	ctx := context.Background()

	item, err := svc.AddBloom(ctx, "rose", "purple", time.Now())
	require.NoError(t, err)

	flushCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, queue.Flush(flushCtx))

	reloaded, err := inventory.NewService(ctx, store, queue)
	require.NoError(t, err)

	stored, ok := reloaded.Get(item.ID)
	require.True(t, ok)
	assert.Equal(t, domain.RarityEpic, stored.Rarity())
}
