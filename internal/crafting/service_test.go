package crafting_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalworks/gardencore/internal/clock"
	"github.com/petalworks/gardencore/internal/config"
	"github.com/petalworks/gardencore/internal/crafting"
	"github.com/petalworks/gardencore/internal/domain"
	"github.com/petalworks/gardencore/internal/event"
	"github.com/petalworks/gardencore/internal/inventory"
	"github.com/petalworks/gardencore/internal/ledger"
	"github.com/petalworks/gardencore/internal/storage"
)

type fixture struct {
	crafting  crafting.Service
	inventory inventory.Service
	ledger    ledger.Service
	roll      *forcedRoll
}

// forcedRoll returns a preset draw so outcomes are deterministic
type forcedRoll struct {
	value float64
}

func (f *forcedRoll) roll() float64 {
	return f.value
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemoryStore()
	queue := storage.NewWriteQueue(store)
	t.Cleanup(func() { _ = queue.Shutdown(context.Background()) })

	cal, err := clock.NewCalendar(clock.FixedClock{T: time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	tuning := config.DefaultTuning()
	ledgerSvc, err := ledger.NewService(ctx, store, queue, tuning)
	require.NoError(t, err)
	inventorySvc, err := inventory.NewService(ctx, store, queue)
	require.NoError(t, err)

	roll := &forcedRoll{}
	svc := crafting.NewService(inventorySvc, ledgerSvc, event.NewMemoryBus(), cal, tuning, roll.roll)
	return &fixture{crafting: svc, inventory: inventorySvc, ledger: ledgerSvc, roll: roll}
}

// addBlooms creates blooming items with the given color tags and returns ids
func (f *fixture) addBlooms(t *testing.T, colorTags ...string) []string {
	t.Helper()
	ids := make([]string, 0, len(colorTags))
	for _, tag := range colorTags {
		item, err := f.inventory.AddBloom(context.Background(), "rose", tag, time.Now())
		require.NoError(t, err)
		ids = append(ids, item.ID)
	}
	return ids
}

func TestCraft_DominantLegendaryCountThree(t *testing.T) {
	f := newFixture(t)
	ids := f.addBlooms(t, "gold", "gold", "gold", "green", "green")
	f.roll.value = 40 // inside the 50% legendary band of the 3-4 count row

	result, err := f.crafting.Craft(context.Background(), ids)
	require.NoError(t, err)

	assert.Equal(t, domain.RarityLegendary, result.Dominant)
	assert.Equal(t, 3, result.DominantCount)
	assert.Equal(t, domain.RarityLegendary, result.ResultRarity)
}

func TestCraft_RollWalksOutcomeBands(t *testing.T) {
	tests := []struct {
		name string
		roll float64
		want domain.Rarity
	}{
		{"low roll lands in first band", 10, domain.RarityLegendary},
		{"boundary of first band starts second", 50, domain.RarityEpic},
		{"mid second band", 70, domain.RarityEpic},
		{"tail band", 90, domain.RarityRare},
		{"top of range stays in last band", 99.99, domain.RarityRare},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ids := f.addBlooms(t, "gold", "gold", "gold", "green", "green")
			f.roll.value = tt.roll

			result, err := f.crafting.Craft(context.Background(), ids)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.ResultRarity)
		})
	}
}

func TestCraft_PluralityTieBreaksTowardHigherRarity(t *testing.T) {
	f := newFixture(t)
	// Two rare, two common, one epic: rare and common tie at 2
	ids := f.addBlooms(t, "blue", "blue", "green", "green", "purple")
	f.roll.value = 10

	result, err := f.crafting.Craft(context.Background(), ids)
	require.NoError(t, err)

	assert.Equal(t, domain.RarityRare, result.Dominant)
	assert.Equal(t, 2, result.DominantCount)
}

func TestCraft_ConsumesItemsAndCreditsOneSeed(t *testing.T) {
	f := newFixture(t)
	ids := f.addBlooms(t, "green", "green", "green", "green", "green")
	f.roll.value = 10 // common band

	_, err := f.crafting.Craft(context.Background(), ids)
	require.NoError(t, err)

	assert.Empty(t, f.inventory.Items())
	state := f.ledger.State()
	assert.Equal(t, 1, state.SeedsByRarity[domain.RarityCommon])
	assert.Equal(t, 1, state.SeedsCollected)
}

func TestCraft_WrongCountRejectedWithoutMutation(t *testing.T) {
	f := newFixture(t)
	ids := f.addBlooms(t, "green", "green", "green")

	_, err := f.crafting.Craft(context.Background(), ids)
	require.ErrorIs(t, err, domain.ErrInvalidCraftInput)

	assert.Len(t, f.inventory.Items(), 3)
	assert.Equal(t, 0, f.ledger.State().SeedsCollected)
}

func TestCraft_MissingItemRejectedWithoutMutation(t *testing.T) {
	f := newFixture(t)
	ids := f.addBlooms(t, "green", "green", "green", "green")
	ids = append(ids, "no-such-item")

	_, err := f.crafting.Craft(context.Background(), ids)
	require.ErrorIs(t, err, domain.ErrItemNotFound)

	assert.Len(t, f.inventory.Items(), 4)
	assert.Equal(t, 0, f.ledger.State().SeedsCollected)
}

func TestCraft_DuplicateItemRejected(t *testing.T) {
	f := newFixture(t)
	ids := f.addBlooms(t, "green", "green", "green", "green")
	ids = append(ids, ids[0])

	_, err := f.crafting.Craft(context.Background(), ids)
	require.ErrorIs(t, err, domain.ErrInvalidCraftInput)
	assert.Len(t, f.inventory.Items(), 4)
}
