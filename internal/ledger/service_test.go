package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalworks/gardencore/internal/config"
	"github.com/petalworks/gardencore/internal/domain"
	"github.com/petalworks/gardencore/internal/ledger"
	"github.com/petalworks/gardencore/internal/storage"
)

func newLedger(t *testing.T) (ledger.Service, *storage.MemoryStore, *storage.WriteQueue) {
	t.Helper()
	store := storage.NewMemoryStore()
	queue := storage.NewWriteQueue(store)
	t.Cleanup(func() { _ = queue.Shutdown(context.Background()) })

	svc, err := ledger.NewService(context.Background(), store, queue, config.DefaultTuning())
	require.NoError(t, err)
	return svc, store, queue
}

func TestLedger_FreshStateStartsWithBaseEnergy(t *testing.T) {
	svc, _, _ := newLedger(t)
	tuning := config.DefaultTuning()

	assert.Equal(t, 0, svc.Balance(domain.ResourceGems))
	assert.Equal(t, tuning.BaseMaxEnergy, svc.Balance(domain.ResourceEnergy))
	assert.Equal(t, tuning.BaseMaxEnergy, svc.State().MaxEnergy)
}

func TestLedger_CreditDebitRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLedger(t)

	require.NoError(t, svc.Credit(ctx, domain.ResourceGems, 120))
	require.NoError(t, svc.Debit(ctx, domain.ResourceGems, 45))
	assert.Equal(t, 75, svc.Balance(domain.ResourceGems))
}

func TestLedger_DebitInsufficientLeavesBalanceUnchanged(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLedger(t)

	require.NoError(t, svc.Credit(ctx, domain.ResourceGems, 10))

	err := svc.Debit(ctx, domain.ResourceGems, 11)
	require.ErrorIs(t, err, domain.ErrInsufficientResource)
	assert.Equal(t, 10, svc.Balance(domain.ResourceGems))
}

func TestLedger_DebitEmptyBalanceFails(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLedger(t)

	err := svc.Debit(ctx, domain.ResourceGems, 1)
	require.ErrorIs(t, err, domain.ErrInsufficientResource)
	assert.Equal(t, 0, svc.Balance(domain.ResourceGems))
}

func TestLedger_UnknownResourceRejected(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLedger(t)

	err := svc.Credit(ctx, domain.Resource("mana"), 5)
	assert.ErrorIs(t, err, domain.ErrUnknownResource)

	err = svc.Debit(ctx, domain.Resource("mana"), 5)
	assert.ErrorIs(t, err, domain.ErrUnknownResource)
}

func TestLedger_SeedsTrackLifetimeCollected(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLedger(t)

	require.NoError(t, svc.CreditSeeds(ctx, domain.RarityRare, 2))
	require.NoError(t, svc.CreditSeeds(ctx, domain.RarityLegendary, 1))
	require.NoError(t, svc.DebitSeeds(ctx, domain.RarityRare, 1))

	state := svc.State()
	assert.Equal(t, 1, state.SeedsByRarity[domain.RarityRare])
	assert.Equal(t, 1, state.SeedsByRarity[domain.RarityLegendary])
	assert.Equal(t, 2, state.Balances[domain.ResourceSpecialSeeds])
	// Lifetime count never goes down on spend
	assert.Equal(t, 3, state.SeedsCollected)
}

func TestLedger_RecordSpendIsMonotonic(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLedger(t)

	svc.RecordSpend(ctx, 4.99)
	svc.RecordSpend(ctx, -2.00)
	svc.RecordSpend(ctx, 9.99)

	assert.InDelta(t, 14.98, svc.State().TotalSpent, 1e-9)
}

func TestLedger_SetPremiumRaisesEnergyCeiling(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLedger(t)
	tuning := config.DefaultTuning()

	svc.SetPremium(ctx, true)
	assert.True(t, svc.State().Premium)
	assert.Equal(t, tuning.PremiumMaxEnergy, svc.State().MaxEnergy)

	svc.SetPremium(ctx, false)
	assert.Equal(t, tuning.BaseMaxEnergy, svc.State().MaxEnergy)
}

func TestLedger_ApplyRewardCreditsEveryComponent(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLedger(t)
	before := svc.Balance(domain.ResourceEnergy)

	reward := domain.Reward{
		Gems:   40,
		Energy: 5,
		SeedsByRarity: map[domain.Rarity]int{
			domain.RarityEpic: 2,
		},
	}
	require.NoError(t, svc.ApplyReward(ctx, reward))

	state := svc.State()
	assert.Equal(t, 40, state.Balances[domain.ResourceGems])
	assert.Equal(t, before+5, state.Balances[domain.ResourceEnergy])
	assert.Equal(t, 2, state.SeedsByRarity[domain.RarityEpic])
}

func TestLedger_StatePersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	svc, store, queue := newLedger(t)

	require.NoError(t, svc.Credit(ctx, domain.ResourceGems, 77))
	require.NoError(t, svc.CreditSeeds(ctx, domain.RarityRare, 3))
	svc.RecordSpend(ctx, 1.99)

	flushCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, queue.Flush(flushCtx))

	reloaded, err := ledger.NewService(ctx, store, queue, config.DefaultTuning())
	require.NoError(t, err)

	state := reloaded.State()
	assert.Equal(t, 77, state.Balances[domain.ResourceGems])
	assert.Equal(t, 3, state.SeedsByRarity[domain.RarityRare])
	assert.Equal(t, 3, state.SeedsCollected)
	assert.InDelta(t, 1.99, state.TotalSpent, 1e-9)
}
