package purchase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalworks/gardencore/internal/clock"
	"github.com/petalworks/gardencore/internal/config"
	"github.com/petalworks/gardencore/internal/domain"
	"github.com/petalworks/gardencore/internal/event"
	"github.com/petalworks/gardencore/internal/ledger"
	"github.com/petalworks/gardencore/internal/purchase"
	"github.com/petalworks/gardencore/internal/storage"
)

type fixture struct {
	svc    purchase.Service
	ledger ledger.Service
	bus    *event.MemoryBus
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemoryStore()
	queue := storage.NewWriteQueue(store)
	t.Cleanup(func() { _ = queue.Shutdown(context.Background()) })

	cal, err := clock.NewCalendar(clock.FixedClock{T: time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	ledgerSvc, err := ledger.NewService(ctx, store, queue, config.DefaultTuning())
	require.NoError(t, err)
	bus := event.NewMemoryBus()

	return &fixture{
		svc:    purchase.NewService(ledgerSvc, bus, cal),
		ledger: ledgerSvc,
		bus:    bus,
	}
}

func TestOnPurchaseConfirmed_GemPackCreditsAndRecordsSpend(t *testing.T) {
	f := newFixture(t)

	events := 0
	f.bus.Subscribe(event.PurchaseCredited, func(ctx context.Context, e event.Event) error {
		events++
		return nil
	})

	err := f.svc.OnPurchaseConfirmed(context.Background(), domain.PurchaseConfirmation{
		Kind:     domain.PurchaseGemPack,
		Amount:   500,
		PriceUSD: 4.99,
	})
	require.NoError(t, err)

	assert.Equal(t, 500, f.ledger.Balance(domain.ResourceGems))
	assert.InDelta(t, 4.99, f.ledger.State().TotalSpent, 1e-9)
	assert.Equal(t, 1, events)
}

func TestOnPurchaseConfirmed_EnergyPack(t *testing.T) {
	f := newFixture(t)
	before := f.ledger.Balance(domain.ResourceEnergy)

	err := f.svc.OnPurchaseConfirmed(context.Background(), domain.PurchaseConfirmation{
		Kind:   domain.PurchaseEnergyPack,
		Amount: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, before+10, f.ledger.Balance(domain.ResourceEnergy))
}

func TestOnPurchaseConfirmed_SeedPackCreditsRareSeeds(t *testing.T) {
	f := newFixture(t)

	err := f.svc.OnPurchaseConfirmed(context.Background(), domain.PurchaseConfirmation{
		Kind:   domain.PurchaseSeedPack,
		Amount: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, f.ledger.State().SeedsByRarity[domain.RarityRare])
}

func TestOnPurchaseConfirmed_BoosterPackUnlocksPremium(t *testing.T) {
	f := newFixture(t)
	tuning := config.DefaultTuning()

	err := f.svc.OnPurchaseConfirmed(context.Background(), domain.PurchaseConfirmation{
		Kind:     domain.PurchaseBoosterPack,
		Amount:   1,
		PriceUSD: 9.99,
	})
	require.NoError(t, err)

	state := f.ledger.State()
	assert.True(t, state.Premium)
	assert.Equal(t, tuning.PremiumMaxEnergy, state.MaxEnergy)
}

func TestOnPurchaseConfirmed_UnknownKindRejected(t *testing.T) {
	f := newFixture(t)

	err := f.svc.OnPurchaseConfirmed(context.Background(), domain.PurchaseConfirmation{
		Kind:   domain.PurchaseKind("mystery_box"),
		Amount: 1,
	})
	assert.ErrorIs(t, err, domain.ErrUnknownPurchaseKind)
	assert.Zero(t, f.ledger.State().TotalSpent)
}

func TestOnPurchaseConfirmed_NonPositiveAmountRejected(t *testing.T) {
	f := newFixture(t)

	err := f.svc.OnPurchaseConfirmed(context.Background(), domain.PurchaseConfirmation{
		Kind:   domain.PurchaseGemPack,
		Amount: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
