package goals_test

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalworks/gardencore/internal/clock"
	"github.com/petalworks/gardencore/internal/config"
	"github.com/petalworks/gardencore/internal/domain"
	"github.com/petalworks/gardencore/internal/event"
	"github.com/petalworks/gardencore/internal/goals"
	"github.com/petalworks/gardencore/internal/ledger"
	"github.com/petalworks/gardencore/internal/storage"
)

// steppingClock is a test clock that can be advanced between calls
type steppingClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *steppingClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type fixture struct {
	store  *storage.MemoryStore
	queue  *storage.WriteQueue
	ledger ledger.Service
	bus    *event.MemoryBus
	clk    *steppingClock
	cal    *clock.Calendar
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemoryStore()
	queue := storage.NewWriteQueue(store)
	t.Cleanup(func() { _ = queue.Shutdown(context.Background()) })

	clk := &steppingClock{t: time.Date(2026, 6, 10, 15, 0, 0, 0, time.UTC)}
	cal, err := clock.NewCalendar(clk)
	require.NoError(t, err)

	ledgerSvc, err := ledger.NewService(ctx, store, queue, config.DefaultTuning())
	require.NoError(t, err)

	return &fixture{
		store:  store,
		queue:  queue,
		ledger: ledgerSvc,
		bus:    event.NewMemoryBus(),
		clk:    clk,
		cal:    cal,
	}
}

func (f *fixture) newAchievements(t *testing.T) *goals.Engine {
	t.Helper()
	engine, err := goals.NewEngine(context.Background(), goals.KindAchievement,
		storage.KeyAchievements, event.AchievementUnlock, goals.AchievementTemplates(),
		f.store, f.queue, f.ledger, f.bus, f.cal)
	require.NoError(t, err)
	return engine
}

func entryByID(t *testing.T, entries []domain.GoalEntry, id string) domain.GoalEntry {
	t.Helper()
	for _, entry := range entries {
		if entry.ID == id {
			return entry
		}
	}
	t.Fatalf("entry %s not found", id)
	return domain.GoalEntry{}
}

func TestEngine_ProgressClampsAtTarget(t *testing.T) {
	f := newFixture(t)
	engine := f.newAchievements(t)
	ctx := context.Background()

	entry, err := engine.Progress(ctx, goals.AchPlant10, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, entry.CurrentValue)
	assert.False(t, entry.Unlocked)

	// 7 + 5 overshoots; progress clamps at the target
	entry, err = engine.Progress(ctx, goals.AchPlant10, 5)
	require.NoError(t, err)
	assert.Equal(t, 10, entry.CurrentValue)
	assert.True(t, entry.Unlocked)
	require.NotNil(t, entry.UnlockedAt)
}

func TestEngine_RewardAppliedExactlyOnce(t *testing.T) {
	f := newFixture(t)
	engine := f.newAchievements(t)
	ctx := context.Background()

	unlockEvents := 0
	f.bus.Subscribe(event.AchievementUnlock, func(ctx context.Context, e event.Event) error {
		unlockEvents++
		return nil
	})

	_, err := engine.Progress(ctx, goals.AchPlant10, 10)
	require.NoError(t, err)
	gemsAfterUnlock := f.ledger.Balance(domain.ResourceGems)
	assert.Equal(t, 50, gemsAfterUnlock)

	// Further progress on an unlocked entry is a no-op
	entry, err := engine.Progress(ctx, goals.AchPlant10, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, entry.CurrentValue)
	assert.Equal(t, gemsAfterUnlock, f.ledger.Balance(domain.ResourceGems))
	assert.Equal(t, 1, unlockEvents)
}

func TestEngine_UnknownEntryRejected(t *testing.T) {
	f := newFixture(t)
	engine := f.newAchievements(t)

	_, err := engine.Progress(context.Background(), "no_such_goal", 1)
	assert.ErrorIs(t, err, domain.ErrUnknownEntry)
}

func TestEngine_RaiseLiftsButNeverLowers(t *testing.T) {
	f := newFixture(t)
	engine := f.newAchievements(t)
	ctx := context.Background()

	entry, err := engine.Raise(ctx, goals.AchStreak7, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, entry.CurrentValue)

	// A lower observation leaves the recorded position alone
	entry, err = engine.Raise(ctx, goals.AchStreak7, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, entry.CurrentValue)

	entry, err = engine.Raise(ctx, goals.AchStreak7, 7)
	require.NoError(t, err)
	assert.True(t, entry.Unlocked)
}

func TestEngine_GroupProgressSharesCounterAcrossTiers(t *testing.T) {
	f := newFixture(t)
	engine, err := goals.NewEngine(context.Background(), goals.KindMilestone,
		storage.KeyMilestones, event.MilestoneReached, goals.MilestoneTemplates(),
		f.store, f.queue, f.ledger, f.bus, f.cal)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, engine.ProgressGroup(ctx, goals.GroupSeedsCollected, 12))

	entries := engine.Entries()
	tier1 := entryByID(t, entries, "seeds_collected_1")
	tier2 := entryByID(t, entries, "seeds_collected_2")

	assert.True(t, tier1.Unlocked)
	assert.False(t, tier2.Unlocked)
	assert.Equal(t, 12, tier2.CurrentValue)
}

func TestEngine_ProgressPersistsAcrossRestart(t *testing.T) {
	f := newFixture(t)
	engine := f.newAchievements(t)
	ctx := context.Background()

	_, err := engine.Progress(ctx, goals.AchHarvest25, 9)
	require.NoError(t, err)

	flushCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, f.queue.Flush(flushCtx))

	reloaded := f.newAchievements(t)
	entry := entryByID(t, reloaded.Entries(), goals.AchHarvest25)
	assert.Equal(t, 9, entry.CurrentValue)
}

func TestQuestEngine_DrawsConfiguredActiveCount(t *testing.T) {
	f := newFixture(t)
	engine := newQuests(t, f)

	entries := engine.Entries(context.Background())
	assert.Len(t, entries, config.DefaultTuning().ActiveQuestCount)
	for _, entry := range entries {
		require.NotNil(t, entry.ExpiresAt)
		assert.Equal(t, f.cal.NextMidnight(), *entry.ExpiresAt)
		assert.Equal(t, 0, entry.CurrentValue)
	}
}

func TestQuestEngine_TrackIgnoresInactiveQuests(t *testing.T) {
	f := newFixture(t)
	engine := newQuests(t, f)
	ctx := context.Background()

	active := make(map[string]bool)
	for _, entry := range engine.Entries(ctx) {
		active[entry.ID] = true
	}

	var inactive string
	for _, tmpl := range goals.QuestPool() {
		if !active[tmpl.ID] {
			inactive = tmpl.ID
			break
		}
	}
	require.NotEmpty(t, inactive)

	entry, err := engine.Track(ctx, inactive, 1)
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestQuestEngine_MidnightDiscardsProgressAndRegenerates(t *testing.T) {
	f := newFixture(t)
	engine := newQuests(t, f)
	ctx := context.Background()

	first := engine.Entries(ctx)
	_, err := engine.Track(ctx, first[0].ID, 1)
	require.NoError(t, err)

	// Cross the reference midnight; in-flight progress is discarded
	f.clk.Advance(24 * time.Hour)

	fresh := engine.Entries(ctx)
	assert.Len(t, fresh, config.DefaultTuning().ActiveQuestCount)
	for _, entry := range fresh {
		assert.Equal(t, 0, entry.CurrentValue, "regenerated quest %s must start at zero", entry.ID)
		require.NotNil(t, entry.ExpiresAt)
		assert.True(t, entry.ExpiresAt.After(f.cal.Now()))
	}
}

func TestQuestEngine_CompletionAwardsReward(t *testing.T) {
	f := newFixture(t)
	engine := newQuests(t, f)
	ctx := context.Background()

	target := engine.Entries(ctx)[0]
	gemsBefore := f.ledger.Balance(domain.ResourceGems)
	energyBefore := f.ledger.Balance(domain.ResourceEnergy)

	entry, err := engine.Track(ctx, target.ID, target.TargetValue)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, entry.Unlocked)

	gained := f.ledger.Balance(domain.ResourceGems) - gemsBefore +
		f.ledger.Balance(domain.ResourceEnergy) - energyBefore
	assert.Positive(t, gained)
}

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func newQuests(t *testing.T, f *fixture) *goals.QuestEngine {
	t.Helper()
	engine, err := goals.NewQuestEngine(context.Background(), goals.QuestPool(),
		f.store, f.queue, f.ledger, f.bus, f.cal,
		config.DefaultTuning().ActiveQuestCount, newTestRand())
	require.NoError(t, err)
	return engine
}
