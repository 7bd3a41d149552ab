package goals

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/petalworks/gardencore/internal/clock"
	"github.com/petalworks/gardencore/internal/domain"
	"github.com/petalworks/gardencore/internal/event"
	"github.com/petalworks/gardencore/internal/logger"
	"github.com/petalworks/gardencore/internal/metrics"
	"github.com/petalworks/gardencore/internal/storage"
)

// QuestEngine layers daily expiry on the shared progress tracker. On the
// first observation after the reference midnight all current quests are
// discarded, in-flight progress included, and a fresh random subset of the
// pool is drawn with zeroed progress.
type QuestEngine struct {
	engine *Engine
	pool   []domain.GoalTemplate
	rng    *rand.Rand
	active int
}

// NewQuestEngine restores the persisted active quests, regenerating
// immediately when they are absent or already expired
func NewQuestEngine(ctx context.Context, pool []domain.GoalTemplate, store storage.Store, saver storage.Saver, applier RewardApplier, bus event.Bus, cal *clock.Calendar, activeCount int, rng *rand.Rand) (*QuestEngine, error) {
	log := logger.FromContext(ctx)

	if len(pool) < activeCount {
		return nil, fmt.Errorf("%s: %d < %d", ErrContextPoolTooSmall, len(pool), activeCount)
	}

	e := &Engine{
		kind:      KindQuest,
		key:       storage.KeyQuests,
		eventType: event.QuestComplete,
		applier:   applier,
		bus:       bus,
		cal:       cal,
		saver:     saver,
		entries:   make(map[string]*domain.GoalEntry),
	}
	q := &QuestEngine{engine: e, pool: pool, rng: rng, active: activeCount}

	data, found, err := store.Get(ctx, storage.KeyQuests)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadState, err)
	}
	if found {
		var saved []domain.GoalEntry
		if err := json.Unmarshal(data, &saved); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadState, err)
		}
		e.mu.Lock()
		e.replaceLocked(saved)
		e.mu.Unlock()
		log.Info(LogMsgStateLoaded, "kind", KindQuest, "count", len(saved))
	} else {
		log.Info(LogMsgStateInitialized, "kind", KindQuest)
	}

	q.ensureFresh(ctx)
	return q, nil
}

// Track adds progress toward an active quest. Ids outside today's active set
// are ignored: actions keep reporting what happened and only the drawn
// quests count it.
func (q *QuestEngine) Track(ctx context.Context, id string, delta int) (*domain.GoalEntry, error) {
	q.ensureFresh(ctx)

	q.engine.mu.Lock()
	defer q.engine.mu.Unlock()

	if _, ok := q.engine.entries[id]; !ok {
		return nil, nil
	}
	return q.engine.progressLocked(ctx, id, delta)
}

// Entries returns today's active quests
func (q *QuestEngine) Entries(ctx context.Context) []domain.GoalEntry {
	q.ensureFresh(ctx)
	return q.engine.Entries()
}

// ensureFresh regenerates the active set when empty or past expiry
func (q *QuestEngine) ensureFresh(ctx context.Context) {
	now := q.engine.cal.Now()

	q.engine.mu.Lock()
	defer q.engine.mu.Unlock()

	expired := len(q.engine.order) == 0
	for _, id := range q.engine.order {
		entry := q.engine.entries[id]
		if entry.ExpiresAt == nil || !now.Before(*entry.ExpiresAt) {
			expired = true
			break
		}
	}
	if !expired {
		return
	}

	logger.FromContext(ctx).Info(LogMsgQuestsExpired, "pool_size", len(q.pool), "drawing", q.active)

	shuffled := make([]domain.GoalTemplate, len(q.pool))
	copy(shuffled, q.pool)
	q.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	expiresAt := q.engine.cal.NextMidnight()
	fresh := make([]domain.GoalEntry, 0, q.active)
	ids := make([]string, 0, q.active)
	for _, t := range shuffled[:q.active] {
		entry := t.Instantiate()
		entry.ExpiresAt = &expiresAt
		fresh = append(fresh, entry)
		ids = append(ids, entry.ID)
	}
	q.engine.replaceLocked(fresh)

	metrics.QuestRegenerations.Inc()
	payload := event.QuestsRegeneratedPayloadV1{QuestIDs: ids, ExpiresAt: expiresAt}
	_ = q.engine.bus.Publish(ctx, event.New(event.QuestsRegenerated, payload, now))
}
