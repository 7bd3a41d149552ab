// Package goals implements the shared progress-counter state machine behind
// achievements, quests and milestones. The three engines differ only in
// reset cadence: achievements and milestones never reset, quests expire at
// the next reference midnight and regenerate.
package goals

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/petalworks/gardencore/internal/clock"
	"github.com/petalworks/gardencore/internal/domain"
	"github.com/petalworks/gardencore/internal/event"
	"github.com/petalworks/gardencore/internal/logger"
	"github.com/petalworks/gardencore/internal/metrics"
	"github.com/petalworks/gardencore/internal/storage"
)

// RewardApplier credits unlock rewards; the ledger implements it
type RewardApplier interface {
	ApplyReward(ctx context.Context, reward domain.Reward) error
}

// Engine is a progress tracker over a fixed entry set. Entries move
// locked -> unlocked exactly once; progress past the target or against an
// unlocked entry is a no-op.
type Engine struct {
	kind      string
	key       string
	eventType event.Type
	applier   RewardApplier
	bus       event.Bus
	cal       *clock.Calendar
	saver     storage.Saver

	mu      sync.Mutex
	entries map[string]*domain.GoalEntry
	order   []string
}

// NewEngine builds an engine over templates, restoring persisted progress
// for matching entry ids
func NewEngine(ctx context.Context, kind, key string, eventType event.Type, templates []domain.GoalTemplate, store storage.Store, saver storage.Saver, applier RewardApplier, bus event.Bus, cal *clock.Calendar) (*Engine, error) {
	log := logger.FromContext(ctx)

	e := &Engine{
		kind:      kind,
		key:       key,
		eventType: eventType,
		applier:   applier,
		bus:       bus,
		cal:       cal,
		saver:     saver,
		entries:   make(map[string]*domain.GoalEntry),
	}
	for _, t := range templates {
		entry := t.Instantiate()
		e.entries[entry.ID] = &entry
		e.order = append(e.order, entry.ID)
	}

	data, found, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadState, err)
	}
	if found {
		var saved []domain.GoalEntry
		if err := json.Unmarshal(data, &saved); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadState, err)
		}
		// Saved progress only applies to entries that still exist; retired
		// templates drop their progress silently.
		for _, entry := range saved {
			if _, ok := e.entries[entry.ID]; ok {
				restored := entry
				e.entries[entry.ID] = &restored
			}
		}
		log.Info(LogMsgStateLoaded, "kind", kind, "count", len(saved))
	} else {
		log.Info(LogMsgStateInitialized, "kind", kind)
	}

	return e, nil
}

// Progress adds delta toward the entry's target, clamped to the target.
// Crossing the target unlocks the entry, applies its reward exactly once and
// publishes an unlock event.
func (e *Engine) Progress(ctx context.Context, id string, delta int) (*domain.GoalEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progressLocked(ctx, id, delta)
}

// ProgressGroup advances every entry in the group; milestone tiers share a
// counter this way
func (e *Engine) ProgressGroup(ctx context.Context, group string, delta int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, id := range e.order {
		if e.entries[id].Group != group {
			continue
		}
		if _, err := e.progressLocked(ctx, id, delta); err != nil {
			return err
		}
	}
	return nil
}

// Raise lifts the entry's progress to value when that is higher; used for
// level-style counters (streak, level) that are positions, not sums
func (e *Engine) Raise(ctx context.Context, id string, value int) (*domain.GoalEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", domain.ErrUnknownEntry, e.kind, id)
	}
	if value <= entry.CurrentValue {
		out := *entry
		return &out, nil
	}
	return e.progressLocked(ctx, id, value-entry.CurrentValue)
}

// RaiseGroup lifts every entry in the group to value when higher
func (e *Engine) RaiseGroup(ctx context.Context, group string, value int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, id := range e.order {
		entry := e.entries[id]
		if entry.Group != group || value <= entry.CurrentValue {
			continue
		}
		if _, err := e.progressLocked(ctx, id, value-entry.CurrentValue); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) progressLocked(ctx context.Context, id string, delta int) (*domain.GoalEntry, error) {
	entry, ok := e.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", domain.ErrUnknownEntry, e.kind, id)
	}
	if entry.Unlocked {
		out := *entry
		return &out, nil
	}

	entry.CurrentValue += delta
	if entry.CurrentValue > entry.TargetValue {
		entry.CurrentValue = entry.TargetValue
	}
	if entry.CurrentValue < 0 {
		entry.CurrentValue = 0
	}

	if entry.CurrentValue >= entry.TargetValue {
		entry.Unlocked = true
		now := e.cal.Now()
		entry.UnlockedAt = &now

		if err := e.applier.ApplyReward(ctx, entry.Reward); err != nil {
			return nil, err
		}

		metrics.GoalsUnlocked.WithLabelValues(e.kind).Inc()
		logger.FromContext(ctx).Info(LogMsgEntryUnlocked,
			"kind", e.kind, "entry_id", id, "tier", entry.Tier)

		payload := event.GoalUnlockedPayloadV1{
			EntryID: entry.ID,
			Tier:    entry.Tier,
			Reward:  entry.Reward,
		}
		_ = e.bus.Publish(ctx, event.New(e.eventType, payload, now))
	}

	e.persistLocked()
	out := *entry
	return &out, nil
}

// Entries returns all entries in template order
func (e *Engine) Entries() []domain.GoalEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.entriesLocked()
}

func (e *Engine) entriesLocked() []domain.GoalEntry {
	out := make([]domain.GoalEntry, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, *e.entries[id])
	}
	return out
}

// replaceLocked swaps the full entry set; quest regeneration uses this
func (e *Engine) replaceLocked(entries []domain.GoalEntry) {
	e.entries = make(map[string]*domain.GoalEntry, len(entries))
	e.order = e.order[:0]
	for _, entry := range entries {
		stored := entry
		e.entries[entry.ID] = &stored
		e.order = append(e.order, entry.ID)
	}
	sort.Strings(e.order)
	e.persistLocked()
}

// persistLocked enqueues the current entry set; callers hold e.mu
func (e *Engine) persistLocked() {
	data, err := json.Marshal(e.entriesLocked())
	if err != nil {
		logger.FromContext(context.Background()).Error(ErrContextFailedToMarshal, "error", err)
		return
	}
	e.saver.Enqueue(e.key, data)
}
