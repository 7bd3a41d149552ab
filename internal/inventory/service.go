// Package inventory owns the collected garden items. Items enter at the
// blooming stage when a manifestation completes harvest and leave when
// consumed by crafting or removed individually.
package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/petalworks/gardencore/internal/domain"
	"github.com/petalworks/gardencore/internal/logger"
	"github.com/petalworks/gardencore/internal/storage"
)

// Error context messages for wrapped errors
const (
	ErrContextFailedToLoadState = "failed to load inventory state"
	ErrContextFailedToMarshal   = "failed to marshal inventory state"
	ErrContextNotBlooming       = "item is not blooming"
)

// Log messages
const (
	LogMsgItemCollected    = "Item collected"
	LogMsgItemsConsumed    = "Items consumed"
	LogMsgStateLoaded      = "Inventory state loaded"
	LogMsgStateInitialized = "Inventory state initialized fresh"
)

// Service defines the interface for inventory operations
type Service interface {
	// AddBloom creates a new blooming item and returns it
	AddBloom(ctx context.Context, category, colorTag string, collectedAt time.Time) (domain.Item, error)
	// Get returns the item with the given id
	Get(id string) (domain.Item, bool)
	// Remove deletes a single item
	Remove(ctx context.Context, id string) error
	// ConsumeBlooms removes the given items all-or-nothing; every id must
	// exist and every item must be blooming or nothing is touched
	ConsumeBlooms(ctx context.Context, ids []string) ([]domain.Item, error)
	// Items returns all items ordered by collection time
	Items() []domain.Item
	// BloomedCount returns how many items are currently blooming; the
	// notification scheduler polls this to decide on reminders
	BloomedCount() int
}

type service struct {
	saver storage.Saver

	mu    sync.Mutex
	items map[string]domain.Item
}

// NewService loads inventory state through the gateway, or starts fresh
func NewService(ctx context.Context, store storage.Store, saver storage.Saver) (Service, error) {
	log := logger.FromContext(ctx)

	s := &service{
		saver: saver,
		items: make(map[string]domain.Item),
	}

	data, found, err := store.Get(ctx, storage.KeyInventory)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadState, err)
	}
	if found {
		var items []domain.Item
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadState, err)
		}
		for _, item := range items {
			s.items[item.ID] = item
		}
		log.Info(LogMsgStateLoaded, "count", len(items))
	} else {
		log.Info(LogMsgStateInitialized)
	}

	return s, nil
}

func (s *service) AddBloom(ctx context.Context, category, colorTag string, collectedAt time.Time) (domain.Item, error) {
	item := domain.Item{
		ID:          uuid.NewString(),
		Category:    category,
		ColorTag:    colorTag,
		Stage:       domain.StageBlooming,
		CollectedAt: collectedAt,
	}

	s.mu.Lock()
	s.items[item.ID] = item
	s.persistLocked()
	s.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgItemCollected,
		"item_id", item.ID, "category", category, "rarity", item.Rarity().String())
	return item, nil
}

func (s *service) Get(id string) (domain.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	return item, ok
}

func (s *service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}
	delete(s.items, id)
	s.persistLocked()
	return nil
}

func (s *service) ConsumeBlooms(ctx context.Context, ids []string) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate everything before touching anything
	consumed := make([]domain.Item, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate item %s", domain.ErrInvalidCraftInput, id)
		}
		seen[id] = true

		item, ok := s.items[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
		}
		if !item.IsBlooming() {
			return nil, fmt.Errorf("%w: %s (%s)", domain.ErrInvalidCraftInput, ErrContextNotBlooming, id)
		}
		consumed = append(consumed, item)
	}

	for _, item := range consumed {
		delete(s.items, item.ID)
	}
	s.persistLocked()

	logger.FromContext(ctx).Info(LogMsgItemsConsumed, "count", len(consumed))
	return consumed, nil
}

func (s *service) Items() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked()
}

func (s *service) BloomedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		if item.IsBlooming() {
			count++
		}
	}
	return count
}

// sortedLocked returns items ordered by collection time; callers hold s.mu
func (s *service) sortedLocked() []domain.Item {
	items := make([]domain.Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CollectedAt.Equal(items[j].CollectedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CollectedAt.Before(items[j].CollectedAt)
	})
	return items
}

// persistLocked enqueues the current item list; callers hold s.mu
func (s *service) persistLocked() {
	data, err := json.Marshal(s.sortedLocked())
	if err != nil {
		logger.FromContext(context.Background()).Error(ErrContextFailedToMarshal, "error", err)
		return
	}
	s.saver.Enqueue(storage.KeyInventory, data)
}
