// Package crafting implements the burn-five-for-one seed synthesis. Five
// blooming items are consumed and exactly one seed comes back, its rarity
// drawn from a tunable probability table keyed by the dominant rarity among
// the burned items.
package crafting

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/petalworks/gardencore/internal/clock"
	"github.com/petalworks/gardencore/internal/config"
	"github.com/petalworks/gardencore/internal/domain"
	"github.com/petalworks/gardencore/internal/event"
	"github.com/petalworks/gardencore/internal/inventory"
	"github.com/petalworks/gardencore/internal/ledger"
	"github.com/petalworks/gardencore/internal/logger"
	"github.com/petalworks/gardencore/internal/metrics"
)

// RollFunc produces a uniform draw in [0, RollRange). Injected so tests can
// force exact draws.
type RollFunc func() float64

// NewRoll adapts a rand source into a RollFunc
func NewRoll(rng *rand.Rand) RollFunc {
	return func() float64 {
		return rng.Float64() * RollRange
	}
}

// CraftResult reports a successful craft
type CraftResult struct {
	ResultRarity  domain.Rarity `json:"result_rarity"`
	Dominant      domain.Rarity `json:"dominant"`
	DominantCount int           `json:"dominant_count"`
	Roll          float64       `json:"roll"`
}

// Service defines the interface for crafting operations
type Service interface {
	// Craft burns the given blooming items for one seed. Anything other
	// than exactly the configured number of existing blooming items fails
	// with domain.ErrInvalidCraftInput and performs no mutation.
	Craft(ctx context.Context, itemIDs []string) (*CraftResult, error)
}

type service struct {
	inventorySvc inventory.Service
	ledgerSvc    ledger.Service
	bus          event.Bus
	cal          *clock.Calendar
	tuning       config.Tuning
	roll         RollFunc
}

// NewService creates a new crafting service
func NewService(inventorySvc inventory.Service, ledgerSvc ledger.Service, bus event.Bus, cal *clock.Calendar, tuning config.Tuning, roll RollFunc) Service {
	return &service{
		inventorySvc: inventorySvc,
		ledgerSvc:    ledgerSvc,
		bus:          bus,
		cal:          cal,
		tuning:       tuning,
		roll:         roll,
	}
}

func (s *service) Craft(ctx context.Context, itemIDs []string) (*CraftResult, error) {
	log := logger.FromContext(ctx)

	if len(itemIDs) != s.tuning.CraftBurnCount {
		metrics.CraftsRejected.Inc()
		log.Debug(LogMsgCraftRejected, "reason", ErrContextWrongItemCount, "count", len(itemIDs))
		return nil, fmt.Errorf("%w: %s (got %d, want %d)",
			domain.ErrInvalidCraftInput, ErrContextWrongItemCount, len(itemIDs), s.tuning.CraftBurnCount)
	}

	dominant, dominantCount, err := s.inspect(itemIDs)
	if err != nil {
		metrics.CraftsRejected.Inc()
		log.Debug(LogMsgCraftRejected, "error", err)
		return nil, err
	}

	row, err := s.oddsRow(dominant, dominantCount)
	if err != nil {
		metrics.CraftsRejected.Inc()
		return nil, err
	}

	roll := s.roll()
	result := resolveRoll(row, roll)

	// Removal and seed credit are one logical transaction: both mutate the
	// in-memory state before any persistence write is attempted, and each
	// enqueued write replaces the whole value under its key, so the backend
	// never sees the removal without the credit.
	if _, err := s.inventorySvc.ConsumeBlooms(ctx, itemIDs); err != nil {
		metrics.CraftsRejected.Inc()
		return nil, err
	}
	if err := s.ledgerSvc.CreditSeeds(ctx, result, 1); err != nil {
		return nil, err
	}

	metrics.CraftsCompleted.WithLabelValues(result.String()).Inc()
	log.Info(LogMsgCraftCompleted,
		"dominant", dominant.String(), "dominant_count", dominantCount,
		"roll", roll, "result", result.String())

	payload := event.CraftCompletedPayloadV1{
		ResultRarity:  result,
		DominantCount: dominantCount,
	}
	_ = s.bus.Publish(ctx, event.New(event.CraftCompleted, payload, s.cal.Now()))

	return &CraftResult{
		ResultRarity:  result,
		Dominant:      dominant,
		DominantCount: dominantCount,
		Roll:          roll,
	}, nil
}

// inspect validates the selected items without mutating and returns the
// dominant rarity and its count. Plurality ties break toward the higher
// rarity, which is deterministic and never worse for the player.
func (s *service) inspect(itemIDs []string) (domain.Rarity, int, error) {
	counts := make(map[domain.Rarity]int)
	seen := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		if seen[id] {
			return 0, 0, fmt.Errorf("%w: duplicate item %s", domain.ErrInvalidCraftInput, id)
		}
		seen[id] = true

		item, ok := s.inventorySvc.Get(id)
		if !ok {
			return 0, 0, fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
		}
		if !item.IsBlooming() {
			return 0, 0, fmt.Errorf("%w: item %s is not blooming", domain.ErrInvalidCraftInput, id)
		}
		counts[item.Rarity()]++
	}

	dominant := domain.RarityCommon
	dominantCount := 0
	for _, rarity := range domain.AllRarities() {
		if counts[rarity] >= dominantCount && counts[rarity] > 0 {
			dominant = rarity
			dominantCount = counts[rarity]
		}
	}
	return dominant, dominantCount, nil
}

// oddsRow finds the tuning row covering the dominant rarity and count
func (s *service) oddsRow(dominant domain.Rarity, count int) (config.CraftOddsRow, error) {
	for _, row := range s.tuning.CraftOdds {
		if domain.ParseRarity(row.Dominant) != dominant {
			continue
		}
		if count >= row.MinCount && count <= row.MaxCount {
			return row, nil
		}
	}
	return config.CraftOddsRow{}, fmt.Errorf("%w: %s (%s, count %d)",
		domain.ErrInvalidCraftInput, ErrContextNoOddsRow, dominant.String(), count)
}

// resolveRoll walks the row's outcomes in order against the roll
func resolveRoll(row config.CraftOddsRow, roll float64) domain.Rarity {
	var cumulative float64
	for _, outcome := range row.Outcomes {
		cumulative += outcome.Percent
		if roll < cumulative {
			return domain.ParseRarity(outcome.Rarity)
		}
	}
	// Float drift on the last boundary; the final outcome owns the remainder
	return domain.ParseRarity(row.Outcomes[len(row.Outcomes)-1].Rarity)
}
