// Package ledger owns every scalar currency and consumable balance.
// Mutations apply in memory first and are enqueued for persistence; a crash
// between the two loses at most the latest write and can never produce a
// negative balance.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/petalworks/gardencore/internal/config"
	"github.com/petalworks/gardencore/internal/domain"
	"github.com/petalworks/gardencore/internal/logger"
	"github.com/petalworks/gardencore/internal/metrics"
	"github.com/petalworks/gardencore/internal/storage"
)

// Service defines the interface for ledger operations
type Service interface {
	// Credit increases a balance; it always succeeds for known resources
	Credit(ctx context.Context, resource domain.Resource, amount int) error
	// Debit decreases a balance, failing with domain.ErrInsufficientResource
	// without mutation when the balance is too low
	Debit(ctx context.Context, resource domain.Resource, amount int) error
	// CreditSeeds adds seeds of a rarity, tracking the lifetime collected count
	CreditSeeds(ctx context.Context, rarity domain.Rarity, amount int) error
	// DebitSeeds removes seeds of a rarity
	DebitSeeds(ctx context.Context, rarity domain.Rarity, amount int) error
	// RecordSpend raises the lifetime USD spend; it never decreases, refunds included
	RecordSpend(ctx context.Context, amountUSD float64)
	// ApplyReward credits every component of a goal reward
	ApplyReward(ctx context.Context, reward domain.Reward) error
	// SetPremium toggles the premium energy ceiling
	SetPremium(ctx context.Context, premium bool)
	// Balance returns the current balance of a resource
	Balance(resource domain.Resource) int
	// State returns an immutable snapshot of all balances
	State() domain.LedgerState
}

type service struct {
	saver  storage.Saver
	tuning config.Tuning

	mu    sync.Mutex
	state domain.LedgerState
}

// NewService loads ledger state through the gateway, or starts fresh
func NewService(ctx context.Context, store storage.Store, saver storage.Saver, tuning config.Tuning) (Service, error) {
	log := logger.FromContext(ctx)

	s := &service{saver: saver, tuning: tuning}

	data, found, err := store.Get(ctx, storage.KeyLedger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadState, err)
	}
	if found {
		if err := json.Unmarshal(data, &s.state); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadState, err)
		}
		log.Info(LogMsgStateLoaded, "gems", s.state.Balances[domain.ResourceGems])
	} else {
		s.state = freshState(tuning)
		log.Info(LogMsgStateInitialized)
	}
	if s.state.Balances == nil {
		s.state.Balances = make(map[domain.Resource]int)
	}
	if s.state.SeedsByRarity == nil {
		s.state.SeedsByRarity = make(map[domain.Rarity]int)
	}

	return s, nil
}

func freshState(tuning config.Tuning) domain.LedgerState {
	return domain.LedgerState{
		Balances: map[domain.Resource]int{
			domain.ResourceGems:   0,
			domain.ResourceEnergy: tuning.BaseMaxEnergy,
		},
		SeedsByRarity: make(map[domain.Rarity]int),
		MaxEnergy:     tuning.BaseMaxEnergy,
	}
}

func (s *service) Credit(ctx context.Context, resource domain.Resource, amount int) error {
	if !domain.KnownResource(resource) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownResource, resource)
	}
	if amount < 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrContextNegativeAmount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Balances[resource] += amount
	s.persistLocked()
	return nil
}

func (s *service) Debit(ctx context.Context, resource domain.Resource, amount int) error {
	if !domain.KnownResource(resource) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownResource, resource)
	}
	if amount < 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrContextNegativeAmount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	balance := s.state.Balances[resource]
	if balance < amount {
		metrics.DebitsFailed.WithLabelValues(string(resource)).Inc()
		logger.FromContext(ctx).Debug(LogMsgDebitRejected,
			"resource", resource, "balance", balance, "amount", amount)
		return fmt.Errorf("%w: %s (have %d, need %d)", domain.ErrInsufficientResource, resource, balance, amount)
	}

	// Debit then persist, never the reverse: a crash here loses the write
	// but replays the higher balance, not a negative one.
	s.state.Balances[resource] = balance - amount
	s.persistLocked()
	return nil
}

func (s *service) CreditSeeds(ctx context.Context, rarity domain.Rarity, amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrContextNegativeAmount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.SeedsByRarity[rarity] += amount
	s.state.Balances[domain.ResourceSpecialSeeds] += amount
	s.state.SeedsCollected += amount
	s.persistLocked()
	return nil
}

func (s *service) DebitSeeds(ctx context.Context, rarity domain.Rarity, amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrContextNegativeAmount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.SeedsByRarity[rarity] < amount {
		metrics.DebitsFailed.WithLabelValues(string(domain.ResourceSpecialSeeds)).Inc()
		return fmt.Errorf("%w: %s seeds (have %d, need %d)",
			domain.ErrInsufficientResource, rarity, s.state.SeedsByRarity[rarity], amount)
	}

	s.state.SeedsByRarity[rarity] -= amount
	s.state.Balances[domain.ResourceSpecialSeeds] -= amount
	s.persistLocked()
	return nil
}

func (s *service) RecordSpend(ctx context.Context, amountUSD float64) {
	if amountUSD < 0 {
		logger.FromContext(ctx).Warn(LogMsgNegativeSpend, "amount_usd", amountUSD)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.TotalSpent += amountUSD
	s.persistLocked()
}

func (s *service) ApplyReward(ctx context.Context, reward domain.Reward) error {
	if reward.Gems > 0 {
		if err := s.Credit(ctx, domain.ResourceGems, reward.Gems); err != nil {
			return err
		}
	}
	if reward.Energy > 0 {
		if err := s.Credit(ctx, domain.ResourceEnergy, reward.Energy); err != nil {
			return err
		}
	}
	for rarity, count := range reward.SeedsByRarity {
		if err := s.CreditSeeds(ctx, rarity, count); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) SetPremium(_ context.Context, premium bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Premium = premium
	if premium {
		s.state.MaxEnergy = s.tuning.PremiumMaxEnergy
	} else {
		s.state.MaxEnergy = s.tuning.BaseMaxEnergy
	}
	s.persistLocked()
}

func (s *service) Balance(resource domain.Resource) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Balances[resource]
}

func (s *service) State() domain.LedgerState {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.state
	out.Balances = make(map[domain.Resource]int, len(s.state.Balances))
	for k, v := range s.state.Balances {
		out.Balances[k] = v
	}
	out.SeedsByRarity = make(map[domain.Rarity]int, len(s.state.SeedsByRarity))
	for k, v := range s.state.SeedsByRarity {
		out.SeedsByRarity[k] = v
	}
	return out
}

// persistLocked enqueues the current state; callers hold s.mu
func (s *service) persistLocked() {
	data, err := json.Marshal(s.state)
	if err != nil {
		// State is plain maps and numbers; this cannot fail at runtime
		logger.FromContext(context.Background()).Error(ErrContextFailedToMarshal, "error", err)
		return
	}
	s.saver.Enqueue(storage.KeyLedger, data)
}
