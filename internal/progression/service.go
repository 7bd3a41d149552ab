// Package progression owns level, XP, combo and streak state. It converts
// player actions into XP and gem rewards using the leveling curve and the
// combo decay rule.
package progression

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"

	"github.com/petalworks/gardencore/internal/clock"
	"github.com/petalworks/gardencore/internal/config"
	"github.com/petalworks/gardencore/internal/domain"
	"github.com/petalworks/gardencore/internal/event"
	"github.com/petalworks/gardencore/internal/ledger"
	"github.com/petalworks/gardencore/internal/logger"
	"github.com/petalworks/gardencore/internal/metrics"
	"github.com/petalworks/gardencore/internal/storage"
)

// XPResult reports the outcome of an AddXP call
type XPResult struct {
	LevelsGained  int `json:"levels_gained"`
	NewLevel      int `json:"new_level"`
	XP            int `json:"xp"`
	GemsAwarded   int `json:"gems_awarded"`
	EnergyAwarded int `json:"energy_awarded"`
	MaxPlantSlots int `json:"max_plant_slots"`
}

// ComboResult reports the combo state after an action
type ComboResult struct {
	ComboCount int     `json:"combo_count"`
	Multiplier float64 `json:"multiplier"`
	BonusGems  int     `json:"bonus_gems"`
}

// StreakResult reports the streak state after a play was recorded
type StreakResult struct {
	Streak        int  `json:"streak"`
	LongestStreak int  `json:"longest_streak"`
	WasReset      bool `json:"was_reset"`
	Changed       bool `json:"changed"`
}

// Service defines the interface for progression operations
type Service interface {
	// XPNeeded returns the XP required to clear the given level
	XPNeeded(level int) int
	// AddXP accumulates XP, looping through as many level-ups as the
	// carried remainder clears, granting level rewards through the ledger
	AddXP(ctx context.Context, amount int) (*XPResult, error)
	// IncrementCombo advances or resets the combo chain. The returned
	// multiplier is applied by callers to the triggering action's XP; it is
	// never applied retroactively.
	IncrementCombo(ctx context.Context) ComboResult
	// RecordPlay advances the daily streak for the current reference day
	RecordPlay(ctx context.Context) (StreakResult, error)
	// State returns an immutable snapshot
	State() domain.ProgressionState
}

type service struct {
	ledgerSvc ledger.Service
	cal       *clock.Calendar
	bus       event.Bus
	saver     storage.Saver
	tuning    config.Tuning

	mu    sync.Mutex
	state domain.ProgressionState
}

// NewService loads progression state through the gateway, or starts fresh
func NewService(ctx context.Context, store storage.Store, saver storage.Saver, ledgerSvc ledger.Service, cal *clock.Calendar, bus event.Bus, tuning config.Tuning) (Service, error) {
	log := logger.FromContext(ctx)

	s := &service{
		ledgerSvc: ledgerSvc,
		cal:       cal,
		bus:       bus,
		saver:     saver,
		tuning:    tuning,
	}

	data, found, err := store.Get(ctx, storage.KeyProgression)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadState, err)
	}
	if found {
		if err := json.Unmarshal(data, &s.state); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadState, err)
		}
		log.Info(LogMsgStateLoaded, "level", s.state.Level, "streak", s.state.Streak)
	} else {
		s.state = domain.ProgressionState{
			Level:           1,
			ComboMultiplier: 1,
			MaxPlantSlots:   tuning.BasePlantSlots + 1,
		}
		log.Info(LogMsgStateInitialized)
	}

	return s, nil
}

func (s *service) XPNeeded(level int) int {
	return int(math.Floor(s.tuning.XPBase * math.Pow(s.tuning.XPGrowth, float64(level-1))))
}

func (s *service) AddXP(ctx context.Context, amount int) (*XPResult, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrContextNegativeXP)
	}
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	result := &XPResult{NewLevel: s.state.Level}
	s.state.XP += amount

	// The remainder may clear several thresholds in one call; loop until the
	// carried XP no longer does.
	for s.state.XP >= s.XPNeeded(s.state.Level) {
		s.state.XP -= s.XPNeeded(s.state.Level)
		s.state.Level++
		result.LevelsGained++

		gems := s.tuning.LevelGemBase + s.tuning.LevelGemPerLevel*s.state.Level
		energy := s.tuning.LevelEnergyBase + s.state.Level/s.tuning.LevelEnergyDiv
		if energy > s.tuning.LevelEnergyCap {
			energy = s.tuning.LevelEnergyCap
		}
		s.state.MaxPlantSlots = s.tuning.BasePlantSlots + s.state.Level

		if err := s.ledgerSvc.Credit(ctx, domain.ResourceGems, gems); err != nil {
			return nil, err
		}
		if err := s.ledgerSvc.Credit(ctx, domain.ResourceEnergy, energy); err != nil {
			return nil, err
		}
		result.GemsAwarded += gems
		result.EnergyAwarded += energy

		metrics.LevelUps.Inc()
		log.Info(LogMsgLevelUp, "new_level", s.state.Level, "gems", gems, "energy", energy)

		payload := event.LevelUpPayloadV1{
			OldLevel:      s.state.Level - 1,
			NewLevel:      s.state.Level,
			GemsAwarded:   gems,
			EnergyAwarded: energy,
			MaxPlantSlots: s.state.MaxPlantSlots,
		}
		_ = s.bus.Publish(ctx, event.New(event.LevelUp, payload, s.cal.Now()))
	}

	result.NewLevel = s.state.Level
	result.XP = s.state.XP
	result.MaxPlantSlots = s.state.MaxPlantSlots
	s.persistLocked()
	return result, nil
}

func (s *service) IncrementCombo(ctx context.Context) ComboResult {
	now := s.cal.Now()
	nowMS := now.UnixMilli()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.LastComboAction > 0 && nowMS-s.state.LastComboAction < s.tuning.ComboWindowMS {
		s.state.ComboCount++
	} else {
		s.state.ComboCount = 1
	}
	s.state.LastComboAction = nowMS

	multiplier := 1 + float64(s.state.ComboCount/s.tuning.ComboStepSize)*s.tuning.ComboStepMultiplier
	if multiplier > s.tuning.ComboMaxMultiplier {
		multiplier = s.tuning.ComboMaxMultiplier
	}
	s.state.ComboMultiplier = multiplier

	result := ComboResult{ComboCount: s.state.ComboCount, Multiplier: multiplier}

	if s.state.ComboCount%s.tuning.ComboBonusEvery == 0 {
		result.BonusGems = s.state.ComboCount / 2
		if err := s.ledgerSvc.Credit(ctx, domain.ResourceGems, result.BonusGems); err == nil {
			metrics.ComboBonuses.Inc()
			logger.FromContext(ctx).Info(LogMsgComboBonus,
				"combo_count", s.state.ComboCount, "bonus_gems", result.BonusGems)
			payload := event.ComboBonusPayloadV1{
				ComboCount: s.state.ComboCount,
				BonusGems:  result.BonusGems,
			}
			_ = s.bus.Publish(ctx, event.New(event.ComboBonus, payload, now))
		}
	}

	s.persistLocked()
	return result
}

func (s *service) RecordPlay(ctx context.Context) (StreakResult, error) {
	log := logger.FromContext(ctx)
	today := s.cal.TodayKey()
	yesterday := s.cal.YesterdayKey()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.LastPlayDate == today {
		return StreakResult{
			Streak:        s.state.Streak,
			LongestStreak: s.state.LongestStreak,
		}, nil
	}

	wasReset := false
	if s.state.LastPlayDate == yesterday {
		s.state.Streak++
	} else {
		wasReset = s.state.LastPlayDate != ""
		s.state.Streak = 1
	}
	s.state.LastPlayDate = today
	if s.state.Streak > s.state.LongestStreak {
		s.state.LongestStreak = s.state.Streak
	}

	if wasReset {
		log.Info(LogMsgStreakReset, "streak", s.state.Streak)
	} else {
		log.Info(LogMsgStreakAdvanced, "streak", s.state.Streak)
	}

	payload := event.StreakAdvancedPayloadV1{
		Streak:        s.state.Streak,
		LongestStreak: s.state.LongestStreak,
		WasReset:      wasReset,
	}
	_ = s.bus.Publish(ctx, event.New(event.StreakAdvanced, payload, s.cal.Now()))

	s.persistLocked()
	return StreakResult{
		Streak:        s.state.Streak,
		LongestStreak: s.state.LongestStreak,
		WasReset:      wasReset,
		Changed:       true,
	}, nil
}

func (s *service) State() domain.ProgressionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// persistLocked enqueues the current state; callers hold s.mu
func (s *service) persistLocked() {
	data, err := json.Marshal(s.state)
	if err != nil {
		logger.FromContext(context.Background()).Error(ErrContextFailedToMarshal, "error", err)
		return
	}
	s.saver.Enqueue(storage.KeyProgression, data)
}
