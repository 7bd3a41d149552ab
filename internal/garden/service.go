// Package garden is the action facade over the engines. Each player action
// runs one resource mutation, then fans the outcome out to progression,
// goals and the leaderboard cache. Goal tracking failures never roll back
// the action that caused them.
package garden

import (
	"context"
	"math"

	"github.com/petalworks/gardencore/internal/clock"
	"github.com/petalworks/gardencore/internal/config"
	"github.com/petalworks/gardencore/internal/crafting"
	"github.com/petalworks/gardencore/internal/domain"
	"github.com/petalworks/gardencore/internal/goals"
	"github.com/petalworks/gardencore/internal/inventory"
	"github.com/petalworks/gardencore/internal/leaderboard"
	"github.com/petalworks/gardencore/internal/ledger"
	"github.com/petalworks/gardencore/internal/logger"
	"github.com/petalworks/gardencore/internal/progression"
)

// NurtureResult reports everything a nurture action changed
type NurtureResult struct {
	XPGained int                      `json:"xp_gained"`
	XP       *progression.XPResult    `json:"xp"`
	Combo    progression.ComboResult  `json:"combo"`
	Streak   progression.StreakResult `json:"streak"`
}

// HarvestResult reports everything a harvest action changed
type HarvestResult struct {
	Item     domain.Item              `json:"item"`
	XPGained int                      `json:"xp_gained"`
	XP       *progression.XPResult    `json:"xp"`
	Combo    progression.ComboResult  `json:"combo"`
	Streak   progression.StreakResult `json:"streak"`
}

// PlayerSnapshot is the read model for the player panel
type PlayerSnapshot struct {
	Ledger      domain.LedgerState      `json:"ledger"`
	Progression domain.ProgressionState `json:"progression"`
	XPToNext    int                     `json:"xp_to_next"`
}

// GoalsSnapshot is the read model for the goals panel
type GoalsSnapshot struct {
	Achievements []domain.GoalEntry `json:"achievements"`
	Quests       []domain.GoalEntry `json:"quests"`
	Milestones   []domain.GoalEntry `json:"milestones"`
}

// InventorySnapshot is the read model for the inventory panel
type InventorySnapshot struct {
	Items        []domain.Item `json:"items"`
	BloomedCount int           `json:"bloomed_count"`
}

// Service defines the interface for garden actions and read models
type Service interface {
	// Nurture spends energy on a manifestation, awarding combo-scaled XP
	Nurture(ctx context.Context, category string) (*NurtureResult, error)
	// Harvest collects a blooming manifestation into the inventory
	Harvest(ctx context.Context, category, colorTag string) (*HarvestResult, error)
	// Craft burns blooming items for a seed and tracks crafting goals
	Craft(ctx context.Context, itemIDs []string) (*crafting.CraftResult, error)
	// Player returns the player panel read model
	Player() PlayerSnapshot
	// Inventory returns the inventory panel read model
	Inventory() InventorySnapshot
	// Goals returns the goals panel read model
	Goals(ctx context.Context) GoalsSnapshot
}

type service struct {
	ledgerSvc      ledger.Service
	progressionSvc progression.Service
	inventorySvc   inventory.Service
	craftingSvc    crafting.Service
	achievements   *goals.Engine
	quests         *goals.QuestEngine
	milestones     *goals.Engine
	leaderboardSvc leaderboard.Service
	cal            *clock.Calendar
	tuning         config.Tuning
}

// NewService creates the garden facade over the engines
func NewService(ledgerSvc ledger.Service, progressionSvc progression.Service, inventorySvc inventory.Service, craftingSvc crafting.Service, achievements *goals.Engine, quests *goals.QuestEngine, milestones *goals.Engine, leaderboardSvc leaderboard.Service, cal *clock.Calendar, tuning config.Tuning) Service {
	return &service{
		ledgerSvc:      ledgerSvc,
		progressionSvc: progressionSvc,
		inventorySvc:   inventorySvc,
		craftingSvc:    craftingSvc,
		achievements:   achievements,
		quests:         quests,
		milestones:     milestones,
		leaderboardSvc: leaderboardSvc,
		cal:            cal,
		tuning:         tuning,
	}
}

func (s *service) Nurture(ctx context.Context, category string) (*NurtureResult, error) {
	log := logger.FromContext(ctx)

	cost := s.tuning.NurtureEnergyCost
	if err := s.ledgerSvc.Debit(ctx, domain.ResourceEnergy, cost); err != nil {
		return nil, err
	}

	// The combo multiplier applies to the action that extended the chain,
	// never retroactively.
	combo := s.progressionSvc.IncrementCombo(ctx)
	xpGained := int(math.Round(float64(s.tuning.NurtureBaseXP) * combo.Multiplier))

	xpResult, err := s.progressionSvc.AddXP(ctx, xpGained)
	if err != nil {
		return nil, err
	}
	streak, err := s.progressionSvc.RecordPlay(ctx)
	if err != nil {
		return nil, err
	}

	s.trackAction(ctx, combo, streak, xpResult.NewLevel)
	s.trackProgress(ctx, goals.AchPlant10, 1)
	s.trackProgress(ctx, goals.AchPlant50, 1)
	s.trackQuest(ctx, goals.QuestNurture5, 1)
	s.trackQuest(ctx, goals.QuestEnergy10, cost)
	s.trackGroup(ctx, goals.GroupLifetimeNurtures, 1)
	s.leaderboardSvc.Invalidate()

	log.Info(LogMsgNurtured, "category", category,
		"xp_gained", xpGained, "combo", combo.ComboCount, "level", xpResult.NewLevel)

	return &NurtureResult{
		XPGained: xpGained,
		XP:       xpResult,
		Combo:    combo,
		Streak:   streak,
	}, nil
}

func (s *service) Harvest(ctx context.Context, category, colorTag string) (*HarvestResult, error) {
	log := logger.FromContext(ctx)

	item, err := s.inventorySvc.AddBloom(ctx, category, colorTag, s.cal.Now())
	if err != nil {
		return nil, err
	}

	combo := s.progressionSvc.IncrementCombo(ctx)
	xpGained := int(math.Round(float64(s.tuning.HarvestBaseXP) * combo.Multiplier))

	xpResult, err := s.progressionSvc.AddXP(ctx, xpGained)
	if err != nil {
		return nil, err
	}
	streak, err := s.progressionSvc.RecordPlay(ctx)
	if err != nil {
		return nil, err
	}

	s.trackAction(ctx, combo, streak, xpResult.NewLevel)
	s.trackProgress(ctx, goals.AchHarvest25, 1)
	s.trackQuest(ctx, goals.QuestHarvest3, 1)
	s.trackQuest(ctx, goals.QuestBloom4, 1)
	s.leaderboardSvc.Invalidate()

	log.Info(LogMsgHarvested, "item_id", item.ID,
		"rarity", item.Rarity().String(), "xp_gained", xpGained)

	return &HarvestResult{
		Item:     item,
		XPGained: xpGained,
		XP:       xpResult,
		Combo:    combo,
		Streak:   streak,
	}, nil
}

func (s *service) Craft(ctx context.Context, itemIDs []string) (*crafting.CraftResult, error) {
	result, err := s.craftingSvc.Craft(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	s.trackProgress(ctx, goals.AchCraft5, 1)
	s.trackQuest(ctx, goals.QuestCraft1, 1)
	s.trackQuest(ctx, goals.QuestSeeds2, 1)
	s.trackGroup(ctx, goals.GroupSeedsCollected, 1)
	s.leaderboardSvc.Invalidate()

	logger.FromContext(ctx).Info(LogMsgCrafted, "result", result.ResultRarity.String())
	return result, nil
}

func (s *service) Player() PlayerSnapshot {
	prog := s.progressionSvc.State()
	return PlayerSnapshot{
		Ledger:      s.ledgerSvc.State(),
		Progression: prog,
		XPToNext:    s.progressionSvc.XPNeeded(prog.Level) - prog.XP,
	}
}

func (s *service) Inventory() InventorySnapshot {
	return InventorySnapshot{
		Items:        s.inventorySvc.Items(),
		BloomedCount: s.inventorySvc.BloomedCount(),
	}
}

func (s *service) Goals(ctx context.Context) GoalsSnapshot {
	return GoalsSnapshot{
		Achievements: s.achievements.Entries(),
		Quests:       s.quests.Entries(ctx),
		Milestones:   s.milestones.Entries(),
	}
}

// trackAction raises the position-style counters shared by every action
func (s *service) trackAction(ctx context.Context, combo progression.ComboResult, streak progression.StreakResult, level int) {
	s.raise(ctx, goals.AchCombo25, combo.ComboCount)
	s.raise(ctx, goals.AchStreak7, streak.Streak)
	s.raise(ctx, goals.AchLevel10, level)
	s.raiseGroup(ctx, goals.GroupLongestStreak, streak.LongestStreak)
	s.trackQuest(ctx, goals.QuestCombo10, 1)
	s.trackQuest(ctx, goals.QuestPlay, 1)
}

// Goal tracking is best-effort: a reward credit failing must not undo the
// action, so errors are logged and dropped here.
func (s *service) trackProgress(ctx context.Context, id string, delta int) {
	if _, err := s.achievements.Progress(ctx, id, delta); err != nil {
		logger.FromContext(ctx).Error("Achievement tracking failed", "entry_id", id, "error", err)
	}
}

func (s *service) raise(ctx context.Context, id string, value int) {
	if _, err := s.achievements.Raise(ctx, id, value); err != nil {
		logger.FromContext(ctx).Error("Achievement tracking failed", "entry_id", id, "error", err)
	}
}

func (s *service) trackQuest(ctx context.Context, id string, delta int) {
	if _, err := s.quests.Track(ctx, id, delta); err != nil {
		logger.FromContext(ctx).Error("Quest tracking failed", "entry_id", id, "error", err)
	}
}

func (s *service) trackGroup(ctx context.Context, group string, delta int) {
	if err := s.milestones.ProgressGroup(ctx, group, delta); err != nil {
		logger.FromContext(ctx).Error("Milestone tracking failed", "group", group, "error", err)
	}
}

func (s *service) raiseGroup(ctx context.Context, group string, value int) {
	if err := s.milestones.RaiseGroup(ctx, group, value); err != nil {
		logger.FromContext(ctx).Error("Milestone tracking failed", "group", group, "error", err)
	}
}
