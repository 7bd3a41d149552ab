package config

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// oddsSumTolerance is the allowed float drift when checking that an odds
// row's outcome percentages cover the full roll range
const oddsSumTolerance = 1e-6

// CraftOutcome is one weighted result in a crafting odds row.
// Outcomes are walked in order against a roll in [0, 100).
type CraftOutcome struct {
	Rarity  string  `validate:"oneof=common rare epic legendary"`
	Percent float64 `validate:"gt=0,lte=100"`
}

// CraftOddsRow maps a dominant rarity and plurality-count bucket to its
// outcome distribution
type CraftOddsRow struct {
	Dominant string `validate:"oneof=common rare epic legendary"`
	MinCount int    `validate:"gte=1,lte=5"`
	MaxCount int    `validate:"gte=1,lte=5,gtefield=MinCount"`

	Outcomes []CraftOutcome `validate:"min=1,dive"`
}

// Tuning holds the product/business tuning values the engines consume.
// These are deliberately configuration, not literals inside the algorithms,
// so they can be adjusted without touching engine code.
type Tuning struct {
	// Progression
	XPBase            float64 `validate:"gt=0"`  // xpNeeded(1)
	XPGrowth          float64 `validate:"gt=1"`  // per-level curve multiplier
	LevelGemBase      int     `validate:"gte=0"` // gems on level up: base + perLevel*newLevel
	LevelGemPerLevel  int     `validate:"gte=0"`
	LevelEnergyBase   int     `validate:"gte=0"` // energy on level up: base + newLevel/divisor, capped
	LevelEnergyDiv    int     `validate:"gt=0"`
	LevelEnergyCap    int     `validate:"gt=0"`
	BasePlantSlots    int     `validate:"gt=0"` // maxPlantSlots = base + level
	BaseMaxEnergy     int     `validate:"gt=0"`
	PremiumMaxEnergy  int     `validate:"gt=0"`
	NurtureEnergyCost int     `validate:"gte=0"`
	NurtureBaseXP     int     `validate:"gt=0"`
	HarvestBaseXP     int     `validate:"gt=0"`

	// Combo
	ComboWindowMS       int64   `validate:"gt=0"`
	ComboStepSize       int     `validate:"gt=0"` // multiplier steps up every N combo actions
	ComboStepMultiplier float64 `validate:"gt=0"`
	ComboMaxMultiplier  float64 `validate:"gte=1"`
	ComboBonusEvery     int     `validate:"gt=0"` // every Nth action awards bonus gems

	// Crafting
	CraftBurnCount int            `validate:"gt=0"`
	CraftOdds      []CraftOddsRow `validate:"min=1,dive"`

	// Leaderboard: USD spend required to hold displayed ranks 1..3
	RankSpendGates [3]float64

	// Quests
	ActiveQuestCount int `validate:"gt=0"`
}

// DefaultTuning returns the shipped tuning values
func DefaultTuning() Tuning {
	return Tuning{
		XPBase:            100,
		XPGrowth:          1.15,
		LevelGemBase:      25,
		LevelGemPerLevel:  15,
		LevelEnergyBase:   3,
		LevelEnergyDiv:    3,
		LevelEnergyCap:    10,
		BasePlantSlots:    6,
		BaseMaxEnergy:     15,
		PremiumMaxEnergy:  25,
		NurtureEnergyCost: 1,
		NurtureBaseXP:     10,
		HarvestBaseXP:     25,

		ComboWindowMS:       5000,
		ComboStepSize:       3,
		ComboStepMultiplier: 0.5,
		ComboMaxMultiplier:  4,
		ComboBonusEvery:     10,

		CraftBurnCount: 5,
		CraftOdds: []CraftOddsRow{
			{Dominant: "legendary", MinCount: 5, MaxCount: 5, Outcomes: []CraftOutcome{
				{Rarity: "legendary", Percent: 70},
				{Rarity: "epic", Percent: 25},
				{Rarity: "rare", Percent: 5},
			}},
			{Dominant: "legendary", MinCount: 3, MaxCount: 4, Outcomes: []CraftOutcome{
				{Rarity: "legendary", Percent: 50},
				{Rarity: "epic", Percent: 35},
				{Rarity: "rare", Percent: 15},
			}},
			{Dominant: "legendary", MinCount: 1, MaxCount: 2, Outcomes: []CraftOutcome{
				{Rarity: "legendary", Percent: 25},
				{Rarity: "epic", Percent: 45},
				{Rarity: "rare", Percent: 30},
			}},
			{Dominant: "epic", MinCount: 1, MaxCount: 5, Outcomes: []CraftOutcome{
				{Rarity: "epic", Percent: 70},
				{Rarity: "rare", Percent: 22},
				{Rarity: "common", Percent: 7},
				{Rarity: "legendary", Percent: 1},
			}},
			{Dominant: "rare", MinCount: 1, MaxCount: 5, Outcomes: []CraftOutcome{
				{Rarity: "rare", Percent: 70},
				{Rarity: "common", Percent: 24},
				{Rarity: "epic", Percent: 5.2},
				{Rarity: "legendary", Percent: 0.8},
			}},
			{Dominant: "common", MinCount: 1, MaxCount: 5, Outcomes: []CraftOutcome{
				{Rarity: "common", Percent: 70},
				{Rarity: "rare", Percent: 22},
				{Rarity: "epic", Percent: 7.5},
				{Rarity: "legendary", Percent: 0.5},
			}},
		},

		RankSpendGates: [3]float64{700, 500, 300},

		ActiveQuestCount: 3,
	}
}

// Validate checks structural tags plus the cross-field rules the tags
// cannot express
func (t Tuning) Validate() error {
	validate := validator.New()
	if err := validate.Struct(t); err != nil {
		return err
	}

	for _, row := range t.CraftOdds {
		var sum float64
		for _, outcome := range row.Outcomes {
			sum += outcome.Percent
		}
		if math.Abs(sum-100) > oddsSumTolerance {
			return fmt.Errorf("craft odds row %s[%d-%d] sums to %v, want 100",
				row.Dominant, row.MinCount, row.MaxCount, sum)
		}
	}

	for i, gate := range t.RankSpendGates {
		if gate < 0 {
			return fmt.Errorf("rank spend gate %d is negative", i+1)
		}
	}

	if t.PremiumMaxEnergy < t.BaseMaxEnergy {
		return fmt.Errorf("premium max energy %d below base %d", t.PremiumMaxEnergy, t.BaseMaxEnergy)
	}

	return nil
}
