package domain

// Resource identifies a scalar currency or consumable tracked by the ledger
type Resource string

const (
	ResourceGems           Resource = "gems"
	ResourceEnergy         Resource = "energy"
	ResourceSpecialSeeds   Resource = "special_seeds"
	ResourceGrowthBoosters Resource = "growth_boosters"
	ResourceEnergyBoosts   Resource = "energy_boosts"
)

// KnownResource reports whether r is one of the tracked resources
func KnownResource(r Resource) bool {
	switch r {
	case ResourceGems, ResourceEnergy, ResourceSpecialSeeds, ResourceGrowthBoosters, ResourceEnergyBoosts:
		return true
	}
	return false
}

// LedgerState is the persisted shape of all scalar balances.
// Energy may exceed MaxEnergy transiently after streak or level bonuses;
// no balance ever drops below zero.
type LedgerState struct {
	Balances       map[Resource]int `json:"balances"`
	SeedsByRarity  map[Rarity]int   `json:"seeds_by_rarity"`
	SeedsCollected int              `json:"seeds_collected"` // lifetime counter, feeds the seed leaderboard
	MaxEnergy      int              `json:"max_energy"`
	Premium        bool             `json:"premium"`
	TotalSpent     float64          `json:"total_spent"` // lifetime USD, monotonically non-decreasing
}

// ProgressionState is the persisted shape of level, combo and streak state
type ProgressionState struct {
	Level           int     `json:"level"`
	XP              int     `json:"xp"`
	MaxPlantSlots   int     `json:"max_plant_slots"`
	ComboCount      int     `json:"combo_count"`
	ComboMultiplier float64 `json:"combo_multiplier"`
	LastComboAction int64   `json:"last_combo_action_ms"` // unix milliseconds
	Streak          int     `json:"streak"`
	LongestStreak   int     `json:"longest_streak"`
	LastPlayDate    string  `json:"last_play_date"` // YYYY-MM-DD in the reference timezone
}
