package domain

import "time"

// Reward is the prize granted exactly once when a goal entry unlocks
type Reward struct {
	Gems          int            `json:"gems,omitempty"`
	Energy        int            `json:"energy,omitempty"`
	SeedsByRarity map[Rarity]int `json:"seeds_by_rarity,omitempty"`
}

// IsZero reports whether the reward grants nothing
func (r Reward) IsZero() bool {
	return r.Gems == 0 && r.Energy == 0 && len(r.SeedsByRarity) == 0
}

// GoalEntry is the shared progress-counter shape behind achievements, quests
// and milestones. CurrentValue is clamped to [0, TargetValue] and Unlocked is
// monotonic: once true it never reverts.
type GoalEntry struct {
	ID           string     `json:"id"`
	Group        string     `json:"group,omitempty"` // milestone tier family
	Description  string     `json:"description,omitempty"`
	TargetValue  int        `json:"target_value"`
	CurrentValue int        `json:"current_value"`
	Tier         int        `json:"tier,omitempty"` // milestones only
	Unlocked     bool       `json:"unlocked"`
	UnlockedAt   *time.Time `json:"unlocked_at,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"` // quests only, next reference midnight
	Reward       Reward     `json:"reward"`
}

// GoalTemplate defines an entry before progress exists against it
type GoalTemplate struct {
	ID          string `json:"id"`
	Group       string `json:"group,omitempty"`
	Description string `json:"description,omitempty"`
	TargetValue int    `json:"target_value"`
	Tier        int    `json:"tier,omitempty"`
	Reward      Reward `json:"reward"`
}

// Instantiate creates a fresh entry with zeroed progress
func (t GoalTemplate) Instantiate() GoalEntry {
	return GoalEntry{
		ID:          t.ID,
		Group:       t.Group,
		Description: t.Description,
		TargetValue: t.TargetValue,
		Tier:        t.Tier,
		Reward:      t.Reward,
	}
}
