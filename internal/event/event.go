package event

import (
	"time"

	"github.com/petalworks/gardencore/internal/domain"
)

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version    string      `json:"version"` // Event schema version (e.g., "1.0")
	Type       Type        `json:"type"`
	Payload    interface{} `json:"payload"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// Common event types
const (
	LevelUp           Type = "progression.level_up"
	ComboBonus        Type = "progression.combo_bonus"
	StreakAdvanced    Type = "progression.streak_advanced"
	AchievementUnlock Type = "goals.achievement_unlocked"
	QuestComplete     Type = "goals.quest_completed"
	QuestsRegenerated Type = "goals.quests_regenerated"
	MilestoneReached  Type = "goals.milestone_reached"
	CraftCompleted    Type = "crafting.completed"
	PurchaseCredited  Type = "purchase.credited"
)

// Typed event payloads for type safety

// LevelUpPayloadV1 is the typed payload for level up events
type LevelUpPayloadV1 struct {
	OldLevel      int `json:"old_level"`
	NewLevel      int `json:"new_level"`
	GemsAwarded   int `json:"gems_awarded"`
	EnergyAwarded int `json:"energy_awarded"`
	MaxPlantSlots int `json:"max_plant_slots"`
}

// ComboBonusPayloadV1 is the typed payload for combo bonus events
type ComboBonusPayloadV1 struct {
	ComboCount int `json:"combo_count"`
	BonusGems  int `json:"bonus_gems"`
}

// StreakAdvancedPayloadV1 is the typed payload for streak change events
type StreakAdvancedPayloadV1 struct {
	Streak        int  `json:"streak"`
	LongestStreak int  `json:"longest_streak"`
	WasReset      bool `json:"was_reset"`
}

// GoalUnlockedPayloadV1 is the typed payload for achievement/quest/milestone unlocks
type GoalUnlockedPayloadV1 struct {
	EntryID string        `json:"entry_id"`
	Tier    int           `json:"tier,omitempty"`
	Reward  domain.Reward `json:"reward"`
}

// QuestsRegeneratedPayloadV1 is the typed payload for daily quest regeneration
type QuestsRegeneratedPayloadV1 struct {
	QuestIDs  []string  `json:"quest_ids"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CraftCompletedPayloadV1 is the typed payload for crafting results
type CraftCompletedPayloadV1 struct {
	ResultRarity  domain.Rarity `json:"result_rarity"`
	DominantCount int           `json:"dominant_count"`
}

// PurchaseCreditedPayloadV1 is the typed payload for confirmed purchases
type PurchaseCreditedPayloadV1 struct {
	Kind     domain.PurchaseKind `json:"kind"`
	Amount   int                 `json:"amount"`
	PriceUSD float64             `json:"price_usd"`
}

// New creates an event stamped with the current schema version
func New(t Type, payload interface{}, occurredAt time.Time) Event {
	return Event{
		Version:    EventSchemaVersion,
		Type:       t,
		Payload:    payload,
		OccurredAt: occurredAt,
	}
}
