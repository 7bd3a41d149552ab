package domain

import "time"

// GrowthStage is the lifecycle stage of a garden item
type GrowthStage string

const (
	StageSprout   GrowthStage = "sprout"
	StageGrowing  GrowthStage = "growing"
	StageBlooming GrowthStage = "blooming"
)

// Item represents a collected garden item.
// Items are created when a manifestation finishes harvest at the blooming
// stage and destroyed when consumed by crafting or removed individually.
type Item struct {
	ID          string      `json:"id"`
	Category    string      `json:"category"`
	ColorTag    string      `json:"color_tag"`
	Stage       GrowthStage `json:"stage"`
	CollectedAt time.Time   `json:"collected_at"`
}

// Rarity derives the item's rarity from its color tag
func (i Item) Rarity() Rarity {
	return RarityFromColor(i.ColorTag)
}

// IsBlooming reports whether the item is eligible for crafting
func (i Item) IsBlooming() bool {
	return i.Stage == StageBlooming
}
