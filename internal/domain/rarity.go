package domain

// Rarity is the ordered quality tier of a garden item or seed.
// The integer values encode the ordering: Common < Rare < Epic < Legendary.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityRare
	RarityEpic
	RarityLegendary
)

// Rarity string values used in persisted state and API payloads
const (
	RarityNameCommon    = "common"
	RarityNameRare      = "rare"
	RarityNameEpic      = "epic"
	RarityNameLegendary = "legendary"
)

// rarityNames maps each tier to its canonical string form
var rarityNames = map[Rarity]string{
	RarityCommon:    RarityNameCommon,
	RarityRare:      RarityNameRare,
	RarityEpic:      RarityNameEpic,
	RarityLegendary: RarityNameLegendary,
}

// colorRarities is the fixed color-tag lookup. Any color not listed here
// resolves to Common.
var colorRarities = map[string]Rarity{
	"gold":   RarityLegendary,
	"purple": RarityEpic,
	"violet": RarityEpic,
	"blue":   RarityRare,
	"teal":   RarityRare,
	"green":  RarityCommon,
	"pink":   RarityCommon,
	"white":  RarityCommon,
}

// String returns the canonical name for the rarity
func (r Rarity) String() string {
	if name, ok := rarityNames[r]; ok {
		return name
	}
	return RarityNameCommon
}

// MarshalText implements encoding.TextMarshaler so rarities serialize as
// their names in JSON state and map keys
func (r Rarity) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *Rarity) UnmarshalText(text []byte) error {
	*r = ParseRarity(string(text))
	return nil
}

// ParseRarity resolves a rarity name; unknown names resolve to Common
func ParseRarity(name string) Rarity {
	for tier, n := range rarityNames {
		if n == name {
			return tier
		}
	}
	return RarityCommon
}

// RarityFromColor derives an item's rarity from its color tag.
// Unmapped colors default to Common.
func RarityFromColor(colorTag string) Rarity {
	if tier, ok := colorRarities[colorTag]; ok {
		return tier
	}
	return RarityCommon
}

// AllRarities returns the tiers in ascending order
func AllRarities() []Rarity {
	return []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}
}
