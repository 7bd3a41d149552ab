package crafting

// RollRange is the exclusive upper bound of a craft roll; rolls are uniform
// in [0, RollRange)
const RollRange = 100.0

// Error context messages for wrapped errors
const (
	ErrContextWrongItemCount = "wrong item count"
	ErrContextNoOddsRow      = "no odds row for dominant rarity"
)

// Log messages
const (
	LogMsgCraftCompleted = "Craft completed"
	LogMsgCraftRejected  = "Craft rejected"
)
