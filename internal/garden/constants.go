package garden

// Log messages
const (
	LogMsgNurtured  = "Manifestation nurtured"
	LogMsgHarvested = "Bloom harvested"
	LogMsgCrafted   = "Seed crafted"
)
