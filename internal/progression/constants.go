package progression

// Error context messages for wrapped errors
const (
	ErrContextFailedToLoadState = "failed to load progression state"
	ErrContextFailedToMarshal   = "failed to marshal progression state"
	ErrContextNegativeXP        = "xp amount must not be negative"
)

// Log messages
const (
	LogMsgLevelUp          = "Level up"
	LogMsgComboBonus       = "Combo bonus awarded"
	LogMsgStreakAdvanced   = "Streak advanced"
	LogMsgStreakReset      = "Streak reset"
	LogMsgStateLoaded      = "Progression state loaded"
	LogMsgStateInitialized = "Progression state initialized fresh"
)
