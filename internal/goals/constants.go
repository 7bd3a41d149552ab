package goals

// Engine kind labels, used in metrics and logs
const (
	KindAchievement = "achievement"
	KindQuest       = "quest"
	KindMilestone   = "milestone"
)

// Error context messages for wrapped errors
const (
	ErrContextFailedToLoadState = "failed to load goal state"
	ErrContextFailedToMarshal   = "failed to marshal goal state"
	ErrContextPoolTooSmall      = "quest pool smaller than active quest count"
)

// Log messages
const (
	LogMsgEntryUnlocked    = "Goal entry unlocked"
	LogMsgRewardApplied    = "Goal reward applied"
	LogMsgQuestsExpired    = "Quests expired, regenerating"
	LogMsgStateLoaded      = "Goal state loaded"
	LogMsgStateInitialized = "Goal state initialized fresh"
)
