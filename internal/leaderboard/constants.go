package leaderboard

import "time"

// TopRankCount is how many leading positions are spend-gated
const TopRankCount = 3

// Cache configuration
const (
	CacheSize = 8
	CacheTTL  = 30 * time.Second
)

// Error context messages for wrapped errors
const (
	ErrContextFailedToMarshal = "failed to marshal rankings"
)

// Log messages
const (
	LogMsgRankingsComputed = "Rankings computed"
	LogMsgEntryDemoted     = "Entry demoted below spend gate"
)

// PlayerUsername is the display name of the local player's entry
const PlayerUsername = "You"
