package domain

// RankingCategory selects which score feeds a leaderboard
type RankingCategory string

const (
	CategorySeeds  RankingCategory = "seeds"
	CategoryStreak RankingCategory = "streak"
)

// PlayerEntryID is the id of the real player's entry in every ranking
const PlayerEntryID = "user"

// SentinelRank marks an entry demoted out of the top three by the spend gate
// during the provisional walk. Final displayed ranks never contain it.
const SentinelRank = 999

// RankingEntry is one row of a ranked leaderboard view
type RankingEntry struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	Score      int     `json:"score"`
	TotalSpent float64 `json:"total_spent"`
	Rank       int     `json:"rank"`
}

// Opponent is a synthetic leaderboard opponent with stable scores
type Opponent struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	SeedScore   int     `json:"seed_score"`
	StreakScore int     `json:"streak_score"`
	TotalSpent  float64 `json:"total_spent"`
}
