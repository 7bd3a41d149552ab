package leaderboard

import "github.com/petalworks/gardencore/internal/domain"

// DefaultOpponents is the fixed synthetic opponent pool. Scores are stable
// so the local player's movement is the only thing that changes a board.
func DefaultOpponents() []domain.Opponent {
	return []domain.Opponent{
		{ID: "opp_aurora", Username: "Aurora", SeedScore: 240, StreakScore: 45, TotalSpent: 920},
		{ID: "opp_sage", Username: "SageWhisper", SeedScore: 210, StreakScore: 61, TotalSpent: 750},
		{ID: "opp_fern", Username: "FernAndFlow", SeedScore: 185, StreakScore: 38, TotalSpent: 540},
		{ID: "opp_luna", Username: "LunaBloom", SeedScore: 170, StreakScore: 52, TotalSpent: 610},
		{ID: "opp_ivy", Username: "IvyIntention", SeedScore: 150, StreakScore: 29, TotalSpent: 320},
		{ID: "opp_wren", Username: "WrenOfDawn", SeedScore: 140, StreakScore: 73, TotalSpent: 0},
		{ID: "opp_moss", Username: "MossyMind", SeedScore: 120, StreakScore: 21, TotalSpent: 85},
		{ID: "opp_opal", Username: "OpalGrove", SeedScore: 95, StreakScore: 14, TotalSpent: 450},
		{ID: "opp_briar", Username: "BriarHeart", SeedScore: 70, StreakScore: 9, TotalSpent: 0},
		{ID: "opp_dew", Username: "MorningDew", SeedScore: 40, StreakScore: 4, TotalSpent: 15},
	}
}
