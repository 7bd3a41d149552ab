package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/petalworks/gardencore/internal/domain"
	"github.com/petalworks/gardencore/internal/leaderboard"
	"github.com/petalworks/gardencore/internal/logger"
)

// LeaderboardResponse is the ranked view for one category
type LeaderboardResponse struct {
	Category domain.RankingCategory `json:"category"`
	Entries  []domain.RankingEntry  `json:"entries"`
}

// HandleGetLeaderboard returns the ranked view for the category path param
func HandleGetLeaderboard(leaderboardSvc leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		category := domain.RankingCategory(chi.URLParam(r, "category"))

		entries, err := leaderboardSvc.Rankings(r.Context(), category)
		if err != nil {
			respondServiceError(w, log, "Leaderboard", err)
			return
		}

		respondJSON(w, http.StatusOK, LeaderboardResponse{
			Category: category,
			Entries:  entries,
		})
	}
}
