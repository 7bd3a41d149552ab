package handler

import (
	"net/http"

	"github.com/petalworks/gardencore/internal/garden"
)

// HandleGetPlayer returns the player panel read model
func HandleGetPlayer(gardenSvc garden.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, gardenSvc.Player())
	}
}

// HandleGetInventory returns the inventory panel read model
func HandleGetInventory(gardenSvc garden.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, gardenSvc.Inventory())
	}
}

// HandleGetGoals returns achievements, quests and milestones together
func HandleGetGoals(gardenSvc garden.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, gardenSvc.Goals(r.Context()))
	}
}
