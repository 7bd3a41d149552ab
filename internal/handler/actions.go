package handler

import (
	"net/http"

	"github.com/petalworks/gardencore/internal/garden"
	"github.com/petalworks/gardencore/internal/logger"
)

// NurtureRequest asks to spend energy nurturing a manifestation
type NurtureRequest struct {
	Category string `json:"category" validate:"required,max=64"`
}

// HarvestRequest asks to collect a blooming manifestation
type HarvestRequest struct {
	Category string `json:"category" validate:"required,max=64"`
	ColorTag string `json:"color_tag" validate:"required,max=32"`
}

// CraftRequest asks to burn blooming items for a seed
type CraftRequest struct {
	ItemIDs []string `json:"item_ids" validate:"required,min=1,max=16,dive,required"`
}

// HandleNurture runs the nurture action
func HandleNurture(gardenSvc garden.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req NurtureRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Nurture"); err != nil {
			return
		}

		result, err := gardenSvc.Nurture(r.Context(), req.Category)
		if err != nil {
			respondServiceError(w, log, "Nurture", err)
			return
		}

		log.Info("Nurture succeeded", "category", req.Category, "xp_gained", result.XPGained)
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleHarvest runs the harvest action
func HandleHarvest(gardenSvc garden.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req HarvestRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Harvest"); err != nil {
			return
		}

		result, err := gardenSvc.Harvest(r.Context(), req.Category, req.ColorTag)
		if err != nil {
			respondServiceError(w, log, "Harvest", err)
			return
		}

		log.Info("Harvest succeeded", "item_id", result.Item.ID)
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleCraft runs the crafting action
func HandleCraft(gardenSvc garden.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CraftRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Craft"); err != nil {
			return
		}

		result, err := gardenSvc.Craft(r.Context(), req.ItemIDs)
		if err != nil {
			respondServiceError(w, log, "Craft", err)
			return
		}

		log.Info("Craft succeeded", "result", result.ResultRarity.String())
		respondJSON(w, http.StatusOK, result)
	}
}
