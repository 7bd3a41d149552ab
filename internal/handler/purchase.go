package handler

import (
	"net/http"

	"github.com/petalworks/gardencore/internal/domain"
	"github.com/petalworks/gardencore/internal/logger"
	"github.com/petalworks/gardencore/internal/purchase"
)

// PurchaseConfirmedRequest carries a verified purchase from the payment
// platform. The engine trusts it; verification happened upstream.
type PurchaseConfirmedRequest struct {
	Kind     string  `json:"kind" validate:"required,purchasekind"`
	Amount   int     `json:"amount" validate:"required,gt=0"`
	PriceUSD float64 `json:"price_usd" validate:"gte=0"`
}

// PurchaseConfirmedResponse acknowledges a credited purchase
type PurchaseConfirmedResponse struct {
	Message string `json:"message"`
}

// HandlePurchaseConfirmed credits a confirmed purchase
func HandlePurchaseConfirmed(purchaseSvc purchase.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req PurchaseConfirmedRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Purchase confirmed"); err != nil {
			return
		}

		confirmation := domain.PurchaseConfirmation{
			Kind:     domain.PurchaseKind(req.Kind),
			Amount:   req.Amount,
			PriceUSD: req.PriceUSD,
		}
		if err := purchaseSvc.OnPurchaseConfirmed(r.Context(), confirmation); err != nil {
			respondServiceError(w, log, "Purchase confirmed", err)
			return
		}

		respondJSON(w, http.StatusOK, PurchaseConfirmedResponse{Message: "purchase credited"})
	}
}
