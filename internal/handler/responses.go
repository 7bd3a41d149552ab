package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/petalworks/gardencore/internal/domain"
)

// Standard response types for consistent API responses

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to a pooled buffer first; headers are already sent, so an
	// encode failure can only be logged
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgInvalidRequest     = "Invalid request. Please check your inputs."
	ErrMsgInvalidRequestBody = "Invalid request body"
	ErrMsgMethodNotAllowed   = "Method not allowed"
	ErrMsgMissingQueryParam  = "Missing required query parameter: %s"

	ErrMsgNotEnoughResource   = "Not enough of that resource"
	ErrMsgUnknownResource     = "Unknown resource"
	ErrMsgItemNotFound        = "Item not found"
	ErrMsgInvalidCraftSelect  = "Invalid crafting selection"
	ErrMsgUnknownCategory     = "Unknown leaderboard category"
	ErrMsgUnknownPurchaseKind = "Unknown purchase kind"
	ErrMsgStateUnavailable    = "Saved state is temporarily unavailable"
)

// mapServiceError converts domain errors into HTTP status codes and messages
// safe to show to players
func mapServiceError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInsufficientResource):
		return http.StatusBadRequest, ErrMsgNotEnoughResource
	case errors.Is(err, domain.ErrUnknownResource):
		return http.StatusBadRequest, ErrMsgUnknownResource
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusBadRequest, ErrMsgItemNotFound
	case errors.Is(err, domain.ErrInvalidCraftInput):
		return http.StatusBadRequest, ErrMsgInvalidCraftSelect
	case errors.Is(err, domain.ErrUnknownCategory):
		return http.StatusBadRequest, ErrMsgUnknownCategory
	case errors.Is(err, domain.ErrUnknownPurchaseKind):
		return http.StatusBadRequest, ErrMsgUnknownPurchaseKind
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequest
	case errors.Is(err, domain.ErrPersistenceFailure):
		return http.StatusServiceUnavailable, ErrMsgStateUnavailable
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs the failure and writes the mapped error response
func respondServiceError(w http.ResponseWriter, log *slog.Logger, opName string, err error) {
	log.Error(opName+" failed", "error", err)
	status, msg := mapServiceError(err)
	respondError(w, status, msg)
}
