package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Ledger errors
	ErrMsgInsufficientResource = "insufficient resource"
	ErrMsgUnknownResource      = "unknown resource"

	// Crafting errors
	ErrMsgInvalidCraftInput = "invalid craft input"

	// Inventory errors
	ErrMsgItemNotFound = "item not found"

	// Goal errors
	ErrMsgUnknownEntry = "unknown entry"

	// Persistence errors
	ErrMsgPersistenceFailure = "persistence failure"

	// Leaderboard errors
	ErrMsgUnknownCategory = "unknown ranking category"

	// Purchase errors
	ErrMsgUnknownPurchaseKind = "unknown purchase kind"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Ledger errors
	ErrInsufficientResource = errors.New(ErrMsgInsufficientResource)
	ErrUnknownResource      = errors.New(ErrMsgUnknownResource)

	// Crafting errors
	ErrInvalidCraftInput = errors.New(ErrMsgInvalidCraftInput)

	// Inventory errors
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	// Goal errors
	ErrUnknownEntry = errors.New(ErrMsgUnknownEntry)

	// Persistence errors
	ErrPersistenceFailure = errors.New(ErrMsgPersistenceFailure)

	// Leaderboard errors
	ErrUnknownCategory = errors.New(ErrMsgUnknownCategory)

	// Purchase errors
	ErrUnknownPurchaseKind = errors.New(ErrMsgUnknownPurchaseKind)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
