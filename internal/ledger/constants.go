package ledger

// Error context messages for wrapped errors
const (
	ErrContextFailedToLoadState = "failed to load ledger state"
	ErrContextFailedToMarshal   = "failed to marshal ledger state"
	ErrContextNegativeAmount    = "amount must not be negative"
)

// Log messages
const (
	LogMsgDebitRejected    = "Debit rejected, insufficient balance"
	LogMsgNegativeSpend    = "Ignoring negative spend amount, totalSpent is monotonic"
	LogMsgStateLoaded      = "Ledger state loaded"
	LogMsgStateInitialized = "Ledger state initialized fresh"
)
