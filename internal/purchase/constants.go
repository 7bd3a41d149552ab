package purchase

// Error context messages for wrapped errors
const (
	ErrContextInvalidAmount = "purchase amount must be positive"
)

// Log messages
const (
	LogMsgPurchaseCredited = "Purchase credited"
)
