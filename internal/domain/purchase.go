package domain

// PurchaseKind identifies a confirmed in-app purchase product.
// The payment platform verifies the purchase; the engine only credits it.
type PurchaseKind string

const (
	PurchaseGemPack     PurchaseKind = "gem_pack"
	PurchaseEnergyPack  PurchaseKind = "energy_pack"
	PurchaseSeedPack    PurchaseKind = "seed_pack"
	PurchaseBoosterPack PurchaseKind = "booster_pack"
)

// PurchaseConfirmation is the opaque success signal from the payment platform
type PurchaseConfirmation struct {
	Kind     PurchaseKind `json:"kind"`
	Amount   int          `json:"amount"`
	PriceUSD float64      `json:"price_usd"`
}
