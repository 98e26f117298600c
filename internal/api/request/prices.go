package request

// ManualGoldPriceRequest sets per-karat gram prices by hand, bypassing the
// market feed. Used when the feed is down or the shop disagrees with spot.
type ManualGoldPriceRequest struct {
	PricePerGram18K float64 `json:"pricePerGram18K"`
	PricePerGram21K float64 `json:"pricePerGram21K"`
	PricePerGram24K float64 `json:"pricePerGram24K"`
}

// ManualFxRateRequest sets the USD to EGP rate by hand.
type ManualFxRateRequest struct {
	UsdToEgp float64 `json:"usdToEgp"`
}
