package marketdata

import "github.com/Norn-cloud/tag-scanner/internal/pricing"

// CurrencyResponse represents the raw JSON response from the currency API.
// The feed quotes everything against USD: usd.xau is ounces of gold per
// dollar, usd.egp is pounds per dollar.
type CurrencyResponse struct {
	Date string `json:"date"`
	USD  struct {
		Xau float64 `json:"xau"`
		Egp float64 `json:"egp"`
	} `json:"usd"`
}

// Quote is a validated market snapshot: per-karat gold prices in EGP per
// gram plus the USD to EGP rate, ready for caching.
type Quote struct {
	GoldPrices pricing.GoldPrices
	FxRate     float64
	Source     string
}
