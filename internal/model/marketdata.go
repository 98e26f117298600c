package model

import (
	"time"

	"github.com/Norn-cloud/tag-scanner/internal/pricing"
)

// GoldPriceSnapshot is a cached set of per-karat spot prices. Snapshots are
// append-only; the most recent row wins.
type GoldPriceSnapshot struct {
	ID             string    `json:"id"`
	PricePerGram18 float64   `json:"pricePerGram18K"`
	PricePerGram21 float64   `json:"pricePerGram21K"`
	PricePerGram24 float64   `json:"pricePerGram24K"`
	Source         string    `json:"source"`
	FetchedAt      time.Time `json:"fetchedAt"`
	ManualOverride bool      `json:"manualOverride"`
}

// Prices returns the snapshot in the calculator's input form.
func (s GoldPriceSnapshot) Prices() pricing.GoldPrices {
	return pricing.GoldPrices{
		K18: s.PricePerGram18,
		K21: s.PricePerGram21,
		K24: s.PricePerGram24,
	}
}

// FxRateSnapshot is a cached USD to EGP exchange rate.
type FxRateSnapshot struct {
	ID             string    `json:"id"`
	UsdToEgp       float64   `json:"usdToEgp"`
	Source         string    `json:"source"`
	FetchedAt      time.Time `json:"fetchedAt"`
	ManualOverride bool      `json:"manualOverride"`
}

// PriceBoard is the combined market view served to the frontend: the latest
// gold and FX snapshots plus whether either is older than the configured
// maximum age.
type PriceBoard struct {
	Gold  *GoldPriceSnapshot `json:"gold"`
	Fx    *FxRateSnapshot    `json:"fx"`
	Stale bool               `json:"stale"`
}
