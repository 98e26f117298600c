package model

import "github.com/Norn-cloud/tag-scanner/internal/pricing"

// Item is a physical piece attached to a transaction. CalculatedPrice is the
// price the calculator produced; AdjustedPrice is what the cashier settled
// on (defaults to the calculated one). Locked items are frozen against price
// edits and removal.
type Item struct {
	ID            string               `json:"id"`
	TransactionID string               `json:"transactionId"`
	Origin        pricing.Origin       `json:"origin"`
	Condition     pricing.Condition    `json:"condition"`
	WeightGrams   float64              `json:"weightGrams"`
	Karat         pricing.Karat        `json:"karat"`
	CogsFromTag   float64              `json:"cogsFromTag,omitempty"`
	CogsCurrency  pricing.CogsCurrency `json:"cogsCurrency,omitempty"`
	Sku           string               `json:"sku,omitempty"`
	Category      pricing.Category     `json:"category"`
	IsLightPiece  bool                 `json:"isLightPiece"`
	FixFee        *float64             `json:"fixFee,omitempty"`
	WeightAdded   float64              `json:"weightAddedGrams,omitempty"`
	Calculated    float64              `json:"calculatedPrice"`
	Adjusted      float64              `json:"adjustedPrice"`
	IsLocked      bool                 `json:"isLocked"`
	Direction     pricing.Direction    `json:"direction"`
}

// PricingItem converts the persisted record into the calculator's input form.
func (i Item) PricingItem() pricing.Item {
	return pricing.Item{
		Origin:           i.Origin,
		Condition:        i.Condition,
		WeightGrams:      i.WeightGrams,
		Karat:            i.Karat,
		CogsFromTag:      i.CogsFromTag,
		CogsCurrency:     i.CogsCurrency,
		Category:         i.Category,
		IsLightPiece:     i.IsLightPiece,
		Direction:        i.Direction,
		FixFee:           i.FixFee,
		WeightAddedGrams: i.WeightAdded,
	}
}

// EffectivePrice is the price the transaction totals should use: the
// cashier's adjustment when present, otherwise the calculated price.
func (i Item) EffectivePrice() float64 {
	if i.Adjusted > 0 {
		return i.Adjusted
	}
	return i.Calculated
}
