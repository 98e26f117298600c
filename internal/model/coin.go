package model

import "github.com/Norn-cloud/tag-scanner/internal/pricing"

// CoinPrice is a row in the branded-coin price table: a fixed markup and
// cashback schedule per (category, weight) pair, maintained by an admin.
// Categories are stored in Arabic as printed on the supplier's price sheet.
type CoinPrice struct {
	ID                  string        `json:"id"`
	CategoryAr          string        `json:"categoryAr"`
	WeightGrams         float64       `json:"weightGrams"`
	MarkupEgp           float64       `json:"markupEgp"`
	CashbackPackagedEgp float64       `json:"cashbackPackagedEgp"`
	CashbackUnpackedEgp float64       `json:"cashbackUnpackagedEgp"`
	Karat               pricing.Karat `json:"karat"`
}
