package pricing

import "time"

// Bounds describes the allowed range for a user-adjustable input along with
// the value used when the caller supplies nothing.
type Bounds struct {
	Default float64
	Min     float64
	Max     float64
}

// FixFees holds the flat service fee bounds for repair (FIX) items, in EGP.
type FixFees struct {
	MinEgp     float64
	MaxEgp     float64
	DefaultEgp float64
}

// Config holds every business parameter the pricing calculator depends on.
// It is injected into the Calculator rather than read from globals so the
// core stays pure and independently testable. Rule set v1.
type Config struct {
	// Default per-gram cost of goods assumed when an item carries no tag
	// cost. Italian-origin pieces are quoted in USD and converted with the
	// context FX rate; Egyptian and LX pieces are quoted in EGP.
	ItalianCogsUsd  float64
	EgyptianCogsEgp float64
	LuxCogsEgp      float64

	// StandardMarkupEgp is the per-gram markup on new pieces. Light pieces
	// carry a higher relative markup via LightPieceMarkupMultiplier.
	StandardMarkupEgp          float64
	LightPieceMarkupMultiplier float64

	// Used gold skips the per-origin tables entirely and is priced with
	// flat per-gram averages.
	UsedAvgCogsEgp   float64
	UsedAvgMarkupEgp float64

	// Deduction is the handling percentage withheld when buying gold in.
	// Markup bounds the cashier-facing markup multiplier slider.
	Deduction Bounds
	Markup    Bounds

	Fix FixFees

	// RoundNearest is the granularity displayed prices snap to. Prices the
	// business pays round down to it, prices it charges round up.
	RoundNearest float64

	// GoldPriceMaxAge is how old a cached spot price may be before the
	// market-data layer considers it stale.
	GoldPriceMaxAge time.Duration

	// DefaultKarat maps an item category to the karat pre-selected for it.
	DefaultKarat map[Category]Karat
}

// DefaultConfig returns the canonical rule set used in production.
func DefaultConfig() Config {
	return Config{
		ItalianCogsUsd:  50,
		EgyptianCogsEgp: 100,
		LuxCogsEgp:      120,

		StandardMarkupEgp:          150,
		LightPieceMarkupMultiplier: 2.0,

		UsedAvgCogsEgp:   150,
		UsedAvgMarkupEgp: 100,

		Deduction: Bounds{Default: 0.02, Min: 0.01, Max: 0.03},
		Markup:    Bounds{Default: 1.0, Min: 0.5, Max: 1.5},

		Fix: FixFees{MinEgp: 250, MaxEgp: 500, DefaultEgp: 350},

		RoundNearest: 10,

		GoldPriceMaxAge: 24 * time.Hour,

		DefaultKarat: map[Category]Karat{
			CategoryJewelry: Karat18,
			CategoryCoin:    Karat21,
			CategoryIngot:   Karat24,
		},
	}
}
