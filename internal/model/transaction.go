package model

import (
	"time"

	"github.com/Norn-cloud/tag-scanner/internal/pricing"
)

// TransactionStatus tracks the draft lifecycle of a transaction.
type TransactionStatus string

// Transaction statuses. Items can only be modified while the transaction
// is a draft.
const (
	StatusDraft     TransactionStatus = "DRAFT"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusCancelled TransactionStatus = "CANCELLED"
)

// Transaction is a priced deal between the business and a customer. The
// market inputs (gold prices, FX rate) are frozen onto the record at creation
// so completed transactions stay reproducible after spot prices move.
type Transaction struct {
	ID               string                  `json:"id"`
	Type             pricing.TransactionType `json:"type"`
	Status           TransactionStatus       `json:"status"`
	DeductionPercent float64                 `json:"deductionPercent"`
	MarkupMultiplier float64                 `json:"markupMultiplier"`
	GoldPricePerGram pricing.GoldPrices      `json:"goldPricePerGram"`
	FxRateUsdToEgp   float64                 `json:"fxRateUsdToEgp"`
	TotalIn          float64                 `json:"totalIn"`
	TotalOut         float64                 `json:"totalOut"`
	NetAmount        float64                 `json:"netAmount"`
	TotalMargin      float64                 `json:"totalMargin"`
	MarginPercent    float64                 `json:"marginPercent"`
	CreatedAt        time.Time               `json:"createdAt,omitempty"`
}

// TransactionWithItems is a transaction enriched with its items for API
// responses.
type TransactionWithItems struct {
	Transaction
	Items []Item `json:"items"`
}

// TransactionQuote is the result of pricing a transaction's current items
// without persisting anything.
type TransactionQuote struct {
	ItemPrices   []float64                 `json:"itemPrices"`
	Totals       pricing.TransactionTotals `json:"totals"`
	WarningLevel pricing.RiskTier          `json:"warningLevel"`
}

// PricingContext converts the frozen market inputs back into a pricing
// context for recalculation.
func (t Transaction) PricingContext() pricing.Context {
	return pricing.Context{
		Type:             t.Type,
		GoldPrices:       t.GoldPricePerGram,
		FxRate:           t.FxRateUsdToEgp,
		DeductionPercent: t.DeductionPercent,
		MarkupMultiplier: t.MarkupMultiplier,
	}
}
