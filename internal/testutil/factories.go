package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/Norn-cloud/tag-scanner/internal/model"
	"github.com/Norn-cloud/tag-scanner/internal/pricing"
)

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	// Simple creation with defaults
//	transaction := testutil.NewTransaction().Build(t, db)
//
//	// Customized transaction
//	transaction := testutil.NewTransaction().
//	    WithType(pricing.TypeBuy).
//	    Completed().
//	    Build(t, db)
type TransactionBuilder struct {
	ID               string
	Type             pricing.TransactionType
	Status           model.TransactionStatus
	DeductionPercent float64
	MarkupMultiplier float64
	GoldPrices       pricing.GoldPrices
	FxRate           float64
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{
		ID:               MakeID(),
		Type:             pricing.TypeSell,
		Status:           model.StatusDraft,
		DeductionPercent: 0.02,
		MarkupMultiplier: 1.0,
		GoldPrices:       pricing.GoldPrices{K18: 3200, K21: 3700, K24: 4200},
		FxRate:           50,
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithType sets the transaction type.
func (b *TransactionBuilder) WithType(t pricing.TransactionType) *TransactionBuilder {
	b.Type = t
	return b
}

// WithStatus sets the lifecycle status.
func (b *TransactionBuilder) WithStatus(status model.TransactionStatus) *TransactionBuilder {
	b.Status = status
	return b
}

// WithDeduction sets the deduction fraction.
func (b *TransactionBuilder) WithDeduction(d float64) *TransactionBuilder {
	b.DeductionPercent = d
	return b
}

// WithMultiplier sets the markup multiplier.
func (b *TransactionBuilder) WithMultiplier(m float64) *TransactionBuilder {
	b.MarkupMultiplier = m
	return b
}

// WithGoldPrices sets the frozen gold prices.
func (b *TransactionBuilder) WithGoldPrices(prices pricing.GoldPrices) *TransactionBuilder {
	b.GoldPrices = prices
	return b
}

// WithFxRate sets the frozen FX rate.
func (b *TransactionBuilder) WithFxRate(rate float64) *TransactionBuilder {
	b.FxRate = rate
	return b
}

// Completed marks the transaction as completed.
func (b *TransactionBuilder) Completed() *TransactionBuilder {
	b.Status = model.StatusCompleted
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO gold_transaction (
			id, type, status, deduction_percent, markup_multiplier,
			gold_price_18k, gold_price_21k, gold_price_24k, fx_rate_usd_egp
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, string(b.Type), string(b.Status), b.DeductionPercent, b.MarkupMultiplier,
		b.GoldPrices.K18, b.GoldPrices.K21, b.GoldPrices.K24, b.FxRate)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:               b.ID,
		Type:             b.Type,
		Status:           b.Status,
		DeductionPercent: b.DeductionPercent,
		MarkupMultiplier: b.MarkupMultiplier,
		GoldPricePerGram: b.GoldPrices,
		FxRateUsdToEgp:   b.FxRate,
	}
}

// ItemBuilder provides a fluent interface for creating test items.
//
// Example usage:
//
//	item := testutil.NewItem(transaction.ID).
//	    WithWeight(5.0).
//	    WithKarat(pricing.Karat21).
//	    Locked().
//	    Build(t, db)
type ItemBuilder struct {
	ID            string
	TransactionID string
	Origin        pricing.Origin
	Condition     pricing.Condition
	WeightGrams   float64
	Karat         pricing.Karat
	CogsFromTag   float64
	CogsCurrency  pricing.CogsCurrency
	Sku           string
	Category      pricing.Category
	IsLightPiece  bool
	FixFee        *float64
	WeightAdded   float64
	Calculated    float64
	Adjusted      float64
	IsLocked      bool
	Direction     pricing.Direction
}

// NewItem creates an ItemBuilder with sensible defaults: a new Egyptian
// 21k jewelry piece going out.
func NewItem(transactionID string) *ItemBuilder {
	return &ItemBuilder{
		ID:            MakeID(),
		TransactionID: transactionID,
		Origin:        pricing.OriginEgyptian,
		Condition:     pricing.ConditionNew,
		WeightGrams:   5.0,
		Karat:         pricing.Karat21,
		CogsCurrency:  pricing.CurrencyEGP,
		Category:      pricing.CategoryJewelry,
		Direction:     pricing.DirectionOut,
		Calculated:    19750,
		Adjusted:      19750,
	}
}

// WithWeight sets the weight in grams.
func (b *ItemBuilder) WithWeight(grams float64) *ItemBuilder {
	b.WeightGrams = grams
	return b
}

// WithKarat sets the karat.
func (b *ItemBuilder) WithKarat(k pricing.Karat) *ItemBuilder {
	b.Karat = k
	return b
}

// WithOrigin sets the origin.
func (b *ItemBuilder) WithOrigin(o pricing.Origin) *ItemBuilder {
	b.Origin = o
	return b
}

// WithCategory sets the category.
func (b *ItemBuilder) WithCategory(c pricing.Category) *ItemBuilder {
	b.Category = c
	return b
}

// WithDirection sets the direction.
func (b *ItemBuilder) WithDirection(d pricing.Direction) *ItemBuilder {
	b.Direction = d
	return b
}

// WithPrices sets the calculated and adjusted prices.
func (b *ItemBuilder) WithPrices(calculated, adjusted float64) *ItemBuilder {
	b.Calculated = calculated
	b.Adjusted = adjusted
	return b
}

// WithSku sets the SKU.
func (b *ItemBuilder) WithSku(sku string) *ItemBuilder {
	b.Sku = sku
	return b
}

// WithFixFee sets the repair fee for FIX items.
func (b *ItemBuilder) WithFixFee(fee float64) *ItemBuilder {
	b.FixFee = &fee
	return b
}

// Locked marks the item as locked.
func (b *ItemBuilder) Locked() *ItemBuilder {
	b.IsLocked = true
	return b
}

// Build creates the item in the database and returns it.
func (b *ItemBuilder) Build(t *testing.T, db *sql.DB) model.Item {
	t.Helper()

	query := `
		INSERT INTO item (
			id, transaction_id, origin, condition, weight_grams, karat,
			cogs_from_tag, cogs_currency, sku, category, is_light_piece,
			fix_fee, weight_added_grams, calculated_price, adjusted_price,
			is_locked, direction
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var cogsFromTag any
	if b.CogsFromTag > 0 {
		cogsFromTag = b.CogsFromTag
	}
	var sku any
	if b.Sku != "" {
		sku = b.Sku
	}
	var fixFee any
	if b.FixFee != nil {
		fixFee = *b.FixFee
	}

	_, err := db.Exec(query,
		b.ID, b.TransactionID, string(b.Origin), string(b.Condition), b.WeightGrams, int(b.Karat),
		cogsFromTag, string(b.CogsCurrency), sku, string(b.Category), b.IsLightPiece,
		fixFee, b.WeightAdded, b.Calculated, b.Adjusted,
		b.IsLocked, string(b.Direction))
	if err != nil {
		t.Fatalf("Failed to create test item: %v", err)
	}

	return model.Item{
		ID:            b.ID,
		TransactionID: b.TransactionID,
		Origin:        b.Origin,
		Condition:     b.Condition,
		WeightGrams:   b.WeightGrams,
		Karat:         b.Karat,
		CogsFromTag:   b.CogsFromTag,
		CogsCurrency:  b.CogsCurrency,
		Sku:           b.Sku,
		Category:      b.Category,
		IsLightPiece:  b.IsLightPiece,
		FixFee:        b.FixFee,
		WeightAdded:   b.WeightAdded,
		Calculated:    b.Calculated,
		Adjusted:      b.Adjusted,
		IsLocked:      b.IsLocked,
		Direction:     b.Direction,
	}
}

// Convenience functions

// CreateGoldPrice inserts a gold price snapshot fetched at the given time.
func CreateGoldPrice(t *testing.T, db *sql.DB, k18, k21, k24 float64, fetchedAt time.Time) model.GoldPriceSnapshot {
	t.Helper()

	snapshot := model.GoldPriceSnapshot{
		ID:             MakeID(),
		PricePerGram18: k18,
		PricePerGram21: k21,
		PricePerGram24: k24,
		Source:         "test",
		FetchedAt:      fetchedAt.UTC(),
	}

	_, err := db.Exec(`
		INSERT INTO gold_price_cache (
			id, price_per_gram_18k, price_per_gram_21k, price_per_gram_24k,
			source, fetched_at, manual_override
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		snapshot.ID, k18, k21, k24, snapshot.Source,
		snapshot.FetchedAt.Format("2006-01-02 15:04:05"), false)
	if err != nil {
		t.Fatalf("Failed to create test gold price: %v", err)
	}

	return snapshot
}

// CreateFxRate inserts an FX rate snapshot fetched at the given time.
func CreateFxRate(t *testing.T, db *sql.DB, rate float64, fetchedAt time.Time) model.FxRateSnapshot {
	t.Helper()

	snapshot := model.FxRateSnapshot{
		ID:        MakeID(),
		UsdToEgp:  rate,
		Source:    "test",
		FetchedAt: fetchedAt.UTC(),
	}

	_, err := db.Exec(`
		INSERT INTO fx_rate_cache (id, usd_to_egp, source, fetched_at, manual_override)
		VALUES (?, ?, ?, ?, ?)`,
		snapshot.ID, rate, snapshot.Source,
		snapshot.FetchedAt.Format("2006-01-02 15:04:05"), false)
	if err != nil {
		t.Fatalf("Failed to create test fx rate: %v", err)
	}

	return snapshot
}

// CreateMarket inserts fresh gold and FX snapshots, the minimum market state
// needed to open a draft transaction.
func CreateMarket(t *testing.T, db *sql.DB) (model.GoldPriceSnapshot, model.FxRateSnapshot) {
	t.Helper()
	now := time.Now().UTC()
	return CreateGoldPrice(t, db, 3200, 3700, 4200, now), CreateFxRate(t, db, 50, now)
}

// CreateCoinPrice inserts one row of the coin price table.
func CreateCoinPrice(t *testing.T, db *sql.DB, categoryAr string, weightGrams, markupEgp float64) model.CoinPrice {
	t.Helper()

	coin := model.CoinPrice{
		ID:                  MakeID(),
		CategoryAr:          categoryAr,
		WeightGrams:         weightGrams,
		MarkupEgp:           markupEgp,
		CashbackPackagedEgp: 100,
		CashbackUnpackedEgp: 50,
		Karat:               pricing.Karat21,
	}

	_, err := db.Exec(`
		INSERT INTO coin_price (
			id, category_ar, weight_grams, markup_egp,
			cashback_packaged_egp, cashback_unpackaged_egp, karat
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		coin.ID, coin.CategoryAr, coin.WeightGrams, coin.MarkupEgp,
		coin.CashbackPackagedEgp, coin.CashbackUnpackedEgp, int(coin.Karat))
	if err != nil {
		t.Fatalf("Failed to create test coin price: %v", err)
	}

	return coin
}
