// Package pricing implements the deterministic valuation core of the gold
// point-of-sale system. Every function here is a pure transformation over
// immutable inputs: no I/O, no shared state, safe to call from any goroutine.
//
// Data flows one direction: raw item + market inputs -> normalized context ->
// per-item valuation -> aggregation -> risk classification.
package pricing

import "math"

// Calculator evaluates the pricing rules under a fixed configuration.
type Calculator struct {
	cfg Config
}

// New returns a Calculator bound to the given configuration.
func New(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// Config returns the configuration the calculator was built with.
func (c *Calculator) Config() Config {
	return c.cfg
}

func clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}

func roundUp(v, nearest float64) float64 {
	if nearest <= 0 {
		return v
	}
	return math.Ceil(v/nearest) * nearest
}

func roundDown(v, nearest float64) float64 {
	if nearest <= 0 {
		return v
	}
	return math.Floor(v/nearest) * nearest
}

// GoldPriceFor returns the per-gram price for the given karat. A missing,
// non-positive or non-finite configured price yields 0, never an error:
// downstream values degrade to zero and the risk classifier flags the result.
func GoldPriceFor(prices GoldPrices, karat Karat) float64 {
	var price float64
	switch karat {
	case Karat18:
		price = prices.K18
	case Karat21:
		price = prices.K21
	case Karat24:
		price = prices.K24
	default:
		return 0
	}
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0
	}
	return price
}

// ValidateGoldPrices returns the karats whose configured price is missing or
// non-positive. An empty slice means the price set is usable.
func ValidateGoldPrices(prices GoldPrices) []Karat {
	var missing []Karat
	for _, k := range []Karat{Karat18, Karat21, Karat24} {
		if GoldPriceFor(prices, k) == 0 {
			missing = append(missing, k)
		}
	}
	return missing
}

// ItemGoldValue is the raw spot value of the item's gold content.
func (c *Calculator) ItemGoldValue(item Item, prices GoldPrices) float64 {
	if item.WeightGrams <= 0 {
		return 0
	}
	return GoldPriceFor(prices, item.Karat) * item.WeightGrams
}

// ItemCogs is the business's acquisition cost for the item's gold content.
// Used pieces take a flat per-gram average. Otherwise a tag-stated cost wins
// (converted from USD with the current FX rate when so marked), falling back
// to the per-origin default.
func (c *Calculator) ItemCogs(item Item, fxRate float64) float64 {
	if item.WeightGrams <= 0 {
		return 0
	}

	if item.Condition == ConditionUsed {
		return c.cfg.UsedAvgCogsEgp * item.WeightGrams
	}

	if item.CogsFromTag <= 0 {
		switch item.Origin {
		case OriginItalian:
			return c.cfg.ItalianCogsUsd * fxRate * item.WeightGrams
		case OriginLux:
			return c.cfg.LuxCogsEgp * item.WeightGrams
		default:
			return c.cfg.EgyptianCogsEgp * item.WeightGrams
		}
	}

	cogsEgp := item.CogsFromTag
	if item.CogsCurrency == CurrencyUSD {
		cogsEgp = item.CogsFromTag * fxRate
	}
	return cogsEgp * item.WeightGrams
}

// ItemMarkup is the premium added over gold value and COGS. Light pieces
// carry double the standard per-gram markup.
func (c *Calculator) ItemMarkup(item Item) float64 {
	if item.WeightGrams <= 0 {
		return 0
	}

	if item.Condition == ConditionUsed {
		return c.cfg.UsedAvgMarkupEgp * item.WeightGrams
	}

	markup := c.cfg.StandardMarkupEgp
	if item.IsLightPiece {
		markup *= c.cfg.LightPieceMarkupMultiplier
	}
	return markup * item.WeightGrams
}

// NormalizeContext clamps the user-adjustable inputs into their configured
// bounds. Idempotent; applied by every valuation entry point so a caller can
// never push prices outside the safe range.
func (c *Calculator) NormalizeContext(ctx Context) Context {
	ctx.DeductionPercent = clamp(ctx.DeductionPercent, c.cfg.Deduction.Min, c.cfg.Deduction.Max)
	ctx.MarkupMultiplier = clamp(ctx.MarkupMultiplier, c.cfg.Markup.Min, c.cfg.Markup.Max)
	return ctx
}

// ItemDisplayPrice computes the single price shown on an item card.
//
// Rounding direction is a business invariant, not a convenience: prices the
// business pays (IN) round down so we never overpay, prices it charges (OUT)
// round up so we never undercharge.
func (c *Calculator) ItemDisplayPrice(item Item, rawCtx Context) float64 {
	ctx := c.NormalizeContext(rawCtx)
	goldValue := c.ItemGoldValue(item, ctx.GoldPrices)

	if item.Category == CategoryFix {
		fee := c.cfg.Fix.DefaultEgp
		if item.FixFee != nil {
			fee = *item.FixFee
		}
		return fee + item.WeightAddedGrams*GoldPriceFor(ctx.GoldPrices, item.Karat)
	}

	if item.Direction == DirectionIn {
		deduction := ctx.DeductionPercent
		if ctx.Type == TypeTrade {
			deduction = 0
		}
		return roundDown(goldValue*(1-deduction), c.cfg.RoundNearest)
	}

	premium := c.ItemCogs(item, ctx.FxRate) + c.ItemMarkup(item)
	return roundUp(goldValue+premium*ctx.MarkupMultiplier, c.cfg.RoundNearest)
}

// CalculateTransactionTotals aggregates per-item valuations into the totals
// shown on the transaction summary. Items are partitioned by direction; the
// out side carries COGS and markup, the in side only gold value less the
// deduction. FIX transactions short-circuit into the fee-based path.
func (c *Calculator) CalculateTransactionTotals(items []Item, rawCtx Context) TransactionTotals {
	ctx := c.NormalizeContext(rawCtx)

	if len(items) == 0 {
		return TransactionTotals{}
	}

	var outGoldValue, outCogs, outMarkup, inGoldValue float64
	for _, item := range items {
		if item.Direction == DirectionOut {
			outGoldValue += c.ItemGoldValue(item, ctx.GoldPrices)
			outCogs += c.ItemCogs(item, ctx.FxRate)
			outMarkup += c.ItemMarkup(item)
		} else {
			inGoldValue += c.ItemGoldValue(item, ctx.GoldPrices)
		}
	}

	// Floor is the minimum defensible sale price: spot plus true cost, no
	// profit. Selling below it is a guaranteed loss.
	floor := roundUp(outGoldValue+outCogs, c.cfg.RoundNearest)
	adjustedMarkup := outMarkup * ctx.MarkupMultiplier
	adjustedOutPrice := roundUp(floor+adjustedMarkup, c.cfg.RoundNearest)

	deduction := ctx.DeductionPercent
	if ctx.Type == TypeTrade || ctx.Type == TypeBuy {
		deduction = 0
	}
	inPrice := roundDown(inGoldValue*(1-deduction), c.cfg.RoundNearest)

	totalOut := adjustedOutPrice
	totalIn := inPrice

	var margin, marginPercent float64

	switch ctx.Type {
	case TypeSell:
		margin = adjustedMarkup
		if totalOut > 0 {
			marginPercent = margin / totalOut * 100
		}
	case TypeBuy:
		margin = inGoldValue - totalIn
		if inGoldValue > 0 {
			marginPercent = margin / inGoldValue * 100
		}
	case TypeTrade:
		margin = totalOut - totalIn - outCogs
		if totalOut > 0 {
			marginPercent = margin / totalOut * 100
		}
	case TypeFix:
		return c.fixTotals(items, ctx)
	}

	return TransactionTotals{
		TotalGoldValue: outGoldValue + inGoldValue,
		TotalCogs:      outCogs,
		TotalMarkup:    outMarkup,
		TotalPremium:   outCogs + outMarkup,
		BasePrice:      floor + outMarkup,
		AdjustedPrice:  adjustedOutPrice,
		Floor:          floor,
		TotalIn:        totalIn,
		TotalOut:       totalOut,
		NetAmount:      totalOut - totalIn,
		Margin:         margin,
		MarginPercent:  marginPercent,
	}
}

// fixTotals prices a repair transaction: a flat fee per item plus any gold
// mass added during the repair at spot. The added-gold cost appears on both
// sides so the net margin is exactly the fee, making the fee pure margin by
// definition (marginPercent pinned at 100).
func (c *Calculator) fixTotals(items []Item, ctx Context) TransactionTotals {
	var fixFees, addedGoldCost float64
	for _, item := range items {
		fee := c.cfg.Fix.DefaultEgp
		if item.FixFee != nil {
			fee = *item.FixFee
		}
		fixFees += fee
		addedGoldCost += GoldPriceFor(ctx.GoldPrices, item.Karat) * item.WeightAddedGrams
	}

	return TransactionTotals{
		TotalGoldValue: addedGoldCost,
		TotalCogs:      0,
		TotalMarkup:    fixFees,
		TotalPremium:   fixFees,
		BasePrice:      fixFees + addedGoldCost,
		AdjustedPrice:  fixFees + addedGoldCost,
		Floor:          addedGoldCost,
		TotalIn:        0,
		TotalOut:       fixFees + addedGoldCost,
		NetAmount:      fixFees + addedGoldCost,
		Margin:         fixFees,
		MarginPercent:  100,
	}
}

// WarningLevel classifies already-computed totals into a risk tier.
//
// BUY never signals loss: the margin there is the deduction kept, which
// cannot go negative in this model. FIX is fee-based and always safe.
func WarningLevel(totals TransactionTotals, txType TransactionType) RiskTier {
	switch txType {
	case TypeBuy:
		switch {
		case totals.MarginPercent < 1:
			return TierDanger
		case totals.MarginPercent < 2:
			return TierWarning
		default:
			return TierSafe
		}
	case TypeFix:
		return TierSafe
	}

	switch {
	case totals.Margin <= 0:
		return TierLoss
	case totals.MarginPercent < 1:
		return TierDanger
	case totals.MarginPercent < 3:
		return TierWarning
	default:
		return TierSafe
	}
}
