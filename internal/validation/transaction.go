package validation

import (
	"fmt"
	"strings"

	"github.com/Norn-cloud/tag-scanner/internal/api/request"
	"github.com/Norn-cloud/tag-scanner/internal/pricing"
)

// ValidateCreateTransaction validates a draft creation request.
//
// Required fields:
//   - type: Must be one of: SELL, BUY, TRADE, FIX
//
// Optional fields (validated if provided):
//   - deductionPercent: Must be a fraction in [0, 1). Values of 1 or more
//     are rejected rather than clamped because they almost always mean the
//     caller sent a percentage (2 for 2%) instead of a fraction (0.02).
//   - markupMultiplier: Must be non-negative
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	validateTransactionType(req.Type, errors)

	if req.DeductionPercent != nil {
		d := *req.DeductionPercent
		if d < 0 {
			errors["deductionPercent"] = "deductionPercent must not be negative"
		} else if d >= 1 {
			errors["deductionPercent"] = "deductionPercent is a fraction, not a percentage: expected a value below 1"
		}
	}

	if req.MarkupMultiplier != nil && *req.MarkupMultiplier < 0 {
		errors["markupMultiplier"] = "markupMultiplier must not be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateQuote validates a stateless quote request: the transaction type,
// slider ranges, and every item.
func ValidateQuote(req request.QuoteRequest) error {
	errors := make(map[string]string)

	validateTransactionType(req.Type, errors)

	if req.DeductionPercent < 0 {
		errors["deductionPercent"] = "deductionPercent must not be negative"
	} else if req.DeductionPercent >= 1 {
		errors["deductionPercent"] = "deductionPercent is a fraction, not a percentage: expected a value below 1"
	}

	if req.GoldPrice18K < 0 || req.GoldPrice21K < 0 || req.GoldPrice24K < 0 {
		errors["goldPrices"] = "gold prices must not be negative"
	}
	if req.FxRateUsdToEgp < 0 {
		errors["fxRateUsdToEgp"] = "fxRateUsdToEgp must not be negative"
	}

	for i, item := range req.Items {
		itemErrors := itemFieldErrors(item.Category, item.Direction, item.WeightGrams, item.CogsFromTag, item.FixFee, item.WeightAdded)
		// Stateless quotes never apply category defaults, so the karat must
		// be spelled out on every item.
		if !pricing.ValidKarat(pricing.Karat(item.Karat)) {
			itemErrors["karat"] = fmt.Sprintf("invalid karat: %d", item.Karat)
		}
		for field, msg := range itemErrors {
			errors[fmt.Sprintf("items[%d].%s", i, field)] = msg
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func validateTransactionType(t string, errors map[string]string) {
	if strings.TrimSpace(t) == "" {
		errors["type"] = "type is required"
	} else if !pricing.ValidTransactionType(pricing.TransactionType(t)) {
		errors["type"] = fmt.Sprintf("invalid type: %s", t)
	}
}
