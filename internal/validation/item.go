package validation

import (
	"fmt"
	"strings"

	"github.com/Norn-cloud/tag-scanner/internal/api/request"
	"github.com/Norn-cloud/tag-scanner/internal/pricing"
)

// ValidateAddItem validates an item creation request.
//
// Required fields:
//   - category: Must be one of: JEWELRY, COIN, INGOT, FIX
//   - direction: Must be IN or OUT (not required for FIX items)
//   - weightGrams: Must be positive for non-FIX items
//   - karat: Must be one of: 18, 21, 24, or omitted to take the category default
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateAddItem(req request.AddItemRequest) error {
	errors := itemFieldErrors(req.Category, req.Direction, req.WeightGrams, req.CogsFromTag, req.FixFee, req.WeightAdded)

	// Karat zero means "not specified"; the service fills in the category
	// default (18 for jewelry, 21 for coins, 24 for ingots).
	if req.Karat != 0 && !pricing.ValidKarat(pricing.Karat(req.Karat)) {
		errors["karat"] = fmt.Sprintf("invalid karat: %d", req.Karat)
	}

	if req.CogsCurrency != "" &&
		req.CogsCurrency != string(pricing.CurrencyEGP) &&
		req.CogsCurrency != string(pricing.CurrencyUSD) {
		errors["cogsCurrency"] = fmt.Sprintf("invalid currency: %s", req.CogsCurrency)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateItemPrice validates a price override request.
func ValidateUpdateItemPrice(req request.UpdateItemPriceRequest) error {
	if req.AdjustedPrice < 0 {
		return &Error{Fields: map[string]string{
			"adjustedPrice": "adjustedPrice must not be negative",
		}}
	}
	return nil
}

// itemFieldErrors holds the checks shared between persisted items and
// stateless quote items.
func itemFieldErrors(category, direction string, weightGrams, cogsFromTag float64, fixFee *float64, weightAdded float64) map[string]string {
	errors := make(map[string]string)

	cat := pricing.Category(category)
	if strings.TrimSpace(category) == "" {
		errors["category"] = "category is required"
	}

	if cat == pricing.CategoryFix {
		if fixFee != nil && *fixFee < 0 {
			errors["fixFee"] = "fixFee must not be negative"
		}
		if weightAdded < 0 {
			errors["weightAddedGrams"] = "weightAddedGrams must not be negative"
		}
	} else {
		if direction != string(pricing.DirectionIn) && direction != string(pricing.DirectionOut) {
			errors["direction"] = fmt.Sprintf("invalid direction: %s", direction)
		}
		if weightGrams <= 0 {
			errors["weightGrams"] = "weightGrams must be positive"
		}
	}

	if cogsFromTag < 0 {
		errors["cogsFromTag"] = "cogsFromTag must not be negative"
	}

	return errors
}
