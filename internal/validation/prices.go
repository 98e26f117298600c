package validation

import (
	"fmt"

	"github.com/Norn-cloud/tag-scanner/internal/api/request"
	"github.com/Norn-cloud/tag-scanner/internal/pricing"
)

// ValidateManualGoldPrice validates a manual gold price override. All three
// karat prices must be positive: a zero price would silently value items of
// that karat at nothing.
func ValidateManualGoldPrice(req request.ManualGoldPriceRequest) error {
	errors := make(map[string]string)

	if req.PricePerGram18K <= 0 {
		errors["pricePerGram18K"] = "pricePerGram18K must be positive"
	}
	if req.PricePerGram21K <= 0 {
		errors["pricePerGram21K"] = "pricePerGram21K must be positive"
	}
	if req.PricePerGram24K <= 0 {
		errors["pricePerGram24K"] = "pricePerGram24K must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateManualFxRate validates a manual FX rate override. The same
// plausibility window applies as for the live feed.
func ValidateManualFxRate(req request.ManualFxRateRequest) error {
	if req.UsdToEgp < 10 || req.UsdToEgp > 200 {
		return &Error{Fields: map[string]string{
			"usdToEgp": fmt.Sprintf("usdToEgp outside plausible range [10, 200]: %v", req.UsdToEgp),
		}}
	}
	return nil
}

// ValidateUpsertCoinPrice validates one row of the coin price table.
func ValidateUpsertCoinPrice(req request.UpsertCoinPriceRequest) error {
	errors := make(map[string]string)

	if req.CategoryAr == "" {
		errors["categoryAr"] = "categoryAr is required"
	}
	if req.WeightGrams <= 0 {
		errors["weightGrams"] = "weightGrams must be positive"
	}
	if req.MarkupEgp < 0 {
		errors["markupEgp"] = "markupEgp must not be negative"
	}
	if req.CashbackPackagedEgp < 0 {
		errors["cashbackPackagedEgp"] = "cashbackPackagedEgp must not be negative"
	}
	if req.CashbackUnpackagedEgp < 0 {
		errors["cashbackUnpackagedEgp"] = "cashbackUnpackagedEgp must not be negative"
	}
	if !pricing.ValidKarat(pricing.Karat(req.Karat)) {
		errors["karat"] = fmt.Sprintf("invalid karat: %d", req.Karat)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
