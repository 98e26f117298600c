package request

// CreateTransactionRequest is the body for creating a draft transaction.
// The deduction and markup sliders are optional; absent values fall back to
// the configured defaults before normalization.
type CreateTransactionRequest struct {
	Type             string   `json:"type"`
	DeductionPercent *float64 `json:"deductionPercent"`
	MarkupMultiplier *float64 `json:"markupMultiplier"`
}

// QuoteItem is one item in a stateless quote request. It mirrors the
// persisted item shape minus identity.
type QuoteItem struct {
	Origin       string   `json:"origin"`
	Condition    string   `json:"condition"`
	WeightGrams  float64  `json:"weightGrams"`
	Karat        int      `json:"karat"`
	CogsFromTag  float64  `json:"cogsFromTag"`
	CogsCurrency string   `json:"cogsCurrency"`
	Category     string   `json:"category"`
	IsLightPiece bool     `json:"isLightPiece"`
	Direction    string   `json:"direction"`
	FixFee       *float64 `json:"fixFee"`
	WeightAdded  float64  `json:"weightAddedGrams"`
}

// QuoteRequest prices a hypothetical transaction without touching the
// database. The caller supplies the full market context.
type QuoteRequest struct {
	Type             string      `json:"type"`
	GoldPrice18K     float64     `json:"goldPrice18K"`
	GoldPrice21K     float64     `json:"goldPrice21K"`
	GoldPrice24K     float64     `json:"goldPrice24K"`
	FxRateUsdToEgp   float64     `json:"fxRateUsdToEgp"`
	DeductionPercent float64     `json:"deductionPercent"`
	MarkupMultiplier float64     `json:"markupMultiplier"`
	Items            []QuoteItem `json:"items"`
}
