package request

// AddItemRequest is the body for attaching an item to a draft transaction.
type AddItemRequest struct {
	Origin       string   `json:"origin"`
	Condition    string   `json:"condition"`
	WeightGrams  float64  `json:"weightGrams"`
	Karat        int      `json:"karat"`
	CogsFromTag  float64  `json:"cogsFromTag"`
	CogsCurrency string   `json:"cogsCurrency"`
	Sku          string   `json:"sku"`
	Category     string   `json:"category"`
	IsLightPiece bool     `json:"isLightPiece"`
	Direction    string   `json:"direction"`
	FixFee       *float64 `json:"fixFee"`
	WeightAdded  float64  `json:"weightAddedGrams"`
}

// UpdateItemPriceRequest overrides the cashier-facing price of an item.
type UpdateItemPriceRequest struct {
	AdjustedPrice float64 `json:"adjustedPrice"`
}
