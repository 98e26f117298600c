package request

// UpsertCoinPriceRequest creates or replaces one row of the branded-coin
// price table.
type UpsertCoinPriceRequest struct {
	CategoryAr            string  `json:"categoryAr"`
	WeightGrams           float64 `json:"weightGrams"`
	MarkupEgp             float64 `json:"markupEgp"`
	CashbackPackagedEgp   float64 `json:"cashbackPackagedEgp"`
	CashbackUnpackagedEgp float64 `json:"cashbackUnpackagedEgp"`
	Karat                 int     `json:"karat"`
}
