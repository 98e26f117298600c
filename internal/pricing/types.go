package pricing

// Karat is a gold purity tier. Only 18, 21 and 24 are traded.
type Karat int

// Supported karat tiers.
const (
	Karat18 Karat = 18
	Karat21 Karat = 21
	Karat24 Karat = 24
)

// ValidKarat reports whether k is one of the traded purity tiers.
func ValidKarat(k Karat) bool {
	switch k {
	case Karat18, Karat21, Karat24:
		return true
	}
	return false
}

// Origin categorizes where a piece was cast, which determines the default
// cost-of-goods assumption when no tag cost is available.
type Origin string

// Item origins.
const (
	OriginItalian  Origin = "IT"
	OriginEgyptian Origin = "EG"
	OriginLux      Origin = "LX"
	OriginUsed     Origin = "USED"
)

// Condition is a second axis over origin; used pieces override the
// origin-based COGS and markup with flat per-gram averages.
type Condition string

// Item conditions.
const (
	ConditionNew  Condition = "NEW"
	ConditionUsed Condition = "USED"
)

// Category classifies the physical item. FIX items follow a separate
// fee-based pricing path.
type Category string

// Item categories.
const (
	CategoryJewelry Category = "JEWELRY"
	CategoryCoin    Category = "COIN"
	CategoryIngot   Category = "INGOT"
	CategoryFix     Category = "FIX"
)

// Direction states whether the business is acquiring the item (IN, customer
// sells it to us) or disposing of it (OUT, customer buys it).
type Direction string

// Item directions.
const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// TransactionType is the kind of deal being priced.
type TransactionType string

// Transaction types.
const (
	TypeSell  TransactionType = "SELL"
	TypeBuy   TransactionType = "BUY"
	TypeTrade TransactionType = "TRADE"
	TypeFix   TransactionType = "FIX"
)

// ValidTransactionType reports whether t is a known transaction type.
func ValidTransactionType(t TransactionType) bool {
	switch t {
	case TypeSell, TypeBuy, TypeTrade, TypeFix:
		return true
	}
	return false
}

// CogsCurrency is the currency a tag-stated cost is denominated in.
type CogsCurrency string

// Tag cost currencies.
const (
	CurrencyEGP CogsCurrency = "EGP"
	CurrencyUSD CogsCurrency = "USD"
)

// GoldPrices holds the current per-gram market price in EGP for each karat.
// A missing or non-positive entry degrades the valuation of items in that
// karat to zero; it never aborts a calculation.
type GoldPrices struct {
	K18 float64 `json:"k18"`
	K21 float64 `json:"k21"`
	K24 float64 `json:"k24"`
}

// Item is a single physical piece being priced.
type Item struct {
	Origin      Origin
	Condition   Condition
	WeightGrams float64
	Karat       Karat

	// CogsFromTag is the cost stated on the physical tag, per gram, in
	// CogsCurrency. Zero or negative means no tag cost is available and
	// the per-origin default applies.
	CogsFromTag  float64
	CogsCurrency CogsCurrency

	Category     Category
	IsLightPiece bool
	Direction    Direction

	// FixFee and WeightAddedGrams only apply to FIX-category items: a flat
	// repair fee plus any gold mass added during the repair, priced at spot.
	// A nil FixFee falls back to the configured default.
	FixFee           *float64
	WeightAddedGrams float64
}

// Context carries the market and business parameters a pricing call runs
// under. Entry points normalize it before use; never feed raw caller input
// into the primitives directly.
type Context struct {
	Type             TransactionType
	GoldPrices       GoldPrices
	FxRate           float64
	DeductionPercent float64
	MarkupMultiplier float64
}

// TransactionTotals is the aggregate result of pricing a set of items.
// All monetary amounts are EGP.
type TransactionTotals struct {
	TotalGoldValue float64 `json:"totalGoldValue"`
	TotalCogs      float64 `json:"totalCogs"`
	TotalMarkup    float64 `json:"totalMarkup"`
	TotalPremium   float64 `json:"totalPremium"`
	BasePrice      float64 `json:"basePrice"`
	AdjustedPrice  float64 `json:"adjustedPrice"`
	Floor          float64 `json:"floor"`
	TotalIn        float64 `json:"totalIn"`
	TotalOut       float64 `json:"totalOut"`
	NetAmount      float64 `json:"netAmount"`
	Margin         float64 `json:"margin"`
	MarginPercent  float64 `json:"marginPercent"`
}

// RiskTier drives the severity of the warning shown to the cashier.
type RiskTier string

// Risk tiers, from harmless to guaranteed loss.
const (
	TierSafe    RiskTier = "safe"
	TierWarning RiskTier = "warning"
	TierDanger  RiskTier = "danger"
	TierLoss    RiskTier = "loss"
)
