package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrItemNotFound indicates that an item with the given ID does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrGoldPriceNotFound indicates no gold price snapshot has been stored yet.
	ErrGoldPriceNotFound = errors.New("gold price not found")

	// ErrFxRateNotFound indicates no FX rate snapshot has been stored yet.
	ErrFxRateNotFound = errors.New("fx rate not found")

	// ErrCoinPriceNotFound indicates no coin price row matches the category/weight pair.
	ErrCoinPriceNotFound = errors.New("coin price not found")

	// ErrSettingNotFound indicates a system setting key has no value.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrTransactionNotDraft indicates a mutation was attempted on a
	// completed or cancelled transaction.
	ErrTransactionNotDraft = errors.New("transaction is not a draft")

	// ErrTransactionEmpty indicates an attempt to complete a transaction
	// that has no items.
	ErrTransactionEmpty = errors.New("transaction has no items")

	// ErrItemLocked indicates a price edit or removal was attempted on a
	// locked item.
	ErrItemLocked = errors.New("item is locked")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidKarat indicates a karat outside the traded set {18, 21, 24}.
	ErrInvalidKarat = errors.New("karat must be 18, 21, or 24")

	// ErrInvalidTransactionType indicates a type outside SELL/BUY/TRADE/FIX.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrDeductionOutOfRange indicates a deduction percent that is not a
	// decimal fraction (e.g. 0.02 for 2%).
	ErrDeductionOutOfRange = errors.New("deduction percent must be a decimal between 0 and 1")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These indicate that an operation failed, but not due to
// missing entities or validation issues.
var (
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToRetrieveItems        = errors.New("failed to retrieve items")
	ErrFailedToRetrievePrices       = errors.New("failed to retrieve prices")
	ErrFailedToRetrieveCoinPrices   = errors.New("failed to retrieve coin prices")
	ErrFailedToRefreshPrices        = errors.New("failed to refresh prices")
	ErrFailedToScanTag              = errors.New("failed to scan tag")
	ErrFailedToGetVersionInfo       = errors.New("failed to get version information")
)

// External data errors represent invalid or implausible data from upstream
// providers. The market-data layer rejects these rather than caching them.
var (
	// ErrPriceFeedInvalid indicates the currency API response was missing
	// required figures or contained non-finite values.
	ErrPriceFeedInvalid = errors.New("price feed response invalid")

	// ErrFxRateImplausible indicates the fetched USD/EGP rate fell outside
	// the sane range and was rejected.
	ErrFxRateImplausible = errors.New("fx rate outside plausible range")
)
