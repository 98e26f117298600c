package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Norn-cloud/tag-scanner/internal/api/request"
	"github.com/Norn-cloud/tag-scanner/internal/apperrors"
	"github.com/Norn-cloud/tag-scanner/internal/model"
	"github.com/Norn-cloud/tag-scanner/internal/pricing"
	"github.com/Norn-cloud/tag-scanner/internal/repository"
)

// TransactionService handles the draft transaction lifecycle: creating
// drafts with frozen market inputs, attaching and repricing items, and
// completing or cancelling the deal.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	itemRepo        *repository.ItemRepository
	calc            *pricing.Calculator
	marketData      *MarketDataService
}

// NewTransactionService creates a new TransactionService with the provided dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	itemRepo *repository.ItemRepository,
	calc *pricing.Calculator,
	marketData *MarketDataService,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		itemRepo:        itemRepo,
		calc:            calc,
		marketData:      marketData,
	}
}

// CreateTransaction opens a new draft. The current gold prices and FX rate
// are frozen onto the record so every item priced during the session sees
// the same market, and the record stays reproducible after spot moves.
func (s *TransactionService) CreateTransaction(req request.CreateTransactionRequest) (model.Transaction, error) {
	txType := pricing.TransactionType(req.Type)
	if !pricing.ValidTransactionType(txType) {
		return model.Transaction{}, apperrors.ErrInvalidTransactionType
	}

	cfg := s.calc.Config()
	deduction := cfg.Deduction.Default
	if req.DeductionPercent != nil {
		if *req.DeductionPercent >= 1 {
			return model.Transaction{}, apperrors.ErrDeductionOutOfRange
		}
		deduction = *req.DeductionPercent
	}
	multiplier := cfg.Markup.Default
	if req.MarkupMultiplier != nil {
		multiplier = *req.MarkupMultiplier
	}

	gold, fx, err := s.marketData.CurrentMarket()
	if err != nil {
		return model.Transaction{}, err
	}

	ctx := s.calc.NormalizeContext(pricing.Context{
		Type:             txType,
		GoldPrices:       gold.Prices(),
		FxRate:           fx.UsdToEgp,
		DeductionPercent: deduction,
		MarkupMultiplier: multiplier,
	})

	transaction := model.Transaction{
		ID:               uuid.New().String(),
		Type:             txType,
		Status:           model.StatusDraft,
		DeductionPercent: ctx.DeductionPercent,
		MarkupMultiplier: ctx.MarkupMultiplier,
		GoldPricePerGram: ctx.GoldPrices,
		FxRateUsdToEgp:   ctx.FxRate,
	}

	if err := s.transactionRepo.Create(transaction); err != nil {
		return model.Transaction{}, fmt.Errorf("failed to create transaction: %w", err)
	}

	return transaction, nil
}

// GetTransaction retrieves a transaction together with its items.
func (s *TransactionService) GetTransaction(id string) (model.TransactionWithItems, error) {
	transaction, err := s.transactionRepo.GetByID(id)
	if err != nil {
		return model.TransactionWithItems{}, err
	}

	items, err := s.itemRepo.ListByTransaction(id)
	if err != nil {
		return model.TransactionWithItems{}, err
	}

	return model.TransactionWithItems{Transaction: transaction, Items: items}, nil
}

// ListTransactions retrieves recent transactions, newest first, optionally
// filtered by status.
func (s *TransactionService) ListTransactions(status model.TransactionStatus) ([]model.Transaction, error) {
	return s.transactionRepo.List(status, 100)
}

// AddItem attaches an item to a draft, prices it against the frozen market
// inputs, and recalculates the transaction totals.
func (s *TransactionService) AddItem(transactionID string, req request.AddItemRequest) (model.Item, error) {
	transaction, err := s.transactionRepo.GetByID(transactionID)
	if err != nil {
		return model.Item{}, err
	}
	if transaction.Status != model.StatusDraft {
		return model.Item{}, apperrors.ErrTransactionNotDraft
	}

	item := model.Item{
		ID:            uuid.New().String(),
		TransactionID: transactionID,
		Origin:        pricing.Origin(req.Origin),
		Condition:     pricing.Condition(req.Condition),
		WeightGrams:   req.WeightGrams,
		Karat:         pricing.Karat(req.Karat),
		CogsFromTag:   req.CogsFromTag,
		CogsCurrency:  pricing.CogsCurrency(req.CogsCurrency),
		Sku:           req.Sku,
		Category:      pricing.Category(req.Category),
		IsLightPiece:  req.IsLightPiece,
		FixFee:        req.FixFee,
		WeightAdded:   req.WeightAdded,
		Direction:     pricing.Direction(req.Direction),
	}
	if item.Condition == "" {
		item.Condition = pricing.ConditionNew
	}
	if item.CogsCurrency == "" {
		item.CogsCurrency = pricing.CurrencyEGP
	}
	if item.Category == pricing.CategoryFix {
		item.Direction = pricing.DirectionOut
	}
	if item.Karat == 0 {
		item.Karat = s.calc.Config().DefaultKarat[item.Category]
	}

	item.Calculated = s.calc.ItemDisplayPrice(item.PricingItem(), transaction.PricingContext())
	item.Adjusted = item.Calculated

	if err := s.itemRepo.Create(item); err != nil {
		return model.Item{}, fmt.Errorf("failed to add item: %w", err)
	}

	if err := s.recalcTotals(transaction); err != nil {
		return model.Item{}, err
	}

	return item, nil
}

// UpdateItemPrice overrides the cashier-facing price of an item. Locked
// items and items on non-draft transactions are rejected.
func (s *TransactionService) UpdateItemPrice(itemID string, req request.UpdateItemPriceRequest) (model.Item, error) {
	item, transaction, err := s.mutableItem(itemID)
	if err != nil {
		return model.Item{}, err
	}
	if item.IsLocked {
		return model.Item{}, apperrors.ErrItemLocked
	}

	if err := s.itemRepo.UpdateAdjustedPrice(itemID, req.AdjustedPrice); err != nil {
		return model.Item{}, err
	}
	item.Adjusted = req.AdjustedPrice

	if err := s.recalcTotals(transaction); err != nil {
		return model.Item{}, err
	}

	return item, nil
}

// ToggleItemLock flips the lock flag on an item. Locking freezes the item
// against price edits and removal for the rest of the session.
func (s *TransactionService) ToggleItemLock(itemID string) (model.Item, error) {
	item, _, err := s.mutableItem(itemID)
	if err != nil {
		return model.Item{}, err
	}

	item.IsLocked = !item.IsLocked
	if err := s.itemRepo.SetLocked(itemID, item.IsLocked); err != nil {
		return model.Item{}, err
	}

	return item, nil
}

// RemoveItem deletes an item from a draft and recalculates the totals.
// Locked items cannot be removed.
func (s *TransactionService) RemoveItem(itemID string) error {
	item, transaction, err := s.mutableItem(itemID)
	if err != nil {
		return err
	}
	if item.IsLocked {
		return apperrors.ErrItemLocked
	}

	if err := s.itemRepo.Delete(itemID); err != nil {
		return err
	}

	return s.recalcTotals(transaction)
}

// CompleteTransaction finalizes a draft. A transaction must contain at least
// one item to complete; totals are recalculated one last time first.
func (s *TransactionService) CompleteTransaction(id string) (model.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(id)
	if err != nil {
		return model.Transaction{}, err
	}
	if transaction.Status != model.StatusDraft {
		return model.Transaction{}, apperrors.ErrTransactionNotDraft
	}

	items, err := s.itemRepo.ListByTransaction(id)
	if err != nil {
		return model.Transaction{}, err
	}
	if len(items) == 0 {
		return model.Transaction{}, apperrors.ErrTransactionEmpty
	}

	if err := s.recalcTotals(transaction); err != nil {
		return model.Transaction{}, err
	}

	if err := s.transactionRepo.UpdateStatus(id, model.StatusCompleted); err != nil {
		return model.Transaction{}, err
	}

	return s.transactionRepo.GetByID(id)
}

// CancelTransaction abandons a draft. Items stay attached for audit.
func (s *TransactionService) CancelTransaction(id string) (model.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(id)
	if err != nil {
		return model.Transaction{}, err
	}
	if transaction.Status != model.StatusDraft {
		return model.Transaction{}, apperrors.ErrTransactionNotDraft
	}

	if err := s.transactionRepo.UpdateStatus(id, model.StatusCancelled); err != nil {
		return model.Transaction{}, err
	}

	transaction.Status = model.StatusCancelled
	return transaction, nil
}

// QuoteTransaction prices the transaction's current items and classifies
// the margin risk without persisting anything.
func (s *TransactionService) QuoteTransaction(id string) (model.TransactionQuote, error) {
	transaction, err := s.transactionRepo.GetByID(id)
	if err != nil {
		return model.TransactionQuote{}, err
	}

	items, err := s.itemRepo.ListByTransaction(id)
	if err != nil {
		return model.TransactionQuote{}, err
	}

	ctx := transaction.PricingContext()
	priced := pricingItems(items)
	totals := s.calc.CalculateTransactionTotals(priced, ctx)
	return model.TransactionQuote{
		ItemPrices:   s.itemPrices(priced, ctx),
		Totals:       totals,
		WarningLevel: pricing.WarningLevel(totals, transaction.Type),
	}, nil
}

// QuoteStateless prices a hypothetical transaction entirely from the request
// body. Nothing is read from or written to the database.
func (s *TransactionService) QuoteStateless(req request.QuoteRequest) model.TransactionQuote {
	txType := pricing.TransactionType(req.Type)
	ctx := pricing.Context{
		Type: txType,
		GoldPrices: pricing.GoldPrices{
			K18: req.GoldPrice18K,
			K21: req.GoldPrice21K,
			K24: req.GoldPrice24K,
		},
		FxRate:           req.FxRateUsdToEgp,
		DeductionPercent: req.DeductionPercent,
		MarkupMultiplier: req.MarkupMultiplier,
	}

	items := make([]pricing.Item, len(req.Items))
	for i, qi := range req.Items {
		items[i] = pricing.Item{
			Origin:           pricing.Origin(qi.Origin),
			Condition:        pricing.Condition(qi.Condition),
			WeightGrams:      qi.WeightGrams,
			Karat:            pricing.Karat(qi.Karat),
			CogsFromTag:      qi.CogsFromTag,
			CogsCurrency:     pricing.CogsCurrency(qi.CogsCurrency),
			Category:         pricing.Category(qi.Category),
			IsLightPiece:     qi.IsLightPiece,
			Direction:        pricing.Direction(qi.Direction),
			FixFee:           qi.FixFee,
			WeightAddedGrams: qi.WeightAdded,
		}
	}

	totals := s.calc.CalculateTransactionTotals(items, ctx)
	return model.TransactionQuote{
		ItemPrices:   s.itemPrices(items, ctx),
		Totals:       totals,
		WarningLevel: pricing.WarningLevel(totals, txType),
	}
}

// itemPrices computes the display price for each quoted item, in input order.
func (s *TransactionService) itemPrices(items []pricing.Item, ctx pricing.Context) []float64 {
	prices := make([]float64, len(items))
	for i, item := range items {
		prices[i] = s.calc.ItemDisplayPrice(item, ctx)
	}
	return prices
}

// mutableItem loads an item and its parent transaction and verifies the
// transaction is still a draft.
func (s *TransactionService) mutableItem(itemID string) (model.Item, model.Transaction, error) {
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return model.Item{}, model.Transaction{}, err
	}

	transaction, err := s.transactionRepo.GetByID(item.TransactionID)
	if err != nil {
		return model.Item{}, model.Transaction{}, err
	}
	if transaction.Status != model.StatusDraft {
		return model.Item{}, model.Transaction{}, apperrors.ErrTransactionNotDraft
	}

	return item, transaction, nil
}

// recalcTotals rebuilds the aggregate figures from the transaction's current
// items. Revenue-side sums use the effective (possibly cashier-adjusted)
// prices; the cost basis always comes from the calculator so a generous
// discount shows up as shrinking margin rather than shrinking cost.
func (s *TransactionService) recalcTotals(transaction model.Transaction) error {
	items, err := s.itemRepo.ListByTransaction(transaction.ID)
	if err != nil {
		return err
	}

	ctx := transaction.PricingContext()

	if len(items) == 0 {
		return s.transactionRepo.UpdateTotals(transaction.ID, 0, 0, 0, 0, 0)
	}

	var totalIn, totalOut, outGoldValue, outCogs, inGoldValue, addedGoldCost float64
	for _, item := range items {
		pi := item.PricingItem()
		switch {
		case item.Category == pricing.CategoryFix:
			totalOut += item.EffectivePrice()
			addedGoldCost += pricing.GoldPriceFor(ctx.GoldPrices, item.Karat) * item.WeightAdded
		case item.Direction == pricing.DirectionOut:
			totalOut += item.EffectivePrice()
			outGoldValue += s.calc.ItemGoldValue(pi, ctx.GoldPrices)
			outCogs += s.calc.ItemCogs(pi, ctx.FxRate)
		default:
			totalIn += item.EffectivePrice()
			inGoldValue += s.calc.ItemGoldValue(pi, ctx.GoldPrices)
		}
	}

	var netAmount, margin, marginPercent float64
	switch transaction.Type {
	case pricing.TypeSell:
		netAmount = totalOut
		margin = totalOut - (outGoldValue + outCogs)
		if totalOut > 0 {
			marginPercent = margin / totalOut * 100
		}
	case pricing.TypeBuy:
		netAmount = -totalIn
		margin = inGoldValue - totalIn
		if inGoldValue > 0 {
			marginPercent = margin / inGoldValue * 100
		}
	case pricing.TypeTrade:
		netAmount = totalOut - totalIn
		margin = totalOut - totalIn - outCogs
		if totalOut > 0 {
			marginPercent = margin / totalOut * 100
		}
	case pricing.TypeFix:
		// Fee revenue is pure margin; the added gold passes through at cost.
		netAmount = totalOut
		margin = totalOut - addedGoldCost
		marginPercent = 100
	}

	return s.transactionRepo.UpdateTotals(transaction.ID, totalIn, totalOut, netAmount, margin, marginPercent)
}

func pricingItems(items []model.Item) []pricing.Item {
	out := make([]pricing.Item, len(items))
	for i, item := range items {
		out[i] = item.PricingItem()
	}
	return out
}
