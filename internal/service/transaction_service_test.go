package service_test

import (
	"errors"
	"math"
	"testing"

	"github.com/Norn-cloud/tag-scanner/internal/api/request"
	"github.com/Norn-cloud/tag-scanner/internal/apperrors"
	"github.com/Norn-cloud/tag-scanner/internal/model"
	"github.com/Norn-cloud/tag-scanner/internal/pricing"
	"github.com/Norn-cloud/tag-scanner/internal/testutil"
)

func floatPtr(v float64) *float64 { return &v }

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// TestTransactionService_CreateTransaction tests opening draft transactions.
//
// WHY: Creating a draft freezes the current market onto the record, which is
// what makes completed transactions reproducible after spot moves. This
// verifies the freeze, the slider defaults and clamping, and the refusal to
// open a draft with no cached market.
func TestTransactionService_CreateTransaction(t *testing.T) {
	t.Run("creates draft with frozen market and defaults", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		testutil.CreateMarket(t, db)

		// Execute
		transaction, err := svc.CreateTransaction(request.CreateTransactionRequest{Type: "SELL"})

		// Assert
		if err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}

		if transaction.Status != model.StatusDraft {
			t.Errorf("Expected status DRAFT, got %s", transaction.Status)
		}
		if transaction.GoldPricePerGram.K21 != 3700 {
			t.Errorf("Expected frozen 21k price 3700, got %v", transaction.GoldPricePerGram.K21)
		}
		if transaction.FxRateUsdToEgp != 50 {
			t.Errorf("Expected frozen FX rate 50, got %v", transaction.FxRateUsdToEgp)
		}
		if transaction.DeductionPercent != 0.02 {
			t.Errorf("Expected default deduction 0.02, got %v", transaction.DeductionPercent)
		}
		if transaction.MarkupMultiplier != 1.0 {
			t.Errorf("Expected default multiplier 1.0, got %v", transaction.MarkupMultiplier)
		}

		// Verify persistence
		stored, err := svc.GetTransaction(transaction.ID)
		if err != nil {
			t.Fatalf("GetTransaction() returned unexpected error: %v", err)
		}
		if stored.ID != transaction.ID {
			t.Errorf("Stored transaction ID mismatch: %s != %s", stored.ID, transaction.ID)
		}
	})

	t.Run("clamps sliders into configured bounds", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		testutil.CreateMarket(t, db)

		// Execute: deduction above the max, multiplier below the min
		transaction, err := svc.CreateTransaction(request.CreateTransactionRequest{
			Type:             "BUY",
			DeductionPercent: floatPtr(0.5),
			MarkupMultiplier: floatPtr(0.1),
		})

		// Assert
		if err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}
		if transaction.DeductionPercent != 0.03 {
			t.Errorf("Expected deduction clamped to 0.03, got %v", transaction.DeductionPercent)
		}
		if transaction.MarkupMultiplier != 0.5 {
			t.Errorf("Expected multiplier clamped to 0.5, got %v", transaction.MarkupMultiplier)
		}
	})

	t.Run("rejects invalid transaction type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		testutil.CreateMarket(t, db)

		_, err := svc.CreateTransaction(request.CreateTransactionRequest{Type: "LOAN"})

		if !errors.Is(err, apperrors.ErrInvalidTransactionType) {
			t.Errorf("Expected ErrInvalidTransactionType, got %v", err)
		}
	})

	t.Run("rejects deduction given as whole percentage", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		testutil.CreateMarket(t, db)

		// A cashier typing "2" instead of "0.02" must be caught, not clamped.
		_, err := svc.CreateTransaction(request.CreateTransactionRequest{
			Type:             "SELL",
			DeductionPercent: floatPtr(2),
		})

		if !errors.Is(err, apperrors.ErrDeductionOutOfRange) {
			t.Errorf("Expected ErrDeductionOutOfRange, got %v", err)
		}
	})

	t.Run("fails when no market is cached", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		_, err := svc.CreateTransaction(request.CreateTransactionRequest{Type: "SELL"})

		if !errors.Is(err, apperrors.ErrGoldPriceNotFound) {
			t.Errorf("Expected ErrGoldPriceNotFound, got %v", err)
		}
	})
}

// TestTransactionService_ListTransactions tests the transaction listing.
func TestTransactionService_ListTransactions(t *testing.T) {
	t.Run("returns empty slice when no transactions exist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		transactions, err := svc.ListTransactions("")

		if err != nil {
			t.Fatalf("ListTransactions() returned unexpected error: %v", err)
		}
		if len(transactions) != 0 {
			t.Errorf("Expected empty slice, got %d transactions", len(transactions))
		}
	})

	t.Run("filters by status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		draft := testutil.NewTransaction().Build(t, db)
		completed := testutil.NewTransaction().Completed().Build(t, db)

		drafts, err := svc.ListTransactions(model.StatusDraft)
		if err != nil {
			t.Fatalf("ListTransactions(DRAFT) returned unexpected error: %v", err)
		}
		if len(drafts) != 1 || drafts[0].ID != draft.ID {
			t.Errorf("Expected only the draft transaction, got %d results", len(drafts))
		}

		all, err := svc.ListTransactions("")
		if err != nil {
			t.Fatalf("ListTransactions() returned unexpected error: %v", err)
		}
		if len(all) != 2 {
			t.Errorf("Expected 2 transactions, got %d", len(all))
		}

		found := false
		for _, tx := range all {
			if tx.ID == completed.ID {
				found = true
			}
		}
		if !found {
			t.Error("Completed transaction not found in unfiltered list")
		}
	})
}

// TestTransactionService_AddItem tests attaching and pricing items.
//
// WHY: AddItem is where the pricing rules meet persistence. The expected
// figures are hand-computed from the default rule set against the builder's
// frozen market (21k at 3700 EGP/g, FX 50).
func TestTransactionService_AddItem(t *testing.T) {
	t.Run("prices a sell item and updates totals", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		transaction := testutil.NewTransaction().Build(t, db)

		// Execute: 5g of new Egyptian 21k jewelry going out.
		// Gold 5*3700=18500, COGS 5*100=500, markup 5*150=750 -> 19750.
		item, err := svc.AddItem(transaction.ID, request.AddItemRequest{
			Origin:      "EG",
			WeightGrams: 5,
			Karat:       21,
			Category:    "JEWELRY",
			Direction:   "OUT",
		})

		// Assert
		if err != nil {
			t.Fatalf("AddItem() returned unexpected error: %v", err)
		}
		if item.Calculated != 19750 {
			t.Errorf("Expected calculated price 19750, got %v", item.Calculated)
		}
		if item.Adjusted != item.Calculated {
			t.Errorf("Expected adjusted price to default to calculated, got %v", item.Adjusted)
		}
		if item.Condition != pricing.ConditionNew {
			t.Errorf("Expected condition to default to NEW, got %s", item.Condition)
		}

		stored, err := svc.GetTransaction(transaction.ID)
		if err != nil {
			t.Fatalf("GetTransaction() returned unexpected error: %v", err)
		}
		if stored.TotalOut != 19750 {
			t.Errorf("Expected totalOut 19750, got %v", stored.TotalOut)
		}
		// Margin is revenue over gold value plus COGS: 19750 - 19000.
		if stored.TotalMargin != 750 {
			t.Errorf("Expected margin 750, got %v", stored.TotalMargin)
		}
		if !approxEqual(stored.MarginPercent, 750.0/19750*100) {
			t.Errorf("Expected margin percent %.4f, got %v", 750.0/19750*100, stored.MarginPercent)
		}
	})

	t.Run("applies default karat for the category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		transaction := testutil.NewTransaction().Build(t, db)

		item, err := svc.AddItem(transaction.ID, request.AddItemRequest{
			Origin:      "EG",
			WeightGrams: 10,
			Category:    "INGOT",
			Direction:   "OUT",
		})

		if err != nil {
			t.Fatalf("AddItem() returned unexpected error: %v", err)
		}
		if item.Karat != pricing.Karat24 {
			t.Errorf("Expected ingot to default to 24k, got %d", item.Karat)
		}
	})

	t.Run("forces repair items to OUT and prices fee plus added gold", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		transaction := testutil.NewTransaction().WithType(pricing.TypeFix).Build(t, db)

		// Fee 300 plus 2g of 21k added at 3700 -> 300 + 7400 = 7700.
		item, err := svc.AddItem(transaction.ID, request.AddItemRequest{
			Category:    "FIX",
			Karat:       21,
			Direction:   "IN",
			FixFee:      floatPtr(300),
			WeightAdded: 2,
		})

		if err != nil {
			t.Fatalf("AddItem() returned unexpected error: %v", err)
		}
		if item.Direction != pricing.DirectionOut {
			t.Errorf("Expected repair item forced to OUT, got %s", item.Direction)
		}
		if item.Calculated != 7700 {
			t.Errorf("Expected calculated price 7700, got %v", item.Calculated)
		}

		stored, err := svc.GetTransaction(transaction.ID)
		if err != nil {
			t.Fatalf("GetTransaction() returned unexpected error: %v", err)
		}
		// The added gold passes through at cost; the fee is pure margin.
		if stored.TotalMargin != 300 {
			t.Errorf("Expected margin 300, got %v", stored.TotalMargin)
		}
		if stored.MarginPercent != 100 {
			t.Errorf("Expected margin percent 100, got %v", stored.MarginPercent)
		}
	})

	t.Run("rejects items on non-draft transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		transaction := testutil.NewTransaction().Completed().Build(t, db)

		_, err := svc.AddItem(transaction.ID, request.AddItemRequest{
			Origin:      "EG",
			WeightGrams: 5,
			Karat:       21,
			Category:    "JEWELRY",
			Direction:   "OUT",
		})

		if !errors.Is(err, apperrors.ErrTransactionNotDraft) {
			t.Errorf("Expected ErrTransactionNotDraft, got %v", err)
		}
	})

	t.Run("returns not found for unknown transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		_, err := svc.AddItem(testutil.MakeID(), request.AddItemRequest{
			Origin:      "EG",
			WeightGrams: 5,
			Karat:       21,
			Category:    "JEWELRY",
			Direction:   "OUT",
		})

		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound, got %v", err)
		}
	})
}

// TestTransactionService_UpdateItemPrice tests cashier price overrides.
//
// WHY: The adjusted price drives the revenue side of the totals while the
// cost basis stays fixed, so a discount must show up as shrinking margin.
func TestTransactionService_UpdateItemPrice(t *testing.T) {
	t.Run("override shrinks the margin, not the cost", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		transaction := testutil.NewTransaction().Build(t, db)
		item := testutil.NewItem(transaction.ID).Build(t, db)

		// Execute: discount from 19750 down to the 19000 cost floor.
		updated, err := svc.UpdateItemPrice(item.ID, request.UpdateItemPriceRequest{AdjustedPrice: 19000})

		// Assert
		if err != nil {
			t.Fatalf("UpdateItemPrice() returned unexpected error: %v", err)
		}
		if updated.Adjusted != 19000 {
			t.Errorf("Expected adjusted price 19000, got %v", updated.Adjusted)
		}

		stored, err := svc.GetTransaction(transaction.ID)
		if err != nil {
			t.Fatalf("GetTransaction() returned unexpected error: %v", err)
		}
		if stored.TotalOut != 19000 {
			t.Errorf("Expected totalOut 19000, got %v", stored.TotalOut)
		}
		if stored.TotalMargin != 0 {
			t.Errorf("Expected margin 0 at the cost floor, got %v", stored.TotalMargin)
		}
	})

	t.Run("rejects locked items", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		transaction := testutil.NewTransaction().Build(t, db)
		item := testutil.NewItem(transaction.ID).Locked().Build(t, db)

		_, err := svc.UpdateItemPrice(item.ID, request.UpdateItemPriceRequest{AdjustedPrice: 20000})

		if !errors.Is(err, apperrors.ErrItemLocked) {
			t.Errorf("Expected ErrItemLocked, got %v", err)
		}
	})

	t.Run("rejects items on completed transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		transaction := testutil.NewTransaction().Completed().Build(t, db)
		item := testutil.NewItem(transaction.ID).Build(t, db)

		_, err := svc.UpdateItemPrice(item.ID, request.UpdateItemPriceRequest{AdjustedPrice: 20000})

		if !errors.Is(err, apperrors.ErrTransactionNotDraft) {
			t.Errorf("Expected ErrTransactionNotDraft, got %v", err)
		}
	})
}

// TestTransactionService_ToggleItemLock tests the lock flag lifecycle.
func TestTransactionService_ToggleItemLock(t *testing.T) {
	t.Run("locks and unlocks an item", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		transaction := testutil.NewTransaction().Build(t, db)
		item := testutil.NewItem(transaction.ID).Build(t, db)

		locked, err := svc.ToggleItemLock(item.ID)
		if err != nil {
			t.Fatalf("ToggleItemLock() returned unexpected error: %v", err)
		}
		if !locked.IsLocked {
			t.Error("Expected item to be locked after first toggle")
		}

		unlocked, err := svc.ToggleItemLock(item.ID)
		if err != nil {
			t.Fatalf("ToggleItemLock() returned unexpected error: %v", err)
		}
		if unlocked.IsLocked {
			t.Error("Expected item to be unlocked after second toggle")
		}
	})

	t.Run("returns not found for unknown item", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		_, err := svc.ToggleItemLock(testutil.MakeID())

		if !errors.Is(err, apperrors.ErrItemNotFound) {
			t.Errorf("Expected ErrItemNotFound, got %v", err)
		}
	})
}

// TestTransactionService_RemoveItem tests item removal and total rebuilds.
func TestTransactionService_RemoveItem(t *testing.T) {
	t.Run("removes item and recalculates totals", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		transaction := testutil.NewTransaction().Build(t, db)
		keep := testutil.NewItem(transaction.ID).Build(t, db)
		remove := testutil.NewItem(transaction.ID).WithPrices(5000, 5000).Build(t, db)

		// Execute
		if err := svc.RemoveItem(remove.ID); err != nil {
			t.Fatalf("RemoveItem() returned unexpected error: %v", err)
		}

		// Assert
		stored, err := svc.GetTransaction(transaction.ID)
		if err != nil {
			t.Fatalf("GetTransaction() returned unexpected error: %v", err)
		}
		if len(stored.Items) != 1 || stored.Items[0].ID != keep.ID {
			t.Fatalf("Expected only the kept item to remain, got %d items", len(stored.Items))
		}
		if stored.TotalOut != keep.Adjusted {
			t.Errorf("Expected totalOut %v after removal, got %v", keep.Adjusted, stored.TotalOut)
		}

		testutil.AssertRowCount(t, db, "item", 1)
	})

	t.Run("rejects locked items", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		transaction := testutil.NewTransaction().Build(t, db)
		item := testutil.NewItem(transaction.ID).Locked().Build(t, db)

		err := svc.RemoveItem(item.ID)

		if !errors.Is(err, apperrors.ErrItemLocked) {
			t.Errorf("Expected ErrItemLocked, got %v", err)
		}
		testutil.AssertRowCount(t, db, "item", 1)
	})
}

// TestTransactionService_CompleteTransaction tests draft finalization.
func TestTransactionService_CompleteTransaction(t *testing.T) {
	t.Run("completes a draft with items", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		transaction := testutil.NewTransaction().Build(t, db)
		testutil.NewItem(transaction.ID).Build(t, db)

		completed, err := svc.CompleteTransaction(transaction.ID)

		if err != nil {
			t.Fatalf("CompleteTransaction() returned unexpected error: %v", err)
		}
		if completed.Status != model.StatusCompleted {
			t.Errorf("Expected status COMPLETED, got %s", completed.Status)
		}
		if completed.TotalOut != 19750 {
			t.Errorf("Expected final totalOut 19750, got %v", completed.TotalOut)
		}
	})

	t.Run("rejects empty drafts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		transaction := testutil.NewTransaction().Build(t, db)

		_, err := svc.CompleteTransaction(transaction.ID)

		if !errors.Is(err, apperrors.ErrTransactionEmpty) {
			t.Errorf("Expected ErrTransactionEmpty, got %v", err)
		}
	})

	t.Run("rejects completing twice", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		transaction := testutil.NewTransaction().Build(t, db)
		testutil.NewItem(transaction.ID).Build(t, db)

		if _, err := svc.CompleteTransaction(transaction.ID); err != nil {
			t.Fatalf("First CompleteTransaction() returned unexpected error: %v", err)
		}

		_, err := svc.CompleteTransaction(transaction.ID)
		if !errors.Is(err, apperrors.ErrTransactionNotDraft) {
			t.Errorf("Expected ErrTransactionNotDraft, got %v", err)
		}
	})
}

// TestTransactionService_CancelTransaction tests draft abandonment.
func TestTransactionService_CancelTransaction(t *testing.T) {
	t.Run("cancels a draft and keeps its items", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		transaction := testutil.NewTransaction().Build(t, db)
		testutil.NewItem(transaction.ID).Build(t, db)

		cancelled, err := svc.CancelTransaction(transaction.ID)

		if err != nil {
			t.Fatalf("CancelTransaction() returned unexpected error: %v", err)
		}
		if cancelled.Status != model.StatusCancelled {
			t.Errorf("Expected status CANCELLED, got %s", cancelled.Status)
		}

		// Items stay attached for audit.
		testutil.AssertRowCount(t, db, "item", 1)
	})

	t.Run("rejects cancelling a completed transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		transaction := testutil.NewTransaction().Completed().Build(t, db)

		_, err := svc.CancelTransaction(transaction.ID)

		if !errors.Is(err, apperrors.ErrTransactionNotDraft) {
			t.Errorf("Expected ErrTransactionNotDraft, got %v", err)
		}
	})
}

// TestTransactionService_QuoteTransaction tests the non-persisting quote.
func TestTransactionService_QuoteTransaction(t *testing.T) {
	t.Run("quotes a sell draft as safe", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		transaction := testutil.NewTransaction().Build(t, db)
		testutil.NewItem(transaction.ID).Build(t, db)

		quote, err := svc.QuoteTransaction(transaction.ID)

		if err != nil {
			t.Fatalf("QuoteTransaction() returned unexpected error: %v", err)
		}
		if quote.Totals.AdjustedPrice != 19750 {
			t.Errorf("Expected adjusted price 19750, got %v", quote.Totals.AdjustedPrice)
		}
		if len(quote.ItemPrices) != 1 || quote.ItemPrices[0] != 19750 {
			t.Errorf("Expected item prices [19750], got %v", quote.ItemPrices)
		}
		// Markup 750 on 19750 is just under 4% margin.
		if quote.WarningLevel != pricing.TierSafe {
			t.Errorf("Expected safe tier, got %s", quote.WarningLevel)
		}
	})

	t.Run("quoting does not persist totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		transaction := testutil.NewTransaction().Build(t, db)
		testutil.NewItem(transaction.ID).Build(t, db)

		if _, err := svc.QuoteTransaction(transaction.ID); err != nil {
			t.Fatalf("QuoteTransaction() returned unexpected error: %v", err)
		}

		stored, err := svc.GetTransaction(transaction.ID)
		if err != nil {
			t.Fatalf("GetTransaction() returned unexpected error: %v", err)
		}
		if stored.TotalOut != 0 {
			t.Errorf("Expected stored totals untouched, got totalOut %v", stored.TotalOut)
		}
	})
}

// TestTransactionService_QuoteStateless tests the pure what-if quote.
//
// WHY: The stateless quote powers the calculator screen before a draft
// exists. It must classify risk the same way the persisted path does.
func TestTransactionService_QuoteStateless(t *testing.T) {
	baseRequest := func() request.QuoteRequest {
		return request.QuoteRequest{
			Type:             "SELL",
			GoldPrice18K:     3200,
			GoldPrice21K:     3700,
			GoldPrice24K:     4200,
			FxRateUsdToEgp:   50,
			DeductionPercent: 0.02,
			MarkupMultiplier: 1.0,
			Items: []request.QuoteItem{{
				Origin:      "EG",
				Condition:   "NEW",
				WeightGrams: 5,
				Karat:       21,
				Category:    "JEWELRY",
				Direction:   "OUT",
			}},
		}
	}

	t.Run("standard sell quotes safe", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		quote := svc.QuoteStateless(baseRequest())

		if quote.Totals.AdjustedPrice != 19750 {
			t.Errorf("Expected adjusted price 19750, got %v", quote.Totals.AdjustedPrice)
		}
		if len(quote.ItemPrices) != 1 || quote.ItemPrices[0] != 19750 {
			t.Errorf("Expected item prices [19750], got %v", quote.ItemPrices)
		}
		if quote.WarningLevel != pricing.TierSafe {
			t.Errorf("Expected safe tier, got %s", quote.WarningLevel)
		}
	})

	t.Run("heavy discount quotes warning", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		// Multiplier at the minimum halves the markup: 375 over a total of
		// 19380, just under 2% margin.
		req := baseRequest()
		req.MarkupMultiplier = 0.5

		quote := svc.QuoteStateless(req)

		if quote.Totals.AdjustedPrice != 19380 {
			t.Errorf("Expected adjusted price 19380, got %v", quote.Totals.AdjustedPrice)
		}
		if quote.WarningLevel != pricing.TierWarning {
			t.Errorf("Expected warning tier, got %s", quote.WarningLevel)
		}
	})

	t.Run("buy with no deduction quotes danger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		req := baseRequest()
		req.Type = "BUY"
		req.Items[0].Direction = "IN"

		quote := svc.QuoteStateless(req)

		// Buy margins come from the deduction, which aggregation zeroes
		// for BUY, so the quote flags the deal as danger rather than loss.
		if quote.Totals.Margin != 0 {
			t.Errorf("Expected zero margin, got %v", quote.Totals.Margin)
		}
		if quote.WarningLevel != pricing.TierDanger {
			t.Errorf("Expected danger tier, got %s", quote.WarningLevel)
		}
	})

	t.Run("empty item list quotes zero totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		req := baseRequest()
		req.Items = nil

		quote := svc.QuoteStateless(req)

		if quote.Totals.TotalOut != 0 || quote.Totals.TotalIn != 0 {
			t.Errorf("Expected zero totals, got out=%v in=%v", quote.Totals.TotalOut, quote.Totals.TotalIn)
		}
		if len(quote.ItemPrices) != 0 {
			t.Errorf("Expected no item prices, got %v", quote.ItemPrices)
		}
	})
}
