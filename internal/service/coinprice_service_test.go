package service_test

import (
	"errors"
	"testing"

	"github.com/Norn-cloud/tag-scanner/internal/apperrors"
	"github.com/Norn-cloud/tag-scanner/internal/api/request"
	"github.com/Norn-cloud/tag-scanner/internal/pricing"
	"github.com/Norn-cloud/tag-scanner/internal/testutil"
)

// TestCoinPriceService_List tests listing the coin price table.
func TestCoinPriceService_List(t *testing.T) {
	t.Run("returns empty slice when table is empty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCoinPriceService(t, db)

		coins, err := svc.ListCoinPrices()

		if err != nil {
			t.Fatalf("ListCoinPrices() returned unexpected error: %v", err)
		}
		if len(coins) != 0 {
			t.Errorf("Expected empty slice, got %d rows", len(coins))
		}
	})

	t.Run("returns rows ordered by category then weight", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCoinPriceService(t, db)

		testutil.CreateCoinPrice(t, db, "جنيه", 8, 400)
		testutil.CreateCoinPrice(t, db, "جنيه", 4, 250)
		testutil.CreateCoinPrice(t, db, "اونصة", 31.1, 900)

		coins, err := svc.ListCoinPrices()

		if err != nil {
			t.Fatalf("ListCoinPrices() returned unexpected error: %v", err)
		}
		if len(coins) != 3 {
			t.Fatalf("Expected 3 rows, got %d", len(coins))
		}
		if coins[0].CategoryAr != "اونصة" {
			t.Errorf("Expected ounce category first, got %s", coins[0].CategoryAr)
		}
		if coins[1].WeightGrams != 4 || coins[2].WeightGrams != 8 {
			t.Errorf("Expected pound coins ordered by weight, got %v then %v",
				coins[1].WeightGrams, coins[2].WeightGrams)
		}
	})

	t.Run("filters by category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCoinPriceService(t, db)

		testutil.CreateCoinPrice(t, db, "جنيه", 8, 400)
		testutil.CreateCoinPrice(t, db, "اونصة", 31.1, 900)

		coins, err := svc.GetCategory("جنيه")

		if err != nil {
			t.Fatalf("GetCategory() returned unexpected error: %v", err)
		}
		if len(coins) != 1 || coins[0].CategoryAr != "جنيه" {
			t.Errorf("Expected only the pound coin, got %d rows", len(coins))
		}
	})
}

// TestCoinPriceService_Lookup tests exact (category, weight) lookups.
func TestCoinPriceService_Lookup(t *testing.T) {
	t.Run("finds an exact match", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCoinPriceService(t, db)
		created := testutil.CreateCoinPrice(t, db, "جنيه", 8, 400)

		coin, err := svc.LookupCoinPrice("جنيه", 8)

		if err != nil {
			t.Fatalf("LookupCoinPrice() returned unexpected error: %v", err)
		}
		if coin.ID != created.ID {
			t.Errorf("Expected coin %s, got %s", created.ID, coin.ID)
		}
		if coin.MarkupEgp != 400 {
			t.Errorf("Expected markup 400, got %v", coin.MarkupEgp)
		}
	})

	t.Run("returns not found for unknown pair", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCoinPriceService(t, db)
		testutil.CreateCoinPrice(t, db, "جنيه", 8, 400)

		_, err := svc.LookupCoinPrice("جنيه", 4)

		if !errors.Is(err, apperrors.ErrCoinPriceNotFound) {
			t.Errorf("Expected ErrCoinPriceNotFound, got %v", err)
		}
	})
}

// TestCoinPriceService_Upsert tests inserting and replacing table rows.
//
// WHY: The table is keyed by (category, weight); upserting an existing pair
// must update the row in place rather than duplicate it.
func TestCoinPriceService_Upsert(t *testing.T) {
	t.Run("inserts a new row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCoinPriceService(t, db)

		coin, err := svc.UpsertCoinPrice(request.UpsertCoinPriceRequest{
			CategoryAr:            "جنيه",
			WeightGrams:           8,
			MarkupEgp:             400,
			CashbackPackagedEgp:   100,
			CashbackUnpackagedEgp: 50,
			Karat:                 21,
		})

		if err != nil {
			t.Fatalf("UpsertCoinPrice() returned unexpected error: %v", err)
		}
		if coin.Karat != pricing.Karat21 {
			t.Errorf("Expected karat 21, got %d", coin.Karat)
		}
		testutil.AssertRowCount(t, db, "coin_price", 1)
	})

	t.Run("replaces an existing pair in place", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCoinPriceService(t, db)
		created := testutil.CreateCoinPrice(t, db, "جنيه", 8, 400)

		coin, err := svc.UpsertCoinPrice(request.UpsertCoinPriceRequest{
			CategoryAr:            "جنيه",
			WeightGrams:           8,
			MarkupEgp:             450,
			CashbackPackagedEgp:   120,
			CashbackUnpackagedEgp: 60,
			Karat:                 21,
		})

		if err != nil {
			t.Fatalf("UpsertCoinPrice() returned unexpected error: %v", err)
		}
		// The original row keeps its identity, only the figures change.
		if coin.ID != created.ID {
			t.Errorf("Expected updated row to keep ID %s, got %s", created.ID, coin.ID)
		}
		if coin.MarkupEgp != 450 {
			t.Errorf("Expected markup 450, got %v", coin.MarkupEgp)
		}
		testutil.AssertRowCount(t, db, "coin_price", 1)
	})
}
