package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Norn-cloud/tag-scanner/internal/apperrors"
	"github.com/Norn-cloud/tag-scanner/internal/model"
	"github.com/Norn-cloud/tag-scanner/internal/pricing"
)

// CoinPriceRepository provides data access methods for the coin_price table.
type CoinPriceRepository struct {
	db *sql.DB
}

// NewCoinPriceRepository creates a new CoinPriceRepository with the provided database connection.
func NewCoinPriceRepository(db *sql.DB) *CoinPriceRepository {
	return &CoinPriceRepository{db: db}
}

const coinPriceColumns = `
	id, category_ar, weight_grams, markup_egp,
	cashback_packaged_egp, cashback_unpackaged_egp, karat
`

// List retrieves the full coin price table, grouped by category.
func (r *CoinPriceRepository) List() ([]model.CoinPrice, error) {
	rows, err := r.db.Query(`
		SELECT ` + coinPriceColumns + `
		FROM coin_price
		ORDER BY category_ar, weight_grams`)
	if err != nil {
		return nil, fmt.Errorf("failed to query coin prices: %w", err)
	}
	defer rows.Close()

	return collectCoinPrices(rows)
}

// GetByCategory retrieves all weights for a single category.
func (r *CoinPriceRepository) GetByCategory(categoryAr string) ([]model.CoinPrice, error) {
	rows, err := r.db.Query(`
		SELECT `+coinPriceColumns+`
		FROM coin_price
		WHERE category_ar = ?
		ORDER BY weight_grams`, categoryAr)
	if err != nil {
		return nil, fmt.Errorf("failed to query coin prices: %w", err)
	}
	defer rows.Close()

	return collectCoinPrices(rows)
}

// Lookup retrieves the single row matching a (category, weight) pair.
// Returns apperrors.ErrCoinPriceNotFound when no row matches.
func (r *CoinPriceRepository) Lookup(categoryAr string, weightGrams float64) (model.CoinPrice, error) {
	row := r.db.QueryRow(`
		SELECT `+coinPriceColumns+`
		FROM coin_price
		WHERE category_ar = ? AND weight_grams = ?`, categoryAr, weightGrams)

	c, err := scanCoinPrice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.CoinPrice{}, apperrors.ErrCoinPriceNotFound
		}
		return model.CoinPrice{}, fmt.Errorf("failed to query coin price: %w", err)
	}
	return c, nil
}

// Upsert inserts or replaces the row for a (category, weight) pair.
func (r *CoinPriceRepository) Upsert(c model.CoinPrice) error {
	_, err := r.db.Exec(`
		INSERT INTO coin_price (
			id, category_ar, weight_grams, markup_egp,
			cashback_packaged_egp, cashback_unpackaged_egp, karat
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (category_ar, weight_grams) DO UPDATE SET
			markup_egp = excluded.markup_egp,
			cashback_packaged_egp = excluded.cashback_packaged_egp,
			cashback_unpackaged_egp = excluded.cashback_unpackaged_egp,
			karat = excluded.karat`,
		c.ID, c.CategoryAr, c.WeightGrams, c.MarkupEgp,
		c.CashbackPackagedEgp, c.CashbackUnpackedEgp, int(c.Karat),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert coin price: %w", err)
	}
	return nil
}

func collectCoinPrices(rows *sql.Rows) ([]model.CoinPrice, error) {
	prices := make([]model.CoinPrice, 0)
	for rows.Next() {
		c, err := scanCoinPrice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan coin price row: %w", err)
		}
		prices = append(prices, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating coin prices: %w", err)
	}

	return prices, nil
}

func scanCoinPrice(row rowScanner) (model.CoinPrice, error) {
	var c model.CoinPrice
	var karat int

	err := row.Scan(
		&c.ID,
		&c.CategoryAr,
		&c.WeightGrams,
		&c.MarkupEgp,
		&c.CashbackPackagedEgp,
		&c.CashbackUnpackedEgp,
		&karat,
	)
	if err != nil {
		return model.CoinPrice{}, err
	}

	c.Karat = pricing.Karat(karat)
	return c, nil
}
