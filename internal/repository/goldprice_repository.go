package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Norn-cloud/tag-scanner/internal/apperrors"
	"github.com/Norn-cloud/tag-scanner/internal/model"
)

// GoldPriceRepository provides data access methods for the gold_price_cache
// table. Snapshots are append-only.
type GoldPriceRepository struct {
	db *sql.DB
}

// NewGoldPriceRepository creates a new GoldPriceRepository with the provided database connection.
func NewGoldPriceRepository(db *sql.DB) *GoldPriceRepository {
	return &GoldPriceRepository{db: db}
}

// Insert appends a new gold price snapshot.
func (r *GoldPriceRepository) Insert(s model.GoldPriceSnapshot) error {
	_, err := r.db.Exec(`
		INSERT INTO gold_price_cache (
			id, price_per_gram_18k, price_per_gram_21k, price_per_gram_24k,
			source, fetched_at, manual_override
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.PricePerGram18, s.PricePerGram21, s.PricePerGram24,
		s.Source, s.FetchedAt.UTC().Format("2006-01-02 15:04:05"), s.ManualOverride,
	)
	if err != nil {
		return fmt.Errorf("failed to insert gold price snapshot: %w", err)
	}
	return nil
}

// Latest returns the most recent gold price snapshot.
// Returns apperrors.ErrGoldPriceNotFound when the cache is empty.
func (r *GoldPriceRepository) Latest() (model.GoldPriceSnapshot, error) {
	row := r.db.QueryRow(`
		SELECT id, price_per_gram_18k, price_per_gram_21k, price_per_gram_24k,
		       source, fetched_at, manual_override
		FROM gold_price_cache
		ORDER BY fetched_at DESC, id DESC
		LIMIT 1`)

	var s model.GoldPriceSnapshot
	var fetchedAtStr string
	err := row.Scan(
		&s.ID,
		&s.PricePerGram18,
		&s.PricePerGram21,
		&s.PricePerGram24,
		&s.Source,
		&fetchedAtStr,
		&s.ManualOverride,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.GoldPriceSnapshot{}, apperrors.ErrGoldPriceNotFound
		}
		return model.GoldPriceSnapshot{}, fmt.Errorf("failed to query gold price snapshot: %w", err)
	}

	s.FetchedAt, err = ParseTime(fetchedAtStr)
	if err != nil {
		return model.GoldPriceSnapshot{}, fmt.Errorf("failed to parse fetched_at: %w", err)
	}

	return s, nil
}
