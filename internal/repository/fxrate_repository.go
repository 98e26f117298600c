package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Norn-cloud/tag-scanner/internal/apperrors"
	"github.com/Norn-cloud/tag-scanner/internal/model"
)

// FxRateRepository provides data access methods for the fx_rate_cache table.
type FxRateRepository struct {
	db *sql.DB
}

// NewFxRateRepository creates a new FxRateRepository with the provided database connection.
func NewFxRateRepository(db *sql.DB) *FxRateRepository {
	return &FxRateRepository{db: db}
}

// Insert appends a new FX rate snapshot.
func (r *FxRateRepository) Insert(s model.FxRateSnapshot) error {
	_, err := r.db.Exec(`
		INSERT INTO fx_rate_cache (id, usd_to_egp, source, fetched_at, manual_override)
		VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.UsdToEgp, s.Source, s.FetchedAt.UTC().Format("2006-01-02 15:04:05"), s.ManualOverride,
	)
	if err != nil {
		return fmt.Errorf("failed to insert fx rate snapshot: %w", err)
	}
	return nil
}

// Latest returns the most recent FX rate snapshot.
// Returns apperrors.ErrFxRateNotFound when the cache is empty.
func (r *FxRateRepository) Latest() (model.FxRateSnapshot, error) {
	row := r.db.QueryRow(`
		SELECT id, usd_to_egp, source, fetched_at, manual_override
		FROM fx_rate_cache
		ORDER BY fetched_at DESC, id DESC
		LIMIT 1`)

	var s model.FxRateSnapshot
	var fetchedAtStr string
	err := row.Scan(&s.ID, &s.UsdToEgp, &s.Source, &fetchedAtStr, &s.ManualOverride)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.FxRateSnapshot{}, apperrors.ErrFxRateNotFound
		}
		return model.FxRateSnapshot{}, fmt.Errorf("failed to query fx rate snapshot: %w", err)
	}

	s.FetchedAt, err = ParseTime(fetchedAtStr)
	if err != nil {
		return model.FxRateSnapshot{}, fmt.Errorf("failed to parse fetched_at: %w", err)
	}

	return s, nil
}
