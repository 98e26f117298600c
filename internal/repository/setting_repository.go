package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Norn-cloud/tag-scanner/internal/apperrors"
)

// SettingRepository provides data access methods for the system_setting
// key/value table.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get retrieves a setting value by key.
// Returns apperrors.ErrSettingNotFound when the key is absent.
func (r *SettingRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM system_setting WHERE "key" = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperrors.ErrSettingNotFound
		}
		return "", fmt.Errorf("failed to query setting: %w", err)
	}
	return value, nil
}

// Set inserts or replaces a setting value.
func (r *SettingRepository) Set(id, key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO system_setting (id, "key", value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT ("key") DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP`,
		id, key, value)
	if err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}
	return nil
}
