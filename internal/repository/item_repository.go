package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Norn-cloud/tag-scanner/internal/apperrors"
	"github.com/Norn-cloud/tag-scanner/internal/model"
	"github.com/Norn-cloud/tag-scanner/internal/pricing"
)

// ItemRepository provides data access methods for the item table.
type ItemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new ItemRepository with the provided database connection.
func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `
	id, transaction_id, origin, condition, weight_grams, karat,
	cogs_from_tag, cogs_currency, sku, category, is_light_piece,
	fix_fee, weight_added_grams, calculated_price, adjusted_price,
	is_locked, direction
`

// Create inserts a new item record.
func (r *ItemRepository) Create(i model.Item) error {
	var cogsFromTag sql.NullFloat64
	if i.CogsFromTag > 0 {
		cogsFromTag = sql.NullFloat64{Float64: i.CogsFromTag, Valid: true}
	}
	var sku sql.NullString
	if i.Sku != "" {
		sku = sql.NullString{String: i.Sku, Valid: true}
	}
	var fixFee sql.NullFloat64
	if i.FixFee != nil {
		fixFee = sql.NullFloat64{Float64: *i.FixFee, Valid: true}
	}

	_, err := r.db.Exec(`
		INSERT INTO item (
			id, transaction_id, origin, condition, weight_grams, karat,
			cogs_from_tag, cogs_currency, sku, category, is_light_piece,
			fix_fee, weight_added_grams, calculated_price, adjusted_price,
			is_locked, direction
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		i.ID, i.TransactionID, string(i.Origin), string(i.Condition), i.WeightGrams, int(i.Karat),
		cogsFromTag, string(i.CogsCurrency), sku, string(i.Category), i.IsLightPiece,
		fixFee, i.WeightAdded, i.Calculated, i.Adjusted,
		i.IsLocked, string(i.Direction),
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

// GetByID retrieves a single item.
// Returns apperrors.ErrItemNotFound when no row matches.
func (r *ItemRepository) GetByID(id string) (model.Item, error) {
	row := r.db.QueryRow(`
		SELECT `+itemColumns+`
		FROM item
		WHERE id = ?`, id)

	i, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Item{}, apperrors.ErrItemNotFound
		}
		return model.Item{}, fmt.Errorf("failed to query item: %w", err)
	}
	return i, nil
}

// ListByTransaction retrieves all items belonging to a transaction.
func (r *ItemRepository) ListByTransaction(transactionID string) ([]model.Item, error) {
	rows, err := r.db.Query(`
		SELECT `+itemColumns+`
		FROM item
		WHERE transaction_id = ?
		ORDER BY id`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := make([]model.Item, 0)
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, i)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

// UpdateAdjustedPrice overrides the cashier-facing price of an item.
func (r *ItemRepository) UpdateAdjustedPrice(id string, price float64) error {
	result, err := r.db.Exec(`
		UPDATE item SET adjusted_price = ? WHERE id = ?`, price, id)
	if err != nil {
		return fmt.Errorf("failed to update item price: %w", err)
	}
	return requireRow(result, apperrors.ErrItemNotFound)
}

// SetLocked toggles an item's lock flag.
func (r *ItemRepository) SetLocked(id string, locked bool) error {
	result, err := r.db.Exec(`
		UPDATE item SET is_locked = ? WHERE id = ?`, locked, id)
	if err != nil {
		return fmt.Errorf("failed to update item lock: %w", err)
	}
	return requireRow(result, apperrors.ErrItemNotFound)
}

// Delete removes an item.
func (r *ItemRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM item WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return requireRow(result, apperrors.ErrItemNotFound)
}

func scanItem(row rowScanner) (model.Item, error) {
	var i model.Item
	var origin, condition, cogsCurrency, category, direction string
	var karat int
	var cogsFromTag, fixFee sql.NullFloat64
	var sku sql.NullString

	err := row.Scan(
		&i.ID,
		&i.TransactionID,
		&origin,
		&condition,
		&i.WeightGrams,
		&karat,
		&cogsFromTag,
		&cogsCurrency,
		&sku,
		&category,
		&i.IsLightPiece,
		&fixFee,
		&i.WeightAdded,
		&i.Calculated,
		&i.Adjusted,
		&i.IsLocked,
		&direction,
	)
	if err != nil {
		return model.Item{}, err
	}

	i.Origin = pricing.Origin(origin)
	i.Condition = pricing.Condition(condition)
	i.Karat = pricing.Karat(karat)
	i.CogsCurrency = pricing.CogsCurrency(cogsCurrency)
	i.Category = pricing.Category(category)
	i.Direction = pricing.Direction(direction)
	if cogsFromTag.Valid {
		i.CogsFromTag = cogsFromTag.Float64
	}
	if sku.Valid {
		i.Sku = sku.String
	}
	if fixFee.Valid {
		fee := fixFee.Float64
		i.FixFee = &fee
	}

	return i, nil
}
