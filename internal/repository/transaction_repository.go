package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Norn-cloud/tag-scanner/internal/apperrors"
	"github.com/Norn-cloud/tag-scanner/internal/model"
	"github.com/Norn-cloud/tag-scanner/internal/pricing"
)

// TransactionRepository provides data access methods for the
// gold_transaction table.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `
	id, type, status, deduction_percent, markup_multiplier,
	gold_price_18k, gold_price_21k, gold_price_24k, fx_rate_usd_egp,
	total_in, total_out, net_amount, total_margin, margin_percent, created_at
`

// Create inserts a new transaction record.
func (r *TransactionRepository) Create(t model.Transaction) error {
	_, err := r.db.Exec(`
		INSERT INTO gold_transaction (
			id, type, status, deduction_percent, markup_multiplier,
			gold_price_18k, gold_price_21k, gold_price_24k, fx_rate_usd_egp,
			total_in, total_out, net_amount, total_margin, margin_percent
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, string(t.Type), string(t.Status), t.DeductionPercent, t.MarkupMultiplier,
		t.GoldPricePerGram.K18, t.GoldPricePerGram.K21, t.GoldPricePerGram.K24, t.FxRateUsdToEgp,
		t.TotalIn, t.TotalOut, t.NetAmount, t.TotalMargin, t.MarginPercent,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a single transaction.
// Returns apperrors.ErrTransactionNotFound when no row matches.
func (r *TransactionRepository) GetByID(id string) (model.Transaction, error) {
	row := r.db.QueryRow(`
		SELECT `+transactionColumns+`
		FROM gold_transaction
		WHERE id = ?`, id)

	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Transaction{}, apperrors.ErrTransactionNotFound
		}
		return model.Transaction{}, fmt.Errorf("failed to query transaction: %w", err)
	}
	return t, nil
}

// List retrieves the most recent transactions, optionally filtered by
// status. The result is capped at limit rows, newest first.
func (r *TransactionRepository) List(status model.TransactionStatus, limit int) ([]model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM gold_transaction`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]model.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// UpdateTotals writes the recalculated aggregate figures back to the record.
func (r *TransactionRepository) UpdateTotals(id string, totalIn, totalOut, netAmount, totalMargin, marginPercent float64) error {
	result, err := r.db.Exec(`
		UPDATE gold_transaction
		SET total_in = ?, total_out = ?, net_amount = ?, total_margin = ?, margin_percent = ?
		WHERE id = ?`,
		totalIn, totalOut, netAmount, totalMargin, marginPercent, id)
	if err != nil {
		return fmt.Errorf("failed to update transaction totals: %w", err)
	}
	return requireRow(result, apperrors.ErrTransactionNotFound)
}

// UpdateStatus moves a transaction through its lifecycle.
func (r *TransactionRepository) UpdateStatus(id string, status model.TransactionStatus) error {
	result, err := r.db.Exec(`
		UPDATE gold_transaction SET status = ? WHERE id = ?`,
		string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}
	return requireRow(result, apperrors.ErrTransactionNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var t model.Transaction
	var txType, status, createdAtStr string

	err := row.Scan(
		&t.ID,
		&txType,
		&status,
		&t.DeductionPercent,
		&t.MarkupMultiplier,
		&t.GoldPricePerGram.K18,
		&t.GoldPricePerGram.K21,
		&t.GoldPricePerGram.K24,
		&t.FxRateUsdToEgp,
		&t.TotalIn,
		&t.TotalOut,
		&t.NetAmount,
		&t.TotalMargin,
		&t.MarginPercent,
		&createdAtStr,
	)
	if err != nil {
		return model.Transaction{}, err
	}

	t.Type = pricing.TransactionType(txType)
	t.Status = model.TransactionStatus(status)

	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}

// requireRow converts a zero-row update into the given not-found error.
func requireRow(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
