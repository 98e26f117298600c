package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Transaction table
		CREATE TABLE gold_transaction (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			type VARCHAR(5) NOT NULL,
			status VARCHAR(9) NOT NULL DEFAULT 'DRAFT',
			deduction_percent FLOAT NOT NULL,
			markup_multiplier FLOAT NOT NULL DEFAULT 1.0,
			gold_price_18k FLOAT NOT NULL,
			gold_price_21k FLOAT NOT NULL,
			gold_price_24k FLOAT NOT NULL,
			fx_rate_usd_egp FLOAT NOT NULL,
			total_in FLOAT NOT NULL DEFAULT 0,
			total_out FLOAT NOT NULL DEFAULT 0,
			net_amount FLOAT NOT NULL DEFAULT 0,
			total_margin FLOAT NOT NULL DEFAULT 0,
			margin_percent FLOAT NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Item table
		CREATE TABLE item (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			transaction_id VARCHAR(36) NOT NULL,
			origin VARCHAR(4) NOT NULL,
			condition VARCHAR(4) NOT NULL DEFAULT 'NEW',
			weight_grams FLOAT NOT NULL,
			karat INTEGER NOT NULL,
			cogs_from_tag FLOAT,
			cogs_currency VARCHAR(3) NOT NULL DEFAULT 'EGP',
			sku VARCHAR(32),
			category VARCHAR(7) NOT NULL,
			is_light_piece BOOLEAN NOT NULL DEFAULT FALSE,
			fix_fee FLOAT,
			weight_added_grams FLOAT NOT NULL DEFAULT 0,
			calculated_price FLOAT NOT NULL,
			adjusted_price FLOAT NOT NULL,
			is_locked BOOLEAN NOT NULL DEFAULT FALSE,
			direction VARCHAR(3) NOT NULL,
			FOREIGN KEY(transaction_id) REFERENCES gold_transaction(id) ON DELETE CASCADE
		);

		-- Gold price cache table
		CREATE TABLE gold_price_cache (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			price_per_gram_18k FLOAT NOT NULL,
			price_per_gram_21k FLOAT NOT NULL,
			price_per_gram_24k FLOAT NOT NULL,
			source VARCHAR(50) NOT NULL,
			fetched_at DATETIME NOT NULL,
			manual_override BOOLEAN NOT NULL DEFAULT FALSE
		);

		-- FX rate cache table
		CREATE TABLE fx_rate_cache (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			usd_to_egp FLOAT NOT NULL,
			source VARCHAR(50) NOT NULL,
			fetched_at DATETIME NOT NULL,
			manual_override BOOLEAN NOT NULL DEFAULT FALSE
		);

		-- Coin price table
		CREATE TABLE coin_price (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			category_ar VARCHAR(100) NOT NULL,
			weight_grams FLOAT NOT NULL,
			markup_egp FLOAT NOT NULL,
			cashback_packaged_egp FLOAT NOT NULL,
			cashback_unpackaged_egp FLOAT NOT NULL,
			karat INTEGER NOT NULL,
			CONSTRAINT unique_coin_category_weight UNIQUE (category_ar, weight_grams)
		);

		-- System setting table
		CREATE TABLE system_setting (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			"key" VARCHAR(32) NOT NULL UNIQUE,
			value TEXT NOT NULL,
			updated_at DATETIME
		);

		-- Indexes for performance
		CREATE INDEX IF NOT EXISTS ix_item_transaction_id ON item(transaction_id);
		CREATE INDEX IF NOT EXISTS ix_gold_transaction_status ON gold_transaction(status);
		CREATE INDEX IF NOT EXISTS ix_gold_price_cache_fetched_at ON gold_price_cache(fetched_at);
		CREATE INDEX IF NOT EXISTS ix_fx_rate_cache_fetched_at ON fx_rate_cache(fetched_at);
		CREATE INDEX IF NOT EXISTS ix_coin_price_category ON coin_price(category_ar);
	`

	_, err := db.Exec(schema)
	return err
}

// CleanDatabase truncates all tables in dependency order.
// Useful for reusing the same database across multiple tests.
func CleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	// Order matters: delete children before parents due to foreign keys
	tables := []string{
		"item",
		"gold_transaction",
		"gold_price_cache",
		"fx_rate_cache",
		"coin_price",
		"system_setting",
	}

	for _, table := range tables {
		//nolint:gosec // G202: Table names are from hardcoded slice, no SQL injection risk
		query := "DELETE FROM " + table
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM " + table
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
//
// Example usage:
//
//	testutil.AssertRowCount(t, db, "item", 2)
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
