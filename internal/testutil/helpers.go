package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Norn-cloud/tag-scanner/internal/pricing"
	"github.com/Norn-cloud/tag-scanner/internal/repository"
	"github.com/Norn-cloud/tag-scanner/internal/secrets"
	"github.com/Norn-cloud/tag-scanner/internal/service"
	"github.com/Norn-cloud/tag-scanner/internal/vision"
)

func NewTestMarketDataService(t *testing.T, db *sql.DB) *service.MarketDataService {
	t.Helper()

	return service.NewMarketDataService(
		repository.NewGoldPriceRepository(db),
		repository.NewFxRateRepository(db),
		NewMockMarketClient(),
		24*time.Hour,
	)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	return service.NewTransactionService(
		repository.NewTransactionRepository(db),
		repository.NewItemRepository(db),
		pricing.New(pricing.DefaultConfig()),
		NewTestMarketDataService(t, db),
	)
}

func NewTestCoinPriceService(t *testing.T, db *sql.DB) *service.CoinPriceService {
	t.Helper()

	return service.NewCoinPriceService(repository.NewCoinPriceRepository(db))
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, true)
}

// NewTestScanService creates a ScanService backed by a mock Vision client
// and a throwaway fernet key for secret storage.
func NewTestScanService(t *testing.T, db *sql.DB, client vision.Client) *service.ScanService {
	t.Helper()

	// Deterministic 32-byte key, base64url-encoded.
	encryptor, err := secrets.NewEncryptor("AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=")
	if err != nil {
		t.Fatalf("Failed to create test encryptor: %v", err)
	}

	return service.NewScanService(client, repository.NewSettingRepository(db), encryptor)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}
