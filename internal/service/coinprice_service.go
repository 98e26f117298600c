package service

import (
	"github.com/google/uuid"

	"github.com/Norn-cloud/tag-scanner/internal/api/request"
	"github.com/Norn-cloud/tag-scanner/internal/model"
	"github.com/Norn-cloud/tag-scanner/internal/pricing"
	"github.com/Norn-cloud/tag-scanner/internal/repository"
)

// CoinPriceService manages the branded-coin price table: fixed markups and
// cashback schedules per (category, weight) pair, maintained by an admin
// from the supplier's price sheet.
type CoinPriceService struct {
	coinRepo *repository.CoinPriceRepository
}

// NewCoinPriceService creates a new CoinPriceService with the provided repository dependency.
func NewCoinPriceService(coinRepo *repository.CoinPriceRepository) *CoinPriceService {
	return &CoinPriceService{coinRepo: coinRepo}
}

// ListCoinPrices returns the full table, ordered by category then weight.
func (s *CoinPriceService) ListCoinPrices() ([]model.CoinPrice, error) {
	return s.coinRepo.List()
}

// GetCategory returns all weights for one category.
func (s *CoinPriceService) GetCategory(categoryAr string) ([]model.CoinPrice, error) {
	return s.coinRepo.GetByCategory(categoryAr)
}

// LookupCoinPrice returns the row for an exact (category, weight) pair.
func (s *CoinPriceService) LookupCoinPrice(categoryAr string, weightGrams float64) (model.CoinPrice, error) {
	return s.coinRepo.Lookup(categoryAr, weightGrams)
}

// UpsertCoinPrice creates or replaces one row of the table.
func (s *CoinPriceService) UpsertCoinPrice(req request.UpsertCoinPriceRequest) (model.CoinPrice, error) {
	coin := model.CoinPrice{
		ID:                  uuid.New().String(),
		CategoryAr:          req.CategoryAr,
		WeightGrams:         req.WeightGrams,
		MarkupEgp:           req.MarkupEgp,
		CashbackPackagedEgp: req.CashbackPackagedEgp,
		CashbackUnpackedEgp: req.CashbackUnpackagedEgp,
		Karat:               pricing.Karat(req.Karat),
	}

	if err := s.coinRepo.Upsert(coin); err != nil {
		return model.CoinPrice{}, err
	}

	// On conflict the stored row keeps its original ID; re-read for accuracy.
	return s.coinRepo.Lookup(coin.CategoryAr, coin.WeightGrams)
}
