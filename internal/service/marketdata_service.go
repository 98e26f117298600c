package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Norn-cloud/tag-scanner/internal/apperrors"
	"github.com/Norn-cloud/tag-scanner/internal/marketdata"
	"github.com/Norn-cloud/tag-scanner/internal/model"
	"github.com/Norn-cloud/tag-scanner/internal/repository"
)

// MarketDataService maintains the cached market inputs: spot gold prices per
// karat and the USD to EGP rate. The cache is append-only; the newest
// snapshot wins, and snapshots older than maxAge are flagged stale.
type MarketDataService struct {
	goldRepo *repository.GoldPriceRepository
	fxRepo   *repository.FxRateRepository
	client   marketdata.Client
	maxAge   time.Duration
}

// NewMarketDataService creates a new MarketDataService with the provided dependencies.
func NewMarketDataService(
	goldRepo *repository.GoldPriceRepository,
	fxRepo *repository.FxRateRepository,
	client marketdata.Client,
	maxAge time.Duration,
) *MarketDataService {
	return &MarketDataService{
		goldRepo: goldRepo,
		fxRepo:   fxRepo,
		client:   client,
		maxAge:   maxAge,
	}
}

// Refresh fetches a fresh quote from the market feed and caches it. Both
// snapshots are persisted in parallel; a failure on either side fails the
// refresh so the board never shows a half-updated market.
func (s *MarketDataService) Refresh(ctx context.Context) (model.PriceBoard, error) {
	quote, err := s.client.FetchQuote(ctx)
	if err != nil {
		return model.PriceBoard{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRefreshPrices, err)
	}

	now := time.Now().UTC()
	gold := model.GoldPriceSnapshot{
		ID:             uuid.New().String(),
		PricePerGram18: quote.GoldPrices.K18,
		PricePerGram21: quote.GoldPrices.K21,
		PricePerGram24: quote.GoldPrices.K24,
		Source:         quote.Source,
		FetchedAt:      now,
	}
	fx := model.FxRateSnapshot{
		ID:        uuid.New().String(),
		UsdToEgp:  quote.FxRate,
		Source:    quote.Source,
		FetchedAt: now,
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { return s.goldRepo.Insert(gold) })
	g.Go(func() error { return s.fxRepo.Insert(fx) })
	if err := g.Wait(); err != nil {
		return model.PriceBoard{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRefreshPrices, err)
	}

	return model.PriceBoard{Gold: &gold, Fx: &fx}, nil
}

// RefreshIfStale refreshes from the feed only when the cached market is
// missing or older than maxAge. The scheduled refresh uses this so a recent
// manual override survives until it actually ages out.
func (s *MarketDataService) RefreshIfStale(ctx context.Context) (model.PriceBoard, error) {
	board, err := s.Board()
	if err != nil {
		return model.PriceBoard{}, err
	}
	if !board.Stale {
		return board, nil
	}
	return s.Refresh(ctx)
}

// Board returns the latest cached market view. Missing snapshots are
// reported as nil rather than an error so the frontend can render a partial
// board; Stale is set when either side is older than the configured maximum
// age (or missing entirely).
func (s *MarketDataService) Board() (model.PriceBoard, error) {
	board := model.PriceBoard{}
	cutoff := time.Now().UTC().Add(-s.maxAge)

	gold, err := s.goldRepo.Latest()
	switch {
	case err == nil:
		board.Gold = &gold
		if gold.FetchedAt.Before(cutoff) {
			board.Stale = true
		}
	case errors.Is(err, apperrors.ErrGoldPriceNotFound):
		board.Stale = true
	default:
		return model.PriceBoard{}, err
	}

	fx, err := s.fxRepo.Latest()
	switch {
	case err == nil:
		board.Fx = &fx
		if fx.FetchedAt.Before(cutoff) {
			board.Stale = true
		}
	case errors.Is(err, apperrors.ErrFxRateNotFound):
		board.Stale = true
	default:
		return model.PriceBoard{}, err
	}

	return board, nil
}

// CurrentMarket returns the latest gold and FX snapshots, erroring when
// either is missing. Used when freezing market inputs onto a transaction,
// where a partial market is not acceptable.
func (s *MarketDataService) CurrentMarket() (model.GoldPriceSnapshot, model.FxRateSnapshot, error) {
	gold, err := s.goldRepo.Latest()
	if err != nil {
		return model.GoldPriceSnapshot{}, model.FxRateSnapshot{}, err
	}
	fx, err := s.fxRepo.Latest()
	if err != nil {
		return model.GoldPriceSnapshot{}, model.FxRateSnapshot{}, err
	}
	return gold, fx, nil
}

// SetManualGoldPrice records a hand-entered gold price snapshot, overriding
// the feed until the next refresh.
func (s *MarketDataService) SetManualGoldPrice(k18, k21, k24 float64) (model.GoldPriceSnapshot, error) {
	snapshot := model.GoldPriceSnapshot{
		ID:             uuid.New().String(),
		PricePerGram18: k18,
		PricePerGram21: k21,
		PricePerGram24: k24,
		Source:         "manual",
		FetchedAt:      time.Now().UTC(),
		ManualOverride: true,
	}
	if err := s.goldRepo.Insert(snapshot); err != nil {
		return model.GoldPriceSnapshot{}, err
	}
	return snapshot, nil
}

// SetManualFxRate records a hand-entered FX rate snapshot.
func (s *MarketDataService) SetManualFxRate(rate float64) (model.FxRateSnapshot, error) {
	snapshot := model.FxRateSnapshot{
		ID:             uuid.New().String(),
		UsdToEgp:       rate,
		Source:         "manual",
		FetchedAt:      time.Now().UTC(),
		ManualOverride: true,
	}
	if err := s.fxRepo.Insert(snapshot); err != nil {
		return model.FxRateSnapshot{}, err
	}
	return snapshot, nil
}
