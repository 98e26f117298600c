// Package marketdata fetches spot gold prices and the USD/EGP rate from the
// public currency API and derives the per-karat gram prices the pricing
// calculator consumes.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/Norn-cloud/tag-scanner/internal/apperrors"
	"github.com/Norn-cloud/tag-scanner/internal/pricing"
)

const (
	primaryURL  = "https://cdn.jsdelivr.net/npm/@fawazahmed0/currency-api@latest/v1/currencies/usd.json"
	fallbackURL = "https://latest.currency-api.pages.dev/v1/currencies/usd.json"

	sourceName = "fawazahmed0-currency-api"

	troyOzToGrams = 31.1035

	// Sanity bounds for the USD/EGP rate; anything outside is treated as a
	// broken feed rather than a market move.
	fxRateMin = 10
	fxRateMax = 200
)

// Client fetches a validated market quote. Implementations must return an
// error rather than a partial or implausible quote.
type Client interface {
	FetchQuote(ctx context.Context) (Quote, error)
}

// CurrencyAPIClient pulls quotes from the currency API with a CDN fallback.
// Outbound calls are rate limited; the feed updates daily so there is no
// reason to hit it more than a few times a minute even under retry.
type CurrencyAPIClient struct {
	httpClient  *http.Client
	limiter     *rate.Limiter
	primaryURL  string
	fallbackURL string
}

// NewCurrencyAPIClient creates a client with default HTTP settings.
func NewCurrencyAPIClient() *CurrencyAPIClient {
	return &CurrencyAPIClient{
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		limiter:     rate.NewLimiter(rate.Every(10*time.Second), 3),
		primaryURL:  primaryURL,
		fallbackURL: fallbackURL,
	}
}

// FetchQuote retrieves the current feed, falling back to the secondary URL
// when the primary fails, and derives a validated Quote from it.
func (c *CurrencyAPIClient) FetchQuote(ctx context.Context) (Quote, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Quote{}, fmt.Errorf("rate limiter: %w", err)
	}

	resp, err := c.fetch(ctx, c.primaryURL)
	if err != nil {
		resp, err = c.fetch(ctx, c.fallbackURL)
		if err != nil {
			return Quote{}, fmt.Errorf("%w: %s", apperrors.ErrFailedToRefreshPrices, err)
		}
	}

	return DeriveQuote(resp)
}

func (c *CurrencyAPIClient) fetch(ctx context.Context, url string) (CurrencyResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return CurrencyResponse{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return CurrencyResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return CurrencyResponse{}, fmt.Errorf("currency api returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return CurrencyResponse{}, err
	}

	var response CurrencyResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return CurrencyResponse{}, err
	}

	return response, nil
}

// DeriveQuote validates a raw feed response and converts it into per-karat
// EGP gram prices. The feed quotes gold as troy ounces per USD, so the gram
// price is 1/xau per ounce, divided by grams per ounce, times the EGP rate.
// Lower karats scale linearly by purity (21/24, 18/24).
func DeriveQuote(resp CurrencyResponse) (Quote, error) {
	xau := resp.USD.Xau
	egp := resp.USD.Egp

	if xau <= 0 || egp <= 0 ||
		math.IsNaN(xau) || math.IsInf(xau, 0) ||
		math.IsNaN(egp) || math.IsInf(egp, 0) {
		return Quote{}, fmt.Errorf("%w: xau=%v egp=%v", apperrors.ErrPriceFeedInvalid, xau, egp)
	}

	if egp < fxRateMin || egp > fxRateMax {
		return Quote{}, fmt.Errorf("%w: %v", apperrors.ErrFxRateImplausible, egp)
	}

	goldUsdPerGram := (1 / xau) / troyOzToGrams
	gold24Egp := goldUsdPerGram * egp

	return Quote{
		GoldPrices: pricing.GoldPrices{
			K18: math.Round(gold24Egp * 18 / 24),
			K21: math.Round(gold24Egp * 21 / 24),
			K24: math.Round(gold24Egp),
		},
		FxRate: math.Round(egp*100) / 100,
		Source: sourceName,
	}, nil
}
