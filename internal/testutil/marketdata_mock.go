package testutil

import (
	"context"

	"github.com/Norn-cloud/tag-scanner/internal/marketdata"
	"github.com/Norn-cloud/tag-scanner/internal/pricing"
)

// MockMarketClient is a mock implementation of marketdata.Client for
// testing. It returns a predefined quote instead of hitting the feed.
type MockMarketClient struct {
	// MockQuote is the quote to return from FetchQuote
	MockQuote marketdata.Quote
	// MockError is the error to return from FetchQuote
	MockError error
	// CallCount tracks how many times FetchQuote was called
	CallCount int
}

// NewMockMarketClient creates a mock market client with a plausible EGP
// gold market.
func NewMockMarketClient() *MockMarketClient {
	return &MockMarketClient{
		MockQuote: marketdata.Quote{
			GoldPrices: pricing.GoldPrices{K18: 3200, K21: 3700, K24: 4200},
			FxRate:     50,
			Source:     "mock",
		},
	}
}

// FetchQuote returns the configured MockQuote and MockError.
func (m *MockMarketClient) FetchQuote(_ context.Context) (marketdata.Quote, error) {
	m.CallCount++
	if m.MockError != nil {
		return marketdata.Quote{}, m.MockError
	}
	return m.MockQuote, nil
}

// WithQuote configures the mock to return the specified quote.
func (m *MockMarketClient) WithQuote(quote marketdata.Quote) *MockMarketClient {
	m.MockQuote = quote
	return m
}

// WithError configures the mock to return the specified error.
func (m *MockMarketClient) WithError(err error) *MockMarketClient {
	m.MockError = err
	return m
}
