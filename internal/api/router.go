package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Norn-cloud/tag-scanner/internal/api/handlers"
	custommiddleware "github.com/Norn-cloud/tag-scanner/internal/api/middleware"
	"github.com/Norn-cloud/tag-scanner/internal/config"
	"github.com/Norn-cloud/tag-scanner/internal/service"
)

// Services bundles the service dependencies the router needs.
type Services struct {
	System      *service.SystemService
	Transaction *service.TransactionService
	MarketData  *service.MarketDataService
	Scan        *service.ScanService
	CoinPrice   *service.CoinPriceService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		transactionHandler := handlers.NewTransactionHandler(svc.Transaction)
		itemHandler := handlers.NewItemHandler(svc.Transaction)

		r.Route("/transaction", func(r chi.Router) {
			r.Get("/", transactionHandler.ListTransactions)
			r.Post("/", transactionHandler.CreateTransaction)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Get("/quote", transactionHandler.QuoteTransaction)
				r.Post("/complete", transactionHandler.CompleteTransaction)
				r.Post("/cancel", transactionHandler.CancelTransaction)
				r.Post("/item", itemHandler.AddItem)
			})
		})

		r.Route("/item/{uuid}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateUUIDMiddleware)
			r.Put("/price", itemHandler.UpdateItemPrice)
			r.Post("/lock", itemHandler.ToggleItemLock)
			r.Delete("/", itemHandler.RemoveItem)
		})

		r.Post("/quote", transactionHandler.QuoteStateless)

		r.Route("/prices", func(r chi.Router) {
			priceHandler := handlers.NewPriceHandler(svc.MarketData)
			r.Get("/", priceHandler.GetPrices)
			r.Post("/refresh", priceHandler.RefreshPrices)

			// Manual overrides require the internal API key.
			r.Group(func(r chi.Router) {
				r.Use(custommiddleware.APIKeyMiddleware)
				r.Post("/gold/manual", priceHandler.SetManualGoldPrice)
				r.Post("/fx/manual", priceHandler.SetManualFxRate)
			})
		})

		r.Route("/scan", func(r chi.Router) {
			scanHandler := handlers.NewScanHandler(svc.Scan)
			r.Post("/", scanHandler.ScanTag)

			r.Group(func(r chi.Router) {
				r.Use(custommiddleware.APIKeyMiddleware)
				r.Post("/key", scanHandler.StoreVisionKey)
			})
		})

		r.Route("/coin-prices", func(r chi.Router) {
			coinPriceHandler := handlers.NewCoinPriceHandler(svc.CoinPrice)
			r.Get("/", coinPriceHandler.ListCoinPrices)

			r.Group(func(r chi.Router) {
				r.Use(custommiddleware.APIKeyMiddleware)
				r.Put("/", coinPriceHandler.UpsertCoinPrice)
			})
		})
	})

	return r
}
