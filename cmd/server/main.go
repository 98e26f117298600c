package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Norn-cloud/tag-scanner/internal/api"
	"github.com/Norn-cloud/tag-scanner/internal/config"
	"github.com/Norn-cloud/tag-scanner/internal/database"
	"github.com/Norn-cloud/tag-scanner/internal/marketdata"
	"github.com/Norn-cloud/tag-scanner/internal/migrations"
	"github.com/Norn-cloud/tag-scanner/internal/pricing"
	"github.com/Norn-cloud/tag-scanner/internal/repository"
	"github.com/Norn-cloud/tag-scanner/internal/secrets"
	"github.com/Norn-cloud/tag-scanner/internal/service"
	"github.com/Norn-cloud/tag-scanner/internal/vision"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending migrations
	if err := migrations.Up(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Create repositories
	transactionRepo := repository.NewTransactionRepository(db)
	itemRepo := repository.NewItemRepository(db)
	goldPriceRepo := repository.NewGoldPriceRepository(db)
	fxRateRepo := repository.NewFxRateRepository(db)
	coinPriceRepo := repository.NewCoinPriceRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Secret storage is optional; without a fernet key the Vision API key
	// must come from the environment.
	var encryptor *secrets.Encryptor
	if cfg.Security.FernetKey != "" {
		encryptor, err = secrets.NewEncryptor(cfg.Security.FernetKey)
		if err != nil {
			log.Fatalf("Failed to initialize secret storage: %v", err)
		}
	}

	// Create services
	pricingCfg := pricing.DefaultConfig()
	calc := pricing.New(pricingCfg)

	marketDataService := service.NewMarketDataService(
		goldPriceRepo,
		fxRateRepo,
		marketdata.NewCurrencyAPIClient(),
		pricingCfg.GoldPriceMaxAge,
	)
	transactionService := service.NewTransactionService(
		transactionRepo,
		itemRepo,
		calc,
		marketDataService,
	)
	coinPriceService := service.NewCoinPriceService(coinPriceRepo)

	visionKey := resolveVisionKey(cfg, settingRepo, encryptor)
	scanService := service.NewScanService(
		vision.NewAPIClient(visionKey),
		settingRepo,
		encryptor,
	)
	systemService := service.NewSystemService(db, visionKey != "")

	// Scheduled spot price refresh. Skips the feed while the cached market
	// (including a manual override) is still fresh.
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.Scheduler.PriceRefreshSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := marketDataService.RefreshIfStale(ctx); err != nil {
			log.Printf("Scheduled price refresh failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Invalid price refresh schedule %q: %v", cfg.Scheduler.PriceRefreshSpec, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Transaction: transactionService,
		MarketData:  marketDataService,
		Scan:        scanService,
		CoinPrice:   coinPriceService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// resolveVisionKey prefers the environment-provided Vision API key and falls
// back to the encrypted key stored in system settings, if any.
func resolveVisionKey(cfg *config.Config, settingRepo *repository.SettingRepository, encryptor *secrets.Encryptor) string {
	if cfg.Vision.APIKey != "" {
		return cfg.Vision.APIKey
	}
	if encryptor == nil {
		return ""
	}

	stored := service.NewScanService(nil, settingRepo, encryptor)
	key, err := stored.LoadAPIKey()
	if err != nil {
		log.Printf("No stored Vision API key available: %v", err)
		return ""
	}
	return key
}
