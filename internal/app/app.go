package app

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"tradeledger/internal/adapters"
	"tradeledger/internal/adapters/cache"
	"tradeledger/internal/adapters/httpclient"
	"tradeledger/internal/adapters/postgres"
	"tradeledger/internal/adapters/sqlite"
	"tradeledger/internal/api"
	"tradeledger/internal/config"
	"tradeledger/internal/domain"
	"tradeledger/internal/gate"
	"tradeledger/internal/ledger"
	"tradeledger/internal/platform/db"
	httpserver "tradeledger/internal/platform/http"
	"tradeledger/internal/quote"
	"tradeledger/internal/trade"
	"tradeledger/internal/trade/handler"

	"github.com/sirupsen/logrus"
)

// Run wires the application components, bootstraps the trade ledger, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	key, err := metadataKey(appCfg.Ledger)
	if err != nil {
		return err
	}

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (store connect, ledger bootstrap)
	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	store, closeStore, err := openStore(startupCtx, appCfg)
	if err != nil {
		logrus.WithError(err).WithField("driver", appCfg.Store.Driver).Error("Error opening metadata store")
		return err
	}
	defer closeStore()
	logrus.Infof("✅ %s metadata store ready", appCfg.Store.Driver)

	// Trade ledger
	g := gate.New()
	ledgerCache := ledger.NewCache(store, g)
	if _, err = ledgerCache.Bootstrap(startupCtx, key); err != nil {
		return err
	}

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// Exchange
	gateway := httpclient.NewQuoteGatewayClient(
		baseHTTPClient,
		strings.TrimSuffix(appCfg.QuoteAPI.BaseURL, "/"),
		appCfg.QuoteAPI.APIKey,
	)
	quotes := quote.NewFacade(gateway, g)

	rateCache, err := cache.NewMarketInfoCache(appCfg.Cache.MaxItems)
	if err != nil {
		return fmt.Errorf("failed to create market info cache: %w", err)
	}
	defer rateCache.Close()

	// Trade status polling
	scheduler := trade.NewScheduler(ledgerCache, quotes, time.Duration(appCfg.Scheduler.PollIntervalSec)*time.Second)
	// Ensure scheduler stops before the store closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	// Handlers and router
	validator := trade.NewValidator(domain.Pairings())
	tradeHandler := handler.NewTradeHandler(validator, ledgerCache, quotes, rateCache, time.Duration(appCfg.Cache.RateTTLSec)*time.Second)
	router := api.NewRouter(tradeHandler)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

// openStore returns the configured KeyedMetadataStore and a func releasing it.
func openStore(ctx context.Context, appCfg *config.AppConfig) (adapters.KeyedMetadataStore, func(), error) {
	switch appCfg.Store.Driver {
	case "sqlite":
		store, err := sqlite.Open(appCfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if closeErr := store.Close(); closeErr != nil {
				logrus.WithError(closeErr).Warn("Failed to close sqlite store")
			}
		}, nil
	default:
		if err := db.Migrate(ctx, appCfg.DbServer); err != nil {
			return nil, nil, err
		}
		pool, err := db.CreatePoolAndPing(ctx, appCfg.DbServer)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewMetadataStore(pool), pool.Close, nil
	}
}

func metadataKey(cfg config.Ledger) (domain.MetadataKey, error) {
	if cfg.KeyHex == "" {
		return nil, errors.New("ledger key is required")
	}
	raw, err := hex.DecodeString(cfg.KeyHex)
	if err != nil {
		return nil, fmt.Errorf("ledger key must be hex encoded: %w", err)
	}
	return domain.MetadataKey(raw), nil
}
