package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kmazur/budgetbook-go/internal/config"
	"github.com/kmazur/budgetbook-go/internal/domain"
	"github.com/kmazur/budgetbook-go/internal/handler"
	"github.com/kmazur/budgetbook-go/internal/infra/cache"
	"github.com/kmazur/budgetbook-go/internal/infra/observability"
	"github.com/kmazur/budgetbook-go/internal/infra/postgrest"
	"github.com/kmazur/budgetbook-go/internal/infra/resilience"
	"github.com/kmazur/budgetbook-go/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = godotenv.Load()

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Duration("jwt_access_ttl", cfg.JWTAccessTTL),
		zap.Duration("jwt_refresh_ttl", cfg.JWTRefreshTTL),
		zap.Bool("dev_tools", cfg.DevTools),
	)

	if cfg.StoreURL == "" {
		logger.Fatal("STORE_URL is required")
	}

	// --- Tracing ---
	shutdownTracer, err := observability.InitTracer(context.Background(), "budgetbook-api", cfg.OTLPEndpoint)
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdownTracer(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	txCache := cache.New[[]domain.Transaction](cfg.CacheTTL)
	defer txCache.Close()

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("postgrest")
	bulkhead := resilience.NewBulkhead(cfg.MaxConcurrency)

	// --- Store ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	store := postgrest.NewClient(
		httpClient,
		cfg.StoreURL,
		cfg.StoreAnonKey,
		cfg.StoreServiceKey,
		cb,
		resilienceCfg,
		logger,
	)

	// --- Services ---
	authSvc := service.NewAuthService(store, cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL, logger)
	txSvc := service.NewTransactionService(store, txCache, metrics, logger)
	budgetSvc := service.NewBudgetService(store, txSvc, metrics, logger)
	goalSvc := service.NewGoalService(store, logger)
	dashSvc := service.NewDashboardService(txSvc, store, logger)

	if cfg.DevTools {
		logger.Warn("dev tools endpoints enabled, do not run this in production")
	}

	// --- Router ---
	router := handler.NewRouter(authSvc, txSvc, budgetSvc, goalSvc, dashSvc, metrics, bulkhead, logger, cfg.DevTools)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
