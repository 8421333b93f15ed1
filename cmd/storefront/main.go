package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sielo-candles/storefront/internal/di"
	"github.com/sielo-candles/storefront/internal/handlers"
	"github.com/sielo-candles/storefront/internal/platform/config"
	"github.com/sielo-candles/storefront/internal/platform/idempotency"
	"github.com/sielo-candles/storefront/internal/platform/observability"
)

func main() {
	ctx := context.Background()

	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()

	logger := baseLogger.Named("storefront")
	ctx = observability.WithLogger(ctx, logger)

	cfg, err := config.Load()
	if err != nil {
		var invalid *config.ValidationError
		if errors.As(err, &invalid) {
			logger.Fatal("invalid configuration", zap.Strings("fields", invalid.Fields()))
		}
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	container, err := di.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to assemble dependencies", zap.Error(err))
	}

	idempotencyMiddleware := idempotency.Middleware(
		idempotency.NewMemoryStore(),
		idempotency.WithMethods(http.MethodPost),
		idempotency.WithLogger(observability.NewPrintfAdapter(logger.Named("idempotency"))),
	)

	middlewares := []func(http.Handler) http.Handler{
		observability.InjectLoggerMiddleware(logger.Named("http")),
		observability.RecoveryMiddleware(logger.Named("http")),
		observability.RequestLoggerMiddleware(),
		idempotencyMiddleware,
	}

	// A nil selector pointer must stay out of the interface field so the
	// cross-sell route is skipped when the feature is disabled.
	var crossSell handlers.CrossSellPicker
	if container.Services.CrossSell != nil {
		crossSell = container.Services.CrossSell
	}

	opts := []handlers.Option{
		handlers.WithMiddlewares(middlewares...),
		handlers.WithHealthHandlers(handlers.NewHealthHandlers(nil)),
		handlers.WithCatalogRoutes(handlers.NewCatalogHandlers(
			container.Catalog,
			container.Services.Cart,
			crossSell,
			container.Services.Finder,
		).Routes),
		handlers.WithCartRoutes(handlers.NewCartHandlers(
			container.Services.Cart,
			container.Catalog,
			container.Services.Pricing,
		).Routes),
		handlers.WithCheckoutRoutes(handlers.NewCheckoutHandlers(container.Services.Checkout).Routes),
		handlers.WithPreferenceRoutes(handlers.NewPreferenceHandlers(container.Services.Preferences).Routes),
	}
	if container.Guides != nil {
		opts = append(opts, handlers.WithGuideRoutes(handlers.NewGuideHandlers(container.Guides).Routes))
	}

	router := handlers.NewRouter(opts...)
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("storefront api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
