package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopcart/internal/catalog"
	"shopcart/internal/config"
	"shopcart/internal/database"
	"shopcart/internal/handler"
	"shopcart/internal/repository"
	"shopcart/internal/router"
	"shopcart/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting shopcart API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Import catalogue feeds at startup when enabled
	if cfg.Catalog.Enabled {
		fileLoader := catalog.NewFileLoader(logger)
		feedLoader := fileLoader

		if cfg.Catalog.S3 {
			s3Loader, s3Err := catalog.NewS3Loader(ctx, cfg.Catalog.Bucket, cfg.Catalog.Region, logger)
			if s3Err != nil {
				logger.Warn().
					Err(s3Err).
					Msg("failed to initialise S3 catalogue loader, using local file system only")
			}
			// Per-feed fallback: a failed S3 load retries the same feed
			// from the local file system.
			feedLoader = catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.Catalog.Prefix, true, logger)
		}

		importer := catalog.NewImporter(feedLoader, productRepo, logger)
		imported, err := importer.Import(ctx, cfg.Catalog.Feeds)
		if err != nil {
			return fmt.Errorf("failed to import catalogue feeds: %w", err)
		}
		logger.Info().Int("products", imported).Msg("catalogue feeds imported")
	} else {
		logger.Info().Msg("catalogue importer disabled")
	}

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	cartService := service.NewCartService(cartRepo, logger)
	cartItemService := service.NewCartItemService(cartRepo, productRepo, logger)
	orderService := service.NewOrderService(orderRepo, cartRepo, productRepo, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, logger)
	cartHandler := handler.NewCartHandler(cartService, cartItemService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)

	// Initialize router
	mux := router.New(productHandler, cartHandler, orderHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
