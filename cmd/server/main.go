package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/awadali7/Pro-shopify-backend/internal/api"
	"github.com/awadali7/Pro-shopify-backend/internal/config"
	"github.com/awadali7/Pro-shopify-backend/internal/logging"
	"github.com/awadali7/Pro-shopify-backend/internal/metrics"
	"github.com/awadali7/Pro-shopify-backend/internal/service"
	"github.com/awadali7/Pro-shopify-backend/internal/shopify"
	"github.com/awadali7/Pro-shopify-backend/internal/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger, err := logging.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting Shopify gateway",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("shop", cfg.Shopify.ShopDomain),
		zap.String("collection_id", cfg.Shopify.CollectionID),
		zap.String("product_id_source", string(cfg.ProductIDSource)),
		zap.Bool("concurrent_fetch", cfg.ConcurrentFetch),
	)

	shutdownTracing, err := telemetry.Setup(context.Background(), cfg.Telemetry, logger)
	if err != nil {
		logger.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	registry := metrics.NewRegistry()
	client := shopify.NewClient(cfg.Shopify, logger, shopify.WithObserver(registry))
	services := service.NewServices(cfg, client, logger)

	// Initialize router
	router := api.NewRouter(cfg, services, registry, logger)

	// Create HTTP server. WriteTimeout leaves room for a full upstream timeout
	// on each of the aggregator's two calls.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2*cfg.Shopify.Timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Warn("Failed to flush traces", zap.Error(err))
	}

	logger.Info("Server exited")
}
