package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/undhyu/storefront-api/internal/cart"
	"github.com/undhyu/storefront-api/internal/catalog"
	"github.com/undhyu/storefront-api/internal/checkout"
	"github.com/undhyu/storefront-api/internal/config"
	"github.com/undhyu/storefront-api/internal/handlers"
	"github.com/undhyu/storefront-api/internal/middleware"
	"github.com/undhyu/storefront-api/internal/payment"
	"github.com/undhyu/storefront-api/internal/repository"
	"github.com/undhyu/storefront-api/internal/serviceability"
	"github.com/undhyu/storefront-api/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting storefront api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"store_domain", cfg.Catalog.StoreDomain,
		"log_level", cfg.LogLevel,
	)

	ctx := context.Background()

	// Optional serviceability check: skipped entirely when no pincode
	// lists are configured.
	pincodes := serviceability.NewChecker()
	if len(cfg.Serviceability.PincodeURLs) > 0 {
		log.Info("loading pincode data...")
		if err := pincodes.LoadFromURLs(ctx, cfg.Serviceability.PincodeURLs); err != nil {
			log.Error("failed to load pincode data", "error", err)
			os.Exit(1)
		}

		stats := pincodes.Stats()
		log.Info("pincode data loaded successfully",
			"total_files", stats["total_files"],
			"total_pins", stats["total_pins"],
		)
	}

	// Optional durable order records: without Mongo, orders are kept in
	// process memory only.
	var orderRepo repository.OrderRepository = repository.NewInMemoryOrderRepository()
	if cfg.Mongo.URL != "" {
		db, disconnect, err := repository.Connect(ctx, cfg.Mongo.URL, cfg.Mongo.Database)
		if err != nil {
			log.Error("failed to connect to mongo", "error", err)
			os.Exit(1)
		}
		defer disconnect()
		orderRepo = repository.NewMongoOrderRepository(db)
		log.Info("order records persisted to mongo", "database", cfg.Mongo.Database)
	}

	// Initialize collaborator clients
	catalogClient := catalog.New(cfg.Catalog.StoreDomain, cfg.Catalog.StorefrontToken, cfg.Catalog.APIVersion)
	gateway := payment.New(cfg.Gateway.BaseURL, cfg.Gateway.KeyID, cfg.Gateway.KeySecret)

	// Initialize cart sessions and checkout submitter
	sessions := cart.NewSessionStore()
	submitter := checkout.NewSubmitter(gateway, orderRepo, pincodes, cfg.Currency, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	catalogHandler := handlers.NewCatalogHandler(catalogClient, log)
	cartHandler := handlers.NewCartHandler(sessions, log)
	checkoutHandler := handlers.NewCheckoutHandler(submitter, sessions, orderRepo, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware. Session runs before the logger so request logs
	// carry the session id.
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Session)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Catalog proxy endpoints
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/collections", catalogHandler.ListCollections)

		// Cart endpoints
		r.Get("/cart", cartHandler.GetCart)
		r.Post("/cart/items", cartHandler.AddItem)
		r.Put("/cart/items", cartHandler.UpdateItem)
		r.Delete("/cart/items", cartHandler.RemoveItem)

		// Checkout endpoints
		r.Post("/checkout", checkoutHandler.Checkout)
		r.Post("/verify-payment", checkoutHandler.VerifyPayment)
		r.Get("/orders", checkoutHandler.ListOrders)
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
