// Package main is the entry point for the ByteClave catalog server.
// It loads configuration, opens the selected record store backend, seeds
// the default taxonomy, sets up routing, and starts the HTTP server with
// graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"byteclave/internal/cache"
	"byteclave/internal/catalog"
	"byteclave/internal/config"
	"byteclave/internal/database"
	"byteclave/internal/handlers"
	"byteclave/internal/router"
	"byteclave/internal/store"
	"byteclave/internal/taxonomy"
)

func main() {
	// Structured logger: text output, debug level in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"backend", cfg.Backend,
		"addr", cfg.Addr(),
		"taxonomy_version", taxonomy.Version(),
	)

	// Open the selected record store backend.
	var recordStore store.RecordStore
	switch cfg.Backend {
	case config.BackendLocal:
		bolt, err := store.OpenBolt(cfg.BoltPath)
		if err != nil {
			slog.Error("failed to open local store", "path", cfg.BoltPath, "error", err)
			os.Exit(1)
		}
		defer bolt.Close()
		recordStore = bolt
		slog.Info("local store opened", "path", cfg.BoltPath)

	case config.BackendPostgres:
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		// The snapshot keeps catalog reads serving while the database is
		// unreachable; losing it only disables that degradation.
		snapshot, err := store.LoadSnapshot()
		if err != nil {
			slog.Warn("snapshot unavailable, read fallback disabled", "error", err)
		}
		recordStore = store.NewPostgres(db, snapshot)
	}

	repo := catalog.New(recordStore)

	// Seed the default taxonomy. No-op after the first successful run.
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	seeded, err := repo.SeedDefaultCategoriesIfEmpty(seedCtx)
	cancelSeed()
	if err != nil {
		slog.Error("failed to seed default categories", "error", err)
		os.Exit(1)
	}
	if seeded {
		slog.Info("default categories seeded")
	}

	// Connect the optional Valkey listing cache.
	var listingCache *cache.ListingCache
	if cfg.CacheEnabled() {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		listingCache = cache.NewListingCache(valkeyClient, cache.DefaultListingTTL)
	} else {
		slog.Warn("valkey not configured, listing cache disabled")
	}

	// Hash the shared admin passphrase once; the gate compares per request.
	adminHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash admin password", "error", err)
		os.Exit(1)
	}

	// Create handler groups with their dependencies.
	publicHandlers := handlers.NewPublic(repo, listingCache)
	adminHandlers := handlers.NewAdmin(repo, listingCache)

	// Set up the Chi router with all middleware and routes.
	r := router.New(publicHandlers, adminHandlers, adminHash)

	// Create the HTTP server with sensible timeouts. WriteTimeout covers
	// inline file uploads, which can carry multi-megabyte data URLs.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
