// Package main is the entry point for the BroadcastHub console server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"broadcasthub/internal/broadcast"
	"broadcasthub/internal/config"
	"broadcasthub/internal/database"
	"broadcasthub/internal/dispatch"
	"broadcasthub/internal/handlers"
	"broadcasthub/internal/router"
	"broadcasthub/internal/session"
	"broadcasthub/internal/storage"
	"broadcasthub/internal/store"
	"broadcasthub/internal/webhook"
)

func main() {
	// Structured logger — outputs JSON in production, text in development.
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
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible session store).
	valkeyClient, err := session.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Initialize session store backed by Valkey.
	// In non-development environments, mark session cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// Initialize data stores.
	operatorStore := store.NewOperatorStore(db)
	broadcastStore := store.NewBroadcastStore(db)
	messageStore := store.NewMessageStore(db)

	// Connect to S3-compatible object storage (optional — app works without it).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3Endpoint,
			"bucket", storageClient.Bucket(),
		)
	} else {
		slog.Warn("s3 storage not configured — photo and media uploads disabled")
	}

	// A nil *storage.Client must stay a nil interface so upload paths are
	// skipped, not dereferenced.
	var managerObjects broadcast.ObjectStore
	var dispatchObjects dispatch.ObjectStore
	if storageClient != nil {
		managerObjects = storageClient
		dispatchObjects = storageClient
	}

	// Webhook clients for delivery, labels, and contact import.
	deliveryClient := webhook.NewDeliveryClient(cfg.DeliveryWebhookURL)
	labelsClient := webhook.NewLabelsClient(cfg.LabelsWebhookURL)
	importClient := webhook.NewImportClient(cfg.ImportWebhookURL)

	// Core domain services.
	manager := broadcast.NewManager(broadcastStore, managerObjects)
	dispatcher := dispatch.New(messageStore, deliveryClient, dispatchObjects)

	// Warm the broadcast group cache; a cold start with an unreachable
	// database already failed above, so log and continue on refresh errors.
	if _, err := manager.Refresh(context.Background()); err != nil {
		slog.Warn("initial broadcast group fetch failed", "error", err)
	}

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, router.Handlers{
		Auth:       handlers.NewAuth(sessionStore, operatorStore),
		Broadcasts: handlers.NewBroadcasts(manager),
		Messages:   handlers.NewMessages(dispatcher),
		Labels:     handlers.NewLabels(labelsClient),
		Contacts:   handlers.NewContacts(importClient),
	})

	// Create the HTTP server with sensible timeouts. WriteTimeout must
	// accommodate webhook calls that wait on the delivery endpoint (30s
	// client timeout) plus media uploads.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
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
