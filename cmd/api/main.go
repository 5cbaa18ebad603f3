package main

import (
	"context"
	"log"

	"privacy-cargo-tracking/internal/core/cache"
	"privacy-cargo-tracking/internal/core/config"
	"privacy-cargo-tracking/internal/core/logger"
	"privacy-cargo-tracking/internal/core/server"
	cargoadapter "privacy-cargo-tracking/internal/features/cargo/adapters"
	cargohandler "privacy-cargo-tracking/internal/features/cargo/handler"
	"privacy-cargo-tracking/internal/features/cargo/ports"
	cargoservice "privacy-cargo-tracking/internal/features/cargo/service"
	"privacy-cargo-tracking/internal/fhe"

	"go.uber.org/zap"
)

// @title Privacy Cargo Tracking API
// @version 1.0
// @description Cargo shipment records with homomorphically encrypted confidential fields.
// @contact.name API Support
// @contact.email support@privacycargotracking.com
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Initialize storage and run Health Check
	store, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Failed to create Redis adapter", zap.Error(err))
	}
	defer store.Close()

	if err := store.Ping(context.Background()); err != nil {
		l.Fatal("Redis Health Check Failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	// Initialize the encrypted-value engine. Keys are fresh per process;
	// ciphertexts and grants persist in Redis across restarts.
	engine, err := fhe.NewEngine(store, cfg.FHE.LogN)
	if err != nil {
		l.Fatal("Failed to init encryption engine", zap.Error(err))
	}
	l.Info("Encryption engine ready",
		zap.Int("log_n", cfg.FHE.LogN),
		zap.String("service_principal", engine.SelfAddress()),
	)

	// Initialize Notifiers
	notifiers := []ports.Notifier{
		cargoadapter.NewRedisNotifier(store, cfg.Notify.Channel),
	}
	if cfg.Notify.WebhookURL != "" {
		webhook, err := cargoadapter.NewWebhookNotifier(cfg.Notify.WebhookURL, cfg.Notify.EgressProxyURL)
		if err != nil {
			l.Fatal("Failed to init webhook notifier", zap.Error(err))
		}
		notifiers = append(notifiers, webhook)
		l.Info("Dashboard webhook enabled", zap.String("url", cfg.Notify.WebhookURL))
	}

	// Initialize Cargo Service & Handler
	repo := cargoadapter.NewRedisShipmentRepository(store)
	cargoSvc := cargoservice.NewCargoService(repo, engine, notifiers)
	cargoHdl := cargohandler.NewCargoHandler(cargoSvc)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Post("/cargo", cargoHdl.CreateCargo)
	srv.App.Get("/cargo", cargoHdl.ListOwned)
	srv.App.Put("/cargo/:id/status", cargoHdl.UpdateStatus)
	srv.App.Put("/cargo/:id/privacy", cargoHdl.UpdatePrivacy)
	srv.App.Post("/cargo/:id/viewer", cargoHdl.AuthorizeViewer)
	srv.App.Get("/cargo/:id/encrypted/:field", cargoHdl.GetEncryptedField)
	srv.App.Get("/cargo/:id/:field", cargoHdl.GetField)
	srv.App.Get("/public/cargo/:id/:field", cargoHdl.GetPublicField)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
