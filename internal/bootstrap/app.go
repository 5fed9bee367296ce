// Package bootstrap handles application initialization and lifecycle
// management for the product-curator service.
package bootstrap

import (
	"fmt"

	"github.com/jonesrussell/product-curator/internal/blacklist"
	"github.com/jonesrussell/product-curator/internal/logger"
	"github.com/jonesrussell/product-curator/internal/session"
)

const version = "dev"

// Start initializes and starts the product-curator application.
func Start() error {
	// Phase 1: Load config and create logger
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := CreateLogger(cfg, version)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Phase 2: Setup category store
	store, closeStore, err := SetupStore(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to set up category store: %w", err)
	}
	defer func() {
		if closeErr := closeStore(); closeErr != nil {
			log.Error("Failed to close category store", logger.Error(closeErr))
		}
	}()

	blacklistService := blacklist.NewService(store, log)

	// Phase 3: Setup event publisher (optional)
	publisher := SetupEventPublisher(cfg, log)

	// Phase 4: Setup sessions and run HTTP server
	sessions := session.NewStore(cfg.Session.TTL, log)
	defer sessions.Close()

	server := SetupHTTPServer(cfg, sessions, blacklistService, publisher, log)

	log.Info("Starting HTTP server",
		logger.String("host", cfg.Server.Host),
		logger.Int("port", cfg.Server.Port),
		logger.String("store_backend", cfg.Store.Backend),
	)

	if runErr := server.Run(); runErr != nil {
		log.Error("Server error", logger.Error(runErr))
		return fmt.Errorf("server error: %w", runErr)
	}

	log.Info("Server exited")
	return nil
}
