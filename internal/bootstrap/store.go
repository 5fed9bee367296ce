package bootstrap

import (
	"context"
	"fmt"

	"github.com/jonesrussell/product-curator/internal/blacklist"
	"github.com/jonesrussell/product-curator/internal/config"
	"github.com/jonesrussell/product-curator/internal/database"
	"github.com/jonesrussell/product-curator/internal/logger"
	"github.com/jonesrussell/product-curator/internal/repository"
)

// SetupStore creates the category store for the configured backend and
// returns it with its close function.
func SetupStore(cfg *config.Config, log logger.Logger) (blacklist.Store, func() error, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		log.Info("Using in-memory category store")
		return blacklist.NewMemoryStore(), func() error { return nil }, nil

	case config.StoreBackendPostgres:
		db, err := database.New(cfg, log)
		if err != nil {
			return nil, nil, fmt.Errorf("database connection: %w", err)
		}
		return repository.NewCategoryRepository(db.DB(), log), db.Close, nil

	case config.StoreBackendFirestore:
		store, err := blacklist.NewFirestoreStore(
			context.Background(),
			cfg.Firebase.ProjectID,
			cfg.Firebase.CredentialsFile,
			cfg.Firebase.Collection,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("firestore client: %w", err)
		}
		log.Info("Using Firestore category store",
			logger.String("project_id", cfg.Firebase.ProjectID),
			logger.String("collection", cfg.Firebase.Collection),
		)
		return store, store.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
