// Package blacklist provides the category exclusion service backed by
// a pluggable document store.
package blacklist

import (
	"context"
	"sort"
	"sync"

	"github.com/jonesrussell/product-curator/internal/category"
	"github.com/jonesrussell/product-curator/internal/logger"
	"github.com/jonesrussell/product-curator/internal/models"
)

// Store is the document store contract: one document per normalized
// category name holding a boolean exclusion flag. Any conforming
// key-value document store satisfies it.
type Store interface {
	// Get returns the exclusion flag for key. A missing document reads
	// as false with no error; absence and "not excluded" are
	// indistinguishable to callers.
	Get(ctx context.Context, key string) (bool, error)
	// Set upserts the exclusion flag for key.
	Set(ctx context.Context, key string, excluded bool) error
	// ListBlacklisted returns the ids of all documents whose flag is
	// set, filtered store-side.
	ListBlacklisted(ctx context.Context) ([]string, error)
	// ListAll returns every known category with its flag.
	ListAll(ctx context.Context) ([]models.CategoryStatus, error)
}

// Service wraps a Store with name normalization and fail-open
// degradation: store errors are logged and swallowed, never propagated,
// because blacklist unavailability must not block product browsing.
type Service struct {
	store Store
	log   logger.Logger
}

// NewService creates the blacklist service. A nil store is allowed and
// makes every lookup fail open.
func NewService(store Store, log logger.Logger) *Service {
	return &Service{
		store: store,
		log:   log,
	}
}

// GetStatus reports whether the category is blacklisted. Returns false
// for empty input, an unconfigured store, a missing entry, or a store
// error.
func (s *Service) GetStatus(ctx context.Context, raw string) bool {
	if s.store == nil {
		return false
	}

	key := category.Normalize(raw)
	if key == "" {
		return false
	}

	excluded, err := s.store.Get(ctx, key)
	if err != nil {
		s.log.Warn("Blacklist lookup failed, treating as not blacklisted",
			logger.String("category", key),
			logger.Error(err),
		)
		return false
	}
	return excluded
}

// GetBatchStatus resolves the exclusion flags for a set of raw category
// names. Inputs are de-duplicated and normalized; one lookup is issued
// per unique normalized key, all concurrently, and the call returns
// only after every lookup completes. The result is keyed by both the
// normalized key and each raw spelling that resolves to it.
func (s *Service) GetBatchStatus(ctx context.Context, raws []string) map[string]bool {
	result := make(map[string]bool)
	if s.store == nil || len(raws) == 0 {
		return result
	}

	unique := make([]string, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	for _, raw := range raws {
		if raw == "" {
			continue
		}
		key := category.Normalize(raw)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, key)
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, key := range unique {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			excluded, err := s.store.Get(ctx, key)
			if err != nil {
				s.log.Warn("Blacklist batch lookup failed for category",
					logger.String("category", key),
					logger.Error(err),
				)
				excluded = false
			}
			mu.Lock()
			result[key] = excluded
			mu.Unlock()
		}(key)
	}
	wg.Wait()

	// Mirror each raw spelling onto its normalized key's value so
	// callers can look up by either.
	for _, raw := range raws {
		if raw == "" {
			continue
		}
		if excluded, ok := result[category.Normalize(raw)]; ok {
			result[raw] = excluded
		}
	}

	return result
}

// SetStatus upserts one category's exclusion flag and reports success.
// Creating a new entry and updating an existing one are
// indistinguishable to the caller.
func (s *Service) SetStatus(ctx context.Context, raw string, excluded bool) bool {
	if s.store == nil {
		s.log.Warn("Blacklist store not configured, cannot update category")
		return false
	}

	key := category.Normalize(raw)
	if key == "" {
		s.log.Warn("Refusing to update empty category id")
		return false
	}

	if err := s.store.Set(ctx, key, excluded); err != nil {
		s.log.Error("Failed to update category blacklist status",
			logger.String("category", key),
			logger.Bool("is_blacklisted", excluded),
			logger.Error(err),
		)
		return false
	}

	s.log.Info("Category blacklist status updated",
		logger.String("category", key),
		logger.Bool("is_blacklisted", excluded),
	)
	return true
}

// BatchSetStatus applies updates one by one and tallies results. A nil
// store fails every entry.
func (s *Service) BatchSetStatus(ctx context.Context, updates []models.CategoryUpdate) models.BatchUpdateResult {
	if s.store == nil {
		return models.BatchUpdateResult{Failed: len(updates)}
	}

	var result models.BatchUpdateResult
	for _, u := range updates {
		if s.SetStatus(ctx, u.ID, u.IsBlacklisted) {
			result.Success++
		} else {
			result.Failed++
		}
	}
	return result
}

// ListBlacklisted returns the ids of all blacklisted categories, or an
// empty slice when the store is unconfigured or unreachable.
func (s *Service) ListBlacklisted(ctx context.Context) []string {
	if s.store == nil {
		return []string{}
	}

	ids, err := s.store.ListBlacklisted(ctx)
	if err != nil {
		s.log.Warn("Failed to list blacklisted categories", logger.Error(err))
		return []string{}
	}
	if ids == nil {
		ids = []string{}
	}
	return ids
}

// ListAllWithStatus returns every known category with its flag, sorted
// lexicographically by id. Degrades to an empty slice on failure.
func (s *Service) ListAllWithStatus(ctx context.Context) []models.CategoryStatus {
	if s.store == nil {
		return []models.CategoryStatus{}
	}

	categories, err := s.store.ListAll(ctx)
	if err != nil {
		s.log.Warn("Failed to list categories", logger.Error(err))
		return []models.CategoryStatus{}
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].ID < categories[j].ID
	})
	return categories
}
