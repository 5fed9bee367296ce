// Package repository implements the category store on PostgreSQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jonesrussell/product-curator/internal/logger"
	"github.com/jonesrussell/product-curator/internal/models"
)

// CategoryRepository stores category exclusion flags in the categories
// table, one row per normalized category name. It satisfies
// blacklist.Store.
type CategoryRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewCategoryRepository(db *sql.DB, log logger.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:     db,
		logger: log,
	}
}

// Get returns the exclusion flag for id. A missing row reads as false.
func (r *CategoryRepository) Get(ctx context.Context, id string) (bool, error) {
	query := `SELECT is_exclude FROM categories WHERE id = $1`

	var excluded bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&excluded)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query category: %w", err)
	}
	return excluded, nil
}

// Set upserts the exclusion flag for id.
func (r *CategoryRepository) Set(ctx context.Context, id string, excluded bool) error {
	now := time.Now()

	query := `
		INSERT INTO categories (id, is_exclude, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (id) DO UPDATE SET
			is_exclude = EXCLUDED.is_exclude,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, id, excluded, now); err != nil {
		return fmt.Errorf("upsert category: %w", err)
	}
	return nil
}

// ListBlacklisted returns the ids of all excluded categories, filtered
// in the database.
func (r *CategoryRepository) ListBlacklisted(ctx context.Context) ([]string, error) {
	query := `SELECT id FROM categories WHERE is_exclude = true ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query blacklisted categories: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, fmt.Errorf("scan category id: %w", scanErr)
		}
		ids = append(ids, id)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate categories: %w", rowsErr)
	}
	return ids, nil
}

// ListAll returns every category row with its flag.
func (r *CategoryRepository) ListAll(ctx context.Context) ([]models.CategoryStatus, error) {
	query := `SELECT id, is_exclude FROM categories ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]models.CategoryStatus, 0)
	for rows.Next() {
		var c models.CategoryStatus
		if scanErr := rows.Scan(&c.ID, &c.IsBlacklisted); scanErr != nil {
			return nil, fmt.Errorf("scan category: %w", scanErr)
		}
		categories = append(categories, c)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate categories: %w", rowsErr)
	}
	return categories, nil
}
