package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
)

// defaultCategories is seeded on first initialization. The first three cover
// income, the rest expenses.
var defaultCategories = []string{
	"salary",
	"freelance",
	"investment",
	"food",
	"transport",
	"rent",
	"utilities",
	"entertainment",
	"shopping",
	"other",
}

// normalizeCategoryName applies the case normalization under which category
// names are unique.
func normalizeCategoryName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// GetCategories returns all categories ordered by name.
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, created_at
		FROM categories
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// GetCategoryByName returns a category by its case-normalized name.
// Returns (nil, nil) when no such category exists.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	return getCategoryByName(ctx, s.db, normalizeCategoryName(name))
}

// GetOrCreateCategory looks up a category by name, creating it if absent.
// Names are lowercased before lookup so "Food" and "food" resolve to the same row.
func (s *SQLiteStorage) GetOrCreateCategory(ctx context.Context, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	cat, err := getOrCreateCategoryTx(ctx, tx, name)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit category: %w", err)
	}
	return cat, nil
}

// SeedDefaultCategories ensures the fixed default category list exists.
// Safe to call on every startup; existing rows are never duplicated.
func (s *SQLiteStorage) SeedDefaultCategories(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	created := 0
	for _, name := range defaultCategories {
		existing, err := getCategoryByName(ctx, tx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if _, err := insertCategory(ctx, tx, name); err != nil {
			return err
		}
		created++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit default categories: %w", err)
	}

	if created > 0 {
		slog.Info("seeded default categories", "created", created)
	}
	return nil
}

// queryer is the subset of sql.DB and sql.Tx used by category lookups.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getCategoryByName(ctx context.Context, q queryer, name string) (*model.Category, error) {
	query := `
		SELECT id, name, created_at
		FROM categories
		WHERE name = ?`

	var cat model.Category
	err := q.QueryRowContext(ctx, query, name).Scan(&cat.ID, &cat.Name, &cat.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category %q: %w", name, err)
	}
	return &cat, nil
}

func insertCategory(ctx context.Context, tx *sql.Tx, name string) (*model.Category, error) {
	now := time.Now()
	result, err := tx.ExecContext(ctx,
		`INSERT INTO categories (name, created_at) VALUES (?, ?)`, name, now)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get category ID: %w", err)
	}

	return &model.Category{ID: id, Name: name, CreatedAt: now}, nil
}

// getOrCreateCategoryTx resolves a category by normalized name within a
// transaction. The UNIQUE constraint on name is the race breaker: a constraint
// violation means another writer created the row first, so re-read it.
func getOrCreateCategoryTx(ctx context.Context, tx *sql.Tx, name string) (*model.Category, error) {
	normalized := normalizeCategoryName(name)

	existing, err := getCategoryByName(ctx, tx, normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	cat, err := insertCategory(ctx, tx, normalized)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			retried, retryErr := getCategoryByName(ctx, tx, normalized)
			if retryErr != nil {
				return nil, retryErr
			}
			if retried != nil {
				return retried, nil
			}
			return nil, fmt.Errorf("%w: %q", common.ErrDuplicateCategory, normalized)
		}
		return nil, fmt.Errorf("failed to create category %q: %w", normalized, err)
	}

	slog.Info("created new category", "name", cat.Name, "id", cat.ID)
	return cat, nil
}
