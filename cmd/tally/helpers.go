package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/service"
	"github.com/Veraticus/tally/internal/storage"
)

// initStorage opens the ledger database, migrates the schema, and ensures the
// default categories exist. Callers must Close the returned storage.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := store.SeedDefaultCategories(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to seed default categories: %w", err)
	}

	return store, nil
}

// parseDate parses a YYYY-MM-DD flag value; an empty value means today.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}
	return date, nil
}

// defaultPeriod fills in the current month and year for unset flags.
func defaultPeriod(month, year int) (int, int) {
	now := time.Now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	return month, year
}
