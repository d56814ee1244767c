// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/tally/internal/model"
)

// TransactionFilter defines filtering options for transaction listings.
// A nil Type means no filtering; Limit caps the number of rows returned.
type TransactionFilter struct {
	Type  *model.TransactionType
	Limit int
}

// Storage defines the contract for the ledger's persistence layer.
type Storage interface {
	// Category operations
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	GetOrCreateCategory(ctx context.Context, name string) (*model.Category, error)

	// Transaction operations
	AddTransaction(ctx context.Context, txn model.NewTransaction) (*model.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	GetTransactionsByDateRange(ctx context.Context, start, end time.Time) ([]model.Transaction, error)
	CountTransactions(ctx context.Context) (int, error)

	// Database management
	Migrate(ctx context.Context) error
	SeedDefaultCategories(ctx context.Context) error
	Close() error
}
