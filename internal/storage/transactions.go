package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
)

// roundAmount normalizes an amount to two fractional digits, the precision
// the ledger stores.
func roundAmount(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// dateOnly strips the time-of-day component so transactions group cleanly
// into calendar days and months.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddTransaction inserts a new transaction, resolving or creating its category
// by name. Category resolution and the insert run in a single database
// transaction: either both succeed or nothing is written.
func (s *SQLiteStorage) AddTransaction(ctx context.Context, txn model.NewTransaction) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateNewTransaction(txn); err != nil {
		return nil, err
	}

	date := txn.Date
	if date.IsZero() {
		date = time.Now()
	}
	date = dateOnly(date)
	amount := roundAmount(txn.Amount)
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	cat, err := getOrCreateCategoryTx(ctx, tx, txn.Category)
	if err != nil {
		return nil, err
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO transactions (amount, description, category_id, transaction_type, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		amount, txn.Description, cat.ID, string(txn.Type), date, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction ID: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Debug("added transaction",
		"id", id,
		"type", txn.Type,
		"amount", amount,
		"category", cat.Name)

	return &model.Transaction{
		ID:          id,
		Amount:      amount,
		Description: txn.Description,
		Category:    cat.Name,
		CategoryID:  cat.ID,
		Type:        txn.Type,
		Date:        date,
		CreatedAt:   now,
	}, nil
}

const transactionColumns = `
	t.id, t.amount, t.description, t.category_id, c.name, t.transaction_type, t.date, t.created_at`

func scanTransaction(row interface{ Scan(...any) error }) (*model.Transaction, error) {
	var txn model.Transaction
	var txnType string
	if err := row.Scan(
		&txn.ID, &txn.Amount, &txn.Description, &txn.CategoryID,
		&txn.Category, &txnType, &txn.Date, &txn.CreatedAt,
	); err != nil {
		return nil, err
	}
	txn.Type = model.TransactionType(txnType)
	return &txn, nil
}

// GetTransaction returns the transaction with the given id.
func (s *SQLiteStorage) GetTransaction(ctx context.Context, id int64) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT` + transactionColumns + `
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.id = ?`

	txn, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %d", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction %d: %w", id, err)
	}
	return txn, nil
}

// DeleteTransaction removes the transaction with the given id. Deleting a
// transaction never touches its category or any other row.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: transaction %d", common.ErrNotFound, id)
	}

	slog.Debug("deleted transaction", "id", id)
	return nil
}

// ListTransactions returns transactions ordered by date descending, with ties
// broken by insertion order. The filter's type restriction and limit are
// applied in the query; every call re-reads current state.
func (s *SQLiteStorage) ListTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if filter.Limit <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, filter.Limit)
	}

	query := `
		SELECT` + transactionColumns + `
		FROM transactions t
		JOIN categories c ON c.id = t.category_id`
	args := []any{}

	if filter.Type != nil {
		query += `
		WHERE t.transaction_type = ?`
		args = append(args, string(*filter.Type))
	}

	query += `
		ORDER BY t.date DESC, t.id ASC
		LIMIT ?`
	args = append(args, filter.Limit)

	return s.queryTransactions(ctx, query, args...)
}

// GetTransactionsByDateRange returns transactions with start <= date < end,
// ordered by date then insertion order.
func (s *SQLiteStorage) GetTransactionsByDateRange(ctx context.Context, start, end time.Time) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %v is before %v", ErrInvalidDateRange, end, start)
	}

	query := `
		SELECT` + transactionColumns + `
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.date >= ? AND t.date < ?
		ORDER BY t.date ASC, t.id ASC`

	return s.queryTransactions(ctx, query, start, end)
}

// CountTransactions returns the total number of transactions in the ledger.
func (s *SQLiteStorage) CountTransactions(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func (s *SQLiteStorage) queryTransactions(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	slog.Debug("retrieved transactions", "count", len(transactions))
	return transactions, nil
}
