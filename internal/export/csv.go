// Package export writes ledger contents to derived artifacts like CSV files.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/tally/internal/service"
)

// WriteCSV exports every transaction to a CSV file at path, most recent first.
// It returns the number of transactions written. The export is a derived
// artifact: the database file remains the only source of truth.
func WriteCSV(ctx context.Context, store service.Storage, path string) (int, error) {
	count, err := store.CountTransactions(ctx)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create export file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	header := []string{"id", "date", "description", "category", "type", "amount"}
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return 0, fmt.Errorf("failed to write CSV header: %w", err)
	}

	if count > 0 {
		transactions, listErr := store.ListTransactions(ctx, service.TransactionFilter{Limit: count})
		if listErr != nil {
			_ = f.Close()
			return 0, listErr
		}

		bar := progressbar.NewOptions(len(transactions),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Exporting transactions..."),
		)

		for _, txn := range transactions {
			record := []string{
				strconv.FormatInt(txn.ID, 10),
				txn.Date.Format("2006-01-02"),
				txn.Description,
				txn.Category,
				string(txn.Type),
				strconv.FormatFloat(txn.Amount, 'f', 2, 64),
			}
			if err := w.Write(record); err != nil {
				_ = f.Close()
				return 0, fmt.Errorf("failed to write transaction %d: %w", txn.ID, err)
			}
			_ = bar.Add(1)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return 0, fmt.Errorf("failed to flush CSV: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("failed to close export file: %w", err)
	}

	slog.Info("exported transactions", "count", count, "path", path)
	return count, nil
}
