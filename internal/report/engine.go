// Package report computes period summaries and trends over the ledger store.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
)

// Engine derives summaries and trends from the ledger. It holds no state of
// its own and never writes to the store.
type Engine struct {
	store service.Storage
}

// New creates a reporting engine over the given store.
func New(store service.Storage) *Engine {
	return &Engine{store: store}
}

// roundPercent rounds a percentage to one decimal place for display.
func roundPercent(v float64) float64 {
	return math.Round(v*10) / 10
}

// GenerateSummary computes the financial summary for a calendar month.
// ByCategory captures the expense distribution only: income transactions
// contribute to TotalIncome but never to the category breakdown.
func (e *Engine) GenerateSummary(ctx context.Context, month, year int) (*model.Summary, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: got %d", common.ErrInvalidMonth, month)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	transactions, err := e.store.GetTransactionsByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for %d/%d: %w", month, year, err)
	}

	summary := &model.Summary{
		Month:      month,
		Year:       year,
		ByCategory: []model.CategoryBreakdown{},
	}

	expenseSums := make(map[int64]float64)
	categoryNames := make(map[int64]string)

	for _, txn := range transactions {
		switch txn.Type {
		case model.TypeIncome:
			summary.TotalIncome += txn.Amount
		case model.TypeExpense:
			summary.TotalExpense += txn.Amount
			expenseSums[txn.CategoryID] += txn.Amount
			categoryNames[txn.CategoryID] = txn.Category
		}
	}

	// Category insertion order (ascending id) is the deterministic tie-break
	// for equal amounts.
	ids := make([]int64, 0, len(expenseSums))
	for id := range expenseSums {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	sort.SliceStable(ids, func(i, j int) bool { return expenseSums[ids[i]] > expenseSums[ids[j]] })

	for _, id := range ids {
		amount := expenseSums[id]
		percentage := 0.0
		if summary.TotalExpense > 0 {
			percentage = roundPercent(amount / summary.TotalExpense * 100)
		}
		summary.ByCategory = append(summary.ByCategory, model.CategoryBreakdown{
			Category:   categoryNames[id],
			Amount:     amount,
			Percentage: percentage,
		})
	}

	if len(transactions) == 0 {
		slog.Debug("no transactions in period", "month", month, "year", year)
	}

	slog.Debug("generated summary",
		"month", month,
		"year", year,
		"income", summary.TotalIncome,
		"expense", summary.TotalExpense,
		"categories", len(summary.ByCategory))

	return summary, nil
}

// MonthlyTrend returns income and expense totals for every month of the given
// year. The result always has exactly 12 entries; months with no activity are
// zero-valued.
func (e *Engine) MonthlyTrend(ctx context.Context, year int) ([]model.MonthTotal, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	transactions, err := e.store.GetTransactionsByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for %d: %w", year, err)
	}

	trend := make([]model.MonthTotal, 12)
	for i := range trend {
		trend[i].Month = i + 1
	}

	for _, txn := range transactions {
		idx := int(txn.Date.Month()) - 1
		switch txn.Type {
		case model.TypeIncome:
			trend[idx].Income += txn.Amount
		case model.TypeExpense:
			trend[idx].Expense += txn.Amount
		}
	}

	return trend, nil
}
