package report

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/storage"
)

func createTestEngine(t *testing.T) (*Engine, *storage.SQLiteStorage, func()) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return New(store), store, func() { _ = store.Close() }
}

func addFixture(t *testing.T, store *storage.SQLiteStorage, amount float64, category string, txnType model.TransactionType, day time.Time) {
	t.Helper()
	_, err := store.AddTransaction(context.Background(), model.NewTransaction{
		Amount:      amount,
		Description: category + " fixture",
		Category:    category,
		Type:        txnType,
		Date:        day,
	})
	if err != nil {
		t.Fatalf("Failed to add fixture transaction: %v", err)
	}
}

// seedNovember loads the reference dataset: one income and three expenses in
// November 2024 across two categories.
func seedNovember(t *testing.T, store *storage.SQLiteStorage) {
	t.Helper()
	nov := func(day int) time.Time { return time.Date(2024, time.November, day, 0, 0, 0, 0, time.UTC) }
	addFixture(t, store, 2000.00, "salary", model.TypeIncome, nov(1))
	addFixture(t, store, 100.00, "food", model.TypeExpense, nov(15))
	addFixture(t, store, 50.00, "food", model.TypeExpense, nov(20))
	addFixture(t, store, 30.00, "transport", model.TypeExpense, nov(10))
}

func TestGenerateSummary(t *testing.T) {
	engine, store, cleanup := createTestEngine(t)
	defer cleanup()

	seedNovember(t, store)
	ctx := context.Background()

	summary, err := engine.GenerateSummary(ctx, 11, 2024)
	if err != nil {
		t.Fatalf("GenerateSummary failed: %v", err)
	}

	if summary.TotalIncome != 2000.00 {
		t.Errorf("Expected total income 2000.00, got %v", summary.TotalIncome)
	}
	if summary.TotalExpense != 180.00 {
		t.Errorf("Expected total expense 180.00, got %v", summary.TotalExpense)
	}

	want := []model.CategoryBreakdown{
		{Category: "food", Amount: 150.00, Percentage: 83.3},
		{Category: "transport", Amount: 30.00, Percentage: 16.7},
	}
	if len(summary.ByCategory) != len(want) {
		t.Fatalf("Expected %d categories, got %d", len(want), len(summary.ByCategory))
	}
	for i, w := range want {
		got := summary.ByCategory[i]
		if got.Category != w.Category {
			t.Errorf("Position %d: expected category %q, got %q", i, w.Category, got.Category)
		}
		if got.Amount != w.Amount {
			t.Errorf("Position %d: expected amount %v, got %v", i, w.Amount, got.Amount)
		}
		if math.Abs(got.Percentage-w.Percentage) > 0.05 {
			t.Errorf("Position %d: expected percentage %v, got %v", i, w.Percentage, got.Percentage)
		}
	}
}

func TestGenerateSummary_MonthWithNoActivity(t *testing.T) {
	engine, store, cleanup := createTestEngine(t)
	defer cleanup()

	seedNovember(t, store)

	summary, err := engine.GenerateSummary(context.Background(), 10, 2024)
	if err != nil {
		t.Fatalf("GenerateSummary failed: %v", err)
	}

	if summary.TotalIncome != 0 {
		t.Errorf("Expected zero income, got %v", summary.TotalIncome)
	}
	if summary.TotalExpense != 0 {
		t.Errorf("Expected zero expense, got %v", summary.TotalExpense)
	}
	if len(summary.ByCategory) != 0 {
		t.Errorf("Expected empty category breakdown, got %d entries", len(summary.ByCategory))
	}
}

func TestGenerateSummary_EmptyStore(t *testing.T) {
	engine, _, cleanup := createTestEngine(t)
	defer cleanup()

	summary, err := engine.GenerateSummary(context.Background(), 6, 2024)
	if err != nil {
		t.Fatalf("GenerateSummary failed: %v", err)
	}
	if summary.TotalIncome != 0 || summary.TotalExpense != 0 || len(summary.ByCategory) != 0 {
		t.Errorf("Expected all-zero summary on empty store, got %+v", summary)
	}
}

func TestGenerateSummary_IncomeNeverInBreakdown(t *testing.T) {
	engine, store, cleanup := createTestEngine(t)
	defer cleanup()

	jun := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	addFixture(t, store, 500.00, "salary", model.TypeIncome, jun)
	addFixture(t, store, 200.00, "freelance", model.TypeIncome, jun)

	summary, err := engine.GenerateSummary(context.Background(), 6, 2024)
	if err != nil {
		t.Fatalf("GenerateSummary failed: %v", err)
	}
	if summary.TotalIncome != 700.00 {
		t.Errorf("Expected income 700.00, got %v", summary.TotalIncome)
	}
	if len(summary.ByCategory) != 0 {
		t.Errorf("Income categories must not appear in breakdown, got %+v", summary.ByCategory)
	}
}

func TestGenerateSummary_EqualAmountsUseInsertionOrder(t *testing.T) {
	engine, store, cleanup := createTestEngine(t)
	defer cleanup()

	jun := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	addFixture(t, store, 25.00, "utilities", model.TypeExpense, jun)
	addFixture(t, store, 25.00, "entertainment", model.TypeExpense, jun)

	summary, err := engine.GenerateSummary(context.Background(), 6, 2024)
	if err != nil {
		t.Fatalf("GenerateSummary failed: %v", err)
	}
	if len(summary.ByCategory) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(summary.ByCategory))
	}
	// utilities was created first, so it wins the tie
	if summary.ByCategory[0].Category != "utilities" || summary.ByCategory[1].Category != "entertainment" {
		t.Errorf("Expected insertion-order tie-break, got %q then %q",
			summary.ByCategory[0].Category, summary.ByCategory[1].Category)
	}
}

func TestGenerateSummary_InvalidMonth(t *testing.T) {
	engine, _, cleanup := createTestEngine(t)
	defer cleanup()

	for _, month := range []int{0, 13, -1} {
		if _, err := engine.GenerateSummary(context.Background(), month, 2024); !errors.Is(err, common.ErrInvalidMonth) {
			t.Errorf("Month %d: expected ErrInvalidMonth, got %v", month, err)
		}
	}
}

func TestMonthlyTrend(t *testing.T) {
	engine, store, cleanup := createTestEngine(t)
	defer cleanup()

	seedNovember(t, store)

	trend, err := engine.MonthlyTrend(context.Background(), 2024)
	if err != nil {
		t.Fatalf("MonthlyTrend failed: %v", err)
	}

	if len(trend) != 12 {
		t.Fatalf("Expected exactly 12 entries, got %d", len(trend))
	}

	for i, month := range trend {
		if month.Month != i+1 {
			t.Errorf("Position %d: expected month %d, got %d", i, i+1, month.Month)
		}
		if month.Month == 11 {
			if month.Income != 2000.00 {
				t.Errorf("November: expected income 2000.00, got %v", month.Income)
			}
			if month.Expense != 180.00 {
				t.Errorf("November: expected expense 180.00, got %v", month.Expense)
			}
			continue
		}
		if month.Income != 0 || month.Expense != 0 {
			t.Errorf("Month %d: expected zero totals, got income=%v expense=%v",
				month.Month, month.Income, month.Expense)
		}
	}
}

func TestMonthlyTrend_ExcludesOtherYears(t *testing.T) {
	engine, store, cleanup := createTestEngine(t)
	defer cleanup()

	addFixture(t, store, 100.00, "food", model.TypeExpense,
		time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC))
	addFixture(t, store, 200.00, "food", model.TypeExpense,
		time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))

	trend, err := engine.MonthlyTrend(context.Background(), 2024)
	if err != nil {
		t.Fatalf("MonthlyTrend failed: %v", err)
	}
	for _, month := range trend {
		if month.Income != 0 || month.Expense != 0 {
			t.Errorf("Month %d: expected no activity from other years, got %+v", month.Month, month)
		}
	}
}
