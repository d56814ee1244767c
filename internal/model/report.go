package model

// CategoryBreakdown is one category's share of a month's expenses.
type CategoryBreakdown struct {
	Category   string
	Amount     float64
	Percentage float64
}

// Summary aggregates one calendar month of ledger activity. ByCategory covers
// expense transactions only and is sorted by amount descending.
type Summary struct {
	ByCategory   []CategoryBreakdown
	TotalIncome  float64
	TotalExpense float64
	Month        int
	Year         int
}

// MonthTotal holds the income and expense sums for a single month.
type MonthTotal struct {
	Month   int
	Income  float64
	Expense float64
}
