// Package model defines the core domain models used throughout the application.
package model

import "time"

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	// TypeIncome marks a transaction that adds money to the ledger.
	TypeIncome TransactionType = "income"
	// TypeExpense marks a transaction that removes money from the ledger.
	TypeExpense TransactionType = "expense"
)

// Valid reports whether the type is one of the two supported values.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction represents a single dated financial event in the ledger.
// Amount is always positive; Type determines its direction.
type Transaction struct {
	Date        time.Time
	CreatedAt   time.Time
	Description string
	Category    string
	Type        TransactionType
	ID          int64
	CategoryID  int64
	Amount      float64
}

// NewTransaction carries the caller-supplied fields for a transaction insert.
// Category is resolved (or created) by name; Date defaults to today when zero.
type NewTransaction struct {
	Date        time.Time
	Description string
	Category    string
	Type        TransactionType
	Amount      float64
}
