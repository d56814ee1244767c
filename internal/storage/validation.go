// Package storage provides the data persistence layer for the tally application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrInvalidLimit     = errors.New("limit must be greater than zero")
	ErrInvalidDateRange = errors.New("start date must be before end date")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateNewTransaction checks caller-supplied fields before any SQL runs.
func validateNewTransaction(txn model.NewTransaction) error {
	if !txn.Type.Valid() {
		return fmt.Errorf("%w: %q", common.ErrInvalidTransactionType, txn.Type)
	}
	if txn.Amount <= 0 {
		return fmt.Errorf("%w: got %.2f", common.ErrInvalidAmount, txn.Amount)
	}
	if err := validateString(txn.Category, "category"); err != nil {
		return err
	}
	return nil
}
