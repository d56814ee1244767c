package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/common"
)

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <transaction-id>",
		Short: "Delete a transaction by ID",
		Long:  `Remove a single transaction from the ledger. Its category is not affected.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction id %q: %w", args[0], err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			// Fetch first so the confirmation can name what was removed
			txn, err := store.GetTransaction(ctx, id)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return common.NewUserError(fmt.Sprintf("transaction %d not found", id), nil)
				}
				return fmt.Errorf("failed to look up transaction: %w", err)
			}

			if err := store.DeleteTransaction(ctx, id); err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted transaction: %s", txn.Description)))
			return nil
		},
	}
}
