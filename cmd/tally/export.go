package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/export"
)

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all transactions to CSV",
		Long:  `Write every transaction in the ledger to a CSV file. The database remains the source of truth.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			count, err := export.WriteCSV(ctx, store, output)
			if err != nil {
				return fmt.Errorf("failed to export transactions: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d transactions to: %s", count, output)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "export.csv", "Output CSV file")

	return cmd
}
