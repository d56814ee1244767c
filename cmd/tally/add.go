package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/model"
)

func addCmd() *cobra.Command {
	var (
		amount      float64
		description string
		category    string
		txnType     string
		date        string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new transaction",
		Long:  `Record an income or expense transaction. Unknown categories are created on first use.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			txnDate, err := parseDate(date)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			txn, err := store.AddTransaction(ctx, model.NewTransaction{
				Amount:      amount,
				Description: description,
				Category:    category,
				Type:        model.TransactionType(txnType),
				Date:        txnDate,
			})
			if err != nil {
				return fmt.Errorf("failed to add transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %s: %s - $%.2f (ID: %d)",
				txn.Type, txn.Description, txn.Amount, txn.ID)))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "Transaction amount")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Transaction description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (e.g., food, transport, salary)")
	cmd.Flags().StringVarP(&txnType, "type", "t", "", "Transaction type (income or expense)")
	cmd.Flags().StringVar(&date, "date", "", "Transaction date (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}
