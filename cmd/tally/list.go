package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
)

func listCmd() *cobra.Command {
	var (
		limit   int
		txnType string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent transactions",
		Long:  `Display recent transactions ordered by date, most recent first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			filter := service.TransactionFilter{Limit: limit}
			switch txnType {
			case "all":
			case string(model.TypeIncome), string(model.TypeExpense):
				t := model.TransactionType(txnType)
				filter.Type = &t
			default:
				return fmt.Errorf("invalid type filter %q (income, expense, all)", txnType)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			transactions, err := store.ListTransactions(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}

			if len(transactions) == 0 {
				fmt.Println(cli.FormatWarning("No transactions found"))
				return nil
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Recent Transactions (%s)", txnType)))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Date"),
				cli.HeaderStyle.Render("Description"),
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Type"),
				cli.HeaderStyle.Render("Amount"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 4),
				strings.Repeat("-", 10),
				strings.Repeat("-", 30),
				strings.Repeat("-", 14),
				strings.Repeat("-", 7),
				strings.Repeat("-", 10))

			for _, txn := range transactions {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					txn.ID,
					txn.Date.Format("2006-01-02"),
					txn.Description,
					txn.Category,
					txn.Type,
					cli.FormatAmount(txn.Amount, txn.Type == model.TypeIncome))
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Number of transactions to show")
	cmd.Flags().StringVarP(&txnType, "type", "t", "all", "Filter by transaction type (income, expense, all)")

	return cmd
}
