package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/report"
)

func summaryCmd() *cobra.Command {
	var (
		month int
		year  int
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show financial summary for a month",
		Long:  `Display income and expense totals plus the expense breakdown by category for one calendar month.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			month, year := defaultPeriod(month, year)

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			engine := report.New(store)
			summary, err := engine.GenerateSummary(ctx, month, year)
			if err != nil {
				return fmt.Errorf("failed to generate summary: %w", err)
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Financial Summary - %d/%d", month, year)))
			fmt.Printf("%s  %s\n", cli.IncomeStyle.Render("Total Income: "), cli.FormatAmount(summary.TotalIncome, true))
			fmt.Printf("%s %s\n", cli.ExpenseStyle.Render("Total Expenses:"), cli.FormatAmount(summary.TotalExpense, false))

			balance := summary.TotalIncome - summary.TotalExpense
			fmt.Printf("%s    %s\n\n", "Net Balance:", cli.FormatBalance(balance))

			if len(summary.ByCategory) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No expenses recorded for this period"))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Percentage"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				strings.Repeat("-", 14),
				strings.Repeat("-", 10),
				strings.Repeat("-", 10))

			for _, cat := range summary.ByCategory {
				fmt.Fprintf(w, "%s\t%s\t%.1f%%\n",
					cat.Category,
					cli.FormatAmount(cat.Amount, false),
					cat.Percentage)
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&month, "month", "m", 0, "Month (1-12, default current)")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "Year (default current)")

	return cmd
}
