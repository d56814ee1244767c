package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/report"
)

func trendCmd() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show monthly income and expense trend for a year",
		Long:  `Display income and expense totals for every month of a year, including months with no activity.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if year == 0 {
				year = time.Now().Year()
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			engine := report.New(store)
			trend, err := engine.MonthlyTrend(ctx, year)
			if err != nil {
				return fmt.Errorf("failed to compute trend: %w", err)
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Monthly Trend - %d", year)))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Month"),
				cli.HeaderStyle.Render("Income"),
				cli.HeaderStyle.Render("Expenses"),
				cli.HeaderStyle.Render("Net"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 9),
				strings.Repeat("-", 10),
				strings.Repeat("-", 10),
				strings.Repeat("-", 10))

			for _, month := range trend {
				net := month.Income - month.Expense
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					time.Month(month.Month).String(),
					cli.FormatAmount(month.Income, true),
					cli.FormatAmount(month.Expense, false),
					cli.FormatBalance(net))
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "Year (default current)")

	return cmd
}
