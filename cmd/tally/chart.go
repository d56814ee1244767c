package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/chart"
	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/report"
)

func chartCmd() *cobra.Command {
	var (
		month  int
		year   int
		output string
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Generate an expense pie chart for a month",
		Long:  `Render the month's expense breakdown by category as a PNG pie chart.`,
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

			if err := chart.RenderPie(summary, output); err != nil {
				if errors.Is(err, chart.ErrNoExpenseData) {
					fmt.Println(cli.FormatWarning(fmt.Sprintf("No expense data to visualize for %d/%d", month, year)))
					return nil
				}
				return fmt.Errorf("failed to render chart: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Chart saved to: %s", output)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&month, "month", "m", 0, "Month (1-12, default current)")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "Year (default current)")
	cmd.Flags().StringVarP(&output, "output", "o", "chart.png", "Output filename")

	return cmd
}
