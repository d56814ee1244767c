package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List known categories",
		Long:  `Display every category in the ledger. Categories are created on first use and never deleted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categories, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Created"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				strings.Repeat("-", 4),
				strings.Repeat("-", 20),
				strings.Repeat("-", 10))

			for _, cat := range categories {
				fmt.Fprintf(w, "%d\t%s\t%s\n", cat.ID, cat.Name, cat.CreatedAt.Format("2006-01-02"))
			}

			return nil
		},
	}
}
