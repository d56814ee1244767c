// Package chart renders expense breakdowns as image files.
package chart

import (
	"errors"
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/Veraticus/tally/internal/model"
)

// ErrNoExpenseData indicates the summary has no expense categories to plot.
var ErrNoExpenseData = errors.New("no expense data to visualize")

// RenderPie writes a PNG pie chart of the summary's expense categories.
// The chart is a derived artifact computed from summary data; it carries no
// state of its own.
func RenderPie(summary *model.Summary, path string) error {
	if len(summary.ByCategory) == 0 {
		return ErrNoExpenseData
	}

	values := make([]chart.Value, 0, len(summary.ByCategory))
	for _, cat := range summary.ByCategory {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%.1f%%)", cat.Category, cat.Percentage),
			Value: cat.Amount,
		})
	}

	pie := chart.PieChart{
		Title:  fmt.Sprintf("Expenses by Category - %d/%d", summary.Month, summary.Year),
		Width:  800,
		Height: 800,
		Values: values,
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file %q: %w", path, err)
	}

	if err := pie.Render(chart.PNG, f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to render chart: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close chart file: %w", err)
	}
	return nil
}
