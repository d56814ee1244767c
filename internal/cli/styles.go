// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#F4D35E") // Gold
	// IncomeColor renders income amounts.
	IncomeColor = lipgloss.Color("#4ECDC4") // Teal
	// ExpenseColor renders expense amounts.
	ExpenseColor = lipgloss.Color("#FF6B6B") // Red
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// IncomeStyle formats income amounts and positive balances.
	IncomeStyle = lipgloss.NewStyle().
			Foreground(IncomeColor)

	// ExpenseStyle formats expense amounts and negative balances.
	ExpenseStyle = lipgloss.NewStyle().
			Foreground(ExpenseColor)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(IncomeColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ExpenseColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// HeaderStyle is used for table headers.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	CoinIcon    = "🪙"
	ChartIcon   = "📊"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message.
func FormatWarning(message string) string {
	return WarningStyle.Render(message)
}

// FormatTitle formats a section title.
func FormatTitle(title string) string {
	return TitleStyle.Render(CoinIcon + " " + title)
}

// FormatAmount renders a positive amount colored by transaction direction.
func FormatAmount(amount float64, income bool) string {
	text := fmt.Sprintf("$%.2f", amount)
	if income {
		return IncomeStyle.Render(text)
	}
	return ExpenseStyle.Render(text)
}

// FormatBalance renders a net balance, green when non-negative and red
// otherwise.
func FormatBalance(balance float64) string {
	text := fmt.Sprintf("$%.2f", balance)
	if balance >= 0 {
		return IncomeStyle.Render(text)
	}
	return ExpenseStyle.Render(text)
}
