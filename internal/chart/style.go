// Package chart renders report data as text for the terminal: bars, share
// breakdowns, sparklines and an area chart of the running balance.
package chart

import (
	"fmt"
	"strings"

	"git.sr.ht/~jakintosh/purse/internal/core"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NoData is shown in place of a chart whose input is empty.
const NoData = "No data to visualize."

// NoTransactions is shown in place of an empty transaction table.
const NoTransactions = "No transactions found in the given date range."

const (
	minWidth = 40
	maxLabel = 24
)

var (
	incomeColor  = lipgloss.Color("#2ecc71")
	expenseColor = lipgloss.Color("#e74c3c")
	otherColor   = lipgloss.Color("#999999")
	balanceColor = lipgloss.Color("#3498db")

	incomeStyle  = lipgloss.NewStyle().Foreground(incomeColor)
	expenseStyle = lipgloss.NewStyle().Foreground(expenseColor)
	otherStyle   = lipgloss.NewStyle().Foreground(otherColor)
	balanceStyle = lipgloss.NewStyle().Foreground(balanceColor)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
)

var printer = message.NewPrinter(language.English)

// Money formats an amount as dollars with thousand separators, e.g.
// "$1,234.50" or "-$7.10".
func Money(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	d = d.Round(2)
	whole := d.Truncate(0)
	cents := d.Sub(whole).Shift(2).IntPart()
	return fmt.Sprintf("%s$%s.%02d", sign, printer.Sprintf("%d", whole.IntPart()), cents)
}

// CategoryStyle returns the colour used for a category across charts.
func CategoryStyle(c core.Category) lipgloss.Style {
	switch c {
	case core.Income:
		return incomeStyle
	case core.Expense:
		return expenseStyle
	default:
		return otherStyle
	}
}

func clampWidth(width int) int {
	if width < minWidth {
		return minWidth
	}
	return width
}

// fit truncates or pads s to exactly w terminal cells.
func fit(s string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}

func label(description string) string {
	if strings.TrimSpace(description) == "" {
		return "(no description)"
	}
	return description
}
