package chart

import (
	"fmt"
	"strings"

	"git.sr.ht/~jakintosh/purse/internal/core"
	"git.sr.ht/~jakintosh/purse/internal/report"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const (
	dashboardTop         = 8
	dashboardChartHeight = 8
	sideBySideWidth      = 120
	summaryTop           = 5
)

// Dashboard combines the headline totals with four panels: income vs
// expense, cumulative savings, monthly summary and the expense breakdown.
// Panels sit two per row on wide terminals.
func Dashboard(records []core.Transaction, width int) string {
	if len(records) == 0 {
		return NoData
	}
	width = max(width, minWidth+4)

	s := report.NetSummary(records)
	headline := fmt.Sprintf("Income %s   Expense %s   Net %s   (%d transactions)",
		incomeStyle.Render(Money(s.Income)),
		expenseStyle.Render(Money(s.Expense)),
		Money(s.Net),
		s.Count)

	panelWidth := width
	if width >= sideBySideWidth {
		panelWidth = width / 2
	}
	inner := panelWidth - 4
	panel := func(content string) string {
		return panelStyle.Width(panelWidth - 2).Render(content)
	}

	panels := []string{
		panel(IncomeVsExpense(report.CategoryTotals(records), inner)),
		panel(Cumulative(report.CumulativeBalance(records), inner, dashboardChartHeight)),
		panel(Monthly(report.TimeSeries(records, report.Monthly), inner)),
		panel(breakdown(report.BreakdownByDescription(records, core.Expense, 0), core.Expense, inner, dashboardTop)),
	}

	body := lipgloss.JoinVertical(lipgloss.Left, panels...)
	if panelWidth < width {
		body = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, panels[0], panels[1]),
			lipgloss.JoinHorizontal(lipgloss.Top, panels[2], panels[3]),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Financial Dashboard"), headline, body)
}

// Summary is the plain-text summary shown under the transaction list and
// copied to the clipboard.
func Summary(s report.Summary, top []report.DescriptionTotal) string {
	if s.Count == 0 {
		return NoTransactions
	}

	var b strings.Builder
	b.WriteString("Summary\n")
	if s.Range != nil {
		fmt.Fprintf(&b, "%-15s %s\n", "Period:", s.Range.String())
	}
	fmt.Fprintf(&b, "%-15s %d\n", "Transactions:", s.Count)
	fmt.Fprintf(&b, "%-15s %s\n", "Total Income:", Money(s.Income))
	fmt.Fprintf(&b, "%-15s %s\n", "Total Expense:", Money(s.Expense))
	if s.Net.IsNegative() {
		fmt.Fprintf(&b, "%-15s %s\n", "Net Loss:", Money(s.Net.Neg()))
	} else {
		fmt.Fprintf(&b, "%-15s %s\n", "Net Savings:", Money(s.Net))
	}

	if len(top) > summaryTop {
		top = top[:summaryTop]
	}
	if len(top) > 0 {
		b.WriteString("Top Expenses:\n")
		for i, d := range top {
			fmt.Fprintf(&b, "  %d. %s %s\n", i+1, fit(label(d.Description), maxLabel), Money(d.Total))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Table lays out transactions in date order as a bordered table.
func Table(records []core.Transaction) string {
	if len(records) == 0 {
		return NoTransactions
	}

	rows := make([][]string, 0, len(records))
	for _, tx := range records {
		rows = append(rows, []string{
			core.FormatDate(tx.Date),
			Money(tx.Amount),
			string(tx.Category),
			tx.Description,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers("Date", "Amount", "Category", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			cell := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return cell.Bold(true)
			case col == 1:
				return cell.Align(lipgloss.Right)
			case col == 2 && row >= 0 && row < len(records):
				return cell.Inherit(CategoryStyle(records[row].Category))
			}
			return cell
		})
	return t.Render()
}
