package chart

import (
	"fmt"
	"strings"

	"git.sr.ht/~jakintosh/purse/internal/core"
	"git.sr.ht/~jakintosh/purse/internal/report"
)

// Kind names a visualization.
type Kind string

const (
	KindIncomeExpense Kind = "bar"
	KindOverTime      Kind = "line"
	KindMonthly       Kind = "monthly"
	KindExpensePie    Kind = "expense-pie"
	KindIncomePie     Kind = "income-pie"
	KindTop           Kind = "top"
	KindCumulative    Kind = "cumulative"
	KindDashboard     Kind = "dashboard"
)

const (
	topExpenses      = 10
	cumulativeHeight = 12
)

// Visualization is a menu entry for a chart kind.
type Visualization struct {
	Kind  Kind
	Title string
}

// Visualizations lists every chart in menu order.
var Visualizations = []Visualization{
	{KindIncomeExpense, "Income vs Expense (Bar)"},
	{KindOverTime, "Transactions Over Time (Line)"},
	{KindMonthly, "Monthly Summary (Bar)"},
	{KindExpensePie, "Expense Breakdown (Pie)"},
	{KindIncomePie, "Income Breakdown (Pie)"},
	{KindTop, "Top Expenses (Bar)"},
	{KindCumulative, "Cumulative Savings (Area)"},
	{KindDashboard, "Full Dashboard"},
}

// ParseKind accepts a kind name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range Visualizations {
		if v.Kind == k {
			return k, nil
		}
	}
	names := make([]string, 0, len(Visualizations))
	for _, v := range Visualizations {
		names = append(names, string(v.Kind))
	}
	return "", fmt.Errorf("unknown chart kind %q (choose one of %s)", s, strings.Join(names, ", "))
}

// Render draws the chart of the given kind for a set of transactions.
func Render(kind Kind, records []core.Transaction, width int) string {
	if len(records) == 0 {
		return NoData
	}
	switch kind {
	case KindIncomeExpense:
		return IncomeVsExpense(report.CategoryTotals(records), width)
	case KindOverTime:
		return OverTime(report.TimeSeries(records, report.Daily), width)
	case KindMonthly:
		return Monthly(report.TimeSeries(records, report.Monthly), width)
	case KindExpensePie:
		return Breakdown(report.BreakdownByDescription(records, core.Expense, 0), core.Expense, width)
	case KindIncomePie:
		return Breakdown(report.BreakdownByDescription(records, core.Income, 0), core.Income, width)
	case KindTop:
		return TopBar(report.BreakdownByDescription(records, core.Expense, topExpenses), "Top Expenses", width)
	case KindCumulative:
		return Cumulative(report.CumulativeBalance(records), width, cumulativeHeight)
	case KindDashboard:
		return Dashboard(records, width)
	default:
		return fmt.Sprintf("Unknown chart kind %q.", kind)
	}
}
