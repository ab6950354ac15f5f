package chart

import (
	"fmt"
	"strings"

	"git.sr.ht/~jakintosh/purse/internal/core"
	"git.sr.ht/~jakintosh/purse/internal/report"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"
)

const breakdownTop = 10

var eighths = []string{"", "▏", "▎", "▍", "▌", "▋", "▊", "▉"}

type barRow struct {
	label string
	value decimal.Decimal
	right string
	style lipgloss.Style
}

type barLayout struct {
	labelWidth int
	rightWidth int
	barWidth   int
	peak       decimal.Decimal
}

func newBarLayout(rows []barRow, width int, peak decimal.Decimal) barLayout {
	l := barLayout{peak: peak}
	for _, r := range rows {
		l.labelWidth = max(l.labelWidth, runewidth.StringWidth(r.label))
		l.rightWidth = max(l.rightWidth, runewidth.StringWidth(r.right))
	}
	l.labelWidth = min(l.labelWidth, maxLabel)
	l.barWidth = max(width-l.labelWidth-l.rightWidth-2, 1)
	return l
}

func (l barLayout) render(r barRow) string {
	filled := bar(r.value, l.peak, l.barWidth)
	pad := l.barWidth - runewidth.StringWidth(filled)
	return fit(r.label, l.labelWidth) + " " + r.style.Render(filled) + strings.Repeat(" ", max(pad, 0)) + " " + r.right
}

// bar draws value/peak of width cells using eighth blocks. Any positive
// value gets at least a sliver.
func bar(value, peak decimal.Decimal, width int) string {
	if width <= 0 || !peak.IsPositive() || !value.IsPositive() {
		return ""
	}
	units := value.Div(peak).Mul(decimal.NewFromInt(int64(width * 8))).Round(0).IntPart()
	units = max(min(units, int64(width*8)), 1)
	return strings.Repeat("█", int(units/8)) + eighths[units%8]
}

func peakOf(rows []barRow) decimal.Decimal {
	peak := decimal.Zero
	for _, r := range rows {
		if r.value.GreaterThan(peak) {
			peak = r.value
		}
	}
	return peak
}

func renderBars(title string, rows []barRow, width int, peak decimal.Decimal) string {
	l := newBarLayout(rows, width, peak)
	lines := []string{titleStyle.Render(title)}
	for _, r := range rows {
		lines = append(lines, l.render(r))
	}
	return strings.Join(lines, "\n")
}

// IncomeVsExpense draws one bar per category total.
func IncomeVsExpense(totals report.Totals, width int) string {
	if len(totals) == 0 {
		return NoData
	}
	width = clampWidth(width)

	rows := make([]barRow, 0, len(totals))
	for _, ct := range totals {
		rows = append(rows, barRow{
			label: string(ct.Category),
			value: ct.Total,
			right: Money(ct.Total),
			style: CategoryStyle(ct.Category),
		})
	}
	return renderBars("Income vs Expense", rows, width, peakOf(rows))
}

// Monthly draws grouped bars, one group per month.
func Monthly(series []report.PeriodTotal, width int) string {
	if len(series) == 0 {
		return NoData
	}
	width = clampWidth(width)

	rows := make([]barRow, 0, len(series))
	for _, p := range series {
		rows = append(rows, barRow{
			label: "  " + string(p.Category),
			value: p.Total,
			right: Money(p.Total),
			style: CategoryStyle(p.Category),
		})
	}
	l := newBarLayout(rows, width, peakOf(rows))

	lines := []string{titleStyle.Render("Monthly Summary")}
	for i, p := range series {
		if i == 0 || p.Label != series[i-1].Label {
			lines = append(lines, dimStyle.Render(p.Label))
		}
		lines = append(lines, l.render(rows[i]))
	}
	return strings.Join(lines, "\n")
}

// Breakdown draws each description's share of a category, keeping the
// largest ten and folding the rest into "Other".
func Breakdown(descs []report.DescriptionTotal, category core.Category, width int) string {
	return breakdown(descs, category, width, breakdownTop)
}

func breakdown(descs []report.DescriptionTotal, category core.Category, width, top int) string {
	total := decimal.Zero
	for _, d := range descs {
		total = total.Add(d.Total)
	}
	if len(descs) == 0 || !total.IsPositive() {
		return NoData
	}
	width = clampWidth(width)

	shown, rest := descs, []report.DescriptionTotal(nil)
	if len(descs) > top {
		shown, rest = descs[:top], descs[top:]
	}

	style := CategoryStyle(category)
	share := func(v decimal.Decimal) string {
		pct := v.Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64()
		return fmt.Sprintf("%5.1f%% %s", pct, Money(v))
	}

	rows := make([]barRow, 0, len(shown)+1)
	for _, d := range shown {
		rows = append(rows, barRow{label: label(d.Description), value: d.Total, right: share(d.Total), style: style})
	}
	if len(rest) > 0 {
		other := decimal.Zero
		for _, d := range rest {
			other = other.Add(d.Total)
		}
		rows = append(rows, barRow{label: "Other", value: other, right: share(other), style: otherStyle})
	}
	return renderBars(fmt.Sprintf("%s Breakdown", category), rows, width, total)
}

// TopBar draws a ranked list of description totals.
func TopBar(descs []report.DescriptionTotal, title string, width int) string {
	if len(descs) == 0 {
		return NoData
	}
	width = clampWidth(width)

	rows := make([]barRow, 0, len(descs))
	for i, d := range descs {
		rows = append(rows, barRow{
			label: fmt.Sprintf("%d. %s", i+1, label(d.Description)),
			value: d.Total,
			right: Money(d.Total),
			style: expenseStyle,
		})
	}
	return renderBars(title, rows, width, peakOf(rows))
}
