package chart

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"git.sr.ht/~jakintosh/purse/internal/core"
	"git.sr.ht/~jakintosh/purse/internal/report"
	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"
)

var sparks = []rune("▁▂▃▄▅▆▇█")

// OverTime draws one sparkline per category across the series periods.
// Periods without activity are blank.
func OverTime(series []report.PeriodTotal, width int) string {
	if len(series) == 0 {
		return NoData
	}
	width = clampWidth(width)

	var periods []time.Time
	index := map[time.Time]int{}
	var categories []core.Category
	seen := map[core.Category]bool{}
	for _, p := range series {
		if _, ok := index[p.Period]; !ok {
			index[p.Period] = 0
			periods = append(periods, p.Period)
		}
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })
	for i, p := range periods {
		index[p] = i
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	values := map[core.Category][]decimal.Decimal{}
	for _, c := range categories {
		values[c] = make([]decimal.Decimal, len(periods))
	}
	for _, p := range series {
		row := values[p.Category]
		row[index[p.Period]] = row[index[p.Period]].Add(p.Total)
	}

	labels := make([]string, len(categories))
	stats := make([]string, len(categories))
	labelWidth, statsWidth := 0, 0
	for i, c := range categories {
		labels[i] = string(c)
		low, high := activeRange(values[c])
		stats[i] = fmt.Sprintf("low %s high %s", Money(low), Money(high))
		labelWidth = max(labelWidth, runewidth.StringWidth(labels[i]))
		statsWidth = max(statsWidth, runewidth.StringWidth(stats[i]))
	}
	labelWidth = min(labelWidth, maxLabel)
	sparkWidth := max(width-labelWidth-statsWidth-2, 8)
	cols := min(len(periods), sparkWidth)

	lines := []string{titleStyle.Render("Transactions Over Time")}
	for i, c := range categories {
		line := sparkline(bucket(values[c], cols))
		pad := strings.Repeat(" ", sparkWidth-cols)
		lines = append(lines, fit(labels[i], labelWidth)+" "+CategoryStyle(c).Render(line)+pad+" "+stats[i])
	}

	first, last := core.FormatDate(periods[0]), core.FormatDate(periods[len(periods)-1])
	axis := first
	if gap := cols - len(first) - len(last); gap > 0 {
		axis = first + strings.Repeat(" ", gap) + last
	} else if first != last {
		axis = first + " " + last
	}
	lines = append(lines, strings.Repeat(" ", labelWidth+1)+dimStyle.Render(axis))
	return strings.Join(lines, "\n")
}

// activeRange returns the smallest and largest non-zero value.
func activeRange(values []decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	var low, high decimal.Decimal
	found := false
	for _, v := range values {
		if v.IsZero() {
			continue
		}
		if !found || v.LessThan(low) {
			low = v
		}
		if !found || v.GreaterThan(high) {
			high = v
		}
		found = true
	}
	return low, high
}

// bucket sums values into n columns.
func bucket(values []decimal.Decimal, n int) []decimal.Decimal {
	if n >= len(values) {
		return values
	}
	out := make([]decimal.Decimal, n)
	for i, v := range values {
		b := i * n / len(values)
		out[b] = out[b].Add(v)
	}
	return out
}

func sparkline(values []decimal.Decimal) string {
	peak := decimal.Zero
	for _, v := range values {
		if v.GreaterThan(peak) {
			peak = v
		}
	}
	var b strings.Builder
	for _, v := range values {
		if !v.IsPositive() || !peak.IsPositive() {
			b.WriteRune(' ')
			continue
		}
		level := int(v.Div(peak).InexactFloat64() * float64(len(sparks)-1))
		b.WriteRune(sparks[min(max(level, 0), len(sparks)-1)])
	}
	return b.String()
}

// Cumulative draws the running balance as an area filled from the zero
// baseline, height rows tall.
func Cumulative(points []report.BalancePoint, width, height int) string {
	if len(points) == 0 {
		return NoData
	}
	width = clampWidth(width)
	height = max(height, 4)

	lo, hi := decimal.Zero, decimal.Zero
	for _, p := range points {
		lo = decimal.Min(lo, p.Balance)
		hi = decimal.Max(hi, p.Balance)
	}
	top, bottom, zeroLabel := Money(hi), Money(lo), Money(decimal.Zero)
	axisWidth := max(len(top), len(bottom), len(zeroLabel))
	plotWidth := max(width-axisWidth-1, 1)

	cols := min(len(points), plotWidth)
	samples := make([]float64, cols)
	for c := range samples {
		samples[c] = points[(c+1)*len(points)/cols-1].Balance.InexactFloat64()
	}

	low, high := lo.InexactFloat64(), hi.InexactFloat64()
	if high == low {
		high = low + 1
	}
	level := func(v float64) int {
		return int(math.Round((v - low) / (high - low) * float64(height-1)))
	}
	zero := level(0)

	lines := []string{titleStyle.Render("Cumulative Savings")}
	for r := height - 1; r >= 0; r-- {
		axis := ""
		switch r {
		case height - 1:
			axis = top
		case 0:
			axis = bottom
		case zero:
			axis = zeroLabel
		}
		var row strings.Builder
		for _, v := range samples {
			lv := level(v)
			filled := (lv >= zero && r >= zero && r <= lv) || (lv < zero && r < zero && r >= lv)
			switch {
			case filled:
				row.WriteString(balanceStyle.Render("█"))
			case r == zero:
				row.WriteString(dimStyle.Render("─"))
			default:
				row.WriteString(" ")
			}
		}
		lines = append(lines, fmt.Sprintf("%*s│%s", axisWidth, axis, row.String()))
	}

	first := core.FormatDate(points[0].Date)
	last := core.FormatDate(points[len(points)-1].Date)
	axis := first
	if gap := cols - len(first) - len(last); gap > 0 {
		axis = first + strings.Repeat(" ", gap) + last
	}
	lines = append(lines, strings.Repeat(" ", axisWidth+1)+dimStyle.Render(axis))
	lines = append(lines, fmt.Sprintf("Final balance: %s", Money(points[len(points)-1].Balance)))
	return strings.Join(lines, "\n")
}
