// Package report derives summaries from a set of transactions: totals per
// category, per-period sums, description rankings, the running balance and
// an overall net summary. Every function is pure and accepts an empty set.
package report

import (
	"sort"
	"time"

	"git.sr.ht/~jakintosh/purse/internal/core"
	"github.com/shopspring/decimal"
)

// Granularity selects the period used by TimeSeries.
type Granularity int

const (
	Daily Granularity = iota
	Monthly
)

// String returns the granularity's name.
func (g Granularity) String() string {
	switch g {
	case Daily:
		return "daily"
	case Monthly:
		return "monthly"
	default:
		return "unknown"
	}
}

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category core.Category
	Total    decimal.Decimal
}

// Totals is a list of category totals ordered by category name.
type Totals []CategoryTotal

// Get returns the total for a category, or zero when it is absent.
func (t Totals) Get(category core.Category) decimal.Decimal {
	for _, ct := range t {
		if ct.Category == category {
			return ct.Total
		}
	}
	return decimal.Zero
}

// Sum adds up every category total.
func (t Totals) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, ct := range t {
		sum = sum.Add(ct.Total)
	}
	return sum
}

// PeriodTotal is the summed amount of one category within one period.
type PeriodTotal struct {
	Period   time.Time
	Label    string
	Category core.Category
	Total    decimal.Decimal
}

// DescriptionTotal is the summed amount of one description within a category.
type DescriptionTotal struct {
	Description string
	Total       decimal.Decimal
}

// BalancePoint is one row of the running balance.
type BalancePoint struct {
	Date        time.Time
	Description string
	Signed      decimal.Decimal
	Balance     decimal.Decimal
}

// Summary holds the headline numbers of a transaction set.
type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
	Count   int
	Range   *core.Range // nil when there are no transactions
}

// CategoryTotals sums amounts per category. Categories outside Income and
// Expense get their own entries.
func CategoryTotals(records []core.Transaction) Totals {
	sums := make(map[core.Category]decimal.Decimal)
	for _, tx := range records {
		sums[tx.Category] = sums[tx.Category].Add(tx.Amount)
	}
	totals := make(Totals, 0, len(sums))
	for category, total := range sums {
		totals = append(totals, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Category < totals[j].Category
	})
	return totals
}

// TimeSeries sums amounts per period and category, ordered by period and
// then by category name.
func TimeSeries(records []core.Transaction, granularity Granularity) []PeriodTotal {
	type key struct {
		period   time.Time
		category core.Category
	}
	sums := make(map[key]decimal.Decimal)
	for _, tx := range records {
		k := key{period: periodStart(tx.Date, granularity), category: tx.Category}
		sums[k] = sums[k].Add(tx.Amount)
	}

	series := make([]PeriodTotal, 0, len(sums))
	for k, total := range sums {
		series = append(series, PeriodTotal{
			Period:   k.period,
			Label:    periodLabel(k.period, granularity),
			Category: k.category,
			Total:    total,
		})
	}
	sort.Slice(series, func(i, j int) bool {
		if !series[i].Period.Equal(series[j].Period) {
			return series[i].Period.Before(series[j].Period)
		}
		return series[i].Category < series[j].Category
	})
	return series
}

// BreakdownByDescription sums one category's amounts per description,
// largest first. Ties keep the order in which descriptions first appear.
// A positive topN truncates the result.
func BreakdownByDescription(records []core.Transaction, category core.Category, topN int) []DescriptionTotal {
	index := make(map[string]int)
	breakdown := make([]DescriptionTotal, 0)
	for _, tx := range records {
		if tx.Category != category {
			continue
		}
		i, ok := index[tx.Description]
		if !ok {
			i = len(breakdown)
			index[tx.Description] = i
			breakdown = append(breakdown, DescriptionTotal{Description: tx.Description, Total: decimal.Zero})
		}
		breakdown[i].Total = breakdown[i].Total.Add(tx.Amount)
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Total.GreaterThan(breakdown[j].Total)
	})
	if topN > 0 && len(breakdown) > topN {
		breakdown = breakdown[:topN]
	}
	return breakdown
}

// CumulativeBalance returns the running signed sum of records in input
// order. Callers pass records sorted by date, as the store returns them.
func CumulativeBalance(records []core.Transaction) []BalancePoint {
	points := make([]BalancePoint, len(records))
	balance := decimal.Zero
	for i, tx := range records {
		signed := tx.Signed()
		balance = balance.Add(signed)
		points[i] = BalancePoint{
			Date:        tx.Date,
			Description: tx.Description,
			Signed:      signed,
			Balance:     balance,
		}
	}
	return points
}

// NetSummary totals income and expenses. Transactions in other categories
// only count towards Count.
func NetSummary(records []core.Transaction) Summary {
	summary := Summary{Income: decimal.Zero, Expense: decimal.Zero}
	for _, tx := range records {
		switch tx.Category {
		case core.Income:
			summary.Income = summary.Income.Add(tx.Amount)
		case core.Expense:
			summary.Expense = summary.Expense.Add(tx.Amount)
		}
		if summary.Range == nil {
			summary.Range = &core.Range{Start: tx.Date, End: tx.Date}
			continue
		}
		if tx.Date.Before(summary.Range.Start) {
			summary.Range.Start = tx.Date
		}
		if tx.Date.After(summary.Range.End) {
			summary.Range.End = tx.Date
		}
	}
	summary.Count = len(records)
	summary.Net = summary.Income.Sub(summary.Expense)
	return summary
}

// periodStart truncates a date to the start of its period.
func periodStart(t time.Time, granularity Granularity) time.Time {
	if granularity == Monthly {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return core.Day(t)
}

// periodLabel formats a period start for chart axes.
func periodLabel(t time.Time, granularity Granularity) string {
	if granularity == Monthly {
		return t.Format("2006-01")
	}
	return t.Format("2006-01-02")
}
