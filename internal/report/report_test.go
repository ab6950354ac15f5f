package report

import (
	"testing"
	"time"

	"git.sr.ht/~jakintosh/purse/internal/core"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d, m, y int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func rec(d time.Time, amount string, category core.Category, desc string) core.Transaction {
	return core.Transaction{Date: d, Amount: decimal.RequireFromString(amount), Category: category, Description: desc}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sample() []core.Transaction {
	return []core.Transaction{
		rec(day(1, 11, 2025), "5000.00", core.Income, "Salary"),
		rec(day(1, 11, 2025), "1500.00", core.Expense, "Rent"),
		rec(day(3, 11, 2025), "4.50", core.Expense, "Coffee"),
		rec(day(3, 11, 2025), "80.00", core.Expense, "Groceries"),
		rec(day(20, 11, 2025), "250.00", core.Income, "Dividends"),
		rec(day(1, 12, 2025), "5100.00", core.Income, "Salary"),
		rec(day(1, 12, 2025), "1500.00", core.Expense, "Rent"),
		rec(day(2, 12, 2025), "5.50", core.Expense, "Coffee"),
		rec(day(5, 12, 2025), "300.00", core.Category("Transfer"), "Savings"),
	}
}

func TestCategoryTotals(t *testing.T) {
	records := sample()
	totals := CategoryTotals(records)

	require.Len(t, totals, 3)
	assert.Equal(t, core.Expense, totals[0].Category)
	assert.Equal(t, core.Income, totals[1].Category)
	assert.Equal(t, core.Category("Transfer"), totals[2].Category)

	assert.True(t, dec("10350.00").Equal(totals.Get(core.Income)), "income total %s", totals.Get(core.Income))
	assert.True(t, dec("3090.00").Equal(totals.Get(core.Expense)), "expense total %s", totals.Get(core.Expense))
	assert.True(t, dec("300").Equal(totals.Get("Transfer")))
	assert.True(t, totals.Get("Missing").IsZero())

	inputSum := decimal.Zero
	for _, r := range records {
		inputSum = inputSum.Add(r.Amount)
	}
	assert.True(t, inputSum.Equal(totals.Sum()), "totals %s should equal input sum %s", totals.Sum(), inputSum)
}

func TestCategoryTotalsOnlyInputCategories(t *testing.T) {
	records := []core.Transaction{rec(day(1, 1, 2025), "10", core.Expense, "A")}
	totals := CategoryTotals(records)
	require.Len(t, totals, 1)
	assert.Equal(t, core.Expense, totals[0].Category)
	assert.True(t, totals.Get(core.Income).IsZero())
}

func TestTimeSeriesDaily(t *testing.T) {
	series := TimeSeries(sample(), Daily)

	labels := make([]string, 0, len(series))
	for _, p := range series {
		labels = append(labels, p.Label+"/"+string(p.Category))
	}
	assert.Equal(t, []string{
		"2025-11-01/Expense",
		"2025-11-01/Income",
		"2025-11-03/Expense",
		"2025-11-20/Income",
		"2025-12-01/Expense",
		"2025-12-01/Income",
		"2025-12-02/Expense",
		"2025-12-05/Transfer",
	}, labels)

	assert.True(t, dec("84.50").Equal(series[2].Total), "combined daily expenses, got %s", series[2].Total)
}

func TestTimeSeriesMonthly(t *testing.T) {
	series := TimeSeries(sample(), Monthly)
	require.Len(t, series, 5)

	assert.Equal(t, "2025-11", series[0].Label)
	assert.Equal(t, core.Expense, series[0].Category)
	assert.True(t, dec("1584.50").Equal(series[0].Total))
	assert.Equal(t, day(1, 11, 2025), series[0].Period)

	assert.Equal(t, "2025-11", series[1].Label)
	assert.True(t, dec("5250.00").Equal(series[1].Total))

	assert.Equal(t, "2025-12", series[2].Label)
	assert.Equal(t, core.Expense, series[2].Category)
	assert.True(t, dec("1505.50").Equal(series[2].Total))

	for i := 1; i < len(series); i++ {
		assert.False(t, series[i].Period.Before(series[i-1].Period), "periods out of order at %d", i)
	}
}

func TestBreakdownByDescription(t *testing.T) {
	breakdown := BreakdownByDescription(sample(), core.Expense, 0)
	require.Len(t, breakdown, 3)
	assert.Equal(t, "Rent", breakdown[0].Description)
	assert.True(t, dec("3000").Equal(breakdown[0].Total))
	assert.Equal(t, "Groceries", breakdown[1].Description)
	assert.Equal(t, "Coffee", breakdown[2].Description)
	assert.True(t, dec("10.00").Equal(breakdown[2].Total))

	income := BreakdownByDescription(sample(), core.Income, 0)
	require.Len(t, income, 2)
	assert.Equal(t, "Salary", income[0].Description)
}

func TestBreakdownTopNAndTies(t *testing.T) {
	records := []core.Transaction{
		rec(day(1, 1, 2025), "10", core.Expense, "First"),
		rec(day(2, 1, 2025), "50", core.Expense, "Big"),
		rec(day(3, 1, 2025), "10", core.Expense, "Second"),
		rec(day(4, 1, 2025), "10", core.Expense, "Third"),
		rec(day(5, 1, 2025), "30", core.Expense, "Medium"),
		rec(day(6, 1, 2025), "10", core.Expense, "Fourth"),
		rec(day(7, 1, 2025), "10", core.Expense, "Fifth"),
		rec(day(8, 1, 2025), "999", core.Income, "Ignored"),
	}

	top := BreakdownByDescription(records, core.Expense, 5)
	require.Len(t, top, 5)
	names := make([]string, 0, len(top))
	for i, d := range top {
		names = append(names, d.Description)
		if i > 0 {
			assert.False(t, d.Total.GreaterThan(top[i-1].Total), "not descending at %d", i)
		}
	}
	assert.Equal(t, []string{"Big", "Medium", "First", "Second", "Third"}, names)

	assert.Len(t, BreakdownByDescription(records, core.Expense, 100), 7)
}

func TestBreakdownMissingCategory(t *testing.T) {
	breakdown := BreakdownByDescription(sample(), core.Category("Gifts"), 5)
	assert.NotNil(t, breakdown)
	assert.Empty(t, breakdown)
}

func TestCumulativeBalance(t *testing.T) {
	records := sample()
	points := CumulativeBalance(records)
	require.Len(t, points, len(records))

	assert.True(t, records[0].Signed().Equal(points[0].Balance))
	for i := 1; i < len(points); i++ {
		diff := points[i].Balance.Sub(points[i-1].Balance)
		assert.True(t, diff.Equal(points[i].Signed), "step %d: %s != %s", i, diff, points[i].Signed)
		assert.Equal(t, records[i].Date, points[i].Date)
		assert.Equal(t, records[i].Description, points[i].Description)
	}

	// income 10350, expenses 3090, transfer 300 counted as outflow
	assert.True(t, dec("6960.00").Equal(points[len(points)-1].Balance), "final balance %s", points[len(points)-1].Balance)
	assert.True(t, dec("-300").Equal(points[len(points)-1].Signed))
}

func TestNetSummary(t *testing.T) {
	summary := NetSummary(sample())
	assert.True(t, dec("10350").Equal(summary.Income))
	assert.True(t, dec("3090").Equal(summary.Expense))
	assert.True(t, dec("7260").Equal(summary.Net))
	assert.Equal(t, 9, summary.Count)
	require.NotNil(t, summary.Range)
	assert.Equal(t, day(1, 11, 2025), summary.Range.Start)
	assert.Equal(t, day(5, 12, 2025), summary.Range.End)
}

func TestNetSummaryUnsortedInput(t *testing.T) {
	records := []core.Transaction{
		rec(day(10, 5, 2025), "1", core.Expense, ""),
		rec(day(2, 5, 2025), "1", core.Expense, ""),
		rec(day(20, 5, 2025), "1", core.Expense, ""),
	}
	summary := NetSummary(records)
	require.NotNil(t, summary.Range)
	assert.Equal(t, day(2, 5, 2025), summary.Range.Start)
	assert.Equal(t, day(20, 5, 2025), summary.Range.End)
	assert.True(t, dec("-3").Equal(summary.Net))
}

func TestEmptyInput(t *testing.T) {
	var none []core.Transaction

	totals := CategoryTotals(none)
	assert.NotNil(t, totals)
	assert.Empty(t, totals)
	assert.True(t, totals.Sum().IsZero())

	assert.Empty(t, TimeSeries(none, Daily))
	assert.Empty(t, TimeSeries(none, Monthly))
	assert.Empty(t, BreakdownByDescription(none, core.Expense, 5))
	assert.Empty(t, CumulativeBalance(none))

	summary := NetSummary(none)
	assert.True(t, summary.Income.IsZero())
	assert.True(t, summary.Expense.IsZero())
	assert.True(t, summary.Net.IsZero())
	assert.Zero(t, summary.Count)
	assert.Nil(t, summary.Range)
}

func TestGranularityString(t *testing.T) {
	assert.Equal(t, "daily", Daily.String())
	assert.Equal(t, "monthly", Monthly.String())
	assert.Equal(t, "unknown", Granularity(7).String())
}
