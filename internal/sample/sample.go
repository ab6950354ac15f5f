// Package sample generates a plausible ledger for demos and screenshots.
package sample

import (
	"fmt"
	"math/rand/v2"
	"time"

	"git.sr.ht/~jakintosh/purse/internal/core"
	"github.com/shopspring/decimal"
)

type source struct {
	description string
	min, max    float64
}

var salary = source{"Salary", 4500, 5500}

var extraIncome = []source{
	{"Freelance Project", 500, 2000},
	{"YouTube Revenue", 50, 300},
	{"Consulting", 200, 800},
	{"Dividends", 50, 200},
	{"Side Gig", 100, 500},
}

// bills are charged once a month on a fixed day.
var bills = []struct {
	day int
	source
}{
	{1, source{"Rent", 1200, 1800}},
	{5, source{"Electric Bill", 80, 150}},
	{10, source{"Internet", 60, 100}},
	{15, source{"Car Insurance", 100, 200}},
}

var everyday = []source{
	{"Groceries", 80, 200},
	{"Gas", 40, 80},
	{"Phone Bill", 50, 90},
	{"Dining Out", 20, 80},
	{"Coffee", 5, 15},
	{"Gym Membership", 30, 50},
	{"Streaming Services", 15, 45},
	{"Health Insurance", 200, 400},
	{"Amazon Purchase", 20, 150},
	{"Gas Station", 30, 70},
	{"Uber/Lyft", 15, 50},
	{"Clothing", 30, 150},
	{"Home Supplies", 20, 80},
	{"Haircut", 25, 50},
	{"Pet Supplies", 30, 80},
	{"Entertainment", 20, 100},
	{"Software Subscription", 10, 50},
	{"Lab Equipment", 50, 200},
	{"Books/Courses", 20, 100},
}

const (
	extraIncomeChance = 0.5
	spendingDayChance = 0.7
	maxDailyExpenses  = 3
)

// Generate returns transactions for every day from months*30 days before
// today up to today, in date order.
func Generate(months int, today time.Time, rng *rand.Rand) []core.Transaction {
	end := core.Day(today)
	start := end.AddDate(0, 0, -months*30)

	var txs []core.Transaction
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Day() == 1 {
			txs = append(txs, draw(rng, d, core.Income, salary))
			if rng.Float64() < extraIncomeChance {
				extra := extraIncome[rng.IntN(len(extraIncome))]
				txs = append(txs, draw(rng, d, core.Income, extra))
			}
		}
		for _, bill := range bills {
			if d.Day() == bill.day {
				txs = append(txs, draw(rng, d, core.Expense, bill.source))
			}
		}
		if rng.Float64() < spendingDayChance {
			n := 1 + rng.IntN(maxDailyExpenses)
			for _, i := range rng.Perm(len(everyday))[:n] {
				txs = append(txs, draw(rng, d, core.Expense, everyday[i]))
			}
		}
	}
	return txs
}

func draw(rng *rand.Rand, d time.Time, category core.Category, s source) core.Transaction {
	amount := s.min + rng.Float64()*(s.max-s.min)
	return core.Transaction{
		Date:        d,
		Amount:      decimal.NewFromFloat(amount).Round(2),
		Category:    category,
		Description: s.description,
	}
}

// Appender is the part of the store Write needs.
type Appender interface {
	Append(tx core.Transaction) error
}

// Write appends every transaction to the store, stopping at the first error.
func Write(store Appender, txs []core.Transaction) error {
	for i, tx := range txs {
		if err := store.Append(tx); err != nil {
			return fmt.Errorf("write sample transaction %d: %w", i, err)
		}
	}
	return nil
}
