// Package core holds the ledger's data model: transactions, categories,
// date ranges and the validation errors shared by the store and the shell.
package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the day-month-year layout used in the ledger file and at every prompt.
const DateLayout = "02-01-2006"

// Category is the kind of a transaction. Only Income and Expense can be entered,
// but a ledger file may carry other values and readers must tolerate them.
type Category string

const (
	Income  Category = "Income"
	Expense Category = "Expense"
)

// Known reports whether c is one of the enterable categories.
func (c Category) Known() bool {
	return c == Income || c == Expense
}

// ParseCategory accepts a single-letter code ("I", "E") or a full category
// name, case-insensitively.
func ParseCategory(s string) (Category, error) {
	value := strings.TrimSpace(s)
	switch strings.ToUpper(value) {
	case "I", "INCOME":
		return Income, nil
	case "E", "EXPENSE":
		return Expense, nil
	case "":
		return "", &ValidationError{Field: "category", Err: ErrEmptyCategory}
	}
	return "", &ValidationError{Field: "category", Value: value, Err: ErrInvalidCategory}
}

// Transaction is one ledger row.
type Transaction struct {
	Date        time.Time
	Amount      decimal.Decimal // always positive; the sign comes from Category
	Category    Category
	Description string
}

// Validate checks the entry-time invariants. Stored rows are not re-validated on load.
func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return &ValidationError{Field: "date", Err: ErrInvalidDate}
	}
	if !t.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Value: t.Amount.String(), Err: ErrNonPositiveAmount}
	}
	if strings.TrimSpace(string(t.Category)) == "" {
		return &ValidationError{Field: "category", Err: ErrEmptyCategory}
	}
	return nil
}

// Signed returns the amount as a balance contribution: positive for income,
// negative for expenses and for any unrecognized category.
func (t Transaction) Signed() decimal.Decimal {
	if t.Category == Income {
		return t.Amount
	}
	return t.Amount.Neg()
}

// String renders the transaction as a single human-readable line.
func (t Transaction) String() string {
	desc := t.Description
	if desc == "" {
		desc = "-"
	}
	return fmt.Sprintf("%s %s %s %s", FormatDate(t.Date), t.Category, t.Amount.StringFixed(2), desc)
}

// ParseDate parses a dd-mm-yyyy date. Two-digit day and month and a
// four-digit year are required.
func ParseDate(s string) (time.Time, error) {
	value := strings.TrimSpace(s)
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Value: value, Err: ErrInvalidDate}
	}
	return d, nil
}

// FormatDate renders t in the ledger's date layout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Day truncates t to midnight UTC on its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Range is an inclusive date range. Both bounds are always present.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange parses both bounds of a range.
func NewRange(start, end string) (Range, error) {
	s, err := ParseDate(start)
	if err != nil {
		return Range{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: s, End: e}, nil
}

// Contains reports whether t falls within the range, bounds included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Reversed reports whether the end bound precedes the start bound.
func (r Range) Reversed() bool {
	return r.End.Before(r.Start)
}

// String renders the range as "start to end".
func (r Range) String() string {
	return FormatDate(r.Start) + " to " + FormatDate(r.End)
}
