package store

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"git.sr.ht/~jakintosh/purse/internal/core"
	"git.sr.ht/~jakintosh/purse/internal/logging"
	"github.com/shopspring/decimal"
)

func date(day, month, year int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func tx(d time.Time, amount string, category core.Category, desc string) core.Transaction {
	return core.Transaction{
		Date:        d,
		Amount:      decimal.RequireFromString(amount),
		Category:    category,
		Description: desc,
	}
}

func testStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "finance_data.csv"))
}

func writeLedger(t *testing.T, content string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write ledger: %v", err)
	}
	return New(path)
}

func TestEnsureInitializedCreatesHeaderOnly(t *testing.T) {
	s := testStore(t)

	if err := s.EnsureInitialized(); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "date,amount,category,description\n" {
		t.Fatalf("unexpected initial content: %q", string(data))
	}

	// repeated calls leave the file alone
	if err := s.Append(tx(date(1, 1, 2025), "10", core.Income, "Salary")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.EnsureInitialized(); err != nil {
		t.Fatalf("second initialize: %v", err)
	}
	result, err := s.Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(result.Transactions) != 1 {
		t.Fatalf("expected existing row to survive re-initialization, got %d", len(result.Transactions))
	}
}

func TestEnsureInitializedFillsEmptyFile(t *testing.T) {
	s := writeLedger(t, "")
	if err := s.EnsureInitialized(); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	data, _ := os.ReadFile(s.Path())
	if !strings.HasPrefix(string(data), "date,amount,category,description") {
		t.Fatalf("expected header in previously empty file, got %q", string(data))
	}
}

func TestEnsureInitializedCreatesDirectory(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nested", "dir", "ledger.csv"))
	if err := s.EnsureInitialized(); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if _, err := os.Stat(s.Path()); err != nil {
		t.Fatalf("expected ledger file to exist: %v", err)
	}
}

func TestAppendRoundTrip(t *testing.T) {
	s := testStore(t)

	if err := s.Append(tx(date(19, 12, 2025), "42.50", core.Expense, "Coffee")); err != nil {
		t.Fatalf("append: %v", err)
	}

	r, err := core.NewRange("01-12-2025", "31-12-2025")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	result, err := s.Load(&r)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(result.Transactions) != 1 {
		t.Fatalf("expected exactly one transaction, got %d", len(result.Transactions))
	}
	got := result.Transactions[0]
	if !got.Date.Equal(date(19, 12, 2025)) {
		t.Errorf("unexpected date: %v", got.Date)
	}
	if !got.Amount.Equal(decimal.RequireFromString("42.50")) {
		t.Errorf("unexpected amount: %s", got.Amount)
	}
	if got.Category != core.Expense || got.Description != "Coffee" {
		t.Errorf("unexpected record: %+v", got)
	}

	data, _ := os.ReadFile(s.Path())
	if !strings.Contains(string(data), "19-12-2025,42.50,Expense,Coffee\n") {
		t.Fatalf("unexpected file content: %q", string(data))
	}
}

func TestAppendDoesNotRewriteExistingRows(t *testing.T) {
	content := "date,amount,category,description\n" +
		"01-01-2025,100.00,Income,Salary\n" +
		"garbage row that stays\n"
	s := writeLedger(t, content)

	if err := s.Append(tx(date(2, 1, 2025), "5", core.Expense, "Snack")); err != nil {
		t.Fatalf("append: %v", err)
	}
	data, _ := os.ReadFile(s.Path())
	if !strings.HasPrefix(string(data), content) {
		t.Fatalf("existing content was modified: %q", string(data))
	}
	if !strings.HasSuffix(string(data), "02-01-2025,5.00,Expense,Snack\n") {
		t.Fatalf("expected appended row at the end, got %q", string(data))
	}
}

func TestAppendQuotesEmbeddedDelimiters(t *testing.T) {
	s := testStore(t)
	desc := `Dinner, "La Piazza"`
	if err := s.Append(tx(date(3, 3, 2025), "60", core.Expense, desc)); err != nil {
		t.Fatalf("append: %v", err)
	}
	result, err := s.Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(result.Transactions) != 1 || result.Transactions[0].Description != desc {
		t.Fatalf("description did not survive quoting: %+v", result.Transactions)
	}
}

func TestAppendKeepsExtraPrecision(t *testing.T) {
	s := testStore(t)
	if err := s.Append(tx(date(3, 3, 2025), "1.125", core.Expense, "Fraction")); err != nil {
		t.Fatalf("append: %v", err)
	}
	data, _ := os.ReadFile(s.Path())
	if !strings.Contains(string(data), ",1.125,") {
		t.Fatalf("expected full precision on write, got %q", string(data))
	}
}

func TestAppendRejectsNonPositiveAmount(t *testing.T) {
	s := testStore(t)
	for _, amount := range []string{"0", "-12.00"} {
		err := s.Append(tx(date(1, 1, 2025), amount, core.Expense, "Bad"))
		if !errors.Is(err, core.ErrNonPositiveAmount) {
			t.Fatalf("amount %s: expected ErrNonPositiveAmount, got %v", amount, err)
		}
		if !core.IsValidation(err) {
			t.Fatalf("amount %s: expected validation error, got %T", amount, err)
		}
	}
	result, err := s.Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !result.Empty() {
		t.Fatalf("rejected appends must not be persisted, got %d rows", len(result.Transactions))
	}
}

func TestLoadFreshFileIsEmpty(t *testing.T) {
	s := testStore(t)
	result, err := s.Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !result.Empty() || result.Dropped != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
	if result.Transactions == nil {
		t.Fatalf("expected an explicit empty slice")
	}
}

func TestLoadDropsUnparsableRows(t *testing.T) {
	var logs bytes.Buffer
	content := "date,amount,category,description\n" +
		"05-01-2025,10.00,Expense,Lunch\n" +
		"2025-01-06,11.00,Expense,Wrong layout\n" +
		"31-02-2025,12.00,Expense,No such day\n" +
		"07-01-2025,abc,Expense,Bad amount\n" +
		"only-one-field\n" +
		"08-01-2025,13.00,Expense,Dinner\n"
	s := writeLedger(t, content)
	s = New(s.Path(), WithLogger(logging.New(&logs, false)))

	result, err := s.Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(result.Transactions) != 2 {
		t.Fatalf("expected 2 surviving rows, got %d", len(result.Transactions))
	}
	if result.Dropped != 4 {
		t.Fatalf("expected 4 dropped rows, got %d", result.Dropped)
	}
	if !strings.Contains(logs.String(), "dropped=4") {
		t.Fatalf("expected dropped count in logs, got %q", logs.String())
	}
}

func TestLoadSortsByDateStable(t *testing.T) {
	content := "date,amount,category,description\n" +
		"10-02-2025,3.00,Expense,C\n" +
		"01-01-2025,1.00,Income,A\n" +
		"10-02-2025,4.00,Expense,D\n" +
		"05-01-2025,2.00,Expense,B\n"
	s := writeLedger(t, content)

	result, err := s.Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var order []string
	for _, tx := range result.Transactions {
		order = append(order, tx.Description)
	}
	if strings.Join(order, "") != "ABCD" {
		t.Fatalf("unexpected order: %v", order)
	}
}

func TestLoadRangeIsInclusive(t *testing.T) {
	content := "date,amount,category,description\n" +
		"30-11-2025,1.00,Expense,Before\n" +
		"01-12-2025,2.00,Expense,Start\n" +
		"15-12-2025,3.00,Income,Middle\n" +
		"31-12-2025,4.00,Expense,End\n" +
		"01-01-2026,5.00,Expense,After\n"
	s := writeLedger(t, content)

	r, _ := core.NewRange("01-12-2025", "31-12-2025")
	result, err := s.Load(&r)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(result.Transactions) != 3 {
		t.Fatalf("expected 3 rows in range, got %d", len(result.Transactions))
	}
	for i, tx := range result.Transactions {
		if !r.Contains(tx.Date) {
			t.Fatalf("row %d outside range: %v", i, tx.Date)
		}
		if i > 0 && tx.Date.Before(result.Transactions[i-1].Date) {
			t.Fatalf("rows not sorted at %d", i)
		}
	}

	empty, _ := core.NewRange("01-01-2030", "31-01-2030")
	result, err = s.Load(&empty)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !result.Empty() {
		t.Fatalf("expected no rows, got %d", len(result.Transactions))
	}
}

func TestLoadKeepsUnknownCategories(t *testing.T) {
	content := "date,amount,category,description\n" +
		"01-01-2025,100.00,Transfer,Savings move\n" +
		"02-01-2025,20.00,Expense,Groceries\n"
	s := writeLedger(t, content)

	result, err := s.Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(result.Transactions) != 2 {
		t.Fatalf("expected unknown category row to be kept, got %d rows", len(result.Transactions))
	}
	if result.Transactions[0].Category != core.Category("Transfer") {
		t.Fatalf("unexpected category: %q", result.Transactions[0].Category)
	}
}

func TestLoadToleratesMissingDescription(t *testing.T) {
	content := "date,amount,category,description\n" +
		"01-01-2025,5.00,Expense\n" +
		"02-01-2025,6.00,Expense,\n"
	s := writeLedger(t, content)

	result, err := s.Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(result.Transactions) != 2 || result.Dropped != 0 {
		t.Fatalf("expected both rows, got %+v", result)
	}
	for _, tx := range result.Transactions {
		if tx.Description != "" {
			t.Fatalf("expected empty description, got %q", tx.Description)
		}
	}
}

func TestAppendedRecordsAreVisible(t *testing.T) {
	s := testStore(t)
	records := []core.Transaction{
		tx(date(1, 3, 2025), "4500", core.Income, "Salary"),
		tx(date(2, 3, 2025), "12.40", core.Expense, "Coffee"),
		tx(date(28, 2, 2025), "80", core.Expense, "Groceries"),
	}
	for i, rec := range records {
		if err := s.Append(rec); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		result, err := s.Load(nil)
		if err != nil {
			t.Fatalf("load after %d: %v", i, err)
		}
		found := false
		for _, got := range result.Transactions {
			if got.Date.Equal(rec.Date) && got.Amount.Equal(rec.Amount) && got.Description == rec.Description {
				found = true
			}
		}
		if !found {
			t.Fatalf("appended record %d not visible", i)
		}
		if len(result.Transactions) != i+1 {
			t.Fatalf("expected %d rows, got %d", i+1, len(result.Transactions))
		}
	}
}

func TestResetDiscardsRows(t *testing.T) {
	s := testStore(t)
	if err := s.Append(tx(date(1, 3, 2025), "4500", core.Income, "Salary")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	result, err := s.Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !result.Empty() {
		t.Fatalf("expected empty ledger after reset, got %d rows", len(result.Transactions))
	}
	data, _ := os.ReadFile(s.Path())
	if string(data) != "date,amount,category,description\n" {
		t.Fatalf("unexpected content after reset: %q", string(data))
	}
}

func TestAppendAfterMissingTrailingNewline(t *testing.T) {
	s := writeLedger(t, "date,amount,category,description\n01-12-2025,5.00,Expense,Tea")

	if err := s.Append(tx(date(19, 12, 2025), "42.50", core.Expense, "Coffee")); err != nil {
		t.Fatalf("append: %v", err)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "date,amount,category,description\n01-12-2025,5.00,Expense,Tea\n19-12-2025,42.50,Expense,Coffee\n"
	if string(data) != want {
		t.Fatalf("unexpected content:\n%q\nwant\n%q", string(data), want)
	}

	result, err := s.Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(result.Transactions) != 2 || result.Dropped != 0 {
		t.Fatalf("expected 2 rows and no drops, got %d rows, %d dropped", len(result.Transactions), result.Dropped)
	}
	if result.Transactions[0].Description != "Tea" || result.Transactions[1].Description != "Coffee" {
		t.Fatalf("unexpected descriptions %q, %q", result.Transactions[0].Description, result.Transactions[1].Description)
	}
}

func TestLoadRecoversRowsAfterUnterminatedQuote(t *testing.T) {
	content := "date,amount,category,description\n" +
		"01-12-2025,5.00,Expense,\"Tea\n" +
		"02-12-2025,3.00,Expense,Milk\n" +
		"03-12-2025,4.00,Expense,Bread\n"
	s := writeLedger(t, content)

	result, err := s.Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if result.Dropped != 1 {
		t.Fatalf("expected the broken row to be dropped, got %d dropped", result.Dropped)
	}
	if len(result.Transactions) != 2 {
		t.Fatalf("expected 2 recovered rows, got %d", len(result.Transactions))
	}
	if result.Transactions[0].Description != "Milk" || result.Transactions[1].Description != "Bread" {
		t.Fatalf("unexpected descriptions %q, %q", result.Transactions[0].Description, result.Transactions[1].Description)
	}
}

func TestLoadKeepsMultilineDescriptions(t *testing.T) {
	s := testStore(t)
	if err := s.Append(tx(date(1, 12, 2025), "5.00", core.Expense, "Tea\nwith lemon")); err != nil {
		t.Fatalf("append: %v", err)
	}
	result, err := s.Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(result.Transactions) != 1 || result.Dropped != 0 {
		t.Fatalf("expected 1 row and no drops, got %d rows, %d dropped", len(result.Transactions), result.Dropped)
	}
	if result.Transactions[0].Description != "Tea\nwith lemon" {
		t.Fatalf("unexpected description %q", result.Transactions[0].Description)
	}
}
