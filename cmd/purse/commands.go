package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"git.sr.ht/~jakintosh/purse/internal/chart"
	"git.sr.ht/~jakintosh/purse/internal/core"
	"git.sr.ht/~jakintosh/purse/internal/logging"
	"git.sr.ht/~jakintosh/purse/internal/report"
	"git.sr.ht/~jakintosh/purse/internal/sample"
	"git.sr.ht/~jakintosh/purse/internal/session"
	"git.sr.ht/~jakintosh/purse/internal/tui"
	"git.sr.ht/~jakintosh/purse/internal/util"
	"git.sr.ht/~jakintosh/purse/internal/version"
	tea "github.com/charmbracelet/bubbletea"
)

// now is replaced in tests.
var now = time.Now

func newFlagSet(e *env, name, synopsis string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	fs.Usage = func() {
		fmt.Fprintf(e.stderr, "Usage: purse %s %s\n\n", name, synopsis)
		fs.PrintDefaults()
	}
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments %q", errUsage, fs.Args())
	}
	return nil
}

// parseRange turns optional -from/-to values into a range. Both or neither
// must be given.
func parseRange(from, to string) (*core.Range, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" && to == "" {
		return nil, nil
	}
	if from == "" || to == "" {
		return nil, fmt.Errorf("%w: -from and -to must be given together", errUsage)
	}
	r, err := core.NewRange(from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	if r.Reversed() {
		return nil, fmt.Errorf("%w: end date %s is before start date %s", errUsage, to, from)
	}
	return &r, nil
}

func runShell(e *env) error {
	if err := e.store.EnsureInitialized(); err != nil {
		return err
	}
	model, err := tui.NewModel(tui.Options{
		Ledger:      e.store,
		LedgerPath:  e.store.Path(),
		SessionPath: session.Path(e.store.Path()),
		Logger:      e.logger,
		ChartWidth:  e.cfg.ChartWidth,
	})
	if err != nil {
		return err
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func runAdd(e *env, args []string) error {
	fs := newFlagSet(e, "add", "-amount EXPR -category I|E [-date dd-mm-yyyy] [-description TEXT]")
	dateFlag := fs.String("date", "", "transaction date as dd-mm-yyyy (default today)")
	amountFlag := fs.String("amount", "", "amount, arithmetic allowed (e.g. 19.99*2)")
	categoryFlag := fs.String("category", "", "I for Income or E for Expense")
	descriptionFlag := fs.String("description", "", "free-text description")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	date := core.Day(now())
	if strings.TrimSpace(*dateFlag) != "" {
		d, err := core.ParseDate(*dateFlag)
		if err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		date = d
	}
	amount, err := util.ParseAmount(*amountFlag)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	category, err := core.ParseCategory(*categoryFlag)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	tx := core.Transaction{
		Date:        date,
		Amount:      amount,
		Category:    category,
		Description: strings.TrimSpace(*descriptionFlag),
	}
	if err := e.store.Append(tx); err != nil {
		return err
	}
	e.logger.Info("Added transaction",
		logging.FieldDate, core.FormatDate(tx.Date),
		logging.FieldAmount, tx.Amount.String(),
		logging.FieldCategory, tx.Category)
	fmt.Fprintf(e.stdout, "Entry added successfully: %s\n", tx)
	return nil
}

func runSummary(e *env, args []string) error {
	fs := newFlagSet(e, "summary", "[-from dd-mm-yyyy -to dd-mm-yyyy]")
	from := fs.String("from", "", "start date, inclusive")
	to := fs.String("to", "", "end date, inclusive")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	r, err := parseRange(*from, *to)
	if err != nil {
		return err
	}

	result, err := e.store.Load(r)
	if err != nil {
		return err
	}
	if result.Empty() {
		fmt.Fprintln(e.stdout, chart.NoTransactions)
		return nil
	}

	top := report.BreakdownByDescription(result.Transactions, core.Expense, 5)
	fmt.Fprintln(e.stdout, chart.Table(result.Transactions))
	fmt.Fprintln(e.stdout)
	fmt.Fprintln(e.stdout, chart.Summary(report.NetSummary(result.Transactions), top))
	if result.Dropped > 0 {
		fmt.Fprintf(e.stdout, "\nSkipped %d unreadable rows\n", result.Dropped)
	}
	return nil
}

func runChart(e *env, args []string) error {
	fs := newFlagSet(e, "chart", "-kind KIND [-from dd-mm-yyyy -to dd-mm-yyyy]")
	kindFlag := fs.String("kind", string(chart.KindDashboard), "bar, line, monthly, expense-pie, income-pie, top, cumulative or dashboard")
	from := fs.String("from", "", "start date, inclusive")
	to := fs.String("to", "", "end date, inclusive")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	kind, err := chart.ParseKind(*kindFlag)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	r, err := parseRange(*from, *to)
	if err != nil {
		return err
	}

	result, err := e.store.Load(r)
	if err != nil {
		return err
	}
	if result.Empty() {
		fmt.Fprintln(e.stdout, "No data to visualize for this date range.")
		return nil
	}
	fmt.Fprintln(e.stdout, chart.Render(kind, result.Transactions, e.cfg.ChartWidth(terminalWidth())))
	return nil
}

func runDemo(e *env, args []string) error {
	fs := newFlagSet(e, "demo", "[-months N] [-seed N] [-force]")
	months := fs.Int("months", 6, "months of history to generate")
	seed := fs.Uint64("seed", 0, "random seed (default: time based)")
	force := fs.Bool("force", false, "replace a ledger that already has transactions")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *months < 1 {
		return fmt.Errorf("%w: -months must be at least 1", errUsage)
	}

	if err := e.store.EnsureInitialized(); err != nil {
		return err
	}
	existing, err := e.store.Load(nil)
	if err != nil {
		return err
	}
	if !existing.Empty() && !*force {
		return fmt.Errorf("%w: ledger %s already has %d transactions, use -force to replace them",
			errUsage, e.store.Path(), len(existing.Transactions))
	}
	if err := e.store.Reset(); err != nil {
		return err
	}

	s := *seed
	if s == 0 {
		s = uint64(now().UnixNano())
	}
	txs := sample.Generate(*months, now(), rand.New(rand.NewPCG(s, s>>1)))
	if err := sample.Write(e.store, txs); err != nil {
		return err
	}
	e.logger.Info("Generated sample data", logging.FieldCount, len(txs), logging.FieldPath, e.store.Path())
	fmt.Fprintf(e.stdout, "Generated %d transactions over %d months in %s\n", len(txs), *months, e.store.Path())
	return nil
}

func runVersion(e *env) error {
	fmt.Fprintln(e.stdout, version.Data())
	return nil
}
