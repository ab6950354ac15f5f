package tui

import (
	"time"

	"git.sr.ht/~jakintosh/purse/internal/chart"
	"git.sr.ht/~jakintosh/purse/internal/core"
	"git.sr.ht/~jakintosh/purse/internal/intelligence"
	"git.sr.ht/~jakintosh/purse/internal/report"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
)

// Constants define UI behavior
const (
	statusDuration       = 5 * time.Second
	statusShortDuration  = 3 * time.Second
	maxSuggestionDisplay = 5
	defaultWidth         = 80
	defaultHeight        = 24
	chromeLines          = 4
)

// viewState represents the current screen being displayed
type viewState int

const (
	viewMenu viewState = iota
	viewEntry
	viewRange
	viewList
	viewVisualize
	viewChart
)

func (v viewState) String() string {
	switch v {
	case viewMenu:
		return "menu"
	case viewEntry:
		return "entry"
	case viewRange:
		return "range"
	case viewList:
		return "list"
	case viewVisualize:
		return "visualize"
	case viewChart:
		return "chart"
	default:
		return "unknown"
	}
}

// statusKind represents the type of status message being displayed
type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusError
)

// entryStep is the field the entry form is prompting for
type entryStep int

const (
	stepDate entryStep = iota
	stepAmount
	stepCategory
	stepDescription
)

// rangeStep is the bound the range prompt is asking for
type rangeStep int

const (
	stepStart rangeStep = iota
	stepEnd
)

// rangePurpose is the view a completed range prompt leads to
type rangePurpose int

const (
	forList rangePurpose = iota
	forVisualize
)

// Ledger is the storage the shell reads from and appends to
type Ledger interface {
	Append(tx core.Transaction) error
	Load(r *core.Range) (core.LoadResult, error)
}

// Options configures a Model
type Options struct {
	Ledger      Ledger
	LedgerPath  string
	SessionPath string
	Logger      *log.Logger

	// ChartWidth maps the terminal width to the chart width.
	ChartWidth func(terminal int) int
	// Now returns the current time; defaults to time.Now.
	Now func() time.Time
	// Copy writes text to the clipboard; defaults to the system clipboard.
	Copy func(text string) error
}

// Model is the main application state container for the TUI
type Model struct {
	ledger      Ledger
	ledgerPath  string
	sessionPath string
	logger      *log.Logger
	index       *intelligence.DescriptionIndex
	chartWidth  func(int) int
	now         func() time.Time
	copy        func(string) error

	currentView viewState
	menuCursor  int
	width       int
	height      int

	input  textinput.Model
	entry  entryForm
	ranges rangeForm

	records     []core.Transaction
	dropped     int
	summary     report.Summary
	summaryText string
	chartKind   chart.Kind
	viewport    viewport.Model

	statusMessage string
	statusKind    statusKind
	statusExpiry  time.Time
	err           error
}

// entryForm holds the values accepted so far while adding a transaction
type entryForm struct {
	step        entryStep
	date        time.Time
	amount      decimal.Decimal
	category    core.Category
	suggestions []string
}

// rangeForm holds the state of the date range prompt
type rangeForm struct {
	step    rangeStep
	purpose rangePurpose
	start   time.Time
	last    core.Range
	hasLast bool
}

// statusTick is sent periodically to update status message expiry
type statusTick struct{}
