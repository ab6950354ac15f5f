// Package tui implements the interactive shell: a main menu for adding
// transactions, listing a date range with its summary, and browsing charts
// of that range.
package tui

import (
	"fmt"
	"time"

	"git.sr.ht/~jakintosh/purse/internal/intelligence"
	"git.sr.ht/~jakintosh/purse/internal/logging"
	"git.sr.ht/~jakintosh/purse/internal/session"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// NewModel creates a shell over the given ledger. Past descriptions are
// loaded up front for autocompletion and the last session range, if any,
// prefills the range prompt.
func NewModel(opts Options) (*Model, error) {
	m := &Model{
		ledger:      opts.Ledger,
		ledgerPath:  opts.LedgerPath,
		sessionPath: opts.SessionPath,
		logger:      opts.Logger,
		chartWidth:  opts.ChartWidth,
		now:         opts.Now,
		copy:        opts.Copy,
		currentView: viewMenu,
		width:       defaultWidth,
		height:      defaultHeight,
		input:       newTextInput(""),
		viewport:    viewport.New(defaultWidth, defaultHeight-chromeLines),
	}
	if m.logger == nil {
		m.logger = logging.Discard()
	}
	if m.chartWidth == nil {
		m.chartWidth = func(terminal int) int { return terminal }
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.copy == nil {
		m.copy = clipboard.WriteAll
	}

	result, err := m.ledger.Load(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	m.index = intelligence.NewDescriptionIndex(result.Transactions)
	if result.Dropped > 0 {
		m.setStatus(fmt.Sprintf("Skipped %d unreadable rows in the ledger", result.Dropped), statusInfo, statusDuration)
	}

	if m.sessionPath != "" {
		last, ok, err := session.LoadRange(m.sessionPath)
		if err != nil {
			m.logger.Warn("Discarding unreadable session", logging.FieldError, err)
			if err := session.DeleteSession(m.sessionPath); err != nil {
				m.logger.Warn("Failed to remove session", logging.FieldError, err)
			}
		}
		m.ranges.last, m.ranges.hasLast = last, ok
	}
	return m, nil
}

func newTextInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Width = 40
	return ti
}

// Init initializes the model and returns the initial command
func (m *Model) Init() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return statusTick{} })
}

// Update handles incoming messages and updates the model state
func (m *Model) Update(msg tea.Msg) (updated tea.Model, cmd tea.Cmd) {
	defer func() {
		if recovered := recover(); recovered != nil {
			m.err = fmt.Errorf("unexpected internal error: %v", recovered)
			m.logger.Error("Recovered from panic", logging.FieldView, m.currentView, logging.FieldError, m.err)
			updated = m
			cmd = nil
		}
	}()

	if m.err != nil {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "ctrl+q", "ctrl+c":
				return m, tea.Quit
			}
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()
		return m, nil
	case statusTick:
		if !m.statusExpiry.IsZero() && time.Now().After(m.statusExpiry) {
			m.statusMessage = ""
			m.statusExpiry = time.Time{}
		}
		return m, tea.Tick(time.Second, func(time.Time) tea.Msg { return statusTick{} })
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleKey routes keyboard input to the appropriate handler based on the current view
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.currentView {
	case viewMenu:
		return m, m.updateMenu(msg)
	case viewEntry:
		return m, m.updateEntry(msg)
	case viewRange:
		return m, m.updateRange(msg)
	case viewList:
		return m, m.updateList(msg)
	case viewVisualize:
		return m, m.updateVisualize(msg)
	case viewChart:
		return m, m.updateChart(msg)
	default:
		return m, nil
	}
}

// View renders the current view based on the model state
func (m *Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress ctrl+c to quit.", m.err)
	}

	switch m.currentView {
	case viewMenu:
		return m.renderMenu()
	case viewEntry:
		return m.renderEntry()
	case viewRange:
		return m.renderRange()
	case viewList:
		return m.renderList()
	case viewVisualize:
		return m.renderVisualize()
	case viewChart:
		return m.renderChart()
	default:
		return "Unknown view"
	}
}

// switchView changes the current screen
func (m *Model) switchView(v viewState) {
	m.logger.Debug("Switching view", logging.FieldView, v)
	m.currentView = v
}

// setStatus sets a temporary status message with the given duration and kind
func (m *Model) setStatus(message string, kind statusKind, duration time.Duration) {
	m.statusMessage = message
	m.statusKind = kind
	m.statusExpiry = time.Now().Add(duration)
}

// statusLine returns the current status message if it hasn't expired
func (m *Model) statusLine() string {
	if m.statusMessage == "" {
		return ""
	}
	if !m.statusExpiry.IsZero() && time.Now().After(m.statusExpiry) {
		return ""
	}
	return formatStatus(m.statusMessage, m.statusKind)
}
