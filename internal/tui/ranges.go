package tui

import (
	"fmt"
	"strings"

	"git.sr.ht/~jakintosh/purse/internal/chart"
	"git.sr.ht/~jakintosh/purse/internal/core"
	"git.sr.ht/~jakintosh/purse/internal/logging"
	"git.sr.ht/~jakintosh/purse/internal/report"
	"git.sr.ht/~jakintosh/purse/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

const noVisualData = "No data to visualize for this date range."

// startRange opens the date range prompt for the given purpose
func (m *Model) startRange(purpose rangePurpose) tea.Cmd {
	m.ranges.purpose = purpose
	m.switchView(viewRange)
	return m.promptRange(stepStart)
}

// promptRange resets the input for a bound, prefilled from the last range
func (m *Model) promptRange(step rangeStep) tea.Cmd {
	m.ranges.step = step
	m.input = newTextInput("dd-mm-yyyy")
	if m.ranges.hasLast {
		bound := m.ranges.last.Start
		if step == stepEnd {
			bound = m.ranges.last.End
		}
		m.input.SetValue(core.FormatDate(bound))
		m.input.CursorEnd()
	}
	return m.input.Focus()
}

// updateRange handles keyboard input in the range prompt
func (m *Model) updateRange(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+q":
		return tea.Quit
	case "esc":
		m.input.Blur()
		m.switchView(viewMenu)
		return nil
	case "enter":
		return m.submitRangeStep()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// submitRangeStep validates the current bound and loads the range once complete
func (m *Model) submitRangeStep() tea.Cmd {
	date, err := core.ParseDate(strings.TrimSpace(m.input.Value()))
	if err != nil {
		m.setStatus(err.Error(), statusError, statusDuration)
		return nil
	}

	if m.ranges.step == stepStart {
		m.ranges.start = date
		m.statusMessage = ""
		return m.promptRange(stepEnd)
	}

	r := core.Range{Start: m.ranges.start, End: date}
	if r.Reversed() {
		m.setStatus("End date must be on or after the start date", statusError, statusDuration)
		return nil
	}
	m.statusMessage = ""
	m.input.Blur()
	m.ranges.last, m.ranges.hasLast = r, true
	if m.sessionPath != "" {
		if err := session.SaveRange(m.sessionPath, r); err != nil {
			m.logger.Warn("Failed to save session", logging.FieldError, err)
		}
	}
	m.loadRange(r)
	return nil
}

// loadRange reads the range from the ledger and opens the requested view
func (m *Model) loadRange(r core.Range) {
	result, err := m.ledger.Load(&r)
	if err != nil {
		m.logger.Error("Failed to load ledger", logging.FieldRange, r, logging.FieldError, err)
		m.switchView(viewMenu)
		m.setStatus(fmt.Sprintf("Failed to load transactions: %v", err), statusError, statusDuration)
		return
	}
	m.logger.Debug("Loaded range",
		logging.FieldRange, r,
		logging.FieldCount, len(result.Transactions),
		logging.FieldDropped, result.Dropped)

	m.records = result.Transactions
	m.dropped = result.Dropped
	m.summary = report.NetSummary(m.records)
	m.summaryText = chart.Summary(m.summary, report.BreakdownByDescription(m.records, core.Expense, 5))

	switch m.ranges.purpose {
	case forList:
		if result.Empty() {
			m.switchView(viewMenu)
			m.setStatus(chart.NoTransactions, statusInfo, statusDuration)
			return
		}
		m.openList()
	case forVisualize:
		if result.Empty() {
			m.switchView(viewMenu)
			m.setStatus(noVisualData, statusInfo, statusDuration)
			return
		}
		m.switchView(viewVisualize)
	}
}

// renderRange displays the date range prompt
func (m *Model) renderRange() string {
	var b strings.Builder
	title := "Transactions in Range"
	if m.ranges.purpose == forVisualize {
		title = "Visualize Range"
	}
	fmt.Fprintf(&b, "%s\n\n", formatTitle(title))
	if m.ranges.step == stepEnd {
		fmt.Fprintf(&b, "Start date   %s\n", core.FormatDate(m.ranges.start))
		fmt.Fprintf(&b, "End date     %s %s\n\n", formatCursor(">"), m.input.View())
	} else {
		fmt.Fprintf(&b, "Start date   %s %s\n\n", formatCursor(">"), m.input.View())
	}
	if msg := m.statusLine(); msg != "" {
		fmt.Fprintf(&b, "%s\n\n", msg)
	}
	b.WriteString(formatHint("[enter]next  [esc]cancel"))
	return b.String()
}
