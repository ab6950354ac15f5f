package tui

import (
	"fmt"
	"strings"

	"git.sr.ht/~jakintosh/purse/internal/chart"
	"git.sr.ht/~jakintosh/purse/internal/logging"
	tea "github.com/charmbracelet/bubbletea"
)

// openList shows the loaded range as a table followed by its summary
func (m *Model) openList() {
	m.switchView(viewList)
	m.resizeViewport()
	m.viewport.GotoTop()
}

func (m *Model) listContent() string {
	var b strings.Builder
	b.WriteString(chart.Table(m.records))
	b.WriteString("\n\n")
	b.WriteString(m.summaryText)
	if m.dropped > 0 {
		fmt.Fprintf(&b, "\n\n%s", formatStatus(fmt.Sprintf("Skipped %d unreadable rows", m.dropped), statusError))
	}
	return b.String()
}

// updateList handles keyboard input in the transaction list
func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+q":
		return tea.Quit
	case "esc", "q", "enter":
		m.switchView(viewMenu)
		return nil
	case "y":
		m.copySummary()
		return nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

// copySummary puts the plain-text summary on the clipboard
func (m *Model) copySummary() {
	if err := m.copy(m.summaryText); err != nil {
		m.logger.Warn("Failed to copy summary", logging.FieldError, err)
		m.setStatus(fmt.Sprintf("Could not copy summary: %v", err), statusError, statusDuration)
		return
	}
	m.setStatus("Summary copied to clipboard", statusSuccess, statusShortDuration)
}

// renderList displays the scrollable transaction list
func (m *Model) renderList() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", formatTitle(fmt.Sprintf("Transactions (%d)", len(m.records))))
	fmt.Fprintf(&b, "%s\n", m.viewport.View())
	if msg := m.statusLine(); msg != "" {
		fmt.Fprintf(&b, "%s\n", msg)
	}
	b.WriteString(formatHint(fmt.Sprintf("[↑/↓]scroll  [y]copy summary  [esc]back  %3.0f%%", m.viewport.ScrollPercent()*100)))
	return b.String()
}

// openChart renders a chart of the loaded range
func (m *Model) openChart(kind chart.Kind) {
	m.chartKind = kind
	m.switchView(viewChart)
	m.resizeViewport()
	m.viewport.GotoTop()
}

// updateChart handles keyboard input in the chart view
func (m *Model) updateChart(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+q":
		return tea.Quit
	case "esc", "q", "enter":
		m.switchView(viewVisualize)
		return nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

// renderChart displays the selected chart
func (m *Model) renderChart() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", m.viewport.View())
	if msg := m.statusLine(); msg != "" {
		fmt.Fprintf(&b, "%s\n", msg)
	}
	b.WriteString(formatHint("[↑/↓]scroll  [esc]back"))
	return b.String()
}

// resizeViewport fits the scrolling area to the terminal and redraws
// width-dependent content
func (m *Model) resizeViewport() {
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-chromeLines, 1)
	switch m.currentView {
	case viewList:
		m.viewport.SetContent(m.listContent())
	case viewChart:
		m.viewport.SetContent(chart.Render(m.chartKind, m.records, m.chartWidth(m.width)))
	}
}
