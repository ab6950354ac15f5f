package tui

import (
	"fmt"
	"strings"

	"git.sr.ht/~jakintosh/purse/internal/chart"
	tea "github.com/charmbracelet/bubbletea"
)

var menuItems = []string{
	"Add a new transaction",
	"View transactions and summary within a date range",
	"Visualize data",
	"Exit",
}

// updateMenu handles keyboard input on the main menu
func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+q":
		return tea.Quit
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
		return nil
	case "down", "j":
		if m.menuCursor < len(menuItems)-1 {
			m.menuCursor++
		}
		return nil
	case "enter":
		return m.chooseMenu(m.menuCursor + 1)
	case "1", "2", "3", "4":
		return m.chooseMenu(int(msg.Runes[0] - '0'))
	}
	m.setStatus(fmt.Sprintf("Invalid choice. Please enter 1-%d.", len(menuItems)), statusError, statusShortDuration)
	return nil
}

// chooseMenu runs a numbered main menu entry
func (m *Model) chooseMenu(choice int) tea.Cmd {
	m.menuCursor = choice - 1
	switch choice {
	case 1:
		return m.startEntry()
	case 2:
		return m.startRange(forList)
	case 3:
		return m.startRange(forVisualize)
	case 4:
		return tea.Quit
	}
	return nil
}

// renderMenu displays the main menu
func (m *Model) renderMenu() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", formatTitle("Personal Finance Ledger"))
	if m.ledgerPath != "" {
		fmt.Fprintf(&b, "%s\n", formatHint("Ledger: "+m.ledgerPath))
	}
	b.WriteString("\n")
	for i, item := range menuItems {
		cursor := " "
		if i == m.menuCursor {
			cursor = formatCursor(">")
		}
		fmt.Fprintf(&b, "%s %d. %s\n", cursor, i+1, item)
	}
	b.WriteString("\n")
	if msg := m.statusLine(); msg != "" {
		fmt.Fprintf(&b, "%s\n\n", msg)
	}
	b.WriteString(formatHint("[1-4]choose  [↑/↓]move  [enter]select  [q]uit"))
	return b.String()
}

// updateVisualize handles keyboard input on the visualization menu
func (m *Model) updateVisualize(msg tea.KeyMsg) tea.Cmd {
	back := len(chart.Visualizations) + 1
	switch msg.String() {
	case "ctrl+q":
		return tea.Quit
	case "esc", "q":
		m.switchView(viewMenu)
		return nil
	}

	if len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '9' {
		choice := int(msg.Runes[0] - '0')
		if choice == back {
			m.switchView(viewMenu)
			return nil
		}
		if choice < back {
			m.openChart(chart.Visualizations[choice-1].Kind)
			return nil
		}
	}
	m.setStatus(fmt.Sprintf("Invalid choice. Please enter 1-%d.", back), statusError, statusShortDuration)
	return nil
}

// renderVisualize displays the visualization menu
func (m *Model) renderVisualize() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", formatTitle("Visualize"))
	fmt.Fprintf(&b, "%s\n\n", formatHint(fmt.Sprintf("%d transactions", len(m.records))))
	for i, v := range chart.Visualizations {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, v.Title)
	}
	fmt.Fprintf(&b, "  %d. Back\n\n", len(chart.Visualizations)+1)
	if msg := m.statusLine(); msg != "" {
		fmt.Fprintf(&b, "%s\n\n", msg)
	}
	b.WriteString(formatHint("[1-9]choose  [esc]back"))
	return b.String()
}
