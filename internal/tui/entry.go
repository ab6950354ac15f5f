package tui

import (
	"fmt"
	"strings"

	"git.sr.ht/~jakintosh/purse/internal/core"
	"git.sr.ht/~jakintosh/purse/internal/logging"
	"git.sr.ht/~jakintosh/purse/internal/util"
	tea "github.com/charmbracelet/bubbletea"
)

// startEntry opens the entry form at its first prompt
func (m *Model) startEntry() tea.Cmd {
	m.entry = entryForm{}
	m.switchView(viewEntry)
	return m.promptEntry(stepDate)
}

// promptEntry resets the input for the given step and focuses it
func (m *Model) promptEntry(step entryStep) tea.Cmd {
	m.entry.step = step
	m.entry.suggestions = nil
	switch step {
	case stepDate:
		m.input = newTextInput("dd-mm-yyyy, enter for today")
	case stepAmount:
		m.input = newTextInput("e.g. 42.50 or 19.99 * 2")
	case stepCategory:
		m.input = newTextInput("I or E")
		m.input.CharLimit = 7
	case stepDescription:
		m.input = newTextInput("optional")
		m.input.ShowSuggestions = true
		m.refreshSuggestions()
	}
	return m.input.Focus()
}

// updateEntry handles keyboard input in the entry form
func (m *Model) updateEntry(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+q":
		return tea.Quit
	case "esc":
		m.switchView(viewMenu)
		m.setStatus("Entry cancelled", statusInfo, statusShortDuration)
		return nil
	case "enter":
		return m.submitEntryStep()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.entry.step == stepDescription {
		m.refreshSuggestions()
	}
	return cmd
}

// submitEntryStep validates the current prompt and advances the form
func (m *Model) submitEntryStep() tea.Cmd {
	value := strings.TrimSpace(m.input.Value())

	switch m.entry.step {
	case stepDate:
		if value == "" {
			m.entry.date = core.Day(m.now())
			m.setStatus(fmt.Sprintf("No date entered, using today: %s", core.FormatDate(m.entry.date)), statusInfo, statusShortDuration)
			return m.promptEntry(stepAmount)
		}
		date, err := core.ParseDate(value)
		if err != nil {
			m.setStatus(err.Error(), statusError, statusDuration)
			return nil
		}
		m.entry.date = date
		m.statusMessage = ""
		return m.promptEntry(stepAmount)

	case stepAmount:
		amount, err := util.ParseAmount(value)
		if err != nil {
			m.setStatus(err.Error(), statusError, statusDuration)
			return nil
		}
		m.entry.amount = amount
		m.statusMessage = ""
		return m.promptEntry(stepCategory)

	case stepCategory:
		category, err := core.ParseCategory(value)
		if err != nil {
			m.setStatus(err.Error(), statusError, statusDuration)
			return nil
		}
		m.entry.category = category
		m.statusMessage = ""
		return m.promptEntry(stepDescription)

	case stepDescription:
		m.addEntry(value)
	}
	return nil
}

// addEntry appends the completed form to the ledger and returns to the menu
func (m *Model) addEntry(description string) {
	tx := core.Transaction{
		Date:        m.entry.date,
		Amount:      m.entry.amount,
		Category:    m.entry.category,
		Description: description,
	}
	m.input.Blur()
	m.switchView(viewMenu)

	if err := m.ledger.Append(tx); err != nil {
		m.logger.Error("Failed to add transaction", logging.FieldError, err)
		m.setStatus(fmt.Sprintf("Failed to add transaction: %v", err), statusError, statusDuration)
		return
	}
	m.index.Add(tx)
	m.logger.Info("Added transaction",
		logging.FieldDate, core.FormatDate(tx.Date),
		logging.FieldAmount, tx.Amount.String(),
		logging.FieldCategory, tx.Category)
	m.setStatus("Entry added successfully", statusSuccess, statusDuration)
}

// refreshSuggestions updates description suggestions for the chosen category
func (m *Model) refreshSuggestions() {
	m.entry.suggestions = m.index.Suggest(m.entry.category, m.input.Value())
	m.input.SetSuggestions(m.entry.suggestions)
}

// renderEntry displays the entry form with the accepted values so far
func (m *Model) renderEntry() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", formatTitle("Add Transaction"))

	if m.entry.step > stepDate {
		fmt.Fprintf(&b, "Date         %s\n", core.FormatDate(m.entry.date))
	}
	if m.entry.step > stepAmount {
		fmt.Fprintf(&b, "Amount       %s\n", m.entry.amount.StringFixed(2))
	}
	if m.entry.step > stepCategory {
		fmt.Fprintf(&b, "Category     %s\n", m.entry.category)
	}

	labels := map[entryStep]string{
		stepDate:        "Date",
		stepAmount:      "Amount",
		stepCategory:    "Category",
		stepDescription: "Description",
	}
	fmt.Fprintf(&b, "%-12s %s %s\n", labels[m.entry.step], formatCursor(">"), m.input.View())

	if m.entry.step == stepDescription && len(m.entry.suggestions) > 0 {
		shown := m.entry.suggestions
		if len(shown) > maxSuggestionDisplay {
			shown = shown[:maxSuggestionDisplay]
		}
		for _, s := range shown {
			fmt.Fprintf(&b, "             %s\n", formatSuggestion(s))
		}
	}
	b.WriteString("\n")
	if msg := m.statusLine(); msg != "" {
		fmt.Fprintf(&b, "%s\n\n", msg)
	}
	hint := "[enter]next  [esc]cancel"
	if m.entry.step == stepDescription {
		hint = "[tab]complete  [enter]save  [esc]cancel"
	}
	b.WriteString(formatHint(hint))
	return b.String()
}
