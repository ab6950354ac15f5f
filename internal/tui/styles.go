package tui

import "github.com/charmbracelet/lipgloss"

// Color definitions for the TUI
var (
	// Status message colors
	successColor = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Green
	errorColor   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // Red
	infoColor    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // Blue

	// UI element colors
	titleColor      = lipgloss.NewStyle().Bold(true)
	cursorColor     = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true) // Bright magenta
	suggestionColor = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))            // Cyan
	dimmedColor     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))             // Dark grey
)

// formatStatus returns a colored status message based on the status kind
func formatStatus(message string, kind statusKind) string {
	switch kind {
	case statusSuccess:
		return successColor.Render(message)
	case statusError:
		return errorColor.Render(message)
	case statusInfo:
		return infoColor.Render(message)
	default:
		return message
	}
}

// formatTitle returns a bold screen title
func formatTitle(title string) string {
	return titleColor.Render("-- " + title + " --")
}

// formatCursor returns a colored cursor marker
func formatCursor(marker string) string {
	return cursorColor.Render(marker)
}

// formatSuggestion returns a colored suggestion entry
func formatSuggestion(text string) string {
	return suggestionColor.Render(text)
}

// formatHint returns dimmed key hints
func formatHint(text string) string {
	return dimmedColor.Render(text)
}
