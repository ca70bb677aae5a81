package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AlertModel is a modal notification that swallows input until dismissed
type AlertModel struct {
	active    bool
	title     string
	message   string
	onDismiss func() tea.Cmd
	styles    styles
}

// NewAlert creates a new alert model
func NewAlert(s styles) *AlertModel {
	return &AlertModel{styles: s}
}

// Show activates the alert
func (m *AlertModel) Show(title, message string, onDismiss func() tea.Cmd) {
	m.active = true
	m.title = title
	m.message = message
	m.onDismiss = onDismiss
}

// Active returns whether the alert is currently shown
func (m *AlertModel) Active() bool {
	return m.active
}

// Message returns the alert text
func (m *AlertModel) Message() string {
	return m.message
}

// Update handles key events for the alert. Any of enter, esc or space
// dismisses it; every other key is ignored.
func (m *AlertModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	switch msg.String() {
	case "enter", "esc", " ", "space":
		m.active = false
		if m.onDismiss != nil {
			return m.onDismiss()
		}
	}

	return nil
}

// View renders the alert dialog
func (m *AlertModel) View(width int) string {
	if !m.active {
		return ""
	}

	if width <= 0 {
		width = 32
	}
	contentWidth := width - 6 // border and padding

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(contentWidth).
		Align(lipgloss.Center).
		Render(m.styles.AlertHeader.Render(m.title)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(contentWidth).
		Align(lipgloss.Center).
		Render(m.styles.AlertMessage.Render(m.message)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(contentWidth).
		Align(lipgloss.Center).
		Render(m.styles.Hint.Render("press enter to continue")))

	return m.styles.AlertBorder.Width(width).Render(b.String())
}
