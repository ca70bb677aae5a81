package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const headerLogo = `▖▖▖▖▄▖▄▖
▙▌▌▌▙▖▚ 
▌▌▙▌▌ ▄▌`

// renderHeader draws the title on the left and the logo on the right, with
// the title aligned to the logo's last row.
func renderHeader(width int, title string, s styles) string {
	logo := s.Header.Render(headerLogo)
	logoWidth := lipgloss.Width(logo)

	if title == "" || width < logoWidth+lipgloss.Width(title)+1 {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(logo)
	}

	rows := strings.Count(headerLogo, "\n")
	titleRendered := s.Header.Render(strings.Repeat("\n", rows) + title)
	gap := width - lipgloss.Width(titleRendered) - logoWidth

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		strings.Repeat(" ", gap),
		logo,
	)
}
