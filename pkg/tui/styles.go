package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color constants
const (
	ColorActive   = "170" // Purple/magenta for active elements
	ColorInactive = "240" // Gray for inactive elements
	ColorNormal   = "245" // Light gray for normal text
	ColorDim      = "241" // Dimmer gray
	ColorWarning  = "214" // Orange/yellow for warnings
	ColorDanger   = "196" // Red for dangerous actions
	ColorWhite    = "255" // White
	ColorDark     = "235" // Dark for contrast
	ColorStatusBg = "62"  // Status bar background
	ColorStatusFg = "230" // Status bar text
)

// styles holds the keypad styles derived from the configured accent color
type styles struct {
	Header       lipgloss.Style
	Display      lipgloss.Style
	Pending      lipgloss.Style
	Button       lipgloss.Style
	Operator     lipgloss.Style
	ActiveOp     lipgloss.Style
	Selected     lipgloss.Style
	Frame        lipgloss.Style
	Status       lipgloss.Style
	AlertBorder  lipgloss.Style
	AlertHeader  lipgloss.Style
	AlertMessage lipgloss.Style
	Hint         lipgloss.Style
}

func newStyles(accent string) styles {
	if accent == "" {
		accent = ColorActive
	}
	button := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(lipgloss.Color(ColorNormal)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorInactive))

	return styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(accent)).
			Bold(true),
		Display: lipgloss.NewStyle().
			Align(lipgloss.Right).
			Bold(true).
			Foreground(lipgloss.Color(ColorWhite)).
			Background(lipgloss.Color(ColorDark)).
			Padding(0, 1),
		Pending: lipgloss.NewStyle().
			Align(lipgloss.Right).
			Foreground(lipgloss.Color(ColorDim)).
			Padding(0, 1),
		Button:   button,
		Operator: button.Foreground(lipgloss.Color(ColorWarning)),
		ActiveOp: button.
			Foreground(lipgloss.Color(ColorWarning)).
			BorderForeground(lipgloss.Color(ColorWarning)),
		Selected: button.
			Bold(true).
			Foreground(lipgloss.Color(accent)).
			BorderForeground(lipgloss.Color(accent)),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(accent)).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Background(lipgloss.Color(ColorStatusBg)).
			Foreground(lipgloss.Color(ColorStatusFg)).
			Padding(0, 1),
		AlertBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorDanger)).
			Padding(1, 2),
		AlertHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorDanger)),
		AlertMessage: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal)),
		Hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDim)),
	}
}
