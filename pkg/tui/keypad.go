package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"

	"github.com/hufspace/hufspace-cli/pkg/calculator"
)

const (
	buttonWidth     = 5
	keypadColumns   = 4
	minDisplayWidth = 8
)

// KeypadModel renders the calculator and tracks the highlighted button
type KeypadModel struct {
	calc   *calculator.Calculator
	row    int
	col    int
	width  int
	styles styles
}

// NewKeypadModel creates a keypad around calc
func NewKeypadModel(calc *calculator.Calculator, displayWidth int, s styles) *KeypadModel {
	if displayWidth < minDisplayWidth {
		displayWidth = minDisplayWidth
	}
	return &KeypadModel{
		calc:   calc,
		row:    1,
		width:  displayWidth,
		styles: s,
	}
}

// Selected returns the highlighted button
func (m *KeypadModel) Selected() calculator.Key {
	return calculator.Keypad[m.row][m.col]
}

// Move shifts the cursor, clamping the column to the length of the new row
func (m *KeypadModel) Move(dRow, dCol int) {
	rows := calculator.Keypad
	m.row = clamp(m.row+dRow, 0, len(rows)-1)
	m.col = clamp(m.col+dCol, 0, len(rows[m.row])-1)
}

// Press applies a button press to the calculator
func (m *KeypadModel) Press(k calculator.Key) error {
	m.focus(k)
	return m.calc.Press(k)
}

// focus moves the cursor onto k so typed keys are reflected on the keypad
func (m *KeypadModel) focus(k calculator.Key) {
	for r, row := range calculator.Keypad {
		for c, candidate := range row {
			if candidate == k {
				m.row, m.col = r, c
				return
			}
		}
	}
}

// View renders the display, the pending operation and the button grid
func (m *KeypadModel) View() string {
	state := m.calc.Snapshot()

	// The display grows without bound, so long entries wrap instead of
	// being cut.
	display := wrap.String(state.Display, m.width)
	lines := strings.Split(display, "\n")
	for i, line := range lines {
		lines[i] = m.styles.Display.Width(m.width + 2).Render(line)
	}

	pending := " "
	if state.Operator != calculator.NoOperator && state.FirstOperand != nil {
		pending = calculator.FormatNumber(*state.FirstOperand) + " " + state.Operator.Label()
	}
	pendingLine := m.styles.Pending.Width(m.width + 2).Render(truncateLeft(pending, m.width))

	var rows []string
	for r, row := range calculator.Keypad {
		// Short rows stretch their buttons to the full keypad width.
		w := (buttonWidth+2)*keypadColumns/len(row) - 2
		var buttons []string
		for c, k := range row {
			buttons = append(buttons, m.buttonStyle(k, r, c, state).Width(w).Render(k.Label()))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	}

	body := lipgloss.JoinVertical(lipgloss.Right,
		pendingLine,
		strings.Join(lines, "\n"),
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
	return m.styles.Frame.Render(body)
}

func (m *KeypadModel) buttonStyle(k calculator.Key, r, c int, state calculator.State) lipgloss.Style {
	switch {
	case r == m.row && c == m.col:
		return m.styles.Selected
	case k.Kind == calculator.KeyOperator && k.Operator == state.Operator && state.ResetDisplay:
		return m.styles.ActiveOp
	case k.Kind == calculator.KeyOperator || k.Kind == calculator.KeyEquals:
		return m.styles.Operator
	default:
		return m.styles.Button
	}
}

func truncateLeft(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return "…" + string(r[len(r)-width+1:])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
