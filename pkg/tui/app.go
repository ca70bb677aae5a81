package tui

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hufspace/hufspace-cli/internal/cli"
	"github.com/hufspace/hufspace-cli/pkg/calculator"
	"github.com/hufspace/hufspace-cli/pkg/models"
)

type sessionState int

const (
	keypadView sessionState = iota
	alertView
)

// App is the terminal calculator
type App struct {
	state     sessionState
	calc      *calculator.Calculator
	keypad    *KeypadModel
	alert     *AlertModel
	help      help.Model
	keys      keyMap
	styles    styles
	width     int
	height    int
	statusMsg string
	copy      func(string) error
}

// NewApp creates the terminal calculator using the UI settings
func NewApp(settings models.UISettings) *App {
	s := newStyles(settings.AccentColor)
	calc := calculator.New()
	h := help.New()
	h.ShowAll = settings.ShowHelp

	return &App{
		state:  keypadView,
		calc:   calc,
		keypad: NewKeypadModel(calc, settings.DisplayWidth, s),
		alert:  NewAlert(s),
		help:   h,
		keys:   defaultKeyMap(),
		styles: s,
		copy:   clipboard.WriteAll,
	}
}

// Calculator exposes the calculator driven by the app
func (a *App) Calculator() *calculator.Calculator {
	return a.calc
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case StatusMsg:
		a.statusMsg = string(msg)
		return a, nil

	case tea.KeyMsg:
		// Global keybindings
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.state == alertView {
			return a, a.alert.Update(msg)
		}
		return a, a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		return nil
	case key.Matches(msg, a.keys.Copy):
		return a.copyDisplay()
	case key.Matches(msg, a.keys.Up):
		a.keypad.Move(-1, 0)
		return nil
	case key.Matches(msg, a.keys.Down):
		a.keypad.Move(1, 0)
		return nil
	case key.Matches(msg, a.keys.Left):
		a.keypad.Move(0, -1)
		return nil
	case key.Matches(msg, a.keys.Right):
		a.keypad.Move(0, 1)
		return nil
	case key.Matches(msg, a.keys.Press):
		return a.press(a.keypad.Selected())
	case key.Matches(msg, a.keys.Clear):
		return a.press(calculator.ClearKey())
	case key.Matches(msg, a.keys.Delete):
		return a.press(calculator.DeleteKey())
	}

	// Digits, the decimal point, operators and "=" map straight onto buttons.
	k, err := calculator.ParseKey(msg.String())
	if err != nil {
		return nil
	}
	return a.press(k)
}

func (a *App) press(k calculator.Key) tea.Cmd {
	a.statusMsg = ""
	err := a.keypad.Press(k)
	if errors.Is(err, calculator.ErrDivideByZero) {
		a.state = alertView
		a.alert.Show("Error", "Cannot divide by zero.", func() tea.Cmd {
			a.state = keypadView
			return nil
		})
		return nil
	}
	if err != nil {
		return showStatus(err.Error())
	}
	return nil
}

func (a *App) copyDisplay() tea.Cmd {
	display := a.calc.Display()
	copyFn := a.copy
	return func() tea.Msg {
		if err := copyFn(display); err != nil {
			return StatusMsg(fmt.Sprintf("✗ Failed to copy: %v", err))
		}
		return StatusMsg(fmt.Sprintf("✓ %s → clipboard", display))
	}
}

func (a *App) View() string {
	var content string
	switch a.state {
	case alertView:
		content = a.alert.View(lipgloss.Width(a.keypad.View()))
	default:
		content = a.keypad.View()
	}

	header := renderHeader(lipgloss.Width(content), "Calculator", a.styles)
	helpView := a.help.View(a.keys)
	content = lipgloss.JoinVertical(lipgloss.Left, header, content, helpView)

	// Add status bar if there's a message
	if a.statusMsg != "" {
		width := lipgloss.Width(content)
		statusBar := a.styles.Status.Render(cli.TruncateString(a.statusMsg, width))
		content = lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
	}

	if a.width > 0 && a.height > 0 {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

// StatusMsg sets the status bar text
type StatusMsg string

func showStatus(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg(msg)
	}
}
