package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Press  key.Binding
	Equals key.Binding
	Clear  key.Binding
	Delete key.Binding
	Copy   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Press:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "press button")),
		Equals: key.NewBinding(key.WithKeys("="), key.WithHelp("=", "equals")),
		Clear:  key.NewBinding(key.WithKeys("c", "esc"), key.WithHelp("c/esc", "clear")),
		Delete: key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("⌫", "delete")),
		Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Press, k.Clear, k.Copy, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Press, k.Equals, k.Clear, k.Delete},
		{k.Copy, k.Help, k.Quit},
	}
}
