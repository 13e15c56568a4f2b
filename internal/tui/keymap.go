package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the dashboard key bindings.
type KeyMap struct {
	Quit      key.Binding
	Reset     key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	PageLeft  key.Binding
	PageRight key.Binding
	Delete    key.Binding
	Help      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "shift+tab", "k"),
			key.WithHelp("↑", "prev field"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "tab", "j"),
			key.WithHelp("↓", "next field"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "-"),
			key.WithHelp("←", "decrease"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "+"),
			key.WithHelp("→", "increase"),
		),
		PageLeft: key.NewBinding(
			key.WithKeys("shift+left", "pgdown"),
			key.WithHelp("shift+←", "-10"),
		),
		PageRight: key.NewBinding(
			key.WithKeys("shift+right", "pgup"),
			key.WithHelp("shift+→", "+10"),
		),
		Delete: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "delete digit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Reset, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Left, k.Right, k.PageLeft, k.PageRight},
		{k.Delete, k.Reset},
		{k.Help, k.Quit},
	}
}
