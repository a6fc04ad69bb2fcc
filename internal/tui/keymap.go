package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the mixer.
type KeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Increase key.Binding
	Decrease key.Binding
	Reset    key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings for the mixer.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next channel"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous channel"),
		),
		Increase: key.NewBinding(
			key.WithKeys("up", "k", "+"),
			key.WithHelp("↑", "increase"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("down", "j", "-"),
			key.WithHelp("↓", "decrease"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset channel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the short help bindings for the mixer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Increase, k.Decrease, k.Reset, k.Quit}
}

// FullHelp returns the full help bindings for the mixer.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.Increase, k.Decrease, k.Reset, k.Quit},
	}
}
