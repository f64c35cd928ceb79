package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	roll  key.Binding
	reset key.Binding
	seen  key.Binding
	open  key.Binding
	back  key.Binding
	retry key.Binding
	quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		roll:  key.NewBinding(key.WithKeys("r", " "), key.WithHelp("r/space", "roll")),
		reset: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset")),
		seen:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "seen list")),
		open:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in browser")),
		back:  key.NewBinding(key.WithKeys("esc", "s"), key.WithHelp("esc", "back")),
		retry: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.roll, k.reset, k.seen, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.roll, k.reset},
		{k.seen, k.open, k.back},
		{k.quit},
	}
}
