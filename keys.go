package main

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the landing page bindings. It implements help.KeyMap.
type keyMap struct {
	Action   key.Binding
	Network  key.Binding
	Settings key.Binding
	Log      key.Binding
	Scroll   key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Action: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "connect"),
		),
		Network: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "switch network"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s", "S"),
			key.WithHelp("s", "settings"),
		),
		Log: key.NewBinding(
			key.WithKeys("l", "L"),
			key.WithHelp("l", "log"),
		),
		Scroll: key.NewBinding(
			key.WithKeys("pgup", "pgdown"),
			key.WithHelp("pgup/pgdn", "scroll log"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Action, k.Network, k.Settings, k.Log, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Action, k.Network},
		{k.Settings, k.Log, k.Scroll, k.Quit},
	}
}
