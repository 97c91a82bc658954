package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Terminal key.Binding
	Chat     key.Binding
	Voice    key.Binding
	Theme    key.Binding
	Field    key.Binding
	Submit   key.Binding
	Close    key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Next:     key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→", "next")),
		Prev:     key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Select:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "flip/focus")),
		Terminal: key.NewBinding(key.WithKeys("t", "`"), key.WithHelp("t", "terminal")),
		Chat:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "chat")),
		Voice:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "voice")),
		Theme:    key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "theme")),
		Field:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "field")),
		Submit:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "transmit")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp and FullHelp satisfy help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Select, k.Terminal, k.Chat, k.Voice, k.Theme, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Up, k.Down, k.Select},
		{k.Terminal, k.Chat, k.Voice, k.Theme},
		{k.Field, k.Submit, k.Close, k.Quit},
	}
}
