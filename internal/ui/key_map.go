package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	back    key.Binding
	play    key.Binding
	next    key.Binding
	prev    key.Binding
	volUp   key.Binding
	volDown key.Binding
	queue   key.Binding
	refresh key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open/play")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		play:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		next:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		prev:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous")),
		volUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "louder")),
		volDown: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "quieter")),
		queue:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to queue")),
		refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.enter, k.play, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.play, k.next, k.prev, k.queue},
		{k.volUp, k.volDown, k.refresh, k.quit},
	}
}
