package ui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sonatafm/podium/internal/models"
	"github.com/sonatafm/podium/internal/notify"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSectionLoaded MsgKind = iota
	MsgPlayerChanged
	MsgToast
	MsgLiveEvent
	MsgTick
)

// sectionPayload carries a loaded section listing or the fetch error.
type sectionPayload struct {
	section Section
	items   []list.Item
	err     error
}

// sectionLoadedMsg is the constructor for [MsgSectionLoaded]
func sectionLoadedMsg(section Section, items []list.Item, err error) Msg {
	return Msg{kind: MsgSectionLoaded, data: sectionPayload{section, items, err}}
}

// playerChangedMsg is the constructor for [MsgPlayerChanged]
func playerChangedMsg() Msg {
	return Msg{kind: MsgPlayerChanged}
}

// toastMsg is the constructor for [MsgToast]
func toastMsg(toast notify.Toast) Msg {
	return Msg{kind: MsgToast, data: toast}
}

// liveEventMsg is the constructor for [MsgLiveEvent]
func liveEventMsg(event models.LiveEvent) Msg {
	return Msg{kind: MsgLiveEvent, data: event}
}

// tickMsg is the constructor for [MsgTick]
func tickMsg() Msg {
	return Msg{kind: MsgTick}
}
