package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/memegacha/internal/tasks"
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
	MsgBootProgress MsgKind = iota
	MsgBootComplete
	MsgBrowserOpened
)

// bootProgressMsg is the constructor for [MsgBootProgress]
func bootProgressMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgBootProgress, data: update}
}

// bootCompleteMsg is the constructor for [MsgBootComplete]
func bootCompleteMsg(err error) Msg {
	return Msg{kind: MsgBootComplete, data: err}
}

// browserOpenedMsg is the constructor for [MsgBrowserOpened]
func browserOpenedMsg(url string, err error) Msg {
	return Msg{
		kind: MsgBrowserOpened,
		data: struct {
			url string
			err error
		}{url, err},
	}
}

func (m Msg) err() error {
	switch m.kind {
	case MsgBootComplete:
		err, _ := m.data.(error)
		return err
	case MsgBrowserOpened:
		return m.data.(struct {
			url string
			err error
		}).err
	default:
		return nil
	}
}
