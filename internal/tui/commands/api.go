// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/parley-dev/parley/internal/chat"
	"github.com/parley-dev/parley/internal/tui"
)

// ProbeCmd runs a connectivity probe and reports the outcome. The session's
// status is updated inside the command; the UI must not touch the session
// until the result message arrives.
func ProbeCmd(d *chat.Dispatcher, prober chat.Prober) tea.Cmd {
	return func() tea.Msg {
		connected := d.Probe(context.Background(), prober)
		return tui.ProbeResultMsg{Connected: connected}
	}
}

// DispatchCmd sends one user message through the dispatcher. Retries and
// timeouts are absorbed by the API client, so exactly one message comes
// back per dispatch.
func DispatchCmd(d *chat.Dispatcher, text string) tea.Cmd {
	return func() tea.Msg {
		reply, ok := d.Dispatch(context.Background(), text)
		if !ok {
			return tui.DispatchBlockedMsg{}
		}
		return tui.DispatchDoneMsg{Reply: reply}
	}
}
