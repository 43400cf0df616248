package tui

import "github.com/parley-dev/parley/internal/chat"

// ============================================================================
// Dispatch Messages
// ============================================================================

// DispatchDoneMsg carries the assistant entry appended by a completed
// dispatch (a real answer or a 🚫-prefixed error).
type DispatchDoneMsg struct {
	Reply chat.Message
}

// DispatchBlockedMsg signals that a dispatch was refused because the
// session is disconnected.
type DispatchBlockedMsg struct{}

// ============================================================================
// Probe Messages
// ============================================================================

// ProbeResultMsg carries the outcome of a connectivity probe.
type ProbeResultMsg struct {
	Connected bool
}

// ============================================================================
// Utility Messages
// ============================================================================

// CtrlCResetMsg clears the quit confirmation after its timeout.
type CtrlCResetMsg struct{}
