// Package chat owns the client-side chat session: the transcript, the
// connection status, and the per-session sender identity.
package chat

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies who authored a transcript message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Status is the session's connectivity state. It reflects only the most
// recent probe outcome, never a running aggregate.
type Status int

const (
	StatusDisconnected Status = iota
	StatusConnected
)

// String returns the status label shown in the UI.
func (s Status) String() string {
	if s == StatusConnected {
		return "Connected"
	}
	return "Disconnected"
}

// TimestampFormat is the wall-clock form stamped on every message.
const TimestampFormat = "2006-01-02 15:04:05"

// Message is one immutable transcript entry.
type Message struct {
	Role      Role
	Content   string
	Timestamp string
}

// Session holds one chat session's state. It is the sole mutator of its
// transcript and status. Access is single-threaded per session; callers
// must not share one Session across concurrent dispatches.
type Session struct {
	senderID string
	messages []Message
	status   Status

	// CustomerInfo is forwarded unmodified with every send.
	CustomerInfo map[string]any

	now func() time.Time
}

// NewSession creates a Session with a fresh random sender identity and an
// empty transcript. The initial status is Disconnected.
func NewSession() *Session {
	return &Session{
		senderID: uuid.NewString(),
		now:      time.Now,
	}
}

// SenderID returns the session identity token. Stable for the session's
// lifetime.
func (s *Session) SenderID() string {
	return s.senderID
}

// Append stamps content with the current wall-clock time and adds it to the
// transcript. Content is not validated here; input rules belong to the
// caller.
func (s *Session) Append(role Role, content string) Message {
	msg := Message{
		Role:      role,
		Content:   content,
		Timestamp: s.now().Format(TimestampFormat),
	}
	s.messages = append(s.messages, msg)
	return msg
}

// Clear resets the transcript to empty. Status and identity are untouched.
func (s *Session) Clear() {
	s.messages = nil
}

// SetStatus overwrites the connection status unconditionally.
func (s *Session) SetStatus(connected bool) {
	if connected {
		s.status = StatusConnected
	} else {
		s.status = StatusDisconnected
	}
}

// Status returns the current connection status.
func (s *Session) Status() Status {
	return s.status
}

// Messages returns a copy of the transcript in insertion order.
func (s *Session) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}
