package chat

import (
	"testing"
	"time"
)

func TestNewSessionStartsDisconnected(t *testing.T) {
	s := NewSession()
	if s.Status() != StatusDisconnected {
		t.Errorf("initial status: got %v, want %v", s.Status(), StatusDisconnected)
	}
	if len(s.Messages()) != 0 {
		t.Errorf("initial transcript: got %d messages, want 0", len(s.Messages()))
	}
}

func TestSenderIDStableAndUnique(t *testing.T) {
	s := NewSession()
	id := s.SenderID()
	if id == "" {
		t.Fatal("SenderID is empty")
	}
	for i := 0; i < 10; i++ {
		if s.SenderID() != id {
			t.Fatal("SenderID changed between reads")
		}
	}

	other := NewSession()
	if other.SenderID() == id {
		t.Error("two sessions share a sender ID")
	}
}

func TestAppendPreservesOrderAndStampsTime(t *testing.T) {
	s := NewSession()
	s.now = func() time.Time {
		return time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC)
	}

	s.Append(RoleUser, "first")
	s.Append(RoleAssistant, "second")
	s.Append(RoleUser, "") // empty content is allowed at this layer

	msgs := s.Messages()
	if len(msgs) != 3 {
		t.Fatalf("transcript length: got %d, want 3", len(msgs))
	}
	wantContents := []string{"first", "second", ""}
	wantRoles := []Role{RoleUser, RoleAssistant, RoleUser}
	for i, msg := range msgs {
		if msg.Content != wantContents[i] {
			t.Errorf("message %d content: got %q, want %q", i, msg.Content, wantContents[i])
		}
		if msg.Role != wantRoles[i] {
			t.Errorf("message %d role: got %q, want %q", i, msg.Role, wantRoles[i])
		}
		if msg.Timestamp != "2026-08-25 10:30:00" {
			t.Errorf("message %d timestamp: got %q, want %q", i, msg.Timestamp, "2026-08-25 10:30:00")
		}
	}
}

func TestClearEmptiesTranscript(t *testing.T) {
	s := NewSession()
	for i := 0; i < 25; i++ {
		s.Append(RoleUser, "msg")
	}
	s.SetStatus(true)

	s.Clear()

	if got := len(s.Messages()); got != 0 {
		t.Errorf("transcript after Clear: got %d messages, want 0", got)
	}
	// Clear touches only the transcript.
	if s.Status() != StatusConnected {
		t.Error("Clear changed the connection status")
	}
}

func TestSetStatusOverwrites(t *testing.T) {
	s := NewSession()

	s.SetStatus(true)
	if s.Status() != StatusConnected {
		t.Fatalf("status: got %v, want %v", s.Status(), StatusConnected)
	}
	s.SetStatus(false)
	if s.Status() != StatusDisconnected {
		t.Fatalf("status: got %v, want %v", s.Status(), StatusDisconnected)
	}
	s.SetStatus(true)
	s.SetStatus(true)
	if s.Status() != StatusConnected {
		t.Fatalf("status: got %v, want %v", s.Status(), StatusConnected)
	}
}

func TestMessagesReturnsCopy(t *testing.T) {
	s := NewSession()
	s.Append(RoleUser, "original")

	msgs := s.Messages()
	msgs[0].Content = "mutated"

	if s.Messages()[0].Content != "original" {
		t.Error("mutating the returned slice changed the transcript")
	}
}

func TestStatusString(t *testing.T) {
	if got := StatusConnected.String(); got != "Connected" {
		t.Errorf("StatusConnected: got %q", got)
	}
	if got := StatusDisconnected.String(); got != "Disconnected" {
		t.Errorf("StatusDisconnected: got %q", got)
	}
}
