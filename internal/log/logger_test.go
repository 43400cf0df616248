package log

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAppendAndReadAll(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	events := []LogEvent{
		{Event: EventProbeStarted, SessionID: "s1", URL: "http://api.test"},
		{Event: EventProbeResult, SessionID: "s1", Connected: true, DurationMs: 42},
		{Event: EventSendFailed, SessionID: "s1", ErrorKind: "unreachable", Error: "An error occurred while communicating with the API"},
	}
	for _, ev := range events {
		if err := logger.Append(ev); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("events: got %d, want %d", len(got), len(events))
	}
	for i, ev := range got {
		if ev.Event != events[i].Event {
			t.Errorf("event %d: got %q, want %q", i, ev.Event, events[i].Event)
		}
		if ev.Time.IsZero() {
			t.Errorf("event %d: time was not stamped", i)
		}
	}
	if !got[1].Connected {
		t.Error("probe_result event lost its connected flag")
	}
}

func TestReadAllMissingFile(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	events, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("events: got %d, want 0", len(events))
	}
}

func TestAppendDoesNotTruncate(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	if err := logger.Append(LogEvent{Event: EventMessageSent}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// A second Logger on the same directory appends to the existing file.
	logger2, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	if err := logger2.Append(LogEvent{Event: EventResponseReceived}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ".parley", "log.jsonl"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("log file is empty")
	}

	events, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("events: got %d, want 2", len(events))
	}
}
