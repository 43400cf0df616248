// dispatch.go orchestrates one user message end to end: transcript append,
// API call, and the assistant (or error) entry that answers it.
package chat

import (
	"context"
	"errors"
	"time"

	"github.com/parley-dev/parley/internal/api"
	"github.com/parley-dev/parley/internal/log"
)

// errorGlyph prefixes assistant entries that carry an error instead of a
// real answer.
const errorGlyph = "🚫"

// Sender is the slice of the API client the dispatcher needs.
type Sender interface {
	SendMessage(ctx context.Context, message string, customerInfo map[string]any) (string, error)
}

// Prober tests connectivity to the API.
type Prober interface {
	ProbeConnection(ctx context.Context) bool
}

// Dispatcher runs the message dispatch flow against one session. Dispatches
// are strictly sequential; callers must not overlap them.
type Dispatcher struct {
	session *Session
	sender  Sender
	logger  *log.Logger // nil disables event logging
}

// NewDispatcher wires a session to an API client.
func NewDispatcher(session *Session, sender Sender, logger *log.Logger) *Dispatcher {
	return &Dispatcher{
		session: session,
		sender:  sender,
		logger:  logger,
	}
}

// Session returns the session this dispatcher mutates.
func (d *Dispatcher) Session() *Session {
	return d.session
}

// Dispatch sends text through the API and records both sides of the
// exchange in the transcript. When the session is disconnected nothing is
// sent or recorded and ok is false. Send failures are not fatal: they
// surface as a 🚫-prefixed assistant entry and leave the connection status
// untouched, since only explicit probes mutate it.
func (d *Dispatcher) Dispatch(ctx context.Context, text string) (reply Message, ok bool) {
	if d.session.Status() != StatusConnected {
		return Message{}, false
	}

	d.session.Append(RoleUser, text)
	d.logEvent(log.LogEvent{Event: log.EventMessageSent, Chars: len(text)})

	start := time.Now()
	answer, err := d.sender.SendMessage(ctx, text, d.session.CustomerInfo)
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		d.logEvent(log.LogEvent{
			Event:      log.EventSendFailed,
			ErrorKind:  errKind(err),
			Error:      err.Error(),
			DurationMs: elapsed,
		})
		reply = d.session.Append(RoleAssistant, errorGlyph+" "+err.Error())
		return reply, true
	}

	d.logEvent(log.LogEvent{
		Event:      log.EventResponseReceived,
		Chars:      len(answer),
		DurationMs: elapsed,
	})
	reply = d.session.Append(RoleAssistant, answer)
	return reply, true
}

// Probe runs a connectivity check and records the outcome as the session's
// new status.
func (d *Dispatcher) Probe(ctx context.Context, prober Prober) bool {
	d.logEvent(log.LogEvent{Event: log.EventProbeStarted})

	start := time.Now()
	connected := prober.ProbeConnection(ctx)
	d.session.SetStatus(connected)

	d.logEvent(log.LogEvent{
		Event:      log.EventProbeResult,
		Connected:  connected,
		DurationMs: time.Since(start).Milliseconds(),
	})
	return connected
}

// Clear empties the transcript and records the event.
func (d *Dispatcher) Clear() {
	d.session.Clear()
	d.logEvent(log.LogEvent{Event: log.EventSessionCleared})
}

func (d *Dispatcher) logEvent(ev log.LogEvent) {
	if d.logger == nil {
		return
	}
	ev.SessionID = d.session.SenderID()
	_ = d.logger.Append(ev)
}

// errKind extracts the api error kind name for logging.
func errKind(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind.String()
	}
	return "unknown"
}
