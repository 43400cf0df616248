// Package testutil provides test helper utilities for parley tests.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"
)

// MockAPI is a scripted stand-in for the remote chat API. It serves the
// two endpoints the client knows about: GET /test and GET /response.
// Fields may be adjusted between calls; access is serialized internally.
type MockAPI struct {
	// ProbeStatus is the HTTP status returned by /test. Defaults to 200.
	ProbeStatus int
	// FailSends answers this many initial /response calls with HTTP 500
	// before serving normally.
	FailSends int
	// Result is the value of the "result" field served by /response.
	Result string
	// RawBody, when non-empty, is served verbatim by /response instead of
	// the JSON envelope.
	RawBody string
	// OmitResult serves a well-formed JSON object without a "result" field.
	OmitResult bool
	// Hang makes /response sleep for this long before answering.
	Hang time.Duration

	mu         sync.Mutex
	server     *httptest.Server
	probeCalls int
	sendCalls  int
	lastQuery  url.Values
}

// NewMockAPI starts a mock API server that is shut down when the test ends.
func NewMockAPI(t *testing.T) *MockAPI {
	t.Helper()

	m := &MockAPI{ProbeStatus: http.StatusOK}
	mux := http.NewServeMux()
	mux.HandleFunc("/test", m.handleProbe)
	mux.HandleFunc("/response", m.handleSend)

	m.server = httptest.NewServer(mux)
	t.Cleanup(m.server.Close)
	return m
}

// URL returns the server's base URL.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// ProbeCalls returns how many times /test was hit.
func (m *MockAPI) ProbeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.probeCalls
}

// SendCalls returns how many times /response was hit.
func (m *MockAPI) SendCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sendCalls
}

// LastQuery returns the query parameters of the most recent /response call.
func (m *MockAPI) LastQuery() url.Values {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastQuery
}

func (m *MockAPI) handleProbe(w http.ResponseWriter, _ *http.Request) {
	m.mu.Lock()
	m.probeCalls++
	status := m.ProbeStatus
	m.mu.Unlock()

	w.WriteHeader(status)
}

func (m *MockAPI) handleSend(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.sendCalls++
	m.lastQuery = r.URL.Query()
	fail := m.sendCalls <= m.FailSends
	raw := m.RawBody
	omit := m.OmitResult
	result := m.Result
	hang := m.Hang
	m.mu.Unlock()

	if hang > 0 {
		time.Sleep(hang)
	}

	if fail {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case raw != "":
		fmt.Fprint(w, raw)
	case omit:
		fmt.Fprint(w, `{"status":"ok"}`)
	default:
		fmt.Fprintf(w, `{"result":%q}`, result)
	}
}

// UnreachableURL returns a base URL that refuses connections: the server
// behind it is closed before the URL is handed out.
func UnreachableURL(t *testing.T) string {
	t.Helper()

	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()
	return addr
}
