package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/parley-dev/parley/internal/testutil"
)

// testClient builds a Client against base with a counting sleep so tests
// never pause for real.
func testClient(base string) (*Client, *int) {
	c := NewClient("sender-1", Settings{BaseURL: base})
	sleeps := new(int)
	c.retry.sleep = func(time.Duration) { *sleeps++ }
	return c, sleeps
}

func kindOf(t *testing.T, err error) ErrorKind {
	t.Helper()
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error %v is not an *api.Error", err)
	}
	return apiErr.Kind
}

func TestProbeConnectionSuccess(t *testing.T) {
	mock := testutil.NewMockAPI(t)
	c, sleeps := testClient(mock.URL())

	if !c.ProbeConnection(context.Background()) {
		t.Fatal("ProbeConnection returned false against a healthy API")
	}
	if got := mock.ProbeCalls(); got != 1 {
		t.Errorf("probe attempts: got %d, want 1", got)
	}
	if *sleeps != 0 {
		t.Errorf("delays: got %d, want 0", *sleeps)
	}
}

func TestProbeConnectionNonSuccessStatusNotRetried(t *testing.T) {
	mock := testutil.NewMockAPI(t)
	mock.ProbeStatus = 503
	c, _ := testClient(mock.URL())

	if c.ProbeConnection(context.Background()) {
		t.Fatal("ProbeConnection returned true for a 503 response")
	}
	// A non-200 response decides the result; it is not a transport failure.
	if got := mock.ProbeCalls(); got != 1 {
		t.Errorf("probe attempts: got %d, want 1", got)
	}
}

func TestProbeConnectionRetriesTransportFailure(t *testing.T) {
	c, sleeps := testClient(testutil.UnreachableURL(t))

	if c.ProbeConnection(context.Background()) {
		t.Fatal("ProbeConnection returned true against a dead endpoint")
	}
	// 3 attempts means 2 inter-attempt delays.
	if *sleeps != 2 {
		t.Errorf("delays: got %d, want 2", *sleeps)
	}
}

func TestSendMessageSuccess(t *testing.T) {
	mock := testutil.NewMockAPI(t)
	mock.Result = "hi there"
	c, _ := testClient(mock.URL())

	got, err := c.SendMessage(context.Background(), "hello", nil)
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if got != "hi there" {
		t.Errorf("result: got %q, want %q", got, "hi there")
	}

	q := mock.LastQuery()
	if q.Get("query") != "hello" {
		t.Errorf("query param: got %q, want %q", q.Get("query"), "hello")
	}
	if q.Get("senderId") != "sender-1" {
		t.Errorf("senderId param: got %q, want %q", q.Get("senderId"), "sender-1")
	}
	if q.Get("customer_info") != "{}" {
		t.Errorf("customer_info param: got %q, want %q", q.Get("customer_info"), "{}")
	}
}

func TestSendMessageSerializesCustomerInfo(t *testing.T) {
	mock := testutil.NewMockAPI(t)
	mock.Result = "ok"
	c, _ := testClient(mock.URL())

	info := map[string]any{"plan": "pro", "seats": 3}
	if _, err := c.SendMessage(context.Background(), "hello", info); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	// encoding/json sorts map keys, so the blob is stable.
	want := `{"plan":"pro","seats":3}`
	if got := mock.LastQuery().Get("customer_info"); got != want {
		t.Errorf("customer_info param: got %q, want %q", got, want)
	}
}

func TestSendMessageRetriesStatusFailures(t *testing.T) {
	mock := testutil.NewMockAPI(t)
	mock.Result = "recovered"
	mock.FailSends = 2
	c, sleeps := testClient(mock.URL())

	got, err := c.SendMessage(context.Background(), "hello", nil)
	if err != nil {
		t.Fatalf("SendMessage failed after transient errors: %v", err)
	}
	if got != "recovered" {
		t.Errorf("result: got %q, want %q", got, "recovered")
	}
	if calls := mock.SendCalls(); calls != 3 {
		t.Errorf("send attempts: got %d, want 3", calls)
	}
	if *sleeps != 2 {
		t.Errorf("delays: got %d, want 2", *sleeps)
	}
}

func TestSendMessageExhaustedBudgetIsUnreachable(t *testing.T) {
	mock := testutil.NewMockAPI(t)
	mock.FailSends = 10
	c, _ := testClient(mock.URL())

	_, err := c.SendMessage(context.Background(), "hello", nil)
	if kind := kindOf(t, err); kind != KindUnreachable {
		t.Fatalf("error kind: got %v, want %v", kind, KindUnreachable)
	}
	if err.Error() != DefaultErrorMessage {
		t.Errorf("error message: got %q, want %q", err.Error(), DefaultErrorMessage)
	}
	if calls := mock.SendCalls(); calls != 3 {
		t.Errorf("send attempts: got %d, want 3", calls)
	}
}

func TestSendMessageTransportFailureIsUnreachable(t *testing.T) {
	c, sleeps := testClient(testutil.UnreachableURL(t))

	_, err := c.SendMessage(context.Background(), "hello", nil)
	if kind := kindOf(t, err); kind != KindUnreachable {
		t.Fatalf("error kind: got %v, want %v", kind, KindUnreachable)
	}
	if *sleeps != 2 {
		t.Errorf("delays: got %d, want 2", *sleeps)
	}
}

func TestSendMessageMissingResultNotRetried(t *testing.T) {
	mock := testutil.NewMockAPI(t)
	mock.OmitResult = true
	c, _ := testClient(mock.URL())

	_, err := c.SendMessage(context.Background(), "hello", nil)
	if kind := kindOf(t, err); kind != KindMalformedResponse {
		t.Fatalf("error kind: got %v, want %v", kind, KindMalformedResponse)
	}
	if calls := mock.SendCalls(); calls != 1 {
		t.Errorf("send attempts: got %d, want 1", calls)
	}
}

func TestSendMessageInvalidJSONNotRetried(t *testing.T) {
	mock := testutil.NewMockAPI(t)
	mock.RawBody = "<html>tunnel interstitial</html>"
	c, _ := testClient(mock.URL())

	_, err := c.SendMessage(context.Background(), "hello", nil)
	if kind := kindOf(t, err); kind != KindProtocolError {
		t.Fatalf("error kind: got %v, want %v", kind, KindProtocolError)
	}
	if calls := mock.SendCalls(); calls != 1 {
		t.Errorf("send attempts: got %d, want 1", calls)
	}
}

func TestSendMessageTimeoutRetriedAsTransportFailure(t *testing.T) {
	mock := testutil.NewMockAPI(t)
	mock.Hang = 200 * time.Millisecond
	c := NewClient("sender-1", Settings{BaseURL: mock.URL(), SendTimeout: 20 * time.Millisecond})
	c.retry.sleep = func(time.Duration) {}

	_, err := c.SendMessage(context.Background(), "hello", nil)
	if kind := kindOf(t, err); kind != KindUnreachable {
		t.Fatalf("error kind: got %v, want %v", kind, KindUnreachable)
	}
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	c := NewClient("s", Settings{BaseURL: "http://example.test/"})
	if c.BaseURL() != "http://example.test" {
		t.Errorf("BaseURL: got %q, want %q", c.BaseURL(), "http://example.test")
	}
}
