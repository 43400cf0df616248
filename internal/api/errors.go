// Package api implements the retrying HTTP client for the remote chat API.
package api

import "fmt"

// ErrorKind classifies API client failures.
type ErrorKind int

const (
	// KindTransportFailure is a connect error or timeout. Retried.
	KindTransportFailure ErrorKind = iota
	// KindHTTPStatusFailure is a non-success HTTP status. Retried like a
	// transport failure.
	KindHTTPStatusFailure
	// KindMalformedResponse is a success status whose body is valid JSON but
	// is missing the expected "result" field. Never retried.
	KindMalformedResponse
	// KindProtocolError is an unparseable response body. Never retried.
	KindProtocolError
	// KindUnreachable means the retry budget was exhausted without a usable
	// response.
	KindUnreachable
)

// String returns the kind name for logging.
func (k ErrorKind) String() string {
	switch k {
	case KindTransportFailure:
		return "transport_failure"
	case KindHTTPStatusFailure:
		return "http_status_failure"
	case KindMalformedResponse:
		return "malformed_response"
	case KindProtocolError:
		return "protocol_error"
	case KindUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// Error is the normalized failure returned by the client.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error // underlying cause, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether another attempt may succeed.
func (e *Error) Retryable() bool {
	return e.Kind == KindTransportFailure || e.Kind == KindHTTPStatusFailure
}

// transportErr wraps a low-level network failure.
func transportErr(err error) *Error {
	return &Error{Kind: KindTransportFailure, Err: err}
}

// statusErr wraps a non-success HTTP status.
func statusErr(code int) *Error {
	return &Error{Kind: KindHTTPStatusFailure, Message: fmt.Sprintf("unexpected status %d", code)}
}
