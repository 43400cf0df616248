// client.go provides the GET-based client for the remote dev chat API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultProbeTimeout bounds one /test attempt.
	DefaultProbeTimeout = 5 * time.Second
	// DefaultSendTimeout bounds one /response attempt. Longer than the
	// probe timeout because the API waits on a model-generated answer.
	DefaultSendTimeout = 30 * time.Second

	// DefaultErrorMessage is surfaced when the retry budget runs out.
	DefaultErrorMessage = "An error occurred while communicating with the API"
)

// Settings configures a Client. Zero values fall back to the defaults above.
type Settings struct {
	BaseURL      string
	ProbeTimeout time.Duration
	SendTimeout  time.Duration
	MaxAttempts  int
	RetryDelay   time.Duration
}

// Client talks to the remote chat API. Every request carries the sender ID
// it was constructed with, so the server can correlate one session's
// requests. Safe for sequential use only; callers must not issue
// overlapping calls on one Client.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	senderID     string
	probeTimeout time.Duration
	sendTimeout  time.Duration
	retry        Policy
}

// NewClient creates a Client for the given sender identity and settings.
func NewClient(senderID string, s Settings) *Client {
	probeTimeout := s.ProbeTimeout
	if probeTimeout <= 0 {
		probeTimeout = DefaultProbeTimeout
	}
	sendTimeout := s.SendTimeout
	if sendTimeout <= 0 {
		sendTimeout = DefaultSendTimeout
	}

	return &Client{
		httpClient:   &http.Client{},
		baseURL:      strings.TrimRight(s.BaseURL, "/"),
		senderID:     senderID,
		probeTimeout: probeTimeout,
		sendTimeout:  sendTimeout,
		retry: Policy{
			MaxAttempts: s.MaxAttempts,
			Delay:       s.RetryDelay,
		},
	}
}

// BaseURL returns the configured endpoint base.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SenderID returns the session identity attached to every request.
func (c *Client) SenderID() string {
	return c.senderID
}

// ProbeConnection issues a lightweight GET against {base}/test and reports
// whether the API answered with HTTP 200. Transport failures are retried up
// to the attempt ceiling; any HTTP response, success or not, decides the
// result immediately without further attempts.
func (c *Client) ProbeConnection(ctx context.Context) bool {
	var ok bool
	err := c.retry.Do(func(int) error {
		attemptCtx, cancel := context.WithTimeout(ctx, c.probeTimeout)
		defer cancel()

		req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, c.baseURL+"/test", nil)
		if err != nil {
			return &Error{Kind: KindProtocolError, Message: "building probe request", Err: err}
		}

		res, err := c.httpClient.Do(req)
		if err != nil {
			return transportErr(err)
		}
		defer res.Body.Close()
		_, _ = io.Copy(io.Discard, res.Body)

		ok = res.StatusCode == http.StatusOK
		return nil
	})

	return err == nil && ok
}

// SendMessage sends one user message to {base}/response and returns the text
// of the API's "result" field. Transport failures and non-success statuses
// are retried up to the attempt ceiling; once the budget is spent the error
// is KindUnreachable with a generic message. A well-formed 200 response
// missing the "result" field fails immediately with KindMalformedResponse,
// and an unparseable body with KindProtocolError.
func (c *Client) SendMessage(ctx context.Context, message string, customerInfo map[string]any) (string, error) {
	info, err := encodeCustomerInfo(customerInfo)
	if err != nil {
		return "", &Error{Kind: KindProtocolError, Message: "encoding customer info", Err: err}
	}

	var result string
	err = c.retry.Do(func(int) error {
		attemptCtx, cancel := context.WithTimeout(ctx, c.sendTimeout)
		defer cancel()

		params := url.Values{}
		params.Set("query", message)
		params.Set("senderId", c.senderID)
		params.Set("customer_info", info)
		endpoint := fmt.Sprintf("%s/response?%s", c.baseURL, params.Encode())

		req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, endpoint, nil)
		if err != nil {
			return &Error{Kind: KindProtocolError, Message: "building send request", Err: err}
		}

		res, err := c.httpClient.Do(req)
		if err != nil {
			return transportErr(err)
		}
		defer res.Body.Close()

		body, err := io.ReadAll(res.Body)
		if err != nil {
			return transportErr(err)
		}

		if res.StatusCode != http.StatusOK {
			return statusErr(res.StatusCode)
		}

		var payload struct {
			Result *string `json:"result"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return &Error{Kind: KindProtocolError, Message: "invalid JSON in API response", Err: err}
		}
		if payload.Result == nil {
			return &Error{Kind: KindMalformedResponse, Message: "Invalid response format from API"}
		}

		result = *payload.Result
		return nil
	})
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Retryable() {
			return "", &Error{Kind: KindUnreachable, Message: DefaultErrorMessage, Err: apiErr}
		}
		return "", err
	}

	return result, nil
}

// encodeCustomerInfo serializes the passthrough metadata as a compact JSON
// object. A nil or empty map encodes as "{}" to match the API's loose
// contract; key order is stable because encoding/json sorts map keys.
func encodeCustomerInfo(info map[string]any) (string, error) {
	if len(info) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(info)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
