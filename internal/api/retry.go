// retry.go implements the bounded retry combinator shared by probe and send.
package api

import (
	"errors"
	"time"
)

const (
	// DefaultMaxAttempts is the fixed attempt ceiling for one call.
	DefaultMaxAttempts = 3
	// DefaultRetryDelay is the fixed pause between attempts.
	DefaultRetryDelay = time.Second
)

// Policy describes a bounded retry loop: up to MaxAttempts sequential
// attempts with a fixed Delay between them. Attempts never overlap.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration

	// sleep is a seam for tests; nil means time.Sleep.
	sleep func(time.Duration)
}

// withDefaults fills in zero values.
func (p Policy) withDefaults() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.Delay <= 0 {
		p.Delay = DefaultRetryDelay
	}
	if p.sleep == nil {
		p.sleep = time.Sleep
	}
	return p
}

// Do runs fn up to MaxAttempts times. A nil return stops the loop
// immediately, as does any error that is not a retryable *Error. Between
// attempts Do sleeps for Delay. When the budget is exhausted the last
// error is returned.
func (p Policy) Do(fn func(attempt int) error) error {
	p = p.withDefaults()

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if attempt > 1 {
			p.sleep(p.Delay)
		}

		err := fn(attempt)
		if err == nil {
			return nil
		}
		lastErr = err

		var apiErr *Error
		if !errors.As(err, &apiErr) || !apiErr.Retryable() {
			return err
		}
	}

	return lastErr
}
