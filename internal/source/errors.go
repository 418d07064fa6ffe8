package source

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Sentinel failures an adapter can report to the fallback chain.
var (
	ErrTimeout     = errors.New("source: request timed out")
	ErrRateLimited = errors.New("source: rate limited")
)

// HTTPError is a non-2xx response from a source's entry point.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("source: http status %d", e.Status)
}

// ParseError is a response body the adapter could not make sense of.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("source: parse %s failed", e.Op)
	}
	return fmt.Sprintf("source: parse %s failed: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StatusError maps a response status code to a typed failure. 2xx maps to nil.
func StatusError(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return &HTTPError{Status: code}
	}
}

// TransportError maps a transport-level failure to a typed failure.
// Deadline and net timeouts collapse into ErrTimeout.
func TransportError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	return err
}
