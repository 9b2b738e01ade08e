package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

// Error is implemented by every failure an Invoker can produce, so a
// caller can match the whole class with one errors.As.
type Error interface {
	error
	transportError()
}

// ConnectionError reports a failure to establish or hold the channel:
// refusal, reset, DNS failure, TLS handshake failure.
type ConnectionError struct {
	Cause error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection failed: %v", e.Cause)
}

func (e *ConnectionError) Unwrap() error { return e.Cause }

func (e *ConnectionError) transportError() {}

// TimeoutError reports that the per-call timer fired before the
// response completed. The in-flight request was aborted.
type TimeoutError struct {
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timed out after %s", e.After)
}

func (e *TimeoutError) transportError() {}

// IncompleteResponseError reports that the stream ended before the
// body was fully delivered. The partial body is discarded.
type IncompleteResponseError struct{}

func (e *IncompleteResponseError) Error() string {
	return "response truncated before completion"
}

func (e *IncompleteResponseError) transportError() {}

// classify maps errors out of net/http onto the taxonomy above.
func classify(err error, timeout time.Duration) Error {
	var nerr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &TimeoutError{After: timeout}
	case errors.As(err, &nerr) && nerr.Timeout():
		return &TimeoutError{After: timeout}
	case errors.Is(err, io.ErrUnexpectedEOF):
		return &IncompleteResponseError{}
	default:
		return &ConnectionError{Cause: err}
	}
}
