package intel

import (
	"errors"
	"fmt"
)

// ErrEmptyIP is returned when a query is attempted with an empty IP.
// No request is issued and the client state is left untouched.
var ErrEmptyIP = errors.New("intel: ip must not be empty")

// HTTPStatusError reports a completed exchange with a non-200 status.
type HTTPStatusError struct {
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected http status %d", e.StatusCode)
}

// UnexpectedContentTypeError reports a 200 response whose content type
// is not application/json.
type UnexpectedContentTypeError struct {
	Received string
}

func (e *UnexpectedContentTypeError) Error() string {
	return fmt.Sprintf("unexpected content type %q", e.Received)
}

// MalformedBodyError reports a body that does not decode as JSON.
type MalformedBodyError struct {
	Cause error
}

func (e *MalformedBodyError) Error() string {
	return fmt.Sprintf("malformed response body: %v", e.Cause)
}

func (e *MalformedBodyError) Unwrap() error { return e.Cause }

// ServiceError reports a well-formed response whose status field is
// missing or not "success". RawBody carries the body verbatim; the
// service encodes its error detail as JSON or plain text.
type ServiceError struct {
	RawBody string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service reported failure: %s", e.RawBody)
}
