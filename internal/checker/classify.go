package checker

import (
	"errors"

	"github.com/August26/ipintel-go/internal/intel"
	"github.com/August26/ipintel-go/internal/transport"
)

// Failure class names used in results and analytics.
const (
	KindTimeout       = "timeout"
	KindConnection    = "connection"
	KindIncomplete    = "incomplete"
	KindHTTPStatus    = "http_status"
	KindContentType   = "content_type"
	KindMalformedBody = "malformed_body"
	KindService       = "service"
)

// Classify names the failure class of a lookup error.
func Classify(err error) string {
	var (
		te  *transport.TimeoutError
		ce  *transport.ConnectionError
		ie  *transport.IncompleteResponseError
		hse *intel.HTTPStatusError
		cte *intel.UnexpectedContentTypeError
		mbe *intel.MalformedBodyError
		se  *intel.ServiceError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &te):
		return KindTimeout
	case errors.As(err, &ce):
		return KindConnection
	case errors.As(err, &ie):
		return KindIncomplete
	case errors.As(err, &hse):
		return KindHTTPStatus
	case errors.As(err, &cte):
		return KindContentType
	case errors.As(err, &mbe):
		return KindMalformedBody
	case errors.As(err, &se):
		return KindService
	default:
		return "error"
	}
}

// IsTransportKind reports whether kind names a transport-level
// failure, i.e. the exchange never completed.
func IsTransportKind(kind string) bool {
	switch kind {
	case KindTimeout, KindConnection, KindIncomplete:
		return true
	}
	return false
}
