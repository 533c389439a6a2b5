package providers

import (
	"errors"
	"fmt"
	"net/http"
)

// RequestError captures a non-success response from an upstream endpoint.
type RequestError struct {
	Provider   string
	Endpoint   string
	StatusCode int
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %s returned status %d", e.Provider, e.Endpoint, e.StatusCode)
}

// AsRequestError attempts to unwrap an error into a RequestError.
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}

// Retryable reports whether a failed call is worth repeating: network errors
// and 5xx/429 responses are; other upstream statuses are definitive.
func Retryable(err error) bool {
	if reqErr, ok := AsRequestError(err); ok {
		return reqErr.StatusCode >= 500 || reqErr.StatusCode == http.StatusTooManyRequests
	}
	return true
}
