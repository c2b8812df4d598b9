package provider

import (
	"errors"
	"fmt"
)

// ErrWriteNotSupported marks a provider without a write path. Microsoft
// writes are intentionally out of scope.
var ErrWriteNotSupported = errors.New("provider does not support event writes")

// CallError is a tagged upstream failure: the provider answered with a
// non-2xx status. Message is the human-readable text extracted from the
// provider's error envelope (or a generic fallback), never the raw payload.
type CallError struct {
	Status  int
	Message string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("upstream error %d: %s", e.Status, e.Message)
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not an
// upstream CallError (e.g. a transport failure).
func StatusOf(err error) int {
	var callErr *CallError
	if errors.As(err, &callErr) {
		return callErr.Status
	}
	return 0
}

// MessageOf returns the extracted upstream message, or err.Error() for
// non-upstream failures.
func MessageOf(err error) string {
	var callErr *CallError
	if errors.As(err, &callErr) {
		return callErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
