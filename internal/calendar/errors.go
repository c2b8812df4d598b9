package calendar

import (
	"errors"
	"fmt"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrNewAccountNotFound = errors.New("new account not found")
	ErrUnauthorized       = errors.New("unauthorized")
)

// ValidationError marks a request that is malformed at the domain level,
// such as an undecodable composite ID or an inverted date range.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// UpstreamError carries a provider failure to the transport layer with the
// upstream HTTP status preserved.
type UpstreamError struct {
	Status  int
	Message string
	// SourceDeleted marks a cross-calendar move that failed after the event
	// had already been removed from the source calendar.
	SourceDeleted bool
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error (%d): %s", e.Status, e.Message)
}
