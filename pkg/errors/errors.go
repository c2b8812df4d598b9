package errors

import "fmt"

// HTTPError is an error that carries the HTTP status it should be served
// with. Delivery layers map domain errors into these.
type HTTPError struct {
	Status  int
	Message string
}

// NewHTTPError creates a new HTTPError.
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPErrorf creates a new HTTPError with a formatted message.
func NewHTTPErrorf(status int, format string, arg ...any) *HTTPError {
	return &HTTPError{Status: status, Message: fmt.Sprintf(format, arg...)}
}
