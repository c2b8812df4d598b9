package http

import (
	"errors"

	"yeargrid/internal/calendar"
	"yeargrid/internal/provider"
	pkgErrors "yeargrid/pkg/errors"
)

// mapError translates domain errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	var ve *calendar.ValidationError
	if errors.As(err, &ve) {
		return pkgErrors.NewHTTPError(400, ve.Message)
	}

	var ue *calendar.UpstreamError
	if errors.As(err, &ue) {
		status := ue.Status
		if status < 400 {
			status = 502
		}
		return pkgErrors.NewHTTPError(status, ue.Message)
	}

	switch {
	case errors.Is(err, calendar.ErrAccountNotFound):
		return pkgErrors.NewHTTPError(404, "Account not found")
	case errors.Is(err, calendar.ErrNewAccountNotFound):
		return pkgErrors.NewHTTPError(404, "New account not found")
	case errors.Is(err, provider.ErrWriteNotSupported):
		return pkgErrors.NewHTTPError(501, "This provider does not support event writes")
	default:
		return pkgErrors.NewHTTPError(500, "Internal server error")
	}
}
