package http

import (
	"github.com/gin-gonic/gin"

	pkgErrors "yeargrid/pkg/errors"
)

// processListCalendarsReq binds the calendar listing query parameters.
func (h *handler) processListCalendarsReq(c *gin.Context) (listCalendarsReq, error) {
	var req listCalendarsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, pkgErrors.NewHTTPError(400, "Invalid query")
	}
	return req, nil
}

// processListEventsReq binds the event listing query parameters.
func (h *handler) processListEventsReq(c *gin.Context) (listEventsReq, error) {
	var req listEventsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, pkgErrors.NewHTTPError(400, "Invalid query")
	}
	return req, nil
}

// processCreateEventReq binds and validates the create event body.
func (h *handler) processCreateEventReq(c *gin.Context) (createEventReq, error) {
	var req createEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, pkgErrors.NewHTTPError(400, "Invalid JSON")
	}
	return req, req.validate()
}

// processUpdateEventReq binds and validates the update event body.
func (h *handler) processUpdateEventReq(c *gin.Context) (updateEventReq, error) {
	var req updateEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, pkgErrors.NewHTTPError(400, "Invalid JSON")
	}
	return req, req.validate()
}

// processDeleteEventReq binds the delete event body.
func (h *handler) processDeleteEventReq(c *gin.Context) (deleteEventReq, error) {
	var req deleteEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, pkgErrors.NewHTTPError(400, "Invalid JSON")
	}
	return req, nil
}
