package http

import (
	"github.com/gin-gonic/gin"

	"yeargrid/internal/middleware"
	"yeargrid/pkg/response"
)

// ListCalendars godoc
// @Summary     List calendars across all linked accounts
// @Description Fans out to every linked account concurrently and returns the merged calendar list with per-account diagnostics. Anonymous requests get empty lists.
// @Tags        Calendars
// @Produce     json
// @Param       debug query string false "Include per-account debug entries (1/true)"
// @Success     200 {object} listCalendarsResp
// @Failure     500 {object} response.ErrResp "Internal Server Error"
// @Router      /api/calendars [GET]
func (h *handler) ListCalendars(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListCalendarsReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.ListCalendars(ctx, middleware.ScopeFrom(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ListCalendars: %v", err)
		response.InternalError(c)
		return
	}

	response.OK(c, h.newListCalendarsResp(output))
}

// ListEvents godoc
// @Summary     List all-day events for a year
// @Description Returns the merged all-day events for the requested year across the selected calendars (default: each account's primary calendar). Anonymous requests get an empty list.
// @Tags        Events
// @Produce     json
// @Param       year        query int    false "Year (default: current year)"
// @Param       calendarIds query string false "Comma-separated composite calendar ids (accountId|calendarId)"
// @Success     200 {object} listEventsResp
// @Failure     500 {object} response.ErrResp "Internal Server Error"
// @Router      /api/events [GET]
func (h *handler) ListEvents(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListEventsReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.ListEvents(ctx, middleware.ScopeFrom(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ListEvents: %v", err)
		response.InternalError(c)
		return
	}

	response.OK(c, h.newListEventsResp(output))
}

// CreateEvent godoc
// @Summary     Create an all-day event
// @Description Creates an all-day event on the target calendar. endDate is inclusive in the request; the response carries the exclusive end date.
// @Tags        Events
// @Accept      json
// @Produce     json
// @Param       body body createEventReq true "Event data"
// @Success     200 {object} eventResp
// @Failure     400 {object} response.ErrResp "Bad Request"
// @Failure     401 {object} response.ErrResp "Unauthorized"
// @Failure     404 {object} response.ErrResp "Account not found"
// @Failure     501 {object} response.ErrResp "Provider does not support writes"
// @Router      /api/events [POST]
func (h *handler) CreateEvent(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCreateEventReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.CreateEvent(ctx, middleware.ScopeFrom(c), req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.CreateEvent: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newEventResp(output))
}

// UpdateEvent godoc
// @Summary     Update or move an all-day event
// @Description Updates an event in place, or moves it when calendarId differs from the id's calendar. A move deletes the source event before creating the new one.
// @Tags        Events
// @Accept      json
// @Produce     json
// @Param       body body updateEventReq true "Event data with composite id"
// @Success     200 {object} eventResp
// @Failure     400 {object} response.ErrResp "Bad Request"
// @Failure     401 {object} response.ErrResp "Unauthorized"
// @Failure     404 {object} response.ErrResp "Account not found"
// @Router      /api/events [PUT]
func (h *handler) UpdateEvent(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processUpdateEventReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.UpdateEvent(ctx, middleware.ScopeFrom(c), req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.UpdateEvent: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newEventResp(output))
}

// DeleteEvent godoc
// @Summary     Delete an all-day event
// @Description Deletes the event addressed by its composite id.
// @Tags        Events
// @Accept      json
// @Produce     json
// @Param       body body deleteEventReq true "Composite event id"
// @Success     200 {object} response.OKResp
// @Failure     400 {object} response.ErrResp "Bad Request"
// @Failure     401 {object} response.ErrResp "Unauthorized"
// @Failure     404 {object} response.ErrResp "Account not found"
// @Router      /api/events [DELETE]
func (h *handler) DeleteEvent(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processDeleteEventReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.uc.DeleteEvent(ctx, middleware.ScopeFrom(c), req.toInput()); err != nil {
		h.l.Warnf(ctx, "uc.DeleteEvent: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, response.OKResp{OK: true})
}
