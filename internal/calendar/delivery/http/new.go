package http

import (
	"yeargrid/internal/calendar"
	"yeargrid/pkg/log"
)

// Handler is the public interface for the calendar HTTP delivery layer.
type Handler interface {
	ListCalendars(c interface{})
	ListEvents(c interface{})
	CreateEvent(c interface{})
	UpdateEvent(c interface{})
	DeleteEvent(c interface{})
}

type handler struct {
	l  log.Logger
	uc calendar.UseCase
}

// New creates a new HTTP handler for the calendar domain.
func New(l log.Logger, uc calendar.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
