package http

import (
	"yeargrid/internal/session"
	"yeargrid/pkg/log"
)

// Handler is the public interface for the session HTTP delivery layer.
type Handler interface {
	Create(c interface{})
	Destroy(c interface{})
}

type handler struct {
	l        log.Logger
	sessions session.Manager
}

// New creates a new HTTP handler for session management.
func New(l log.Logger, sessions session.Manager) *handler {
	return &handler{
		l:        l,
		sessions: sessions,
	}
}
