package http

import (
	"yeargrid/internal/account"
	"yeargrid/pkg/log"
)

// Handler is the public interface for the account HTTP delivery layer.
type Handler interface {
	Upsert(c interface{})
	Disconnect(c interface{})
}

type handler struct {
	l     log.Logger
	store account.Store
}

// New creates a new HTTP handler for the account domain.
func New(l log.Logger, store account.Store) *handler {
	return &handler{
		l:     l,
		store: store,
	}
}
