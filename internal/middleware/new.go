package middleware

import (
	"yeargrid/internal/session"
	"yeargrid/pkg/log"
)

type Middleware struct {
	l        log.Logger
	sessions session.Manager
}

func New(l log.Logger, sessions session.Manager) Middleware {
	return Middleware{
		l:        l,
		sessions: sessions,
	}
}
