// Package session issues and resolves opaque bearer tokens for signed-in
// users. Sessions live in memory with a TTL; restarting the process signs
// everyone out, which only costs a re-login since durable account links
// survive in the store.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"yeargrid/internal/model"
	"yeargrid/pkg/log"
)

const maxSessions = 4096

type Manager interface {
	// Create issues a new session token for the user.
	Create(ctx context.Context, userID string) (string, error)
	// Resolve maps a token to its scope. Unknown or expired tokens resolve
	// to an empty scope and false.
	Resolve(ctx context.Context, token string) (model.Scope, bool)
	// Destroy invalidates a token. Unknown tokens are a no-op.
	Destroy(ctx context.Context, token string)
}

type implManager struct {
	l        log.Logger
	sessions *expirable.LRU[string, string]
}

func New(l log.Logger, ttl time.Duration) Manager {
	return &implManager{
		l:        l,
		sessions: expirable.NewLRU[string, string](maxSessions, nil, ttl),
	}
}

func (m *implManager) Create(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	m.sessions.Add(token, userID)
	m.l.Debugf(ctx, "session.Create: user %s", userID)
	return token, nil
}

func (m *implManager) Resolve(ctx context.Context, token string) (model.Scope, bool) {
	if token == "" {
		return model.Scope{}, false
	}
	userID, ok := m.sessions.Get(token)
	if !ok {
		return model.Scope{}, false
	}
	return model.Scope{UserID: userID}, true
}

func (m *implManager) Destroy(ctx context.Context, token string) {
	m.sessions.Remove(token)
}
