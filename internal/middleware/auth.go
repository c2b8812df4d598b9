package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"yeargrid/internal/model"
	"yeargrid/pkg/response"
)

const scopeKey = "yeargrid.scope"

// SessionCookie is the fallback session carrier for browser clients that
// cannot set an Authorization header.
const SessionCookie = "yg_session"

// Session resolves the request's session when one is present and stores the
// scope in the gin context. Anonymous requests pass through with an empty
// scope; read endpoints degrade to empty results instead of rejecting them.
func (m Middleware) Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sc, ok := m.resolve(c); ok {
			c.Set(scopeKey, sc)
		}
		c.Next()
	}
}

// Auth rejects requests without a valid session.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sc, ok := m.resolve(c)
		if !ok {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		c.Set(scopeKey, sc)
		c.Next()
	}
}

func (m Middleware) resolve(c *gin.Context) (model.Scope, bool) {
	token := bearerToken(c.GetHeader("Authorization"))
	if token == "" {
		token, _ = c.Cookie(SessionCookie)
	}
	return m.sessions.Resolve(c.Request.Context(), token)
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// ScopeFrom returns the scope stored by Session or Auth; the zero scope when
// the request is anonymous.
func ScopeFrom(c *gin.Context) model.Scope {
	if v, ok := c.Get(scopeKey); ok {
		if sc, ok := v.(model.Scope); ok {
			return sc
		}
	}
	return model.Scope{}
}

// SessionToken returns the raw session token on the request, if any.
func SessionToken(c *gin.Context) string {
	token := bearerToken(c.GetHeader("Authorization"))
	if token == "" {
		token, _ = c.Cookie(SessionCookie)
	}
	return token
}
