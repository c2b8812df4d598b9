package http

import (
	"github.com/gin-gonic/gin"

	"yeargrid/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods. Both account
// operations mutate the credential store and require a session.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	accounts := rg.Group("/accounts")
	{
		accounts.POST("", mw.Auth(), h.Upsert)
		accounts.POST("/disconnect", mw.Auth(), h.Disconnect)
	}
}
