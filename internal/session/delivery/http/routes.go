package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods. Session
// creation is the sign-in boundary and takes no middleware.
func RegisterRoutes(rg *gin.RouterGroup, h *handler) {
	sessions := rg.Group("/session")
	{
		sessions.POST("", h.Create)
		sessions.DELETE("", h.Destroy)
	}
}
