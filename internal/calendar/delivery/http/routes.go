package http

import (
	"github.com/gin-gonic/gin"

	"yeargrid/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods. Reads accept
// anonymous requests (the session middleware just resolves the scope when
// present); writes require a session.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	rg.GET("/calendars", mw.Session(), h.ListCalendars)

	events := rg.Group("/events")
	{
		events.GET("", mw.Session(), h.ListEvents)
		events.POST("", mw.Auth(), h.CreateEvent)
		events.PUT("", mw.Auth(), h.UpdateEvent)
		events.DELETE("", mw.Auth(), h.DeleteEvent)
	}
}
