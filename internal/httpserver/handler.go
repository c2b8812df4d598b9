package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	accountHTTP "yeargrid/internal/account/delivery/http"
	calendarHTTP "yeargrid/internal/calendar/delivery/http"
	"yeargrid/internal/middleware"
	sessionHTTP "yeargrid/internal/session/delivery/http"
)

func (srv HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes under /api.
func (srv HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()

	mw := middleware.New(srv.l, srv.sessions)
	api := srv.gin.Group("/api")

	calendarHTTP.RegisterRoutes(api, calendarHTTP.New(srv.l, srv.calendarUC), mw)
	srv.l.Infof(ctx, "Calendar domain registered")

	accountHTTP.RegisterRoutes(api, accountHTTP.New(srv.l, srv.accountStore), mw)
	srv.l.Infof(ctx, "Account domain registered")

	sessionHTTP.RegisterRoutes(api, sessionHTTP.New(srv.l, srv.sessions))
	srv.l.Infof(ctx, "Session routes registered")

	return nil
}
