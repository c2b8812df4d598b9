package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"yeargrid/internal/account"
	"yeargrid/internal/calendar"
	"yeargrid/internal/session"
	"yeargrid/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Domains
	accountStore account.Store
	calendarUC   calendar.UseCase
	sessions     session.Manager
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	AccountStore    account.Store
	CalendarUseCase calendar.UseCase
	Sessions        session.Manager
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:            logger,
		gin:          gin.New(),
		port:         cfg.Port,
		mode:         cfg.Mode,
		environment:  cfg.Environment,
		accountStore: cfg.AccountStore,
		calendarUC:   cfg.CalendarUseCase,
		sessions:     cfg.Sessions,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.accountStore == nil {
		return errors.New("account store is required")
	}
	if srv.calendarUC == nil {
		return errors.New("calendar usecase is required")
	}
	if srv.sessions == nil {
		return errors.New("session manager is required")
	}
	return nil
}
