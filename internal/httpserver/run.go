package httpserver

import (
	"fmt"
)

// Run maps all handlers and serves until the listener fails or the process
// receives a shutdown signal.
func (srv *HTTPServer) Run() error {
	if err := srv.mapHandlers(); err != nil {
		return err
	}

	return srv.gin.Run(fmt.Sprintf(":%d", srv.port))
}
