package http

import (
	"github.com/gin-gonic/gin"

	pkgErrors "yeargrid/pkg/errors"
)

// processUpsertReq binds and validates the account upsert body.
func (h *handler) processUpsertReq(c *gin.Context) (upsertReq, error) {
	var req upsertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, pkgErrors.NewHTTPError(400, "Invalid JSON")
	}
	return req, req.validate()
}

// processDisconnectReq binds the disconnect body.
func (h *handler) processDisconnectReq(c *gin.Context) (disconnectReq, error) {
	var req disconnectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, pkgErrors.NewHTTPError(400, "Missing accountId")
	}
	return req, nil
}
