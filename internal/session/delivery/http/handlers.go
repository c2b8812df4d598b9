package http

import (
	"github.com/gin-gonic/gin"

	"yeargrid/internal/middleware"
	pkgErrors "yeargrid/pkg/errors"
	"yeargrid/pkg/response"
)

type createReq struct {
	UserID string `json:"userId" binding:"required"`
}

type createResp struct {
	Token string `json:"token"`
}

// Create godoc
// @Summary     Mint a session token
// @Description Issues a bearer session token for the given user. Called by the identity layer after a successful sign-in.
// @Tags        Session
// @Accept      json
// @Produce     json
// @Param       body body createReq true "User identity"
// @Success     200 {object} createResp
// @Failure     400 {object} response.ErrResp "Bad Request"
// @Router      /api/session [POST]
func (h *handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, pkgErrors.NewHTTPError(400, "Missing userId"))
		return
	}

	token, err := h.sessions.Create(ctx, req.UserID)
	if err != nil {
		h.l.Errorf(ctx, "sessions.Create: %v", err)
		response.InternalError(c)
		return
	}

	response.OK(c, createResp{Token: token})
}

// Destroy godoc
// @Summary     Revoke the current session
// @Description Invalidates the bearer token on the request. Unknown tokens are a no-op.
// @Tags        Session
// @Produce     json
// @Success     200 {object} response.OKResp
// @Router      /api/session [DELETE]
func (h *handler) Destroy(c *gin.Context) {
	ctx := c.Request.Context()

	if token := middleware.SessionToken(c); token != "" {
		h.sessions.Destroy(ctx, token)
	}

	response.OK(c, response.OKResp{OK: true})
}
