package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"yeargrid/internal/middleware"
	"yeargrid/pkg/response"
)

// Upsert godoc
// @Summary     Link or refresh a provider account
// @Description Persists a linked account after a provider sign-in, superseding any existing row with the same provider and accountId.
// @Tags        Accounts
// @Accept      json
// @Produce     json
// @Param       body body upsertReq true "Account credentials"
// @Success     200 {object} response.OKResp
// @Failure     400 {object} response.ErrResp "Bad Request"
// @Failure     401 {object} response.ErrResp "Unauthorized"
// @Router      /api/accounts [POST]
func (h *handler) Upsert(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processUpsertReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.store.Upsert(ctx, middleware.ScopeFrom(c), req.toAccount(time.Now())); err != nil {
		h.l.Errorf(ctx, "store.Upsert: %v", err)
		response.InternalError(c)
		return
	}

	response.OK(c, response.OKResp{OK: true})
}

// Disconnect godoc
// @Summary     Disconnect a linked account
// @Description Removes the linked account and reports how many rows were deleted. Zero matches is not an error.
// @Tags        Accounts
// @Accept      json
// @Produce     json
// @Param       body body disconnectReq true "Account to disconnect"
// @Success     200 {object} response.OKResp
// @Failure     400 {object} response.ErrResp "Bad Request"
// @Failure     401 {object} response.ErrResp "Unauthorized"
// @Router      /api/accounts/disconnect [POST]
func (h *handler) Disconnect(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processDisconnectReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	deleted, err := h.store.Disconnect(ctx, middleware.ScopeFrom(c), req.AccountID)
	if err != nil {
		h.l.Errorf(ctx, "store.Disconnect: %v", err)
		response.InternalError(c)
		return
	}

	response.OK(c, response.OKResp{OK: true, Deleted: &deleted})
}
