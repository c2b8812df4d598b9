package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgErrors "yeargrid/pkg/errors"
)

// OK sends 200 with the payload as-is. This API's read endpoints serve their
// documented shapes directly, without an envelope.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Error sends an error payload. HTTPError values keep their status; anything
// else is treated as a bad request.
func Error(c *gin.Context, err error) {
	status := http.StatusBadRequest
	if httpErr, ok := err.(*pkgErrors.HTTPError); ok {
		status = httpErr.Status
	}
	c.JSON(status, ErrResp{Error: err.Error()})
}

// ErrorStatus sends an error payload with an explicit status.
func ErrorStatus(c *gin.Context, status int, message string) {
	c.JSON(status, ErrResp{Error: message})
}

// Unauthorized sends 401.
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, ErrResp{Error: "Unauthorized"})
}

// InternalError sends 500 without leaking the underlying error.
func InternalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, ErrResp{Error: "Internal server error"})
}
