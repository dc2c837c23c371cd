package httperr

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, code string, details any) {
	c.JSON(status, HTTPError{
		Error:   code,
		Details: details,
	})
}

func BadRequest(c *gin.Context, code string, details any) {
	Write(c, http.StatusBadRequest, code, details)
}

func NotFound(c *gin.Context, code string, details any) {
	Write(c, http.StatusNotFound, code, details)
}

func Conflict(c *gin.Context, code string, details any) {
	Write(c, http.StatusConflict, code, details)
}

func Internal(c *gin.Context, code string, details any) {
	Write(c, http.StatusInternalServerError, code, details)
}

func Unauthorized(c *gin.Context, code string, details any) {
	Write(c, http.StatusUnauthorized, code, details)
}

// Respond maps err onto the envelope. Store failures pass their message
// through as details.
func Respond(c *gin.Context, err error) {
	if be, ok := AsBusiness(err); ok {
		switch be.Kind {
		case KindNotFound:
			NotFound(c, be.Code, be.Details)
		case KindConflict:
			Conflict(c, be.Code, be.Details)
		default:
			BadRequest(c, be.Code, be.Details)
		}
		return
	}

	slog.Error("request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
	Internal(c, "internal_error", err.Error())
}
