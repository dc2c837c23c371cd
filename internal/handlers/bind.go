package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/httperr"
)

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// bindJSON binds and validates the body, writing a 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", describeBindError(err))
		return false
	}
	return true
}

func describeBindError(err error) any {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		out := make([]fieldError, 0, len(ve))
		for _, fe := range ve {
			out = append(out, fieldError{Field: lowerFirst(fe.Field()), Rule: fe.Tag()})
		}
		return gin.H{"fields": out}
	}
	return err.Error()
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
