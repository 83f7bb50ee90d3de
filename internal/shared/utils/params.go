package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"streamhub-backend/internal/shared/apperror"
)

// ParseIDParam reads a positive int64 path parameter
func ParseIDParam(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.FieldError(name, "must be a positive integer")
	}
	return id, nil
}

// BindJSON decodes the request body, mapping malformed JSON to a validation error
func BindJSON(c *gin.Context, dest interface{}) error {
	if err := c.ShouldBindJSON(dest); err != nil {
		return apperror.Validation("INVALID_BODY", "Request body is not valid JSON", map[string]string{"body": err.Error()})
	}
	return nil
}
