package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"streamhub-backend/internal/shared/apperror"
	"streamhub-backend/internal/shared/response"
)

// Recovery turns a handler panic into a 500 envelope; the process keeps serving
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Str("request_id", c.GetString("request_id")).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Interface("panic", rec).
					Msg("Panic recovered")

				response.Error(c, apperror.Internal("panic", fmt.Errorf("%v", rec)))
			}
		}()

		c.Next()
	}
}
