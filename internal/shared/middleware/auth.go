package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"streamhub-backend/internal/shared/access"
	"streamhub-backend/internal/shared/response"
)

const (
	callerKey    = "caller"
	sessionKey   = "session_token"
	APIKeyHeader = "x-api-key"
)

// SessionResolver turns a session token into a caller.
// An invalid, expired or revoked token resolves to an error.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (access.Caller, error)
}

// Identify resolves the caller from the session cookie or Bearer token
// and the x-api-key header. It never rejects a request; gating happens
// in the managers and in RequireAdmin.
func Identify(resolver SessionResolver, cookieName, apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := access.AnonymousCaller

		// 1. Session từ cookie hoặc Authorization header
		if token := sessionToken(c, cookieName); token != "" {
			resolved, err := resolver.ResolveSession(c.Request.Context(), token)
			if err != nil {
				log.Debug().Err(err).Str("request_id", c.GetString("request_id")).Msg("Session rejected")
			} else {
				caller = resolved
				c.Set(sessionKey, token)
			}
		}

		// 2. API key cho notification push
		if access.MatchesAPIKey(c.GetHeader(APIKeyHeader), apiKey) {
			caller.ViaAPIKey = true
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the caller is an admin session
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := access.RequireAdmin(CallerFrom(c)); err != nil {
			response.Error(c, err)
			return
		}
		c.Next()
	}
}

// CallerFrom returns the caller stored by Identify, anonymous if absent
func CallerFrom(c *gin.Context) access.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(access.Caller); ok {
			return caller
		}
	}
	return access.AnonymousCaller
}

// SessionTokenFrom returns the token that produced the current caller
func SessionTokenFrom(c *gin.Context) string {
	return c.GetString(sessionKey)
}

func sessionToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
