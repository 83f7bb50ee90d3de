package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"streamhub-backend/internal/domains/user"
	"streamhub-backend/internal/shared/middleware"
	"streamhub-backend/internal/shared/response"
	"streamhub-backend/internal/shared/utils"
)

// AuthHandler xử lý register / login / logout / me
type AuthHandler struct {
	users    UserService
	sessions SessionService
	cookie   CookieConfig
}

func NewAuthHandler(users UserService, sessions SessionService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, cookie: cookie}
}

// Register xử lý POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	// 1. PARSE REQUEST
	var req user.RegisterRequest
	if err := utils.BindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	// 2. CALL SERVICE
	u, err := h.users.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, u)
}

// Login xử lý POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	// 1. PARSE REQUEST
	var req user.LoginRequest
	if err := utils.BindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	// 2. AUTHENTICATE
	resp, err := h.sessions.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. SET SESSION COOKIE (HttpOnly)
	maxAge := int(time.Until(resp.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, resp.Token, maxAge, "/", "", h.cookie.Secure, true)

	response.JSON(c, http.StatusOK, resp)
}

// Logout xử lý POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := middleware.SessionTokenFrom(c); token != "" {
		if err := h.sessions.Logout(c.Request.Context(), token); err != nil {
			response.Error(c, err)
			return
		}
	}

	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	response.OK(c, "Logged out")
}

// Me xử lý GET /api/admin/me
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.sessions.CurrentAdmin(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, u)
}
