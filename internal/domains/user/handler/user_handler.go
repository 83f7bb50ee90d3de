package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"streamhub-backend/internal/domains/user"
	"streamhub-backend/internal/shared/middleware"
	"streamhub-backend/internal/shared/response"
	"streamhub-backend/internal/shared/utils"
)

// UserHandler xử lý admin user management
type UserHandler struct {
	users UserService
}

func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List xử lý GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, users)
}

// UpdateStatus xử lý POST /api/users/:id/status
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	// 1. PARSE PARAMS
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req user.UpdateStatusRequest
	if err := utils.BindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	// 2. CALL SERVICE
	u, err := h.users.UpdateStatus(c.Request.Context(), middleware.CallerFrom(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, u)
}

// UpdateRole xử lý POST /api/users/:id/role
func (h *UserHandler) UpdateRole(c *gin.Context) {
	// 1. PARSE PARAMS
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req user.UpdateRoleRequest
	if err := utils.BindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	// 2. CALL SERVICE
	u, err := h.users.UpdateRole(c.Request.Context(), middleware.CallerFrom(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, u)
}
