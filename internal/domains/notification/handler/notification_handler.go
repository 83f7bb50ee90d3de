package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"streamhub-backend/internal/domains/notification"
	"streamhub-backend/internal/shared/access"
	"streamhub-backend/internal/shared/apperror"
	"streamhub-backend/internal/shared/middleware"
	"streamhub-backend/internal/shared/response"
	"streamhub-backend/internal/shared/utils"
)

// ================================================
// NOTIFICATION HANDLER
// ================================================

type NotificationHandler struct {
	feed FeedService
}

func NewNotificationHandler(feed FeedService) *NotificationHandler {
	return &NotificationHandler{feed: feed}
}

// List xử lý GET /api/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	list, err := h.feed.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, list)
}

// Create xử lý POST /api/notifications (admin session hoặc API key)
func (h *NotificationHandler) Create(c *gin.Context) {
	// 1. Guard trước khi đọc body
	caller := middleware.CallerFrom(c)
	if err := access.RequireAdminOrAPIKey(caller); err != nil {
		response.Error(c, err)
		return
	}

	// 2. BIND REQUEST
	var req notification.CreateRequest
	if err := utils.BindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	// 3. CALL SERVICE
	n, err := h.feed.Create(c.Request.Context(), caller, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, n)
}

// Push xử lý POST /api/notifications/push (chỉ x-api-key)
func (h *NotificationHandler) Push(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	// 1. Check key trước khi đọc body
	if !caller.ViaAPIKey {
		response.Error(c, apperror.Forbidden())
		return
	}

	// 2. BIND REQUEST
	var req notification.CreateRequest
	if err := utils.BindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	// 3. CALL SERVICE
	n, err := h.feed.Push(c.Request.Context(), caller, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, n)
}

// MarkRead xử lý POST /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.feed.MarkRead(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Notification marked as read")
}

// Delete xử lý DELETE /api/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.feed.Delete(c.Request.Context(), middleware.CallerFrom(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Notification deleted")
}
