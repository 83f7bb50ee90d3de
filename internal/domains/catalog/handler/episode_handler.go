package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"streamhub-backend/internal/domains/catalog"
	"streamhub-backend/internal/shared/middleware"
	"streamhub-backend/internal/shared/response"
	"streamhub-backend/internal/shared/utils"
)

type EpisodeHandler struct {
	catalog CatalogService
}

func NewEpisodeHandler(catalog CatalogService) *EpisodeHandler {
	return &EpisodeHandler{catalog: catalog}
}

// List xử lý GET /api/episodes (admin overview)
func (h *EpisodeHandler) List(c *gin.Context) {
	episodes, err := h.catalog.ListAllEpisodes(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, episodes)
}

// Get xử lý GET /api/episodes/:id
func (h *EpisodeHandler) Get(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	episode, err := h.catalog.GetEpisode(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, episode)
}

// Create xử lý POST /api/episodes
func (h *EpisodeHandler) Create(c *gin.Context) {
	// 1. BIND REQUEST
	var req catalog.CreateEpisodeRequest
	if err := utils.BindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	// 2. CALL SERVICE
	episode, err := h.catalog.CreateEpisode(c.Request.Context(), middleware.CallerFrom(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, episode)
}

// UpdateStatus xử lý POST /api/episodes/:id/status
func (h *EpisodeHandler) UpdateStatus(c *gin.Context) {
	// 1. PARSE PARAMS
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req catalog.UpdateStatusRequest
	if err := utils.BindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	// 2. CALL SERVICE
	episode, err := h.catalog.UpdateEpisodeStatus(c.Request.Context(), middleware.CallerFrom(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, episode)
}

// Delete xử lý DELETE /api/episodes/:id
func (h *EpisodeHandler) Delete(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.catalog.DeleteEpisode(c.Request.Context(), middleware.CallerFrom(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Episode deleted")
}
