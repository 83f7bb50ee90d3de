package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"streamhub-backend/internal/domains/catalog"
	"streamhub-backend/internal/shared/middleware"
	"streamhub-backend/internal/shared/response"
	"streamhub-backend/internal/shared/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type SeriesHandler struct {
	catalog CatalogService
}

func NewSeriesHandler(catalog CatalogService) *SeriesHandler {
	return &SeriesHandler{catalog: catalog}
}

// List xử lý GET /api/series
func (h *SeriesHandler) List(c *gin.Context) {
	series, err := h.catalog.ListSeries(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, series)
}

// Get xử lý GET /api/series/:id
func (h *SeriesHandler) Get(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	series, err := h.catalog.GetSeries(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, series)
}

// Create xử lý POST /api/series
func (h *SeriesHandler) Create(c *gin.Context) {
	// 1. BIND REQUEST
	var req catalog.CreateSeriesRequest
	if err := utils.BindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	// 2. CALL SERVICE
	series, err := h.catalog.CreateSeries(c.Request.Context(), middleware.CallerFrom(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. RETURN
	response.JSON(c, http.StatusCreated, series)
}

// UpdateStatus xử lý POST /api/series/:id/status
func (h *SeriesHandler) UpdateStatus(c *gin.Context) {
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
	series, err := h.catalog.UpdateSeriesStatus(c.Request.Context(), middleware.CallerFrom(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, series)
}

// Delete xử lý DELETE /api/series/:id, xoá luôn các episode
func (h *SeriesHandler) Delete(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.catalog.DeleteSeries(c.Request.Context(), middleware.CallerFrom(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Series deleted")
}

// Episodes xử lý GET /api/series/:id/episodes
func (h *SeriesHandler) Episodes(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	episodes, err := h.catalog.ListEpisodes(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, episodes)
}

// Export xử lý GET /api/series/export
func (h *SeriesHandler) Export(c *gin.Context) {
	// 1. Build workbook
	f, err := h.catalog.ExportCatalog(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer f.Close()

	// 2. Set headers cho download
	filename := fmt.Sprintf("catalog_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	// 3. Stream
	if err := f.Write(c.Writer); err != nil {
		log.Error().Err(err).Msg("[SeriesHandler] failed to write export")
	}
}
