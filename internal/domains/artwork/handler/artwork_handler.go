package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"streamhub-backend/internal/domains/artwork"
	"streamhub-backend/internal/shared/access"
	"streamhub-backend/internal/shared/apperror"
	"streamhub-backend/internal/shared/middleware"
	"streamhub-backend/internal/shared/response"
)

// ArtworkService là phần của service.ArtworkService mà handler cần
type ArtworkService interface {
	Upload(ctx context.Context, caller access.Caller, kind artwork.Kind, data []byte) (*artwork.Upload, error)
}

type ArtworkHandler struct {
	artwork  ArtworkService
	maxBytes int64
}

func NewArtworkHandler(artwork ArtworkService, maxBytes int64) *ArtworkHandler {
	return &ArtworkHandler{artwork: artwork, maxBytes: maxBytes}
}

// Upload xử lý POST /api/artwork (multipart: file, kind)
func (h *ArtworkHandler) Upload(c *gin.Context) {
	// 1. Guard trước khi đọc body
	caller := middleware.CallerFrom(c)
	if err := access.RequireAdmin(caller); err != nil {
		response.Error(c, err)
		return
	}

	// 2. Đọc file
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, apperror.FieldError("file", "file is required"))
		return
	}
	if h.maxBytes > 0 && fileHeader.Size > h.maxBytes {
		response.Error(c, apperror.FieldError("file", "image is too large"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, apperror.FieldError("file", "cannot read file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, apperror.FieldError("file", "cannot read file"))
		return
	}

	// 3. CALL SERVICE
	up, err := h.artwork.Upload(c.Request.Context(), caller, artwork.Kind(c.PostForm("kind")), data)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, up)
}
