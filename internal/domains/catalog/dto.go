package catalog

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ========================================
// SERIES DTOs
// ========================================

type CreateSeriesRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Poster      string `json:"poster"`
	Banner      string `json:"banner"`
	Genre       string `json:"genre"`
}

// Normalize trims surrounding whitespace so blank values fail Required
func (r *CreateSeriesRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Poster = strings.TrimSpace(r.Poster)
	r.Banner = strings.TrimSpace(r.Banner)
	r.Genre = strings.TrimSpace(r.Genre)
}

func (r CreateSeriesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required"), validation.RuneLength(1, 255)),
		validation.Field(&r.Description, validation.Required.Error("description is required")),
		validation.Field(&r.Poster, validation.Required.Error("poster is required"), validation.Length(1, 2048)),
		validation.Field(&r.Banner, validation.Required.Error("banner is required"), validation.Length(1, 2048)),
		validation.Field(&r.Genre, validation.Required.Error("genre is required"), validation.RuneLength(1, 100)),
	)
}

// ========================================
// EPISODE DTOs
// ========================================

type CreateEpisodeRequest struct {
	SeriesID int64  `json:"seriesId"`
	Number   int    `json:"number"`
	Title    string `json:"title"`
	VideoURL string `json:"videoUrl"`
}

func (r *CreateEpisodeRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.VideoURL = strings.TrimSpace(r.VideoURL)
}

func (r CreateEpisodeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SeriesID,
			validation.Required.Error("seriesId is required"),
			validation.Min(int64(1)).Error("seriesId must be a positive integer"),
		),
		validation.Field(&r.Number,
			validation.Required.Error("number is required"),
			validation.Min(1).Error("number must be a positive integer"),
		),
		validation.Field(&r.Title, validation.Required.Error("title is required"), validation.RuneLength(1, 255)),
		validation.Field(&r.VideoURL, validation.Required.Error("videoUrl is required"), validation.Length(1, 2048)),
	)
}

// ========================================
// STATUS DTOs
// ========================================

type UpdateStatusRequest struct {
	Status          Status `json:"status"`
	ExpectedVersion *int   `json:"expectedVersion,omitempty"`
}

func (r UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status,
			validation.Required.Error("status is required"),
			validation.In(StatusDraft, StatusPublished).Error("status must be draft or published"),
		),
		validation.Field(&r.ExpectedVersion, validation.Min(1).Error("expectedVersion must be a positive integer")),
	)
}
