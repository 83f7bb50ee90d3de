package notification

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateRequest struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	SeriesID *int64 `json:"seriesId,omitempty"`
}

func (r *CreateRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Message = strings.TrimSpace(r.Message)
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required"), validation.RuneLength(1, 255)),
		validation.Field(&r.Message, validation.Required.Error("message is required")),
		validation.Field(&r.SeriesID, validation.Min(int64(1)).Error("seriesId must be a positive integer")),
	)
}
