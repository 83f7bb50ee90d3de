package service

import (
	"errors"

	"streamhub-backend/internal/domains/catalog"
	"streamhub-backend/internal/shared/apperror"
)

var (
	errSeriesNotFound  = apperror.NotFound("SERIES_NOT_FOUND", "Series not found")
	errEpisodeNotFound = apperror.NotFound("EPISODE_NOT_FOUND", "Episode not found")
)

// toAppError maps repository sentinels onto the application taxonomy
func toAppError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, catalog.ErrSeriesNotFound):
		return errSeriesNotFound
	case errors.Is(err, catalog.ErrEpisodeNotFound):
		return errEpisodeNotFound
	case errors.Is(err, catalog.ErrVersionMismatch):
		return apperror.Conflict("VERSION_MISMATCH", "The row was modified by another request")
	case errors.Is(err, catalog.ErrSeriesMissing):
		return apperror.FieldError("seriesId", "series does not exist")
	case errors.Is(err, catalog.ErrDuplicateEpisodeNumber):
		return apperror.FieldError("number", "episode number already exists in this series")
	}
	return err
}
