package catalog

import "errors"

// Repository-level errors
var (
	ErrSeriesNotFound         = errors.New("series not found")
	ErrEpisodeNotFound        = errors.New("episode not found")
	ErrVersionMismatch        = errors.New("row version does not match")
	ErrDuplicateEpisodeNumber = errors.New("episode number already used in series")
	ErrSeriesMissing          = errors.New("referenced series does not exist")
	ErrSeriesHasEpisodes      = errors.New("series still has episodes")
)
