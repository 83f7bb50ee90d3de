package service

import (
	"context"

	"streamhub-backend/internal/domains/catalog"
	"streamhub-backend/internal/shared/access"
	"streamhub-backend/pkg/database"
)

// ============================================
// CATALOG READS
// ============================================

// ListSeries returns series ordered by id. Anonymous callers only see published rows.
func (s *LifecycleService) ListSeries(ctx context.Context, caller access.Caller) ([]*catalog.Series, error) {
	if err := s.policy.CheckRead(caller); err != nil {
		return nil, err
	}

	publishedOnly := !s.policy.SeesDrafts(caller)
	series, err := database.Read(ctx, s.boundary, "series.list", func(ctx context.Context) ([]*catalog.Series, error) {
		return s.store.Series().List(ctx, publishedOnly)
	})
	return series, toAppError(err)
}

// GetSeries hides drafts from callers that cannot see them
func (s *LifecycleService) GetSeries(ctx context.Context, caller access.Caller, id int64) (*catalog.Series, error) {
	if err := s.policy.CheckRead(caller); err != nil {
		return nil, err
	}

	series, err := s.findSeries(ctx, id)
	if err != nil {
		return nil, err
	}
	if series.Status != catalog.StatusPublished && !s.policy.SeesDrafts(caller) {
		return nil, errSeriesNotFound
	}
	return series, nil
}

// ListEpisodes returns the episodes of a series ordered by number ascending.
// A series the caller cannot see yields an empty list.
func (s *LifecycleService) ListEpisodes(ctx context.Context, caller access.Caller, seriesID int64) ([]*catalog.Episode, error) {
	if err := s.policy.CheckRead(caller); err != nil {
		return nil, err
	}

	publishedOnly := !s.policy.SeesDrafts(caller)
	if publishedOnly {
		series, err := s.findSeries(ctx, seriesID)
		if err != nil {
			if err == errSeriesNotFound {
				return []*catalog.Episode{}, nil
			}
			return nil, err
		}
		if series.Status != catalog.StatusPublished {
			return []*catalog.Episode{}, nil
		}
	}

	episodes, err := database.Read(ctx, s.boundary, "episodes.list_by_series", func(ctx context.Context) ([]*catalog.Episode, error) {
		return s.store.Episodes().ListBySeries(ctx, seriesID, publishedOnly)
	})
	return episodes, toAppError(err)
}

// ListAllEpisodes is the admin overview across every series
func (s *LifecycleService) ListAllEpisodes(ctx context.Context, caller access.Caller) ([]*catalog.Episode, error) {
	if err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}

	episodes, err := database.Read(ctx, s.boundary, "episodes.list_all", func(ctx context.Context) ([]*catalog.Episode, error) {
		return s.store.Episodes().ListAll(ctx)
	})
	return episodes, toAppError(err)
}

// GetEpisode hides draft episodes, and episodes of draft series, from anonymous callers
func (s *LifecycleService) GetEpisode(ctx context.Context, caller access.Caller, id int64) (*catalog.Episode, error) {
	if err := s.policy.CheckRead(caller); err != nil {
		return nil, err
	}

	episode, err := database.Read(ctx, s.boundary, "episodes.find", func(ctx context.Context) (*catalog.Episode, error) {
		return s.store.Episodes().FindByID(ctx, id)
	})
	if err != nil {
		return nil, toAppError(err)
	}

	if s.policy.SeesDrafts(caller) {
		return episode, nil
	}
	if episode.Status != catalog.StatusPublished {
		return nil, errEpisodeNotFound
	}

	series, err := s.findSeries(ctx, episode.SeriesID)
	if err != nil || series.Status != catalog.StatusPublished {
		if err != nil && err != errSeriesNotFound {
			return nil, err
		}
		return nil, errEpisodeNotFound
	}
	return episode, nil
}

func (s *LifecycleService) findSeries(ctx context.Context, id int64) (*catalog.Series, error) {
	series, err := database.Read(ctx, s.boundary, "series.find", func(ctx context.Context) (*catalog.Series, error) {
		return s.store.Series().FindByID(ctx, id)
	})
	if err != nil {
		return nil, toAppError(err)
	}
	return series, nil
}
