package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"streamhub-backend/internal/domains/catalog"
	"streamhub-backend/internal/shared/access"
	"streamhub-backend/internal/shared/apperror"
	"streamhub-backend/pkg/database"
)

// ActorDirectory confirms that an acting user id still exists
type ActorDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// LifecycleService enforces status transitions, audit stamping and
// admin gating for series and episodes.
type LifecycleService struct {
	store    catalog.Store
	actors   ActorDirectory
	policy   access.ReadPolicy
	boundary *database.Boundary
	now      func() time.Time
}

func NewLifecycleService(store catalog.Store, actors ActorDirectory, policy access.ReadPolicy, boundary *database.Boundary) *LifecycleService {
	return &LifecycleService{
		store:    store,
		actors:   actors,
		policy:   policy,
		boundary: boundary,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ============================================
// SERIES MUTATIONS
// ============================================

// CreateSeries persists a draft series stamped with the caller as author
func (s *LifecycleService) CreateSeries(ctx context.Context, caller access.Caller, req catalog.CreateSeriesRequest) (*catalog.Series, error) {
	if err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}

	req.Normalize()
	if err := apperror.FromValidation(req.Validate()); err != nil {
		return nil, err
	}

	if err := s.requireActor(ctx, caller); err != nil {
		return nil, err
	}

	series := &catalog.Series{
		Title:       req.Title,
		Description: req.Description,
		Poster:      req.Poster,
		Banner:      req.Banner,
		Genre:       req.Genre,
		Status:      catalog.StatusDraft,
		CreatedBy:   caller.UserID,
		UpdatedBy:   caller.UserID,
		CreatedAt:   s.now(),
	}

	err := database.Exec(ctx, s.boundary, "series.create", func(ctx context.Context) error {
		return s.store.Series().Create(ctx, series)
	})
	if err != nil {
		return nil, toAppError(err)
	}

	log.Info().
		Int64("series_id", series.ID).
		Str("title", series.Title).
		Int64("created_by", caller.UserID).
		Msg("[LifecycleService] Series created")

	return series.Clone(), nil
}

// UpdateSeriesStatus moves a series between draft and published
func (s *LifecycleService) UpdateSeriesStatus(ctx context.Context, caller access.Caller, id int64, req catalog.UpdateStatusRequest) (*catalog.Series, error) {
	change, err := s.prepareStatusChange(ctx, caller, req)
	if err != nil {
		return nil, err
	}

	series, err := database.Write(ctx, s.boundary, "series.update_status", func(ctx context.Context) (*catalog.Series, error) {
		return s.store.Series().UpdateStatus(ctx, id, change)
	})
	if err != nil {
		return nil, toAppError(err)
	}

	log.Info().
		Int64("series_id", id).
		Str("status", string(series.Status)).
		Int64("updated_by", caller.UserID).
		Int("version", series.Version).
		Msg("[LifecycleService] Series status updated")

	return series, nil
}

// DeleteSeries removes the series and all of its episodes in one transaction.
// A failure at any step rolls back the whole cascade.
func (s *LifecycleService) DeleteSeries(ctx context.Context, caller access.Caller, id int64) error {
	if err := access.RequireAdmin(caller); err != nil {
		return err
	}

	var removed int64
	err := database.Exec(ctx, s.boundary, "series.delete_cascade", func(ctx context.Context) error {
		return s.store.WithTx(ctx, func(tx catalog.Store) error {
			if _, err := tx.Series().LockByID(ctx, id); err != nil {
				return err
			}

			n, err := tx.Episodes().DeleteBySeries(ctx, id)
			if err != nil {
				return err
			}
			removed = n

			return tx.Series().Delete(ctx, id)
		})
	})
	if err != nil {
		mapped := toAppError(err)
		if !apperror.IsAppError(mapped) {
			mapped = apperror.Unavailable(err)
		}
		log.Warn().Err(err).Int64("series_id", id).Msg("[LifecycleService] Series delete rolled back")
		return mapped
	}

	log.Info().
		Int64("series_id", id).
		Int64("episodes_removed", removed).
		Int64("deleted_by", caller.UserID).
		Msg("[LifecycleService] Series deleted")

	return nil
}

// ============================================
// EPISODE MUTATIONS
// ============================================

// CreateEpisode persists a draft episode; the series must exist and the number must be free
func (s *LifecycleService) CreateEpisode(ctx context.Context, caller access.Caller, req catalog.CreateEpisodeRequest) (*catalog.Episode, error) {
	if err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}

	req.Normalize()
	if err := apperror.FromValidation(req.Validate()); err != nil {
		return nil, err
	}

	if err := s.requireActor(ctx, caller); err != nil {
		return nil, err
	}

	_, err := database.Read(ctx, s.boundary, "series.find", func(ctx context.Context) (*catalog.Series, error) {
		return s.store.Series().FindByID(ctx, req.SeriesID)
	})
	if err != nil {
		if apperror.IsNotFound(toAppError(err)) {
			return nil, toAppError(catalog.ErrSeriesMissing)
		}
		return nil, toAppError(err)
	}

	episode := &catalog.Episode{
		SeriesID:  req.SeriesID,
		Number:    req.Number,
		Title:     req.Title,
		VideoURL:  req.VideoURL,
		Status:    catalog.StatusDraft,
		CreatedBy: caller.UserID,
		UpdatedBy: caller.UserID,
		CreatedAt: s.now(),
	}

	err = database.Exec(ctx, s.boundary, "episodes.create", func(ctx context.Context) error {
		return s.store.Episodes().Create(ctx, episode)
	})
	if err != nil {
		return nil, toAppError(err)
	}

	log.Info().
		Int64("episode_id", episode.ID).
		Int64("series_id", episode.SeriesID).
		Int("number", episode.Number).
		Int64("created_by", caller.UserID).
		Msg("[LifecycleService] Episode created")

	return episode.Clone(), nil
}

// UpdateEpisodeStatus moves an episode between draft and published
func (s *LifecycleService) UpdateEpisodeStatus(ctx context.Context, caller access.Caller, id int64, req catalog.UpdateStatusRequest) (*catalog.Episode, error) {
	change, err := s.prepareStatusChange(ctx, caller, req)
	if err != nil {
		return nil, err
	}

	episode, err := database.Write(ctx, s.boundary, "episodes.update_status", func(ctx context.Context) (*catalog.Episode, error) {
		return s.store.Episodes().UpdateStatus(ctx, id, change)
	})
	if err != nil {
		return nil, toAppError(err)
	}

	log.Info().
		Int64("episode_id", id).
		Str("status", string(episode.Status)).
		Int64("updated_by", caller.UserID).
		Int("version", episode.Version).
		Msg("[LifecycleService] Episode status updated")

	return episode, nil
}

// DeleteEpisode removes a single episode
func (s *LifecycleService) DeleteEpisode(ctx context.Context, caller access.Caller, id int64) error {
	if err := access.RequireAdmin(caller); err != nil {
		return err
	}

	err := database.Exec(ctx, s.boundary, "episodes.delete", func(ctx context.Context) error {
		return s.store.Episodes().Delete(ctx, id)
	})
	if err != nil {
		return toAppError(err)
	}

	log.Info().Int64("episode_id", id).Int64("deleted_by", caller.UserID).Msg("[LifecycleService] Episode deleted")
	return nil
}

// ============================================
// HELPERS
// ============================================

func (s *LifecycleService) prepareStatusChange(ctx context.Context, caller access.Caller, req catalog.UpdateStatusRequest) (catalog.StatusChange, error) {
	if err := access.RequireAdmin(caller); err != nil {
		return catalog.StatusChange{}, err
	}
	if err := apperror.FromValidation(req.Validate()); err != nil {
		return catalog.StatusChange{}, err
	}
	if err := s.requireActor(ctx, caller); err != nil {
		return catalog.StatusChange{}, err
	}

	return catalog.StatusChange{
		Status:          req.Status,
		UpdatedBy:       caller.UserID,
		At:              s.now(),
		ExpectedVersion: req.ExpectedVersion,
	}, nil
}

// requireActor checks that the acting user row exists before it is stamped
func (s *LifecycleService) requireActor(ctx context.Context, caller access.Caller) error {
	exists, err := database.Read(ctx, s.boundary, "users.exists", func(ctx context.Context) (bool, error) {
		return s.actors.Exists(ctx, caller.UserID)
	})
	if err != nil {
		return err
	}
	if !exists {
		return apperror.FieldError("updatedBy", "acting user does not exist")
	}
	return nil
}
