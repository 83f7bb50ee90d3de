package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"streamhub-backend/internal/domains/notification"
	"streamhub-backend/internal/shared/access"
	"streamhub-backend/internal/shared/apperror"
	"streamhub-backend/pkg/database"
)

var errNotificationNotFound = apperror.NotFound("NOTIFICATION_NOT_FOUND", "Notification not found")

// FeedService manages the notification feed
type FeedService struct {
	repo     notification.Repository
	boundary *database.Boundary
	now      func() time.Time
}

func NewFeedService(repo notification.Repository, boundary *database.Boundary) *FeedService {
	return &FeedService{
		repo:     repo,
		boundary: boundary,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ================================================
// CREATE
// ================================================

// Create accepts an admin session or the configured API key
func (s *FeedService) Create(ctx context.Context, caller access.Caller, req notification.CreateRequest) (*notification.Notification, error) {
	if err := access.RequireAdminOrAPIKey(caller); err != nil {
		return nil, err
	}
	return s.create(ctx, caller, req)
}

// Push is the external path: only the API key is honoured
func (s *FeedService) Push(ctx context.Context, caller access.Caller, req notification.CreateRequest) (*notification.Notification, error) {
	if !caller.ViaAPIKey {
		return nil, apperror.Forbidden()
	}
	return s.create(ctx, caller, req)
}

func (s *FeedService) create(ctx context.Context, caller access.Caller, req notification.CreateRequest) (*notification.Notification, error) {
	req.Normalize()
	if err := apperror.FromValidation(req.Validate()); err != nil {
		return nil, err
	}

	n := &notification.Notification{
		Title:     req.Title,
		Message:   req.Message,
		SeriesID:  req.SeriesID,
		CreatedAt: s.now(),
	}
	err := database.Exec(ctx, s.boundary, "notifications.create", func(ctx context.Context) error {
		return s.repo.Create(ctx, n)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("notification_id", n.ID).
		Bool("via_api_key", caller.ViaAPIKey).
		Int64("created_by", caller.UserID).
		Msg("[FeedService] Notification created")
	return n.Clone(), nil
}

// ================================================
// READ STATE
// ================================================

// List returns the whole feed, newest first
func (s *FeedService) List(ctx context.Context) ([]*notification.Notification, error) {
	return database.Read(ctx, s.boundary, "notifications.list", func(ctx context.Context) ([]*notification.Notification, error) {
		return s.repo.List(ctx)
	})
}

// MarkRead is a no-op success for already-read and unknown ids
func (s *FeedService) MarkRead(ctx context.Context, id int64) error {
	matched, err := database.Write(ctx, s.boundary, "notifications.mark_read", func(ctx context.Context) (bool, error) {
		return s.repo.MarkRead(ctx, id)
	})
	if err != nil {
		return err
	}
	if !matched {
		log.Debug().Int64("notification_id", id).Msg("[FeedService] markRead on unknown id ignored")
	}
	return nil
}

// ================================================
// DELETE
// ================================================

func (s *FeedService) Delete(ctx context.Context, caller access.Caller, id int64) error {
	if err := access.RequireAdmin(caller); err != nil {
		return err
	}

	err := database.Exec(ctx, s.boundary, "notifications.delete", func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
	if errors.Is(err, notification.ErrNotificationNotFound) {
		return errNotificationNotFound
	}
	if err != nil {
		return err
	}

	log.Info().Int64("notification_id", id).Int64("deleted_by", caller.UserID).Msg("[FeedService] Notification deleted")
	return nil
}

// CleanupRead removes read notifications older than retention. Unread rows are kept.
func (s *FeedService) CleanupRead(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.now().Add(-retention)
	return database.Write(ctx, s.boundary, "notifications.cleanup_read", func(ctx context.Context) (int64, error) {
		return s.repo.DeleteReadBefore(ctx, cutoff)
	})
}
