package job

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"streamhub-backend/internal/shared"
	"streamhub-backend/internal/shared/utils"
)

// Cleaner is the part of the feed service the job needs
type Cleaner interface {
	CleanupRead(ctx context.Context, retention time.Duration) (int64, error)
}

// ================================================
// CLEANUP READ NOTIFICATIONS JOB HANDLER
// ================================================

type CleanupReadHandler struct {
	feed      Cleaner
	retention time.Duration
}

func NewCleanupReadHandler(feed Cleaner, retention time.Duration) *CleanupReadHandler {
	return &CleanupReadHandler{feed: feed, retention: retention}
}

func (h *CleanupReadHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.CleanupReadPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		// payload lỗi thì dùng retention mặc định
		log.Warn().Err(err).Msg("[CleanupRead] bad payload, using configured retention")
	}

	retention := h.retention
	if payload.RetentionHours > 0 {
		retention = time.Duration(payload.RetentionHours) * time.Hour
	}

	deleted, err := h.feed.CleanupRead(ctx, retention)
	if err != nil {
		return fmt.Errorf("cleanup read notifications: %w", err)
	}

	log.Info().
		Str("retention", retention.String()).
		Int64("deleted_count", deleted).
		Msg("[CleanupRead] completed")
	return nil
}
