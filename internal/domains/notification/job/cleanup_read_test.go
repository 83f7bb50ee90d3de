package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"

	"streamhub-backend/internal/shared"
)

type fakeCleaner struct {
	got time.Duration
	err error
}

func (f *fakeCleaner) CleanupRead(ctx context.Context, retention time.Duration) (int64, error) {
	f.got = retention
	return 3, f.err
}

func TestCleanupRead_UsesConfiguredRetention(t *testing.T) {
	cleaner := &fakeCleaner{}
	h := NewCleanupReadHandler(cleaner, 720*time.Hour)

	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeCleanupReadNotices, nil))

	assert.NoError(t, err)
	assert.Equal(t, 720*time.Hour, cleaner.got)
}

func TestCleanupRead_PayloadOverride(t *testing.T) {
	cleaner := &fakeCleaner{}
	h := NewCleanupReadHandler(cleaner, 720*time.Hour)

	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeCleanupReadNotices, []byte(`{"retention_hours":24}`)))

	assert.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cleaner.got)
}

func TestCleanupRead_PropagatesFailure(t *testing.T) {
	cleaner := &fakeCleaner{err: errors.New("db down")}
	h := NewCleanupReadHandler(cleaner, time.Hour)

	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeCleanupReadNotices, nil))

	assert.Error(t, err)
}
