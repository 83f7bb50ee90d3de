package utils

import (
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamhub-backend/internal/shared"
)

func TestTaskRoundTrip(t *testing.T) {
	task, err := NewTask(shared.TypeProcessArtwork, shared.ArtworkPayload{ArtworkID: "a1", Kind: "poster", OriginalKey: "artwork/poster/a1/original.png"})
	require.NoError(t, err)
	assert.Equal(t, shared.TypeProcessArtwork, task.Type())

	var got shared.ArtworkPayload
	require.NoError(t, UnmarshalTask(task, &got))
	assert.Equal(t, "a1", got.ArtworkID)
	assert.Equal(t, "poster", got.Kind)
}

func TestUnmarshalTask_EmptyPayload(t *testing.T) {
	got := shared.CleanupReadPayload{RetentionHours: 7}

	require.NoError(t, UnmarshalTask(asynq.NewTask(shared.TypeCleanupReadNotices, nil), &got))
	assert.Equal(t, 7, got.RetentionHours)
}

func TestUnmarshalTask_Malformed(t *testing.T) {
	var got shared.CleanupReadPayload

	err := UnmarshalTask(asynq.NewTask(shared.TypeCleanupReadNotices, []byte("{")), &got)

	assert.Error(t, err)
}
