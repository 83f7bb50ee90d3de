package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamhub-backend/internal/domains/artwork"
	"streamhub-backend/internal/infrastructure/storage"
	"streamhub-backend/internal/shared"
	"streamhub-backend/internal/shared/access"
	"streamhub-backend/internal/shared/apperror"
	"streamhub-backend/internal/shared/utils"
)

type memoryObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemoryObjects() *memoryObjects {
	return &memoryObjects{objects: make(map[string][]byte)}
}

func (m *memoryObjects) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return m.URL(key), nil
}

func (m *memoryObjects) Download(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return data, nil
}

func (m *memoryObjects) DeletePrefix(ctx context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			delete(m.objects, key)
		}
	}
	return nil
}

func (m *memoryObjects) URL(key string) string {
	return "http://minio.local/artwork-bucket/" + key
}

type recordingQueue struct {
	tasks []*asynq.Task
	err   error
}

func (q *recordingQueue) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

var admin = access.SessionCaller(1, true)

func TestUpload_StoresOriginalAndEnqueuesVariants(t *testing.T) {
	objects := newMemoryObjects()
	queue := &recordingQueue{}
	svc := NewArtworkService(objects, queue, storage.NewImageProcessor(0))

	up, err := svc.Upload(context.Background(), admin, artwork.KindPoster, pngBytes(t, 400, 600))
	require.NoError(t, err)

	key := "artwork/poster/" + up.ID + "/original.png"
	assert.Contains(t, objects.objects, key)
	assert.Equal(t, objects.URL(key), up.URL)
	assert.Len(t, up.Variants, len(storage.VariantSizes))

	require.Len(t, queue.tasks, 1)
	assert.Equal(t, shared.TypeProcessArtwork, queue.tasks[0].Type())

	var payload shared.ArtworkPayload
	require.NoError(t, utils.UnmarshalTask(queue.tasks[0], &payload))
	assert.Equal(t, up.ID, payload.ArtworkID)
	assert.Equal(t, key, payload.OriginalKey)
}

func TestUpload_Rejections(t *testing.T) {
	objects := newMemoryObjects()
	queue := &recordingQueue{}
	svc := NewArtworkService(objects, queue, storage.NewImageProcessor(0))
	ctx := context.Background()

	_, err := svc.Upload(ctx, access.SessionCaller(2, false), artwork.KindPoster, pngBytes(t, 10, 10))
	assert.True(t, apperror.IsForbidden(err))

	_, err = svc.Upload(ctx, admin, artwork.Kind("avatar"), pngBytes(t, 10, 10))
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Upload(ctx, admin, artwork.KindBanner, []byte("not an image"))
	assert.True(t, apperror.IsValidation(err))

	assert.Empty(t, objects.objects)
	assert.Empty(t, queue.tasks)
}

func TestUpload_EnqueueFailureStillReturnsOriginal(t *testing.T) {
	objects := newMemoryObjects()
	svc := NewArtworkService(objects, &recordingQueue{err: errors.New("redis down")}, storage.NewImageProcessor(0))

	up, err := svc.Upload(context.Background(), admin, artwork.KindBanner, pngBytes(t, 20, 10))

	require.NoError(t, err)
	assert.NotEmpty(t, up.URL)
}

func TestProcessVariants(t *testing.T) {
	objects := newMemoryObjects()
	queue := &recordingQueue{}
	svc := NewArtworkService(objects, queue, storage.NewImageProcessor(0))
	ctx := context.Background()

	up, err := svc.Upload(ctx, admin, artwork.KindPoster, pngBytes(t, 400, 600))
	require.NoError(t, err)

	var payload shared.ArtworkPayload
	require.NoError(t, utils.UnmarshalTask(queue.tasks[0], &payload))
	require.NoError(t, svc.ProcessVariants(ctx, payload))

	for name := range storage.VariantSizes {
		assert.Contains(t, objects.objects, "artwork/poster/"+up.ID+"/"+name+".jpg")
	}
}

func TestProcessVariants_CorruptOriginalIsNotRetried(t *testing.T) {
	objects := newMemoryObjects()
	svc := NewArtworkService(objects, &recordingQueue{}, storage.NewImageProcessor(0))
	ctx := context.Background()
	_, _ = objects.Upload(ctx, "artwork/banner/x/original.png", []byte("garbage"), "image/png")

	err := svc.ProcessVariants(ctx, shared.ArtworkPayload{ArtworkID: "x", Kind: "banner", OriginalKey: "artwork/banner/x/original.png"})

	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, objects.objects)
}
