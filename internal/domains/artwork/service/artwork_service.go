package service

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"streamhub-backend/internal/domains/artwork"
	"streamhub-backend/internal/infrastructure/storage"
	"streamhub-backend/internal/shared"
	"streamhub-backend/internal/shared/access"
	"streamhub-backend/internal/shared/apperror"
	"streamhub-backend/internal/shared/utils"
)

// ArtworkService stores poster/banner originals and schedules their variants
type ArtworkService struct {
	storage   artwork.ObjectStorage
	queue     artwork.Enqueuer
	processor *storage.ImageProcessor
}

func NewArtworkService(store artwork.ObjectStorage, queue artwork.Enqueuer, processor *storage.ImageProcessor) *ArtworkService {
	return &ArtworkService{storage: store, queue: queue, processor: processor}
}

func baseKey(kind artwork.Kind, id string) string {
	return path.Join("artwork", string(kind), id)
}

func variantKey(kind artwork.Kind, id, variant string) string {
	return path.Join(baseKey(kind, id), variant+".jpg")
}

// Upload validates and stores an original, then enqueues artwork:process
func (s *ArtworkService) Upload(ctx context.Context, caller access.Caller, kind artwork.Kind, data []byte) (*artwork.Upload, error) {
	// 1. Chỉ admin
	if err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}
	if !kind.Valid() {
		return nil, apperror.FieldError("kind", "kind must be poster or banner")
	}

	// 2. Validate ảnh
	format, err := s.processor.ValidateImage(data)
	if err != nil {
		return nil, imageError(err)
	}

	// 3. Upload original
	id := uuid.NewString()
	ext := "jpg"
	if format == "png" {
		ext = "png"
	}
	originalKey := path.Join(baseKey(kind, id), "original."+ext)

	url, err := s.storage.Upload(ctx, originalKey, data, "image/"+format)
	if err != nil {
		return nil, apperror.Unavailable(err)
	}

	// 4. Enqueue job tạo variants
	task, err := utils.NewTask(shared.TypeProcessArtwork, shared.ArtworkPayload{
		ArtworkID:   id,
		Kind:        string(kind),
		OriginalKey: originalKey,
	})
	if err != nil {
		return nil, apperror.Internal("failed to build artwork task", err)
	}
	if _, err := s.queue.EnqueueContext(ctx, task, asynq.Queue(shared.QueueArtwork), asynq.MaxRetry(2)); err != nil {
		// original vẫn dùng được, variants sẽ thiếu
		log.Error().Err(err).Str("artwork_id", id).Msg("[ArtworkService] failed to enqueue variants")
	}

	variants := make(map[string]string, len(storage.VariantSizes))
	for name := range storage.VariantSizes {
		variants[name] = s.storage.URL(variantKey(kind, id, name))
	}

	log.Info().
		Str("artwork_id", id).
		Str("kind", string(kind)).
		Int("bytes", len(data)).
		Int64("uploaded_by", caller.UserID).
		Msg("[ArtworkService] Artwork uploaded")

	return &artwork.Upload{ID: id, Kind: kind, URL: url, Variants: variants}, nil
}

// ProcessVariants runs in the worker: download original, resize, upload variants
func (s *ArtworkService) ProcessVariants(ctx context.Context, payload shared.ArtworkPayload) error {
	kind := artwork.Kind(payload.Kind)

	original, err := s.storage.Download(ctx, payload.OriginalKey)
	if err != nil {
		return fmt.Errorf("failed to download original: %w", err)
	}

	variants, err := s.processor.ProcessImage(original)
	if err != nil {
		// ảnh hỏng: dọn luôn folder, không retry
		if delErr := s.storage.DeletePrefix(ctx, baseKey(kind, payload.ArtworkID)+"/"); delErr != nil {
			log.Warn().Err(delErr).Str("artwork_id", payload.ArtworkID).Msg("[ArtworkService] cleanup failed")
		}
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	for name, data := range variants {
		if _, err := s.storage.Upload(ctx, variantKey(kind, payload.ArtworkID, name), data, "image/jpeg"); err != nil {
			return fmt.Errorf("failed to upload %s variant: %w", name, err)
		}
	}
	return nil
}

func imageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrImageTooLarge):
		return apperror.FieldError("file", "image is too large")
	case errors.Is(err, storage.ErrFormatForbidden), errors.Is(err, storage.ErrNotAnImage):
		return apperror.FieldError("file", "only JPEG and PNG images are accepted")
	}
	return apperror.Internal("image validation failed", err)
}
