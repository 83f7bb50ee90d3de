package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"streamhub-backend/internal/shared"
	"streamhub-backend/internal/shared/utils"
)

// VariantProcessor is the part of the artwork service the job needs
type VariantProcessor interface {
	ProcessVariants(ctx context.Context, payload shared.ArtworkPayload) error
}

// ProcessArtworkHandler xử lý resize và upload variants của artwork
type ProcessArtworkHandler struct {
	artwork VariantProcessor
}

func NewProcessArtworkHandler(artwork VariantProcessor) *ProcessArtworkHandler {
	return &ProcessArtworkHandler{artwork: artwork}
}

func (h *ProcessArtworkHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.ArtworkPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	log.Info().
		Str("artwork_id", payload.ArtworkID).
		Str("kind", payload.Kind).
		Msg("Processing artwork variants")

	if err := h.artwork.ProcessVariants(ctx, payload); err != nil {
		log.Error().Err(err).Str("artwork_id", payload.ArtworkID).Msg("Failed to process artwork")
		return fmt.Errorf("process artwork: %w", err)
	}

	log.Info().Str("artwork_id", payload.ArtworkID).Msg("Artwork processed successfully")
	return nil
}
