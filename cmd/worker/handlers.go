package main

import (
	"github.com/hibiken/asynq"

	artworkJob "streamhub-backend/internal/domains/artwork/job"
	notificationJob "streamhub-backend/internal/domains/notification/job"
	"streamhub-backend/internal/shared"
	"streamhub-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	processArtwork *artworkJob.ProcessArtworkHandler
	cleanupRead    *notificationJob.CleanupReadHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		processArtwork: artworkJob.NewProcessArtworkHandler(c.ArtworkService),
		cleanupRead:    notificationJob.NewCleanupReadHandler(c.FeedService, c.Config.Notification.Retention),
	}
}

// RegisterHandlers maps task types to handlers
func (r *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Artwork
	mux.Handle(shared.TypeProcessArtwork, r.processArtwork)

	// Notification maintenance
	mux.Handle(shared.TypeCleanupReadNotices, r.cleanupRead)
}
