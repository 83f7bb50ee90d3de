package main

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"streamhub-backend/internal/infrastructure/queue"
	"streamhub-backend/internal/shared"
	"streamhub-backend/pkg/container"
)

const shutdownTimeout = 30 * time.Second

// asynqServer wraps asynq.Server with additional functionality
type asynqServer struct {
	*asynq.Server
}

// setupAsynqServer creates and configures the Asynq server
func setupAsynqServer(c *container.Container, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		queue.RedisOpt(c.Config.Redis),
		asynq.Config{
			Queues: map[string]int{
				shared.QueueArtwork:      6,
				shared.QueueNotification: 3,
				shared.QueueDefault:      1,
			},
			Concurrency:     c.Config.Worker.Concurrency,
			ShutdownTimeout: shutdownTimeout,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("[Asynq] ❌ Task failed - Type: %s, Error: %v", task.Type(), err)
			}),
		},
	)

	go func() {
		log.Println("[Worker] Starting...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[Worker] Failed: %v", err)
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown waits for in-flight tasks up to shutdownTimeout
func (s *asynqServer) Shutdown() {
	log.Printf("[Worker] Shutting down (waiting max %s)...", shutdownTimeout)
	s.Server.Shutdown()
	log.Println("[Worker] ✓ Gracefully stopped")
}
