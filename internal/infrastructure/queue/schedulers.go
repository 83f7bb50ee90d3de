package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"streamhub-backend/internal/config"
	"streamhub-backend/internal/shared"
	"streamhub-backend/pkg/logger"
)

// CleanupReadCron chạy lúc 3h sáng mỗi ngày
const CleanupReadCron = "0 3 * * *"

type Scheduler struct {
	scheduler *asynq.Scheduler
	retention time.Duration
}

func NewScheduler(redis config.RedisConfig, notification config.NotificationConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		RedisOpt(redis),
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		retention: notification.Retention,
	}
}

func (s *Scheduler) RegisterCleanupJobs() error {
	return s.registerCleanupReadNotificationsJob()
}

// ================================================
// JOB: Cleanup Read Notifications (Daily at 3 AM)
// ================================================
func (s *Scheduler) registerCleanupReadNotificationsJob() error {
	payload, err := json.Marshal(shared.CleanupReadPayload{
		RetentionHours: int(s.retention / time.Hour),
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeCleanupReadNotices, payload)

	_, err = s.scheduler.Register(
		CleanupReadCron,
		task,
		asynq.Queue(shared.QueueNotification),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register CleanupReadNotifications job", err)
		return err
	}

	logger.Info("✓ Registered CleanupReadNotifications: daily at 3 AM", map[string]interface{}{
		"retention": s.retention.String(),
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
