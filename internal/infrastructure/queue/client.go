package queue

import (
	"github.com/hibiken/asynq"

	"streamhub-backend/internal/config"
)

// RedisOpt builds the asynq connection from the shared redis config
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Host,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// NewClient tạo asynq client dùng để enqueue task từ API
func NewClient(cfg config.RedisConfig) *asynq.Client {
	return asynq.NewClient(RedisOpt(cfg))
}
