package artwork

import (
	"context"

	"github.com/hibiken/asynq"
)

type Kind string

const (
	KindPoster Kind = "poster"
	KindBanner Kind = "banner"
)

func (k Kind) Valid() bool {
	return k == KindPoster || k == KindBanner
}

// Upload is the answer to an artwork upload. URL is what a series poster/banner should reference.
type Upload struct {
	ID       string            `json:"id"`
	Kind     Kind              `json:"kind"`
	URL      string            `json:"url"`
	Variants map[string]string `json:"variants"`
}

// ObjectStorage is the blob store behind artwork
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Download(ctx context.Context, key string) ([]byte, error)
	DeletePrefix(ctx context.Context, prefix string) error
	URL(key string) string
}

// Enqueuer is satisfied by *asynq.Client
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
