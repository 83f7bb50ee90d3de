package handler

import (
	"context"

	"streamhub-backend/internal/domains/notification"
	"streamhub-backend/internal/shared/access"
)

// FeedService là phần của service.FeedService mà handler cần
type FeedService interface {
	Create(ctx context.Context, caller access.Caller, req notification.CreateRequest) (*notification.Notification, error)
	Push(ctx context.Context, caller access.Caller, req notification.CreateRequest) (*notification.Notification, error)
	List(ctx context.Context) ([]*notification.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	Delete(ctx context.Context, caller access.Caller, id int64) error
}
