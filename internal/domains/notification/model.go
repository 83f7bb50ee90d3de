package notification

import (
	"context"
	"time"
)

// Notification is one entry of the feed. SeriesID is a weak reference:
// it is not checked on create and may dangle after the series is deleted.
type Notification struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	SeriesID  *int64    `json:"seriesId"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

func (n *Notification) Clone() *Notification {
	if n == nil {
		return nil
	}
	cp := *n
	if n.SeriesID != nil {
		id := *n.SeriesID
		cp.SeriesID = &id
	}
	return &cp
}

// Repository persists the feed
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	// List returns every notification, createdAt descending then id descending
	List(ctx context.Context) ([]*Notification, error)
	// MarkRead reports whether a row matched
	MarkRead(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	// DeleteReadBefore removes read notifications created before the cutoff
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
