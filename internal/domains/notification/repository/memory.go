package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"streamhub-backend/internal/domains/notification"
)

// MemoryRepository is an in-process notification.Repository for tests and tooling
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]*notification.Notification
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{rows: make(map[int64]*notification.Notification)}
}

func (m *MemoryRepository) Create(ctx context.Context, n *notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	n.ID = m.nextID
	n.IsRead = false
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	m.rows[n.ID] = n.Clone()
	return nil
}

func (m *MemoryRepository) List(ctx context.Context) ([]*notification.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*notification.Notification, 0, len(m.rows))
	for _, n := range m.rows {
		result = append(result, n.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (m *MemoryRepository) MarkRead(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.rows[id]
	if !ok {
		return false, nil
	}
	n.IsRead = true
	return true, nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[id]; !ok {
		return notification.ErrNotificationNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *MemoryRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int64
	for id, n := range m.rows {
		if n.IsRead && n.CreatedAt.Before(cutoff) {
			delete(m.rows, id)
			removed++
		}
	}
	return removed, nil
}

// Count is for tests that compare feed size before and after a call
func (m *MemoryRepository) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.rows)), nil
}
