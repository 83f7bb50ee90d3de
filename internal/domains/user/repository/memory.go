package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"streamhub-backend/internal/domains/user"
)

// MemoryRepository is an in-process user.Repository for tests and tooling
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]*user.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{rows: make(map[int64]*user.User)}
}

func (m *MemoryRepository) Create(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.rows {
		if existing.Username == u.Username {
			return user.ErrUsernameTaken
		}
	}

	m.nextID++
	u.ID = m.nextID
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	u.UpdatedAt = u.CreatedAt
	m.rows[u.ID] = u.Clone()
	return nil
}

func (m *MemoryRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.rows[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u.Clone(), nil
}

func (m *MemoryRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.rows {
		if u.Username == username {
			return u.Clone(), nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *MemoryRepository) List(ctx context.Context) ([]*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]*user.User, 0, len(m.rows))
	for _, u := range m.rows {
		users = append(users, u.Clone())
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *MemoryRepository) UpdateStatus(ctx context.Context, id int64, status user.Status, at time.Time) (*user.User, error) {
	return m.mutate(id, func(u *user.User) {
		u.Status = status
		u.UpdatedAt = at
	})
}

func (m *MemoryRepository) UpdateRole(ctx context.Context, id int64, isAdmin bool, at time.Time) (*user.User, error) {
	return m.mutate(id, func(u *user.User) {
		u.IsAdmin = isAdmin
		u.UpdatedAt = at
	})
}

func (m *MemoryRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := m.mutate(id, func(u *user.User) {
		t := at
		u.LastLoginAt = &t
	})
	return err
}

func (m *MemoryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.rows[id]
	return ok, nil
}

func (m *MemoryRepository) mutate(id int64, fn func(u *user.User)) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.rows[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	fn(u)
	return u.Clone(), nil
}
