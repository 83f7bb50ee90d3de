package user

import (
	"context"
	"time"
)

// Status của tài khoản
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusSuspended
}

// User là entity của bảng users
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"` // Never expose in JSON
	Email        string     `json:"email"`
	IsAdmin      bool       `json:"isAdmin"`
	Status       Status     `json:"status"`
	LastLoginAt  *time.Time `json:"lastLoginAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// Clone returns a detached copy
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	if u.LastLoginAt != nil {
		t := *u.LastLoginAt
		cp.LastLoginAt = &t
	}
	return &cp
}

// ========================================
// REPOSITORY INTERFACE
// ========================================

// Repository là data access contract cho users
type Repository interface {
	// Create assigns ID and timestamps on u
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	// List returns every user ordered by id
	List(ctx context.Context) ([]*User, error)
	UpdateStatus(ctx context.Context, id int64, status Status, at time.Time) (*User, error)
	UpdateRole(ctx context.Context, id int64, isAdmin bool, at time.Time) (*User, error)
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
	Exists(ctx context.Context, id int64) (bool, error)
}
