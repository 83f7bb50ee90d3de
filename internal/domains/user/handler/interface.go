package handler

import (
	"context"

	"streamhub-backend/internal/domains/user"
	"streamhub-backend/internal/shared/access"
)

// UserService là phần của service.UserService mà handler cần
type UserService interface {
	Register(ctx context.Context, req user.RegisterRequest) (*user.User, error)
	List(ctx context.Context, caller access.Caller) ([]*user.User, error)
	UpdateStatus(ctx context.Context, caller access.Caller, id int64, req user.UpdateStatusRequest) (*user.User, error)
	UpdateRole(ctx context.Context, caller access.Caller, id int64, req user.UpdateRoleRequest) (*user.User, error)
}

// SessionService là phần của service.SessionService mà handler cần
type SessionService interface {
	Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	CurrentAdmin(ctx context.Context, caller access.Caller) (*user.User, error)
}

// CookieConfig describes the session cookie
type CookieConfig struct {
	Name   string
	Secure bool
}
