package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"streamhub-backend/internal/domains/user"
	"streamhub-backend/internal/shared/access"
	"streamhub-backend/internal/shared/apperror"
	"streamhub-backend/pkg/database"
)

const DefaultHashCost = 12

// UserService handles registration and admin management of accounts
type UserService struct {
	repo     user.Repository
	boundary *database.Boundary
	hashCost int
	now      func() time.Time
}

func NewUserService(repo user.Repository, boundary *database.Boundary, hashCost int) *UserService {
	if hashCost < bcrypt.MinCost {
		hashCost = DefaultHashCost
	}
	return &UserService{
		repo:     repo,
		boundary: boundary,
		hashCost: hashCost,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ========================================
// REGISTRATION
// ========================================

// Register creates an active, non-admin account
func (s *UserService) Register(ctx context.Context, req user.RegisterRequest) (*user.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if err := apperror.FromValidation(req.Validate()); err != nil {
		return nil, err
	}

	return s.create(ctx, req.Username, req.Password, req.Email, false)
}

// CreateAdmin bootstraps an admin account; callers are operators, not HTTP requests
func (s *UserService) CreateAdmin(ctx context.Context, in user.CreateAdminInput) (*user.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if err := apperror.FromValidation(in.Validate()); err != nil {
		return nil, err
	}

	return s.create(ctx, in.Username, in.Password, in.Email, true)
}

func (s *UserService) create(ctx context.Context, username, password, email string, isAdmin bool) (*user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, apperror.Internal("hash password", err)
	}

	u := &user.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		IsAdmin:      isAdmin,
		Status:       user.StatusActive,
		CreatedAt:    s.now(),
	}

	err = database.Exec(ctx, s.boundary, "users.create", func(ctx context.Context) error {
		return s.repo.Create(ctx, u)
	})
	if err != nil {
		return nil, toAppError(err)
	}

	log.Info().
		Int64("user_id", u.ID).
		Str("username", u.Username).
		Bool("is_admin", u.IsAdmin).
		Msg("[UserService] User created")

	return u.Clone(), nil
}

// FindByUsername is used by tooling that needs idempotent bootstrap
func (s *UserService) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	u, err := database.Read(ctx, s.boundary, "users.find_by_username", func(ctx context.Context) (*user.User, error) {
		return s.repo.FindByUsername(ctx, username)
	})
	return u, toAppError(err)
}

// ========================================
// ADMIN OPERATIONS
// ========================================

func (s *UserService) List(ctx context.Context, caller access.Caller) ([]*user.User, error) {
	if err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}

	users, err := database.Read(ctx, s.boundary, "users.list", func(ctx context.Context) ([]*user.User, error) {
		return s.repo.List(ctx)
	})
	return users, toAppError(err)
}

// UpdateStatus activates or suspends an account. Admins cannot suspend themselves.
func (s *UserService) UpdateStatus(ctx context.Context, caller access.Caller, id int64, req user.UpdateStatusRequest) (*user.User, error) {
	if err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}
	if err := apperror.FromValidation(req.Validate()); err != nil {
		return nil, err
	}
	if id == caller.UserID && req.Status == user.StatusSuspended {
		return nil, apperror.FieldError("status", "you cannot suspend your own account")
	}

	u, err := database.Write(ctx, s.boundary, "users.update_status", func(ctx context.Context) (*user.User, error) {
		return s.repo.UpdateStatus(ctx, id, req.Status, s.now())
	})
	if err != nil {
		return nil, toAppError(err)
	}

	log.Info().
		Int64("user_id", id).
		Str("status", string(req.Status)).
		Int64("updated_by", caller.UserID).
		Msg("[UserService] User status updated")

	return u, nil
}

// UpdateRole grants or revokes admin. Admins cannot demote themselves.
func (s *UserService) UpdateRole(ctx context.Context, caller access.Caller, id int64, req user.UpdateRoleRequest) (*user.User, error) {
	if err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}
	if err := apperror.FromValidation(req.Validate()); err != nil {
		return nil, err
	}
	isAdmin := *req.IsAdmin
	if id == caller.UserID && !isAdmin {
		return nil, apperror.FieldError("isAdmin", "you cannot remove your own admin role")
	}

	u, err := database.Write(ctx, s.boundary, "users.update_role", func(ctx context.Context) (*user.User, error) {
		return s.repo.UpdateRole(ctx, id, isAdmin, s.now())
	})
	if err != nil {
		return nil, toAppError(err)
	}

	log.Info().
		Int64("user_id", id).
		Bool("is_admin", isAdmin).
		Int64("updated_by", caller.UserID).
		Msg("[UserService] User role updated")

	return u, nil
}

// verifyPassword is shared with the session service
func verifyPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return user.ErrInvalidCredentials
	}
	return nil
}
