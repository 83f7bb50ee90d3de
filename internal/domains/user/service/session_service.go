package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"streamhub-backend/internal/domains/user"
	"streamhub-backend/internal/shared/access"
	"streamhub-backend/internal/shared/apperror"
	"streamhub-backend/pkg/cache"
	"streamhub-backend/pkg/database"
	"streamhub-backend/pkg/jwt"
)

const sessionKeyPrefix = "session:"

type sessionRecord struct {
	UserID   int64     `json:"userId"`
	IssuedAt time.Time `json:"issuedAt"`
}

func sessionKey(sid string) string {
	return sessionKeyPrefix + sid
}

// SessionService issues, resolves and revokes login sessions.
// A signed token is only honoured while its session id exists in the cache.
type SessionService struct {
	users    user.Repository
	cache    cache.Cache
	tokens   *jwt.Manager
	boundary *database.Boundary
	now      func() time.Time
}

func NewSessionService(users user.Repository, c cache.Cache, tokens *jwt.Manager, boundary *database.Boundary) *SessionService {
	return &SessionService{
		users:    users,
		cache:    c,
		tokens:   tokens,
		boundary: boundary,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ========================================
// LOGIN / LOGOUT
// ========================================

func (s *SessionService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	// 1. VALIDATE INPUT
	if err := apperror.FromValidation(req.Validate()); err != nil {
		return nil, err
	}

	// 2. FIND USER
	u, err := database.Read(ctx, s.boundary, "users.find_by_username", func(ctx context.Context) (*user.User, error) {
		return s.users.FindByUsername(ctx, req.Username)
	})
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, toAppError(user.ErrInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}

	// 3. VERIFY PASSWORD
	if err := verifyPassword(u.PasswordHash, req.Password); err != nil {
		return nil, toAppError(err)
	}

	// 4. CHECK STATUS
	if !u.IsActive() {
		log.Warn().Int64("user_id", u.ID).Msg("[SessionService] Suspended user attempted login")
		return nil, apperror.Forbidden()
	}

	// 5. ISSUE SESSION
	sid := uuid.NewString()
	token, expiresAt, err := s.tokens.GenerateSessionToken(u.ID, sid)
	if err != nil {
		return nil, apperror.Internal("issue session", err)
	}

	record := sessionRecord{UserID: u.ID, IssuedAt: s.now()}
	if err := s.cache.Set(ctx, sessionKey(sid), record, s.tokens.TTL()); err != nil {
		return nil, apperror.Unavailable(err)
	}

	// 6. STAMP LAST LOGIN
	loginAt := s.now()
	err = database.Exec(ctx, s.boundary, "users.touch_last_login", func(ctx context.Context) error {
		return s.users.TouchLastLogin(ctx, u.ID, loginAt)
	})
	if err != nil {
		_ = s.cache.Delete(ctx, sessionKey(sid))
		return nil, toAppError(err)
	}
	u.LastLoginAt = &loginAt

	log.Info().Int64("user_id", u.ID).Str("sid", sid).Msg("[SessionService] Login succeeded")

	return &user.LoginResponse{Token: token, ExpiresAt: expiresAt, User: u}, nil
}

// Logout revokes the session behind token. Unknown or invalid tokens are a no-op.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil
	}

	if err := s.cache.Delete(ctx, sessionKey(claims.SessionID)); err != nil {
		return apperror.Unavailable(err)
	}

	log.Info().Int64("user_id", claims.UserID).Str("sid", claims.SessionID).Msg("[SessionService] Logout")
	return nil
}

// ========================================
// SESSION RESOLUTION
// ========================================

// ResolveSession returns the caller for a token. Role and status are read
// from the user row on every request so demotion or suspension applies at once.
func (s *SessionService) ResolveSession(ctx context.Context, token string) (access.Caller, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return access.AnonymousCaller, user.ErrSessionInvalid
	}

	var record sessionRecord
	found, err := s.cache.Get(ctx, sessionKey(claims.SessionID), &record)
	if err != nil {
		return access.AnonymousCaller, apperror.Unavailable(err)
	}
	if !found || record.UserID != claims.UserID {
		return access.AnonymousCaller, user.ErrSessionInvalid
	}

	u, err := database.Read(ctx, s.boundary, "users.find_by_id", func(ctx context.Context) (*user.User, error) {
		return s.users.FindByID(ctx, claims.UserID)
	})
	if errors.Is(err, user.ErrUserNotFound) {
		return access.AnonymousCaller, user.ErrSessionInvalid
	}
	if err != nil {
		return access.AnonymousCaller, err
	}
	if !u.IsActive() {
		return access.AnonymousCaller, user.ErrSessionInvalid
	}

	return access.SessionCaller(u.ID, u.IsAdmin), nil
}

// CurrentAdmin returns the account behind an admin caller
func (s *SessionService) CurrentAdmin(ctx context.Context, caller access.Caller) (*user.User, error) {
	if err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}

	u, err := database.Read(ctx, s.boundary, "users.find_by_id", func(ctx context.Context) (*user.User, error) {
		return s.users.FindByID(ctx, caller.UserID)
	})
	return u, toAppError(err)
}
