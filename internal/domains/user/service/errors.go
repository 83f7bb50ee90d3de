package service

import (
	"errors"

	"streamhub-backend/internal/domains/user"
	"streamhub-backend/internal/shared/apperror"
)

// toAppError maps repository sentinels onto the application taxonomy.
// Anything already classified by the store boundary passes through.
func toAppError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, user.ErrUserNotFound):
		return apperror.NotFound("USER_NOT_FOUND", "User not found")
	case errors.Is(err, user.ErrUsernameTaken):
		return apperror.FieldError("username", "username already exists")
	case errors.Is(err, user.ErrInvalidCredentials):
		return apperror.Unauthorized("Invalid username or password")
	case errors.Is(err, user.ErrSessionInvalid):
		return apperror.Unauthorized("Session is invalid or expired")
	}
	return err
}
