package database

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"streamhub-backend/internal/shared/apperror"
)

// ErrUnavailable is returned by store implementations that cannot reach their backend.
var ErrUnavailable = errors.New("store unavailable")

// DefaultTimeout applies when a Boundary is built with a non-positive timeout.
const DefaultTimeout = 5 * time.Second

// ============================================
// STORE BOUNDARY
// ============================================

// Boundary wraps every store call with a per-call deadline and
// translates driver failures into Timeout / Unavailable errors.
// Reads are retried once on a transient failure, writes never.
type Boundary struct {
	timeout time.Duration
}

func NewBoundary(timeout time.Duration) *Boundary {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Boundary{timeout: timeout}
}

func (b *Boundary) Timeout() time.Duration {
	return b.timeout
}

// Read executes an idempotent store call.
func Read[T any](ctx context.Context, b *Boundary, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	result, err := call(ctx, b, op, fn)
	if err == nil || !isTransient(err) || ctx.Err() != nil {
		return result, err
	}

	log.Warn().Err(err).Str("op", op).Msg("[StoreBoundary] retrying read once")
	return call(ctx, b, op, fn)
}

// Write executes a mutating store call exactly once.
func Write[T any](ctx context.Context, b *Boundary, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	return call(ctx, b, op, fn)
}

// Exec is Write for calls without a result.
func Exec(ctx context.Context, b *Boundary, op string, fn func(ctx context.Context) error) error {
	_, err := Write(ctx, b, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

func call[T any](ctx context.Context, b *Boundary, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	callCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	result, err := fn(callCtx)
	if err == nil {
		return result, nil
	}

	classified := Classify(err)
	if apperror.IsTimeout(classified) || apperror.IsUnavailable(classified) {
		log.Error().Err(err).Str("op", op).Msg("[StoreBoundary] store call failed")
	}

	var zero T
	return zero, classified
}

// Classify maps a raw store error to the application error taxonomy.
// Errors that already carry a kind, and domain sentinels, pass through untouched.
func Classify(err error) error {
	if err == nil || apperror.IsAppError(err) {
		return err
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded), pgconn.Timeout(err):
		return apperror.Timeout(err)
	case errors.Is(err, ErrUnavailable), isConnectionFailure(err):
		return apperror.Unavailable(err)
	}

	return err
}

func isTransient(err error) bool {
	return apperror.IsTimeout(err) || apperror.IsUnavailable(err)
}

func isConnectionFailure(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return pgconn.SafeToRetry(err)
}
