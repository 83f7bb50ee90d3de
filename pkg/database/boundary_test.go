package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamhub-backend/internal/shared/apperror"
)

func TestClassify(t *testing.T) {
	sentinel := errors.New("row not found")
	notFound := apperror.NotFound("X_NOT_FOUND", "missing")

	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"deadline", context.DeadlineExceeded, apperror.IsTimeout},
		{"wrapped deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), apperror.IsTimeout},
		{"unavailable sentinel", ErrUnavailable, apperror.IsUnavailable},
		{"connect error", &pgconn.ConnectError{}, apperror.IsUnavailable},
		{"app error passes through", notFound, apperror.IsNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(Classify(tt.err)))
		})
	}

	assert.Nil(t, Classify(nil))
	assert.Same(t, sentinel, Classify(sentinel))
}

func TestRead_RetriesOnceOnTransientFailure(t *testing.T) {
	b := NewBoundary(time.Second)
	calls := 0

	got, err := Read(context.Background(), b, "test.read", func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", ErrUnavailable
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 2, calls)
}

func TestRead_GivesUpAfterSecondFailure(t *testing.T) {
	b := NewBoundary(time.Second)
	calls := 0

	_, err := Read(context.Background(), b, "test.read", func(ctx context.Context) (int, error) {
		calls++
		return 0, context.DeadlineExceeded
	})

	assert.True(t, apperror.IsTimeout(err))
	assert.Equal(t, 2, calls)
}

func TestRead_DoesNotRetryDomainErrors(t *testing.T) {
	b := NewBoundary(time.Second)
	calls := 0
	sentinel := errors.New("not found")

	_, err := Read(context.Background(), b, "test.read", func(ctx context.Context) (int, error) {
		calls++
		return 0, sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}

func TestWrite_NeverRetries(t *testing.T) {
	b := NewBoundary(time.Second)
	calls := 0

	err := Exec(context.Background(), b, "test.write", func(ctx context.Context) error {
		calls++
		return ErrUnavailable
	})

	assert.True(t, apperror.IsUnavailable(err))
	assert.Equal(t, 1, calls)
}

func TestCall_AppliesDeadline(t *testing.T) {
	b := NewBoundary(20 * time.Millisecond)

	err := Exec(context.Background(), b, "test.slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	assert.True(t, apperror.IsTimeout(err))
}

func TestNewBoundary_DefaultTimeout(t *testing.T) {
	assert.Equal(t, DefaultTimeout, NewBoundary(0).Timeout())
	assert.Equal(t, time.Second, NewBoundary(time.Second).Timeout())
}
