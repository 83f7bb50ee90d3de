package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"streamhub-backend/internal/domains/catalog"
	"streamhub-backend/pkg/database"
)

const seriesColumns = `id, title, description, poster, banner, genre, status,
	created_by, updated_by, version, created_at, updated_at`

type seriesRepository struct {
	db database.DBTX
}

func (r *seriesRepository) Create(ctx context.Context, s *catalog.Series) error {
	query := `
		INSERT INTO series (title, description, poster, banner, genre, status, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id, version, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		s.Title, s.Description, s.Poster, s.Banner, s.Genre,
		s.Status, s.CreatedBy, s.UpdatedBy, s.CreatedAt,
	).Scan(&s.ID, &s.Version, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert series: %w", err)
	}
	return nil
}

func (r *seriesRepository) FindByID(ctx context.Context, id int64) (*catalog.Series, error) {
	query := `SELECT ` + seriesColumns + ` FROM series WHERE id = $1`

	s, err := scanSeries(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, catalog.ErrSeriesNotFound
	}
	return s, err
}

func (r *seriesRepository) LockByID(ctx context.Context, id int64) (*catalog.Series, error) {
	query := `SELECT ` + seriesColumns + ` FROM series WHERE id = $1 FOR UPDATE`

	s, err := scanSeries(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, catalog.ErrSeriesNotFound
	}
	return s, err
}

func (r *seriesRepository) List(ctx context.Context, publishedOnly bool) ([]*catalog.Series, error) {
	query := `SELECT ` + seriesColumns + ` FROM series`
	args := []any{}
	if publishedOnly {
		query += ` WHERE status = $1`
		args = append(args, catalog.StatusPublished)
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query series: %w", err)
	}
	defer rows.Close()

	result := make([]*catalog.Series, 0)
	for rows.Next() {
		s, err := scanSeries(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate series: %w", err)
	}
	return result, nil
}

// UpdateStatus stamps status, updated_by, a strictly later updated_at and bumps version.
func (r *seriesRepository) UpdateStatus(ctx context.Context, id int64, change catalog.StatusChange) (*catalog.Series, error) {
	query := `
		UPDATE series
		SET status = $2,
		    updated_by = $3,
		    updated_at = GREATEST($4, updated_at + INTERVAL '1 microsecond'),
		    version = version + 1
		WHERE id = $1 AND ($5::int IS NULL OR version = $5)
		RETURNING ` + seriesColumns

	s, err := scanSeries(r.db.QueryRow(ctx, query, id, change.Status, change.UpdatedBy, change.At, change.ExpectedVersion))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.missOrConflict(ctx, id)
	}
	return s, err
}

// Delete fails with ErrSeriesHasEpisodes while episodes still reference the row
func (r *seriesRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM series WHERE id = $1`, id)
	if err != nil {
		if code, _ := database.PgErrorCode(err); code == database.PgForeignKeyViolation {
			return catalog.ErrSeriesHasEpisodes
		}
		return fmt.Errorf("delete series: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrSeriesNotFound
	}
	return nil
}

func (r *seriesRepository) missOrConflict(ctx context.Context, id int64) error {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM series WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check series exists: %w", err)
	}
	if exists {
		return catalog.ErrVersionMismatch
	}
	return catalog.ErrSeriesNotFound
}

func scanSeries(row pgx.Row) (*catalog.Series, error) {
	s := &catalog.Series{}
	err := row.Scan(
		&s.ID, &s.Title, &s.Description, &s.Poster, &s.Banner, &s.Genre, &s.Status,
		&s.CreatedBy, &s.UpdatedBy, &s.Version, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan series: %w", err)
	}
	return s, nil
}
