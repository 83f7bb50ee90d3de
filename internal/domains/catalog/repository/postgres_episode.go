package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"streamhub-backend/internal/domains/catalog"
	"streamhub-backend/pkg/database"
)

const episodeColumns = `id, series_id, number, title, video_url, status,
	created_by, updated_by, version, created_at, updated_at`

const (
	constraintEpisodeSeriesFK = "episodes_series_id_fkey"
	constraintEpisodeNumber   = "uq_episodes_series_number"
)

type episodeRepository struct {
	db database.DBTX
}

func (r *episodeRepository) Create(ctx context.Context, e *catalog.Episode) error {
	query := `
		INSERT INTO episodes (series_id, number, title, video_url, status, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id, version, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		e.SeriesID, e.Number, e.Title, e.VideoURL, e.Status,
		e.CreatedBy, e.UpdatedBy, e.CreatedAt,
	).Scan(&e.ID, &e.Version, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		switch code, constraint := database.PgErrorCode(err); {
		case code == database.PgUniqueViolation && constraint == constraintEpisodeNumber:
			return catalog.ErrDuplicateEpisodeNumber
		case code == database.PgForeignKeyViolation && constraint == constraintEpisodeSeriesFK:
			return catalog.ErrSeriesMissing
		}
		return fmt.Errorf("insert episode: %w", err)
	}
	return nil
}

func (r *episodeRepository) FindByID(ctx context.Context, id int64) (*catalog.Episode, error) {
	query := `SELECT ` + episodeColumns + ` FROM episodes WHERE id = $1`

	e, err := scanEpisode(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, catalog.ErrEpisodeNotFound
	}
	return e, err
}

func (r *episodeRepository) ListBySeries(ctx context.Context, seriesID int64, publishedOnly bool) ([]*catalog.Episode, error) {
	query := `SELECT ` + episodeColumns + ` FROM episodes WHERE series_id = $1`
	args := []any{seriesID}
	if publishedOnly {
		query += ` AND status = $2`
		args = append(args, catalog.StatusPublished)
	}
	query += ` ORDER BY number ASC`

	return r.list(ctx, query, args...)
}

func (r *episodeRepository) ListAll(ctx context.Context) ([]*catalog.Episode, error) {
	query := `SELECT ` + episodeColumns + ` FROM episodes ORDER BY series_id ASC, number ASC`
	return r.list(ctx, query)
}

func (r *episodeRepository) UpdateStatus(ctx context.Context, id int64, change catalog.StatusChange) (*catalog.Episode, error) {
	query := `
		UPDATE episodes
		SET status = $2,
		    updated_by = $3,
		    updated_at = GREATEST($4, updated_at + INTERVAL '1 microsecond'),
		    version = version + 1
		WHERE id = $1 AND ($5::int IS NULL OR version = $5)
		RETURNING ` + episodeColumns

	e, err := scanEpisode(r.db.QueryRow(ctx, query, id, change.Status, change.UpdatedBy, change.At, change.ExpectedVersion))
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM episodes WHERE id = $1)`, id).Scan(&exists); err != nil {
			return nil, fmt.Errorf("check episode exists: %w", err)
		}
		if exists {
			return nil, catalog.ErrVersionMismatch
		}
		return nil, catalog.ErrEpisodeNotFound
	}
	return e, err
}

func (r *episodeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM episodes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete episode: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrEpisodeNotFound
	}
	return nil
}

func (r *episodeRepository) DeleteBySeries(ctx context.Context, seriesID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM episodes WHERE series_id = $1`, seriesID)
	if err != nil {
		return 0, fmt.Errorf("delete episodes of series: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *episodeRepository) list(ctx context.Context, query string, args ...any) ([]*catalog.Episode, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query episodes: %w", err)
	}
	defer rows.Close()

	result := make([]*catalog.Episode, 0)
	for rows.Next() {
		e, err := scanEpisode(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate episodes: %w", err)
	}
	return result, nil
}

func scanEpisode(row pgx.Row) (*catalog.Episode, error) {
	e := &catalog.Episode{}
	err := row.Scan(
		&e.ID, &e.SeriesID, &e.Number, &e.Title, &e.VideoURL, &e.Status,
		&e.CreatedBy, &e.UpdatedBy, &e.Version, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan episode: %w", err)
	}
	return e, nil
}
