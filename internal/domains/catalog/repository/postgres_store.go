package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"streamhub-backend/internal/domains/catalog"
	"streamhub-backend/pkg/database"
)

// postgresStore binds the catalog repositories to a pool or to one transaction
type postgresStore struct {
	pool *pgxpool.Pool // nil inside a transaction
	db   database.DBTX
}

func NewPostgresStore(pool *pgxpool.Pool) catalog.Store {
	return &postgresStore{pool: pool, db: pool}
}

func (s *postgresStore) Series() catalog.SeriesRepository {
	return &seriesRepository{db: s.db}
}

func (s *postgresStore) Episodes() catalog.EpisodeRepository {
	return &episodeRepository{db: s.db}
}

// WithTx nests by reusing the current transaction
func (s *postgresStore) WithTx(ctx context.Context, fn func(tx catalog.Store) error) error {
	if s.pool == nil {
		return fn(s)
	}

	return database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(&postgresStore{db: tx})
	})
}
