package catalog

import "context"

// ========================================
// REPOSITORY INTERFACES
// ========================================

type SeriesRepository interface {
	// Create assigns ID, version and timestamps on s
	Create(ctx context.Context, s *Series) error
	FindByID(ctx context.Context, id int64) (*Series, error)
	// LockByID is FindByID holding a row lock until the transaction ends;
	// episode inserts for the series wait on it
	LockByID(ctx context.Context, id int64) (*Series, error)
	// List returns series ordered by id; publishedOnly hides drafts
	List(ctx context.Context, publishedOnly bool) ([]*Series, error)
	// UpdateStatus returns ErrVersionMismatch when ExpectedVersion is stale
	UpdateStatus(ctx context.Context, id int64, change StatusChange) (*Series, error)
	Delete(ctx context.Context, id int64) error
}

type EpisodeRepository interface {
	// Create returns ErrSeriesMissing or ErrDuplicateEpisodeNumber on constraint failure
	Create(ctx context.Context, e *Episode) error
	FindByID(ctx context.Context, id int64) (*Episode, error)
	// ListBySeries is ordered by number ascending
	ListBySeries(ctx context.Context, seriesID int64, publishedOnly bool) ([]*Episode, error)
	// ListAll is ordered by series id, then number
	ListAll(ctx context.Context) ([]*Episode, error)
	UpdateStatus(ctx context.Context, id int64, change StatusChange) (*Episode, error)
	Delete(ctx context.Context, id int64) error
	DeleteBySeries(ctx context.Context, seriesID int64) (int64, error)
}

// Store groups the catalog repositories and their transaction scope
type Store interface {
	Series() SeriesRepository
	Episodes() EpisodeRepository
	// WithTx runs fn against a store bound to one transaction.
	// Any error returned by fn rolls back every write made through tx.
	WithTx(ctx context.Context, fn func(tx Store) error) error
}
