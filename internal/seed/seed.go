// Package seed populates a fresh database with an admin account and a small
// sample catalog. It is only ever run on demand from catalogctl.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"streamhub-backend/internal/domains/catalog"
	"streamhub-backend/internal/domains/user"
	"streamhub-backend/internal/shared/access"
	"streamhub-backend/internal/shared/apperror"
)

// UserService là phần của user service mà seeder cần
type UserService interface {
	CreateAdmin(ctx context.Context, in user.CreateAdminInput) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
}

// CatalogService là phần của lifecycle service mà seeder cần
type CatalogService interface {
	ListSeries(ctx context.Context, caller access.Caller) ([]*catalog.Series, error)
	CreateSeries(ctx context.Context, caller access.Caller, req catalog.CreateSeriesRequest) (*catalog.Series, error)
	UpdateSeriesStatus(ctx context.Context, caller access.Caller, id int64, req catalog.UpdateStatusRequest) (*catalog.Series, error)
	CreateEpisode(ctx context.Context, caller access.Caller, req catalog.CreateEpisodeRequest) (*catalog.Episode, error)
	UpdateEpisodeStatus(ctx context.Context, caller access.Caller, id int64, req catalog.UpdateStatusRequest) (*catalog.Episode, error)
}

var ErrNotAdmin = errors.New("seed: existing account is not an admin")

// Result tóm tắt những gì đã được tạo
type Result struct {
	AdminID        int64
	AdminCreated   bool
	SeriesCreated  int
	EpisodesAdded  int
	CatalogSkipped bool
}

type sampleSeries struct {
	series    catalog.CreateSeriesRequest
	published bool
	episodes  []string
}

var samples = []sampleSeries{
	{
		series: catalog.CreateSeriesRequest{
			Title:       "Spirit Blade",
			Description: "A disgraced swordsman is bound to a restless spirit and must finish its last duel.",
			Poster:      "https://cdn.streamhub.local/artwork/spirit-blade/poster.jpg",
			Banner:      "https://cdn.streamhub.local/artwork/spirit-blade/banner.jpg",
			Genre:       "Action",
		},
		published: true,
		episodes:  []string{"The Bound Sword", "Lanterns at Dusk", "Duel on the Bridge"},
	},
	{
		series: catalog.CreateSeriesRequest{
			Title:       "Harbor Lights",
			Description: "Three siblings inherit a failing lighthouse inn on a storm-bound coast.",
			Poster:      "https://cdn.streamhub.local/artwork/harbor-lights/poster.jpg",
			Banner:      "https://cdn.streamhub.local/artwork/harbor-lights/banner.jpg",
			Genre:       "Drama",
		},
		published: true,
		episodes:  []string{"Arrival", "The First Storm"},
	},
	{
		series: catalog.CreateSeriesRequest{
			Title:       "Orbit Academy",
			Description: "Cadets at a training station learn that the simulator is not a simulation.",
			Poster:      "https://cdn.streamhub.local/artwork/orbit-academy/poster.jpg",
			Banner:      "https://cdn.streamhub.local/artwork/orbit-academy/banner.jpg",
			Genre:       "Sci-Fi",
		},
		episodes: []string{"Orientation"},
	},
}

// Seeder creates the admin account and sample catalog
type Seeder struct {
	users   UserService
	catalog CatalogService
}

func New(users UserService, catalogSvc CatalogService) *Seeder {
	return &Seeder{users: users, catalog: catalogSvc}
}

// Run is idempotent: an existing admin is reused and a non-empty catalog is left untouched.
func (s *Seeder) Run(ctx context.Context, admin user.CreateAdminInput) (*Result, error) {
	result := &Result{}

	// 1. ADMIN
	adminUser, created, err := s.ensureAdmin(ctx, admin)
	if err != nil {
		return nil, err
	}
	result.AdminID = adminUser.ID
	result.AdminCreated = created
	caller := access.SessionCaller(adminUser.ID, true)

	// 2. CATALOG
	existing, err := s.catalog.ListSeries(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	if len(existing) > 0 {
		log.Info().Int("series", len(existing)).Msg("[Seed] Catalog not empty, skipping sample data")
		result.CatalogSkipped = true
		return result, nil
	}

	for _, sample := range samples {
		added, err := s.seedSeries(ctx, caller, sample)
		if err != nil {
			return nil, err
		}
		result.SeriesCreated++
		result.EpisodesAdded += added
	}

	log.Info().
		Int64("admin_id", result.AdminID).
		Int("series", result.SeriesCreated).
		Int("episodes", result.EpisodesAdded).
		Msg("[Seed] Sample catalog created")

	return result, nil
}

func (s *Seeder) ensureAdmin(ctx context.Context, in user.CreateAdminInput) (*user.User, bool, error) {
	existing, err := s.users.FindByUsername(ctx, in.Username)
	switch {
	case err == nil:
		if !existing.IsAdmin {
			return nil, false, fmt.Errorf("%w: %s", ErrNotAdmin, in.Username)
		}
		return existing, false, nil
	case apperror.IsNotFound(err):
	default:
		return nil, false, fmt.Errorf("find admin: %w", err)
	}

	created, err := s.users.CreateAdmin(ctx, in)
	if err != nil {
		return nil, false, fmt.Errorf("create admin: %w", err)
	}
	return created, true, nil
}

// seedSeries tạo series + episodes ở trạng thái draft rồi publish nếu cần
func (s *Seeder) seedSeries(ctx context.Context, caller access.Caller, sample sampleSeries) (int, error) {
	series, err := s.catalog.CreateSeries(ctx, caller, sample.series)
	if err != nil {
		return 0, fmt.Errorf("create series %q: %w", sample.series.Title, err)
	}

	publish := catalog.UpdateStatusRequest{Status: catalog.StatusPublished}

	for i, title := range sample.episodes {
		episode, err := s.catalog.CreateEpisode(ctx, caller, catalog.CreateEpisodeRequest{
			SeriesID: series.ID,
			Number:   i + 1,
			Title:    title,
			VideoURL: fmt.Sprintf("https://video.streamhub.local/series/%d/episodes/%d.m3u8", series.ID, i+1),
		})
		if err != nil {
			return 0, fmt.Errorf("create episode %d of %q: %w", i+1, sample.series.Title, err)
		}

		if sample.published {
			if _, err := s.catalog.UpdateEpisodeStatus(ctx, caller, episode.ID, publish); err != nil {
				return 0, fmt.Errorf("publish episode %d: %w", episode.ID, err)
			}
		}
	}

	if sample.published {
		if _, err := s.catalog.UpdateSeriesStatus(ctx, caller, series.ID, publish); err != nil {
			return 0, fmt.Errorf("publish series %d: %w", series.ID, err)
		}
	}

	return len(sample.episodes), nil
}
