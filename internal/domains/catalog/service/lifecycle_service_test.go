package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamhub-backend/internal/domains/catalog"
	"streamhub-backend/internal/domains/catalog/repository"
	"streamhub-backend/internal/shared/access"
	"streamhub-backend/internal/shared/apperror"
	"streamhub-backend/pkg/database"
)

type fakeActors struct {
	ids map[int64]bool
}

func (f *fakeActors) Exists(ctx context.Context, id int64) (bool, error) {
	return f.ids[id], nil
}

const adminID int64 = 1

var (
	adminCaller = access.SessionCaller(adminID, true)
	viewer      = access.SessionCaller(2, false)
)

func newService(t *testing.T, mode access.ReadMode) (*LifecycleService, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	actors := &fakeActors{ids: map[int64]bool{adminID: true, 2: true}}
	svc := NewLifecycleService(store, actors, access.ReadPolicy{Mode: mode}, database.NewBoundary(time.Second))
	return svc, store
}

func spiritBlade() catalog.CreateSeriesRequest {
	return catalog.CreateSeriesRequest{
		Title:       "Spirit Blade",
		Description: "A swordsman bound to a restless spirit.",
		Poster:      "https://cdn.example.com/spirit-blade/poster.jpg",
		Banner:      "https://cdn.example.com/spirit-blade/banner.jpg",
		Genre:       "Action",
	}
}

func createSeries(t *testing.T, svc *LifecycleService) *catalog.Series {
	t.Helper()
	s, err := svc.CreateSeries(context.Background(), adminCaller, spiritBlade())
	require.NoError(t, err)
	return s
}

func createEpisode(t *testing.T, svc *LifecycleService, seriesID int64, number int) *catalog.Episode {
	t.Helper()
	e, err := svc.CreateEpisode(context.Background(), adminCaller, catalog.CreateEpisodeRequest{
		SeriesID: seriesID,
		Number:   number,
		Title:    "Episode",
		VideoURL: "https://video.example.com/embed/x",
	})
	require.NoError(t, err)
	return e
}

type snapshot struct {
	series   []*catalog.Series
	episodes []*catalog.Episode
}

func takeSnapshot(t *testing.T, store *repository.MemoryStore) snapshot {
	t.Helper()
	ctx := context.Background()
	series, err := store.Series().List(ctx, false)
	require.NoError(t, err)
	episodes, err := store.Episodes().ListAll(ctx)
	require.NoError(t, err)
	return snapshot{series: series, episodes: episodes}
}

// ============================================
// CREATE
// ============================================

func TestCreateSeries_StartsAsDraftStampedByCaller(t *testing.T) {
	svc, _ := newService(t, access.ReadPublic)

	s := createSeries(t, svc)

	assert.Equal(t, catalog.StatusDraft, s.Status)
	assert.Equal(t, adminID, s.CreatedBy)
	assert.Equal(t, adminID, s.UpdatedBy)
	assert.Equal(t, 1, s.Version)
	assert.False(t, s.CreatedAt.IsZero())
	assert.Equal(t, s.CreatedAt, s.UpdatedAt)
}

func TestCreateSeries_ValidationReportsFields(t *testing.T) {
	svc, store := newService(t, access.ReadPublic)

	req := spiritBlade()
	req.Title = "   "
	req.Genre = ""

	_, err := svc.CreateSeries(context.Background(), adminCaller, req)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "title")
	assert.Contains(t, appErr.Fields, "genre")
	assert.Empty(t, takeSnapshot(t, store).series)
}

func TestCreateSeries_UnknownActor(t *testing.T) {
	svc, store := newService(t, access.ReadPublic)

	_, err := svc.CreateSeries(context.Background(), access.SessionCaller(99, true), spiritBlade())

	assert.True(t, apperror.IsValidation(err))
	assert.Empty(t, takeSnapshot(t, store).series)
}

func TestCreateEpisode_NonexistentSeries(t *testing.T) {
	svc, store := newService(t, access.ReadPublic)

	_, err := svc.CreateEpisode(context.Background(), adminCaller, catalog.CreateEpisodeRequest{
		SeriesID: 404, Number: 1, Title: "Pilot", VideoURL: "https://video.example.com/1",
	})

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "seriesId")
	assert.Empty(t, takeSnapshot(t, store).episodes)
}

func TestCreateEpisode_NumberMustBePositiveAndUnique(t *testing.T) {
	svc, _ := newService(t, access.ReadPublic)
	s := createSeries(t, svc)
	createEpisode(t, svc, s.ID, 1)

	for _, number := range []int{0, -1, 1} {
		_, err := svc.CreateEpisode(context.Background(), adminCaller, catalog.CreateEpisodeRequest{
			SeriesID: s.ID, Number: number, Title: "Dup", VideoURL: "https://video.example.com/2",
		})

		var appErr *apperror.Error
		require.ErrorAs(t, err, &appErr, "number %d", number)
		assert.Contains(t, appErr.Fields, "number")
	}
}

func TestCreateEpisode_StartsAsDraft(t *testing.T) {
	svc, _ := newService(t, access.ReadPublic)
	s := createSeries(t, svc)

	e := createEpisode(t, svc, s.ID, 1)

	assert.Equal(t, catalog.StatusDraft, e.Status)
	assert.Equal(t, adminID, e.CreatedBy)
	assert.Equal(t, adminID, e.UpdatedBy)
}

// ============================================
// STATUS TRANSITIONS
// ============================================

func TestUpdateSeriesStatus_PublishFlow(t *testing.T) {
	svc, _ := newService(t, access.ReadPublic)
	ctx := context.Background()
	s := createSeries(t, svc)

	other := access.SessionCaller(2, true)
	published, err := svc.UpdateSeriesStatus(ctx, other, s.ID, catalog.UpdateStatusRequest{Status: catalog.StatusPublished})
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusPublished, published.Status)
	assert.Equal(t, int64(2), published.UpdatedBy)
	assert.Equal(t, adminID, published.CreatedBy)
	assert.True(t, published.UpdatedAt.After(s.UpdatedAt))

	back, err := svc.UpdateSeriesStatus(ctx, adminCaller, s.ID, catalog.UpdateStatusRequest{Status: catalog.StatusDraft})
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusDraft, back.Status)
	assert.Equal(t, adminID, back.UpdatedBy)
	assert.True(t, back.UpdatedAt.After(published.UpdatedAt))
}

func TestUpdateSeriesStatus_UpdatedAtStrictlyIncreasesWithFrozenClock(t *testing.T) {
	svc, _ := newService(t, access.ReadPublic)
	frozen := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return frozen }
	s := createSeries(t, svc)

	previous := s.UpdatedAt
	for i := 0; i < 5; i++ {
		status := catalog.StatusPublished
		if i%2 == 1 {
			status = catalog.StatusDraft
		}
		updated, err := svc.UpdateSeriesStatus(context.Background(), adminCaller, s.ID, catalog.UpdateStatusRequest{Status: status})
		require.NoError(t, err)
		assert.True(t, updated.UpdatedAt.After(previous))
		previous = updated.UpdatedAt
	}
}

func TestUpdateSeriesStatus_Errors(t *testing.T) {
	svc, _ := newService(t, access.ReadPublic)
	ctx := context.Background()
	s := createSeries(t, svc)

	_, err := svc.UpdateSeriesStatus(ctx, adminCaller, s.ID, catalog.UpdateStatusRequest{Status: "archived"})
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.UpdateSeriesStatus(ctx, adminCaller, 999, catalog.UpdateStatusRequest{Status: catalog.StatusPublished})
	assert.True(t, apperror.IsNotFound(err))

	_, err = svc.UpdateSeriesStatus(ctx, access.SessionCaller(77, true), s.ID, catalog.UpdateStatusRequest{Status: catalog.StatusPublished})
	assert.True(t, apperror.IsValidation(err))
}

func TestUpdateSeriesStatus_ExpectedVersion(t *testing.T) {
	svc, _ := newService(t, access.ReadPublic)
	ctx := context.Background()
	s := createSeries(t, svc)

	v := s.Version
	updated, err := svc.UpdateSeriesStatus(ctx, adminCaller, s.ID, catalog.UpdateStatusRequest{Status: catalog.StatusPublished, ExpectedVersion: &v})
	require.NoError(t, err)
	assert.Equal(t, v+1, updated.Version)

	_, err = svc.UpdateSeriesStatus(ctx, adminCaller, s.ID, catalog.UpdateStatusRequest{Status: catalog.StatusDraft, ExpectedVersion: &v})
	assert.True(t, apperror.IsConflict(err))

	current, err := svc.GetSeries(ctx, adminCaller, s.ID)
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusPublished, current.Status)
}

func TestUpdateEpisodeStatus(t *testing.T) {
	svc, _ := newService(t, access.ReadPublic)
	ctx := context.Background()
	s := createSeries(t, svc)
	e := createEpisode(t, svc, s.ID, 1)

	updated, err := svc.UpdateEpisodeStatus(ctx, adminCaller, e.ID, catalog.UpdateStatusRequest{Status: catalog.StatusPublished})
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusPublished, updated.Status)
	assert.True(t, updated.UpdatedAt.After(e.UpdatedAt))

	_, err = svc.UpdateEpisodeStatus(ctx, adminCaller, 999, catalog.UpdateStatusRequest{Status: catalog.StatusPublished})
	assert.True(t, apperror.IsNotFound(err))
}

// ============================================
// DELETE
// ============================================

func TestDeleteSeries_CascadesToEpisodes(t *testing.T) {
	svc, store := newService(t, access.ReadPublic)
	ctx := context.Background()
	keep := createSeries(t, svc)
	doomed := createSeries(t, svc)
	createEpisode(t, svc, keep.ID, 1)
	for n := 1; n <= 3; n++ {
		createEpisode(t, svc, doomed.ID, n)
	}

	require.NoError(t, svc.DeleteSeries(ctx, adminCaller, doomed.ID))

	snap := takeSnapshot(t, store)
	require.Len(t, snap.series, 1)
	assert.Equal(t, keep.ID, snap.series[0].ID)
	for _, e := range snap.episodes {
		assert.NotEqual(t, doomed.ID, e.SeriesID)
	}
	assert.Len(t, snap.episodes, 1)

	err := svc.DeleteSeries(ctx, adminCaller, doomed.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteSeries_FailureMidCascadeRollsBack(t *testing.T) {
	svc, store := newService(t, access.ReadPublic)
	ctx := context.Background()
	s := createSeries(t, svc)
	for n := 1; n <= 3; n++ {
		createEpisode(t, svc, s.ID, n)
	}
	before := takeSnapshot(t, store)

	// episodes are already gone when the series delete fails
	store.FailNext("series.delete", database.ErrUnavailable)

	err := svc.DeleteSeries(ctx, adminCaller, s.ID)
	assert.True(t, apperror.IsUnavailable(err))
	assert.Equal(t, 1, store.Calls("episodes.delete_by_series"))
	assert.Equal(t, before, takeSnapshot(t, store))
}

func TestDeleteSeries_LocksSeriesBeforeRemovingEpisodes(t *testing.T) {
	svc, store := newService(t, access.ReadPublic)
	ctx := context.Background()
	s := createSeries(t, svc)
	createEpisode(t, svc, s.ID, 1)
	before := takeSnapshot(t, store)

	store.FailNext("series.lock", database.ErrUnavailable)

	err := svc.DeleteSeries(ctx, adminCaller, s.ID)
	assert.True(t, apperror.IsUnavailable(err))
	assert.Zero(t, store.Calls("episodes.delete_by_series"))
	assert.Equal(t, before, takeSnapshot(t, store))

	require.NoError(t, svc.DeleteSeries(ctx, adminCaller, s.ID))
	assert.Equal(t, 2, store.Calls("series.lock"))
	assert.Empty(t, takeSnapshot(t, store).episodes)
}

func TestDeleteSeries_UnclassifiedFailureSurfacesUnavailable(t *testing.T) {
	svc, store := newService(t, access.ReadPublic)
	s := createSeries(t, svc)
	createEpisode(t, svc, s.ID, 1)
	before := takeSnapshot(t, store)

	store.FailNext("episodes.delete_by_series", errors.New("disk full"))

	err := svc.DeleteSeries(context.Background(), adminCaller, s.ID)
	assert.True(t, apperror.IsUnavailable(err))
	assert.Equal(t, before, takeSnapshot(t, store))
}

func TestDeleteEpisode_NoCascade(t *testing.T) {
	svc, store := newService(t, access.ReadPublic)
	ctx := context.Background()
	s := createSeries(t, svc)
	e1 := createEpisode(t, svc, s.ID, 1)
	createEpisode(t, svc, s.ID, 2)

	require.NoError(t, svc.DeleteEpisode(ctx, adminCaller, e1.ID))

	snap := takeSnapshot(t, store)
	assert.Len(t, snap.series, 1)
	assert.Len(t, snap.episodes, 1)

	assert.True(t, apperror.IsNotFound(svc.DeleteEpisode(ctx, adminCaller, e1.ID)))
}

// ============================================
// ACCESS GUARD
// ============================================

func TestMutationsWithoutAdmin_AreForbiddenAndChangeNothing(t *testing.T) {
	svc, store := newService(t, access.ReadPublic)
	ctx := context.Background()
	s := createSeries(t, svc)
	e := createEpisode(t, svc, s.ID, 1)

	callers := map[string]access.Caller{
		"anonymous": access.AnonymousCaller,
		"viewer":    viewer,
		"api key":   {ViaAPIKey: true},
	}

	for name, caller := range callers {
		t.Run(name, func(t *testing.T) {
			before := takeSnapshot(t, store)

			ops := map[string]error{}
			_, ops["create series"] = svc.CreateSeries(ctx, caller, spiritBlade())
			_, ops["update series"] = svc.UpdateSeriesStatus(ctx, caller, s.ID, catalog.UpdateStatusRequest{Status: catalog.StatusPublished})
			ops["delete series"] = svc.DeleteSeries(ctx, caller, s.ID)
			_, ops["create episode"] = svc.CreateEpisode(ctx, caller, catalog.CreateEpisodeRequest{
				SeriesID: s.ID, Number: 2, Title: "Two", VideoURL: "https://video.example.com/2",
			})
			_, ops["update episode"] = svc.UpdateEpisodeStatus(ctx, caller, e.ID, catalog.UpdateStatusRequest{Status: catalog.StatusPublished})
			ops["delete episode"] = svc.DeleteEpisode(ctx, caller, e.ID)

			for op, err := range ops {
				assert.True(t, apperror.IsForbidden(err), op)
			}
			assert.Equal(t, before, takeSnapshot(t, store))
		})
	}
}

// ============================================
// READS
// ============================================

func TestListEpisodes_SortedByNumberForAnyInsertionOrder(t *testing.T) {
	svc, _ := newService(t, access.ReadPublic)
	s := createSeries(t, svc)

	numbers := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	rand.New(rand.NewSource(7)).Shuffle(len(numbers), func(i, j int) { numbers[i], numbers[j] = numbers[j], numbers[i] })
	for _, n := range numbers {
		createEpisode(t, svc, s.ID, n)
	}

	episodes, err := svc.ListEpisodes(context.Background(), adminCaller, s.ID)
	require.NoError(t, err)
	require.Len(t, episodes, len(numbers))
	for i, e := range episodes {
		assert.Equal(t, i+1, e.Number)
	}
}

func TestListEpisodes_RequeryReflectsCurrentState(t *testing.T) {
	svc, _ := newService(t, access.ReadPublic)
	ctx := context.Background()
	s := createSeries(t, svc)
	createEpisode(t, svc, s.ID, 2)

	first, err := svc.ListEpisodes(ctx, adminCaller, s.ID)
	require.NoError(t, err)
	require.Len(t, first, 1)

	createEpisode(t, svc, s.ID, 1)
	first[0].Title = "mutated by caller"

	second, err := svc.ListEpisodes(ctx, adminCaller, s.ID)
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, 1, second[0].Number)
	assert.Equal(t, "Episode", second[1].Title)
}

func TestPublicReadMode_HidesDraftsFromAnonymous(t *testing.T) {
	svc, _ := newService(t, access.ReadPublic)
	ctx := context.Background()
	draft := createSeries(t, svc)
	live := createSeries(t, svc)
	_, err := svc.UpdateSeriesStatus(ctx, adminCaller, live.ID, catalog.UpdateStatusRequest{Status: catalog.StatusPublished})
	require.NoError(t, err)
	ep := createEpisode(t, svc, live.ID, 1)
	createEpisode(t, svc, draft.ID, 1)

	list, err := svc.ListSeries(ctx, access.AnonymousCaller)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, live.ID, list[0].ID)

	_, err = svc.GetSeries(ctx, access.AnonymousCaller, draft.ID)
	assert.True(t, apperror.IsNotFound(err))

	episodes, err := svc.ListEpisodes(ctx, access.AnonymousCaller, draft.ID)
	require.NoError(t, err)
	assert.Empty(t, episodes)

	_, err = svc.GetEpisode(ctx, access.AnonymousCaller, ep.ID)
	assert.True(t, apperror.IsNotFound(err))

	_, err = svc.UpdateEpisodeStatus(ctx, adminCaller, ep.ID, catalog.UpdateStatusRequest{Status: catalog.StatusPublished})
	require.NoError(t, err)
	got, err := svc.GetEpisode(ctx, access.AnonymousCaller, ep.ID)
	require.NoError(t, err)
	assert.Equal(t, ep.ID, got.ID)

	all, err := svc.ListSeries(ctx, adminCaller)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPrivateReadMode_RequiresAdmin(t *testing.T) {
	svc, _ := newService(t, access.ReadPrivate)
	ctx := context.Background()
	s := createSeries(t, svc)

	_, err := svc.ListSeries(ctx, access.AnonymousCaller)
	assert.True(t, apperror.IsForbidden(err))
	_, err = svc.GetSeries(ctx, viewer, s.ID)
	assert.True(t, apperror.IsForbidden(err))
	_, err = svc.ListEpisodes(ctx, viewer, s.ID)
	assert.True(t, apperror.IsForbidden(err))

	list, err := svc.ListSeries(ctx, adminCaller)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestListAllEpisodes_AdminOnly(t *testing.T) {
	svc, _ := newService(t, access.ReadPublic)
	a := createSeries(t, svc)
	b := createSeries(t, svc)
	createEpisode(t, svc, b.ID, 2)
	createEpisode(t, svc, a.ID, 1)
	createEpisode(t, svc, b.ID, 1)

	_, err := svc.ListAllEpisodes(context.Background(), viewer)
	assert.True(t, apperror.IsForbidden(err))

	all, err := svc.ListAllEpisodes(context.Background(), adminCaller)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, a.ID, all[0].SeriesID)
	assert.Equal(t, []int{1, 2}, []int{all[1].Number, all[2].Number})
}

// ============================================
// STORE BOUNDARY
// ============================================

func TestReads_RetryOnceOnTransientFailure(t *testing.T) {
	svc, store := newService(t, access.ReadPublic)
	s := createSeries(t, svc)

	store.FailNext("series.find", database.ErrUnavailable)
	got, err := svc.GetSeries(context.Background(), adminCaller, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, 2, store.Calls("series.find"))

	store.FailNext("series.list", context.DeadlineExceeded)
	store.FailNext("series.list", context.DeadlineExceeded)
	_, err = svc.ListSeries(context.Background(), adminCaller)
	assert.True(t, apperror.IsTimeout(err))
	assert.Equal(t, 2, store.Calls("series.list"))
}

func TestWrites_NeverRetried(t *testing.T) {
	svc, store := newService(t, access.ReadPublic)

	store.FailNext("series.create", database.ErrUnavailable)
	_, err := svc.CreateSeries(context.Background(), adminCaller, spiritBlade())

	assert.True(t, apperror.IsUnavailable(err))
	assert.Equal(t, 1, store.Calls("series.create"))
	assert.Empty(t, takeSnapshot(t, store).series)
}
