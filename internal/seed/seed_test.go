package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"streamhub-backend/internal/domains/catalog"
	catalogRepo "streamhub-backend/internal/domains/catalog/repository"
	catalogService "streamhub-backend/internal/domains/catalog/service"
	"streamhub-backend/internal/domains/user"
	userRepo "streamhub-backend/internal/domains/user/repository"
	userService "streamhub-backend/internal/domains/user/service"
	"streamhub-backend/internal/shared/access"
	"streamhub-backend/pkg/database"
)

type fixture struct {
	seeder  *Seeder
	users   *userRepo.MemoryRepository
	catalog *catalogService.LifecycleService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	boundary := database.NewBoundary(time.Second)
	users := userRepo.NewMemoryRepository()
	userSvc := userService.NewUserService(users, boundary, bcrypt.MinCost)
	lifecycle := catalogService.NewLifecycleService(
		catalogRepo.NewMemoryStore(),
		users,
		access.NewReadPolicy(string(access.ReadPublic)),
		boundary,
	)

	return &fixture{seeder: New(userSvc, lifecycle), users: users, catalog: lifecycle}
}

var adminInput = user.CreateAdminInput{Username: "admin", Password: "admin-password", Email: "admin@streamhub.example.com"}

func TestRun_SeedsAdminAndCatalog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.seeder.Run(ctx, adminInput)
	require.NoError(t, err)

	assert.True(t, result.AdminCreated)
	assert.Equal(t, len(samples), result.SeriesCreated)
	assert.Equal(t, 6, result.EpisodesAdded)

	admin, err := f.users.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)

	// anonymous callers only see the published samples
	public, err := f.catalog.ListSeries(ctx, access.AnonymousCaller)
	require.NoError(t, err)
	require.Len(t, public, 2)
	for _, s := range public {
		assert.Equal(t, catalog.StatusPublished, s.Status)
		assert.Equal(t, admin.ID, s.CreatedBy)
	}

	episodes, err := f.catalog.ListEpisodes(ctx, access.AnonymousCaller, public[0].ID)
	require.NoError(t, err)
	require.Len(t, episodes, 3)
	assert.Equal(t, 1, episodes[0].Number)
}

func TestRun_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.seeder.Run(ctx, adminInput)
	require.NoError(t, err)

	again, err := f.seeder.Run(ctx, adminInput)
	require.NoError(t, err)
	assert.False(t, again.AdminCreated)
	assert.True(t, again.CatalogSkipped)
	assert.Zero(t, again.SeriesCreated)

	all, err := f.catalog.ListSeries(ctx, access.SessionCaller(again.AdminID, true))
	require.NoError(t, err)
	assert.Len(t, all, len(samples))
}

func TestRun_RefusesNonAdminAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.users.Create(ctx, &user.User{
		Username: "admin",
		Email:    "someone@streamhub.example.com",
		Status:   user.StatusActive,
	}))

	_, err := f.seeder.Run(ctx, adminInput)
	assert.ErrorIs(t, err, ErrNotAdmin)
}

func TestRun_InvalidAdminInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.seeder.Run(context.Background(), user.CreateAdminInput{Username: "admin", Password: "short", Email: "bad"})
	assert.Error(t, err)

	all, listErr := f.users.List(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, all)
}
