package service_test

import (
	"context"
	"testing"

	"github.com/mwhitford/deskchat/internal/domain"
	"github.com/mwhitford/deskchat/internal/repository/postgres"
	"github.com/mwhitford/deskchat/internal/service"
	"github.com/mwhitford/deskchat/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryService_Search(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	directoryService := service.NewDirectoryService(repos.User)
	ctx := context.Background()

	me, _ := testutil.NewUserBuilder().WithName("Me").Build(t, testDB.DB)
	climber, _ := testutil.NewUserBuilder().
		WithName("Robin Banks").
		WithInterests("climbing, coffee").
		Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().WithName("Sam Ocean").Build(t, testDB.DB)

	t.Run("matches interests case-insensitively", func(t *testing.T) {
		users, err := directoryService.Search(ctx, "CLIMB", me.ID)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, climber.ID, users[0].ID)
	})

	t.Run("blank query lists everyone else", func(t *testing.T) {
		users, err := directoryService.Search(ctx, "   ", me.ID)
		require.NoError(t, err)

		ids := make([]uint, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		assert.ElementsMatch(t, []uint{climber.ID, other.ID}, ids)
	})
}

func TestDirectoryService_AddInterest(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	directoryService := service.NewDirectoryService(repos.User)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithInterests("hiking").Build(t, testDB.DB)

	updated, err := directoryService.AddInterest(ctx, user.ID, "pottery")
	require.NoError(t, err)
	assert.Equal(t, "hiking, pottery", updated.Interests)
	assert.Equal(t, []string{"hiking", "pottery"}, updated.InterestList())

	// Persisted, not just mutated in memory
	reloaded, err := repos.User.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "hiking, pottery", reloaded.Interests)
}

func TestDirectoryService_AddInterestToEmptyProfile(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	directoryService := service.NewDirectoryService(repos.User)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	updated, err := directoryService.AddInterest(ctx, user.ID, "origami")
	require.NoError(t, err)
	assert.Equal(t, "origami", updated.Interests)

	_, err = directoryService.AddInterest(ctx, 99999, "origami")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
