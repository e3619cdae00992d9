package seeding

import (
	"context"
	"testing"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-repositories"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-testhelpers"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeRepos(s *testhelpers.Store) Repositories {
	return Repositories{
		Users:         s.Users(),
		Buildings:     s.Buildings(),
		Apartments:    s.Apartments(),
		Payments:      s.Payments(),
		Complaints:    s.Complaints(),
		Meetings:      s.Meetings(),
		Surveys:       s.Surveys(),
		Contracts:     s.Contracts(),
		Notifications: s.Notifications(),
	}
}

func TestSeedDemoPortfolio(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewStore()
	now := testhelpers.FixedNow

	require.NoError(t, SeedDemoPortfolio(ctx, storeRepos(store), now))

	adminID := uuid.MustParse(DefaultAdminID)
	buildings, err := store.Buildings().ListByAdminID(ctx, adminID)
	require.NoError(t, err)
	require.Len(t, buildings, 2)

	ids := []uuid.UUID{buildings[0].ID, buildings[1].ID}
	apts, err := store.Apartments().ListByBuildingIDs(ctx, ids)
	require.NoError(t, err)
	assert.Len(t, apts, 16)

	payments, err := store.Payments().List(ctx, repositories.PaymentFilter{BuildingIDs: ids}, repositories.ListOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, payments)
	for _, p := range payments {
		assert.Contains(t, ids, p.BuildingID, "building derived from apartment")
		if p.IsPaid {
			assert.NotNil(t, p.PaymentDate)
		}
		assert.False(t, p.DueDate.After(now))
	}

	surveys, err := store.Surveys().List(ctx, repositories.SurveyFilter{BuildingIDs: ids}, repositories.ListOptions{})
	require.NoError(t, err)
	require.Len(t, surveys, 2)
	assert.Equal(t, 3, surveys[0].TotalResponses)
}

func TestSeedDemoPortfolioIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewStore()
	repos := storeRepos(store)

	require.NoError(t, SeedDemoPortfolio(ctx, repos, testhelpers.FixedNow))
	require.NoError(t, SeedDemoPortfolio(ctx, repos, testhelpers.FixedNow))

	surveys, err := store.Surveys().List(ctx, repositories.SurveyFilter{}, repositories.ListOptions{})
	require.NoError(t, err)
	require.Len(t, surveys, 2)
	assert.Equal(t, 3, surveys[0].TotalResponses, "second run must not record responses again")
}
