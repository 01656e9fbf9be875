package usecase

import (
	"context"
	"errors"
	"testing"

	"tha-drop/internal/domain/availability"
	"tha-drop/internal/domain/user"
	"tha-drop/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saturday(start, end int) user.AvailabilityInterval {
	return user.AvailabilityInterval{Day: user.Saturday, IsActive: true, StartAt: start, EndAt: end}
}

func TestFindAvailable_SaturdayScenario(t *testing.T) {
	s := memory.New()
	match := seed(t, s, user.RoleDJ, true, saturday(1200, 1440))
	seed(t, s, user.RoleDJ, true, saturday(1320, 1440))
	seed(t, s, user.RoleDJ, false, saturday(1200, 1440))
	seed(t, s, user.RoleBartender, true, saturday(1200, 1440))

	uc := NewAvailabilityUsecase(s.Profiles(), nil, nil, nil)
	res, err := uc.FindAvailable(context.Background(), AvailabilitySearch{
		Role: "DJ", Date: "2024-06-15", StartAt: "20:00", EndAt: "23:00",
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, match.ID, res.Items[0].Profile.ID)
	assert.Equal(t, 1, res.TotalCount)
	assert.Equal(t, 1, res.TotalPages)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, availability.DefaultLimit, res.Limit)
}

func TestFindAvailable_EmptyResultIsNotNil(t *testing.T) {
	uc := NewAvailabilityUsecase(memory.New().Profiles(), nil, nil, nil)
	res, err := uc.FindAvailable(context.Background(), AvailabilitySearch{Role: "BOTTLEGIRL"})
	require.NoError(t, err)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.TotalPages)
}

func TestFindAvailable_InvalidInput(t *testing.T) {
	uc := NewAvailabilityUsecase(memory.New().Profiles(), nil, nil, nil)
	for _, in := range []AvailabilitySearch{
		{Role: "HOST"},
		{Role: "DJ", Date: "tomorrow"},
		{Role: "DJ", Date: "2024-06-15", StartAt: "23:00", EndAt: "20:00"},
	} {
		_, err := uc.FindAvailable(context.Background(), in)
		require.ErrorIs(t, err, ErrInvalidInput, "%+v", in)
	}
}

func TestFindAvailable_UsesCache(t *testing.T) {
	s := memory.New()
	seed(t, s, user.RoleDJ, true, saturday(1200, 1440))
	cache := newFakeCache()
	rec := &fakeRecorder{}
	uc := NewAvailabilityUsecase(s.Profiles(), cache, rec, nil)
	ctx := context.Background()
	in := AvailabilitySearch{Role: "DJ", Date: "2024-06-15", StartAt: "20:00"}

	first, err := uc.FindAvailable(ctx, in)
	require.NoError(t, err)
	require.Len(t, first.Items, 1)
	assert.Equal(t, 1, cache.sets)
	assert.Empty(t, cache.locks, "lock released after fill")

	// a second matching profile is invisible until the cache is dropped
	seed(t, s, user.RoleDJ, true, saturday(1000, 1440))
	second, err := uc.FindAvailable(ctx, in)
	require.NoError(t, err)
	assert.Len(t, second.Items, 1)
	assert.Equal(t, 1, rec.hits)

	uc.Invalidate(ctx)
	assert.Len(t, cache.deleted, 1)

	third, err := uc.FindAvailable(ctx, in)
	require.NoError(t, err)
	assert.Len(t, third.Items, 2)
}

func TestAvailabilityCacheKey_NormalizedInput(t *testing.T) {
	a, err := availability.BuildQuery("dj", "2024-06-15", "20:00", "")
	require.NoError(t, err)
	b, err := availability.BuildQuery("DJ", "2024-06-15T10:00:00Z", "20:00", "")
	require.NoError(t, err)

	p := availability.Page{Page: 1, Limit: 10}
	assert.Equal(t, AvailabilityCacheKey(a, p), AvailabilityCacheKey(b, p))
	assert.NotEqual(t, AvailabilityCacheKey(a, p), AvailabilityCacheKey(a, availability.Page{Page: 2, Limit: 10}))
	assert.Contains(t, AvailabilityCacheKey(a, p), availabilityKeyPrefix)
}

type failingProfiles struct {
	user.ProfileRepository
	err error
}

func (f failingProfiles) FindAvailable(context.Context, user.AvailabilityFilter) ([]user.Candidate, int, error) {
	return nil, 0, f.err
}

func TestFindAvailable_StoreFailure(t *testing.T) {
	uc := NewAvailabilityUsecase(failingProfiles{err: errors.New("boom")}, newFakeCache(), nil, nil)
	_, err := uc.FindAvailable(context.Background(), AvailabilitySearch{Role: "DJ"})
	require.ErrorIs(t, err, ErrDependencyFailure)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	uc = NewAvailabilityUsecase(failingProfiles{err: context.Canceled}, nil, nil, nil)
	_, err = uc.FindAvailable(ctx, AvailabilitySearch{Role: "DJ"})
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrDependencyFailure)
}
