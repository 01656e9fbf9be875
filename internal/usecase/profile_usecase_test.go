package usecase

import (
	"context"
	"testing"

	"tha-drop/internal/domain/user"
	"tha-drop/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfiles_GetMeIncludesRequests(t *testing.T) {
	f := newHiringFixture(t)
	f.hire(t, f.djA)
	uc := NewProfileUsecase(f.store.Accounts(), f.store.Profiles(), f.store.Requests(), nil, nil)

	view, err := uc.GetMe(context.Background(), callerFor(t, f.store, f.djA))
	require.NoError(t, err)
	assert.Equal(t, f.djA.ID, view.Profile.ID)
	assert.Equal(t, user.RoleDJ, view.Account.Role)
	require.Len(t, view.Profile.Requests, 1)
	assert.Equal(t, user.RequestReceived, view.Profile.Requests[0].Type)

	_, err = uc.GetMe(context.Background(), Caller{AccountID: uuid.New(), ProfileID: uuid.New()})
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestProfiles_UpdateSchedule(t *testing.T) {
	s := memory.New()
	inv := &countingInvalidator{}
	uc := NewProfileUsecase(s.Accounts(), s.Profiles(), s.Requests(), inv, nil)
	ctx := context.Background()
	prof := seed(t, s, user.RoleBartender, true)
	caller := callerFor(t, s, prof)

	schedule := []user.AvailabilityInterval{saturday(1200, 1440)}
	view, err := uc.UpdateSchedule(ctx, caller, schedule)
	require.NoError(t, err)
	assert.Equal(t, schedule, view.Profile.Schedule)
	assert.Equal(t, 1, inv.calls)

	_, err = uc.UpdateSchedule(ctx, caller, []user.AvailabilityInterval{saturday(900, 600)})
	require.ErrorIs(t, err, ErrInvalidSchedule)
	_, err = uc.UpdateSchedule(ctx, caller, []user.AvailabilityInterval{{Day: "Funday", StartAt: 0, EndAt: 60}})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 1, inv.calls)

	view, err = uc.UpdateSchedule(ctx, caller, nil)
	require.NoError(t, err)
	assert.Empty(t, view.Profile.Schedule)
}
