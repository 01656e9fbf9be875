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

func ptr[T any](v T) *T { return &v }

func TestReviews_CreateAndUpdate(t *testing.T) {
	s := memory.New()
	inv := &countingInvalidator{}
	uc := NewReviewUsecase(s.Profiles(), s.Reviews(), inv, nil)
	ctx := context.Background()

	dj := seed(t, s, user.RoleDJ, true)
	hostA := seed(t, s, user.RoleHost, true)
	hostB := seed(t, s, user.RoleHost, true)

	rv, err := uc.Create(ctx, callerFor(t, s, hostA), ReviewInput{TargetID: dj.ID.String(), Rating: 5, Comment: " great set "})
	require.NoError(t, err)
	assert.Equal(t, hostA.Name, rv.ReviewerName)
	assert.Equal(t, "great set", rv.Comment)

	_, err = uc.Create(ctx, callerFor(t, s, hostB), ReviewInput{TargetID: dj.ID.String(), Rating: 2})
	require.NoError(t, err)

	p, err := s.Profiles().GetByID(ctx, dj.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, p.Rating, 1e-9)

	// A zero rating keeps the stored one.
	rv, err = uc.Update(ctx, callerFor(t, s, hostB), ReviewUpdateInput{TargetID: dj.ID.String(), Rating: ptr(0.0), Comment: ptr("fine")})
	require.NoError(t, err)
	assert.Equal(t, 2, rv.Rating)
	assert.Equal(t, "fine", rv.Comment)

	rv, err = uc.Update(ctx, callerFor(t, s, hostB), ReviewUpdateInput{TargetID: dj.ID.String(), Rating: ptr(4.0)})
	require.NoError(t, err)
	assert.Equal(t, 4, rv.Rating)
	assert.Equal(t, "fine", rv.Comment)

	p, err = s.Profiles().GetByID(ctx, dj.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, p.Rating, 1e-9)

	list, err := uc.List(ctx, dj.ID.String())
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 4, inv.calls)
}

func TestReviews_Errors(t *testing.T) {
	s := memory.New()
	uc := NewReviewUsecase(s.Profiles(), s.Reviews(), nil, nil)
	ctx := context.Background()

	dj := seed(t, s, user.RoleDJ, true)
	host := seed(t, s, user.RoleHost, true)
	caller := callerFor(t, s, host)
	target := dj.ID.String()

	cases := []struct {
		name string
		in   ReviewInput
		want error
	}{
		{"malformed target", ReviewInput{TargetID: "nope", Rating: 3}, ErrInvalidTargetID},
		{"missing target", ReviewInput{TargetID: uuid.NewString(), Rating: 3}, ErrAccountNotFound},
		{"self review", ReviewInput{TargetID: host.ID.String(), Rating: 3}, ErrSelfReview},
		{"rating too low", ReviewInput{TargetID: target, Rating: 0}, ErrInvalidRating},
		{"rating too high", ReviewInput{TargetID: target, Rating: 6}, ErrInvalidRating},
		{"fractional rating", ReviewInput{TargetID: target, Rating: 3.5}, ErrInvalidRating},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, caller, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := uc.Update(ctx, caller, ReviewUpdateInput{TargetID: target, Rating: ptr(3.0)})
	assert.ErrorIs(t, err, ErrReviewNotFound)

	_, err = uc.Create(ctx, caller, ReviewInput{TargetID: target, Rating: 3})
	require.NoError(t, err)
	_, err = uc.Create(ctx, caller, ReviewInput{TargetID: target, Rating: 4})
	assert.ErrorIs(t, err, ErrReviewExists)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = uc.Update(ctx, caller, ReviewUpdateInput{TargetID: target, Rating: ptr(7.0)})
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestReviews_HireCarriesUpdatedRating(t *testing.T) {
	f := newHiringFixture(t)
	ctx := context.Background()
	reviews := NewReviewUsecase(f.store.Profiles(), f.store.Reviews(), nil, nil)

	_, err := reviews.Create(ctx, callerFor(t, f.store, f.djB), ReviewInput{TargetID: f.host.ID.String(), Rating: 4})
	require.NoError(t, err)
	_, err = reviews.Create(ctx, callerFor(t, f.store, f.host), ReviewInput{TargetID: f.djA.ID.String(), Rating: 5})
	require.NoError(t, err)

	f.hire(t, f.djA)

	received, err := f.uc.ListRequests(ctx, callerFor(t, f.store, f.djA), "RECEIVED", "")
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.InDelta(t, 4.0, received[0].CounterpartyRating, 1e-9)

	sent, err := f.uc.ListRequests(ctx, callerFor(t, f.store, f.host), "SENT", "")
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.InDelta(t, 5.0, sent[0].CounterpartyRating, 1e-9)
}
