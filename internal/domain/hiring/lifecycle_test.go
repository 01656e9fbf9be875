package hiring

import (
	"testing"
	"time"

	"tha-drop/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTargets(t *testing.T) {
	initiator := uuid.New()
	a, b := uuid.New(), uuid.New()
	pa, pb := user.Profile{ID: a}, user.Profile{ID: b}

	require.ErrorIs(t, CheckTargets(initiator, nil, nil), ErrNoTargets)
	require.ErrorIs(t, CheckTargets(initiator, []uuid.UUID{a, initiator}, []user.Profile{pa}), ErrSelfHire)
	require.ErrorIs(t, CheckTargets(initiator, []uuid.UUID{a, b}, []user.Profile{pa}), ErrTargetsNotFound)
	require.NoError(t, CheckTargets(initiator, []uuid.UUID{a, b}, []user.Profile{pa, pb}))
}

func TestCheckTargets_DuplicateIDsFail(t *testing.T) {
	initiator := uuid.New()
	u2 := uuid.New()

	err := CheckTargets(initiator, []uuid.UUID{u2, u2}, []user.Profile{{ID: u2}})
	require.ErrorIs(t, err, ErrTargetsNotFound)
}

func TestNewPairs_MirrorsBothSides(t *testing.T) {
	avatar := "a.png"
	initiator := user.Profile{ID: uuid.New(), Name: "Host", Avatar: &avatar, Rating: 4.5}
	targetA := user.Profile{ID: uuid.New(), Name: "DJ A", Rating: 3}
	targetB := user.Profile{ID: uuid.New(), Name: "DJ B"}
	inv := Invitation{
		Date:     "2024-06-15",
		Schedule: "20:00-23:00",
		Location: user.Location{Label: "Club", Latitude: 1.5, Longitude: 2.5},
	}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	pairs := NewPairs(initiator, []user.Profile{targetA, targetB}, inv, now, nil)
	require.Len(t, pairs, 2)
	assert.NotEqual(t, pairs[0].Sent.ID, pairs[1].Sent.ID)

	for i, target := range []user.Profile{targetA, targetB} {
		p := pairs[i]
		assert.Equal(t, p.Sent.ID, p.Received.ID)
		assert.NotEqual(t, uuid.Nil, p.Sent.ID)

		assert.Equal(t, initiator.ID, p.Sent.OwnerID)
		assert.Equal(t, user.RequestSent, p.Sent.Type)
		assert.Equal(t, target.ID, p.Sent.CounterpartyID)
		assert.Equal(t, target.Name, p.Sent.CounterpartyName)
		assert.Equal(t, target.Rating, p.Sent.CounterpartyRating)

		assert.Equal(t, target.ID, p.Received.OwnerID)
		assert.Equal(t, user.RequestReceived, p.Received.Type)
		assert.Equal(t, initiator.ID, p.Received.CounterpartyID)
		assert.Equal(t, &avatar, p.Received.CounterpartyAvatar)
		assert.Equal(t, 4.5, p.Received.CounterpartyRating)

		for _, r := range []user.HiringRequest{p.Sent, p.Received} {
			assert.Equal(t, user.StatusPending, r.Status)
			assert.Equal(t, inv.Date, r.Date)
			assert.Equal(t, inv.Schedule, r.Schedule)
			assert.Equal(t, inv.Location, r.Location)
			assert.Equal(t, now, r.CreatedAt)
		}
	}
}

func TestNewPairs_UsesIDGenerator(t *testing.T) {
	fixed := uuid.MustParse("11111111-1111-4111-8111-111111111111")
	pairs := NewPairs(user.Profile{ID: uuid.New()}, []user.Profile{{ID: uuid.New()}}, Invitation{}, time.Now(), func() uuid.UUID { return fixed })
	require.Len(t, pairs, 1)
	assert.Equal(t, fixed, pairs[0].Sent.ID)
	assert.Equal(t, fixed, pairs[0].Received.ID)
}

func TestTransition(t *testing.T) {
	received := user.HiringRequest{Type: user.RequestReceived, Status: user.StatusPending}

	st, err := Transition(received, Accept)
	require.NoError(t, err)
	assert.Equal(t, user.StatusAccepted, st)

	st, err = Transition(received, Reject)
	require.NoError(t, err)
	assert.Equal(t, user.StatusRejected, st)

	received.Status = user.StatusAccepted
	st, err = Transition(received, Reject)
	require.NoError(t, err)
	assert.Equal(t, user.StatusRejected, st)

	_, err = Transition(user.HiringRequest{Type: user.RequestSent}, Accept)
	require.ErrorIs(t, err, ErrInvalidRequestType)

	_, err = Transition(received, Decision("MAYBE"))
	require.ErrorIs(t, err, ErrInvalidDecision)
}
