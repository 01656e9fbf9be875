// Package storetest holds the behavior every user.Store driver must share.
// Driver packages call Run from their own tests.
package storetest

import (
	"bytes"
	"context"
	"slices"
	"testing"
	"time"

	"tha-drop/internal/domain/availability"
	"tha-drop/internal/domain/hiring"
	"tha-drop/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty store. It is called once per subtest.
type Factory func(t *testing.T) user.Store

func Run(t *testing.T, newStore Factory) {
	t.Run("AccountsAndProfiles", func(t *testing.T) { testAccountsAndProfiles(t, newStore(t)) })
	t.Run("FindAvailable", func(t *testing.T) { testFindAvailable(t, newStore(t)) })
	t.Run("FindAvailablePaging", func(t *testing.T) { testFindAvailablePaging(t, newStore(t)) })
	t.Run("RequestPairs", func(t *testing.T) { testRequestPairs(t, newStore(t)) })
	t.Run("RequestOrdering", func(t *testing.T) { testRequestOrdering(t, newStore(t)) })
	t.Run("Reviews", func(t *testing.T) { testReviews(t, newStore(t)) })
}

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return c
}

// Seed registers an account with its profile and returns the profile.
func Seed(t *testing.T, s user.Store, role user.Role, approved bool, schedule ...user.AvailabilityInterval) user.Profile {
	t.Helper()
	a := user.Account{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		Role:         role,
		IsApproved:   approved,
	}
	p := user.Profile{
		ID:        uuid.New(),
		AccountID: a.ID,
		Name:      string(role) + " " + a.ID.String()[:4],
		Rating:    4,
		Schedule:  schedule,
	}
	require.NoError(t, s.Accounts().CreateWithProfile(ctx(t), a, p))
	got, err := s.Profiles().GetByID(ctx(t), p.ID)
	require.NoError(t, err)
	return got
}

func testAccountsAndProfiles(t *testing.T, s user.Store) {
	c := ctx(t)
	require.NoError(t, s.Ping(c))

	a := user.Account{ID: uuid.New(), Email: "  Host@Example.com ", PasswordHash: "h", Role: user.RoleHost}
	p := user.Profile{ID: uuid.New(), AccountID: a.ID, Name: "Host"}
	require.NoError(t, s.Accounts().CreateWithProfile(c, a, p))

	dup := user.Account{ID: uuid.New(), Email: "host@example.com", PasswordHash: "h", Role: user.RoleGuest}
	err := s.Accounts().CreateWithProfile(c, dup, user.Profile{ID: uuid.New(), AccountID: dup.ID})
	require.ErrorIs(t, err, user.ErrEmailTaken)

	got, err := s.Accounts().GetByEmail(c, "HOST@example.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, "host@example.com", got.Email)
	assert.Equal(t, user.RoleHost, got.Role)

	_, err = s.Accounts().GetByID(c, uuid.New())
	require.ErrorIs(t, err, user.ErrNotFound)

	require.NoError(t, s.Accounts().SetApproved(c, a.ID, true))
	require.NoError(t, s.Accounts().SetBlocked(c, a.ID, true))
	got, err = s.Accounts().GetByID(c, a.ID)
	require.NoError(t, err)
	assert.True(t, got.IsApproved)
	assert.True(t, got.IsBlocked)
	require.ErrorIs(t, s.Accounts().SetBlocked(c, uuid.New(), true), user.ErrNotFound)

	prof, err := s.Profiles().GetByAccountID(c, a.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, prof.ID)
	assert.Empty(t, prof.Schedule)

	schedule := []user.AvailabilityInterval{{Day: user.Friday, IsActive: true, StartAt: 60, EndAt: 120}}
	require.NoError(t, s.Profiles().UpdateSchedule(c, p.ID, schedule))
	prof, err = s.Profiles().GetByID(c, p.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule, prof.Schedule)
	require.ErrorIs(t, s.Profiles().UpdateSchedule(c, uuid.New(), schedule), user.ErrNotFound)

	found, err := s.Profiles().GetByIDs(c, []uuid.UUID{p.ID, p.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, p.ID, found[0].ID)
}

func saturday(start, end int) user.AvailabilityInterval {
	return user.AvailabilityInterval{Day: user.Saturday, IsActive: true, StartAt: start, EndAt: end}
}

func testFindAvailable(t *testing.T, s user.Store) {
	c := ctx(t)
	match := Seed(t, s, user.RoleDJ, true, saturday(1200, 1440))
	Seed(t, s, user.RoleDJ, true, saturday(1320, 1440))
	Seed(t, s, user.RoleDJ, false, saturday(0, 1440))
	Seed(t, s, user.RoleBartender, true, saturday(0, 1440))
	inactive := saturday(0, 1440)
	inactive.IsActive = false
	Seed(t, s, user.RoleDJ, true, inactive)
	multi := Seed(t, s, user.RoleDJ, true,
		user.AvailabilityInterval{Day: user.Friday, IsActive: true, StartAt: 0, EndAt: 1440},
		saturday(600, 700),
		saturday(1100, 1400),
	)

	q, err := availability.BuildQuery("DJ", "2024-06-15", "20:00", "23:00")
	require.NoError(t, err)

	items, total, err := s.Profiles().FindAvailable(c, q.Filter(availability.Page{Page: 1, Limit: 10}))
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, items, 2)

	ids := []uuid.UUID{items[0].Profile.ID, items[1].Profile.ID}
	assert.ElementsMatch(t, []uuid.UUID{match.ID, multi.ID}, ids)
	for _, it := range items {
		assert.Equal(t, user.RoleDJ, it.Account.Role)
		assert.True(t, it.Account.IsApproved)
		assert.True(t, availability.Matches(it, q))
	}

	q, err = availability.BuildQuery("DJ", "", "", "")
	require.NoError(t, err)
	_, total, err = s.Profiles().FindAvailable(c, q.Filter(availability.Page{Page: 1, Limit: 10}))
	require.NoError(t, err)
	assert.Equal(t, 4, total)
}

func testFindAvailablePaging(t *testing.T, s user.Store) {
	c := ctx(t)
	for i := 0; i < 7; i++ {
		Seed(t, s, user.RoleBottleGirl, true, saturday(0, 1440))
	}
	q, err := availability.BuildQuery("BOTTLEGIRL", "2024-06-15", "", "")
	require.NoError(t, err)

	seen := map[uuid.UUID]bool{}
	var last uuid.UUID
	for page := 1; page <= 3; page++ {
		p := availability.Page{Page: page, Limit: 3}
		items, total, err := s.Profiles().FindAvailable(c, q.Filter(p))
		require.NoError(t, err)
		assert.Equal(t, 7, total)
		assert.Equal(t, 3, p.TotalPages(total))
		assert.LessOrEqual(t, len(items), 3)
		for _, it := range items {
			assert.False(t, seen[it.Profile.ID], "profile returned twice")
			seen[it.Profile.ID] = true
			assert.Less(t, last.String(), it.Profile.ID.String())
			last = it.Profile.ID
		}
	}
	assert.Len(t, seen, 7)

	items, total, err := s.Profiles().FindAvailable(c, q.Filter(availability.Page{Page: 9, Limit: 3}))
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.Empty(t, items)
}

func testRequestPairs(t *testing.T, s user.Store) {
	c := ctx(t)
	host := Seed(t, s, user.RoleHost, true)
	dj1 := Seed(t, s, user.RoleDJ, true)
	dj2 := Seed(t, s, user.RoleDJ, true)

	inv := hiring.Invitation{
		Date:     "2024-06-15",
		Schedule: "20:00-23:00",
		Location: user.Location{Label: "Club", Latitude: 40.7, Longitude: -74},
	}
	pairs := hiring.NewPairs(host, []user.Profile{dj1, dj2}, inv, time.Now(), nil)
	require.NoError(t, s.Requests().SavePairs(c, pairs))

	sent, err := s.Requests().ListRequests(c, host.ID, user.RequestFilter{})
	require.NoError(t, err)
	require.Len(t, sent, 2)
	for _, r := range sent {
		assert.Equal(t, user.RequestSent, r.Type)
		assert.Equal(t, user.StatusPending, r.Status)
		assert.Equal(t, inv.Location, r.Location)
	}

	id := pairs[0].Received.ID
	received, err := s.Requests().FindRequest(c, dj1.ID, id)
	require.NoError(t, err)
	assert.Equal(t, user.RequestReceived, received.Type)
	assert.Equal(t, host.ID, received.CounterpartyID)
	assert.Equal(t, host.Name, received.CounterpartyName)

	_, err = s.Requests().FindRequest(c, dj2.ID, id)
	require.ErrorIs(t, err, user.ErrRequestNotFound)

	require.NoError(t, s.Requests().SetStatus(c, dj1.ID, id, user.StatusAccepted, true))
	received, err = s.Requests().FindRequest(c, dj1.ID, id)
	require.NoError(t, err)
	assert.Equal(t, user.StatusAccepted, received.Status)
	mirrored, err := s.Requests().FindRequest(c, host.ID, id)
	require.NoError(t, err)
	assert.Equal(t, user.StatusAccepted, mirrored.Status)

	other, err := s.Requests().FindRequest(c, dj2.ID, pairs[1].Received.ID)
	require.NoError(t, err)
	assert.Equal(t, user.StatusPending, other.Status)

	require.ErrorIs(t, s.Requests().SetStatus(c, dj2.ID, id, user.StatusRejected, true), user.ErrRequestNotFound)

	accepted := user.StatusAccepted
	list, err := s.Requests().ListRequests(c, host.ID, user.RequestFilter{Status: &accepted})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)

	typ := user.RequestReceived
	list, err = s.Requests().ListRequests(c, host.ID, user.RequestFilter{Type: &typ})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func testRequestOrdering(t *testing.T, s user.Store) {
	c := ctx(t)
	host := Seed(t, s, user.RoleHost, true)
	targets := []user.Profile{
		Seed(t, s, user.RoleDJ, true),
		Seed(t, s, user.RoleDJ, true),
		Seed(t, s, user.RoleDJ, true),
	}

	first := time.Now().UTC().Truncate(time.Millisecond).Add(-time.Hour)
	batch := hiring.NewPairs(host, targets, hiring.Invitation{Date: "2024-06-15"}, first, nil)
	require.NoError(t, s.Requests().SavePairs(c, batch))
	later := hiring.NewPairs(host, targets[:1], hiring.Invitation{Date: "2024-06-22"}, first.Add(time.Minute), nil)
	require.NoError(t, s.Requests().SavePairs(c, later))

	list, err := s.Requests().ListRequests(c, host.ID, user.RequestFilter{})
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, later[0].Sent.ID, list[0].ID)

	want := make([]uuid.UUID, 0, len(batch))
	for _, p := range batch {
		want = append(want, p.Sent.ID)
	}
	slices.SortFunc(want, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })

	got := make([]uuid.UUID, 0, 3)
	for _, r := range list[1:] {
		got = append(got, r.ID)
	}
	assert.Equal(t, want, got)
}

func testReviews(t *testing.T, s user.Store) {
	c := ctx(t)
	dj := Seed(t, s, user.RoleDJ, true)
	host := Seed(t, s, user.RoleHost, true)
	guest := Seed(t, s, user.RoleGuest, true)

	reviews, err := s.Reviews().ListReviews(c, dj.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	require.NoError(t, s.Reviews().AddReview(c, user.Review{
		TargetID: dj.ID, ReviewerID: host.ID, ReviewerName: host.Name, Rating: 5, Comment: "great set",
	}))
	got, err := s.Profiles().GetByID(c, dj.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, got.Rating, 0.0001)

	err = s.Reviews().AddReview(c, user.Review{TargetID: dj.ID, ReviewerID: host.ID, Rating: 1})
	require.ErrorIs(t, err, user.ErrReviewExists)

	require.NoError(t, s.Reviews().AddReview(c, user.Review{TargetID: dj.ID, ReviewerID: guest.ID, Rating: 2}))
	got, err = s.Profiles().GetByID(c, dj.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, got.Rating, 0.0001)

	err = s.Reviews().AddReview(c, user.Review{TargetID: uuid.New(), ReviewerID: host.ID, Rating: 3})
	require.ErrorIs(t, err, user.ErrNotFound)

	rating := 4
	updated, err := s.Reviews().UpdateReview(c, dj.ID, guest.ID, user.ReviewChange{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, guest.ID, updated.ReviewerID)

	comment := "encore"
	updated, err = s.Reviews().UpdateReview(c, dj.ID, host.ID, user.ReviewChange{Comment: &comment})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "encore", updated.Comment)

	got, err = s.Profiles().GetByID(c, dj.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, got.Rating, 0.0001)

	_, err = s.Reviews().UpdateReview(c, host.ID, dj.ID, user.ReviewChange{Rating: &rating})
	require.ErrorIs(t, err, user.ErrReviewNotFound)

	reviews, err = s.Reviews().ListReviews(c, dj.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	for _, rv := range reviews {
		assert.Equal(t, dj.ID, rv.TargetID)
	}
}
