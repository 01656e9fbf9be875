package availability

import (
	"testing"

	"tha-drop/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "20:00", want: 1200},
		{in: "9:30", want: 570},
		{in: "23:59", want: 1439},
		{in: "24:00", want: 1440},
		{in: "24:01", wantErr: true},
		{in: "25:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "12", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "12:5", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseClock(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "24:00", FormatClock(1440))
}

func TestParseDate_WeekdayIsLocaleIndependent(t *testing.T) {
	d, err := ParseDate("2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, user.Saturday, user.WeekdayOf(d.Weekday()))

	d, err = ParseDate("2024-06-15T23:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, user.Saturday, user.WeekdayOf(d.Weekday()))

	_, err = ParseDate("15/06/2024")
	require.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDate("2024-02-30")
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestBuildQuery(t *testing.T) {
	q, err := BuildQuery("dj", "2024-06-15", "20:00", "23:00")
	require.NoError(t, err)
	assert.Equal(t, user.RoleDJ, q.Role)
	require.NotNil(t, q.Day)
	assert.Equal(t, user.Saturday, *q.Day)
	assert.Equal(t, 1200, *q.StartAt)
	assert.Equal(t, 1380, *q.EndAt)

	q, err = BuildQuery("BARTENDER", "", "", "")
	require.NoError(t, err)
	assert.Nil(t, q.Day)
	assert.Nil(t, q.StartAt)
	assert.Nil(t, q.EndAt)

	_, err = BuildQuery("HOST", "", "", "")
	require.ErrorIs(t, err, ErrInvalidRole)

	_, err = BuildQuery("", "", "", "")
	require.ErrorIs(t, err, ErrInvalidRole)

	_, err = BuildQuery("DJ", "not-a-date", "", "")
	require.ErrorIs(t, err, ErrInvalidDate)

	_, err = BuildQuery("DJ", "2024-06-15", "8pm", "")
	require.ErrorIs(t, err, ErrInvalidTime)

	_, err = BuildQuery("DJ", "2024-06-15", "23:00", "20:00")
	require.ErrorIs(t, err, ErrInvalidWindow)
}

func TestCovers_SaturdayScenario(t *testing.T) {
	day := user.Saturday
	q := Query{Role: user.RoleDJ, Day: &day, StartAt: intPtr(1200), EndAt: intPtr(1380)}

	full := user.AvailabilityInterval{Day: user.Saturday, IsActive: true, StartAt: 1200, EndAt: 1440}
	late := user.AvailabilityInterval{Day: user.Saturday, IsActive: true, StartAt: 1320, EndAt: 1440}
	short := user.AvailabilityInterval{Day: user.Saturday, IsActive: true, StartAt: 1000, EndAt: 1300}
	inactive := user.AvailabilityInterval{Day: user.Saturday, IsActive: false, StartAt: 0, EndAt: 1440}
	friday := user.AvailabilityInterval{Day: user.Friday, IsActive: true, StartAt: 0, EndAt: 1440}

	assert.True(t, Covers(full, q))
	assert.False(t, Covers(late, q))
	assert.False(t, Covers(short, q))
	assert.False(t, Covers(inactive, q))
	assert.False(t, Covers(friday, q))
}

func TestAvailable_AnyIntervalQualifies(t *testing.T) {
	day := user.Monday
	q := Query{Role: user.RoleDJ, Day: &day, StartAt: intPtr(600), EndAt: intPtr(720)}

	schedule := []user.AvailabilityInterval{
		{Day: user.Monday, IsActive: true, StartAt: 0, EndAt: 300},
		{Day: user.Monday, IsActive: true, StartAt: 540, EndAt: 780},
	}
	assert.True(t, Available(schedule, q))
	assert.False(t, Available(schedule[:1], q))
	assert.False(t, Available(nil, q))

	assert.True(t, Available(nil, Query{Role: user.RoleDJ}))
}

func TestAvailable_OpenBounds(t *testing.T) {
	day := user.Sunday
	schedule := []user.AvailabilityInterval{{Day: user.Sunday, IsActive: true, StartAt: 1200, EndAt: 1260}}

	assert.True(t, Available(schedule, Query{Role: user.RoleDJ, Day: &day}))
	assert.True(t, Available(schedule, Query{Role: user.RoleDJ, Day: &day, EndAt: intPtr(1230)}))
	assert.False(t, Available(schedule, Query{Role: user.RoleDJ, Day: &day, StartAt: intPtr(1100)}))
}

func TestMatches_RequiresApprovalAndRole(t *testing.T) {
	c := user.Candidate{Account: user.AccountSummary{Role: user.RoleDJ, IsApproved: true}}
	assert.True(t, Matches(c, Query{Role: user.RoleDJ}))

	c.Account.IsApproved = false
	assert.False(t, Matches(c, Query{Role: user.RoleDJ}))

	c.Account.IsApproved = true
	assert.False(t, Matches(c, Query{Role: user.RoleBartender}))
}
