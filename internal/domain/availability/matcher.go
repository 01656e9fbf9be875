package availability

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"tha-drop/internal/domain/user"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

var (
	ErrInvalidRole   = errors.New("invalid role")
	ErrInvalidDate   = errors.New("invalid date format")
	ErrInvalidTime   = errors.New("invalid time format")
	ErrInvalidWindow = errors.New("invalid time window")
)

// Query is a validated availability search. Day, StartAt and EndAt are nil
// when the caller did not constrain them.
type Query struct {
	Role    user.Role
	Day     *user.Weekday
	StartAt *int
	EndAt   *int
}

// BuildQuery validates raw search parameters. Empty strings mean "not supplied".
func BuildQuery(role, date, startAt, endAt string) (Query, error) {
	r := user.Role(strings.ToUpper(strings.TrimSpace(role)))
	if !r.IsStaff() {
		return Query{}, ErrInvalidRole
	}
	q := Query{Role: r}

	if s := strings.TrimSpace(date); s != "" {
		d, err := ParseDate(s)
		if err != nil {
			return Query{}, err
		}
		day := user.WeekdayOf(d.Weekday())
		q.Day = &day
	}

	if s := strings.TrimSpace(startAt); s != "" {
		m, err := ParseClock(s)
		if err != nil {
			return Query{}, err
		}
		q.StartAt = &m
	}
	if s := strings.TrimSpace(endAt); s != "" {
		m, err := ParseClock(s)
		if err != nil {
			return Query{}, err
		}
		q.EndAt = &m
	}
	if q.StartAt != nil && q.EndAt != nil && *q.StartAt >= *q.EndAt {
		return Query{}, ErrInvalidWindow
	}

	return q, nil
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
// Only the calendar date as written is kept, so the weekday never shifts with
// the server timezone.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(time.DateOnly, s); err == nil {
		return d, nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, ErrInvalidDate
}

// ParseClock converts HH:MM to minutes since midnight. 24:00 is accepted as the
// end of the day.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(mm) != 2 || len(hh) == 0 || len(hh) > 2 {
		return 0, ErrInvalidTime
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, ErrInvalidTime
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, ErrInvalidTime
	}
	if h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, ErrInvalidTime
	}
	return h*60 + m, nil
}

func FormatClock(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	return twoDigits(h) + ":" + twoDigits(m)
}

func twoDigits(v int) string {
	if v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

// Covers reports whether a single interval makes the profile bookable for q.
func Covers(iv user.AvailabilityInterval, q Query) bool {
	if q.Day == nil {
		return true
	}
	if iv.Day != *q.Day || !iv.IsActive {
		return false
	}
	if q.StartAt != nil && iv.StartAt > *q.StartAt {
		return false
	}
	if q.EndAt != nil && iv.EndAt < *q.EndAt {
		return false
	}
	return true
}

// Available reports whether any interval of the schedule covers q. Without a
// day constraint every schedule qualifies.
func Available(schedule []user.AvailabilityInterval, q Query) bool {
	if q.Day == nil {
		return true
	}
	for _, iv := range schedule {
		if Covers(iv, q) {
			return true
		}
	}
	return false
}

// Matches applies the account and schedule rules to one candidate.
func Matches(c user.Candidate, q Query) bool {
	if c.Account.Role != q.Role || !c.Account.IsApproved {
		return false
	}
	return Available(c.Profile.Schedule, q)
}

func (q Query) Filter(p Page) user.AvailabilityFilter {
	return user.AvailabilityFilter{
		Role:    q.Role,
		Day:     q.Day,
		StartAt: q.StartAt,
		EndAt:   q.EndAt,
		Limit:   p.Limit,
		Offset:  p.Offset(),
	}
}
