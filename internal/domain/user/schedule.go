package user

import (
	"errors"
	"fmt"
	"time"
)

const MinutesPerDay = 24 * 60

var ErrInvalidInterval = errors.New("invalid availability interval")

// Weekday is the English day name, independent of any locale.
type Weekday string

const (
	Sunday    Weekday = "Sunday"
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
)

func WeekdayOf(d time.Weekday) Weekday {
	return Weekday(d.String())
}

func ParseWeekday(s string) (Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == s {
			return Weekday(s), true
		}
	}
	return "", false
}

type AvailabilityInterval struct {
	Day      Weekday `json:"day" bson:"day"`
	IsActive bool    `json:"isActive" bson:"isActive"`
	StartAt  int     `json:"startAt" bson:"startAt"`
	EndAt    int     `json:"endAt" bson:"endAt"`
}

func (iv AvailabilityInterval) Validate() error {
	if _, ok := ParseWeekday(string(iv.Day)); !ok {
		return fmt.Errorf("%w: unknown day %q", ErrInvalidInterval, iv.Day)
	}
	if iv.StartAt < 0 || iv.EndAt > MinutesPerDay || iv.StartAt >= iv.EndAt {
		return fmt.Errorf("%w: window %d-%d", ErrInvalidInterval, iv.StartAt, iv.EndAt)
	}
	return nil
}
