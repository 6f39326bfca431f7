package wheel

import (
	"fmt"
	"time"
)

// CentralTimezone is the location "today" is observed in unless configured otherwise.
const CentralTimezone = "America/Chicago"

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

var SystemClock Clock = ClockFunc(time.Now)

// FixedClock always reports t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// Today returns the current calendar date in loc. A nil clock reads the
// system clock and a nil location means UTC.
func Today(clock Clock, loc *time.Location) time.Time {
	if clock == nil {
		clock = SystemClock
	}

	if loc == nil {
		loc = time.UTC
	}

	return DateOf(clock.Now().In(loc))
}

func LoadCentral() (*time.Location, error) {
	loc, err := time.LoadLocation(CentralTimezone)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", CentralTimezone, err)
	}

	return loc, nil
}
