package wheel

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

const (
	DaysPerWeek         = 7
	WeeksPerCustomMonth = 4
)

type Status uint8

const (
	StatusFuture Status = iota
	StatusCompleted
	StatusCurrent
	StatusLeapToday
	StatusLeapFuture
)

var statusNames = [...]string{
	StatusFuture:     "future",
	StatusCompleted:  "completed",
	StatusCurrent:    "current",
	StatusLeapToday:  "leap-today",
	StatusLeapFuture: "leap-future",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}

	return "status(" + strconv.Itoa(int(s)) + ")"
}

// Classify reports how d is colored relative to today.
func Classify(d, today time.Time) Status {
	switch {
	case d.Before(today):
		return StatusCompleted
	case d.Equal(today):
		if IsLeapDay(d) {
			return StatusLeapToday
		}
		return StatusCurrent
	default:
		if IsLeapDay(d) {
			return StatusLeapFuture
		}
		return StatusFuture
	}
}

// Day is one daily wedge: Week selects the angular sector and Weekday the
// radial ring, counted from the start of the week (Monday=0 for the default
// start).
type Day struct {
	Date    time.Time
	Offset  int
	Week    int
	Weekday int
	Status  Status
}

// MonthBoundary marks the first rendered day of a Gregorian month.
type MonthBoundary struct {
	Month  time.Month
	Label  string
	Offset int
	Week   int
}

// CustomMonth is a run of up to four weeks in the thirteen month scheme.
type CustomMonth struct {
	Number    int
	FirstWeek int
	Weeks     int
	Label     string
}

func (m CustomMonth) Partial() bool {
	return m.Weeks < WeeksPerCustomMonth
}

type Layout struct {
	Year       int
	LeapYear   bool
	Start      time.Time
	End        time.Time
	Today      time.Time
	TotalWeeks int

	Days         []Day
	Months       []MonthBoundary
	CustomMonths []CustomMonth
}

var errStartAfterEnd = errors.New("start date is after the end of the year")

// TotalWeeks returns the number of week sectors needed so that end falls in
// the last one.
func TotalWeeks(start, end time.Time) int {
	days := daysBetween(start, end) + 1
	if days <= 0 {
		return 0
	}

	return (days + DaysPerWeek - 1) / DaysPerWeek
}

// NewLayout computes the week and day layout of year. A zero start means
// DefaultStart(year). today must already be a calendar date.
func NewLayout(year int, start, today time.Time) (*Layout, error) {
	if year < 1 {
		return nil, fmt.Errorf("invalid year %d", year)
	}

	if start.IsZero() {
		start = DefaultStart(year)
	} else {
		start = DateOf(start)
	}

	end := EndOfYear(year)
	if start.After(end) {
		return nil, fmt.Errorf("%w: %s > %s", errStartAfterEnd, dayString(start), dayString(end))
	}

	l := &Layout{
		Year:       year,
		LeapYear:   isLeapYear(year),
		Start:      start,
		End:        end,
		Today:      DateOf(today),
		TotalWeeks: TotalWeeks(start, end),
	}

	l.Days = make([]Day, 0, daysBetween(start, end)+1)
	currentMonth := start.Month()

	for week := 0; week < l.TotalWeeks; week++ {
		weekStart := start.AddDate(0, 0, week*DaysPerWeek)

		for weekday := 0; weekday < DaysPerWeek; weekday++ {
			date := weekStart.AddDate(0, 0, weekday)

			// the final week may run past December 31
			if date.After(end) {
				break
			}

			offset := week*DaysPerWeek + weekday

			if date.Month() != currentMonth {
				currentMonth = date.Month()
				l.Months = append(l.Months, MonthBoundary{
					Month:  currentMonth,
					Label:  date.Format("Jan"),
					Offset: offset,
					Week:   week,
				})
			}

			l.Days = append(l.Days, Day{
				Date:    date,
				Offset:  offset,
				Week:    week,
				Weekday: weekday,
				Status:  Classify(date, l.Today),
			})
		}
	}

	l.CustomMonths = customMonths(l.TotalWeeks)

	return l, nil
}

func customMonths(totalWeeks int) []CustomMonth {
	full := totalWeeks / WeeksPerCustomMonth
	months := make([]CustomMonth, 0, full+1)

	for i := 0; i < full; i++ {
		months = append(months, CustomMonth{
			Number:    i + 1,
			FirstWeek: i * WeeksPerCustomMonth,
			Weeks:     WeeksPerCustomMonth,
		})
	}

	if remainder := totalWeeks % WeeksPerCustomMonth; remainder != 0 {
		months = append(months, CustomMonth{
			Number:    full + 1,
			FirstWeek: full * WeeksPerCustomMonth,
			Weeks:     remainder,
		})
	}

	for i := range months {
		months[i].Label = "M" + strconv.Itoa(months[i].Number)
	}

	return months
}

// DayOf returns the day at date, if it is rendered.
func (l *Layout) DayOf(date time.Time) (Day, bool) {
	offset := daysBetween(l.Start, DateOf(date))
	if offset < 0 || offset >= len(l.Days) {
		return Day{}, false
	}

	return l.Days[offset], true
}

// DayNumber is today's 1-based position within [Start, End], clamped to the range.
func (l *Layout) DayNumber() int {
	n := daysBetween(l.Start, l.Today) + 1

	return min(max(n, 0), len(l.Days))
}
