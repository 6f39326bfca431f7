package wheel

import "time"

const hoursPerDay = 24

// Dates in this package are civil dates: midnight UTC, so that day
// arithmetic never crosses a DST transition.
func civilDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf truncates t to its calendar date as observed in t's own location.
func DateOf(t time.Time) time.Time {
	return civilDate(t.Year(), t.Month(), t.Day())
}

// DefaultStart returns the Monday on or before January 1 of year.
func DefaultStart(year int) time.Time {
	jan1 := civilDate(year, time.January, 1)
	return jan1.AddDate(0, 0, -weekdayIndex(jan1))
}

// EndOfYear returns December 31 of year.
func EndOfYear(year int) time.Time {
	return civilDate(year, time.December, 31)
}

func IsLeapDay(d time.Time) bool {
	return d.Month() == time.February && d.Day() == 29
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// weekdayIndex maps Monday to 0 and Sunday to 6.
func weekdayIndex(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / hoursPerDay)
}

func dayString(d time.Time) string {
	return d.Format(time.DateOnly)
}
