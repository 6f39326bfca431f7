package wheel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return civilDate(year, month, day)
}

func jan1(year int) time.Time {
	return date(year, time.January, 1)
}

func TestDefaultStart(t *testing.T) {
	tests := []struct {
		year int
		want time.Time
	}{
		{2018, date(2018, time.January, 1)},
		{2023, date(2022, time.December, 26)},
		{2012, date(2011, time.December, 26)},
		{2020, date(2019, time.December, 30)},
		{2024, date(2024, time.January, 1)},
		{2025, date(2024, time.December, 30)},
		{2026, date(2025, time.December, 29)},
	}

	for _, tt := range tests {
		got := DefaultStart(tt.year)
		assert.Equal(t, tt.want, got, "year %d", tt.year)
		assert.Equal(t, time.Monday, got.Weekday(), "year %d", tt.year)
	}
}

func TestLayoutRendersEveryDateOnce(t *testing.T) {
	for year := 1999; year <= 2040; year++ {
		l, err := NewLayout(year, time.Time{}, date(year, time.June, 1))
		require.NoError(t, err)

		require.NotEmpty(t, l.Days)
		assert.Equal(t, l.Start, l.Days[0].Date, "year %d", year)
		assert.Equal(t, EndOfYear(year), l.Days[len(l.Days)-1].Date, "year %d", year)
		assert.Len(t, l.Days, daysBetween(l.Start, l.End)+1, "year %d", year)

		for i := 1; i < len(l.Days); i++ {
			prev, cur := l.Days[i-1], l.Days[i]

			assert.Equal(t, prev.Date.AddDate(0, 0, 1), cur.Date, "gap or duplicate in %d at %s", year, dayString(cur.Date))
			assert.Greater(t, cur.Week*DaysPerWeek+cur.Weekday, prev.Week*DaysPerWeek+prev.Weekday)
			assert.Equal(t, weekdayIndex(cur.Date), cur.Weekday, "ring of %s", dayString(cur.Date))
		}
	}
}

func TestLastWeekContainsDecember31(t *testing.T) {
	for year := 2000; year <= 2030; year++ {
		for shift := 0; shift < 40; shift++ {
			start := DefaultStart(year).AddDate(0, 0, shift)

			l, err := NewLayout(year, start, start)
			require.NoError(t, err)

			last := l.Days[len(l.Days)-1]
			assert.Equal(t, EndOfYear(year), last.Date)
			assert.Equal(t, l.TotalWeeks-1, last.Week, "year %d start %s", year, dayString(start))
		}
	}
}

func TestTotalWeeks(t *testing.T) {
	assert.Equal(t, 54, TotalWeeks(date(2011, time.December, 26), date(2012, time.December, 31)))
	assert.Equal(t, 53, TotalWeeks(date(2024, time.January, 1), date(2024, time.December, 31)))
	assert.Equal(t, 53, TotalWeeks(date(2024, time.December, 30), date(2025, time.December, 31)))
	assert.Equal(t, 52, TotalWeeks(date(2023, time.January, 2), date(2023, time.December, 31)))
	assert.Equal(t, 1, TotalWeeks(date(2023, time.December, 31), date(2023, time.December, 31)))
	assert.Equal(t, 0, TotalWeeks(date(2024, time.January, 1), date(2023, time.December, 31)))
}

func TestClassify(t *testing.T) {
	today := date(2024, time.March, 10)
	leapDay := date(2024, time.February, 29)

	tests := []struct {
		name  string
		day   time.Time
		today time.Time
		want  Status
	}{
		{"past", date(2024, time.March, 9), today, StatusCompleted},
		{"today", today, today, StatusCurrent},
		{"future", date(2024, time.March, 11), today, StatusFuture},
		{"past leap day", leapDay, today, StatusCompleted},
		{"leap day today", leapDay, leapDay, StatusLeapToday},
		{"future leap day", leapDay, date(2024, time.February, 1), StatusLeapFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.day, tt.today))
		})
	}
}

func TestCustomMonths(t *testing.T) {
	tests := []struct {
		totalWeeks  int
		full        int
		partialWeek int
	}{
		{52, 13, 0},
		{53, 13, 1},
		{54, 13, 2},
		{55, 13, 3},
		{56, 14, 0},
	}

	for _, tt := range tests {
		months := customMonths(tt.totalWeeks)

		var full, partial int
		covered := 0
		for i, m := range months {
			assert.Equal(t, i+1, m.Number)
			assert.Equal(t, covered, m.FirstWeek)
			covered += m.Weeks

			if m.Partial() {
				partial++
				assert.Equal(t, tt.partialWeek, m.Weeks)
			} else {
				full++
			}
		}

		assert.Equal(t, tt.totalWeeks, covered)
		assert.Equal(t, tt.full, full, "%d weeks", tt.totalWeeks)
		assert.Equal(t, tt.partialWeek != 0, partial == 1, "%d weeks", tt.totalWeeks)
		assert.LessOrEqual(t, partial, 1)
	}

	assert.Equal(t, "M14", customMonths(54)[13].Label)
}

func TestMonthBoundaries(t *testing.T) {
	for year := 2000; year <= 2040; year++ {
		l, err := NewLayout(year, time.Time{}, jan1(year))
		require.NoError(t, err)

		want := 11
		if l.Start.Month() == time.December {
			want = 12
		}

		require.Len(t, l.Months, want, "year %d", year)
		assert.Equal(t, time.December, l.Months[len(l.Months)-1].Month)
		assert.Equal(t, "Dec", l.Months[len(l.Months)-1].Label)

		for _, m := range l.Months {
			day := l.Days[m.Offset]
			assert.Equal(t, 1, day.Date.Day())
			assert.Equal(t, m.Week, day.Week)
		}
	}
}

func TestLeapYearScenario(t *testing.T) {
	l, err := NewLayout(2024, time.Time{}, date(2024, time.January, 15))
	require.NoError(t, err)

	assert.True(t, l.LeapYear)
	assert.Equal(t, date(2024, time.January, 1), l.Start)
	assert.Equal(t, 53, l.TotalWeeks)
	assert.Len(t, l.Days, 366)
	assert.Equal(t, date(2024, time.December, 31), l.Days[len(l.Days)-1].Date)

	leap, ok := l.DayOf(date(2024, time.February, 29))
	require.True(t, ok)
	assert.Equal(t, StatusLeapFuture, leap.Status)

	l, err = NewLayout(2024, time.Time{}, date(2024, time.February, 29))
	require.NoError(t, err)

	leap, ok = l.DayOf(date(2024, time.February, 29))
	require.True(t, ok)
	assert.Equal(t, StatusLeapToday, leap.Status)
}

func TestLeapYearStartingOnSundayNeeds54Weeks(t *testing.T) {
	l, err := NewLayout(2012, time.Time{}, date(2012, time.March, 1))
	require.NoError(t, err)

	assert.Equal(t, date(2011, time.December, 26), l.Start)
	assert.Equal(t, 54, l.TotalWeeks)
	assert.Len(t, l.Days, 6+366)
	require.Len(t, l.CustomMonths, 14)
	assert.Equal(t, 2, l.CustomMonths[13].Weeks)

	l, err = NewLayout(2024, date(2023, time.December, 25), date(2024, time.March, 1))
	require.NoError(t, err)
	assert.Equal(t, 54, l.TotalWeeks)
}

func TestCurrentDateScenario(t *testing.T) {
	today := date(2025, time.June, 15)

	l, err := NewLayout(2025, date(2024, time.December, 30), today)
	require.NoError(t, err)

	for _, d := range l.Days {
		switch {
		case d.Date.Before(today):
			assert.Equal(t, StatusCompleted, d.Status, dayString(d.Date))
		case d.Date.Equal(today):
			assert.Equal(t, StatusCurrent, d.Status)
		default:
			assert.Equal(t, StatusFuture, d.Status, dayString(d.Date))
		}
	}

	assert.Equal(t, 168, l.DayNumber())
}

func TestEvenlyDivisibleYearHasNoPartialMonth(t *testing.T) {
	l, err := NewLayout(2023, date(2023, time.January, 2), date(2023, time.May, 1))
	require.NoError(t, err)

	assert.Equal(t, 364, len(l.Days))
	assert.Equal(t, 52, l.TotalWeeks)
	require.Len(t, l.CustomMonths, 13)

	for _, m := range l.CustomMonths {
		assert.False(t, m.Partial(), m.Label)
	}
}

func TestTrailingDaysAreSkipped(t *testing.T) {
	l, err := NewLayout(2018, time.Time{}, jan1(2018))
	require.NoError(t, err)

	assert.Equal(t, 53, l.TotalWeeks)

	var lastWeek []Day
	for _, d := range l.Days {
		if d.Week == l.TotalWeeks-1 {
			lastWeek = append(lastWeek, d)
		}
	}

	require.Len(t, lastWeek, 1)
	assert.Equal(t, date(2018, time.December, 31), lastWeek[0].Date)

	_, ok := l.DayOf(date(2019, time.January, 1))
	assert.False(t, ok)
}

func TestNewLayoutRejectsInvalidInput(t *testing.T) {
	_, err := NewLayout(2024, date(2025, time.January, 1), jan1(2024))
	assert.ErrorIs(t, err, errStartAfterEnd)

	_, err = NewLayout(0, time.Time{}, jan1(2024))
	assert.Error(t, err)
}
