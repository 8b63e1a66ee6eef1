// Package clock converts between instants and the day-of-year and
// minute-of-day scrubbing controls.
package clock

import (
	"math"
	"time"
)

// MinutesPerDay is the number of minutes in a day.
const MinutesPerDay = 1440

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeap(year) {
		return 366
	}
	return 365
}

// ClampDayOfYear clamps doy into [1, DaysInYear(year)].
func ClampDayOfYear(year, doy int) int {
	if doy < 1 {
		return 1
	}
	if n := DaysInYear(year); doy > n {
		return n
	}
	return doy
}

// DateFromDayOfYear returns midnight of day doy of year in loc. Day 1 is
// January 1st; out-of-range days roll into the neighbouring years.
func DateFromDayOfYear(year, doy int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(year, time.January, doy, 0, 0, 0, 0, loc)
}

// DayOfYear returns t's day of year in t's location, starting at 1.
func DayOfYear(t time.Time) int {
	return t.YearDay()
}

// MinutesOfDay returns the minutes since midnight on t's wall clock.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// WithMinutes sets t's wall clock to minutes after midnight, zeroing seconds.
// Values outside [0, MinutesPerDay) move into the adjacent days.
func WithMinutes(t time.Time, minutes int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, minutes, 0, 0, t.Location())
}

// LocalSolarTime shifts t's UTC instant by lon/15 hours. The result is
// expressed in UTC so its wall clock reads local mean solar time.
func LocalSolarTime(t time.Time, lon float64) time.Time {
	offset := time.Duration(math.Round(lon / 15 * float64(time.Hour)))
	return t.UTC().Add(offset)
}

// FromSolarTime inverts LocalSolarTime.
func FromSolarTime(solar time.Time, lon float64) time.Time {
	offset := time.Duration(math.Round(lon / 15 * float64(time.Hour)))
	return solar.Add(-offset).UTC()
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatTime formats t as HH:MM.
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}
