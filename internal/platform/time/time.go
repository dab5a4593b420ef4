// Package time holds clock and calendar day helpers
package time

import "time"

// Clock returns the current time, swap it in tests
type Clock func() time.Time

// System is the wall clock
var System Clock = time.Now

// Day truncates t to local midnight of its calendar day
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Today is Day(c())
func (c Clock) Today() time.Time { return Day(c()) }

// MonthBounds returns the first and the true last day of t's month
func MonthBounds(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first, first.AddDate(0, 1, -1)
}

// WeekBounds returns Monday and Sunday of t's week
func WeekBounds(t time.Time) (time.Time, time.Time) {
	d := Day(t)
	offset := (int(d.Weekday()) + 6) % 7
	mon := d.AddDate(0, 0, -offset)
	return mon, mon.AddDate(0, 0, 6)
}

// ParseDate parses YYYY-MM-DD in loc
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, s, loc)
}

// Ptr returns &t or nil for the zero time
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
