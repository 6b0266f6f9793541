// Package clock holds the pure calendar arithmetic the ledger is built
// on. All functions work in the location of their arguments; an instant
// at exactly midnight belongs to the day that starts there.
package clock

import (
	"math"
	"time"
)

// StartOfDay returns midnight of t's calendar date.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Monday on or before t's date
// (ISO weeks start on Monday; a Sunday maps to the Monday six days
// earlier).
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	// time.Weekday counts Sunday as 0.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// DaysBetween counts the calendar-day boundaries crossed going from a
// to b, signed. Rounding absorbs DST transitions, where a calendar day
// is not exactly 24 hours long.
func DaysBetween(a, b time.Time) int {
	diff := StartOfDay(b).Sub(StartOfDay(a))
	return int(math.Round(diff.Hours() / 24))
}

// WeeksBetween counts the ISO-week boundaries crossed going from a to
// b, signed.
func WeeksBetween(a, b time.Time) int {
	return DaysBetween(StartOfWeek(a), StartOfWeek(b)) / 7
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}

// SameWeek reports whether a and b fall in the same ISO week.
func SameWeek(a, b time.Time) bool {
	return StartOfWeek(a).Equal(StartOfWeek(b))
}
