// Package dateutil provides pure calendar-date helpers for delivery
// scheduling. All storage and arithmetic is in UTC; time-of-day is
// irrelevant to scheduling, so dates are normalized to UTC midnight.
//
// Every function returns a new value. Nothing here mutates its input.
package dateutil

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// StartOfDay returns the UTC midnight of the given instant.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days after t, preserving UTC midnight
// normalization when t is already a date.
func AddDays(t time.Time, n int) time.Time {
	return t.UTC().AddDate(0, 0, n)
}

// Tomorrow returns the start of the day after the given instant. This is
// the earliest date any delivery may be scheduled for.
func Tomorrow(now time.Time) time.Time {
	return AddDays(StartOfDay(now), 1)
}

// NextDayOnOrAfter returns t itself when t is exactly a UTC midnight,
// otherwise the midnight that follows it. Use it to turn a notice
// deadline into the first full calendar date that satisfies it.
func NextDayOnOrAfter(t time.Time) time.Time {
	day := StartOfDay(t)
	if day.Equal(t.UTC()) {
		return day
	}
	return AddDays(day, 1)
}

// SameDate reports whether two instants fall on the same UTC calendar day.
func SameDate(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}

// DaysBetween returns the number of whole calendar days from a to b.
// Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a)).Hours() / 24)
}

// Parse parses a YYYY-MM-DD string as a UTC calendar date.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: %w", s, err)
	}
	return t.UTC(), nil
}

// Format renders a date as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
