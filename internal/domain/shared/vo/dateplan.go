package vo

import (
	"sort"
	"time"
)

// DatePlanMode tags the two ways a customer picks delivery days.
type DatePlanMode string

const (
	// ModeExplicitDates is the signup flow: the customer hand-picks
	// individual calendar dates inside the subscription window.
	ModeExplicitDates DatePlanMode = "explicit_dates"
	// ModeWeekdayPattern is the standing-preference flow: deliveries
	// recur on a fixed set of weekdays.
	ModeWeekdayPattern DatePlanMode = "weekday_pattern"
)

// DatePlan is the tagged variant over explicit dates and a recurring
// weekday pattern. One schedule generator consumes both shapes so the
// date math lives in a single place.
type DatePlan struct {
	mode     DatePlanMode
	dates    []time.Time
	weekdays WeekdaySet
}

// NewExplicitDates builds a plan from hand-picked dates. Dates are
// normalized to UTC midnight, deduplicated, and sorted ascending.
func NewExplicitDates(dates []time.Time) DatePlan {
	seen := make(map[time.Time]struct{}, len(dates))
	normalized := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		u := d.UTC()
		day := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
		if _, dup := seen[day]; dup {
			continue
		}
		seen[day] = struct{}{}
		normalized = append(normalized, day)
	}
	sort.Slice(normalized, func(i, j int) bool { return normalized[i].Before(normalized[j]) })
	return DatePlan{mode: ModeExplicitDates, dates: normalized}
}

// NewWeekdayPattern builds a plan from a recurring weekday set.
func NewWeekdayPattern(set WeekdaySet) DatePlan {
	return DatePlan{mode: ModeWeekdayPattern, weekdays: set}
}

func (p DatePlan) Mode() DatePlanMode {
	return p.mode
}

// Dates returns the explicit dates (nil for weekday plans).
func (p DatePlan) Dates() []time.Time {
	out := make([]time.Time, len(p.dates))
	copy(out, p.dates)
	return out
}

// Weekdays returns the weekday set (nil for explicit plans).
func (p DatePlan) Weekdays() WeekdaySet {
	return p.weekdays
}

// DayCount returns the number of delivery days this plan yields over the
// given number of weeks. For explicit plans it is the number of picked
// dates regardless of duration; for weekday plans it is one delivery per
// selected weekday per week.
func (p DatePlan) DayCount(weeks int) int {
	switch p.mode {
	case ModeExplicitDates:
		return len(p.dates)
	case ModeWeekdayPattern:
		return p.weekdays.Size() * weeks
	default:
		return 0
	}
}
