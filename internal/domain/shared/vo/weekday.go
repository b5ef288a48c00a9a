package vo

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Weekday is a three-letter lowercase weekday code as persisted
// (mon..sun). The literals are part of the persisted contract.
type Weekday string

const (
	Monday    Weekday = "mon"
	Tuesday   Weekday = "tue"
	Wednesday Weekday = "wed"
	Thursday  Weekday = "thu"
	Friday    Weekday = "fri"
	Saturday  Weekday = "sat"
	Sunday    Weekday = "sun"
)

var weekdayFromTime = map[time.Weekday]Weekday{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// weekdayOrder fixes mon..sun ordering for normalized output.
var weekdayOrder = map[Weekday]int{
	Monday: 0, Tuesday: 1, Wednesday: 2, Thursday: 3, Friday: 4, Saturday: 5, Sunday: 6,
}

// ParseWeekday validates and converts a raw weekday code.
func ParseWeekday(s string) (Weekday, error) {
	w := Weekday(strings.ToLower(s))
	if _, ok := weekdayOrder[w]; !ok {
		return "", fmt.Errorf("invalid weekday code: %s", s)
	}
	return w, nil
}

func (w Weekday) String() string {
	return string(w)
}

func (w Weekday) IsValid() bool {
	_, ok := weekdayOrder[w]
	return ok
}

// WeekdayOf returns the code for a calendar date.
func WeekdayOf(t time.Time) Weekday {
	return weekdayFromTime[t.UTC().Weekday()]
}

// WeekdaySet is an unordered set of weekday codes.
type WeekdaySet map[Weekday]struct{}

// NewWeekdaySet builds a set from raw codes, rejecting unknown values.
// Duplicates collapse silently.
func NewWeekdaySet(codes []string) (WeekdaySet, error) {
	set := make(WeekdaySet, len(codes))
	for _, c := range codes {
		w, err := ParseWeekday(c)
		if err != nil {
			return nil, err
		}
		set[w] = struct{}{}
	}
	return set, nil
}

// Contains reports whether the set includes the weekday of the given date.
func (s WeekdaySet) Contains(t time.Time) bool {
	_, ok := s[WeekdayOf(t)]
	return ok
}

// Size returns the number of distinct weekdays.
func (s WeekdaySet) Size() int {
	return len(s)
}

// IsEmpty reports whether no weekday is selected. An empty preference
// means the subscription runs on one-off explicit dates only.
func (s WeekdaySet) IsEmpty() bool {
	return len(s) == 0
}

// Codes returns the codes sorted mon..sun.
func (s WeekdaySet) Codes() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, string(w))
	}
	sort.Slice(out, func(i, j int) bool {
		return weekdayOrder[Weekday(out[i])] < weekdayOrder[Weekday(out[j])]
	})
	return out
}
