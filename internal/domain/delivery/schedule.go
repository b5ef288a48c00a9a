package delivery

import (
	"fmt"
	"time"

	"github.com/maida-inc/maida/internal/domain/shared/vo"
	"github.com/maida-inc/maida/internal/shared/clock"
	"github.com/maida-inc/maida/internal/shared/dateutil"
	"github.com/maida-inc/maida/internal/shared/errors"
)

// ScheduleGenerator turns a date plan into the ordered list of delivery
// dates. It is pure apart from the injected clock, which supplies the
// "not before tomorrow" floor.
type ScheduleGenerator struct {
	clock clock.Clock
}

// NewScheduleGenerator creates a generator over the given time source.
func NewScheduleGenerator(clk clock.Clock) *ScheduleGenerator {
	return &ScheduleGenerator{clock: clk}
}

// Generate produces the sorted delivery dates for a plan.
//
// Explicit-date plans keep exactly the customer-picked dates that fall
// inside [startDate, startDate+duration) and on or after tomorrow.
// Dates are never invented to satisfy the minimum: too few picks is a
// rejection, not an auto-fill.
//
// Weekday plans yield every date whose weekday is in the pattern,
// walking from the later of tomorrow and startDate up to (but not
// including) the horizon. The horizon is supplied by the caller (signup
// uses the configured scheduling horizon; rebuilds cap it at the
// committed period end).
func (g *ScheduleGenerator) Generate(
	plan vo.DatePlan,
	startDate time.Time,
	duration vo.DurationCode,
	horizon time.Time,
) ([]time.Time, error) {
	dates, err := g.Expand(plan, startDate, duration, horizon)
	if err != nil {
		return nil, err
	}

	if min := duration.MinSelectedDays(); len(dates) < min {
		return nil, errors.NewValidationError(
			fmt.Sprintf("schedule yields %d delivery days, need at least %d for %s", len(dates), min, duration),
		)
	}
	return dates, nil
}

// Expand walks the plan without the duration-minimum check. Rebuilds use
// it for partial windows where untouched earlier deliveries already
// count toward the minimum.
func (g *ScheduleGenerator) Expand(
	plan vo.DatePlan,
	startDate time.Time,
	duration vo.DurationCode,
	horizon time.Time,
) ([]time.Time, error) {
	floor := dateutil.Tomorrow(g.clock.Now())

	var dates []time.Time
	switch plan.Mode() {
	case vo.ModeExplicitDates:
		windowStart := dateutil.StartOfDay(startDate)
		windowEnd := dateutil.AddDays(windowStart, duration.Days())
		for _, d := range plan.Dates() {
			if d.Before(floor) || d.Before(windowStart) || !d.Before(windowEnd) {
				continue
			}
			dates = append(dates, d)
		}
	case vo.ModeWeekdayPattern:
		set := plan.Weekdays()
		if set.IsEmpty() {
			return nil, errors.NewValidationError("at least one delivery weekday is required")
		}
		from := floor
		if s := dateutil.StartOfDay(startDate); s.After(from) {
			from = s
		}
		end := dateutil.StartOfDay(horizon)
		for d := from; d.Before(end); d = dateutil.AddDays(d, 1) {
			if set.Contains(d) {
				dates = append(dates, d)
			}
		}
	default:
		return nil, errors.NewValidationError("a delivery date plan is required")
	}

	// Explicit dates arrive pre-sorted from the plan and the weekday walk
	// emits in order, so the result is already ascending.
	return dates, nil
}
