package usecases

import (
	"context"
	"time"

	"github.com/maida-inc/maida/internal/domain/pricing"
	"github.com/maida-inc/maida/internal/domain/shared/vo"
	"github.com/maida-inc/maida/internal/shared/clock"
	"github.com/maida-inc/maida/internal/shared/errors"
	"github.com/maida-inc/maida/internal/shared/logger"
)

// PriceQuoter prices a meal selection at a given instant.
type PriceQuoter interface {
	Quote(ctx context.Context, sel pricing.MealSelection, at time.Time) (*pricing.PriceBreakdown, error)
}

type QuotePriceCommand struct {
	PlanID    string
	MainMeals int
	Breakfast bool
	Snacks    int
	Duration  string
	Dates     []time.Time
	Weekdays  []string
	PromoCode string
}

// QuotePriceUseCase prices a selection without creating anything. The
// checkout page calls it on every change of the selection.
type QuotePriceUseCase struct {
	quoter PriceQuoter
	clock  clock.Clock
	logger logger.Interface
}

func NewQuotePriceUseCase(quoter PriceQuoter, clk clock.Clock, logger logger.Interface) *QuotePriceUseCase {
	return &QuotePriceUseCase{quoter: quoter, clock: clk, logger: logger}
}

func (uc *QuotePriceUseCase) Execute(ctx context.Context, cmd QuotePriceCommand) (*pricing.PriceBreakdown, error) {
	duration, err := vo.ParseDurationCode(cmd.Duration)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	var plan vo.DatePlan
	switch {
	case len(cmd.Dates) > 0 && len(cmd.Weekdays) > 0:
		return nil, errors.NewValidationError("choose either explicit dates or a weekday pattern, not both")
	case len(cmd.Dates) > 0:
		plan = vo.NewExplicitDates(cmd.Dates)
	case len(cmd.Weekdays) > 0:
		set, err := vo.NewWeekdaySet(cmd.Weekdays)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		plan = vo.NewWeekdayPattern(set)
	default:
		return nil, errors.NewValidationError("delivery days are required")
	}

	sel := pricing.MealSelection{
		PlanID:    cmd.PlanID,
		MainMeals: cmd.MainMeals,
		Breakfast: cmd.Breakfast,
		Snacks:    cmd.Snacks,
		Days:      plan,
		Duration:  duration,
		PromoCode: cmd.PromoCode,
	}

	breakdown, err := uc.quoter.Quote(ctx, sel, uc.clock.Now())
	if err != nil {
		if !errors.IsAppError(err) {
			uc.logger.Errorw("failed to quote selection", "error", err, "plan_id", cmd.PlanID)
		}
		return nil, err
	}
	return breakdown, nil
}
