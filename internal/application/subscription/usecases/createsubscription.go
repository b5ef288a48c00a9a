package usecases

import (
	"context"
	"fmt"
	"time"

	deliverydto "github.com/maida-inc/maida/internal/application/delivery/dto"
	"github.com/maida-inc/maida/internal/application/subscription/dto"
	"github.com/maida-inc/maida/internal/domain/delivery"
	"github.com/maida-inc/maida/internal/domain/pricing"
	"github.com/maida-inc/maida/internal/domain/shared/vo"
	"github.com/maida-inc/maida/internal/domain/subscription"
	"github.com/maida-inc/maida/internal/shared/clock"
	"github.com/maida-inc/maida/internal/shared/config"
	"github.com/maida-inc/maida/internal/shared/dateutil"
	"github.com/maida-inc/maida/internal/shared/errors"
	"github.com/maida-inc/maida/internal/shared/logger"
)

type CreateSubscriptionCommand struct {
	CustomerID uint
	PlanID     string
	MainMeals  int
	Breakfast  bool
	Snacks     int
	Duration   string
	Dates      []time.Time
	Weekdays   []string
	StartDate  time.Time
	Window     string
	Address    string
	PromoCode  string
}

type CreateSubscriptionResult struct {
	Subscription *dto.SubscriptionDTO
	Breakdown    *pricing.PriceBreakdown
	Deliveries   []*deliverydto.DeliveryDTO
}

// CreateSubscriptionUseCase prices a selection, generates its initial
// delivery calendar, and persists both in one transaction. A failure
// anywhere leaves no partial subscription behind.
type CreateSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	deliveryRepo     delivery.Repository
	quoter           PriceQuoter
	scheduler        ScheduleBuilder
	txManager        TransactionManager
	clock            clock.Clock
	scheduling       config.SchedulingConfig
	logger           logger.Interface
}

func NewCreateSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	deliveryRepo delivery.Repository,
	quoter PriceQuoter,
	scheduler ScheduleBuilder,
	txManager TransactionManager,
	clk clock.Clock,
	scheduling config.SchedulingConfig,
	logger logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		deliveryRepo:     deliveryRepo,
		quoter:           quoter,
		scheduler:        scheduler,
		txManager:        txManager,
		clock:            clk,
		scheduling:       scheduling,
		logger:           logger,
	}
}

func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*CreateSubscriptionResult, error) {
	duration, err := vo.ParseDurationCode(cmd.Duration)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	window, err := delivery.ParseWindow(cmd.Window)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Address == "" {
		return nil, errors.NewValidationError("delivery address is required")
	}

	now := uc.clock.Now()
	tomorrow := dateutil.Tomorrow(now)

	start := dateutil.StartOfDay(cmd.StartDate)
	if cmd.StartDate.IsZero() {
		start = tomorrow
	}
	if start.Before(tomorrow) {
		return nil, errors.NewValidationError("subscription cannot start before tomorrow")
	}

	plan, weekdays, err := buildDatePlan(cmd.Dates, cmd.Weekdays)
	if err != nil {
		return nil, err
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

	breakdown, err := uc.quoter.Quote(ctx, sel, now)
	if err != nil {
		return nil, err
	}

	// The calendar never extends past the committed period end.
	periodEnd := dateutil.AddDays(start, duration.Days())
	horizon := dateutil.AddDays(tomorrow, uc.scheduling.HorizonDays)
	if periodEnd.Before(horizon) {
		horizon = periodEnd
	}

	dates, err := uc.scheduler.Generate(plan, start, duration, horizon)
	if err != nil {
		return nil, err
	}

	sub, err := subscription.NewSubscription(
		cmd.CustomerID,
		cmd.PlanID,
		duration,
		weekdays,
		start,
		breakdown.Subtotal,
		breakdown.Subtotal.Sub(breakdown.Total),
		breakdown.Total,
	)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	var created []*delivery.Delivery
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.subscriptionRepo.Create(txCtx, sub); err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}

		created = make([]*delivery.Delivery, 0, len(dates))
		for _, date := range dates {
			d, err := delivery.NewDelivery(sub.ID(), date, window, cmd.Address)
			if err != nil {
				return fmt.Errorf("failed to build delivery: %w", err)
			}
			created = append(created, d)
		}

		if err := uc.deliveryRepo.CreateBatch(txCtx, created); err != nil {
			return fmt.Errorf("failed to create delivery schedule: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create subscription", "error", err, "customer_id", cmd.CustomerID)
		return nil, err
	}

	uc.logger.Infow("subscription created",
		"subscription_id", sub.SID(),
		"customer_id", cmd.CustomerID,
		"plan_id", cmd.PlanID,
		"deliveries", len(created),
		"total", breakdown.Total.StringFixed(2),
	)

	return &CreateSubscriptionResult{
		Subscription: dto.ToSubscriptionDTO(sub),
		Breakdown:    breakdown,
		Deliveries:   deliverydto.ToDeliveryDTOList(created),
	}, nil
}

// buildDatePlan resolves the two mutually exclusive ways of picking
// delivery days into one plan.
func buildDatePlan(dates []time.Time, weekdayCodes []string) (vo.DatePlan, vo.WeekdaySet, error) {
	switch {
	case len(dates) > 0 && len(weekdayCodes) > 0:
		return vo.DatePlan{}, nil, errors.NewValidationError(
			"choose either explicit dates or a weekday pattern, not both")
	case len(dates) > 0:
		return vo.NewExplicitDates(dates), nil, nil
	case len(weekdayCodes) > 0:
		set, err := vo.NewWeekdaySet(weekdayCodes)
		if err != nil {
			return vo.DatePlan{}, nil, errors.NewValidationError(err.Error())
		}
		return vo.NewWeekdayPattern(set), set, nil
	default:
		return vo.DatePlan{}, nil, errors.NewValidationError("delivery days are required")
	}
}
