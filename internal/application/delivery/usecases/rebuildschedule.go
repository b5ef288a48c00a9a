package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/maida-inc/maida/internal/application/delivery/dto"
	"github.com/maida-inc/maida/internal/domain/delivery"
	"github.com/maida-inc/maida/internal/domain/shared/vo"
	"github.com/maida-inc/maida/internal/domain/subscription"
	svo "github.com/maida-inc/maida/internal/domain/subscription/valueobjects"
	"github.com/maida-inc/maida/internal/shared/clock"
	"github.com/maida-inc/maida/internal/shared/config"
	"github.com/maida-inc/maida/internal/shared/dateutil"
	"github.com/maida-inc/maida/internal/shared/errors"
	"github.com/maida-inc/maida/internal/shared/logger"
)

type RebuildScheduleCommand struct {
	SubscriptionID string
	// Weekdays optionally replaces the standing delivery-day pattern
	// before the rebuild.
	Weekdays []string
	// FromDate is the first date the rebuild may touch. Zero means
	// tomorrow.
	FromDate time.Time
}

// RebuildScheduleUseCase regenerates the pending part of a delivery
// calendar from a standing weekday pattern. Resolved deliveries and
// pending deliveries before FromDate are never touched, so running the
// same rebuild twice yields the same calendar.
type RebuildScheduleUseCase struct {
	subscriptionRepo subscription.Repository
	deliveryRepo     delivery.Repository
	scheduler        ScheduleBuilder
	txManager        TransactionManager
	clock            clock.Clock
	scheduling       config.SchedulingConfig
	logger           logger.Interface
}

func NewRebuildScheduleUseCase(
	subscriptionRepo subscription.Repository,
	deliveryRepo delivery.Repository,
	scheduler ScheduleBuilder,
	txManager TransactionManager,
	clk clock.Clock,
	scheduling config.SchedulingConfig,
	logger logger.Interface,
) *RebuildScheduleUseCase {
	return &RebuildScheduleUseCase{
		subscriptionRepo: subscriptionRepo,
		deliveryRepo:     deliveryRepo,
		scheduler:        scheduler,
		txManager:        txManager,
		clock:            clk,
		scheduling:       scheduling,
		logger:           logger,
	}
}

func (uc *RebuildScheduleUseCase) Execute(ctx context.Context, cmd RebuildScheduleCommand) ([]*dto.DeliveryDTO, error) {
	now := uc.clock.Now()
	tomorrow := dateutil.Tomorrow(now)

	from := dateutil.StartOfDay(cmd.FromDate)
	if cmd.FromDate.IsZero() {
		from = tomorrow
	}
	if from.Before(tomorrow) {
		return nil, errors.NewValidationError("a rebuild cannot touch deliveries before tomorrow")
	}

	var created []*delivery.Delivery
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		sub, err := uc.subscriptionRepo.GetBySIDForUpdate(txCtx, cmd.SubscriptionID)
		if err != nil {
			return fmt.Errorf("failed to get subscription: %w", err)
		}
		if sub == nil {
			return errors.NewNotFoundError("subscription not found")
		}
		if sub.Status() != svo.StatusActive {
			return errors.NewConflictError(
				fmt.Sprintf("cannot rebuild schedule for %s subscription", sub.Status()))
		}

		if len(cmd.Weekdays) > 0 {
			set, err := vo.NewWeekdaySet(cmd.Weekdays)
			if err != nil {
				return errors.NewValidationError(err.Error())
			}
			if err := sub.UpdateWeekdayPreference(set); err != nil {
				return err
			}
		}
		if !sub.HasWeekdayPreference() {
			return errors.NewConflictError("subscription has no standing weekday pattern to rebuild from")
		}

		// The new dates inherit the window and address of the existing
		// calendar.
		existing, err := uc.deliveryRepo.ListBySubscription(txCtx, sub.ID())
		if err != nil {
			return fmt.Errorf("failed to list deliveries: %w", err)
		}
		if len(existing) == 0 {
			return errors.NewConflictError("subscription has no delivery profile to rebuild from")
		}
		last := existing[len(existing)-1]

		horizon := dateutil.AddDays(tomorrow, uc.scheduling.HorizonDays)
		if periodEnd := dateutil.StartOfDay(sub.RenewsAt()); periodEnd.Before(horizon) {
			horizon = periodEnd
		}

		dates, err := uc.scheduler.Expand(vo.NewWeekdayPattern(sub.Weekdays()), from, sub.Duration(), horizon)
		if err != nil {
			return err
		}

		// Deliveries the rebuild does not touch still count toward the
		// duration minimum: resolved rows and pendings before FromDate.
		surviving := 0
		for _, d := range existing {
			if d.Status() == delivery.StatusCanceled {
				continue
			}
			if d.Status() == delivery.StatusPending && !d.Date().Before(from) {
				continue
			}
			surviving++
		}
		if min := sub.Duration().MinSelectedDays(); surviving+len(dates) < min {
			return errors.NewValidationError(
				fmt.Sprintf("rebuild leaves %d delivery days, need at least %d for %s",
					surviving+len(dates), min, sub.Duration()))
		}

		if err := uc.deliveryRepo.DeletePendingFrom(txCtx, sub.ID(), from); err != nil {
			return fmt.Errorf("failed to clear pending deliveries: %w", err)
		}

		created = make([]*delivery.Delivery, 0, len(dates))
		for _, date := range dates {
			d, err := delivery.NewDelivery(sub.ID(), date, last.Window(), last.Address())
			if err != nil {
				return fmt.Errorf("failed to build delivery: %w", err)
			}
			created = append(created, d)
		}
		if err := uc.deliveryRepo.CreateBatch(txCtx, created); err != nil {
			return fmt.Errorf("failed to create delivery schedule: %w", err)
		}

		// The aggregate only changed if the pattern was replaced.
		if len(cmd.Weekdays) > 0 {
			if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
				return fmt.Errorf("failed to update subscription: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to rebuild schedule",
			"error", err, "subscription_id", cmd.SubscriptionID, "from", dateutil.Format(from))
		return nil, err
	}

	uc.logger.Infow("delivery schedule rebuilt",
		"subscription_id", cmd.SubscriptionID,
		"from", dateutil.Format(from),
		"deliveries", len(created),
	)
	return dto.ToDeliveryDTOList(created), nil
}
