package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/maida-inc/maida/internal/application/subscription/dto"
	"github.com/maida-inc/maida/internal/domain/delivery"
	"github.com/maida-inc/maida/internal/domain/subscription"
	"github.com/maida-inc/maida/internal/shared/clock"
	"github.com/maida-inc/maida/internal/shared/config"
	"github.com/maida-inc/maida/internal/shared/dateutil"
	"github.com/maida-inc/maida/internal/shared/errors"
	"github.com/maida-inc/maida/internal/shared/logger"
)

type PauseSubscriptionCommand struct {
	SubscriptionID string
	Days           int
}

// PauseSubscriptionUseCase suspends a subscription and pushes its
// pending deliveries forward by the pause length. The subscription row
// is loaded under a write lock so two concurrent pause requests cannot
// both pass the lifetime-cap check.
type PauseSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	deliveryRepo     delivery.Repository
	txManager        TransactionManager
	clock            clock.Clock
	scheduling       config.SchedulingConfig
	logger           logger.Interface
}

func NewPauseSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	deliveryRepo delivery.Repository,
	txManager TransactionManager,
	clk clock.Clock,
	scheduling config.SchedulingConfig,
	logger logger.Interface,
) *PauseSubscriptionUseCase {
	return &PauseSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		deliveryRepo:     deliveryRepo,
		txManager:        txManager,
		clock:            clk,
		scheduling:       scheduling,
		logger:           logger,
	}
}

func (uc *PauseSubscriptionUseCase) Execute(ctx context.Context, cmd PauseSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	if !uc.allowedPauseLength(cmd.Days) {
		return nil, errors.NewValidationError(
			fmt.Sprintf("pause length must be one of %v days", uc.scheduling.PauseMenuDays))
	}

	now := uc.clock.Now()
	today := dateutil.StartOfDay(now)
	notice := time.Duration(uc.scheduling.PauseNoticeHours) * time.Hour

	var sub *subscription.Subscription
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		sub, err = uc.subscriptionRepo.GetBySIDForUpdate(txCtx, cmd.SubscriptionID)
		if err != nil {
			return fmt.Errorf("failed to get subscription: %w", err)
		}
		if sub == nil {
			return errors.NewNotFoundError("subscription not found")
		}

		// A box still pending today is always inside the notice window.
		next, err := uc.deliveryRepo.NextPending(txCtx, sub.ID(), today)
		if err != nil {
			return fmt.Errorf("failed to find next pending delivery: %w", err)
		}
		if next != nil && next.Date().Sub(now) < notice {
			return errors.NewConflictError(
				fmt.Sprintf("pausing requires %d hours notice before the next delivery on %s",
					uc.scheduling.PauseNoticeHours, dateutil.Format(next.Date())))
		}

		if err := sub.Pause(cmd.Days, now); err != nil {
			return err
		}

		if err := uc.deliveryRepo.ShiftPendingFrom(txCtx, sub.ID(), today, cmd.Days); err != nil {
			return fmt.Errorf("failed to shift pending deliveries: %w", err)
		}

		if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to pause subscription",
			"error", err, "subscription_id", cmd.SubscriptionID, "days", cmd.Days)
		return nil, err
	}

	uc.logger.Infow("subscription paused",
		"subscription_id", cmd.SubscriptionID,
		"days", cmd.Days,
		"renews_at", dateutil.Format(sub.RenewsAt()),
	)
	return dto.ToSubscriptionDTO(sub), nil
}

func (uc *PauseSubscriptionUseCase) allowedPauseLength(days int) bool {
	for _, d := range uc.scheduling.PauseMenuDays {
		if days == d {
			return true
		}
	}
	return false
}
