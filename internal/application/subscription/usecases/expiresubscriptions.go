package usecases

import (
	"context"
	"fmt"

	"github.com/maida-inc/maida/internal/domain/delivery"
	"github.com/maida-inc/maida/internal/domain/subscription"
	svo "github.com/maida-inc/maida/internal/domain/subscription/valueobjects"
	"github.com/maida-inc/maida/internal/shared/clock"
	"github.com/maida-inc/maida/internal/shared/dateutil"
	"github.com/maida-inc/maida/internal/shared/logger"
)

// ExpireSubscriptionsUseCase sweeps active subscriptions whose committed
// period has ended and flips them to expired. Meant to run periodically;
// each subscription is handled in its own transaction so one failure
// does not block the rest of the sweep.
type ExpireSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
	deliveryRepo     delivery.Repository
	txManager        TransactionManager
	clock            clock.Clock
	logger           logger.Interface
}

func NewExpireSubscriptionsUseCase(
	subscriptionRepo subscription.Repository,
	deliveryRepo delivery.Repository,
	txManager TransactionManager,
	clk clock.Clock,
	logger logger.Interface,
) *ExpireSubscriptionsUseCase {
	return &ExpireSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		deliveryRepo:     deliveryRepo,
		txManager:        txManager,
		clock:            clk,
		logger:           logger,
	}
}

// Execute returns the number of subscriptions expired.
func (uc *ExpireSubscriptionsUseCase) Execute(ctx context.Context) (int, error) {
	now := uc.clock.Now()
	tomorrow := dateutil.Tomorrow(now)

	subs, err := uc.subscriptionRepo.ListActiveExpiredBefore(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to list expired subscriptions: %w", err)
	}

	expired := 0
	for _, candidate := range subs {
		sid := candidate.SID()
		err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
			sub, err := uc.subscriptionRepo.GetBySIDForUpdate(txCtx, sid)
			if err != nil {
				return fmt.Errorf("failed to get subscription: %w", err)
			}
			// Re-check under the lock; the subscription may have been
			// renewed, paused, or canceled since the listing.
			if sub == nil || !sub.Status().CanTransitionTo(svo.StatusExpired) || !sub.RenewsAt().Before(now) {
				return nil
			}

			if err := sub.MarkExpired(); err != nil {
				return err
			}
			if err := uc.deliveryRepo.CancelPendingFrom(txCtx, sub.ID(), tomorrow); err != nil {
				return fmt.Errorf("failed to cancel pending deliveries: %w", err)
			}
			if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
				return fmt.Errorf("failed to update subscription: %w", err)
			}
			return nil
		})
		if err != nil {
			uc.logger.Warnw("failed to expire subscription", "error", err, "subscription_id", sid)
			continue
		}
		expired++
	}

	if expired > 0 {
		uc.logger.Infow("expired subscriptions swept", "count", expired)
	}
	return expired, nil
}
