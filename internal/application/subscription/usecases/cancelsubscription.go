package usecases

import (
	"context"
	"fmt"

	"github.com/maida-inc/maida/internal/application/subscription/dto"
	"github.com/maida-inc/maida/internal/domain/delivery"
	"github.com/maida-inc/maida/internal/domain/subscription"
	"github.com/maida-inc/maida/internal/shared/clock"
	"github.com/maida-inc/maida/internal/shared/dateutil"
	"github.com/maida-inc/maida/internal/shared/errors"
	"github.com/maida-inc/maida/internal/shared/logger"
)

type CancelSubscriptionCommand struct {
	SubscriptionID string
}

// CancelSubscriptionUseCase flips the subscription to canceled and voids
// its future pending deliveries. The subscription row is kept; only hard
// account deletion ever removes it.
type CancelSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	deliveryRepo     delivery.Repository
	txManager        TransactionManager
	clock            clock.Clock
	logger           logger.Interface
}

func NewCancelSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	deliveryRepo delivery.Repository,
	txManager TransactionManager,
	clk clock.Clock,
	logger logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		deliveryRepo:     deliveryRepo,
		txManager:        txManager,
		clock:            clk,
		logger:           logger,
	}
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	tomorrow := dateutil.Tomorrow(uc.clock.Now())

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

		if err := sub.Cancel(); err != nil {
			return err
		}

		// Today's delivery may already be on a truck; only tomorrow
		// onward is voided.
		if err := uc.deliveryRepo.CancelPendingFrom(txCtx, sub.ID(), tomorrow); err != nil {
			return fmt.Errorf("failed to cancel pending deliveries: %w", err)
		}

		if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to cancel subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, err
	}

	uc.logger.Infow("subscription canceled", "subscription_id", cmd.SubscriptionID)
	return dto.ToSubscriptionDTO(sub), nil
}
