package usecases

import (
	"context"
	"fmt"

	"github.com/maida-inc/maida/internal/application/delivery/dto"
	"github.com/maida-inc/maida/internal/domain/delivery"
	"github.com/maida-inc/maida/internal/domain/subscription"
	"github.com/maida-inc/maida/internal/shared/errors"
	"github.com/maida-inc/maida/internal/shared/logger"
)

type ListDeliveriesCommand struct {
	SubscriptionID string
	// PendingOnly restricts the listing to unresolved deliveries.
	PendingOnly bool
}

type ListDeliveriesUseCase struct {
	subscriptionRepo subscription.Repository
	deliveryRepo     delivery.Repository
	logger           logger.Interface
}

func NewListDeliveriesUseCase(
	subscriptionRepo subscription.Repository,
	deliveryRepo delivery.Repository,
	logger logger.Interface,
) *ListDeliveriesUseCase {
	return &ListDeliveriesUseCase{
		subscriptionRepo: subscriptionRepo,
		deliveryRepo:     deliveryRepo,
		logger:           logger,
	}
}

func (uc *ListDeliveriesUseCase) Execute(ctx context.Context, cmd ListDeliveriesCommand) ([]*dto.DeliveryDTO, error) {
	sub, err := uc.subscriptionRepo.GetBySID(ctx, cmd.SubscriptionID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found")
	}

	var deliveries []*delivery.Delivery
	if cmd.PendingOnly {
		deliveries, err = uc.deliveryRepo.ListPending(ctx, sub.ID())
	} else {
		deliveries, err = uc.deliveryRepo.ListBySubscription(ctx, sub.ID())
	}
	if err != nil {
		uc.logger.Errorw("failed to list deliveries", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}

	return dto.ToDeliveryDTOList(deliveries), nil
}
