package usecases

import (
	"context"
	"fmt"

	deliverydto "github.com/maida-inc/maida/internal/application/delivery/dto"
	"github.com/maida-inc/maida/internal/application/subscription/dto"
	"github.com/maida-inc/maida/internal/domain/delivery"
	"github.com/maida-inc/maida/internal/domain/subscription"
	"github.com/maida-inc/maida/internal/shared/errors"
	"github.com/maida-inc/maida/internal/shared/logger"
)

type GetSubscriptionCommand struct {
	SubscriptionID string
}

type GetSubscriptionResult struct {
	Subscription *dto.SubscriptionDTO
	Deliveries   []*deliverydto.DeliveryDTO
}

type GetSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	deliveryRepo     delivery.Repository
	logger           logger.Interface
}

func NewGetSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	deliveryRepo delivery.Repository,
	logger logger.Interface,
) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		deliveryRepo:     deliveryRepo,
		logger:           logger,
	}
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, cmd GetSubscriptionCommand) (*GetSubscriptionResult, error) {
	sub, err := uc.subscriptionRepo.GetBySID(ctx, cmd.SubscriptionID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found")
	}

	deliveries, err := uc.deliveryRepo.ListBySubscription(ctx, sub.ID())
	if err != nil {
		uc.logger.Errorw("failed to list deliveries", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}

	return &GetSubscriptionResult{
		Subscription: dto.ToSubscriptionDTO(sub),
		Deliveries:   deliverydto.ToDeliveryDTOList(deliveries),
	}, nil
}
