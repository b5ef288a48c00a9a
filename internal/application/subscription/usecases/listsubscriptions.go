package usecases

import (
	"context"
	"fmt"

	"github.com/maida-inc/maida/internal/application/subscription/dto"
	"github.com/maida-inc/maida/internal/domain/subscription"
	"github.com/maida-inc/maida/internal/shared/logger"
)

type ListSubscriptionsCommand struct {
	CustomerID uint
}

type ListSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewListSubscriptionsUseCase(
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *ListSubscriptionsUseCase {
	return &ListSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *ListSubscriptionsUseCase) Execute(ctx context.Context, cmd ListSubscriptionsCommand) ([]*dto.SubscriptionDTO, error) {
	subs, err := uc.subscriptionRepo.ListByCustomer(ctx, cmd.CustomerID)
	if err != nil {
		uc.logger.Errorw("failed to list subscriptions", "error", err, "customer_id", cmd.CustomerID)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return dto.ToSubscriptionDTOList(subs), nil
}
