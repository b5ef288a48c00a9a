package usecases

import (
	"context"
	"fmt"

	"github.com/maida-inc/maida/internal/application/delivery/dto"
	"github.com/maida-inc/maida/internal/domain/delivery"
	"github.com/maida-inc/maida/internal/shared/errors"
	"github.com/maida-inc/maida/internal/shared/logger"
)

type MarkDeliveredCommand struct {
	DeliveryID string
}

// MarkDeliveredUseCase records fulfillment of a pending delivery.
type MarkDeliveredUseCase struct {
	deliveryRepo delivery.Repository
	logger       logger.Interface
}

func NewMarkDeliveredUseCase(
	deliveryRepo delivery.Repository,
	logger logger.Interface,
) *MarkDeliveredUseCase {
	return &MarkDeliveredUseCase{
		deliveryRepo: deliveryRepo,
		logger:       logger,
	}
}

func (uc *MarkDeliveredUseCase) Execute(ctx context.Context, cmd MarkDeliveredCommand) (*dto.DeliveryDTO, error) {
	d, err := uc.deliveryRepo.GetBySID(ctx, cmd.DeliveryID)
	if err != nil {
		uc.logger.Errorw("failed to get delivery", "error", err, "delivery_id", cmd.DeliveryID)
		return nil, fmt.Errorf("failed to get delivery: %w", err)
	}
	if d == nil {
		return nil, errors.NewNotFoundError("delivery not found")
	}

	if err := d.MarkDelivered(); err != nil {
		return nil, err
	}
	if err := uc.deliveryRepo.Update(ctx, d); err != nil {
		uc.logger.Errorw("failed to update delivery", "error", err, "delivery_id", cmd.DeliveryID)
		return nil, fmt.Errorf("failed to update delivery: %w", err)
	}

	uc.logger.Infow("delivery fulfilled", "delivery_id", cmd.DeliveryID)
	return dto.ToDeliveryDTO(d), nil
}
