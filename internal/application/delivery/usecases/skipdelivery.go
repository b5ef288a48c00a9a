package usecases

import (
	"context"
	"fmt"

	"github.com/maida-inc/maida/internal/application/delivery/dto"
	"github.com/maida-inc/maida/internal/domain/delivery"
	"github.com/maida-inc/maida/internal/shared/clock"
	"github.com/maida-inc/maida/internal/shared/dateutil"
	"github.com/maida-inc/maida/internal/shared/errors"
	"github.com/maida-inc/maida/internal/shared/logger"
)

type SkipDeliveryCommand struct {
	DeliveryID string
}

// SkipDeliveryUseCase resolves a single pending delivery as skipped.
// Skipping is terminal; a later schedule rebuild leaves the row alone.
type SkipDeliveryUseCase struct {
	deliveryRepo delivery.Repository
	clock        clock.Clock
	logger       logger.Interface
}

func NewSkipDeliveryUseCase(
	deliveryRepo delivery.Repository,
	clk clock.Clock,
	logger logger.Interface,
) *SkipDeliveryUseCase {
	return &SkipDeliveryUseCase{
		deliveryRepo: deliveryRepo,
		clock:        clk,
		logger:       logger,
	}
}

func (uc *SkipDeliveryUseCase) Execute(ctx context.Context, cmd SkipDeliveryCommand) (*dto.DeliveryDTO, error) {
	d, err := uc.deliveryRepo.GetBySID(ctx, cmd.DeliveryID)
	if err != nil {
		uc.logger.Errorw("failed to get delivery", "error", err, "delivery_id", cmd.DeliveryID)
		return nil, fmt.Errorf("failed to get delivery: %w", err)
	}
	if d == nil {
		return nil, errors.NewNotFoundError("delivery not found")
	}

	// Today's box is already being assembled.
	if d.Date().Before(dateutil.Tomorrow(uc.clock.Now())) {
		return nil, errors.NewConflictError("it is too late to skip this delivery")
	}

	if err := d.Skip(); err != nil {
		return nil, err
	}
	if err := uc.deliveryRepo.Update(ctx, d); err != nil {
		uc.logger.Errorw("failed to update delivery", "error", err, "delivery_id", cmd.DeliveryID)
		return nil, fmt.Errorf("failed to update delivery: %w", err)
	}

	uc.logger.Infow("delivery skipped", "delivery_id", cmd.DeliveryID, "date", dateutil.Format(d.Date()))
	return dto.ToDeliveryDTO(d), nil
}
