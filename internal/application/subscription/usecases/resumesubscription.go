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

type ResumeSubscriptionCommand struct {
	SubscriptionID string
	// ResumeDate is optional. When nil the subscription resumes on its
	// next already-shifted pending delivery, or on the earliest date the
	// kitchen can serve.
	ResumeDate *time.Time
}

// ResumeSubscriptionUseCase reactivates a paused subscription. Pending
// deliveries were shifted once at pause time and are never shifted
// again here.
type ResumeSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	deliveryRepo     delivery.Repository
	txManager        TransactionManager
	clock            clock.Clock
	scheduling       config.SchedulingConfig
	logger           logger.Interface
}

func NewResumeSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	deliveryRepo delivery.Repository,
	txManager TransactionManager,
	clk clock.Clock,
	scheduling config.SchedulingConfig,
	logger logger.Interface,
) *ResumeSubscriptionUseCase {
	return &ResumeSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		deliveryRepo:     deliveryRepo,
		txManager:        txManager,
		clock:            clk,
		scheduling:       scheduling,
		logger:           logger,
	}
}

func (uc *ResumeSubscriptionUseCase) Execute(ctx context.Context, cmd ResumeSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	now := uc.clock.Now()
	notice := time.Duration(uc.scheduling.ResumeNoticeHours) * time.Hour
	// Rounding the deadline up keeps the full notice period at date
	// granularity.
	earliest := dateutil.NextDayOnOrAfter(now.Add(notice))

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

		var from time.Time
		if cmd.ResumeDate != nil {
			from = dateutil.StartOfDay(*cmd.ResumeDate)
			if from.Before(earliest) {
				return errors.NewValidationError(
					fmt.Sprintf("resume date must give the kitchen at least %d hours notice",
						uc.scheduling.ResumeNoticeHours))
			}
		} else {
			next, err := uc.deliveryRepo.NextPending(txCtx, sub.ID(), earliest)
			if err != nil {
				return fmt.Errorf("failed to find next pending delivery: %w", err)
			}
			from = earliest
			if next != nil {
				from = next.Date()
			}
		}

		if err := sub.Resume(from, now); err != nil {
			return err
		}

		if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to resume subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, err
	}

	uc.logger.Infow("subscription resumed",
		"subscription_id", cmd.SubscriptionID,
		"resumes_at", dateutil.Format(*sub.ResumesAt()),
	)
	return dto.ToSubscriptionDTO(sub), nil
}
