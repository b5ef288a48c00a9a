package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/maida-inc/maida/internal/domain/subscription"
	svo "github.com/maida-inc/maida/internal/domain/subscription/valueobjects"
	"github.com/maida-inc/maida/internal/infrastructure/persistence/mappers"
	"github.com/maida-inc/maida/internal/infrastructure/persistence/models"
	"github.com/maida-inc/maida/internal/shared/db"
	"github.com/maida-inc/maida/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(
	gormDB *gorm.DB,
	logger logger.Interface,
) subscription.Repository {
	return &SubscriptionRepositoryImpl{
		db:     gormDB,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, entity *subscription.Subscription) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map subscription entity to model", "error", err)
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription in database", "error", err)
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set subscription ID: %w", err)
	}

	r.logger.Infow("subscription created", "id", model.ID, "sid", model.SID, "customer_id", model.CustomerID)
	return nil
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return r.mapEntity(&model)
}

func (r *SubscriptionRepositoryImpl) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return r.mapEntity(&model)
}

// GetBySIDForUpdate loads the row under FOR UPDATE. Concurrent writers
// for the same subscription serialize behind the lock, which is what
// keeps the single lifetime pause single under racing requests.
func (r *SubscriptionRepositoryImpl) GetBySIDForUpdate(ctx context.Context, sid string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("sid = ?", sid).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription for update", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return r.mapEntity(&model)
}

func (r *SubscriptionRepositoryImpl) ListByCustomer(ctx context.Context, customerID uint) ([]*subscription.Subscription, error) {
	var subscriptionModels []*models.SubscriptionModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&subscriptionModels).Error; err != nil {
		r.logger.Errorw("failed to list subscriptions by customer", "customer_id", customerID, "error", err)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	return r.mapper.ToEntities(subscriptionModels)
}

func (r *SubscriptionRepositoryImpl) ListActiveExpiredBefore(ctx context.Context, at time.Time) ([]*subscription.Subscription, error) {
	var subscriptionModels []*models.SubscriptionModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("status = ? AND renews_at < ?", svo.StatusActive.String(), at).
		Find(&subscriptionModels).Error; err != nil {
		r.logger.Errorw("failed to list lapsed subscriptions", "error", err)
		return nil, fmt.Errorf("failed to list lapsed subscriptions: %w", err)
	}

	return r.mapper.ToEntities(subscriptionModels)
}

func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, entity *subscription.Subscription) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map subscription entity to model", "error", err)
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SubscriptionModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]interface{}{
			"status":      model.Status,
			"weekdays":    model.Weekdays,
			"renews_at":   model.RenewsAt,
			"pause_count": model.PauseCount,
			"paused_at":   model.PausedAt,
			"resumes_at":  model.ResumesAt,
			"subtotal":    model.Subtotal,
			"discount":    model.Discount,
			"total":       model.Total,
			"version":     model.Version,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("subscription %d was modified concurrently", model.ID)
	}

	return nil
}

func (r *SubscriptionRepositoryImpl) mapEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	entity, err := r.mapper.ToEntity(model)
	if err != nil {
		r.logger.Errorw("failed to map subscription model to entity", "id", model.ID, "error", err)
		return nil, fmt.Errorf("failed to map subscription: %w", err)
	}
	return entity, nil
}
