package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/maida-inc/maida/internal/domain/delivery"
	"github.com/maida-inc/maida/internal/infrastructure/persistence/mappers"
	"github.com/maida-inc/maida/internal/infrastructure/persistence/models"
	"github.com/maida-inc/maida/internal/shared/db"
	"github.com/maida-inc/maida/internal/shared/logger"
)

type DeliveryRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.DeliveryMapper
	logger logger.Interface
}

func NewDeliveryRepository(
	gormDB *gorm.DB,
	logger logger.Interface,
) delivery.Repository {
	return &DeliveryRepositoryImpl{
		db:     gormDB,
		mapper: mappers.NewDeliveryMapper(),
		logger: logger,
	}
}

func (r *DeliveryRepositoryImpl) CreateBatch(ctx context.Context, deliveries []*delivery.Delivery) error {
	if len(deliveries) == 0 {
		return nil
	}

	deliveryModels := make([]*models.DeliveryModel, 0, len(deliveries))
	for _, entity := range deliveries {
		model, err := r.mapper.ToModel(entity)
		if err != nil {
			r.logger.Errorw("failed to map delivery entity to model", "error", err)
			return fmt.Errorf("failed to map delivery entity: %w", err)
		}
		deliveryModels = append(deliveryModels, model)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(&deliveryModels).Error; err != nil {
		r.logger.Errorw("failed to create deliveries in database", "error", err, "count", len(deliveryModels))
		return fmt.Errorf("failed to create deliveries: %w", err)
	}

	for i, model := range deliveryModels {
		if err := deliveries[i].SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set delivery ID: %w", err)
		}
	}

	return nil
}

func (r *DeliveryRepositoryImpl) GetBySID(ctx context.Context, sid string) (*delivery.Delivery, error) {
	var model models.DeliveryModel

	if err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get delivery by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get delivery: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map delivery model to entity", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to map delivery: %w", err)
	}
	return entity, nil
}

func (r *DeliveryRepositoryImpl) ListBySubscription(ctx context.Context, subscriptionID uint) ([]*delivery.Delivery, error) {
	var deliveryModels []*models.DeliveryModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("subscription_id = ?", subscriptionID).
		Order("date ASC").
		Find(&deliveryModels).Error; err != nil {
		r.logger.Errorw("failed to list deliveries", "subscription_id", subscriptionID, "error", err)
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}

	return r.mapper.ToEntities(deliveryModels)
}

func (r *DeliveryRepositoryImpl) ListPending(ctx context.Context, subscriptionID uint) ([]*delivery.Delivery, error) {
	var deliveryModels []*models.DeliveryModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("subscription_id = ? AND status = ?", subscriptionID, delivery.StatusPending.String()).
		Order("date ASC").
		Find(&deliveryModels).Error; err != nil {
		r.logger.Errorw("failed to list pending deliveries", "subscription_id", subscriptionID, "error", err)
		return nil, fmt.Errorf("failed to list pending deliveries: %w", err)
	}

	return r.mapper.ToEntities(deliveryModels)
}

func (r *DeliveryRepositoryImpl) NextPending(ctx context.Context, subscriptionID uint, onOrAfter time.Time) (*delivery.Delivery, error) {
	var model models.DeliveryModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("subscription_id = ? AND status = ? AND date >= ?",
			subscriptionID, delivery.StatusPending.String(), onOrAfter).
		Order("date ASC").
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get next pending delivery", "subscription_id", subscriptionID, "error", err)
		return nil, fmt.Errorf("failed to get next pending delivery: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		return nil, fmt.Errorf("failed to map delivery: %w", err)
	}
	return entity, nil
}

func (r *DeliveryRepositoryImpl) DeletePendingFrom(ctx context.Context, subscriptionID uint, from time.Time) error {
	result := db.GetTxFromContext(ctx, r.db).
		Where("subscription_id = ? AND status = ? AND date >= ?",
			subscriptionID, delivery.StatusPending.String(), from).
		Delete(&models.DeliveryModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete pending deliveries", "subscription_id", subscriptionID, "error", result.Error)
		return fmt.Errorf("failed to delete pending deliveries: %w", result.Error)
	}

	r.logger.Debugw("pending deliveries cleared",
		"subscription_id", subscriptionID, "from", from, "count", result.RowsAffected)
	return nil
}

func (r *DeliveryRepositoryImpl) ShiftPendingFrom(ctx context.Context, subscriptionID uint, from time.Time, days int) error {
	tx := db.GetTxFromContext(ctx, r.db)

	// Date arithmetic in Go keeps this portable across MySQL and SQLite.
	var deliveryModels []*models.DeliveryModel
	if err := tx.
		Where("subscription_id = ? AND status = ? AND date >= ?",
			subscriptionID, delivery.StatusPending.String(), from).
		Find(&deliveryModels).Error; err != nil {
		r.logger.Errorw("failed to load pending deliveries for shift", "subscription_id", subscriptionID, "error", err)
		return fmt.Errorf("failed to shift pending deliveries: %w", err)
	}

	now := time.Now().UTC()
	for _, model := range deliveryModels {
		if err := tx.
			Model(&models.DeliveryModel{}).
			Where("id = ?", model.ID).
			Updates(map[string]interface{}{
				"date":       model.Date.AddDate(0, 0, days),
				"updated_at": now,
			}).Error; err != nil {
			r.logger.Errorw("failed to shift pending delivery", "id", model.ID, "error", err)
			return fmt.Errorf("failed to shift pending deliveries: %w", err)
		}
	}

	r.logger.Debugw("pending deliveries shifted",
		"subscription_id", subscriptionID, "days", days, "count", len(deliveryModels))
	return nil
}

func (r *DeliveryRepositoryImpl) CancelPendingFrom(ctx context.Context, subscriptionID uint, from time.Time) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.DeliveryModel{}).
		Where("subscription_id = ? AND status = ? AND date >= ?",
			subscriptionID, delivery.StatusPending.String(), from).
		Updates(map[string]interface{}{
			"status":     delivery.StatusCanceled.String(),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to cancel pending deliveries", "subscription_id", subscriptionID, "error", result.Error)
		return fmt.Errorf("failed to cancel pending deliveries: %w", result.Error)
	}

	return nil
}

func (r *DeliveryRepositoryImpl) Update(ctx context.Context, entity *delivery.Delivery) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map delivery entity to model", "error", err)
		return fmt.Errorf("failed to map delivery entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.DeliveryModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"date":       model.Date,
			"status":     model.Status,
			"window":     model.Window,
			"address":    model.Address,
			"updated_at": model.UpdatedAt,
		}).Error; err != nil {
		r.logger.Errorw("failed to update delivery", "id", model.ID, "error", err)
		return fmt.Errorf("failed to update delivery: %w", err)
	}

	return nil
}
