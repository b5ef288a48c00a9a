package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/maida-inc/maida/internal/domain/pricing"
	"github.com/maida-inc/maida/internal/infrastructure/persistence/models"
	"github.com/maida-inc/maida/internal/shared/db"
	"github.com/maida-inc/maida/internal/shared/errors"
	"github.com/maida-inc/maida/internal/shared/logger"
)

// PlanCatalogRepository backs the pricing engine's plan lookups and the
// storefront's plan listing.
type PlanCatalogRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPlanCatalogRepository(gormDB *gorm.DB, logger logger.Interface) *PlanCatalogRepository {
	return &PlanCatalogRepository{db: gormDB, logger: logger}
}

var _ pricing.PlanCatalog = (*PlanCatalogRepository)(nil)
var _ pricing.PlanLister = (*PlanCatalogRepository)(nil)

func (r *PlanCatalogRepository) Multiplier(ctx context.Context, planID string) (float64, error) {
	var model models.PlanModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("sid = ? AND active = ?", planID, true).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, errors.NewNotFoundError("plan not found", planID)
		}
		r.logger.Errorw("failed to get plan", "plan_id", planID, "error", err)
		return 0, fmt.Errorf("failed to get plan: %w", err)
	}

	return model.Multiplier, nil
}

func (r *PlanCatalogRepository) ListActive(ctx context.Context) ([]pricing.Plan, error) {
	var planModels []*models.PlanModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("active = ?", true).
		Order("multiplier ASC").
		Find(&planModels).Error; err != nil {
		r.logger.Errorw("failed to list plans", "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	plans := make([]pricing.Plan, 0, len(planModels))
	for _, model := range planModels {
		plans = append(plans, pricing.Plan{
			ID:         model.SID,
			Name:       model.Name,
			Multiplier: model.Multiplier,
		})
	}
	return plans, nil
}
