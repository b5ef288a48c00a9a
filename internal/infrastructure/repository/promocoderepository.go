package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/maida-inc/maida/internal/domain/pricing"
	"github.com/maida-inc/maida/internal/infrastructure/persistence/models"
	"github.com/maida-inc/maida/internal/shared/db"
	"github.com/maida-inc/maida/internal/shared/logger"
)

// PromoCodeRepository answers active promo rates from the promo_codes
// table. Unknown or lapsed codes resolve to a zero rate, never an error;
// a bad code silently earns nothing instead of blocking checkout.
type PromoCodeRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPromoCodeRepository(gormDB *gorm.DB, logger logger.Interface) *PromoCodeRepository {
	return &PromoCodeRepository{db: gormDB, logger: logger}
}

var _ pricing.PromoTable = (*PromoCodeRepository)(nil)

func (r *PromoCodeRepository) ActiveRate(ctx context.Context, code string, at time.Time) (float64, error) {
	var model models.PromoCodeModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("code = ? AND active = ?", code, true).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		r.logger.Errorw("failed to get promo code", "code", code, "error", err)
		return 0, fmt.Errorf("failed to get promo code: %w", err)
	}

	if model.StartsAt != nil && at.Before(*model.StartsAt) {
		return 0, nil
	}
	if model.EndsAt != nil && at.After(*model.EndsAt) {
		return 0, nil
	}

	return model.Rate, nil
}
