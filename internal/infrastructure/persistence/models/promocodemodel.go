package models

import (
	"time"

	"github.com/maida-inc/maida/internal/shared/constants"
)

// PromoCodeModel represents the database persistence model for seasonal
// promo codes. Codes are stored uppercase; lookups are case-insensitive
// at the domain boundary.
type PromoCodeModel struct {
	ID        uint    `gorm:"primarykey"`
	Code      string  `gorm:"uniqueIndex;not null;size:50"`
	Rate      float64 `gorm:"not null"`
	Active    bool    `gorm:"not null;default:true"`
	StartsAt  *time.Time
	EndsAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (PromoCodeModel) TableName() string {
	return constants.TablePromoCodes
}
