package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/maida-inc/maida/internal/shared/constants"
)

// SubscriptionModel represents the database persistence model for subscriptions
// This is the anti-corruption layer between domain and database
type SubscriptionModel struct {
	ID         uint   `gorm:"primarykey"`
	SID        string `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: sub_xxx"`
	CustomerID uint   `gorm:"not null;index:idx_customer_subscription"`
	PlanID     string `gorm:"not null;size:50;index:idx_plan_subscription"`
	Status     string `gorm:"not null;size:20;index:idx_status"`
	Duration   string `gorm:"not null;size:4;comment:duration code W1/W2/M1"`
	// Weekdays is the standing pattern as comma-joined codes (mon,wed,fri).
	// Empty for explicit-date subscriptions.
	Weekdays   string    `gorm:"size:32"`
	StartsAt   time.Time `gorm:"not null"`
	RenewsAt   time.Time `gorm:"not null;index:idx_renews_at"`
	PauseCount int       `gorm:"not null;default:0"`
	PausedAt   *time.Time
	ResumesAt  *time.Time
	Subtotal   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Discount   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Total      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Version    int             `gorm:"not null;default:1"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}

// BeforeCreate hook for GORM
func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.Version == 0 {
		s.Version = 1
	}
	return nil
}
