package models

import (
	"time"

	"github.com/maida-inc/maida/internal/shared/constants"
)

// DeliveryModel represents the database persistence model for scheduled
// deliveries. Rows are hard-deleted by schedule rebuilds, so there is no
// soft-delete column.
type DeliveryModel struct {
	ID             uint      `gorm:"primarykey"`
	SID            string    `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: dlv_xxx"`
	SubscriptionID uint      `gorm:"not null;index:idx_subscription_date,priority:1"`
	Date           time.Time `gorm:"not null;index:idx_subscription_date,priority:2"`
	Window         string    `gorm:"not null;size:10"`
	Address        string    `gorm:"not null;size:500"`
	Status         string    `gorm:"not null;size:20;index:idx_delivery_status"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for GORM
func (DeliveryModel) TableName() string {
	return constants.TableDeliveries
}
