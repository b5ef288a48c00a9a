package dto

import (
	"time"

	"github.com/maida-inc/maida/internal/domain/delivery"
	"github.com/maida-inc/maida/internal/shared/dateutil"
)

// DeliveryDTO is the presentation shape of one scheduled delivery.
type DeliveryDTO struct {
	ID             string `json:"id"`
	SubscriptionID string `json:"subscription_id,omitempty"`
	Date           string `json:"date"`
	Window         string `json:"window"`
	Address        string `json:"address"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// ToDeliveryDTO converts a delivery entity to its presentation shape.
func ToDeliveryDTO(d *delivery.Delivery) *DeliveryDTO {
	if d == nil {
		return nil
	}
	return &DeliveryDTO{
		ID:        d.SID(),
		Date:      dateutil.Format(d.Date()),
		Window:    string(d.Window()),
		Address:   d.Address(),
		Status:    d.Status().String(),
		CreatedAt: d.CreatedAt().Format(time.RFC3339),
		UpdatedAt: d.UpdatedAt().Format(time.RFC3339),
	}
}

// ToDeliveryDTOList batch converts deliveries. Returns an empty slice
// for nil input.
func ToDeliveryDTOList(deliveries []*delivery.Delivery) []*DeliveryDTO {
	dtos := make([]*DeliveryDTO, 0, len(deliveries))
	for _, d := range deliveries {
		if d != nil {
			dtos = append(dtos, ToDeliveryDTO(d))
		}
	}
	return dtos
}
