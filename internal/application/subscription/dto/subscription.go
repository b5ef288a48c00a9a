package dto

import (
	"time"

	"github.com/maida-inc/maida/internal/domain/subscription"
	"github.com/maida-inc/maida/internal/shared/dateutil"
)

// SubscriptionDTO is the presentation shape of a subscription. Monetary
// amounts are MAD strings with two decimal places.
type SubscriptionDTO struct {
	ID         string   `json:"id"`
	CustomerID uint     `json:"customer_id"`
	PlanID     string   `json:"plan_id"`
	Status     string   `json:"status"`
	Duration   string   `json:"duration"`
	Weekdays   []string `json:"weekdays,omitempty"`
	StartsAt   string   `json:"starts_at"`
	RenewsAt   string   `json:"renews_at"`
	PauseCount int      `json:"pause_count"`
	PausedAt   *string  `json:"paused_at,omitempty"`
	ResumesAt  *string  `json:"resumes_at,omitempty"`
	Subtotal   string   `json:"subtotal"`
	Discount   string   `json:"discount"`
	Total      string   `json:"total"`
	Currency   string   `json:"currency"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
}

// ToSubscriptionDTO converts a subscription aggregate to its
// presentation shape.
func ToSubscriptionDTO(sub *subscription.Subscription) *SubscriptionDTO {
	if sub == nil {
		return nil
	}

	d := &SubscriptionDTO{
		ID:         sub.SID(),
		CustomerID: sub.CustomerID(),
		PlanID:     sub.PlanID(),
		Status:     sub.Status().String(),
		Duration:   sub.Duration().String(),
		Weekdays:   sub.Weekdays().Codes(),
		StartsAt:   dateutil.Format(sub.StartsAt()),
		RenewsAt:   dateutil.Format(sub.RenewsAt()),
		PauseCount: sub.PauseCount(),
		Subtotal:   sub.Subtotal().StringFixed(2),
		Discount:   sub.Discount().StringFixed(2),
		Total:      sub.Total().StringFixed(2),
		Currency:   "MAD",
		CreatedAt:  sub.CreatedAt().Format(time.RFC3339),
		UpdatedAt:  sub.UpdatedAt().Format(time.RFC3339),
	}
	if t := sub.PausedAt(); t != nil {
		s := t.Format(time.RFC3339)
		d.PausedAt = &s
	}
	if t := sub.ResumesAt(); t != nil {
		s := dateutil.Format(*t)
		d.ResumesAt = &s
	}
	return d
}

// ToSubscriptionDTOList batch converts subscriptions. Returns an empty
// slice for nil input.
func ToSubscriptionDTOList(subs []*subscription.Subscription) []*SubscriptionDTO {
	dtos := make([]*SubscriptionDTO, 0, len(subs))
	for _, sub := range subs {
		if sub != nil {
			dtos = append(dtos, ToSubscriptionDTO(sub))
		}
	}
	return dtos
}
