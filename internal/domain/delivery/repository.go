package delivery

import (
	"context"
	"time"
)

// Repository is the persistence boundary for deliveries.
// Implementations return (nil, nil) when a record does not exist.
type Repository interface {
	CreateBatch(ctx context.Context, deliveries []*Delivery) error
	GetBySID(ctx context.Context, sid string) (*Delivery, error)
	// ListBySubscription returns every delivery for a subscription,
	// ordered by date ascending.
	ListBySubscription(ctx context.Context, subscriptionID uint) ([]*Delivery, error)
	// ListPending returns pending deliveries ordered by date ascending.
	ListPending(ctx context.Context, subscriptionID uint) ([]*Delivery, error)
	// NextPending returns the earliest pending delivery on or after the
	// given date, or nil when there is none.
	NextPending(ctx context.Context, subscriptionID uint, onOrAfter time.Time) (*Delivery, error)
	// DeletePendingFrom removes pending deliveries dated on or after
	// from. Resolved deliveries are never touched.
	DeletePendingFrom(ctx context.Context, subscriptionID uint, from time.Time) error
	// ShiftPendingFrom moves every pending delivery dated on or after
	// from forward by days.
	ShiftPendingFrom(ctx context.Context, subscriptionID uint, from time.Time, days int) error
	// CancelPendingFrom flips pending deliveries dated on or after from
	// to canceled.
	CancelPendingFrom(ctx context.Context, subscriptionID uint, from time.Time) error
	Update(ctx context.Context, d *Delivery) error
}
