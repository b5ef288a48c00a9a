package subscription

import (
	"context"
	"time"
)

// Repository is the persistence boundary for subscriptions.
// Implementations return (nil, nil) when a record does not exist.
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	GetBySID(ctx context.Context, sid string) (*Subscription, error)
	// GetBySIDForUpdate loads the subscription under a row-level write
	// lock. Must be called inside a transaction; concurrent writers for
	// the same subscription serialize behind the lock.
	GetBySIDForUpdate(ctx context.Context, sid string) (*Subscription, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]*Subscription, error)
	// ListActiveExpiredBefore returns active subscriptions whose
	// committed period ended before the given instant.
	ListActiveExpiredBefore(ctx context.Context, at time.Time) ([]*Subscription, error)
	Update(ctx context.Context, sub *Subscription) error
}
