package usecases

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maida-inc/maida/internal/domain/delivery"
	"github.com/maida-inc/maida/internal/domain/pricing"
	"github.com/maida-inc/maida/internal/domain/subscription"
	svo "github.com/maida-inc/maida/internal/domain/subscription/valueobjects"
	"github.com/maida-inc/maida/internal/shared/logger"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)           {}
func (nopLogger) Info(string, ...any)            {}
func (nopLogger) Warn(string, ...any)            {}
func (nopLogger) Error(string, ...any)           {}
func (l nopLogger) With(...any) logger.Interface { return l }
func (l nopLogger) Named(string) logger.Interface {
	return l
}
func (nopLogger) Debugw(string, ...interface{}) {}
func (nopLogger) Infow(string, ...interface{})  {}
func (nopLogger) Warnw(string, ...interface{})  {}
func (nopLogger) Errorw(string, ...interface{}) {}

// fakeTxManager runs the function directly; rollback is not simulated.
type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSubscriptionRepo struct {
	nextID uint
	subs   map[string]*subscription.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[string]*subscription.Subscription)}
}

func (r *fakeSubscriptionRepo) Create(_ context.Context, sub *subscription.Subscription) error {
	r.nextID++
	if err := sub.SetID(r.nextID); err != nil {
		return err
	}
	r.subs[sub.SID()] = sub
	return nil
}

func (r *fakeSubscriptionRepo) add(sub *subscription.Subscription) {
	if sub.ID() == 0 {
		r.nextID++
		_ = sub.SetID(r.nextID)
	}
	r.subs[sub.SID()] = sub
}

func (r *fakeSubscriptionRepo) GetByID(_ context.Context, id uint) (*subscription.Subscription, error) {
	for _, sub := range r.subs {
		if sub.ID() == id {
			return sub, nil
		}
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) GetBySID(_ context.Context, sid string) (*subscription.Subscription, error) {
	return r.subs[sid], nil
}

func (r *fakeSubscriptionRepo) GetBySIDForUpdate(ctx context.Context, sid string) (*subscription.Subscription, error) {
	return r.GetBySID(ctx, sid)
}

func (r *fakeSubscriptionRepo) ListByCustomer(_ context.Context, customerID uint) ([]*subscription.Subscription, error) {
	var out []*subscription.Subscription
	for _, sub := range r.subs {
		if sub.CustomerID() == customerID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) ListActiveExpiredBefore(_ context.Context, at time.Time) ([]*subscription.Subscription, error) {
	var out []*subscription.Subscription
	for _, sub := range r.subs {
		if sub.Status() == svo.StatusActive && sub.RenewsAt().Before(at) {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) Update(_ context.Context, sub *subscription.Subscription) error {
	r.subs[sub.SID()] = sub
	return nil
}

type fakeDeliveryRepo struct {
	nextID     uint
	deliveries []*delivery.Delivery
}

func newFakeDeliveryRepo() *fakeDeliveryRepo {
	return &fakeDeliveryRepo{}
}

func (r *fakeDeliveryRepo) CreateBatch(_ context.Context, deliveries []*delivery.Delivery) error {
	for _, d := range deliveries {
		r.nextID++
		if err := d.SetID(r.nextID); err != nil {
			return err
		}
		r.deliveries = append(r.deliveries, d)
	}
	return nil
}

func (r *fakeDeliveryRepo) add(d *delivery.Delivery) {
	if d.ID() == 0 {
		r.nextID++
		_ = d.SetID(r.nextID)
	}
	r.deliveries = append(r.deliveries, d)
}

func (r *fakeDeliveryRepo) GetBySID(_ context.Context, sid string) (*delivery.Delivery, error) {
	for _, d := range r.deliveries {
		if d.SID() == sid {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeDeliveryRepo) ListBySubscription(_ context.Context, subscriptionID uint) ([]*delivery.Delivery, error) {
	var out []*delivery.Delivery
	for _, d := range r.deliveries {
		if d.SubscriptionID() == subscriptionID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date().Before(out[j].Date()) })
	return out, nil
}

func (r *fakeDeliveryRepo) ListPending(ctx context.Context, subscriptionID uint) ([]*delivery.Delivery, error) {
	all, _ := r.ListBySubscription(ctx, subscriptionID)
	var out []*delivery.Delivery
	for _, d := range all {
		if d.Status() == delivery.StatusPending {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDeliveryRepo) NextPending(ctx context.Context, subscriptionID uint, onOrAfter time.Time) (*delivery.Delivery, error) {
	pending, _ := r.ListPending(ctx, subscriptionID)
	for _, d := range pending {
		if !d.Date().Before(onOrAfter) {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeDeliveryRepo) DeletePendingFrom(_ context.Context, subscriptionID uint, from time.Time) error {
	kept := r.deliveries[:0]
	for _, d := range r.deliveries {
		if d.SubscriptionID() == subscriptionID && d.Status() == delivery.StatusPending && !d.Date().Before(from) {
			continue
		}
		kept = append(kept, d)
	}
	r.deliveries = kept
	return nil
}

func (r *fakeDeliveryRepo) ShiftPendingFrom(_ context.Context, subscriptionID uint, from time.Time, days int) error {
	for _, d := range r.deliveries {
		if d.SubscriptionID() == subscriptionID && d.Status() == delivery.StatusPending && !d.Date().Before(from) {
			if err := d.ShiftDate(days); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *fakeDeliveryRepo) CancelPendingFrom(_ context.Context, subscriptionID uint, from time.Time) error {
	for _, d := range r.deliveries {
		if d.SubscriptionID() == subscriptionID && d.Status() == delivery.StatusPending && !d.Date().Before(from) {
			if err := d.Cancel(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *fakeDeliveryRepo) Update(_ context.Context, _ *delivery.Delivery) error {
	return nil
}

// fakeQuoter returns a canned breakdown without touching a catalog.
type fakeQuoter struct {
	err error
}

func (q fakeQuoter) Quote(_ context.Context, sel pricing.MealSelection, _ time.Time) (*pricing.PriceBreakdown, error) {
	if q.err != nil {
		return nil, q.err
	}
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	return &pricing.PriceBreakdown{
		Currency: "MAD",
		Subtotal: decimal.NewFromInt(1000),
		Total:    decimal.NewFromInt(900),
	}, nil
}
