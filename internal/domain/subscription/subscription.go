package subscription

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maida-inc/maida/internal/domain/shared/vo"
	svo "github.com/maida-inc/maida/internal/domain/subscription/valueobjects"
	"github.com/maida-inc/maida/internal/shared/errors"
	"github.com/maida-inc/maida/internal/shared/id"
)

// MaxLifetimePauses caps how often a subscription may be paused over its
// whole life.
const MaxLifetimePauses = 1

// Subscription is the meal-subscription aggregate root. A subscription
// is only ever destroyed by hard account deletion; cancellation and
// expiry are status flips, never row deletions.
type Subscription struct {
	id         uint
	sid        string
	customerID uint
	planID     string
	status     svo.SubscriptionStatus
	duration   vo.DurationCode
	weekdays   vo.WeekdaySet
	startsAt   time.Time
	renewsAt   time.Time
	pauseCount int
	pausedAt   *time.Time
	resumesAt  *time.Time

	// Cached amounts from the last priced selection, in MAD.
	subtotal decimal.Decimal
	discount decimal.Decimal
	total    decimal.Decimal

	version   int
	createdAt time.Time
	updatedAt time.Time
}

// NewSubscription creates a subscription at checkout. It starts active;
// renewsAt is the end of the first committed period.
func NewSubscription(
	customerID uint,
	planID string,
	duration vo.DurationCode,
	weekdays vo.WeekdaySet,
	startsAt time.Time,
	subtotal, discount, total decimal.Decimal,
) (*Subscription, error) {
	if customerID == 0 {
		return nil, fmt.Errorf("customer ID is required")
	}
	if planID == "" {
		return nil, fmt.Errorf("plan ID is required")
	}
	if !duration.IsValid() {
		return nil, fmt.Errorf("invalid duration code: %s", duration)
	}

	sid, err := id.NewSubscriptionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate subscription ID: %w", err)
	}

	now := time.Now().UTC()
	return &Subscription{
		sid:        sid,
		customerID: customerID,
		planID:     planID,
		status:     svo.StatusActive,
		duration:   duration,
		weekdays:   weekdays,
		startsAt:   startsAt.UTC(),
		renewsAt:   startsAt.UTC().AddDate(0, 0, duration.Days()),
		subtotal:   subtotal,
		discount:   discount,
		total:      total,
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructParams carries every persisted field needed to rehydrate a
// subscription from the database.
type ReconstructParams struct {
	ID         uint
	SID        string
	CustomerID uint
	PlanID     string
	Status     svo.SubscriptionStatus
	Duration   vo.DurationCode
	Weekdays   vo.WeekdaySet
	StartsAt   time.Time
	RenewsAt   time.Time
	PauseCount int
	PausedAt   *time.Time
	ResumesAt  *time.Time
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal
	Total      decimal.Decimal
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Reconstruct rebuilds a subscription from persistence.
func Reconstruct(p ReconstructParams) (*Subscription, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if p.CustomerID == 0 {
		return nil, fmt.Errorf("customer ID is required")
	}
	if !svo.ValidStatuses[p.Status] {
		return nil, fmt.Errorf("invalid subscription status: %s", p.Status)
	}
	if !p.Duration.IsValid() {
		return nil, fmt.Errorf("invalid duration code: %s", p.Duration)
	}

	return &Subscription{
		id:         p.ID,
		sid:        p.SID,
		customerID: p.CustomerID,
		planID:     p.PlanID,
		status:     p.Status,
		duration:   p.Duration,
		weekdays:   p.Weekdays,
		startsAt:   p.StartsAt,
		renewsAt:   p.RenewsAt,
		pauseCount: p.PauseCount,
		pausedAt:   p.PausedAt,
		resumesAt:  p.ResumesAt,
		subtotal:   p.Subtotal,
		discount:   p.Discount,
		total:      p.Total,
		version:    p.Version,
		createdAt:  p.CreatedAt,
		updatedAt:  p.UpdatedAt,
	}, nil
}

func (s *Subscription) ID() uint                          { return s.id }
func (s *Subscription) SID() string                       { return s.sid }
func (s *Subscription) CustomerID() uint                  { return s.customerID }
func (s *Subscription) PlanID() string                    { return s.planID }
func (s *Subscription) Status() svo.SubscriptionStatus    { return s.status }
func (s *Subscription) Duration() vo.DurationCode         { return s.duration }
func (s *Subscription) Weekdays() vo.WeekdaySet           { return s.weekdays }
func (s *Subscription) StartsAt() time.Time               { return s.startsAt }
func (s *Subscription) RenewsAt() time.Time               { return s.renewsAt }
func (s *Subscription) PauseCount() int                   { return s.pauseCount }
func (s *Subscription) PausedAt() *time.Time              { return s.pausedAt }
func (s *Subscription) ResumesAt() *time.Time             { return s.resumesAt }
func (s *Subscription) Subtotal() decimal.Decimal         { return s.subtotal }
func (s *Subscription) Discount() decimal.Decimal         { return s.discount }
func (s *Subscription) Total() decimal.Decimal            { return s.total }
func (s *Subscription) Version() int                      { return s.version }
func (s *Subscription) CreatedAt() time.Time              { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time              { return s.updatedAt }

// HasWeekdayPreference reports whether the subscription runs on a
// standing weekday pattern. An empty set means one-off selected dates
// only, and schedule rebuilds do not apply.
func (s *Subscription) HasWeekdayPreference() bool {
	return !s.weekdays.IsEmpty()
}

// SetID sets the subscription ID (only for persistence layer use).
func (s *Subscription) SetID(dbID uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if dbID == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = dbID
	return nil
}

// Pause suspends fulfillment for shiftDays days. The lifetime cap is
// enforced here; the fulfillment notice window is checked by the caller,
// which knows the next pending delivery. renewsAt is extended by the
// same number of days so the customer keeps every paid-for cycle.
func (s *Subscription) Pause(shiftDays int, now time.Time) error {
	if s.status != svo.StatusActive {
		return errors.NewConflictError(
			fmt.Sprintf("cannot pause subscription with status %s", s.status),
		)
	}
	if s.pauseCount >= MaxLifetimePauses {
		return errors.NewConflictError("subscription has already used its one pause")
	}
	if shiftDays <= 0 {
		return errors.NewValidationError("pause duration must be positive")
	}

	pausedAt := now.UTC()
	s.status = svo.StatusPaused
	s.pauseCount++
	s.pausedAt = &pausedAt
	s.renewsAt = s.renewsAt.AddDate(0, 0, shiftDays)
	s.updatedAt = pausedAt
	s.version++

	return nil
}

// Resume reactivates a paused subscription from the given date. Pending
// deliveries were already shifted at pause time and are not shifted
// again.
func (s *Subscription) Resume(from time.Time, now time.Time) error {
	if s.status != svo.StatusPaused {
		return errors.NewConflictError(
			fmt.Sprintf("cannot resume subscription with status %s", s.status),
		)
	}

	resumesAt := from.UTC()
	s.status = svo.StatusActive
	s.resumesAt = &resumesAt
	s.updatedAt = now.UTC()
	s.version++

	return nil
}

// Cancel stops the subscription. Reachable from active and paused.
func (s *Subscription) Cancel() error {
	if s.status == svo.StatusCanceled {
		return nil
	}
	if !s.status.CanTransitionTo(svo.StatusCanceled) {
		return errors.NewConflictError(
			fmt.Sprintf("cannot cancel subscription with status %s", s.status),
		)
	}

	s.status = svo.StatusCanceled
	s.updatedAt = time.Now().UTC()
	s.version++

	return nil
}

// MarkExpired flips an active subscription past its committed period to
// expired.
func (s *Subscription) MarkExpired() error {
	if s.status == svo.StatusExpired {
		return nil
	}
	if !s.status.CanTransitionTo(svo.StatusExpired) {
		return errors.NewConflictError(
			fmt.Sprintf("cannot expire subscription with status %s", s.status),
		)
	}

	s.status = svo.StatusExpired
	s.updatedAt = time.Now().UTC()
	s.version++

	return nil
}

// Renew advances the committed period by one duration cycle. An expired
// subscription becomes active again.
func (s *Subscription) Renew() error {
	if s.status != svo.StatusActive && s.status != svo.StatusExpired {
		return errors.NewConflictError(
			fmt.Sprintf("cannot renew subscription with status %s", s.status),
		)
	}

	s.renewsAt = s.renewsAt.AddDate(0, 0, s.duration.Days())
	s.status = svo.StatusActive
	s.updatedAt = time.Now().UTC()
	s.version++

	return nil
}

// UpdateWeekdayPreference replaces the standing delivery-day pattern.
// The delivery calendar is rebuilt separately.
func (s *Subscription) UpdateWeekdayPreference(weekdays vo.WeekdaySet) error {
	if s.status != svo.StatusActive {
		return errors.NewConflictError(
			fmt.Sprintf("cannot change delivery days for subscription with status %s", s.status),
		)
	}
	if weekdays.IsEmpty() {
		return errors.NewValidationError("at least one delivery weekday is required")
	}

	s.weekdays = weekdays
	s.updatedAt = time.Now().UTC()
	s.version++

	return nil
}

// CacheTotals stores the amounts of the latest priced selection.
func (s *Subscription) CacheTotals(subtotal, discount, total decimal.Decimal) {
	s.subtotal = subtotal
	s.discount = discount
	s.total = total
	s.updatedAt = time.Now().UTC()
	s.version++
}
