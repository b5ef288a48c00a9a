package delivery

import (
	"fmt"
	"time"

	"github.com/maida-inc/maida/internal/shared/dateutil"
	"github.com/maida-inc/maida/internal/shared/errors"
	"github.com/maida-inc/maida/internal/shared/id"
)

// DeliveryStatus is the lifecycle of one physical delivery. Once a
// delivery leaves pending it is terminal: delivered, skipped, and
// canceled are never overwritten by a schedule rebuild.
type DeliveryStatus string

const (
	StatusPending   DeliveryStatus = "pending"
	StatusSkipped   DeliveryStatus = "skipped"
	StatusDelivered DeliveryStatus = "delivered"
	StatusCanceled  DeliveryStatus = "canceled"
)

func (s DeliveryStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status can no longer change.
func (s DeliveryStatus) IsTerminal() bool {
	return s == StatusSkipped || s == StatusDelivered || s == StatusCanceled
}

var ValidStatuses = map[DeliveryStatus]bool{
	StatusPending:   true,
	StatusSkipped:   true,
	StatusDelivered: true,
	StatusCanceled:  true,
}

// Window is the coarse time-of-day label for a delivery.
type Window string

const (
	WindowMorning Window = "morning"
	WindowNoon    Window = "noon"
	WindowEvening Window = "evening"
)

var ValidWindows = map[Window]bool{
	WindowMorning: true,
	WindowNoon:    true,
	WindowEvening: true,
}

// ParseWindow validates a raw window label.
func ParseWindow(s string) (Window, error) {
	w := Window(s)
	if !ValidWindows[w] {
		return "", fmt.Errorf("invalid delivery window: %s", s)
	}
	return w, nil
}

// Delivery is one scheduled box drop for a subscription. The address is
// snapshotted at scheduling time so later profile edits do not rewrite
// history.
type Delivery struct {
	id             uint
	sid            string
	subscriptionID uint
	date           time.Time
	window         Window
	address        string
	status         DeliveryStatus
	createdAt      time.Time
	updatedAt      time.Time
}

// NewDelivery schedules a pending delivery on a calendar date.
func NewDelivery(subscriptionID uint, date time.Time, window Window, address string) (*Delivery, error) {
	if subscriptionID == 0 {
		return nil, fmt.Errorf("subscription ID is required")
	}
	if !ValidWindows[window] {
		return nil, fmt.Errorf("invalid delivery window: %s", window)
	}

	sid, err := id.NewDeliveryID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate delivery ID: %w", err)
	}

	now := time.Now().UTC()
	return &Delivery{
		sid:            sid,
		subscriptionID: subscriptionID,
		date:           dateutil.StartOfDay(date),
		window:         window,
		address:        address,
		status:         StatusPending,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// Reconstruct rebuilds a delivery from persistence.
func Reconstruct(
	dbID uint,
	sid string,
	subscriptionID uint,
	date time.Time,
	window Window,
	address string,
	status DeliveryStatus,
	createdAt, updatedAt time.Time,
) (*Delivery, error) {
	if dbID == 0 {
		return nil, fmt.Errorf("delivery ID cannot be zero")
	}
	if !ValidStatuses[status] {
		return nil, fmt.Errorf("invalid delivery status: %s", status)
	}

	return &Delivery{
		id:             dbID,
		sid:            sid,
		subscriptionID: subscriptionID,
		date:           dateutil.StartOfDay(date),
		window:         window,
		address:        address,
		status:         status,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (d *Delivery) ID() uint              { return d.id }
func (d *Delivery) SID() string           { return d.sid }
func (d *Delivery) SubscriptionID() uint  { return d.subscriptionID }
func (d *Delivery) Date() time.Time       { return d.date }
func (d *Delivery) Window() Window        { return d.window }
func (d *Delivery) Address() string       { return d.address }
func (d *Delivery) Status() DeliveryStatus { return d.status }
func (d *Delivery) CreatedAt() time.Time  { return d.createdAt }
func (d *Delivery) UpdatedAt() time.Time  { return d.updatedAt }

// SetID sets the delivery ID (only for persistence layer use).
func (d *Delivery) SetID(dbID uint) error {
	if d.id != 0 {
		return fmt.Errorf("delivery ID is already set")
	}
	if dbID == 0 {
		return fmt.Errorf("delivery ID cannot be zero")
	}
	d.id = dbID
	return nil
}

func (d *Delivery) transition(target DeliveryStatus) error {
	if d.status.IsTerminal() {
		return errors.NewConflictError(
			fmt.Sprintf("delivery is already %s", d.status),
		)
	}
	d.status = target
	d.updatedAt = time.Now().UTC()
	return nil
}

// MarkDelivered records fulfillment. Terminal.
func (d *Delivery) MarkDelivered() error {
	return d.transition(StatusDelivered)
}

// Skip marks a customer-requested skip. Terminal.
func (d *Delivery) Skip() error {
	return d.transition(StatusSkipped)
}

// Cancel voids a pending delivery. Terminal.
func (d *Delivery) Cancel() error {
	return d.transition(StatusCanceled)
}

// ShiftDate moves a pending delivery forward by n days. Resolved
// deliveries are never moved.
func (d *Delivery) ShiftDate(n int) error {
	if d.status != StatusPending {
		return errors.NewConflictError(
			fmt.Sprintf("cannot shift %s delivery", d.status),
		)
	}
	d.date = dateutil.AddDays(d.date, n)
	d.updatedAt = time.Now().UTC()
	return nil
}
