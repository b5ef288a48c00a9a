// Package constants defines shared constant values used across the application.
package constants

// Database table names
const (
	TableSubscriptions = "subscriptions"
	TableDeliveries    = "deliveries"
	TablePlans         = "plans"
	TablePromoCodes    = "promo_codes"
)

// Currency is the only currency the platform bills in.
const Currency = "MAD"

// Duration codes as persisted. These literals are part of the wire and
// database contract and must not be renamed.
const (
	DurationW1 = "W1"
	DurationW2 = "W2"
	DurationM1 = "M1"
)
