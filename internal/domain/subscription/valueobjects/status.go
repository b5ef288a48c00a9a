package valueobjects

type SubscriptionStatus string

const (
	StatusActive   SubscriptionStatus = "active"
	StatusPaused   SubscriptionStatus = "paused"
	StatusCanceled SubscriptionStatus = "canceled"
	StatusExpired  SubscriptionStatus = "expired"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

// CanDeliver reports whether fulfillment runs for this status.
func (s SubscriptionStatus) CanDeliver() bool {
	return s == StatusActive
}

func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	transitions := map[SubscriptionStatus][]SubscriptionStatus{
		StatusActive:   {StatusPaused, StatusCanceled, StatusExpired},
		StatusPaused:   {StatusActive, StatusCanceled},
		StatusCanceled: {},
		StatusExpired:  {StatusActive},
	}

	allowed, exists := transitions[s]
	if !exists {
		return false
	}

	for _, allowedStatus := range allowed {
		if allowedStatus == target {
			return true
		}
	}
	return false
}

var ValidStatuses = map[SubscriptionStatus]bool{
	StatusActive:   true,
	StatusPaused:   true,
	StatusCanceled: true,
	StatusExpired:  true,
}
