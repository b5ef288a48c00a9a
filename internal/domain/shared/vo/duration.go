package vo

import "fmt"

// DurationCode is the short token for a subscription length. The literal
// values are part of the persisted contract.
type DurationCode string

const (
	DurationW1 DurationCode = "W1" // one week
	DurationW2 DurationCode = "W2" // two weeks
	DurationM1 DurationCode = "M1" // four weeks
)

var durationWeeks = map[DurationCode]int{
	DurationW1: 1,
	DurationW2: 2,
	DurationM1: 4,
}

// minSelectedDays is the fewest delivery days a customer may pick for
// each duration tier.
var minSelectedDays = map[DurationCode]int{
	DurationW1: 3,
	DurationW2: 6,
	DurationM1: 10,
}

// ParseDurationCode validates and converts a raw duration token.
func ParseDurationCode(s string) (DurationCode, error) {
	code := DurationCode(s)
	if !code.IsValid() {
		return "", fmt.Errorf("invalid duration code: %s", s)
	}
	return code, nil
}

func (d DurationCode) String() string {
	return string(d)
}

func (d DurationCode) IsValid() bool {
	_, ok := durationWeeks[d]
	return ok
}

// Weeks returns the subscription length in weeks.
func (d DurationCode) Weeks() int {
	return durationWeeks[d]
}

// Days returns the subscription length in days.
func (d DurationCode) Days() int {
	return d.Weeks() * 7
}

// MinSelectedDays returns the minimum delivery-day count for this tier.
func (d DurationCode) MinSelectedDays() int {
	return minSelectedDays[d]
}
