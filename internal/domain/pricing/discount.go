package pricing

import (
	"context"
	"strings"
	"time"
)

// VolumeTier is one row of the volume discount table. MaxItems of zero
// means the tier is open-ended.
type VolumeTier struct {
	MinItems int
	MaxItems int
	Rate     float64
}

// DiscountTables holds the tiered discount rules the resolver answers
// from. It is passed in at construction so pricing stays a pure function
// of (selection, tables) and alternate tables are trivial in tests.
type DiscountTables struct {
	VolumeTiers   []VolumeTier
	DurationRates map[int]float64 // weeks -> rate
}

// DefaultDiscountTables returns the production discount rules.
func DefaultDiscountTables() DiscountTables {
	return DiscountTables{
		VolumeTiers: []VolumeTier{
			{MinItems: 6, MaxItems: 13, Rate: 0},
			{MinItems: 14, MaxItems: 20, Rate: 0.05},
			{MinItems: 21, MaxItems: 35, Rate: 0.10},
			{MinItems: 36, MaxItems: 0, Rate: 0.15},
		},
		DurationRates: map[int]float64{
			1: 0,
			2: 0.05,
			4: 0.10,
		},
	}
}

// PromoTable supplies active promo-code rates. Implementations check the
// code's validity window against the given instant.
type PromoTable interface {
	// ActiveRate returns the discount rate for a code, or 0 when the code
	// is unknown, inactive, or outside its validity window. Unknown codes
	// are not errors: an invalid promo silently costs the customer
	// nothing rather than blocking checkout.
	ActiveRate(ctx context.Context, code string, at time.Time) (float64, error)
}

// DiscountResolver answers tiered discount lookups. It holds no mutable
// state.
type DiscountResolver struct {
	tables DiscountTables
	promos PromoTable
}

// NewDiscountResolver creates a resolver over explicit tables and an
// active promo lookup.
func NewDiscountResolver(tables DiscountTables, promos PromoTable) *DiscountResolver {
	return &DiscountResolver{tables: tables, promos: promos}
}

// VolumeRate returns the discount rate for a total item count. Counts
// that match no tier return 0; counts below the smallest tier are a
// validation concern of the caller, not of this resolver.
func (r *DiscountResolver) VolumeRate(totalItems int) float64 {
	for _, tier := range r.tables.VolumeTiers {
		if totalItems < tier.MinItems {
			continue
		}
		if tier.MaxItems != 0 && totalItems > tier.MaxItems {
			continue
		}
		return tier.Rate
	}
	return 0
}

// DurationRate returns the discount rate for a subscription length in
// weeks. Unknown week counts return 0.
func (r *DiscountResolver) DurationRate(weeks int) float64 {
	return r.tables.DurationRates[weeks]
}

// SeasonalRate returns the promo-code discount rate at the given instant.
// Matching is case-insensitive; unknown or empty codes resolve to 0.
func (r *DiscountResolver) SeasonalRate(ctx context.Context, code string, at time.Time) (float64, error) {
	code = strings.TrimSpace(code)
	if code == "" || r.promos == nil {
		return 0, nil
	}
	return r.promos.ActiveRate(ctx, strings.ToUpper(code), at)
}
