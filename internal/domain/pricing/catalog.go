package pricing

import "context"

// PlanCatalog resolves a plan's price multiplier. The catalog itself
// (names, descriptions, imagery) is owned elsewhere; pricing only needs
// the multiplier for a validated plan id.
type PlanCatalog interface {
	// Multiplier returns the price multiplier for a plan SID. A missing
	// plan is a not-found error: the engine assumes validated ids.
	Multiplier(ctx context.Context, planID string) (float64, error)
}

// Plan is one purchasable catalog row as the storefront sees it.
type Plan struct {
	ID         string
	Name       string
	Multiplier float64
}

// PlanLister enumerates the purchasable plans.
type PlanLister interface {
	ListActive(ctx context.Context) ([]Plan, error)
}

// BasePrices are the un-scaled per-item unit prices in MAD. The main
// meal and breakfast prices scale with the plan multiplier; the snack
// price never does.
type BasePrices struct {
	MainMeal  float64
	Breakfast float64
	Snack     float64
}
