package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maida-inc/maida/internal/shared/constants"
)

// PriceBreakdown is the immutable output of a quote. Every monetary
// field is rounded to 2 decimal places exactly once, at the point it is
// written here; intermediate arithmetic is never rounded.
type PriceBreakdown struct {
	Currency string `json:"currency"`

	// Per-day unit costs after the plan multiplier.
	MainMealUnitPrice  decimal.Decimal `json:"main_meal_unit_price"`
	BreakfastUnitPrice decimal.Decimal `json:"breakfast_unit_price"`
	SnackUnitPrice     decimal.Decimal `json:"snack_unit_price"`

	SelectedDays int `json:"selected_days"`
	TotalItems   int `json:"total_items"`

	Subtotal decimal.Decimal `json:"subtotal"`

	// The weekly-layer discount is the better of the volume tier and the
	// promo rate, never their sum.
	WeeklyDiscountRate   float64         `json:"weekly_discount_rate"`
	WeeklyDiscountAmount decimal.Decimal `json:"weekly_discount_amount"`
	PromoCodeApplied     string          `json:"promo_code_applied,omitempty"`
	PromoDiscountAmount  decimal.Decimal `json:"promo_discount_amount"`

	DurationDiscountRate   float64         `json:"duration_discount_rate"`
	DurationDiscountAmount decimal.Decimal `json:"duration_discount_amount"`

	Total        decimal.Decimal `json:"total"`
	PricePerDay  decimal.Decimal `json:"price_per_day"`
	PricePerWeek decimal.Decimal `json:"price_per_week"`
}

// Engine turns a MealSelection into a PriceBreakdown. It is a pure,
// stateless computation over the injected catalog, promo table, and
// discount tables; safe to call from any request goroutine.
type Engine struct {
	base     BasePrices
	catalog  PlanCatalog
	resolver *DiscountResolver
}

// NewEngine creates a pricing engine over explicit base prices, a plan
// catalog, and a discount resolver.
func NewEngine(base BasePrices, catalog PlanCatalog, resolver *DiscountResolver) *Engine {
	return &Engine{base: base, catalog: catalog, resolver: resolver}
}

// Quote prices a selection at the given instant. The instant only
// matters for promo validity windows; everything else is deterministic
// in the selection.
func (e *Engine) Quote(ctx context.Context, sel MealSelection, at time.Time) (*PriceBreakdown, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	multiplier, err := e.catalog.Multiplier(ctx, sel.PlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve plan multiplier: %w", err)
	}

	mult := decimal.NewFromFloat(multiplier)
	scaledMain := decimal.NewFromFloat(e.base.MainMeal).Mul(mult)
	scaledBreakfast := decimal.NewFromFloat(e.base.Breakfast).Mul(mult)
	snack := decimal.NewFromFloat(e.base.Snack)

	daily := scaledMain.Mul(decimal.NewFromInt(int64(sel.MainMeals)))
	if sel.Breakfast {
		daily = daily.Add(scaledBreakfast)
	}
	daily = daily.Add(snack.Mul(decimal.NewFromInt(int64(sel.Snacks))))

	days := sel.SelectedDays()
	weeks := sel.Duration.Weeks()
	totalItems := sel.TotalItems()

	// The subtotal is a sum over every individual selected day, which may
	// span multiple weeks. It is not a weekly average.
	subtotal := daily.Mul(decimal.NewFromInt(int64(days)))

	volumeRate := e.resolver.VolumeRate(totalItems)
	seasonalRate, err := e.resolver.SeasonalRate(ctx, sel.PromoCode, at)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve promo rate: %w", err)
	}

	weeklyRate := volumeRate
	promoWon := false
	if seasonalRate > volumeRate {
		weeklyRate = seasonalRate
		promoWon = true
	}

	weeklyAmount := subtotal.Mul(decimal.NewFromFloat(weeklyRate))
	afterWeekly := subtotal.Sub(weeklyAmount)

	durationRate := e.resolver.DurationRate(weeks)
	durationAmount := afterWeekly.Mul(decimal.NewFromFloat(durationRate))
	total := afterWeekly.Sub(durationAmount)

	breakdown := &PriceBreakdown{
		Currency:               constants.Currency,
		MainMealUnitPrice:      scaledMain.Round(2),
		BreakfastUnitPrice:     scaledBreakfast.Round(2),
		SnackUnitPrice:         snack.Round(2),
		SelectedDays:           days,
		TotalItems:             totalItems,
		Subtotal:               subtotal.Round(2),
		WeeklyDiscountRate:     weeklyRate,
		WeeklyDiscountAmount:   weeklyAmount.Round(2),
		PromoDiscountAmount:    decimal.Zero.Round(2),
		DurationDiscountRate:   durationRate,
		DurationDiscountAmount: durationAmount.Round(2),
		Total:                  total.Round(2),
		PricePerDay:            total.Div(decimal.NewFromInt(int64(days))).Round(2),
		PricePerWeek:           total.Div(decimal.NewFromInt(int64(weeks))).Round(2),
	}
	if promoWon {
		breakdown.PromoCodeApplied = sel.PromoCode
		breakdown.PromoDiscountAmount = weeklyAmount.Round(2)
	}

	return breakdown, nil
}
