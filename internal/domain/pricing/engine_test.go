package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maida-inc/maida/internal/domain/shared/vo"
	"github.com/maida-inc/maida/internal/shared/errors"
)

type fakeCatalog struct {
	multipliers map[string]float64
}

func (f *fakeCatalog) Multiplier(_ context.Context, planID string) (float64, error) {
	m, ok := f.multipliers[planID]
	if !ok {
		return 0, errors.NewNotFoundError("plan not found", planID)
	}
	return m, nil
}

var testBasePrices = BasePrices{MainMeal: 40, Breakfast: 30, Snack: 15}

func newTestEngine(promoRates map[string]float64) *Engine {
	catalog := &fakeCatalog{multipliers: map[string]float64{
		"plan_balanced":   1.0,
		"plan_musclegain": 1.15,
	}}
	return NewEngine(testBasePrices, catalog, newTestResolver(promoRates))
}

func explicitDays(t *testing.T, n int) vo.DatePlan {
	t.Helper()
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, start.AddDate(0, 0, i))
	}
	return vo.NewExplicitDates(dates)
}

func allWeekdays(t *testing.T) vo.DatePlan {
	t.Helper()
	set, err := vo.NewWeekdaySet([]string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"})
	require.NoError(t, err)
	return vo.NewWeekdayPattern(set)
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestQuote_MuscleGainFiveDays(t *testing.T) {
	e := newTestEngine(nil)

	sel := MealSelection{
		PlanID:    "plan_musclegain",
		MainMeals: 2,
		Breakfast: true,
		Snacks:    1,
		Days:      explicitDays(t, 5),
		Duration:  vo.DurationW1,
	}

	bd, err := e.Quote(context.Background(), sel, time.Now())
	require.NoError(t, err)

	// Scaled unit prices: 40*1.15=46, 30*1.15=34.50, snack unscaled.
	assertMoney(t, "46", bd.MainMealUnitPrice)
	assertMoney(t, "34.5", bd.BreakfastUnitPrice)
	assertMoney(t, "15", bd.SnackUnitPrice)

	// Daily subtotal 2*46 + 34.5 + 15 = 141.50; five days selected.
	assert.Equal(t, 5, bd.SelectedDays)
	assertMoney(t, "707.5", bd.Subtotal)

	// 4 items/day * 5 days = 20 items -> 5% volume tier; 1 week -> 0%.
	assert.Equal(t, 20, bd.TotalItems)
	assert.Equal(t, 0.05, bd.WeeklyDiscountRate)
	assert.Equal(t, 0.0, bd.DurationDiscountRate)

	// 707.50 * 0.95 = 672.125, rounded once at the boundary.
	assertMoney(t, "672.13", bd.Total)
	assertMoney(t, "134.43", bd.PricePerDay)
	assertMoney(t, "672.13", bd.PricePerWeek)
	assert.Equal(t, "MAD", bd.Currency)
}

func TestQuote_FourWeeksEveryDay(t *testing.T) {
	e := newTestEngine(nil)

	sel := MealSelection{
		PlanID:    "plan_musclegain",
		MainMeals: 2,
		Breakfast: true,
		Snacks:    1,
		Days:      allWeekdays(t),
		Duration:  vo.DurationM1,
	}

	bd, err := e.Quote(context.Background(), sel, time.Now())
	require.NoError(t, err)

	// 7 weekdays * 4 weeks = 28 days, 4 items/day = 112 items -> 15%.
	assert.Equal(t, 28, bd.SelectedDays)
	assert.Equal(t, 112, bd.TotalItems)
	assert.Equal(t, 0.15, bd.WeeklyDiscountRate)
	assert.Equal(t, 0.10, bd.DurationDiscountRate)

	// 141.50*28 = 3962; *0.85 = 3367.70; *0.90 = 3030.93.
	// The two discounts compound sequentially, they are not summed.
	assertMoney(t, "3962", bd.Subtotal)
	assertMoney(t, "594.3", bd.WeeklyDiscountAmount)
	assertMoney(t, "336.77", bd.DurationDiscountAmount)
	assertMoney(t, "3030.93", bd.Total)
	assertMoney(t, "757.73", bd.PricePerWeek)
}

func TestQuote_PromoBeatsZeroVolumeTier(t *testing.T) {
	e := newTestEngine(map[string]float64{"BULK-ORDER": 0.25})

	sel := MealSelection{
		PlanID:    "plan_musclegain",
		MainMeals: 1,
		Breakfast: true,
		Snacks:    0,
		Days:      explicitDays(t, 6),
		Duration:  vo.DurationW1,
		PromoCode: "bulk-order",
	}

	bd, err := e.Quote(context.Background(), sel, time.Now())
	require.NoError(t, err)

	// 2 items/day * 6 days = 12 items: inside the 0% volume tier, so the
	// 25% promo wins the weekly layer outright.
	assert.Equal(t, 12, bd.TotalItems)
	assert.Equal(t, 0.25, bd.WeeklyDiscountRate)
	assert.Equal(t, "bulk-order", bd.PromoCodeApplied)

	// Daily 46 + 34.5 = 80.50; *6 = 483; *0.75 = 362.25.
	assertMoney(t, "483", bd.Subtotal)
	assertMoney(t, "120.75", bd.PromoDiscountAmount)
	assertMoney(t, "362.25", bd.Total)
}

func TestQuote_VolumeAndPromoNeverStack(t *testing.T) {
	e := newTestEngine(map[string]float64{"SMALL": 0.02})

	sel := MealSelection{
		PlanID:    "plan_balanced",
		MainMeals: 2,
		Breakfast: true,
		Snacks:    1,
		Days:      explicitDays(t, 5),
		Duration:  vo.DurationW1,
		PromoCode: "SMALL",
	}

	bd, err := e.Quote(context.Background(), sel, time.Now())
	require.NoError(t, err)

	// 20 items -> 5% volume beats the 2% promo; the promo is dropped,
	// not added on top.
	assert.Equal(t, 0.05, bd.WeeklyDiscountRate)
	assert.Empty(t, bd.PromoCodeApplied)
	assertMoney(t, "0", bd.PromoDiscountAmount)
}

func TestQuote_UnknownPromoSameAsNoPromo(t *testing.T) {
	e := newTestEngine(map[string]float64{})

	sel := MealSelection{
		PlanID:    "plan_balanced",
		MainMeals: 2,
		Breakfast: false,
		Snacks:    0,
		Days:      explicitDays(t, 5),
		Duration:  vo.DurationW1,
		PromoCode: "DOES-NOT-EXIST",
	}

	withPromo, err := e.Quote(context.Background(), sel, time.Now())
	require.NoError(t, err)

	sel.PromoCode = ""
	withoutPromo, err := e.Quote(context.Background(), sel, time.Now())
	require.NoError(t, err)

	assert.True(t, withPromo.Total.Equal(withoutPromo.Total))
	assert.Equal(t, withPromo.WeeklyDiscountRate, withoutPromo.WeeklyDiscountRate)
}

func TestQuote_MinimumDayEnforcement(t *testing.T) {
	e := newTestEngine(nil)

	sel := MealSelection{
		PlanID:    "plan_balanced",
		MainMeals: 2,
		Breakfast: false,
		Snacks:    0,
		Days:      explicitDays(t, 2),
		Duration:  vo.DurationW1,
	}

	_, err := e.Quote(context.Background(), sel, time.Now())
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	sel.Days = explicitDays(t, 3)
	_, err = e.Quote(context.Background(), sel, time.Now())
	assert.NoError(t, err)
}

func TestQuote_InvalidMealCombinations(t *testing.T) {
	e := newTestEngine(nil)

	tests := []struct {
		name      string
		mainMeals int
		breakfast bool
		wantErr   bool
	}{
		{name: "one main no breakfast", mainMeals: 1, breakfast: false, wantErr: true},
		{name: "zero mains", mainMeals: 0, breakfast: true, wantErr: true},
		{name: "three mains", mainMeals: 3, breakfast: false, wantErr: true},
		{name: "one main with breakfast", mainMeals: 1, breakfast: true},
		{name: "two mains no breakfast", mainMeals: 2, breakfast: false},
		{name: "two mains with breakfast", mainMeals: 2, breakfast: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := MealSelection{
				PlanID:    "plan_balanced",
				MainMeals: tt.mainMeals,
				Breakfast: tt.breakfast,
				Snacks:    0,
				Days:      explicitDays(t, 5),
				Duration:  vo.DurationW1,
			}
			_, err := e.Quote(context.Background(), sel, time.Now())
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuote_UnknownPlanIsNotFound(t *testing.T) {
	e := newTestEngine(nil)

	sel := MealSelection{
		PlanID:    "plan_keto",
		MainMeals: 2,
		Breakfast: false,
		Snacks:    0,
		Days:      explicitDays(t, 5),
		Duration:  vo.DurationW1,
	}

	_, err := e.Quote(context.Background(), sel, time.Now())
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestQuote_SnackPriceNeverScalesWithPlan(t *testing.T) {
	e := newTestEngine(nil)

	sel := MealSelection{
		PlanID:    "plan_musclegain",
		MainMeals: 2,
		Breakfast: false,
		Snacks:    2,
		Days:      explicitDays(t, 5),
		Duration:  vo.DurationW1,
	}

	bd, err := e.Quote(context.Background(), sel, time.Now())
	require.NoError(t, err)

	assertMoney(t, "15", bd.SnackUnitPrice)
	// Daily 2*46 + 2*15 = 122; 20 items -> 5%; 122*5*0.95 = 579.50.
	assertMoney(t, "579.5", bd.Total)
}
