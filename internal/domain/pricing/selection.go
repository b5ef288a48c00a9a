package pricing

import (
	"fmt"

	"github.com/maida-inc/maida/internal/domain/shared/vo"
	"github.com/maida-inc/maida/internal/shared/errors"
)

// MealSelection is the immutable input to the pricing engine: the
// customer's plan, meals-per-day composition, delivery-day plan,
// subscription duration, and an optional promo code.
type MealSelection struct {
	PlanID    string
	MainMeals int
	Breakfast bool
	Snacks    int
	Days      vo.DatePlan
	Duration  vo.DurationCode
	PromoCode string
}

// allowed (mainMeals, breakfast) pairs. Every other combination is
// rejected: the kitchen does not assemble boxes below two items per day.
var validMealCombos = map[[2]int]bool{
	{1, 1}: true, // one main + breakfast
	{2, 0}: true, // two mains
	{2, 1}: true, // two mains + breakfast
}

// ItemsPerDay returns the meal-item count a single delivery day carries.
func (s MealSelection) ItemsPerDay() int {
	items := s.MainMeals + s.Snacks
	if s.Breakfast {
		items++
	}
	return items
}

// SelectedDays returns the number of delivery days the selection spans.
func (s MealSelection) SelectedDays() int {
	return s.Days.DayCount(s.Duration.Weeks())
}

// TotalItems returns the meal-item count summed across every selected day.
func (s MealSelection) TotalItems() int {
	return s.ItemsPerDay() * s.SelectedDays()
}

// Validate enforces the selection invariants before any pricing or
// scheduling proceeds. Failures are validation errors and carry no side
// effects.
func (s MealSelection) Validate() error {
	if s.PlanID == "" {
		return errors.NewValidationError("plan is required")
	}
	if !s.Duration.IsValid() {
		return errors.NewValidationError(fmt.Sprintf("invalid duration code: %s", s.Duration))
	}
	if s.Snacks < 0 || s.Snacks > 2 {
		return errors.NewValidationError("snacks per day must be between 0 and 2")
	}

	breakfast := 0
	if s.Breakfast {
		breakfast = 1
	}
	if !validMealCombos[[2]int{s.MainMeals, breakfast}] {
		return errors.NewValidationError(
			"invalid meal combination",
			"allowed combinations: 1 main + breakfast, 2 mains, or 2 mains + breakfast",
		)
	}

	minDays := s.Duration.MinSelectedDays()
	if s.SelectedDays() < minDays {
		return errors.NewValidationError(
			fmt.Sprintf("select at least %d delivery days for a %s subscription", minDays, s.Duration),
		)
	}

	return nil
}
