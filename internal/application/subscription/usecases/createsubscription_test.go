package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maida-inc/maida/internal/domain/delivery"
	"github.com/maida-inc/maida/internal/shared/clock"
	"github.com/maida-inc/maida/internal/shared/config"
	"github.com/maida-inc/maida/internal/shared/errors"
)

// Sunday evening; tomorrow is Monday 2025-06-02.
var testNow = time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)

var testScheduling = config.SchedulingConfig{
	HorizonDays:       28,
	PauseMenuDays:     []int{7, 14, 21},
	PauseNoticeHours:  72,
	ResumeNoticeHours: 48,
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newCreateFixture(quoter PriceQuoter) (*CreateSubscriptionUseCase, *fakeSubscriptionRepo, *fakeDeliveryRepo) {
	subRepo := newFakeSubscriptionRepo()
	delRepo := newFakeDeliveryRepo()
	uc := NewCreateSubscriptionUseCase(
		subRepo,
		delRepo,
		quoter,
		delivery.NewScheduleGenerator(clock.NewFixed(testNow)),
		fakeTxManager{},
		clock.NewFixed(testNow),
		testScheduling,
		nopLogger{},
	)
	return uc, subRepo, delRepo
}

func TestCreateSubscription_WeekdayPattern(t *testing.T) {
	uc, subRepo, delRepo := newCreateFixture(fakeQuoter{})

	result, err := uc.Execute(context.Background(), CreateSubscriptionCommand{
		CustomerID: 1,
		PlanID:     "plan_balanced",
		MainMeals:  2,
		Duration:   "W2",
		Weekdays:   []string{"mon", "wed", "fri"},
		Window:     "morning",
		Address:    "12 Rue Atlas, Casablanca",
	})
	require.NoError(t, err)

	assert.Equal(t, "active", result.Subscription.Status)
	assert.Equal(t, []string{"mon", "wed", "fri"}, result.Subscription.Weekdays)
	assert.Equal(t, "900.00", result.Subscription.Total)
	assert.Equal(t, "100.00", result.Subscription.Discount)

	// Mon/Wed/Fri over the two committed weeks starting tomorrow.
	require.Len(t, result.Deliveries, 6)
	assert.Equal(t, "2025-06-02", result.Deliveries[0].Date)
	assert.Equal(t, "2025-06-13", result.Deliveries[5].Date)

	sub, err := subRepo.GetBySID(context.Background(), result.Subscription.ID)
	require.NoError(t, err)
	require.NotNil(t, sub)

	persisted, err := delRepo.ListBySubscription(context.Background(), sub.ID())
	require.NoError(t, err)
	assert.Len(t, persisted, 6)
}

func TestCreateSubscription_ExplicitDates(t *testing.T) {
	uc, _, _ := newCreateFixture(fakeQuoter{})

	result, err := uc.Execute(context.Background(), CreateSubscriptionCommand{
		CustomerID: 1,
		PlanID:     "plan_balanced",
		MainMeals:  2,
		Duration:   "W1",
		Dates:      []time.Time{date(2025, 6, 3), date(2025, 6, 5), date(2025, 6, 7)},
		StartDate:  date(2025, 6, 2),
		Window:     "evening",
		Address:    "addr",
	})
	require.NoError(t, err)

	require.Len(t, result.Deliveries, 3)
	assert.Empty(t, result.Subscription.Weekdays, "explicit picks carry no standing pattern")
}

func TestCreateSubscription_RejectsPastStartDate(t *testing.T) {
	uc, _, _ := newCreateFixture(fakeQuoter{})

	_, err := uc.Execute(context.Background(), CreateSubscriptionCommand{
		CustomerID: 1,
		PlanID:     "plan_balanced",
		MainMeals:  2,
		Duration:   "W2",
		Weekdays:   []string{"mon", "wed", "fri"},
		StartDate:  date(2025, 6, 1),
		Window:     "morning",
		Address:    "addr",
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestCreateSubscription_RejectsMixedDayModes(t *testing.T) {
	uc, _, _ := newCreateFixture(fakeQuoter{})

	_, err := uc.Execute(context.Background(), CreateSubscriptionCommand{
		CustomerID: 1,
		PlanID:     "plan_balanced",
		MainMeals:  2,
		Duration:   "W1",
		Dates:      []time.Time{date(2025, 6, 3)},
		Weekdays:   []string{"mon"},
		Window:     "morning",
		Address:    "addr",
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestCreateSubscription_RejectsInvalidDuration(t *testing.T) {
	uc, _, _ := newCreateFixture(fakeQuoter{})

	_, err := uc.Execute(context.Background(), CreateSubscriptionCommand{
		CustomerID: 1,
		PlanID:     "plan_balanced",
		MainMeals:  2,
		Duration:   "M6",
		Weekdays:   []string{"mon", "wed", "fri"},
		Window:     "morning",
		Address:    "addr",
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestCreateSubscription_QuoteFailureCreatesNothing(t *testing.T) {
	uc, subRepo, delRepo := newCreateFixture(fakeQuoter{err: errors.NewNotFoundError("plan not found")})

	_, err := uc.Execute(context.Background(), CreateSubscriptionCommand{
		CustomerID: 1,
		PlanID:     "plan_ghost",
		MainMeals:  2,
		Duration:   "W2",
		Weekdays:   []string{"mon", "wed", "fri"},
		Window:     "morning",
		Address:    "addr",
	})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
	assert.Empty(t, subRepo.subs)
	assert.Empty(t, delRepo.deliveries)
}
