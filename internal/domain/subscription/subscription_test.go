package subscription

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maida-inc/maida/internal/domain/shared/vo"
	svo "github.com/maida-inc/maida/internal/domain/subscription/valueobjects"
	"github.com/maida-inc/maida/internal/shared/errors"
)

// --- helpers ---

func weekdaySet(t *testing.T, codes ...string) vo.WeekdaySet {
	t.Helper()
	set, err := vo.NewWeekdaySet(codes)
	require.NoError(t, err)
	return set
}

func newActiveSubscription(t *testing.T) *Subscription {
	t.Helper()
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	sub, err := NewSubscription(
		10,
		"plan_balanced",
		vo.DurationM1,
		weekdaySet(t, "mon", "thu"),
		start,
		decimal.NewFromInt(1000),
		decimal.NewFromInt(100),
		decimal.NewFromInt(900),
	)
	require.NoError(t, err)
	return sub
}

func TestNewSubscription_StartsActive(t *testing.T) {
	sub := newActiveSubscription(t)

	assert.Equal(t, svo.StatusActive, sub.Status())
	assert.NotEmpty(t, sub.SID())
	assert.Equal(t, 0, sub.PauseCount())
	assert.True(t, sub.HasWeekdayPreference())

	// M1 commits four weeks of deliveries.
	wantRenewal := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, wantRenewal, sub.RenewsAt())
}

func TestNewSubscription_RequiresCustomerAndPlan(t *testing.T) {
	start := time.Now().UTC()

	_, err := NewSubscription(0, "plan_balanced", vo.DurationW1, nil, start,
		decimal.Zero, decimal.Zero, decimal.Zero)
	assert.Error(t, err)

	_, err = NewSubscription(10, "", vo.DurationW1, nil, start,
		decimal.Zero, decimal.Zero, decimal.Zero)
	assert.Error(t, err)
}

func TestPause_HappyPath(t *testing.T) {
	sub := newActiveSubscription(t)
	renewsBefore := sub.RenewsAt()
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	err := sub.Pause(14, now)
	require.NoError(t, err)

	assert.Equal(t, svo.StatusPaused, sub.Status())
	assert.Equal(t, 1, sub.PauseCount())
	require.NotNil(t, sub.PausedAt())
	assert.Equal(t, renewsBefore.AddDate(0, 0, 14), sub.RenewsAt(),
		"paid-for period is extended by the pause length")
}

func TestPause_LifetimeCapAlwaysConflicts(t *testing.T) {
	sub := newActiveSubscription(t)
	now := time.Now().UTC()

	require.NoError(t, sub.Pause(7, now))
	require.NoError(t, sub.Resume(now.AddDate(0, 0, 7), now))

	// Second attempt fails regardless of elapsed time.
	err := sub.Pause(7, now.AddDate(0, 0, 30))
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestPause_OnlyFromActive(t *testing.T) {
	sub := newActiveSubscription(t)
	require.NoError(t, sub.Cancel())

	err := sub.Pause(7, time.Now().UTC())
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestPause_RejectsNonPositiveDuration(t *testing.T) {
	sub := newActiveSubscription(t)

	err := sub.Pause(0, time.Now().UTC())
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestResume_OnlyFromPaused(t *testing.T) {
	sub := newActiveSubscription(t)

	err := sub.Resume(time.Now().UTC(), time.Now().UTC())
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestResume_Reactivates(t *testing.T) {
	sub := newActiveSubscription(t)
	now := time.Now().UTC()
	require.NoError(t, sub.Pause(7, now))

	from := now.AddDate(0, 0, 7)
	require.NoError(t, sub.Resume(from, now))

	assert.Equal(t, svo.StatusActive, sub.Status())
	require.NotNil(t, sub.ResumesAt())
	assert.Equal(t, from, *sub.ResumesAt())
	assert.Equal(t, 1, sub.PauseCount(), "resume never resets the lifetime counter")
}

func TestCancel_FromActiveAndPaused(t *testing.T) {
	active := newActiveSubscription(t)
	require.NoError(t, active.Cancel())
	assert.Equal(t, svo.StatusCanceled, active.Status())

	paused := newActiveSubscription(t)
	require.NoError(t, paused.Pause(7, time.Now().UTC()))
	require.NoError(t, paused.Cancel())
	assert.Equal(t, svo.StatusCanceled, paused.Status())
}

func TestCancel_IsIdempotent(t *testing.T) {
	sub := newActiveSubscription(t)
	require.NoError(t, sub.Cancel())
	assert.NoError(t, sub.Cancel())
}

func TestMarkExpired_OnlyFromActive(t *testing.T) {
	sub := newActiveSubscription(t)
	require.NoError(t, sub.MarkExpired())
	assert.Equal(t, svo.StatusExpired, sub.Status())

	canceled := newActiveSubscription(t)
	require.NoError(t, canceled.Cancel())
	err := canceled.MarkExpired()
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestRenew_AdvancesCommittedPeriod(t *testing.T) {
	sub := newActiveSubscription(t)
	before := sub.RenewsAt()

	require.NoError(t, sub.Renew())
	assert.Equal(t, before.AddDate(0, 0, 28), sub.RenewsAt())
}

func TestRenew_ReactivatesExpired(t *testing.T) {
	sub := newActiveSubscription(t)
	require.NoError(t, sub.MarkExpired())

	require.NoError(t, sub.Renew())
	assert.Equal(t, svo.StatusActive, sub.Status())
}

func TestUpdateWeekdayPreference(t *testing.T) {
	sub := newActiveSubscription(t)

	err := sub.UpdateWeekdayPreference(weekdaySet(t, "tue", "fri"))
	require.NoError(t, err)
	assert.Equal(t, []string{"tue", "fri"}, sub.Weekdays().Codes())
}

func TestUpdateWeekdayPreference_RejectsEmptySet(t *testing.T) {
	sub := newActiveSubscription(t)

	err := sub.UpdateWeekdayPreference(vo.WeekdaySet{})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestUpdateWeekdayPreference_RejectsPaused(t *testing.T) {
	sub := newActiveSubscription(t)
	require.NoError(t, sub.Pause(7, time.Now().UTC()))

	err := sub.UpdateWeekdayPreference(weekdaySet(t, "tue"))
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestReconstruct_RejectsInvalidStatus(t *testing.T) {
	_, err := Reconstruct(ReconstructParams{
		ID:         1,
		CustomerID: 10,
		PlanID:     "plan_balanced",
		Status:     svo.SubscriptionStatus("limbo"),
		Duration:   vo.DurationW1,
	})
	assert.Error(t, err)
}
