package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfDay_NormalizesToUTCMidnight(t *testing.T) {
	in := time.Date(2025, 3, 14, 17, 42, 9, 123, time.UTC)
	got := StartOfDay(in)

	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), got)
}

func TestStartOfDay_DoesNotMutateInput(t *testing.T) {
	in := time.Date(2025, 3, 14, 17, 0, 0, 0, time.UTC)
	_ = StartOfDay(in)

	assert.Equal(t, 17, in.Hour())
}

func TestAddDays_CrossesMonthBoundary(t *testing.T) {
	in := time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC)
	got := AddDays(in, 3)

	assert.Equal(t, time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC), got)
}

func TestTomorrow_IgnoresTimeOfDay(t *testing.T) {
	lateEvening := time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)
	earlyMorning := time.Date(2025, 6, 1, 0, 1, 0, 0, time.UTC)

	want := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, Tomorrow(lateEvening))
	assert.Equal(t, want, Tomorrow(earlyMorning))
}

func TestNextDayOnOrAfter(t *testing.T) {
	midnight := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, midnight, NextDayOnOrAfter(midnight), "an exact midnight is its own floor")

	midDay := time.Date(2025, 6, 3, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), NextDayOnOrAfter(midDay))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	b := time.Date(2025, 6, 8, 2, 0, 0, 0, time.UTC)

	assert.Equal(t, 7, DaysBetween(a, b))
	assert.Equal(t, -7, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestParse_RoundTrip(t *testing.T) {
	d, err := Parse("2025-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2025-12-31", Format(d))
}

func TestParse_RejectsGarbage(t *testing.T) {
	_, err := Parse("31/12/2025")
	assert.Error(t, err)
}
