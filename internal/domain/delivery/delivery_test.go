package delivery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maida-inc/maida/internal/shared/errors"
)

func newPendingDelivery(t *testing.T) *Delivery {
	t.Helper()
	d, err := NewDelivery(1, time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC), WindowMorning, "12 Rue Atlas, Casablanca")
	require.NoError(t, err)
	return d
}

func TestNewDelivery_NormalizesDateToMidnight(t *testing.T) {
	d, err := NewDelivery(1, time.Date(2025, 6, 5, 16, 45, 0, 0, time.UTC), WindowNoon, "addr")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC), d.Date())
	assert.Equal(t, StatusPending, d.Status())
	assert.NotEmpty(t, d.SID())
}

func TestNewDelivery_RejectsInvalidWindow(t *testing.T) {
	_, err := NewDelivery(1, time.Now(), Window("midnight"), "addr")
	assert.Error(t, err)
}

func TestStatusTransitions_TerminalIsMonotone(t *testing.T) {
	tests := []struct {
		name    string
		resolve func(*Delivery) error
	}{
		{name: "delivered", resolve: (*Delivery).MarkDelivered},
		{name: "skipped", resolve: (*Delivery).Skip},
		{name: "canceled", resolve: (*Delivery).Cancel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newPendingDelivery(t)
			require.NoError(t, tt.resolve(d))

			// Any further transition conflicts.
			for _, again := range []func() error{d.MarkDelivered, d.Skip, d.Cancel} {
				err := again()
				require.Error(t, err)
				assert.True(t, errors.IsConflictError(err))
			}
		})
	}
}

func TestShiftDate_OnlyPending(t *testing.T) {
	d := newPendingDelivery(t)
	require.NoError(t, d.ShiftDate(14))
	assert.Equal(t, time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC), d.Date())

	require.NoError(t, d.MarkDelivered())
	err := d.ShiftDate(7)
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("evening")
	require.NoError(t, err)
	assert.Equal(t, WindowEvening, w)

	_, err = ParseWindow("dawn")
	assert.Error(t, err)
}
