package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	svo "github.com/maida-inc/maida/internal/domain/subscription/valueobjects"
)

func TestSubscriptionRepository_CreateAndGetBySID(t *testing.T) {
	repo := NewSubscriptionRepository(newTestDB(t), nopLogger{})
	ctx := context.Background()

	sub := newActiveSubscription(t, 7, date(2025, 6, 2))
	require.NoError(t, repo.Create(ctx, sub))
	assert.NotZero(t, sub.ID())

	loaded, err := repo.GetBySID(ctx, sub.SID())
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, sub.ID(), loaded.ID())
	assert.Equal(t, uint(7), loaded.CustomerID())
	assert.Equal(t, "plan_balanced", loaded.PlanID())
	assert.Equal(t, svo.StatusActive, loaded.Status())
	assert.Equal(t, "M1", loaded.Duration().String())
	assert.True(t, loaded.HasWeekdayPreference())
	assert.True(t, loaded.Subtotal().Equal(sub.Subtotal()))
	assert.True(t, loaded.Total().Equal(sub.Total()))
	assert.Equal(t, 1, loaded.Version())
	assert.True(t, loaded.RenewsAt().Equal(date(2025, 6, 30)))
}

func TestSubscriptionRepository_GetBySID_Missing(t *testing.T) {
	repo := NewSubscriptionRepository(newTestDB(t), nopLogger{})

	loaded, err := repo.GetBySID(context.Background(), "sub_doesnotexist")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSubscriptionRepository_Update_OptimisticVersion(t *testing.T) {
	repo := NewSubscriptionRepository(newTestDB(t), nopLogger{})
	ctx := context.Background()

	sub := newActiveSubscription(t, 7, date(2025, 6, 2))
	require.NoError(t, repo.Create(ctx, sub))

	now := time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)
	require.NoError(t, sub.Pause(7, now))
	require.NoError(t, repo.Update(ctx, sub))

	loaded, err := repo.GetBySID(ctx, sub.SID())
	require.NoError(t, err)
	assert.Equal(t, svo.StatusPaused, loaded.Status())
	assert.Equal(t, 1, loaded.PauseCount())
	assert.Equal(t, 2, loaded.Version())
	assert.True(t, loaded.RenewsAt().Equal(date(2025, 7, 7)))
}

func TestSubscriptionRepository_Update_RejectsStaleWriter(t *testing.T) {
	repo := NewSubscriptionRepository(newTestDB(t), nopLogger{})
	ctx := context.Background()

	sub := newActiveSubscription(t, 7, date(2025, 6, 2))
	require.NoError(t, repo.Create(ctx, sub))

	first, err := repo.GetBySID(ctx, sub.SID())
	require.NoError(t, err)
	second, err := repo.GetBySID(ctx, sub.SID())
	require.NoError(t, err)

	require.NoError(t, first.Cancel())
	require.NoError(t, repo.Update(ctx, first))

	require.NoError(t, second.Cancel())
	err = repo.Update(ctx, second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "modified concurrently")
}

func TestSubscriptionRepository_ListByCustomer(t *testing.T) {
	repo := NewSubscriptionRepository(newTestDB(t), nopLogger{})
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newActiveSubscription(t, 7, date(2025, 6, 2))))
	require.NoError(t, repo.Create(ctx, newActiveSubscription(t, 7, date(2025, 7, 7))))
	require.NoError(t, repo.Create(ctx, newActiveSubscription(t, 8, date(2025, 6, 2))))

	subs, err := repo.ListByCustomer(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, subs, 2)
	for _, s := range subs {
		assert.Equal(t, uint(7), s.CustomerID())
	}
}

func TestSubscriptionRepository_ListActiveExpiredBefore(t *testing.T) {
	repo := NewSubscriptionRepository(newTestDB(t), nopLogger{})
	ctx := context.Background()

	lapsed := newActiveSubscription(t, 7, date(2025, 4, 1))
	require.NoError(t, repo.Create(ctx, lapsed))

	current := newActiveSubscription(t, 7, date(2025, 6, 2))
	require.NoError(t, repo.Create(ctx, current))

	canceled := newActiveSubscription(t, 7, date(2025, 4, 1))
	require.NoError(t, repo.Create(ctx, canceled))
	require.NoError(t, canceled.Cancel())
	require.NoError(t, repo.Update(ctx, canceled))

	now := time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)
	subs, err := repo.ListActiveExpiredBefore(ctx, now)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, lapsed.SID(), subs[0].SID())
}
