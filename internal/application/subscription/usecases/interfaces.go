package usecases

import (
	"context"
	"time"

	"github.com/maida-inc/maida/internal/domain/pricing"
	"github.com/maida-inc/maida/internal/domain/shared/vo"
)

// TransactionManager runs a function inside one database transaction.
// The derived context carries the transaction for repositories.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PriceQuoter prices a meal selection at a given instant.
type PriceQuoter interface {
	Quote(ctx context.Context, sel pricing.MealSelection, at time.Time) (*pricing.PriceBreakdown, error)
}

// ScheduleBuilder expands a date plan into concrete delivery dates.
type ScheduleBuilder interface {
	Generate(plan vo.DatePlan, startDate time.Time, duration vo.DurationCode, horizon time.Time) ([]time.Time, error)
}
