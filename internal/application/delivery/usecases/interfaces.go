package usecases

import (
	"context"
	"time"

	"github.com/maida-inc/maida/internal/domain/shared/vo"
)

// TransactionManager runs a function inside one database transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ScheduleBuilder expands a date plan into concrete delivery dates
// without enforcing the duration minimum; rebuild windows are partial
// and the minimum is checked against the whole surviving calendar.
type ScheduleBuilder interface {
	Expand(plan vo.DatePlan, startDate time.Time, duration vo.DurationCode, horizon time.Time) ([]time.Time, error)
}
