package repository

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/maida-inc/maida/internal/domain/shared/vo"
	"github.com/maida-inc/maida/internal/domain/subscription"
	"github.com/maida-inc/maida/internal/infrastructure/persistence/models"
	"github.com/maida-inc/maida/internal/shared/logger"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any)                  {}
func (nopLogger) Info(msg string, args ...any)                   {}
func (nopLogger) Warn(msg string, args ...any)                   {}
func (nopLogger) Error(msg string, args ...any)                  {}
func (n nopLogger) With(args ...any) logger.Interface            { return n }
func (n nopLogger) Named(name string) logger.Interface           { return n }
func (nopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Errorw(msg string, keysAndValues ...interface{}) {}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, gormDB.AutoMigrate(
		&models.SubscriptionModel{},
		&models.DeliveryModel{},
		&models.PlanModel{},
		&models.PromoCodeModel{},
	))

	return gormDB
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newActiveSubscription(t *testing.T, customerID uint, startsAt time.Time) *subscription.Subscription {
	t.Helper()

	duration, err := vo.ParseDurationCode("M1")
	require.NoError(t, err)
	weekdays, err := vo.NewWeekdaySet([]string{"mon", "wed", "fri"})
	require.NoError(t, err)

	sub, err := subscription.NewSubscription(
		customerID,
		"plan_balanced",
		duration,
		weekdays,
		startsAt,
		decimal.NewFromInt(1000),
		decimal.NewFromInt(100),
		decimal.NewFromInt(900),
	)
	require.NoError(t, err)
	return sub
}
