// Package migration applies the versioned SQL schema with goose. The
// migration files are embedded so the server binary can migrate itself.
package migration

import (
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	appLogger "github.com/maida-inc/maida/internal/shared/logger"
)

//go:embed sql/*.sql
var migrationFS embed.FS

// Up applies all pending migrations.
func Up(gormDB *gorm.DB, dialect string) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	goose.SetBaseFS(migrationFS)
	if err := goose.SetDialect(gooseDialect(dialect)); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.Up(sqlDB, "sql"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	appLogger.Info("database migrations applied")
	return nil
}

// Down rolls back the most recent migration.
func Down(gormDB *gorm.DB, dialect string) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	goose.SetBaseFS(migrationFS)
	if err := goose.SetDialect(gooseDialect(dialect)); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.Down(sqlDB, "sql"); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}

	appLogger.Info("database migration rolled back")
	return nil
}

// Status prints the migration status.
func Status(gormDB *gorm.DB, dialect string) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	goose.SetBaseFS(migrationFS)
	if err := goose.SetDialect(gooseDialect(dialect)); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	return goose.Status(sqlDB, "sql")
}

func gooseDialect(driver string) string {
	if driver == "sqlite" {
		return "sqlite3"
	}
	return "mysql"
}
