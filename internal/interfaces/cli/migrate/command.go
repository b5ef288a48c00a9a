// Package migrate exposes the embedded schema migrations as CLI
// subcommands.
package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maida-inc/maida/internal/infrastructure/config"
	"github.com/maida-inc/maida/internal/infrastructure/database"
	"github.com/maida-inc/maida/internal/infrastructure/migration"
	"github.com/maida-inc/maida/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Apply, roll back, or inspect the embedded database migrations.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE:  runDown,
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func initEnv() (*config.Config, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	cfg, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	if err := migration.Up(database.Get(), cfg.Database.Driver); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	cfg, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	if err := migration.Down(database.Get(), cfg.Database.Driver); err != nil {
		return fmt.Errorf("down migration failed: %w", err)
	}
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	if err := migration.Status(database.Get(), cfg.Database.Driver); err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}
	return nil
}
