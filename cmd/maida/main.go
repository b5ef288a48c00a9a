package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/maida-inc/maida/internal/interfaces/cli/migrate"
	"github.com/maida-inc/maida/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "maida",
		Short: "Maida - meal subscription pricing and delivery scheduling",
		Long:  `Maida prices meal-plan subscriptions and manages their delivery calendars.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
