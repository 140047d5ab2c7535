package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AdguardTeam/FilterListManager/internal/cliapp"
	"github.com/AdguardTeam/FilterListManager/internal/infrastructure/persistence/sqlite"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations and report the resulting version",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if err := sqlite.RunMigrations(ctx, app.DB); err != nil {
		return &cliapp.CodedError{Code: cliapp.ExitMigration, Err: fmt.Errorf("run migrations: %w", err)}
	}

	version, err := sqlite.SchemaVersion(ctx, app.DB)
	if err != nil {
		return &cliapp.CodedError{Code: cliapp.ExitMigration, Err: fmt.Errorf("read schema version: %w", err)}
	}

	fmt.Printf("schema version: %d\n", version)
	return nil
}
