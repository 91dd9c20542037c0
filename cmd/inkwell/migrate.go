// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package main

import (
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/inkwell/inkwell/internal/config"
	"github.com/inkwell/inkwell/internal/store"
)

// newMigrateCmd creates the migrate subcommand.
func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Run all pending database migrations against the PostgreSQL database.`,
		RunE:  runMigrateCmd,
	}
}

// databaseURL resolves the connection string: config file first, then
// the DATABASE_URL environment variable.
func databaseURL() (string, error) {
	if configFile != "" {
		cfg, err := config.Load(configFile, nil)
		if err != nil {
			return "", err
		}
		return cfg.Database.DSN(), nil
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url, nil
	}
	return "", oops.Code("CONFIG_INVALID").Errorf("either --config or DATABASE_URL is required")
}

func runMigrateCmd(cmd *cobra.Command, _ []string) error {
	url, err := databaseURL()
	if err != nil {
		return err
	}
	return runMigrations(cmd, url)
}

// runMigrations applies all pending migrations and reports the
// resulting schema version.
func runMigrations(cmd *cobra.Command, url string) error {
	migrator, err := store.NewMigrator(url)
	if err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", "create migrator").Wrap(err)
	}
	defer func() {
		if closeErr := migrator.Close(); closeErr != nil {
			cmd.PrintErrln("warning: closing migrator:", closeErr)
		}
	}()

	cmd.Println("Running migrations...")
	if err := migrator.Up(); err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", "run migrations").Wrap(err)
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", "read schema version").Wrap(err)
	}
	if dirty {
		return oops.Code("MIGRATION_FAILED").Errorf("schema version %d is dirty", version)
	}

	cmd.Printf("Migrations completed successfully (schema version %d)\n", version)
	return nil
}
