// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the Inkwell CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inkwell",
		Short: "Inkwell - A multi-user blogging service",
		Long: `Inkwell is a multi-user blogging service with session-based
authentication and ownership-scoped article management, backed by PostgreSQL.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newStatusCmd())

	return cmd
}
