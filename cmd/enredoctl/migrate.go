// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/enredo/internal/platform/config"
	"github.com/taibuivan/enredo/internal/platform/migration"
)

// errNotPostgres is returned when migrations are requested for another driver.
var errNotPostgres = errors.New("migrations apply to STORE_DRIVER=postgres only")

// NewMigrateCommand creates the migrate command group.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the PostgreSQL schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := postgresConfig(rootOpts)
			if err != nil {
				return err
			}
			if err := migration.RunUp(cfg.DatabaseURL, rootOpts.logger(cmd)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := postgresConfig(rootOpts)
			if err != nil {
				return err
			}
			if err := migration.RunDown(cfg.DatabaseURL, steps, rootOpts.logger(cmd)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", steps)
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	cmd.AddCommand(down)

	return cmd
}

func postgresConfig(rootOpts *RootOptions) (*config.Config, error) {
	cfg, err := rootOpts.loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.StoreDriver != config.DriverPostgres {
		return nil, errNotPostgres
	}
	return cfg, nil
}
