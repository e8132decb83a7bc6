// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/enredo/internal/platform/config"
	"github.com/taibuivan/enredo/internal/platform/mongodb"
	pgstore "github.com/taibuivan/enredo/internal/platform/postgres"
	"github.com/taibuivan/enredo/internal/platform/sec"
	"github.com/taibuivan/enredo/internal/users/auth"
)

// commandTimeout bounds the store round-trips of a single CLI invocation.
const commandTimeout = 30 * time.Second

// NewAdminCommand creates the admin command group.
func NewAdminCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage administrator accounts",
	}

	cmd.AddCommand(newSeedCommand(rootOpts))
	cmd.AddCommand(newHashPasswordCommand())

	return cmd
}

func newSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the administrator unless it already exists",
		Long: `Create the administrator account in the configured store.

Defaults come from ADMIN_USERNAME and ADMIN_PASSWORD; flags override them.
An existing account is left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.loadConfig()
			if err != nil {
				return err
			}
			if username == "" {
				username = cfg.AdminUsername
			}
			if password == "" {
				password = cfg.AdminPassword
			}
			if password == "" {
				return errors.New("a password is required (--password or ADMIN_PASSWORD)")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			logger := rootOpts.logger(cmd)
			users, closeStore, err := openUsers(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			service := auth.NewService(users, nil, logger)
			created, err := service.EnsureAdmin(ctx, username, password)
			if err != nil {
				return err
			}

			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "administrator %q created\n", username)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "administrator %q already exists\n", username)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "administrator username (default ADMIN_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "administrator password (default ADMIN_PASSWORD)")
	return cmd
}

func newHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hashed, err := sec.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hashed)
			return nil
		},
	}
}

// openUsers connects to the configured store and returns its user repository.
func openUsers(ctx context.Context, cfg *config.Config, logger *slog.Logger) (auth.UserRepository, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, pgstore.Options{MaxConns: 2}, logger)
		if err != nil {
			return nil, nil, err
		}
		return auth.NewUserRepository(pool), pool.Close, nil

	case config.DriverMongo:
		db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
		if err != nil {
			return nil, nil, err
		}
		closeStore := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = mongodb.Disconnect(closeCtx, db)
		}
		return auth.NewMongoUserRepository(db), closeStore, nil

	default:
		return nil, nil, fmt.Errorf("store driver %q keeps no accounts between runs", cfg.StoreDriver)
	}
}
