// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taibuivan/enredo/internal/platform/config"
	"github.com/taibuivan/enredo/internal/platform/constants"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool

	// loadConfig is swapped in tests.
	loadConfig func() (*config.Config, error)
}

// NewRootCommand creates the root command of the operator CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{loadConfig: config.Load}

	cmd := &cobra.Command{
		Use:           "enredoctl",
		Short:         "Enredo operator tools",
		Long:          "Schema migrations and administrator accounts for an Enredo deployment.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewAdminCommand(opts))

	return cmd
}

// logger writes text logs to the command's stderr.
func (opts *RootOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}

	var out io.Writer = cmd.ErrOrStderr()
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName+"ctl"))
}
