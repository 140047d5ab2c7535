package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AdguardTeam/FilterListManager/internal/cliapp"
	"github.com/AdguardTeam/FilterListManager/internal/logging"
)

var (
	app        *cliapp.App
	configPath string

	rootCmd = &cobra.Command{
		Use:           "flmctl",
		Short:         "Manage a filter list manager database",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			logger := logging.NewFromConfigValues("info", "console")
			ctx := logging.WithContext(context.Background(), logger)
			cmd.SetContext(ctx)

			var err error
			app, err = cliapp.New(ctx, configPath)
			return err
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
}

// Execute runs the root command, mapping a *cliapp.CodedError to its
// documented exit code (spec §6) and anything else to 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var coded *cliapp.CodedError
		if errors.As(err, &coded) {
			os.Exit(int(coded.Code))
		}
		os.Exit(1)
	}
}
