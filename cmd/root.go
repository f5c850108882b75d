// Package cmd contains the CLI commands for the application.
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sorinciupitu/extrase-trezorerie/internal/config"
	"github.com/sorinciupitu/extrase-trezorerie/internal/logging"
)

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "extrase",
		Short: "Parse treasury account statement PDFs into structured transactions.",
		Long: `extrase reconstructs structured transactions and a running account
balance from treasury statement PDFs using only the statement's visual
layout: words at page coordinates, with no machine-readable table
structure behind them.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			Log = logging.New(cfg.LogLevel, cfg.LogFormat)
			return nil
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
