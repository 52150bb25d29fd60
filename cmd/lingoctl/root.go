package main

import (
	"context"
	"fmt"

	"github.com/phrazzld/lingo-review/internal/config"
	"github.com/phrazzld/lingo-review/internal/platform/logger"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lingoctl",
		Short:         "Operate a lingo-review deployment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "path to a config file (default: search for config.yaml)")

	root.AddCommand(newMigrateCmd())
	root.AddCommand(newBankCmd())
	root.AddCommand(newScheduleCmd())
	root.AddCommand(newTokenCmd())
	return root
}

// loadConfig reads the configuration named by --config and returns a context
// carrying a logger at the configured level.
func loadConfig(cmd *cobra.Command) (context.Context, *config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// stdout carries command output, so logs go to stderr
	log := logger.New(cmd.ErrOrStderr(), cfg.Server.LogLevel)
	return logger.WithLogger(cmd.Context(), log), cfg, nil
}
