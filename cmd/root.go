// =============================================================================
// Daily Report Generator - Root Command
// =============================================================================
//
// This file defines the root command for the CLI application.
// It sets up global flags, loads configuration, and builds the process-wide
// logger before any subcommand runs.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/nas-daily-report/internal/config"
	"github.com/ginjaninja78/nas-daily-report/internal/logging"
	"github.com/ginjaninja78/nas-daily-report/pkg/utils"
)

// =============================================================================
// GLOBAL FLAGS AND STATE
// =============================================================================

var (
	// cfgFile is the path to the configuration file.
	cfgFile string

	// verbose enables debug logging.
	verbose bool

	// cfg is the loaded configuration, available to all subcommands.
	cfg *config.Config

	// logger is the process-wide structured logger.
	logger *zap.Logger
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "reportgen",
	Short: "Generate craft-grouped daily labor reports from work-order exports",
	Long: `Daily Report Generator

A tool for turning work-order time exports from the scheduling system into
craft-grouped daily labor reports (PDF).

Key Features:
  - Reads Excel (.xlsx/.xlsm) and CSV exports with the standard banner layout
  - Normalizes the mixed date encodings exports are known to contain
  - Groups hours by craft, worker, and work order for a single date
  - Renders a paginated PDF with one table per craft
  - Batch directory processing, a cron-style watcher, and an HTTP upload UI

Example Usage:
  # Report on the latest date in one export
  reportgen generate --file ./input/hours.xlsx

  # Process everything in the input directory for a specific date
  reportgen generate --date 06/15/2023

  # See which dates an export contains
  reportgen dates --file ./input/hours.xlsx

  # Run the upload service
  reportgen serve

  # Process the input directory on a schedule
  reportgen watch`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		// An explicitly passed config file must exist; the default path
		// is optional and falls back to built-in defaults.
		if cmd.Flags().Changed("config") || utils.FileExists(cfgFile) {
			cfg, err = config.Load(cfgFile)
			if err != nil {
				return err
			}
		} else {
			cfg = config.Default()
		}

		logger, err = logging.New(cfg.LogLevel, cfg.LogFile, verbose)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		// Show help when no subcommand is specified.
		cmd.Help()
	},
}

// Execute runs the root command. This is called by main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml",
		"path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
}
