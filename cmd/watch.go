// =============================================================================
// Daily Report Generator - Watch Command
// =============================================================================
//
// This file implements the 'watch' command, which processes the input
// directory on a cron schedule. Each pass picks up whatever exports have
// landed since the last one, reports on them, archives them, and prunes
// old archives when a retention window is configured.
//
// The watcher runs until interrupted. A failing file only affects itself;
// it stays in the input directory and is retried on the next pass.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/nas-daily-report/internal/craft"
	"github.com/ginjaninja78/nas-daily-report/internal/generator"
	"github.com/ginjaninja78/nas-daily-report/pkg/utils"
)

var watchScheduleFlag string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Process the input directory on a cron schedule",
	Long: `Process the input directory on a cron schedule until interrupted.

The schedule uses standard five-field cron syntax (minute hour dom month
dow). Every pass processes all exports currently in the input directory,
each against its own latest production date, then archives the processed
files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch()
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchScheduleFlag, "schedule", "",
		"cron expression (overrides watch_schedule from the config file)")
}

// runWatch is the main entry point for the watch command.
func runWatch() error {
	if watchScheduleFlag != "" {
		cfg.WatchSchedule = watchScheduleFlag
	}

	gen := generator.New(cfg, craft.Default(), logger)
	fm := gen.FileManager()
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(cfg.WatchSchedule)
	if err != nil {
		return fmt.Errorf("invalid watch schedule %q: %w", cfg.WatchSchedule, err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	logger.Info("watch started",
		zap.String("schedule", cfg.WatchSchedule),
		zap.String("input_dir", cfg.InputDir))

	for {
		next := sched.Next(time.Now())
		logger.Info("next pass scheduled", zap.Time("at", next))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-timer.C:
			runWatchPass(gen, fm)
		case sig := <-sigCh:
			timer.Stop()
			logger.Info("watch stopping", zap.String("signal", sig.String()))
			return nil
		}
	}
}

// runWatchPass processes everything currently in the input directory.
func runWatchPass(gen *generator.Generator, fm *utils.FileManager) {
	files, err := fm.DiscoverInputFiles()
	if err != nil {
		logger.Error("input discovery failed", zap.Error(err))
		return
	}
	if len(files) == 0 {
		logger.Info("no input files this pass")
		return
	}

	run := processFiles(gen, files, "", !cfg.SkipArchive)
	writeRunLogs(fm, run, "watch")

	logger.Info("watch pass complete",
		zap.Int("files", run.TotalFiles),
		zap.Int("succeeded", run.SuccessfulFiles),
		zap.Int("failed", run.FailedFiles),
		zap.Int("report_rows", run.TotalReportRows))

	if cfg.ArchiveRetentionDays > 0 {
		removed, err := fm.CleanOldArchives(cfg.ArchiveRetentionDays)
		if err != nil {
			logger.Warn("archive cleanup failed", zap.Error(err))
		} else if removed > 0 {
			logger.Info("old archives removed", zap.Int("count", removed))
		}
	}
}
