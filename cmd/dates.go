// =============================================================================
// Daily Report Generator - Dates Command
// =============================================================================
//
// This file implements the 'dates' command, which lists every production
// date an export file contains. Useful for checking what a file covers
// before pinning a report date with 'generate --date'.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/nas-daily-report/internal/aggregate"
	"github.com/ginjaninja78/nas-daily-report/internal/craft"
	"github.com/ginjaninja78/nas-daily-report/internal/generator"
)

var datesFile string

var datesCmd = &cobra.Command{
	Use:   "dates",
	Short: "List production dates found in an export file",
	Long: `List every normalized production date an export file contains,
in ascending order. Records whose dates cannot be interpreted are not
counted; the latest listed date is what 'generate' targets by default.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDates()
	},
}

func init() {
	rootCmd.AddCommand(datesCmd)

	datesCmd.Flags().StringVarP(&datesFile, "file", "f", "", "export file to inspect")
	datesCmd.MarkFlagRequired("file")
}

// runDates is the main entry point for the dates command.
func runDates() error {
	gen := generator.New(cfg, craft.Default(), logger)

	ds, err := gen.IngestFile(datesFile)
	if err != nil {
		return err
	}

	dates := aggregate.Dates(ds.Records)
	if len(dates) == 0 {
		fmt.Printf("No parseable production dates in %s (%d records)\n", datesFile, ds.RowCount)
		return nil
	}

	fmt.Printf("Found %d date(s) in %s (%d records):\n", len(dates), datesFile, ds.RowCount)
	for _, d := range dates {
		fmt.Printf("  %s\n", d)
	}
	fmt.Printf("\nLatest: %s\n", dates[len(dates)-1])
	return nil
}
