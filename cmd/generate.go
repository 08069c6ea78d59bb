// =============================================================================
// Daily Report Generator - Generate Command
// =============================================================================
//
// This file implements the 'generate' command, which runs the report
// pipeline for a single export file or for every export waiting in the
// input directory. Directory mode processes files concurrently, one
// goroutine per file; each file's pipeline is independent, so failures
// never block the rest of the batch.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/nas-daily-report/internal/craft"
	"github.com/ginjaninja78/nas-daily-report/internal/generator"
	"github.com/ginjaninja78/nas-daily-report/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	generateFile      string
	generateDate      string
	generateNoArchive bool
)

// =============================================================================
// GENERATE COMMAND DEFINITION
// =============================================================================

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate daily report PDFs from export files",
	Long: `Generate daily report PDFs from work-order time exports.

With --file, a single export is processed. Without it, every .xlsx, .xlsm,
and .csv file in the configured input directory is processed; successfully
processed inputs are moved to the archive directory unless archiving is
disabled.

Each file becomes one PDF. The report date defaults to the latest
production date found in that file; pass --date to pin it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate()
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateFile, "file", "f", "",
		"process a single export file (default: scan the input directory)")
	generateCmd.Flags().StringVarP(&generateDate, "date", "d", "",
		"report date MM/DD/YYYY (default: latest date in each file)")
	generateCmd.Flags().BoolVar(&generateNoArchive, "no-archive", false,
		"leave processed inputs in place")
}

// =============================================================================
// COMMAND EXECUTION
// =============================================================================

// runGenerate is the main entry point for the generate command.
func runGenerate() error {
	// =========================================================================
	// STEP 1: PREPARE ENVIRONMENT
	// =========================================================================

	gen := generator.New(cfg, craft.Default(), logger)
	fm := gen.FileManager()
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	archive := !cfg.SkipArchive && !generateNoArchive

	// =========================================================================
	// STEP 2: SINGLE FILE MODE
	// =========================================================================

	if generateFile != "" {
		summary, err := gen.Run(generator.Options{
			InputFile:  generateFile,
			TargetDate: generateDate,
			Archive:    archive,
		})
		if err != nil {
			return err
		}
		printRunSummary(summary)
		return nil
	}

	// =========================================================================
	// STEP 3: DIRECTORY MODE
	// =========================================================================

	files, err := fm.DiscoverInputFiles()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Printf("No input files found in %s\n", cfg.InputDir)
		return nil
	}
	fmt.Printf("Found %d input file(s) in %s\n\n", len(files), cfg.InputDir)

	run := processFiles(gen, files, generateDate, archive)

	// =========================================================================
	// STEP 4: WRITE RUN LOGS AND SUMMARIZE
	// =========================================================================

	writeRunLogs(fm, run, "generate")
	printBatchSummary(run)

	if run.SuccessfulFiles == 0 && run.FailedFiles > 0 {
		return fmt.Errorf("all %d input file(s) failed", run.FailedFiles)
	}
	return nil
}

// =============================================================================
// BATCH PROCESSING
// =============================================================================

// fileResult carries one file's outcome back from its worker goroutine.
type fileResult struct {
	file    string
	summary *generator.Summary
	err     error
}

// processFiles runs the pipeline for each file concurrently and folds
// the outcomes into a run summary. Shared by generate and watch.
func processFiles(gen *generator.Generator, files []string, targetDate string, archive bool) *utils.RunSummary {
	run := &utils.RunSummary{
		StartTime:  time.Now(),
		TotalFiles: len(files),
	}

	var wg sync.WaitGroup
	results := make(chan fileResult, len(files))

	for _, file := range files {
		wg.Add(1)
		go func(file string) {
			defer wg.Done()
			summary, err := gen.Run(generator.Options{
				InputFile:  file,
				TargetDate: targetDate,
				Archive:    archive,
			})
			results <- fileResult{file: file, summary: summary, err: err}
		}(file)
	}

	// Close the results channel once all workers finish.
	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		if res.err != nil {
			run.FailedFiles++
			run.FailedFilesList = append(run.FailedFilesList, utils.FailedFileInfo{
				InputFile:    res.file,
				ErrorMessage: res.err.Error(),
			})
			fmt.Printf("  ✗ %s: %v\n", res.file, res.err)
			continue
		}

		run.SuccessfulFiles++
		run.TotalRecords += res.summary.RecordCount
		run.TotalReportRows += res.summary.ReportRows
		run.ProcessedFiles = append(run.ProcessedFiles, utils.ProcessedFileInfo{
			InputFile:   res.file,
			OutputFile:  res.summary.OutputFile,
			TargetDate:  res.summary.TargetDate,
			Records:     res.summary.RecordCount,
			ReportRows:  res.summary.ReportRows,
			ProcessTime: res.summary.Duration,
		})
		fmt.Printf("  ✓ %s -> %s (%s, %d rows)\n",
			res.file, res.summary.OutputFile, res.summary.TargetDate, res.summary.ReportRows)
	}

	run.EndTime = time.Now()
	return run
}

// writeRunLogs writes the error log (when anything failed) and the run
// summary into the output directory.
func writeRunLogs(fm *utils.FileManager, run *utils.RunSummary, stage string) {
	stamp := run.StartTime.Format("20060102_150405")

	if len(run.FailedFilesList) > 0 {
		entries := make([]utils.ErrorLogEntry, 0, len(run.FailedFilesList))
		for _, failed := range run.FailedFilesList {
			entries = append(entries, utils.ErrorLogEntry{
				Timestamp: run.EndTime,
				FileName:  failed.InputFile,
				Stage:     stage,
				Message:   failed.ErrorMessage,
			})
		}
		logPath := filepath.Join(fm.OutputDir, fmt.Sprintf("errors_%s.log", stamp))
		if err := fm.WriteErrorLog(entries, logPath); err != nil {
			logger.Warn("failed to write error log", zap.Error(err))
		}
	}

	summaryPath := filepath.Join(fm.OutputDir, fmt.Sprintf("run_summary_%s.log", stamp))
	if err := fm.WriteSummaryLog(run, summaryPath); err != nil {
		logger.Warn("failed to write summary log", zap.Error(err))
	}
}

// =============================================================================
// CONSOLE OUTPUT
// =============================================================================

// printRunSummary prints the outcome of a single file run.
func printRunSummary(s *generator.Summary) {
	fmt.Println()
	fmt.Println("=== Report Generated ===")
	fmt.Printf("Input:      %s\n", s.SourceFile)
	if s.Sheet != "" {
		fmt.Printf("Sheet:      %s\n", s.Sheet)
	}
	fmt.Printf("Date:       %s\n", s.TargetDate)
	fmt.Printf("Records:    %d\n", s.RecordCount)
	fmt.Printf("Crafts:     %d\n", s.CraftCount)
	fmt.Printf("Rows:       %d\n", s.ReportRows)
	fmt.Printf("Output:     %s (%d bytes)\n", s.OutputFile, s.OutputBytes)
	if s.ArchivePath != "" {
		fmt.Printf("Archived:   %s\n", s.ArchivePath)
	}
	fmt.Printf("Duration:   %s\n", s.Duration.Round(time.Millisecond))
}

// printBatchSummary prints the outcome of a directory run.
func printBatchSummary(run *utils.RunSummary) {
	fmt.Println()
	fmt.Println("=== Processing Summary ===")
	fmt.Printf("Total files:   %d\n", run.TotalFiles)
	fmt.Printf("Successful:    %d\n", run.SuccessfulFiles)
	fmt.Printf("Failed:        %d\n", run.FailedFiles)
	fmt.Printf("Records read:  %d\n", run.TotalRecords)
	fmt.Printf("Report rows:   %d\n", run.TotalReportRows)
	fmt.Printf("Duration:      %s\n", run.EndTime.Sub(run.StartTime).Round(time.Millisecond))
}
