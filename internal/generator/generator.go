// =============================================================================
// Daily Report Generator - Pipeline Engine
// =============================================================================
//
// This module wires the full report pipeline together:
//
//   input file -> parse -> detect dates -> aggregate -> render -> write
//
// The engine is shared by every entry point: the generate command runs it
// per file, the watch command runs it per scheduled pass, and the HTTP
// server runs the parse/aggregate/render core against uploaded streams.
//
// ERROR HANDLING:
//   Run returns an error for file-level failures (unreadable input,
//   schema mismatch, no usable dates, rendering or write failures).
//   Per-record oddities never surface here; the aggregation engine
//   absorbs them by design of the report semantics.
//
// =============================================================================

package generator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ginjaninja78/nas-daily-report/internal/aggregate"
	"github.com/ginjaninja78/nas-daily-report/internal/config"
	"github.com/ginjaninja78/nas-daily-report/internal/craft"
	"github.com/ginjaninja78/nas-daily-report/internal/csvparser"
	"github.com/ginjaninja78/nas-daily-report/internal/pdfwriter"
	"github.com/ginjaninja78/nas-daily-report/internal/types"
	"github.com/ginjaninja78/nas-daily-report/internal/xlsxparser"
	"github.com/ginjaninja78/nas-daily-report/pkg/utils"
)

// =============================================================================
// RUN OPTIONS AND SUMMARY
// =============================================================================

// Options control a single generation run.
type Options struct {
	// InputFile is the export to process.
	InputFile string

	// TargetDate is the canonical report date. Empty selects the latest
	// date detected in the file.
	TargetDate string

	// Archive moves the input into the archive directory after a
	// successful run.
	Archive bool
}

// Summary reports the outcome of one generation run.
type Summary struct {
	SourceFile    string
	Sheet         string
	TargetDate    string
	DatesDetected []string
	RecordCount   int
	CraftCount    int
	ReportRows    int
	OutputFile    string
	OutputBytes   int64
	ArchivePath   string
	Duration      time.Duration
}

// =============================================================================
// GENERATOR
// =============================================================================

// Generator runs the report pipeline end to end for one input at a
// time. It is safe for concurrent use: the craft table and config are
// read-only and every run works on its own dataset.
type Generator struct {
	cfg    *config.Config
	table  craft.Table
	writer *pdfwriter.Writer
	fm     *utils.FileManager
	logger *zap.Logger
}

// New creates a Generator.
func New(cfg *config.Config, table craft.Table, logger *zap.Logger) *Generator {
	return &Generator{
		cfg:    cfg,
		table:  table,
		writer: pdfwriter.New(),
		fm:     utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.ArchiveDir),
		logger: logger,
	}
}

// Run executes the full pipeline for one input file.
//
// PARAMETERS:
//   - opts: The input file, optional target date, and archival flag
//
// RETURNS:
//   - A summary of what was parsed, aggregated, and written
//   - An error if any pipeline stage fails for the whole file
func (g *Generator) Run(opts Options) (*Summary, error) {
	start := time.Now()
	summary := &Summary{SourceFile: opts.InputFile}

	// =========================================================================
	// STEP 1: PARSE INPUT FILE
	// =========================================================================

	ds, err := g.IngestFile(opts.InputFile)
	if err != nil {
		return nil, err
	}
	summary.Sheet = ds.Sheet
	summary.RecordCount = ds.RowCount
	g.logger.Debug("input parsed",
		zap.String("file", opts.InputFile),
		zap.String("sheet", ds.Sheet),
		zap.Int("records", ds.RowCount))

	// =========================================================================
	// STEP 2: RESOLVE TARGET DATE
	// =========================================================================

	dates := aggregate.Dates(ds.Records)
	summary.DatesDetected = dates

	target := opts.TargetDate
	if target == "" {
		if len(dates) == 0 {
			return nil, fmt.Errorf("%s: no parseable production dates found", opts.InputFile)
		}
		target = dates[len(dates)-1]
	}
	summary.TargetDate = target

	// =========================================================================
	// STEP 3: AGGREGATE
	// =========================================================================

	report := aggregate.New(g.table).Build(ds.Records, target)
	summary.CraftCount = len(report.Crafts())
	summary.ReportRows = report.Len()
	g.logger.Debug("records aggregated",
		zap.String("date", target),
		zap.Int("crafts", summary.CraftCount),
		zap.Int("rows", summary.ReportRows))

	// =========================================================================
	// STEP 4: RENDER PDF
	// =========================================================================

	doc, err := g.writer.Render(report)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.InputFile, err)
	}

	// =========================================================================
	// STEP 5: WRITE OUTPUT
	// =========================================================================

	name := g.fm.GenerateOutputFileName(g.cfg.OutputNameFormat, map[string]string{
		"date": utils.HyphenateDate(target),
	})
	outputPath := filepath.Join(g.cfg.OutputDir, name)
	if err := os.WriteFile(outputPath, doc, 0644); err != nil {
		return nil, fmt.Errorf("failed to write report %s: %w", outputPath, err)
	}
	summary.OutputFile = outputPath
	if size, err := utils.GetFileSize(outputPath); err == nil {
		summary.OutputBytes = size
	}

	// =========================================================================
	// STEP 6: ARCHIVE INPUT
	// =========================================================================

	if opts.Archive {
		archivePath, err := g.fm.ArchiveInputFile(opts.InputFile)
		if err != nil {
			return nil, err
		}
		summary.ArchivePath = archivePath
	}

	summary.Duration = time.Since(start)
	g.logger.Info("report generated",
		zap.String("input", opts.InputFile),
		zap.String("output", outputPath),
		zap.String("date", target),
		zap.Int("rows", summary.ReportRows),
		zap.Int64("bytes", summary.OutputBytes),
		zap.Duration("elapsed", summary.Duration))

	return summary, nil
}

// =============================================================================
// PIPELINE PIECES
// =============================================================================

// IngestFile parses an input file from disk, dispatching on extension.
func (g *Generator) IngestFile(path string) (*types.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input %s: %w", path, err)
	}
	defer f.Close()

	return g.IngestReader(f, path)
}

// IngestReader parses an input stream, dispatching on the extension of
// its name. Supported: .xlsx, .xlsm, .csv.
func (g *Generator) IngestReader(r io.Reader, name string) (*types.Dataset, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		opts := xlsxparser.Options{
			Sheet:        g.cfg.Parsing.Sheet,
			HeaderRow:    g.cfg.Parsing.HeaderRow,
			DataStartRow: g.cfg.Parsing.DataStartRow,
		}
		return xlsxparser.ParseReader(r, name, opts)
	case ".csv":
		settings := csvparser.Settings{
			Delimiter:    g.cfg.Parsing.Delimiter,
			HeaderRow:    g.cfg.Parsing.HeaderRow,
			DataStartRow: g.cfg.Parsing.DataStartRow,
		}
		return csvparser.ParseReader(r, name, settings)
	default:
		return nil, fmt.Errorf("unsupported input format %q (expected .xlsx, .xlsm, or .csv)",
			filepath.Ext(name))
	}
}

// BuildReport aggregates a dataset for a report date. An empty
// targetDate selects the latest date present in the dataset.
//
// RETURNS:
//   - The report model, carrying the date actually used
//   - An error only when no date was given and none can be detected
func (g *Generator) BuildReport(ds *types.Dataset, targetDate string) (*aggregate.Report, error) {
	if targetDate == "" {
		dates := aggregate.Dates(ds.Records)
		if len(dates) == 0 {
			return nil, fmt.Errorf("%s: no parseable production dates found", ds.SourceFile)
		}
		targetDate = dates[len(dates)-1]
	}
	return aggregate.New(g.table).Build(ds.Records, targetDate), nil
}

// RenderReport renders a report model to PDF bytes.
func (g *Generator) RenderReport(report *aggregate.Report) ([]byte, error) {
	return g.writer.Render(report)
}

// ReportFileName builds the output file name for a report date using
// the configured name format.
func (g *Generator) ReportFileName(targetDate string) string {
	return g.fm.GenerateOutputFileName(g.cfg.OutputNameFormat, map[string]string{
		"date": utils.HyphenateDate(targetDate),
	})
}

// FileManager exposes the engine's file manager for entry points that
// discover and archive inputs themselves.
func (g *Generator) FileManager() *utils.FileManager {
	return g.fm
}
