// =============================================================================
// Daily Report Generator - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the report pipeline:
//   - Input file discovery
//   - Archival of processed inputs
//   - Output file naming
//   - Error log and run summary generation
//   - Directory management
//
// ARCHIVAL STRATEGY:
//   - Input files are moved to the archive directory after successful
//     processing (rename first, copy-and-delete across filesystems)
//   - Failed files remain in their original location for the next pass
//   - Error logs and run summaries are written to the output directory
//   - Archives can be pruned by age during scheduled passes
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the report pipeline.
type FileManager struct {
	// InputDir is the directory where input exports are placed.
	InputDir string

	// OutputDir is the directory where reports and run logs are written.
	OutputDir string

	// ArchiveDir is the directory where processed inputs are moved.
	ArchiveDir string
}

// NewFileManager creates a new FileManager.
func NewFileManager(inputDir, outputDir, archiveDir string) *FileManager {
	return &FileManager{
		InputDir:   inputDir,
		OutputDir:  outputDir,
		ArchiveDir: archiveDir,
	}
}

// EnsureDirectories creates all managed directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{fm.InputDir, fm.OutputDir, fm.ArchiveDir}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles finds files in the input directory matching any of
// the given glob patterns, e.g. "*.xlsx". Without patterns it looks for
// the standard export formats. Results are sorted and regular files
// only.
func (fm *FileManager) DiscoverInputFiles(patterns ...string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{"*.xlsx", "*.xlsm", "*.csv"}
	}

	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(fm.InputDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid file pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			seen[match] = true
			files = append(files, match)
		}
	}

	sort.Strings(files)
	return files, nil
}

// =============================================================================
// ARCHIVAL
// =============================================================================

// ArchiveInputFile moves a processed input file to the archive
// directory.
//
// PARAMETERS:
//   - filePath: The input file to archive
//
// RETURNS:
//   - The file's new path in the archive
//   - An error if the move fails
//
// Rename is tried first; when the archive lives on another filesystem
// the file is copied and the original removed. A name collision in the
// archive gets a timestamp prefix instead of overwriting.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	if err := os.MkdirAll(fm.ArchiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	archivePath := filepath.Join(fm.ArchiveDir, filepath.Base(filePath))
	if FileExists(archivePath) {
		stamped := fmt.Sprintf("%s_%s", time.Now().Format("20060102_150405"), filepath.Base(filePath))
		archivePath = filepath.Join(fm.ArchiveDir, stamped)
	}

	if err := os.Rename(filePath, archivePath); err != nil {
		// Rename fails across filesystems; fall back to copy + delete.
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to archive %s: %w", filePath, err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original after archiving %s: %w", filePath, err)
		}
	}

	return archivePath, nil
}

// CleanOldArchives removes archived files older than maxAgeDays.
// Returns the number of files removed.
func (fm *FileManager) CleanOldArchives(maxAgeDays int) (int, error) {
	if maxAgeDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -maxAgeDays)

	removed := 0
	err := filepath.Walk(fm.ArchiveDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to remove old archive %s: %w", path, err)
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return removed, err
	}
	return removed, nil
}

// =============================================================================
// OUTPUT NAMING
// =============================================================================

// GenerateOutputFileName builds an output file name from a format
// string with placeholders.
//
// PARAMETERS:
//   - format: Name format, e.g. "nas_report_{date}.pdf"
//   - params: Custom placeholder values, e.g. {"date": "06-15-2023"}
//
// RETURNS:
//   - The generated file name, always ending in .pdf
//
// Built-in placeholders: {timestamp} (20060102_150405), {time} (150405),
// and {uuid}. Custom params override built-ins of the same name.
func (fm *FileManager) GenerateOutputFileName(format string, params map[string]string) string {
	now := time.Now()
	replacements := map[string]string{
		"{timestamp}": now.Format("20060102_150405"),
		"{time}":      now.Format("150405"),
		"{uuid}":      uuid.New().String(),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if !strings.HasSuffix(strings.ToLower(result), ".pdf") {
		result += ".pdf"
	}
	return result
}

// HyphenateDate rewrites a canonical date for use inside a file name,
// replacing the path-hostile separators: "06/15/2023" -> "06-15-2023".
func HyphenateDate(date string) string {
	return strings.ReplaceAll(date, "/", "-")
}

// =============================================================================
// ERROR LOGS
// =============================================================================

// ErrorLogEntry is one failure recorded during a run.
type ErrorLogEntry struct {
	// Timestamp is when the error occurred.
	Timestamp time.Time

	// FileName is the input file being processed.
	FileName string

	// Stage is the run mode that hit the error, e.g. "generate" or
	// "watch".
	Stage string

	// Message is the error detail.
	Message string
}

// WriteErrorLog writes error entries to a log file, one block per
// entry.
func (fm *FileManager) WriteErrorLog(entries []ErrorLogEntry, logPath string) error {
	f, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("failed to create error log %s: %w", logPath, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	fmt.Fprintln(w, strings.Repeat("=", 79))
	fmt.Fprintln(w, "DAILY REPORT GENERATOR - ERROR LOG")
	fmt.Fprintf(w, "Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Total Errors: %d\n", len(entries))
	fmt.Fprintln(w, strings.Repeat("=", 79))
	fmt.Fprintln(w)

	for i, entry := range entries {
		fmt.Fprintf(w, "Error #%d\n", i+1)
		fmt.Fprintf(w, "  Time:    %s\n", entry.Timestamp.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "  File:    %s\n", entry.FileName)
		fmt.Fprintf(w, "  Stage:   %s\n", entry.Stage)
		fmt.Fprintf(w, "  Message: %s\n", entry.Message)
		fmt.Fprintln(w)
	}

	return nil
}

// =============================================================================
// RUN SUMMARIES
// =============================================================================

// ProcessedFileInfo describes one successfully processed input.
type ProcessedFileInfo struct {
	InputFile   string
	OutputFile  string
	TargetDate  string
	Records     int
	ReportRows  int
	ProcessTime time.Duration
}

// FailedFileInfo describes one failed input.
type FailedFileInfo struct {
	InputFile    string
	ErrorMessage string
}

// RunSummary describes the outcome of one batch or watch pass.
type RunSummary struct {
	StartTime       time.Time
	EndTime         time.Time
	TotalFiles      int
	SuccessfulFiles int
	FailedFiles     int
	TotalRecords    int
	TotalReportRows int
	ProcessedFiles  []ProcessedFileInfo
	FailedFilesList []FailedFileInfo
}

// WriteSummaryLog writes a human-readable run summary.
func (fm *FileManager) WriteSummaryLog(summary *RunSummary, logPath string) error {
	f, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("failed to create summary log %s: %w", logPath, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	fmt.Fprintln(w, strings.Repeat("=", 79))
	fmt.Fprintln(w, "DAILY REPORT GENERATOR - RUN SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 79))
	fmt.Fprintf(w, "Started:  %s\n", summary.StartTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Finished: %s\n", summary.EndTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Duration: %s\n", summary.EndTime.Sub(summary.StartTime).Round(time.Millisecond))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Files Processed: %d\n", summary.TotalFiles)
	fmt.Fprintf(w, "  Successful:    %d\n", summary.SuccessfulFiles)
	fmt.Fprintf(w, "  Failed:        %d\n", summary.FailedFiles)
	fmt.Fprintf(w, "Total Records:   %d\n", summary.TotalRecords)
	fmt.Fprintf(w, "Report Rows:     %d\n", summary.TotalReportRows)
	fmt.Fprintln(w)

	if len(summary.ProcessedFiles) > 0 {
		fmt.Fprintln(w, strings.Repeat("-", 79))
		fmt.Fprintln(w, "PROCESSED FILES")
		fmt.Fprintln(w, strings.Repeat("-", 79))
		for _, info := range summary.ProcessedFiles {
			fmt.Fprintf(w, "  %s\n", info.InputFile)
			fmt.Fprintf(w, "    Report:  %s\n", info.OutputFile)
			fmt.Fprintf(w, "    Date:    %s\n", info.TargetDate)
			fmt.Fprintf(w, "    Records: %d   Rows: %d   Time: %s\n",
				info.Records, info.ReportRows, info.ProcessTime.Round(time.Millisecond))
		}
		fmt.Fprintln(w)
	}

	if len(summary.FailedFilesList) > 0 {
		fmt.Fprintln(w, strings.Repeat("-", 79))
		fmt.Fprintln(w, "FAILED FILES")
		fmt.Fprintln(w, strings.Repeat("-", 79))
		for _, info := range summary.FailedFilesList {
			fmt.Fprintf(w, "  %s\n", info.InputFile)
			fmt.Fprintf(w, "    Error: %s\n", info.ErrorMessage)
		}
		fmt.Fprintln(w)
	}

	return nil
}

// =============================================================================
// FILE UTILITIES
// =============================================================================

// copyFile copies a file, fsyncing the destination before close.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}
	return dstFile.Sync()
}

// FileExists returns true if the path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
