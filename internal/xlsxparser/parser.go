// =============================================================================
// Daily Report Generator - XLSX Parser
// =============================================================================
//
// This module reads scheduling exports in Excel format using the excelize
// library. Exports carry two banner rows above the real header, so parsing
// defaults to the header on row 3 with data starting on row 4.
//
// Cells are read raw (no number formatting applied) so that date serials
// and timestamps arrive as the numbers Excel actually stores; the cell
// package then decides how to interpret them.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/nas-daily-report/internal/cell"
	"github.com/ginjaninja78/nas-daily-report/internal/types"
	"github.com/ginjaninja78/nas-daily-report/internal/validation"
)

// =============================================================================
// PARSER OPTIONS
// =============================================================================

// Options controls how a workbook is read.
type Options struct {
	// Sheet is the worksheet to read. Empty selects the first sheet.
	Sheet string

	// HeaderRow is the 1-based row holding the column names.
	// Default: 3 (rows 1-2 are export banner rows)
	HeaderRow int

	// DataStartRow is the 1-based first data row.
	// Default: HeaderRow + 1
	DataStartRow int
}

// DefaultOptions returns the options matching a standard scheduling
// export.
func DefaultOptions() Options {
	return Options{HeaderRow: 3, DataStartRow: 4}
}

func (o Options) withDefaults() Options {
	if o.HeaderRow <= 0 {
		o.HeaderRow = 3
	}
	if o.DataStartRow <= 0 {
		o.DataStartRow = o.HeaderRow + 1
	}
	return o
}

// =============================================================================
// PARSING FUNCTIONS
// =============================================================================

// Parse reads a workbook from disk with default options.
func Parse(path string) (*types.Dataset, error) {
	return ParseWithOptions(path, DefaultOptions())
}

// ParseWithOptions reads a workbook from disk.
//
// PARAMETERS:
//   - path: Path to the .xlsx file
//   - opts: Sheet selection and row layout
//
// RETURNS:
//   - The parsed dataset
//   - An error if the file cannot be opened, the sheet or header row is
//     missing, or required columns are absent
func ParseWithOptions(path string, opts Options) (*types.Dataset, error) {
	f, err := excelize.OpenFile(path, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	return parseFile(f, path, opts)
}

// ParseReader reads a workbook from a stream, e.g. an HTTP upload. The
// name is only used for error reporting and the dataset's SourceFile.
func ParseReader(r io.Reader, name string, opts Options) (*types.Dataset, error) {
	f, err := excelize.OpenReader(r, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook %s: %w", name, err)
	}
	defer f.Close()

	return parseFile(f, name, opts)
}

// parseFile extracts the dataset from an open workbook.
func parseFile(f *excelize.File, name string, opts Options) (*types.Dataset, error) {
	opts = opts.withDefaults()

	sheet, err := selectSheet(f, opts.Sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", sheet, name, err)
	}
	if len(rows) < opts.HeaderRow {
		return nil, fmt.Errorf("%s: sheet %q has %d row(s), header expected on row %d",
			name, sheet, len(rows), opts.HeaderRow)
	}

	headers := cleanHeaders(rows[opts.HeaderRow-1])
	if err := validation.CheckColumns(name, headers); err != nil {
		return nil, err
	}

	// First occurrence wins when a header name repeats.
	columnIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, exists := columnIndex[h]; !exists {
			columnIndex[h] = i
		}
	}

	var records []types.RawRecord
	for i := opts.DataStartRow - 1; i < len(rows); i++ {
		row := rows[i]
		if isRowEmpty(row) {
			continue
		}

		// GetRows trims trailing empty cells per row, so an index past
		// the end reads as an empty cell.
		getCell := func(index int) cell.Value {
			if index < len(row) {
				return cell.Infer(row[index])
			}
			return cell.Empty()
		}

		fields := make(map[string]cell.Value, len(columnIndex))
		for column, index := range columnIndex {
			fields[column] = getCell(index)
		}
		records = append(records, types.FromCells(fields, i+1))
	}

	return &types.Dataset{
		SourceFile:  name,
		Sheet:       sheet,
		Headers:     headers,
		Records:     records,
		RowCount:    len(records),
		ColumnCount: len(headers),
	}, nil
}

// selectSheet resolves the worksheet to read. An empty request selects
// the first sheet in the workbook.
func selectSheet(f *excelize.File, requested string) (string, error) {
	if requested == "" {
		sheet := f.GetSheetName(0)
		if sheet == "" {
			return "", fmt.Errorf("workbook has no sheets")
		}
		return sheet, nil
	}
	for _, sheet := range f.GetSheetList() {
		if sheet == requested {
			return sheet, nil
		}
	}
	return "", fmt.Errorf("sheet %q not found in workbook", requested)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// cleanHeaders trims header cells and fills in placeholder names for
// empty ones so every column stays addressable.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = h
	}
	return cleaned
}

// isRowEmpty returns true if all cells in a row are empty or whitespace.
func isRowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
