// =============================================================================
// Daily Report Generator - CSV Parser
// =============================================================================
//
// This module reads scheduling exports that were saved as CSV instead of
// Excel. The layout matches the workbook form: two banner rows, header on
// row 3, data from row 4. The parser produces the same dataset contract as
// the XLSX parser so the rest of the pipeline does not care which format a
// file arrived in.
//
// CSV carries no cell typing, so every cell goes through the same text
// classification the raw workbook values do.
//
// =============================================================================

package csvparser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/nas-daily-report/internal/cell"
	"github.com/ginjaninja78/nas-daily-report/internal/types"
	"github.com/ginjaninja78/nas-daily-report/internal/validation"
)

// =============================================================================
// PARSER SETTINGS
// =============================================================================

// Settings controls how a CSV export is read.
type Settings struct {
	// Delimiter separates fields. Accepts ",", ";", "|", and "\t" (or
	// the word "tab").
	// Default: ","
	Delimiter string

	// HeaderRow is the 1-based row holding the column names.
	// Default: 3
	HeaderRow int

	// DataStartRow is the 1-based first data row.
	// Default: HeaderRow + 1
	DataStartRow int
}

// DefaultSettings returns the settings matching a standard scheduling
// export.
func DefaultSettings() Settings {
	return Settings{Delimiter: ",", HeaderRow: 3, DataStartRow: 4}
}

func (s Settings) withDefaults() Settings {
	if s.Delimiter == "" {
		s.Delimiter = ","
	}
	if s.HeaderRow <= 0 {
		s.HeaderRow = 3
	}
	if s.DataStartRow <= 0 {
		s.DataStartRow = s.HeaderRow + 1
	}
	return s
}

// =============================================================================
// PARSING FUNCTIONS
// =============================================================================

// Parse reads a CSV export from disk with default settings.
func Parse(path string) (*types.Dataset, error) {
	return ParseWithSettings(path, DefaultSettings())
}

// ParseWithSettings reads a CSV export from disk.
func ParseWithSettings(path string, settings Settings) (*types.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file %s: %w", path, err)
	}
	defer f.Close()

	return ParseReader(f, path, settings)
}

// ParseReader reads a CSV export from a stream, e.g. an HTTP upload.
//
// PARAMETERS:
//   - r: The CSV content
//   - name: Input path or display name, used in errors and the dataset
//   - settings: Delimiter and row layout
//
// RETURNS:
//   - The parsed dataset
//   - An error if reading fails, the header row is missing, or required
//     columns are absent
func ParseReader(r io.Reader, name string, settings Settings) (*types.Dataset, error) {
	settings = settings.withDefaults()

	reader := csv.NewReader(r)
	configureReader(reader, settings)

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV %s: %w", name, err)
	}
	if len(allRows) < settings.HeaderRow {
		return nil, fmt.Errorf("%s: file has %d row(s), header expected on row %d",
			name, len(allRows), settings.HeaderRow)
	}

	headers := cleanHeaders(allRows[settings.HeaderRow-1])
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
	for i := settings.DataStartRow - 1; i < len(allRows); i++ {
		row := allRows[i]
		if isRowEmpty(row) {
			continue
		}

		// Short rows read as empty cells past their last field.
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
		Headers:     headers,
		Records:     records,
		RowCount:    len(records),
		ColumnCount: len(headers),
	}, nil
}

// configureReader applies the delimiter and the lenient read settings
// real-world exports need.
func configureReader(reader *csv.Reader, settings Settings) {
	switch settings.Delimiter {
	case ";":
		reader.Comma = ';'
	case "|":
		reader.Comma = '|'
	case "\t", "\\t", "tab":
		reader.Comma = '\t'
	default:
		reader.Comma = ','
	}

	// Banner rows rarely have as many fields as data rows.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
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
