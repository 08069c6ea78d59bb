// =============================================================================
// Daily Report Generator - Schema Validation
// =============================================================================
//
// Input files must carry every column of the scheduling export schema
// before any aggregation runs. Validation here is presence-only: a missing
// required column is fatal for the whole file, while oddities inside
// individual cells (bad dates, unparsable hours) are absorbed row by row
// during aggregation and never fail a run.
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ginjaninja78/nas-daily-report/internal/types"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// SchemaError reports required columns missing from an input file. It is
// returned by the parsers before any records are built, so a file either
// yields a complete dataset or this error.
type SchemaError struct {
	// SourceFile is the offending input, when known.
	SourceFile string

	// Missing lists the absent required columns in schema order.
	Missing []string
}

// Error formats the schema failure with every missing column named, so a
// single run reports the full extent of the mismatch.
func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("input schema invalid: missing required column(s): %s",
		strings.Join(e.Missing, ", "))
	if e.SourceFile != "" {
		return fmt.Sprintf("%s: %s", e.SourceFile, msg)
	}
	return msg
}

// AsSchemaError unwraps err as a SchemaError, following wrapped chains.
func AsSchemaError(err error) (*SchemaError, bool) {
	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		return schemaErr, true
	}
	return nil, false
}

// =============================================================================
// SCHEMA CHECKS
// =============================================================================

// CheckColumns verifies that every required export column appears in the
// header row.
//
// PARAMETERS:
//   - sourceFile: Input path or display name, used in the error
//   - headers: The header row as read from the file
//
// RETURNS:
//   - nil when all required columns are present
//   - A *SchemaError naming every missing column otherwise
//
// Header cells are trimmed before comparison. Matching is exact and case
// sensitive; extra columns beyond the schema are allowed and ignored.
func CheckColumns(sourceFile string, headers []string) error {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[strings.TrimSpace(h)] = true
	}

	var missing []string
	for _, col := range types.Columns {
		if !present[col] {
			missing = append(missing, col)
		}
	}

	if len(missing) > 0 {
		return &SchemaError{SourceFile: sourceFile, Missing: missing}
	}
	return nil
}
