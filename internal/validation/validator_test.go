package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/nas-daily-report/internal/types"
)

func fullHeaders() []string {
	headers := make([]string, len(types.Columns))
	copy(headers, types.Columns)
	return headers
}

func TestCheckColumnsComplete(t *testing.T) {
	assert.NoError(t, CheckColumns("export.xlsx", fullHeaders()))
}

func TestCheckColumnsTrimsHeaders(t *testing.T) {
	headers := fullHeaders()
	headers[1] = "  Name  "
	headers[4] = "Sum of Hours. "

	assert.NoError(t, CheckColumns("export.xlsx", headers))
}

func TestCheckColumnsAllowsExtras(t *testing.T) {
	headers := append(fullHeaders(), "Supervisor", "Shift")

	assert.NoError(t, CheckColumns("export.xlsx", headers))
}

func TestCheckColumnsMissing(t *testing.T) {
	var headers []string
	for _, col := range types.Columns {
		if col == types.ColCraft || col == types.ColName {
			continue
		}
		headers = append(headers, col)
	}

	err := CheckColumns("export.xlsx", headers)
	require.Error(t, err)

	schemaErr, ok := AsSchemaError(err)
	require.True(t, ok)
	assert.Equal(t, "export.xlsx", schemaErr.SourceFile)
	// Missing columns come back in schema order, not header order.
	assert.Equal(t, []string{types.ColName, types.ColCraft}, schemaErr.Missing)

	assert.Contains(t, err.Error(), "export.xlsx")
	assert.Contains(t, err.Error(), "missing required column(s): Name, Craft")
}

func TestCheckColumnsCaseSensitive(t *testing.T) {
	headers := fullHeaders()
	headers[12] = "craft"

	err := CheckColumns("", headers)
	require.Error(t, err)

	schemaErr, ok := AsSchemaError(err)
	require.True(t, ok)
	assert.Equal(t, []string{types.ColCraft}, schemaErr.Missing)
	assert.Equal(t, "input schema invalid: missing required column(s): Craft", err.Error())
}

func TestAsSchemaErrorFollowsWrapping(t *testing.T) {
	inner := &SchemaError{Missing: []string{types.ColStatus}}
	wrapped := fmt.Errorf("parsing sheet: %w", inner)

	schemaErr, ok := AsSchemaError(wrapped)
	require.True(t, ok)
	assert.Equal(t, []string{types.ColStatus}, schemaErr.Missing)

	_, ok = AsSchemaError(fmt.Errorf("plain failure"))
	assert.False(t, ok)
}
