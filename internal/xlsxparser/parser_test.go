package xlsxparser

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/nas-daily-report/internal/cell"
	"github.com/ginjaninja78/nas-daily-report/internal/types"
	"github.com/ginjaninja78/nas-daily-report/internal/validation"
)

// buildWorkbook writes rows to the given sheet and returns the workbook
// bytes. Row indexes are 1-based; nil rows are left unwritten so they
// read back empty.
func buildWorkbook(t *testing.T, sheet string, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		if row == nil {
			continue
		}
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, axis, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// exportRows lays out a standard export: two banner rows, header on
// row 3, data from row 4.
func exportRows(dataRows ...[]interface{}) [][]interface{} {
	header := make([]interface{}, len(types.Columns))
	for i, col := range types.Columns {
		header[i] = col
	}
	rows := [][]interface{}{
		{"Work Order Report"},
		{"Generated 03/16/2023"},
		header,
	}
	return append(rows, dataRows...)
}

func workRow() []interface{} {
	return []interface{}{
		123456, "SMITH, JOHN", 45000.0, "12345", 8.0, 10,
		"Complete", "PM", 30, "Replace belt", "Worn bearing", "Melt Shop",
		"1145480", "CC-100", "EAF-1", "TAG-9",
	}
}

func writeTempWorkbook(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestParse(t *testing.T) {
	path := writeTempWorkbook(t, buildWorkbook(t, "Sheet1", exportRows(workRow(), workRow())))

	ds, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, path, ds.SourceFile)
	assert.Equal(t, "Sheet1", ds.Sheet)
	assert.Equal(t, 2, ds.RowCount)
	assert.Equal(t, 16, ds.ColumnCount)

	rec := ds.Records[0]
	assert.Equal(t, "SMITH, JOHN", rec.Name.Text())
	assert.Equal(t, "1145480", rec.Craft.Text())

	// Raw reads keep the stored serial number, not a formatted date.
	assert.Equal(t, cell.KindNumber, rec.ProductionDate.Kind)
	assert.Equal(t, 45000.0, rec.ProductionDate.Num)
	assert.Equal(t, 8.0, rec.SumOfHours.Num)

	assert.Equal(t, 4, ds.Records[0].Row)
	assert.Equal(t, 5, ds.Records[1].Row)
}

func TestParseReader(t *testing.T) {
	content := buildWorkbook(t, "Sheet1", exportRows(workRow()))

	ds, err := ParseReader(bytes.NewReader(content), "upload.xlsx", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "upload.xlsx", ds.SourceFile)
	assert.Equal(t, 1, ds.RowCount)
}

func TestParseReaderRejectsGarbage(t *testing.T) {
	_, err := ParseReader(bytes.NewReader([]byte("not a workbook")), "upload.xlsx", DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read workbook")
}

func TestParseMissingColumns(t *testing.T) {
	rows := exportRows()
	header := rows[2]
	rows[2] = header[:len(header)-2] // drop UnitNumber and StructureTag

	path := writeTempWorkbook(t, buildWorkbook(t, "Sheet1", rows))

	_, err := Parse(path)
	require.Error(t, err)

	schemaErr, ok := validation.AsSchemaError(err)
	require.True(t, ok)
	assert.Equal(t, []string{types.ColUnitNumber, types.ColStructureTag}, schemaErr.Missing)
}

func TestParseNamedSheet(t *testing.T) {
	content := buildWorkbook(t, "Data", exportRows(workRow()))
	path := writeTempWorkbook(t, content)

	ds, err := ParseWithOptions(path, Options{Sheet: "Data"})
	require.NoError(t, err)
	assert.Equal(t, "Data", ds.Sheet)
	assert.Equal(t, 1, ds.RowCount)
}

func TestParseUnknownSheet(t *testing.T) {
	path := writeTempWorkbook(t, buildWorkbook(t, "Sheet1", exportRows(workRow())))

	_, err := ParseWithOptions(path, Options{Sheet: "Missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `sheet "Missing" not found`)
}

func TestParseHeaderRowOverride(t *testing.T) {
	header := make([]interface{}, len(types.Columns))
	for i, col := range types.Columns {
		header[i] = col
	}
	content := buildWorkbook(t, "Sheet1", [][]interface{}{header, workRow()})
	path := writeTempWorkbook(t, content)

	ds, err := ParseWithOptions(path, Options{HeaderRow: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, ds.RowCount)
	assert.Equal(t, 2, ds.Records[0].Row)
}

func TestParseSkipsEmptyRows(t *testing.T) {
	rows := exportRows(workRow(), nil, workRow())
	path := writeTempWorkbook(t, buildWorkbook(t, "Sheet1", rows))

	ds, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.RowCount)
	assert.Equal(t, 4, ds.Records[0].Row)
	assert.Equal(t, 6, ds.Records[1].Row)
}

func TestParseHeaderRowMissing(t *testing.T) {
	content := buildWorkbook(t, "Sheet1", [][]interface{}{{"banner"}, {"banner"}})
	path := writeTempWorkbook(t, content)

	_, err := Parse(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header expected on row 3")
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "absent.xlsx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open workbook")
}
