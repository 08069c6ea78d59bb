package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/nas-daily-report/internal/cell"
	"github.com/ginjaninja78/nas-daily-report/internal/craft"
	"github.com/ginjaninja78/nas-daily-report/internal/types"
)

const reportDate = "03/15/2023"

// workRecord builds a minimal record on the report date; tests adjust
// fields as needed.
func workRecord(craftCode, name, order string, hours float64) types.RawRecord {
	return types.RawRecord{
		ProductionDate: cell.Text(reportDate),
		Craft:          cell.Text(craftCode),
		Name:           cell.Text(name),
		OrderNumber:    cell.Text(order),
		SumOfHours:     cell.Number(hours),
	}
}

func TestBuildMergesGroups(t *testing.T) {
	records := []types.RawRecord{
		workRecord("1145480", "SMITH, JOHN", "12345", 2.5),
		workRecord("1145480", "SMITH, JOHN", "12345", 3.0),
	}

	report := New(craft.Default()).Build(records, reportDate)

	require.Equal(t, []string{"Alloy Mech Days"}, report.Crafts())
	rows := report.Rows("Alloy Mech Days")
	require.Len(t, rows, 1)
	assert.Equal(t, "SMITH, JOHN", rows[0].Name)
	assert.Equal(t, "12345", rows[0].OrderNumber)
	assert.Equal(t, 5.5, rows[0].SumOfHours)
	assert.Equal(t, 1, report.Len())
	assert.False(t, report.Empty())
}

func TestBuildRowOrdering(t *testing.T) {
	records := []types.RawRecord{
		workRecord("1145551", "A", "20", 1),
		workRecord("1145551", "B", "100", 1),
		workRecord("1145551", "C", "7", 1),
		workRecord("1145551", "D", "abc", 1),
		workRecord("1145551", "E", "007", 1),
	}

	report := New(craft.Default()).Build(records, reportDate)

	rows := report.Rows("EAF Elec Days")
	require.Len(t, rows, 5)

	var orders []string
	for _, row := range rows {
		orders = append(orders, row.OrderNumber)
	}
	// Numeric orders ascend by value, ties keep first-seen order, and
	// non-numeric orders sink to the end.
	assert.Equal(t, []string{"7", "007", "20", "100", "abc"}, orders)
}

func TestBuildAnnotationSets(t *testing.T) {
	base := workRecord("1145501", "DOE, JANE", "88", 1)
	first := base
	first.Type = cell.Text("Repair")
	first.Description = cell.Text("Replace belt")
	second := base
	second.Type = cell.Text("repair ")
	second.Description = cell.Text("Replace belt")
	third := base
	third.Type = cell.Text("Repair")
	third.Problem = cell.Text("  ")

	report := New(craft.Default()).Build([]types.RawRecord{first, second, third}, reportDate)

	rows := report.Rows("Caster Mech Days")
	require.Len(t, rows, 1)
	assert.Equal(t, "Repair; repair", rows[0].Type, "distinct after trimming, sorted")
	assert.Equal(t, "Replace belt", rows[0].Description)
	assert.Equal(t, "", rows[0].Problem, "whitespace-only annotations are dropped")
}

func TestBuildIgnoresNumericAnnotations(t *testing.T) {
	rec := workRecord("1145455", "LEE, SAM", "30", 2)
	rec.Type = cell.Number(30)
	rec.Description = cell.Empty()

	report := New(craft.Default()).Build([]types.RawRecord{rec}, reportDate)

	rows := report.Rows("EAF Mech Days")
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Type)
	assert.Equal(t, "", rows[0].Description)
}

func TestBuildFiltersByDate(t *testing.T) {
	onDate := workRecord("1145480", "SMITH, JOHN", "1", 2)
	serial := workRecord("1145480", "SMITH, JOHN", "1", 3)
	serial.ProductionDate = cell.Number(45000) // also 03/15/2023
	otherDay := workRecord("1145480", "SMITH, JOHN", "1", 4)
	otherDay.ProductionDate = cell.Text("03/16/2023")
	garbage := workRecord("1145480", "SMITH, JOHN", "1", 5)
	garbage.ProductionDate = cell.Text("not a date")

	records := []types.RawRecord{onDate, serial, otherDay, garbage}
	report := New(craft.Default()).Build(records, reportDate)

	rows := report.Rows("Alloy Mech Days")
	require.Len(t, rows, 1)
	assert.Equal(t, 5.0, rows[0].SumOfHours, "text and serial forms of the date both match")
}

func TestBuildUnmappedCraft(t *testing.T) {
	unknown := workRecord("9999999", "SMITH, JOHN", "1", 2)
	blank := workRecord("", "DOE, JANE", "2", 3)

	report := New(craft.Default()).Build([]types.RawRecord{unknown, blank}, reportDate)

	require.Equal(t, []string{craft.Unmapped}, report.Crafts())
	assert.Len(t, report.Rows(craft.Unmapped), 2)
}

func TestBuildSharedCraftCodesMerge(t *testing.T) {
	a := workRecord("1145658", "BAKER, ANNA", "500", 4)
	b := workRecord("1145666", "BAKER, ANNA", "500", 4)

	report := New(craft.Default()).Build([]types.RawRecord{a, b}, reportDate)

	require.Equal(t, []string{"Turns"}, report.Crafts())
	rows := report.Rows("Turns")
	require.Len(t, rows, 1, "codes sharing a description merge into one row")
	assert.Equal(t, 8.0, rows[0].SumOfHours)
}

func TestBuildCraftSectionOrder(t *testing.T) {
	records := []types.RawRecord{
		workRecord("1145501", "A", "1", 1),
		workRecord("1145480", "B", "2", 1),
		workRecord("1145501", "C", "3", 1),
	}

	report := New(craft.Default()).Build(records, reportDate)

	assert.Equal(t, []string{"Caster Mech Days", "Alloy Mech Days"}, report.Crafts())
}

func TestBuildCaseSensitiveGrouping(t *testing.T) {
	records := []types.RawRecord{
		workRecord("1145480", "SMITH, JOHN", "1", 2),
		workRecord("1145480", "Smith, John", "1", 3),
	}

	report := New(craft.Default()).Build(records, reportDate)

	assert.Len(t, report.Rows("Alloy Mech Days"), 2, "names differing in case stay separate")
}

func TestBuildUnparsableHours(t *testing.T) {
	rec := workRecord("1145480", "SMITH, JOHN", "1", 0)
	rec.SumOfHours = cell.Text("n/a")
	tagged := workRecord("1145480", "SMITH, JOHN", "1", 0)
	tagged.SumOfHours = cell.Text("3.5h")

	report := New(craft.Default()).Build([]types.RawRecord{rec, tagged}, reportDate)

	rows := report.Rows("Alloy Mech Days")
	require.Len(t, rows, 1)
	assert.Equal(t, 3.5, rows[0].SumOfHours)
}

func TestBuildRoundsHours(t *testing.T) {
	records := []types.RawRecord{
		workRecord("1145480", "SMITH, JOHN", "1", 0.1),
		workRecord("1145480", "SMITH, JOHN", "1", 0.2),
	}

	report := New(craft.Default()).Build(records, reportDate)

	rows := report.Rows("Alloy Mech Days")
	require.Len(t, rows, 1)
	assert.Equal(t, 0.3, rows[0].SumOfHours)
}

func TestBuildEmptyReport(t *testing.T) {
	report := New(craft.Default()).Build(nil, reportDate)

	assert.True(t, report.Empty())
	assert.Equal(t, 0, report.Len())
	assert.Empty(t, report.Crafts())
	assert.Equal(t, reportDate, report.Date)
}

func TestBuildDeterministic(t *testing.T) {
	records := []types.RawRecord{
		workRecord("1145480", "SMITH, JOHN", "12", 2),
		workRecord("1145501", "DOE, JANE", "7", 3),
		workRecord("1145480", "SMITH, JOHN", "12", 1),
	}
	records[0].Type = cell.Text("PM")
	records[2].Type = cell.Text("CM")

	agg := New(craft.Default())
	first := agg.Build(records, reportDate)
	second := agg.Build(records, reportDate)

	assert.Equal(t, first, second)
}

func TestDates(t *testing.T) {
	serial := workRecord("1145480", "A", "1", 1)
	serial.ProductionDate = cell.Number(45000)
	early := workRecord("1145480", "B", "2", 1)
	early.ProductionDate = cell.Text("01/01/2023")
	later := workRecord("1145480", "C", "3", 1)
	later.ProductionDate = cell.Text("06/15/2023")
	dup := workRecord("1145480", "D", "4", 1)
	dup.ProductionDate = cell.Text("2023-03-15")
	bad := workRecord("1145480", "E", "5", 1)
	bad.ProductionDate = cell.Text("soon")

	dates := Dates([]types.RawRecord{serial, early, later, dup, bad})

	assert.Equal(t, []string{"01/01/2023", "03/15/2023", "06/15/2023"}, dates)
}
