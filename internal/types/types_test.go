package types

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ginjaninja78/nas-daily-report/internal/cell"
)

func TestColumnsCoverSchema(t *testing.T) {
	assert.Len(t, Columns, 16)
	assert.Equal(t, ColAddressBookNumber, Columns[0])
	assert.Equal(t, ColStructureTag, Columns[len(Columns)-1])

	// The trailing period is part of the upstream export header.
	assert.Equal(t, "Sum of Hours.", ColSumOfHours)
}

func TestFromCells(t *testing.T) {
	fields := map[string]cell.Value{
		ColName:           cell.Text("BAKER, ANNA"),
		ColOrderNumber:    cell.Text("12345"),
		ColSumOfHours:     cell.Number(8),
		ColCraft:          cell.Text("1145480"),
		ColProductionDate: cell.Number(45000),
		"Not A Column":    cell.Text("ignored"),
	}

	rec := FromCells(fields, 7)

	assert.Equal(t, "BAKER, ANNA", rec.Name.Text())
	assert.Equal(t, "12345", rec.OrderNumber.Text())
	assert.Equal(t, 8.0, rec.SumOfHours.Num)
	assert.Equal(t, "1145480", rec.Craft.Text())
	assert.Equal(t, cell.KindNumber, rec.ProductionDate.Kind)
	assert.Equal(t, 7, rec.Row)
}

func TestFromCellsAbsentColumnsReadEmpty(t *testing.T) {
	rec := FromCells(map[string]cell.Value{}, 1)

	assert.True(t, rec.Name.IsEmpty())
	assert.True(t, rec.SumOfHours.IsEmpty())
	assert.True(t, rec.StructureTag.IsEmpty())
	assert.Equal(t, cell.KindEmpty, rec.Description.Kind)
}
