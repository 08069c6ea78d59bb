// =============================================================================
// Daily Report Generator - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - xlsxparser
//   - csvparser
//   - validation
//   - aggregate
//
// =============================================================================

package types

import "github.com/ginjaninja78/nas-daily-report/internal/cell"

// =============================================================================
// EXPORT SCHEMA
// =============================================================================

// Column names as they appear in the header row of scheduling exports.
// Matching is exact after whitespace trimming; no case folding. The stray
// period in "Sum of Hours." is part of the upstream export and must stay.
const (
	ColAddressBookNumber = "AddressBookNumber"
	ColName              = "Name"
	ColProductionDate    = "Production Date"
	ColOrderNumber       = "OrderNumber"
	ColSumOfHours        = "Sum of Hours."
	ColHoursEstimated    = "Hours Estimated"
	ColStatus            = "Status"
	ColType              = "Type"
	ColPMFrequency       = "PMFrequency"
	ColDescription       = "Description"
	ColProblem           = "Problem"
	ColLeadArea          = "Lead Area"
	ColCraft             = "Craft"
	ColCostCenter        = "CostCenter"
	ColUnitNumber        = "UnitNumber"
	ColStructureTag      = "StructureTag"
)

// Columns lists every required export column in schema order.
var Columns = []string{
	ColAddressBookNumber,
	ColName,
	ColProductionDate,
	ColOrderNumber,
	ColSumOfHours,
	ColHoursEstimated,
	ColStatus,
	ColType,
	ColPMFrequency,
	ColDescription,
	ColProblem,
	ColLeadArea,
	ColCraft,
	ColCostCenter,
	ColUnitNumber,
	ColStructureTag,
}

// =============================================================================
// RECORD TYPES
// =============================================================================

// RawRecord is one data row of a scheduling export, one cell value per
// required column. Cells keep their inferred type; interpretation (date
// normalization, hour coercion, craft resolution) happens during
// aggregation.
type RawRecord struct {
	AddressBookNumber cell.Value
	Name              cell.Value
	ProductionDate    cell.Value
	OrderNumber       cell.Value
	SumOfHours        cell.Value
	HoursEstimated    cell.Value
	Status            cell.Value
	Type              cell.Value
	PMFrequency       cell.Value
	Description       cell.Value
	Problem           cell.Value
	LeadArea          cell.Value
	Craft             cell.Value
	CostCenter        cell.Value
	UnitNumber        cell.Value
	StructureTag      cell.Value

	// Row is the 1-based row number in the source file, kept for error
	// reporting.
	Row int
}

// FromCells builds a RawRecord from a column-name keyed cell map. Unknown
// columns are ignored; absent columns read as empty cells.
func FromCells(fields map[string]cell.Value, row int) RawRecord {
	get := func(name string) cell.Value {
		if v, ok := fields[name]; ok {
			return v
		}
		return cell.Empty()
	}
	return RawRecord{
		AddressBookNumber: get(ColAddressBookNumber),
		Name:              get(ColName),
		ProductionDate:    get(ColProductionDate),
		OrderNumber:       get(ColOrderNumber),
		SumOfHours:        get(ColSumOfHours),
		HoursEstimated:    get(ColHoursEstimated),
		Status:            get(ColStatus),
		Type:              get(ColType),
		PMFrequency:       get(ColPMFrequency),
		Description:       get(ColDescription),
		Problem:           get(ColProblem),
		LeadArea:          get(ColLeadArea),
		Craft:             get(ColCraft),
		CostCenter:        get(ColCostCenter),
		UnitNumber:        get(ColUnitNumber),
		StructureTag:      get(ColStructureTag),
		Row:               row,
	}
}

// Dataset is the parsed content of one input file.
type Dataset struct {
	// SourceFile is the path or display name of the input.
	SourceFile string

	// Sheet is the worksheet the records came from; empty for CSV input.
	Sheet string

	// Headers holds the cleaned header row.
	Headers []string

	// Records holds every non-empty data row.
	Records []RawRecord

	// RowCount is len(Records), kept for summary reporting.
	RowCount int

	// ColumnCount is the number of header columns.
	ColumnCount int
}
