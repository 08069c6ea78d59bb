// =============================================================================
// Daily Report Generator - Craft Code Table
// =============================================================================
//
// Maintenance crafts are identified in exports by numeric cost-center style
// codes. This package maps those codes to the human-readable craft
// descriptions that become the section headings of the daily report. Codes
// that are not in the table collect under a single unmapped sentinel so no
// labor hours silently disappear.
//
// =============================================================================

package craft

import (
	"strings"

	"github.com/ginjaninja78/nas-daily-report/internal/cell"
)

// Unmapped is the section heading for records whose craft code has no
// entry in the table.
const Unmapped = "(Unmapped Craft)"

// Table maps craft codes to craft descriptions. A Table is immutable once
// built; several codes may share one description, in which case their
// records merge into the same report section.
type Table struct {
	codes map[string]string
}

// NewTable builds a Table from a code-to-description map. The map is
// copied, so later changes to the argument do not affect the table.
func NewTable(codes map[string]string) Table {
	copied := make(map[string]string, len(codes))
	for code, desc := range codes {
		copied[code] = desc
	}
	return Table{codes: copied}
}

// Default returns the built-in craft table for the melt shop maintenance
// departments.
func Default() Table {
	return NewTable(map[string]string{
		"1145480": "Alloy Mech Days",
		"1145560": "AOD Elec Days",
		"1146669": "AOD Elec Days",
		"1145463": "AOD Mech Days",
		"1145498": "Baghouse Mech Days",
		"1145594": "Caster Elec Days",
		"1145501": "Caster Mech Days",
		"1145551": "EAF Elec Days",
		"1145674": "Turns",
		"1145455": "EAF Mech Days",
		"1145631": "HVAC Elec Days",
		"1145623": "Preheater Elec Days",
		"1157755": "Segment Shop",
		"1145658": "Turns",
		"1145666": "Turns",
		"1146757": "Utilities Mech Days",
		"1162511": "Utilities Mech Days",
		"1152989": "WTP Mech Days",
	})
}

// Resolve maps a craft code cell to its description. The cell's text form
// is trimmed and looked up exactly; no case folding, no prefix matching.
// Unknown and empty codes resolve to the unmapped sentinel.
func (t Table) Resolve(v cell.Value) string {
	return t.ResolveCode(strings.TrimSpace(v.Text()))
}

// ResolveCode maps an already-trimmed craft code string to its
// description.
func (t Table) ResolveCode(code string) string {
	if desc, ok := t.codes[code]; ok {
		return desc
	}
	return Unmapped
}

// Lookup reports the description for a code and whether the code is
// present in the table.
func (t Table) Lookup(code string) (string, bool) {
	desc, ok := t.codes[code]
	return desc, ok
}

// Len returns the number of codes in the table.
func (t Table) Len() int {
	return len(t.codes)
}
