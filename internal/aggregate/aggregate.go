// =============================================================================
// Daily Report Generator - Aggregation Engine
// =============================================================================
//
// This module turns raw export records into the report model: records are
// filtered to a single production date, grouped by craft description, name,
// and work order, hours are accumulated, and the free-text annotations
// (type, description, problem) are collected as de-duplicated sets.
//
// AGGREGATION PIPELINE:
//   1. Filter records to the target date (normalized form comparison)
//   2. Resolve each record's craft code to its description
//   3. Group by (craft description, name, work order)
//   4. Accumulate hours and annotation sets per group
//   5. Partition groups into craft sections, crafts in first-seen order
//   6. Sort each section by work order rank, numeric orders first
//
// ERROR HANDLING:
//   Aggregation never fails. Records with unusable dates simply never
//   match, unparsable hours contribute zero, and unknown crafts collect
//   under the unmapped section. Schema problems are caught earlier by the
//   parsers.
//
// =============================================================================

package aggregate

import (
	"math"
	"sort"
	"strings"

	"github.com/ginjaninja78/nas-daily-report/internal/cell"
	"github.com/ginjaninja78/nas-daily-report/internal/craft"
	"github.com/ginjaninja78/nas-daily-report/internal/types"
)

// =============================================================================
// REPORT MODEL
// =============================================================================

// Row is one aggregated line of the report: one person on one work order
// within one craft, with their hours for the day summed.
type Row struct {
	// Name is the worker name exactly as exported.
	Name string

	// OrderNumber is the work order identifier in its text form.
	OrderNumber string

	// SumOfHours is the accumulated labor, rounded to two decimals.
	SumOfHours float64

	// Type, Description, and Problem are the de-duplicated annotation
	// values, sorted and joined with "; ".
	Type        string
	Description string
	Problem     string
}

// Report is the aggregated model for one production date. Craft sections
// keep the order in which each craft first appeared in the input.
type Report struct {
	// Date is the canonical production date the report covers.
	Date string

	crafts []string
	rows   map[string][]Row
}

// Crafts returns the section headings in first-seen order. The returned
// slice is shared; callers must not modify it.
func (r *Report) Crafts() []string {
	return r.crafts
}

// Rows returns the sorted rows of one craft section.
func (r *Report) Rows(craftDesc string) []Row {
	return r.rows[craftDesc]
}

// Empty reports whether no record matched the report date.
func (r *Report) Empty() bool {
	return len(r.crafts) == 0
}

// Len returns the total row count across all craft sections.
func (r *Report) Len() int {
	total := 0
	for _, rows := range r.rows {
		total += len(rows)
	}
	return total
}

// =============================================================================
// AGGREGATOR
// =============================================================================

// groupKey identifies one report row while records accumulate. Text
// forms are compared exactly; records differing only in case or spacing
// stay separate rows.
type groupKey struct {
	craft string
	name  string
	order string
}

// bucket accumulates one group's hours and annotation sets.
type bucket struct {
	key          groupKey
	hours        float64
	types        map[string]bool
	descriptions map[string]bool
	problems     map[string]bool
}

// Aggregator builds daily report models from raw records using a fixed
// craft table.
type Aggregator struct {
	table craft.Table
}

// New creates an Aggregator with the given craft table.
func New(table craft.Table) *Aggregator {
	return &Aggregator{table: table}
}

// Build aggregates records for one production date.
//
// PARAMETERS:
//   - records: Raw export records, any mix of dates
//   - targetDate: The canonical date to report on, e.g. "06/15/2023"
//
// RETURNS:
//   - The report model; empty (but valid) when nothing matches
//
// Build is pure: the same records and date always produce the same
// report, and the input slice is never modified.
func (a *Aggregator) Build(records []types.RawRecord, targetDate string) *Report {
	buckets := make(map[groupKey]*bucket)
	groupOrder := []groupKey{}

	for _, rec := range records {
		date, ok := cell.NormalizeDate(rec.ProductionDate)
		if !ok || date != targetDate {
			continue
		}

		key := groupKey{
			craft: a.table.Resolve(rec.Craft),
			name:  rec.Name.Text(),
			order: rec.OrderNumber.Text(),
		}

		b, exists := buckets[key]
		if !exists {
			b = &bucket{
				key:          key,
				types:        make(map[string]bool),
				descriptions: make(map[string]bool),
				problems:     make(map[string]bool),
			}
			buckets[key] = b
			groupOrder = append(groupOrder, key)
		}

		b.hours += cell.CoerceFloat(rec.SumOfHours)
		addAnnotation(b.types, rec.Type)
		addAnnotation(b.descriptions, rec.Description)
		addAnnotation(b.problems, rec.Problem)
	}

	report := &Report{Date: targetDate, rows: make(map[string][]Row)}
	for _, key := range groupOrder {
		b := buckets[key]
		row := Row{
			Name:        key.name,
			OrderNumber: key.order,
			SumOfHours:  round2(b.hours),
			Type:        joinSet(b.types),
			Description: joinSet(b.descriptions),
			Problem:     joinSet(b.problems),
		}
		if _, seen := report.rows[key.craft]; !seen {
			report.crafts = append(report.crafts, key.craft)
		}
		report.rows[key.craft] = append(report.rows[key.craft], row)
	}

	for _, craftDesc := range report.crafts {
		rows := report.rows[craftDesc]
		sort.SliceStable(rows, func(i, j int) bool {
			return cell.OrderKey(rows[i].OrderNumber) < cell.OrderKey(rows[j].OrderNumber)
		})
	}

	return report
}

// Dates returns every distinct normalized production date found in the
// records, sorted ascending as strings. With the canonical MM/DD/YYYY
// layout this is lexicographic, not chronological; callers that default
// to the last element get the highest month/day combination.
func Dates(records []types.RawRecord) []string {
	seen := make(map[string]bool)
	var dates []string
	for _, rec := range records {
		if d, ok := cell.NormalizeDate(rec.ProductionDate); ok && !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)
	return dates
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// addAnnotation records a distinct trimmed annotation value. Only text
// cells participate; numeric and empty cells are ignored, matching the
// report's treatment of annotations as free text.
func addAnnotation(set map[string]bool, v cell.Value) {
	if v.Kind != cell.KindText {
		return
	}
	s := strings.TrimSpace(v.Raw)
	if s == "" {
		return
	}
	set[s] = true
}

// joinSet renders an annotation set sorted and "; " separated.
func joinSet(set map[string]bool) string {
	if len(set) == 0 {
		return ""
	}
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return strings.Join(values, "; ")
}

// round2 rounds to two decimals, half away from zero.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
