// =============================================================================
// Daily Report Generator - Cell Values
// =============================================================================
//
// This package models a single spreadsheet cell value. Exports arrive from
// the scheduling system in whatever shape Excel left them in: genuine dates,
// day-count serials, millisecond timestamps, free-text dates, numbers with
// unit suffixes. The types here keep the original text alongside the typed
// interpretation so downstream stages can pick whichever reading they need.
//
// =============================================================================

package cell

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// =============================================================================
// VALUE TYPES
// =============================================================================

// Kind identifies the typed interpretation of a cell.
type Kind int

const (
	// KindEmpty marks a blank or whitespace-only cell.
	KindEmpty Kind = iota

	// KindText marks a cell holding free text.
	KindText

	// KindNumber marks a cell holding a numeric value.
	KindNumber

	// KindDate marks a cell holding a structured date or datetime.
	KindDate
)

// Value is one cell as read from an input file.
//
// Raw always holds the original text form of the cell (empty for KindEmpty
// and KindDate). Num is set for KindNumber and Date is set for KindDate;
// both are zero otherwise.
type Value struct {
	Kind Kind
	Raw  string
	Num  float64
	Date time.Time
}

// Empty returns a blank cell value.
func Empty() Value {
	return Value{Kind: KindEmpty}
}

// Text returns a free-text cell value.
func Text(s string) Value {
	return Value{Kind: KindText, Raw: s}
}

// Number returns a numeric cell value.
func Number(f float64) Value {
	return Value{Kind: KindNumber, Raw: strconv.FormatFloat(f, 'f', -1, 64), Num: f}
}

// Date returns a structured date cell value.
func Date(t time.Time) Value {
	return Value{Kind: KindDate, Date: t}
}

// Infer classifies a raw cell string as read from a spreadsheet.
//
// A blank or whitespace-only string is empty, a string that parses as a
// float is numeric, and anything else is text. Text keeps its original form
// untrimmed so later stages decide their own trimming.
func Infer(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Empty()
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Value{Kind: KindNumber, Raw: trimmed, Num: f}
	}
	return Value{Kind: KindText, Raw: raw}
}

// IsEmpty reports whether the cell is blank.
func (v Value) IsEmpty() bool {
	return v.Kind == KindEmpty
}

// Text returns the text form of the cell. Numbers render without trailing
// zeros, dates in the canonical report layout.
func (v Value) Text() string {
	switch v.Kind {
	case KindText:
		return v.Raw
	case KindNumber:
		if v.Raw != "" {
			return v.Raw
		}
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindDate:
		return v.Date.Format(DateLayout)
	default:
		return ""
	}
}

// =============================================================================
// NUMERIC COERCION
// =============================================================================

// CoerceFloat extracts a float from a cell for hour accumulation.
//
// PARAMETERS:
//   - v: The cell to coerce
//
// RETURNS:
//   - The numeric reading of the cell, or 0 when there is none
//
// Numeric cells pass through as-is (NaN counts as zero). Text cells are
// stripped down to digit, decimal point, and minus characters before
// parsing, so entries like "3.5 hrs" or "$1,234.50" still contribute.
// Anything that fails to parse after stripping contributes zero.
func CoerceFloat(v Value) float64 {
	switch v.Kind {
	case KindNumber:
		if math.IsNaN(v.Num) {
			return 0
		}
		return v.Num
	case KindText:
		var b strings.Builder
		for _, r := range v.Raw {
			if unicode.IsDigit(r) || r == '.' || r == '-' {
				b.WriteRune(r)
			}
		}
		f, err := strconv.ParseFloat(b.String(), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// OrderKey maps a work order identifier to a sortable rank.
//
// Pure non-negative digit strings rank by numeric value; every other
// identifier (empty, alphanumeric, signed, decimal) ranks at positive
// infinity and therefore sorts after all numeric orders. Ties keep their
// original relative order.
func OrderKey(s string) float64 {
	if s == "" {
		return math.Inf(1)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return math.Inf(1)
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.Inf(1)
	}
	return f
}
