// =============================================================================
// Daily Report Generator - Date Normalization
// =============================================================================
//
// Production dates show up in exports in four shapes: structured datetimes,
// Excel day-count serials, millisecond Unix timestamps, and free text. This
// file reduces all of them to one canonical MM/DD/YYYY string so filtering
// and grouping compare dates as plain strings.
//
// =============================================================================

package cell

import (
	"math"
	"strings"
	"time"
)

// DateLayout is the canonical report date form, e.g. "06/15/2023".
const DateLayout = "01/02/2006"

// serialEpoch is the Excel 1900 date system origin. Day zero is 1899-12-30,
// which absorbs Excel's phantom 1900 leap day so that serials from real
// exports line up with calendar dates.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Range of a 64-bit nanosecond timestamp. Day-count serials from real
// exports land inside this window while millisecond epoch timestamps land
// far outside it, which is how the two numeric encodings are told apart.
var (
	timestampMin = time.Date(1677, time.September, 21, 0, 0, 0, 0, time.UTC)
	timestampMax = time.Date(2262, time.April, 11, 0, 0, 0, 0, time.UTC)
)

// dateLayouts are tried in order when a cell holds a free-text date.
// Month-first forms come before day-first so ambiguous slash dates read as
// US dates; day-first only wins when month-first cannot parse.
var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01-02-2006",
	"01/02/2006 15:04:05",
	"02/01/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"20060102",
}

// NormalizeDate reduces a production date cell to the canonical MM/DD/YYYY
// form used for filtering, grouping, and display.
//
// PARAMETERS:
//   - v: The production date cell
//
// RETURNS:
//   - The canonical date string
//   - false when no interpretation succeeds; such records carry no date
//     and never match a report day
//
// The interpretation chain:
//  1. Empty cells normalize to nothing.
//  2. Structured dates format directly.
//  3. Numeric cells are read as Excel day-count serials when the resulting
//     date is representable; failing that, as millisecond Unix timestamps;
//     failing that, the text form goes through the free-text parse.
//  4. Text cells are trimmed and parsed against the known layouts.
func NormalizeDate(v Value) (string, bool) {
	switch v.Kind {
	case KindDate:
		return v.Date.Format(DateLayout), true
	case KindNumber:
		if math.IsNaN(v.Num) {
			return "", false
		}
		if t, ok := fromSerialDays(v.Num); ok {
			return t.Format(DateLayout), true
		}
		if t, ok := fromUnixMillis(v.Num); ok {
			return t.Format(DateLayout), true
		}
		return parseTextDate(v.Text())
	case KindText:
		s := strings.TrimSpace(v.Raw)
		if s == "" {
			return "", false
		}
		return parseTextDate(s)
	default:
		return "", false
	}
}

// fromSerialDays interprets a number as days since the 1900 date system
// origin. Counts that land outside the representable timestamp window are
// rejected so that millisecond values fall through.
func fromSerialDays(days float64) (time.Time, bool) {
	// Guard the AddDate conversion; anything this far out is not a day
	// count no matter the epoch.
	if math.IsInf(days, 0) || days < -1e7 || days > 1e7 {
		return time.Time{}, false
	}
	whole := math.Floor(days)
	t := serialEpoch.AddDate(0, 0, int(whole))
	t = t.Add(time.Duration((days - whole) * 24 * float64(time.Hour)))
	if t.Before(timestampMin) || t.After(timestampMax) {
		return time.Time{}, false
	}
	return t, true
}

// fromUnixMillis interprets a number as milliseconds since the Unix epoch.
func fromUnixMillis(ms float64) (time.Time, bool) {
	if math.IsInf(ms, 0) {
		return time.Time{}, false
	}
	if ms < float64(timestampMin.UnixMilli()) || ms > float64(timestampMax.UnixMilli()) {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)).UTC(), true
}

// parseTextDate tries each known layout against a trimmed string.
func parseTextDate(s string) (string, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout), true
		}
	}
	return "", false
}
