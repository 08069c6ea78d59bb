package cell

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDateStructured(t *testing.T) {
	v := Date(time.Date(2023, time.June, 15, 14, 30, 0, 0, time.UTC))
	got, ok := NormalizeDate(v)
	require.True(t, ok)
	assert.Equal(t, "06/15/2023", got, "time of day is discarded")
}

func TestNormalizeDateSerialDays(t *testing.T) {
	tests := []struct {
		name   string
		serial float64
		want   string
	}{
		{"turn of the century", 36526, "01/01/2000"},
		{"recent export serial", 45000, "03/15/2023"},
		{"fractional day", 45000.5, "03/15/2023"},
		{"before the epoch", -1000, "04/04/1897"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeDate(Number(tt.serial))
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeDateSerialRoundTrip(t *testing.T) {
	// A day-count in, the same calendar day back out.
	for _, serial := range []float64{1, 36526, 44927, 45000, 60000} {
		got, ok := NormalizeDate(Number(serial))
		require.True(t, ok, "serial %v", serial)

		parsed, err := time.Parse(DateLayout, got)
		require.NoError(t, err)
		want := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC).
			AddDate(0, 0, int(serial))
		assert.Equal(t, want.Format(DateLayout), parsed.Format(DateLayout))
	}
}

func TestNormalizeDateUnixMillis(t *testing.T) {
	// Too large for a day count, read as a millisecond timestamp.
	got, ok := NormalizeDate(Number(1700000000000))
	require.True(t, ok)
	assert.Equal(t, "11/14/2023", got)
}

func TestNormalizeDateNumericRejects(t *testing.T) {
	cases := []struct {
		name string
		num  float64
	}{
		{"nan", math.NaN()},
		{"absurdly large", 1e30},
		{"beyond millisecond range", 1e17},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := NormalizeDate(Number(tt.num))
			assert.False(t, ok)
		})
	}
}

func TestNormalizeDateFreeText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"canonical form", "03/15/2023", "03/15/2023"},
		{"unpadded", "6/15/2023", "06/15/2023"},
		{"iso", "2023-06-15", "06/15/2023"},
		{"iso datetime", "2023-06-15 08:30:00", "06/15/2023"},
		{"long month name", "June 15, 2023", "06/15/2023"},
		{"short month name", "Jan 2, 2023", "01/02/2023"},
		{"surrounding spaces", "  06/15/2023  ", "06/15/2023"},
		{"day first fallback", "13/04/2025", "04/13/2025"},
		{"compact", "20230615", "06/15/2023"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeDate(Text(tt.text))
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeDateAmbiguousSlashReadsMonthFirst(t *testing.T) {
	got, ok := NormalizeDate(Text("06/05/2023"))
	require.True(t, ok)
	assert.Equal(t, "06/05/2023", got, "June 5th, not May 6th")
}

func TestNormalizeDateFailures(t *testing.T) {
	for _, v := range []Value{
		Empty(),
		Text(""),
		Text("   "),
		Text("not a date"),
		Text("13/32/2023"),
	} {
		_, ok := NormalizeDate(v)
		assert.False(t, ok)
	}
}
