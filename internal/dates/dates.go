// Package dates parses the date values found in project spreadsheets.
// Cell values arrive as text, so both written dates and Excel serial
// numbers have to be handled.
package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layouts are the accepted written date formats, tried in order.
// The slash, dash, and dot short forms are day-first.
var Layouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
	"02.01.2006",
	"2006.01.02",
}

// excelEpoch is day zero of the 1900 date system. Serial 1 is
// 1900-01-01, and serials above 59 carry the historical off-by-one
// for the phantom 1900-02-29.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Parse interprets a text value as a date. It accepts only the
// written layouts; bare numbers are not dates here, so a CSV cell
// holding "2025" stays unrecognized instead of becoming a serial.
// The boolean reports whether a date was recognized; an unrecognized
// value is not an error.
func Parse(value string) (time.Time, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range Layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// ParseCell interprets a spreadsheet cell value. On top of the
// written layouts it accepts Excel serial numbers and datetime cells,
// which only spreadsheets produce. Text sources must go through
// Parse instead.
func ParseCell(value string) (time.Time, bool) {
	if t, ok := Parse(value); ok {
		return t, true
	}

	s := strings.TrimSpace(value)
	if t, ok := parseSerial(s); ok {
		return t, true
	}

	// Datetime cells sometimes render with a trailing time component.
	if fields := strings.Fields(s); len(fields) == 2 {
		for _, layout := range Layouts {
			if t, err := time.Parse(layout, fields[0]); err == nil {
				return t, true
			}
		}
	}

	return time.Time{}, false
}

// MustParse is a test and fixture helper that panics on values Parse
// does not recognize.
func MustParse(value string) time.Time {
	t, ok := Parse(value)
	if !ok {
		panic(fmt.Sprintf("dates: unparseable value %q", value))
	}
	return t
}

// parseSerial converts an Excel 1900-system serial number to a date.
// Serials below 1 or above year 9999 are rejected.
func parseSerial(s string) (time.Time, bool) {
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, false
	}
	if serial < 1 || serial > 2958465 { // 2958465 = 9999-12-31
		return time.Time{}, false
	}

	days := int(serial)
	if days < 60 {
		// Before the phantom leap day the epoch offset is one less.
		days++
	}
	return excelEpoch.AddDate(0, 0, days), true
}

// Format renders a date in the canonical export form.
func Format(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatDisplay renders a date in the dd/mm/yyyy form used by chart
// subtitles and report tables.
func FormatDisplay(t time.Time) string {
	return t.Format("02/01/2006")
}
