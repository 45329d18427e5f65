package dates

import (
	"testing"
	"time"
)

func TestParseWrittenFormats(t *testing.T) {
	want := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)
	inputs := []string{
		"2025-03-14",
		"14/03/2025",
		"14-03-2025",
		"2025/03/14",
		"14.03.2025",
		"2025.03.14",
	}
	for _, in := range inputs {
		got, ok := Parse(in)
		if !ok {
			t.Errorf("Parse(%q) did not recognize a date", in)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("Parse(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseTrimsWhitespace(t *testing.T) {
	got, ok := Parse("  2025-01-01  ")
	if !ok {
		t.Fatal("expected padded date to parse")
	}
	if got.Day() != 1 || got.Month() != time.January {
		t.Errorf("unexpected date %v", got)
	}
}

func TestParseCellSerial(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		// 45658 is 2025-01-01 in the 1900 date system.
		{"45658", time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"60", time.Date(1900, time.February, 28, 0, 0, 0, 0, time.UTC)},
		{"1", time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, ok := ParseCell(tt.in)
		if !ok {
			t.Errorf("ParseCell(%q) did not recognize a serial date", tt.in)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseCell(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseCellDatetime(t *testing.T) {
	got, ok := ParseCell("2025-03-14 00:00:00")
	if !ok {
		t.Fatal("expected datetime cell to parse")
	}
	if got.Year() != 2025 || got.Month() != time.March || got.Day() != 14 {
		t.Errorf("unexpected date %v", got)
	}
}

func TestParseRejectsNumbers(t *testing.T) {
	// Bare numbers are serials only in spreadsheet cells. A text value
	// like "2025" is a year someone typed, not day 2025 of 1900.
	for _, in := range []string{"2025", "45658", "1", "12.5"} {
		if _, ok := Parse(in); ok {
			t.Errorf("Parse(%q) unexpectedly recognized a date", in)
		}
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "not a date", "2025-13-40"} {
		if _, ok := Parse(in); ok {
			t.Errorf("Parse(%q) unexpectedly recognized a date", in)
		}
		if _, ok := ParseCell(in); ok {
			t.Errorf("ParseCell(%q) unexpectedly recognized a date", in)
		}
	}
}

func TestParseCellRejectsOutOfRangeSerial(t *testing.T) {
	for _, in := range []string{"0", "-5", "99999999"} {
		if _, ok := ParseCell(in); ok {
			t.Errorf("ParseCell(%q) unexpectedly recognized a serial", in)
		}
	}
}

func TestFormat(t *testing.T) {
	d := time.Date(2025, time.July, 4, 0, 0, 0, 0, time.UTC)
	if got := Format(d); got != "2025-07-04" {
		t.Errorf("Format = %q", got)
	}
	if got := FormatDisplay(d); got != "04/07/2025" {
		t.Errorf("FormatDisplay = %q", got)
	}
}
