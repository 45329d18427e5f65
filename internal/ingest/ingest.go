// Package ingest reads project spreadsheets (.xlsx, .xls, .csv) and
// normalizes them into a schedule.Plan.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sandrine-crypto/ganttkit/internal/schedule"
)

// SupportedExtensions lists the file extensions ingest understands.
var SupportedExtensions = []string{".xlsx", ".xls", ".csv"}

// Supported reports whether a filename has a readable extension.
func Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// LoadFile reads a spreadsheet from disk and returns the normalized plan.
func LoadFile(path string) (*schedule.Plan, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s — check that the path is correct", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}

	return LoadBytes(filepath.Base(path), data)
}

// LoadBytes reads a spreadsheet from memory. The filename decides the
// format; uploads arrive this way.
func LoadBytes(name string, data []byte) (*schedule.Plan, error) {
	rows, err := ReadRows(name, data)
	if err != nil {
		return nil, err
	}
	// Serial date numbers only mean anything coming out of a workbook.
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xls":
		return schedule.FromCells(rows)
	default:
		return schedule.FromRows(rows)
	}
}

// ReadRows returns the raw cell rows of a spreadsheet without
// normalizing them.
func ReadRows(name string, data []byte) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".csv":
		return readCSV(data)
	case ".xlsx", ".xls":
		return readExcel(name, data)
	default:
		return nil, fmt.Errorf("unsupported file format %q (supported: %s)", ext, strings.Join(SupportedExtensions, ", "))
	}
}

func readCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not parse CSV: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// readExcel reads the first sheet of a workbook. The project table is
// expected there, matching how the template is laid out.
func readExcel(name string, data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not open %s — is this a valid Excel file? %w", name, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s contains no sheets", name)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}
