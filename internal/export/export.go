// Package export writes a plan's derived artifacts: the canonical
// CSV, the SVG chart, the HTML report, and the starter template.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sandrine-crypto/ganttkit/internal/chart"
	"github.com/sandrine-crypto/ganttkit/internal/dates"
	"github.com/sandrine-crypto/ganttkit/internal/report"
	"github.com/sandrine-crypto/ganttkit/internal/schedule"
)

// CSV renders the plan as canonical CSV with a days column.
func CSV(p *schedule.Plan) (string, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)

	header := append(append([]string{}, schedule.Columns...), "days")
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, t := range p.Tasks {
		record := []string{
			t.Category,
			t.Name,
			dates.Format(t.Start),
			dates.Format(t.End),
			strconv.Itoa(t.Days()),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("could not write CSV: %w", err)
	}
	return b.String(), nil
}

// Filename returns the dated default filename for a format, matching
// the names the download buttons use.
func Filename(format string, now time.Time) string {
	stamp := now.Format("20060102")
	switch format {
	case "csv":
		return fmt.Sprintf("gantt_export_%s.csv", stamp)
	case "svg":
		return fmt.Sprintf("gantt_%s.svg", stamp)
	case "html":
		return fmt.Sprintf("gantt_report_%s.html", stamp)
	default:
		return fmt.Sprintf("gantt_%s.%s", stamp, format)
	}
}

// Result records one written artifact.
type Result struct {
	Format string `json:"format"`
	Path   string `json:"path"`
	Bytes  int    `json:"bytes"`
}

// Render produces the artifact content for one format.
func Render(p *schedule.Plan, format string, opts chart.Options, now time.Time) (string, error) {
	switch format {
	case "csv":
		return CSV(p)
	case "svg":
		return chart.RenderSVG(p, opts), nil
	case "html":
		return report.Generate(p, opts.Width, now)
	default:
		return "", fmt.Errorf("unsupported export format %q (supported: csv, svg, html)", format)
	}
}

// Write renders one format into dir under its default filename.
func Write(p *schedule.Plan, format, dir string, opts chart.Options, now time.Time) (*Result, error) {
	return WriteAs(p, format, filepath.Join(dir, Filename(format, now)), opts, now)
}

// WriteAs renders one format to an explicit path, creating parent
// directories as needed.
func WriteAs(p *schedule.Plan, format, path string, opts chart.Options, now time.Time) (*Result, error) {
	content, err := Render(p, format, opts, now)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("could not create output directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return nil, fmt.Errorf("could not write %s: %w", path, err)
	}

	return &Result{Format: format, Path: path, Bytes: len(content)}, nil
}

// templateRows is the starter content offered to new users: the
// canonical headers with a small worked example.
var templateRows = [][]string{
	{"catégorie", "tâche", "début", "fin"},
	{"Développement", "Analyse", "2025-01-01", "2025-01-14"},
	{"Développement", "Codage", "2025-01-15", "2025-01-31"},
	{"Tests", "Tests unitaires", "2025-02-01", "2025-02-14"},
	{"Tests", "Tests intégration", "2025-02-15", "2025-02-28"},
	{"Déploiement", "Mise en production", "2025-03-01", "2025-03-15"},
}

// TemplateXLSX builds the starter workbook in memory.
func TemplateXLSX() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range templateRows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, fmt.Errorf("invalid cell coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet, name, cell); err != nil {
				return nil, fmt.Errorf("could not set cell %s: %w", name, err)
			}
		}
	}

	var b bytes.Buffer
	if err := f.Write(&b); err != nil {
		return nil, fmt.Errorf("could not build template workbook: %w", err)
	}
	return b.Bytes(), nil
}

// TemplateCSV builds the starter table as CSV.
func TemplateCSV() (string, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	for _, row := range templateRows {
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteTemplate writes the starter template to path. The extension
// picks the format.
func WriteTemplate(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		data, err := TemplateXLSX()
		if err != nil {
			return err
		}
		return os.WriteFile(path, data, 0644)
	case ".csv":
		content, err := TemplateCSV()
		if err != nil {
			return err
		}
		return os.WriteFile(path, []byte(content), 0644)
	default:
		return fmt.Errorf("unsupported template format %q — use .xlsx or .csv", filepath.Ext(path))
	}
}
