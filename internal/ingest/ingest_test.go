package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeXLSX(t *testing.T, dir string, rows [][]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue("Sheet1", name, cell); err != nil {
				t.Fatal(err)
			}
		}
	}
	path := filepath.Join(dir, "plan.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFileXLSX(t *testing.T) {
	dir := t.TempDir()
	path := writeXLSX(t, dir, [][]string{
		{"Catégorie", "Tâche", "Début", "Fin"},
		{"Phase 1", "Planification", "2025-01-01", "2025-01-14"},
		{"Phase 2", "Tests", "2025-02-01", "2025-02-28"},
	})

	p, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(p.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(p.Tasks))
	}
	if p.Tasks[0].Name != "Planification" {
		t.Errorf("first task = %q", p.Tasks[0].Name)
	}
}

func TestLoadFileCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.csv")
	content := "category,task,start,end\nDev,Codage,15/01/2025,31/01/2025\nDev,Revue,01/02/2025,05/02/2025\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(p.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(p.Tasks))
	}
	if p.Tasks[0].Start.Day() != 15 {
		t.Errorf("day-first date parsed wrong: %v", p.Tasks[0].Start)
	}
}

func TestLoadFileXLSXSerialDates(t *testing.T) {
	dir := t.TempDir()
	path := writeXLSX(t, dir, [][]string{
		{"Catégorie", "Tâche", "Début", "Fin"},
		// 45658 is 2025-01-01 in the 1900 date system.
		{"Phase 1", "Planification", "45658", "45671"},
	})

	p, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if got := p.Tasks[0].Start.Year(); got != 2025 {
		t.Errorf("serial start year = %d, want 2025", got)
	}
}

func TestLoadFileCSVRejectsSerialDates(t *testing.T) {
	// Bare numbers in a CSV are not dates. Only the year-only row is
	// dropped; the written-date row survives.
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.csv")
	content := "category,task,start,end\nDev,Codage,2025-06-01,2025-06-15\nDev,Annuel,2025,2025-06-30\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(p.Tasks) != 1 || p.Tasks[0].Name != "Codage" {
		t.Errorf("expected the numeric-date row to be dropped, got %+v", p.Tasks)
	}
}

func TestLoadFileRaggedCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.csv")
	content := "category,task,start,end,notes\nDev,Codage,2025-01-01,2025-01-05\nDev,Revue,2025-01-06,2025-01-07,late note\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadFile(path)
	if err != nil {
		t.Fatalf("ragged CSV should load: %v", err)
	}
	if len(p.Tasks) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(p.Tasks))
	}
}

func TestLoadFileMissingColumns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.csv")
	os.WriteFile(path, []byte("a,b\n1,2\n"), 0644)

	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
	if !strings.Contains(err.Error(), "missing required columns") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := LoadFile("/nonexistent/plan.xlsx")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadBytesUnsupported(t *testing.T) {
	_, err := LoadBytes("plan.pdf", []byte("%PDF"))
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestLoadBytesCorruptExcel(t *testing.T) {
	_, err := LoadBytes("plan.xlsx", []byte("this is not a zip"))
	if err == nil {
		t.Fatal("expected error for corrupt workbook")
	}
}

func TestSupported(t *testing.T) {
	for _, name := range []string{"a.xlsx", "b.XLS", "c.csv"} {
		if !Supported(name) {
			t.Errorf("Supported(%q) = false", name)
		}
	}
	for _, name := range []string{"a.pdf", "b.txt", "c"} {
		if Supported(name) {
			t.Errorf("Supported(%q) = true", name)
		}
	}
}
