package report

import (
	"strings"
	"testing"
	"time"

	"github.com/sandrine-crypto/ganttkit/internal/dates"
	"github.com/sandrine-crypto/ganttkit/internal/schedule"
)

func testPlan() *schedule.Plan {
	return &schedule.Plan{Tasks: []schedule.Task{
		{Category: "Phase 1", Name: "Planification", Start: dates.MustParse("2025-01-01"), End: dates.MustParse("2025-01-14")},
		{Category: "Phase 2", Name: "Tests", Start: dates.MustParse("2025-02-01"), End: dates.MustParse("2025-02-28")},
	}}
}

func TestGenerateReport(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	html, err := Generate(testPlan(), 0, now)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.Contains(html, "<!DOCTYPE html>") {
		t.Error("missing doctype")
	}
	if !strings.Contains(html, "Rapport Gantt - 2025-06-01") {
		t.Error("missing dated title")
	}
	// Nav links: summary plus one per category.
	if !strings.Contains(html, `href="#resume"`) {
		t.Error("missing summary link")
	}
	if !strings.Contains(html, `href="#cat-0"`) || !strings.Contains(html, `href="#cat-1"`) {
		t.Error("missing category links")
	}
	// One inline SVG chart per category.
	if got := strings.Count(html, "<svg"); got != 2 {
		t.Errorf("expected 2 inline charts, got %d", got)
	}
	// Summary table rows.
	if !strings.Contains(html, "<td>Phase 1</td>") || !strings.Contains(html, "<td>Phase 2</td>") {
		t.Error("missing summary table rows")
	}
	// Stat cards.
	if !strings.Contains(html, "01/01/2025") || !strings.Contains(html, "28/02/2025") {
		t.Error("missing period stat cards")
	}
}

func TestGenerateReportEscapesCategories(t *testing.T) {
	p := &schedule.Plan{Tasks: []schedule.Task{{
		Category: `<img src=x onerror=alert(1)>`,
		Name:     "task",
		Start:    dates.MustParse("2025-01-01"),
		End:      dates.MustParse("2025-01-02"),
	}}}
	html, err := Generate(p, 0, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "<img src=x") {
		t.Error("category name not escaped in report")
	}
}

func TestGenerateReportLongCategoryNav(t *testing.T) {
	long := strings.Repeat("c", 40)
	p := &schedule.Plan{Tasks: []schedule.Task{{
		Category: long,
		Name:     "task",
		Start:    dates.MustParse("2025-01-01"),
		End:      dates.MustParse("2025-01-02"),
	}}}
	html, err := Generate(p, 0, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, strings.Repeat("c", 20)+"...") {
		t.Error("nav label should be truncated at 20 runes")
	}
}
