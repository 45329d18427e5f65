package schedule

import (
	"strings"
	"testing"
	"time"
)

func TestFoldHeader(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Catégorie", "categorie"},
		{"  TÂCHE  ", "tache"},
		{"Début", "debut"},
		{"échéance", "echeance"},
		{"start_date", "start_date"},
	}
	for _, tt := range tests {
		if got := FoldHeader(tt.in); got != tt.want {
			t.Errorf("FoldHeader(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMapColumnsFrenchHeaders(t *testing.T) {
	cm, err := MapColumns([]string{"Catégorie", "Tâche", "Début", "Fin"})
	if err != nil {
		t.Fatalf("MapColumns failed: %v", err)
	}
	if cm.Category != 0 || cm.Task != 1 || cm.Start != 2 || cm.End != 3 {
		t.Errorf("unexpected mapping: %+v", cm)
	}
}

func TestMapColumnsEnglishAliases(t *testing.T) {
	cm, err := MapColumns([]string{"Group", "Name", "start_date", "end_date"})
	if err != nil {
		t.Fatalf("MapColumns failed: %v", err)
	}
	if cm.Category != 0 || cm.Task != 1 || cm.Start != 2 || cm.End != 3 {
		t.Errorf("unexpected mapping: %+v", cm)
	}
}

func TestMapColumnsReordered(t *testing.T) {
	cm, err := MapColumns([]string{"End", "Start", "Task", "Category", "extra"})
	if err != nil {
		t.Fatalf("MapColumns failed: %v", err)
	}
	if cm.End != 0 || cm.Start != 1 || cm.Task != 2 || cm.Category != 3 {
		t.Errorf("unexpected mapping: %+v", cm)
	}
}

func TestMapColumnsMissing(t *testing.T) {
	_, err := MapColumns([]string{"Category", "Task", "Start"})
	if err == nil {
		t.Fatal("expected error for missing end column")
	}
	if !strings.Contains(err.Error(), "end") {
		t.Errorf("error should name the missing column: %v", err)
	}
	if !strings.Contains(err.Error(), "Category") {
		t.Errorf("error should list available columns: %v", err)
	}
}

func sampleRows() [][]string {
	return [][]string{
		{"catégorie", "tâche", "début", "fin"},
		{"Phase 2", "Développement", "2025-02-01", "2025-02-28"},
		{"Phase 1", "Planification", "2025-01-01", "2025-01-14"},
		{"Phase 1", "Analyse", "2025-01-15", "2025-01-31"},
		{"Phase 2", "Tests", "2025-03-01", "2025-03-31"},
	}
}

func TestFromRowsSortsByCategoryThenStart(t *testing.T) {
	p, err := FromRows(sampleRows())
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}
	if len(p.Tasks) != 4 {
		t.Fatalf("expected 4 tasks, got %d", len(p.Tasks))
	}
	wantOrder := []string{"Planification", "Analyse", "Développement", "Tests"}
	for i, want := range wantOrder {
		if p.Tasks[i].Name != want {
			t.Errorf("task %d = %q, want %q", i, p.Tasks[i].Name, want)
		}
	}
}

func TestFromRowsDropsInvalidRows(t *testing.T) {
	rows := [][]string{
		{"category", "task", "start", "end"},
		{"A", "kept", "2025-01-01", "2025-01-02"},
		{"A", "", "2025-01-01", "2025-01-02"},
		{"A", "bad start", "soon", "2025-01-02"},
		{"A", "bad end", "2025-01-01", "later"},
		{"A", "short row"},
	}
	p, err := FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}
	if len(p.Tasks) != 1 || p.Tasks[0].Name != "kept" {
		t.Errorf("expected only the valid row to survive, got %+v", p.Tasks)
	}
}

func TestFromRowsDropsBareYear(t *testing.T) {
	// "2025" must not be read as serial day 2025 of the 1900 system
	// (mid-1905), which would stretch the whole timeline.
	rows := [][]string{
		{"category", "task", "start", "end"},
		{"A", "kept", "2025-06-01", "2025-06-15"},
		{"A", "year-only", "2025", "2025-06-30"},
	}
	p, err := FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}
	if len(p.Tasks) != 1 || p.Tasks[0].Name != "kept" {
		t.Errorf("expected the year-only row to be dropped, got %+v", p.Tasks)
	}
}

func TestFromCellsAcceptsSerialDates(t *testing.T) {
	rows := [][]string{
		{"category", "task", "start", "end"},
		// 45658 and 45672 are 2025-01-01 and 2025-01-15.
		{"A", "serial", "45658", "45672"},
	}
	p, err := FromCells(rows)
	if err != nil {
		t.Fatalf("FromCells failed: %v", err)
	}
	want := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !p.Tasks[0].Start.Equal(want) {
		t.Errorf("serial start = %v, want %v", p.Tasks[0].Start, want)
	}
}

func TestFromRowsAllInvalid(t *testing.T) {
	rows := [][]string{
		{"category", "task", "start", "end"},
		{"A", "x", "nope", "nope"},
	}
	if _, err := FromRows(rows); err == nil {
		t.Fatal("expected error when no rows survive")
	}
}

func TestFromRowsEmpty(t *testing.T) {
	if _, err := FromRows(nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestFromRowsSwapsReversedDates(t *testing.T) {
	rows := [][]string{
		{"category", "task", "start", "end"},
		{"A", "reversed", "2025-02-01", "2025-01-01"},
	}
	p, err := FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}
	if p.Tasks[0].End.Before(p.Tasks[0].Start) {
		t.Error("expected start/end to be swapped into order")
	}
}

func TestTaskDays(t *testing.T) {
	task := Task{
		Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC),
	}
	if got := task.Days(); got != 14 {
		t.Errorf("Days = %d, want 14", got)
	}

	oneDay := Task{Start: task.Start, End: task.Start}
	if got := oneDay.Days(); got != 1 {
		t.Errorf("one-day task Days = %d, want 1", got)
	}
}

func TestCategoriesOrder(t *testing.T) {
	p, err := FromRows(sampleRows())
	if err != nil {
		t.Fatal(err)
	}
	cats := p.Categories()
	if len(cats) != 2 || cats[0] != "Phase 1" || cats[1] != "Phase 2" {
		t.Errorf("unexpected categories: %v", cats)
	}
}

func TestByCategory(t *testing.T) {
	p, err := FromRows(sampleRows())
	if err != nil {
		t.Fatal(err)
	}
	sub := p.ByCategory("Phase 2")
	if len(sub.Tasks) != 2 {
		t.Fatalf("expected 2 tasks in Phase 2, got %d", len(sub.Tasks))
	}
	for _, task := range sub.Tasks {
		if task.Category != "Phase 2" {
			t.Errorf("stray task %q in sub-plan", task.Name)
		}
	}
}

func TestSummary(t *testing.T) {
	p, err := FromRows(sampleRows())
	if err != nil {
		t.Fatal(err)
	}
	s := p.Summary()
	if s.Tasks != 4 || s.Categories != 2 {
		t.Errorf("unexpected counts: %+v", s)
	}
	if !s.Start.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Start = %v", s.Start)
	}
	if !s.End.Equal(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("End = %v", s.End)
	}
	if s.SpanDays != 89 {
		t.Errorf("SpanDays = %d, want 89", s.SpanDays)
	}
	// Durations: 14 + 17 + 28 + 31 = 90 days over 4 tasks.
	if s.AvgDays != 22.5 {
		t.Errorf("AvgDays = %v, want 22.5", s.AvgDays)
	}
}

func TestSpanDaysSingleDay(t *testing.T) {
	rows := [][]string{
		{"category", "task", "start", "end"},
		{"A", "x", "2025-01-01", "2025-01-01"},
	}
	p, err := FromRows(rows)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.SpanDays(); got != 1 {
		t.Errorf("SpanDays = %d, want 1", got)
	}
}

func TestCategorySummaries(t *testing.T) {
	p, err := FromRows(sampleRows())
	if err != nil {
		t.Fatal(err)
	}
	sums := p.CategorySummaries()
	if len(sums) != 2 {
		t.Fatalf("expected 2 category summaries, got %d", len(sums))
	}
	if sums[0].Category != "Phase 1" || sums[0].Tasks != 2 {
		t.Errorf("unexpected first summary: %+v", sums[0])
	}
	if sums[1].Category != "Phase 2" || sums[1].Tasks != 2 {
		t.Errorf("unexpected second summary: %+v", sums[1])
	}
}
