// Package schedule holds the canonical project plan model and the
// normalization that maps arbitrary spreadsheet columns onto it.
package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/sandrine-crypto/ganttkit/internal/dates"
)

// Task is one row of a normalized plan. End is inclusive.
type Task struct {
	Category string    `json:"category"`
	Name     string    `json:"task"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// Days returns the inclusive duration of the task in days.
func (t Task) Days() int {
	return int(t.End.Sub(t.Start).Hours()/24) + 1
}

// Plan is an ordered set of tasks, sorted by category then start date.
type Plan struct {
	Tasks []Task `json:"tasks"`
}

// Columns are the canonical column names, in export order.
var Columns = []string{"category", "task", "start", "end"}

// aliases maps each canonical column to the header names users write.
// Matching is case-insensitive and diacritic-insensitive, so the
// accented French forms also cover their plain spellings.
var aliases = map[string][]string{
	"category": {"catégorie", "categorie", "category", "cat", "groupe", "group"},
	"task":     {"tâche", "tache", "task", "nom", "name", "activité", "activite"},
	"start":    {"début", "debut", "start", "date_debut", "date début", "start_date"},
	"end":      {"fin", "end", "date_fin", "date fin", "end_date", "échéance"},
}

var headerFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldHeader normalizes a header cell for alias comparison: trimmed,
// lower-cased, diacritics removed.
func FoldHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	folded, _, err := transform.String(headerFolder, s)
	if err != nil {
		return s
	}
	return folded
}

// ColumnMap records which spreadsheet column feeds each canonical one.
type ColumnMap struct {
	Category int
	Task     int
	Start    int
	End      int
}

// MapColumns matches a header row against the known aliases. If any
// canonical column cannot be found the error names what is missing and
// what the file actually contains.
func MapColumns(headers []string) (ColumnMap, error) {
	folded := make(map[string]int, len(headers))
	for i, h := range headers {
		key := FoldHeader(h)
		if _, seen := folded[key]; !seen {
			folded[key] = i
		}
	}

	find := func(canonical string) int {
		for _, alias := range aliases[canonical] {
			if i, ok := folded[FoldHeader(alias)]; ok {
				return i
			}
		}
		return -1
	}

	cm := ColumnMap{
		Category: find("category"),
		Task:     find("task"),
		Start:    find("start"),
		End:      find("end"),
	}

	var missing []string
	for _, canonical := range Columns {
		switch canonical {
		case "category":
			if cm.Category < 0 {
				missing = append(missing, canonical)
			}
		case "task":
			if cm.Task < 0 {
				missing = append(missing, canonical)
			}
		case "start":
			if cm.Start < 0 {
				missing = append(missing, canonical)
			}
		case "end":
			if cm.End < 0 {
				missing = append(missing, canonical)
			}
		}
	}
	if len(missing) > 0 {
		return cm, fmt.Errorf("missing required columns: %s — available columns: %s",
			strings.Join(missing, ", "), strings.Join(nonEmpty(headers), ", "))
	}

	return cm, nil
}

func nonEmpty(headers []string) []string {
	var out []string
	for _, h := range headers {
		if strings.TrimSpace(h) != "" {
			out = append(out, strings.TrimSpace(h))
		}
	}
	if len(out) == 0 {
		out = []string{"(none)"}
	}
	return out
}

// FromRows builds a plan from text rows, typically CSV. The first row
// is the header. Rows with an empty task name or an unparseable date
// are dropped; a plan with zero surviving rows is an error.
func FromRows(rows [][]string) (*Plan, error) {
	return fromRows(rows, dates.Parse)
}

// FromCells builds a plan from spreadsheet cell rows. Unlike FromRows
// it also accepts Excel serial numbers and datetime cells in the date
// columns.
func FromCells(rows [][]string) (*Plan, error) {
	return fromRows(rows, dates.ParseCell)
}

func fromRows(rows [][]string, parse func(string) (time.Time, bool)) (*Plan, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("the file is empty — expected a header row with columns: %s", strings.Join(Columns, ", "))
	}

	cm, err := MapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	p := &Plan{}
	for _, row := range rows[1:] {
		name := strings.TrimSpace(cell(row, cm.Task))
		if name == "" {
			continue
		}
		start, ok := parse(cell(row, cm.Start))
		if !ok {
			continue
		}
		end, ok := parse(cell(row, cm.End))
		if !ok {
			continue
		}
		if end.Before(start) {
			start, end = end, start
		}
		p.Tasks = append(p.Tasks, Task{
			Category: strings.TrimSpace(cell(row, cm.Category)),
			Name:     name,
			Start:    start,
			End:      end,
		})
	}

	if len(p.Tasks) == 0 {
		return nil, fmt.Errorf("no valid rows found after filtering — check that start and end dates use a supported format")
	}

	p.sort()
	return p, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func (p *Plan) sort() {
	sort.SliceStable(p.Tasks, func(i, j int) bool {
		if p.Tasks[i].Category != p.Tasks[j].Category {
			return p.Tasks[i].Category < p.Tasks[j].Category
		}
		return p.Tasks[i].Start.Before(p.Tasks[j].Start)
	})
}

// Categories returns the distinct categories in plan order.
func (p *Plan) Categories() []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range p.Tasks {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out
}

// ByCategory returns the sub-plan for one category. Task order is
// preserved.
func (p *Plan) ByCategory(category string) *Plan {
	sub := &Plan{}
	for _, t := range p.Tasks {
		if t.Category == category {
			sub.Tasks = append(sub.Tasks, t)
		}
	}
	return sub
}

// Start returns the earliest start date in the plan.
func (p *Plan) Start() time.Time {
	var min time.Time
	for _, t := range p.Tasks {
		if min.IsZero() || t.Start.Before(min) {
			min = t.Start
		}
	}
	return min
}

// End returns the latest end date in the plan.
func (p *Plan) End() time.Time {
	var max time.Time
	for _, t := range p.Tasks {
		if t.End.After(max) {
			max = t.End
		}
	}
	return max
}

// SpanDays returns the number of days between the earliest start and
// the latest end. A plan where every task falls on one day spans one
// day.
func (p *Plan) SpanDays() int {
	if len(p.Tasks) == 0 {
		return 0
	}
	span := int(p.End().Sub(p.Start()).Hours() / 24)
	if span <= 0 {
		span = 1
	}
	return span
}

// Stats summarizes a whole plan.
type Stats struct {
	Tasks      int       `json:"tasks"`
	Categories int       `json:"categories"`
	AvgDays    float64   `json:"avgDays"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	SpanDays   int       `json:"spanDays"`
}

// CategoryStats summarizes one category of a plan.
type CategoryStats struct {
	Category string    `json:"category"`
	Tasks    int       `json:"tasks"`
	AvgDays  float64   `json:"avgDays"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// Summary computes plan-wide statistics.
func (p *Plan) Summary() Stats {
	s := Stats{
		Tasks:      len(p.Tasks),
		Categories: len(p.Categories()),
	}
	if s.Tasks == 0 {
		return s
	}
	total := 0
	for _, t := range p.Tasks {
		total += t.Days()
	}
	s.AvgDays = float64(total) / float64(s.Tasks)
	s.Start = p.Start()
	s.End = p.End()
	s.SpanDays = p.SpanDays()
	return s
}

// CategorySummaries computes per-category statistics in plan order.
func (p *Plan) CategorySummaries() []CategoryStats {
	var out []CategoryStats
	for _, cat := range p.Categories() {
		sub := p.ByCategory(cat)
		total := 0
		for _, t := range sub.Tasks {
			total += t.Days()
		}
		out = append(out, CategoryStats{
			Category: cat,
			Tasks:    len(sub.Tasks),
			AvgDays:  float64(total) / float64(len(sub.Tasks)),
			Start:    sub.Start(),
			End:      sub.End(),
		})
	}
	return out
}
