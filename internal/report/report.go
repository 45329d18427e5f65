// Package report builds the self-contained multi-page HTML report:
// a summary section with plan statistics followed by one chart
// section per category.
package report

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/sandrine-crypto/ganttkit/internal/chart"
	"github.com/sandrine-crypto/ganttkit/internal/dates"
	"github.com/sandrine-crypto/ganttkit/internal/schedule"
)

//go:embed templates/*.html.tmpl
var templates embed.FS

var reportTmpl = template.Must(template.ParseFS(templates, "templates/report.html.tmpl"))

// summaryRow is one line of the per-category table.
type summaryRow struct {
	Category string
	Tasks    int
	AvgDays  string
	Start    string
	End      string
}

// categorySection is one chart page of the report.
type categorySection struct {
	Index    int
	Category string
	Short    string
	Tasks    int
	AvgDays  string
	SVG      template.HTML
}

type reportData struct {
	Date       string
	Tasks      int
	Categories int
	AvgDays    string
	Start      string
	End        string
	Rows       []summaryRow
	Sections   []categorySection
}

// Generate renders the full HTML report for a plan. Per-category
// charts use the given width; now stamps the report date so tests can
// pin it.
func Generate(p *schedule.Plan, width int, now time.Time) (string, error) {
	stats := p.Summary()

	data := reportData{
		Date:       now.Format("2006-01-02"),
		Tasks:      stats.Tasks,
		Categories: stats.Categories,
		AvgDays:    fmt.Sprintf("%.0f", stats.AvgDays),
		Start:      dates.FormatDisplay(stats.Start),
		End:        dates.FormatDisplay(stats.End),
	}

	for _, cs := range p.CategorySummaries() {
		data.Rows = append(data.Rows, summaryRow{
			Category: cs.Category,
			Tasks:    cs.Tasks,
			AvgDays:  fmt.Sprintf("%.0f", cs.AvgDays),
			Start:    dates.FormatDisplay(cs.Start),
			End:      dates.FormatDisplay(cs.End),
		})
	}

	charts := chart.RenderByCategory(p, chart.Options{Width: width})
	for i, cat := range p.Categories() {
		sub := p.ByCategory(cat)
		subStats := sub.Summary()
		data.Sections = append(data.Sections, categorySection{
			Index:    i,
			Category: cat,
			Short:    shortLabel(cat, 20),
			Tasks:    subStats.Tasks,
			AvgDays:  fmt.Sprintf("%.0f", subStats.AvgDays),
			// The chart package escapes everything it interpolates, so
			// the SVG is safe to inline.
			SVG: template.HTML(charts[cat]),
		})
	}

	var b strings.Builder
	if err := reportTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("could not render report: %w", err)
	}
	return b.String(), nil
}

func shortLabel(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
