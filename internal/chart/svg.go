// Package chart renders a schedule.Plan as an SVG Gantt chart.
package chart

import (
	"fmt"
	"strings"

	"github.com/sandrine-crypto/ganttkit/internal/dates"
	"github.com/sandrine-crypto/ganttkit/internal/schedule"
)

// Layout constants. The left margin leaves room for category and task
// labels; a row is one bar plus its spacing.
const (
	marginLeft   = 280
	marginRight  = 40
	marginTop    = 80
	marginBottom = 60
	barHeight    = 28
	barSpacing   = 8
	rowHeight    = barHeight + barSpacing

	// DefaultWidth is the full canvas width when none is configured.
	DefaultWidth = 1200

	// DefaultTitle is the chart title when none is configured.
	DefaultTitle = "Diagramme de Gantt"
)

// palette holds the category colours, assigned in first-seen order and
// cycled when there are more categories than colours.
var palette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
	"#6b6ecf", "#b5cf6b", "#d6616b", "#ce6dbd", "#de9ed6",
}

// Options configures a render.
type Options struct {
	Title string
	Width int
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	return o
}

// ColorMap assigns a palette colour to each category of the plan.
func ColorMap(p *schedule.Plan) map[string]string {
	colors := make(map[string]string)
	for i, cat := range p.Categories() {
		colors[cat] = palette[i%len(palette)]
	}
	return colors
}

// RenderSVG draws the whole plan on one canvas: title, period
// subtitle, date grid, one bar row per task, and a category legend.
func RenderSVG(p *schedule.Plan, opts Options) string {
	opts = opts.withDefaults()

	if len(p.Tasks) == 0 {
		return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="400" height="60"><text x="20" y="35" font-family="sans-serif">%s</text></svg>`,
			escape("Aucune donnée"))
	}

	totalWidth := opts.Width
	chartWidth := totalWidth - marginLeft - marginRight
	chartHeight := len(p.Tasks) * rowHeight
	totalHeight := marginTop + chartHeight + marginBottom

	minDate := p.Start()
	maxDate := p.End()
	dateRange := p.SpanDays()

	colors := ColorMap(p)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		totalWidth, totalHeight, totalWidth, totalHeight)

	b.WriteString(`<defs>
<style>
.title { font: bold 20px sans-serif; fill: #1f4e79; }
.axis-label { font: 11px sans-serif; fill: #333; }
.task-label { font: 12px sans-serif; fill: #333; }
.category-label { font: bold 11px sans-serif; fill: #666; }
.grid-line { stroke: #e0e0e0; stroke-width: 1; }
.bar { rx: 4; ry: 4; }
.bar-text { font: 10px sans-serif; fill: white; }
.legend-text { font: 11px sans-serif; fill: #333; }
</style>
</defs>
`)

	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="white"/>`+"\n", totalWidth, totalHeight)

	fmt.Fprintf(&b, `<text x="%d" y="35" text-anchor="middle" class="title">%s</text>`+"\n",
		totalWidth/2, escape(opts.Title))
	fmt.Fprintf(&b, `<text x="%d" y="55" text-anchor="middle" class="axis-label">%s - %s</text>`+"\n",
		totalWidth/2, dates.FormatDisplay(minDate), dates.FormatDisplay(maxDate))

	// Vertical grid with date labels.
	gridLines := clamp(dateRange/30, 4, 12)
	for i := 0; i <= gridLines; i++ {
		x := float64(marginLeft) + float64(i)/float64(gridLines)*float64(chartWidth)
		fmt.Fprintf(&b, `<line x1="%.1f" y1="%d" x2="%.1f" y2="%d" class="grid-line"/>`+"\n",
			x, marginTop, x, marginTop+chartHeight)

		gridDate := minDate.AddDate(0, 0, i*dateRange/gridLines)
		fmt.Fprintf(&b, `<text x="%.1f" y="%d" text-anchor="middle" class="axis-label">%s</text>`+"\n",
			x, marginTop+chartHeight+20, gridDate.Format("02/01/06"))
	}

	// Rows: grid line, labels, bar.
	currentCategory := ""
	first := true
	for idx, task := range p.Tasks {
		y := marginTop + idx*rowHeight

		fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`+"\n",
			marginLeft, y+rowHeight, totalWidth-marginRight, y+rowHeight)

		if first || task.Category != currentCategory {
			currentCategory = task.Category
			first = false
			fmt.Fprintf(&b, `<text x="5" y="%d" class="category-label">%s</text>`+"\n",
				y+barHeight/2+4, escape(truncate(task.Category, 25)))
		}

		fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="end" class="task-label">%s</text>`+"\n",
			marginLeft-10, y+barHeight/2+4, escape(truncate(task.Name, 30)))

		startOffset := int(task.Start.Sub(minDate).Hours() / 24)
		duration := task.Days()

		barX := float64(marginLeft) + float64(startOffset)/float64(dateRange)*float64(chartWidth)
		barWidth := float64(duration) / float64(dateRange) * float64(chartWidth)
		if barWidth < 4 {
			barWidth = 4
		}

		fmt.Fprintf(&b, `<rect x="%.1f" y="%d" width="%.1f" height="%d" fill="%s" class="bar">`,
			barX, y+2, barWidth, barHeight-4, colors[task.Category])
		fmt.Fprintf(&b, `<title>%s | %s | %s → %s (%dj)</title>`,
			escape(task.Name), escape(task.Category),
			dates.FormatDisplay(task.Start), dates.FormatDisplay(task.End), duration)
		b.WriteString("</rect>\n")

		if barWidth > 40 {
			fmt.Fprintf(&b, `<text x="%.1f" y="%d" text-anchor="middle" class="bar-text">%dj</text>`+"\n",
				barX+barWidth/2, y+barHeight/2+3, duration)
		}
	}

	// Legend, four entries per row. Entries that would fall off the
	// canvas are skipped rather than growing it.
	legendY := marginTop + chartHeight + 40
	for i, cat := range p.Categories() {
		x := marginLeft + (i%4)*280
		y := legendY + (i/4)*20
		if y >= totalHeight-10 {
			continue
		}
		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="12" height="12" fill="%s" rx="2"/>`+"\n",
			x, y, colors[cat])
		fmt.Fprintf(&b, `<text x="%d" y="%d" class="legend-text">%s</text>`+"\n",
			x+18, y+10, escape(truncate(cat, 35)))
	}

	b.WriteString("</svg>")
	return b.String()
}

// RenderByCategory renders one chart per category, keyed and ordered
// by the plan's category order. Each chart is titled with its category.
func RenderByCategory(p *schedule.Plan, opts Options) map[string]string {
	out := make(map[string]string)
	for _, cat := range p.Categories() {
		sub := p.ByCategory(cat)
		subOpts := opts
		subOpts.Title = cat
		out[cat] = RenderSVG(sub, subOpts)
	}
	return out
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func escape(s string) string {
	return escaper.Replace(s)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
