package benchmarks

import (
	"fmt"
	"testing"
	"time"

	"github.com/sandrine-crypto/ganttkit/internal/chart"
	"github.com/sandrine-crypto/ganttkit/internal/dates"
	"github.com/sandrine-crypto/ganttkit/internal/export"
	"github.com/sandrine-crypto/ganttkit/internal/report"
	"github.com/sandrine-crypto/ganttkit/internal/schedule"
)

func samplePlan(tasks int) *schedule.Plan {
	rows := [][]string{{"catégorie", "tâche", "début", "fin"}}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < tasks; i++ {
		start := base.AddDate(0, 0, i*3)
		end := start.AddDate(0, 0, 5+i%10)
		rows = append(rows, []string{
			fmt.Sprintf("Phase %d", i%6),
			fmt.Sprintf("Tâche %d", i),
			start.Format("2006-01-02"),
			end.Format("2006-01-02"),
		})
	}
	p, err := schedule.FromRows(rows)
	if err != nil {
		panic(err)
	}
	return p
}

// --- Normalization benchmarks ---

func BenchmarkFromRows(b *testing.B) {
	rows := [][]string{{"catégorie", "tâche", "début", "fin"}}
	for i := 0; i < 200; i++ {
		rows = append(rows, []string{"Phase", fmt.Sprintf("T%d", i), "01/03/2024", "15/03/2024"})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := schedule.FromRows(rows); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDateParse(b *testing.B) {
	inputs := []string{"2024-03-01", "01/03/2024", "01.03.2024", "45352"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, in := range inputs {
			dates.ParseCell(in)
		}
	}
}

// --- Rendering benchmarks ---

func BenchmarkRenderSVG(b *testing.B) {
	p := samplePlan(50)
	opts := chart.Options{}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		chart.RenderSVG(p, opts)
	}
}

func BenchmarkRenderSVGLarge(b *testing.B) {
	p := samplePlan(500)
	opts := chart.Options{}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		chart.RenderSVG(p, opts)
	}
}

func BenchmarkReportGenerate(b *testing.B) {
	p := samplePlan(50)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := report.Generate(p, chart.DefaultWidth, now); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExportCSV(b *testing.B) {
	p := samplePlan(200)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := export.CSV(p); err != nil {
			b.Fatal(err)
		}
	}
}
