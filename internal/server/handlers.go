package server

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sandrine-crypto/ganttkit/internal/chart"
	"github.com/sandrine-crypto/ganttkit/internal/export"
	"github.com/sandrine-crypto/ganttkit/internal/ingest"
	"github.com/sandrine-crypto/ganttkit/internal/schedule"
)

type indexPage struct {
	Error       string
	MaxUploadMB int64
}

// categoryView is one per-category section of the chart page.
type categoryView struct {
	Index    int
	Category string
	Tasks    int
	AvgDays  string
	SVG      template.HTML
}

type chartPage struct {
	Title      string
	Filename   string
	Tasks      int
	Categories int
	AvgDays    string
	SpanDays   int
	GlobalSVG  template.HTML
	ByCategory []categoryView
	Payload    string
}

func (s *Server) getIndex(c *gin.Context) {
	s.renderIndex(c, http.StatusOK, "")
}

func (s *Server) renderIndex(c *gin.Context, status int, errMsg string) {
	var b strings.Builder
	if err := s.tmpl.ExecuteTemplate(&b, "index.html.tmpl", indexPage{
		Error:       errMsg,
		MaxUploadMB: s.cfg.MaxUploadBytes >> 20,
	}); err != nil {
		c.String(http.StatusInternalServerError, "error executing template")
		return
	}
	c.Header("Content-Type", "text/html; charset=UTF-8")
	c.String(status, b.String())
}

// readUpload extracts and validates the uploaded spreadsheet.
func (s *Server) readUpload(c *gin.Context) (string, []byte, error) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		return "", nil, fmt.Errorf("no file uploaded — choose an Excel or CSV file")
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	if !ingest.Supported(name) {
		return "", nil, fmt.Errorf("unsupported file type %q — upload .xlsx, .xls, or .csv", filepath.Ext(name))
	}
	if header.Size > s.cfg.MaxUploadBytes {
		return "", nil, fmt.Errorf("file too large (%d MB max)", s.cfg.MaxUploadBytes>>20)
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return "", nil, fmt.Errorf("could not read upload: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return "", nil, fmt.Errorf("file too large (%d MB max)", s.cfg.MaxUploadBytes>>20)
	}
	return name, data, nil
}

func (s *Server) chartTitle(c *gin.Context) string {
	if title := strings.TrimSpace(c.PostForm("title")); title != "" {
		return title
	}
	if s.cfg.ChartTitle != "" {
		return s.cfg.ChartTitle
	}
	return chart.DefaultTitle
}

func (s *Server) postChart(c *gin.Context) {
	name, data, err := s.readUpload(c)
	if err != nil {
		s.renderIndex(c, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := ingest.LoadBytes(name, data)
	if err != nil {
		s.renderIndex(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.renderChart(c, plan, name, data)
}

func (s *Server) renderChart(c *gin.Context, plan *schedule.Plan, name string, data []byte) {
	title := s.chartTitle(c)
	opts := chart.Options{Title: title, Width: s.cfg.ChartWidth}
	stats := plan.Summary()

	page := chartPage{
		Title:      title,
		Filename:   name,
		Tasks:      stats.Tasks,
		Categories: stats.Categories,
		AvgDays:    fmt.Sprintf("%.0f", stats.AvgDays),
		SpanDays:   stats.SpanDays,
		GlobalSVG:  template.HTML(chart.RenderSVG(plan, opts)),
		// The upload rides along base64-encoded so the export buttons
		// can re-submit it without server-side storage.
		Payload: base64.StdEncoding.EncodeToString(data),
	}

	charts := chart.RenderByCategory(plan, opts)
	for i, cs := range plan.CategorySummaries() {
		page.ByCategory = append(page.ByCategory, categoryView{
			Index:    i,
			Category: cs.Category,
			Tasks:    cs.Tasks,
			AvgDays:  fmt.Sprintf("%.0f", cs.AvgDays),
			SVG:      template.HTML(charts[cs.Category]),
		})
	}

	var b strings.Builder
	if err := s.tmpl.ExecuteTemplate(&b, "chart.html.tmpl", page); err != nil {
		c.String(http.StatusInternalServerError, "error executing template")
		return
	}
	c.Header("Content-Type", "text/html; charset=UTF-8")
	c.String(http.StatusOK, b.String())
}

func (s *Server) postExport(c *gin.Context) {
	format := c.Param("format")
	switch format {
	case "csv", "svg", "html":
	default:
		c.String(http.StatusNotFound, "unknown export format %q", format)
		return
	}

	name := filepath.Base(c.PostForm("name"))
	data, err := base64.StdEncoding.DecodeString(c.PostForm("payload"))
	if err != nil || name == "" || name == "." || len(data) == 0 {
		c.String(http.StatusBadRequest, "missing or invalid export payload — upload the file again")
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		c.String(http.StatusRequestEntityTooLarge, "payload too large")
		return
	}

	plan, err := ingest.LoadBytes(name, data)
	if err != nil {
		c.String(http.StatusUnprocessableEntity, "%s", err.Error())
		return
	}

	now := time.Now()
	content, err := export.Render(plan, format, chart.Options{Title: s.chartTitle(c), Width: s.cfg.ChartWidth}, now)
	if err != nil {
		c.String(http.StatusInternalServerError, "%s", err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(format, now)))
	c.Data(http.StatusOK, exportContentType(format), []byte(content))
}

func exportContentType(format string) string {
	switch format {
	case "csv":
		return "text/csv; charset=utf-8"
	case "svg":
		return "image/svg+xml"
	default:
		return "text/html; charset=utf-8"
	}
}

func (s *Server) getTemplateXLSX(c *gin.Context) {
	data, err := export.TemplateXLSX()
	if err != nil {
		c.String(http.StatusInternalServerError, "could not build template")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="template_gantt.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (s *Server) getTemplateCSV(c *gin.Context) {
	content, err := export.TemplateCSV()
	if err != nil {
		c.String(http.StatusInternalServerError, "could not build template")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="template_gantt.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(content))
}
