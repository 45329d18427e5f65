// Package server exposes the web UI: a spreadsheet upload form, the
// rendered chart page, and the export downloads.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/didip/tollbooth"
	"github.com/didip/tollbooth/limiter"
	"github.com/didip/tollbooth_gin"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html.tmpl
var templates embed.FS

// Config holds the web server settings.
type Config struct {
	Addr           string
	MaxUploadBytes int64
	RateLimit      float64
	RateLimitTTL   time.Duration
	ChartTitle     string
	ChartWidth     int
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = 10 << 20
	}
	if c.RateLimit <= 0 {
		c.RateLimit = 10
	}
	if c.RateLimitTTL <= 0 {
		c.RateLimitTTL = time.Hour
	}
	return c
}

// Server is the web application.
type Server struct {
	cfg    Config
	engine *gin.Engine
	tmpl   *template.Template
}

// New builds the server and its routes.
func New(cfg Config) *Server {
	cfg = cfg.withDefaults()

	s := &Server{
		cfg:  cfg,
		tmpl: template.Must(template.ParseFS(templates, "templates/*.html.tmpl")),
	}

	r := gin.Default()
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	rateLimiter := tollbooth.NewLimiter(cfg.RateLimit, &limiter.ExpirableOptions{
		DefaultExpirationTTL: cfg.RateLimitTTL,
	})
	r.Use(tollbooth_gin.LimitHandler(rateLimiter))

	// Cross Origin Resource Sharing (CORS)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	})

	r.Any("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.GET("/", s.getIndex)
	r.POST("/chart", s.postChart)
	r.POST("/export/:format", s.postExport)
	r.GET("/template.xlsx", s.getTemplateXLSX)
	r.GET("/template.csv", s.getTemplateCSV)

	s.engine = r
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the context is cancelled, then shuts down
// gracefully with a 5 second deadline.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
