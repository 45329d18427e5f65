// Package batch runs a set of render jobs described by a YAML file or
// collected from a glob pattern.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sandrine-crypto/ganttkit/internal/chart"
	"github.com/sandrine-crypto/ganttkit/internal/export"
	"github.com/sandrine-crypto/ganttkit/internal/ingest"
)

// Job is one input spreadsheet and the artifacts to render from it.
type Job struct {
	ID      string   `yaml:"id" json:"id"`
	Input   string   `yaml:"input" json:"input"`
	Output  string   `yaml:"output,omitempty" json:"output,omitempty"`
	Title   string   `yaml:"title,omitempty" json:"title,omitempty"`
	Formats []string `yaml:"formats,omitempty" json:"formats,omitempty"`
}

// File is a complete batch definition.
type File struct {
	Name string `yaml:"name" json:"name"`
	Jobs []Job  `yaml:"jobs" json:"jobs"`
}

// Result holds the outcome of one job.
type Result struct {
	JobID     string           `json:"jobId"`
	Input     string           `json:"input"`
	Artifacts []*export.Result `json:"artifacts,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// DefaultFormats is rendered when a job names none.
var DefaultFormats = []string{"svg"}

// LoadFile reads and validates a batch YAML file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("batch file not found: %s — check that the path is correct", path)
		}
		return nil, fmt.Errorf("could not read batch file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses a batch definition from YAML bytes.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid batch YAML: %w", err)
	}
	if err := validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func validate(f *File) error {
	if f.Name == "" {
		return fmt.Errorf("batch file is missing a 'name' field")
	}
	if len(f.Jobs) == 0 {
		return fmt.Errorf("batch %q has no jobs defined", f.Name)
	}

	seen := make(map[string]bool)
	for i, job := range f.Jobs {
		if job.ID == "" {
			return fmt.Errorf("job %d is missing an 'id' field", i+1)
		}
		if seen[job.ID] {
			return fmt.Errorf("duplicate job id %q", job.ID)
		}
		seen[job.ID] = true
		if job.Input == "" {
			return fmt.Errorf("job %q is missing an 'input' field", job.ID)
		}
		for _, format := range job.Formats {
			switch format {
			case "csv", "svg", "html":
			default:
				return fmt.Errorf("job %q has unsupported format %q (supported: csv, svg, html)", job.ID, format)
			}
		}
	}
	return nil
}

// FromGlob builds a batch from a filename pattern, one job per
// matching spreadsheet.
func FromGlob(pattern, outDir string, formats []string) (*File, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	f := &File{Name: pattern}
	for _, m := range matches {
		if !ingest.Supported(m) {
			continue
		}
		f.Jobs = append(f.Jobs, Job{
			ID:      strings.TrimSuffix(filepath.Base(m), filepath.Ext(m)),
			Input:   m,
			Output:  outDir,
			Formats: formats,
		})
	}

	if len(f.Jobs) == 0 {
		return nil, fmt.Errorf("no spreadsheets match %q (looking for %s)", pattern, strings.Join(ingest.SupportedExtensions, ", "))
	}
	return f, nil
}

// Progress is called after each finished job.
type Progress func(res Result)

// Run executes every job in order. Job failures are collected, not
// fatal; the error only reports how many failed.
func Run(f *File, width int, now time.Time, onProgress Progress) ([]Result, error) {
	var results []Result
	failures := 0

	for _, job := range f.Jobs {
		res := runJob(job, width, now)
		if res.Error != "" {
			failures++
		}
		results = append(results, res)
		if onProgress != nil {
			onProgress(res)
		}
	}

	if failures > 0 {
		return results, fmt.Errorf("%d of %d jobs failed", failures, len(f.Jobs))
	}
	return results, nil
}

func runJob(job Job, width int, now time.Time) Result {
	res := Result{JobID: job.ID, Input: job.Input}

	plan, err := ingest.LoadFile(job.Input)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	outDir := job.Output
	if outDir == "" {
		outDir = filepath.Dir(job.Input)
	}

	title := job.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(job.Input), filepath.Ext(job.Input))
	}

	formats := job.Formats
	if len(formats) == 0 {
		formats = DefaultFormats
	}

	opts := chart.Options{Title: title, Width: width}
	for _, format := range formats {
		// Artifacts are named after the job so jobs sharing an output
		// directory do not overwrite each other.
		path := filepath.Join(outDir, job.ID+"."+format)
		artifact, err := export.WriteAs(plan, format, path, opts, now)
		if err != nil {
			res.Error = err.Error()
			return res
		}
		res.Artifacts = append(res.Artifacts, artifact)
	}
	return res
}
