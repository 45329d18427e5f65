// Package watch monitors directories for project spreadsheets and
// re-renders their charts when files are created or modified.
package watch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sandrine-crypto/ganttkit/internal/ingest"
)

// Config holds the watcher configuration.
type Config struct {
	Directories []string `json:"directories"`
	OutputDir   string   `json:"outputDir"`
	Formats     []string `json:"formats"`
	Recursive   bool     `json:"recursive"`
	Debounce    int      `json:"debounceMs"` // milliseconds to wait before processing
}

// Event records one processed file event.
type Event struct {
	Time      time.Time `json:"time"`
	Path      string    `json:"path"`
	Operation string    `json:"operation"` // "create", "modify"
	Status    string    `json:"status"`    // "processed", "error", "skipped"
	Error     string    `json:"error,omitempty"`
}

// Handler is called for each debounced spreadsheet event.
type Handler func(path string) error

// Watcher monitors directories and triggers renders.
type Watcher struct {
	Config  Config
	Logger  *log.Logger
	Handler Handler

	mu       sync.Mutex
	events   []Event
	watcher  *fsnotify.Watcher
	debounce map[string]*time.Timer
}

// New creates a Watcher with the given configuration.
func New(config Config, handler Handler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}

	if config.Debounce <= 0 {
		config.Debounce = 500
	}

	return &Watcher{
		Config:   config,
		Logger:   log.New(os.Stderr, "[watch] ", log.LstdFlags),
		Handler:  handler,
		watcher:  fsw,
		debounce: make(map[string]*time.Timer),
	}, nil
}

// Start begins watching the configured directories. It blocks until
// the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	defer w.watcher.Close()

	for _, dir := range w.Config.Directories {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("could not resolve %s: %w", dir, err)
		}
		if info, err := os.Stat(absDir); err != nil || !info.IsDir() {
			return fmt.Errorf("not a watchable directory: %s", dir)
		}

		if w.Config.Recursive {
			if err := w.addRecursive(absDir); err != nil {
				return err
			}
		} else {
			if err := w.watcher.Add(absDir); err != nil {
				return fmt.Errorf("could not watch %s: %w", absDir, err)
			}
		}
		w.Logger.Printf("watching %s", absDir)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.Printf("watch error: %v", err)
		}
	}
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() && !strings.HasPrefix(info.Name(), ".") {
			if err := w.watcher.Add(path); err != nil {
				return fmt.Errorf("could not watch %s: %w", path, err)
			}
		}
		return nil
	})
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	if !ingest.Supported(event.Name) {
		return
	}
	// Editors fire bursts of writes while saving; debounce per path.
	w.mu.Lock()
	if timer, ok := w.debounce[event.Name]; ok {
		timer.Stop()
	}
	op := "modify"
	if event.Op&fsnotify.Create != 0 {
		op = "create"
	}
	w.debounce[event.Name] = time.AfterFunc(time.Duration(w.Config.Debounce)*time.Millisecond, func() {
		w.process(event.Name, op)
	})
	w.mu.Unlock()
}

func (w *Watcher) process(path, op string) {
	e := Event{Time: time.Now(), Path: path, Operation: op, Status: "processed"}

	if err := w.Handler(path); err != nil {
		e.Status = "error"
		e.Error = err.Error()
		w.Logger.Printf("%s: %v", path, err)
	} else {
		w.Logger.Printf("rendered %s", path)
	}

	w.mu.Lock()
	w.events = append(w.events, e)
	w.mu.Unlock()
}

// Events returns a copy of the processed event log.
func (w *Watcher) Events() []Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Event(nil), w.events...)
}
