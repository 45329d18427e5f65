package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcherProcessesNewSpreadsheet(t *testing.T) {
	dir := t.TempDir()

	var handled atomic.Int32
	w, err := New(Config{
		Directories: []string{dir},
		Debounce:    50,
	}, func(path string) error {
		handled.Add(1)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)

	content := "category,task,start,end\nDev,Codage,2025-01-01,2025-01-31\n"
	if err := os.WriteFile(filepath.Join(dir, "plan.csv"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for handled.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("handler was not invoked for new spreadsheet")
		case <-time.After(20 * time.Millisecond):
		}
	}

	cancel()
	<-done

	events := w.Events()
	if len(events) == 0 {
		t.Fatal("expected at least one recorded event")
	}
	if events[0].Status != "processed" {
		t.Errorf("event status = %q", events[0].Status)
	}
}

func TestWatcherIgnoresUnsupportedFiles(t *testing.T) {
	dir := t.TempDir()

	var handled atomic.Int32
	w, err := New(Config{Directories: []string{dir}, Debounce: 30}, func(path string) error {
		handled.Add(1)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()
	time.Sleep(100 * time.Millisecond)

	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644)
	time.Sleep(300 * time.Millisecond)

	if handled.Load() != 0 {
		t.Error("handler should not fire for unsupported files")
	}

	cancel()
	<-done
}

func TestWatcherRecordsHandlerErrors(t *testing.T) {
	dir := t.TempDir()

	w, err := New(Config{Directories: []string{dir}, Debounce: 30}, func(path string) error {
		return os.ErrPermission
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()
	time.Sleep(100 * time.Millisecond)

	os.WriteFile(filepath.Join(dir, "bad.csv"), []byte("x"), 0644)

	deadline := time.After(3 * time.Second)
	for len(w.Events()) == 0 {
		select {
		case <-deadline:
			t.Fatal("no event recorded")
		case <-time.After(20 * time.Millisecond):
		}
	}

	cancel()
	<-done

	if got := w.Events()[0].Status; got != "error" {
		t.Errorf("event status = %q, want error", got)
	}
}

func TestWatcherRejectsMissingDirectory(t *testing.T) {
	w, err := New(Config{Directories: []string{"/nonexistent/dir"}}, func(string) error { return nil })
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := w.Start(ctx); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
