// Package progress draws transient status lines on stderr while a
// render runs, keeping piped stdout clean. Drawing stays off when
// stderr is not a terminal or GANTT_NO_PROGRESS=1 is set; JSON runs
// pass quiet to turn it off explicitly.
package progress

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

const gaugeWidth = 24

// Bar tracks a fixed number of steps as a single line redrawn in
// place. Methods are safe to call from a render callback regardless
// of whether drawing is enabled.
type Bar struct {
	label   string
	total   int
	enabled bool

	mu      sync.Mutex
	current int
}

// New returns a bar for total steps. Quiet callers suppress drawing
// regardless of the terminal.
func New(label string, total int, quiet bool) *Bar {
	return &Bar{label: label, total: total, enabled: !quiet && wantProgress()}
}

// Increment advances the bar one step, capped at total, and redraws
// with status next to the counter.
func (b *Bar) Increment(status string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current < b.total {
		b.current++
	}
	if !b.enabled {
		return
	}
	filled := 0
	if b.total > 0 {
		filled = b.current * gaugeWidth / b.total
	}
	gauge := strings.Repeat("#", filled) + strings.Repeat("-", gaugeWidth-filled)
	fmt.Fprintf(os.Stderr, "\r\033[K%s [%s] %d/%d %s", b.label, gauge, b.current, b.total, status)
}

// Done reports how many steps have completed.
func (b *Bar) Done() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Finish clears the bar and leaves a one-line summary.
func (b *Bar) Finish(summary string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.enabled {
		return
	}
	fmt.Fprintf(os.Stderr, "\r\033[K✓ %s\n", summary)
}

// Spinner marks a step of unknown length.
type Spinner struct {
	label   string
	enabled bool

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewSpinner returns a spinner with the same quiet semantics as New.
func NewSpinner(label string, quiet bool) *Spinner {
	return &Spinner{label: label, enabled: !quiet && wantProgress()}
}

// Start begins the animation. It does nothing when drawing is off.
func (s *Spinner) Start() {
	if !s.enabled {
		return
	}
	s.stop = make(chan struct{})
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		frames := `|/-\`
		tick := time.NewTicker(120 * time.Millisecond)
		defer tick.Stop()
		for i := 0; ; i++ {
			select {
			case <-s.stop:
				return
			case <-tick.C:
				fmt.Fprintf(os.Stderr, "\r\033[K%c %s", frames[i%len(frames)], s.label)
			}
		}
	}()
}

// Stop ends the animation, waits for the last frame, and replaces the
// line with result.
func (s *Spinner) Stop(result string) {
	if !s.enabled {
		return
	}
	if s.stop != nil {
		close(s.stop)
		s.wg.Wait()
		s.stop = nil
	}
	fmt.Fprintf(os.Stderr, "\r\033[K✓ %s\n", result)
}

func wantProgress() bool {
	if os.Getenv("GANTT_NO_PROGRESS") == "1" {
		return false
	}
	stat, err := os.Stderr.Stat()
	return err == nil && stat.Mode()&os.ModeCharDevice != 0
}
