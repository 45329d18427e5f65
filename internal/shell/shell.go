// Package shell provides the interactive ganttkit REPL.
package shell

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/sandrine-crypto/ganttkit/internal/chart"
	"github.com/sandrine-crypto/ganttkit/internal/dates"
	"github.com/sandrine-crypto/ganttkit/internal/export"
	"github.com/sandrine-crypto/ganttkit/internal/ingest"
	"github.com/sandrine-crypto/ganttkit/internal/schedule"
)

// Session manages an interactive ganttkit shell session.
type Session struct {
	Plan           *schedule.Plan
	File           string
	Title          string
	Width          int
	LastOutput     string
	CommandHistory []string
	HistoryFile    string
	StartTime      time.Time

	// KnownCommands is the list of top-level commands for completion.
	KnownCommands []string
}

// NewSession creates a new interactive session.
func NewSession() (*Session, error) {
	home, _ := os.UserHomeDir()
	histFile := filepath.Join(home, ".ganttkit", "shell_history")

	// Ensure parent dir exists
	os.MkdirAll(filepath.Dir(histFile), 0755)

	return &Session{
		Title:       chart.DefaultTitle,
		Width:       chart.DefaultWidth,
		HistoryFile: histFile,
		StartTime:   time.Now(),
		KnownCommands: []string{
			"load", "stats", "categories", "tasks", "export",
			"set", "help", "history", "exit", "quit",
		},
	}, nil
}

// Run starts the REPL loop. Blocks until 'exit' or Ctrl+D.
func (s *Session) Run(ctx context.Context) error {
	completer := readline.NewPrefixCompleter(s.buildCompleter()...)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "gantt> ",
		HistoryFile:     s.HistoryFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Println("ganttkit — Interactive Shell")
	fmt.Println("Type 'help' for commands, 'exit' to quit.")
	fmt.Println()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		s.CommandHistory = append(s.CommandHistory, line)

		if line == "exit" || line == "quit" {
			elapsed := time.Since(s.StartTime)
			fmt.Printf("\nSession ended. %d commands run in %s.\n",
				len(s.CommandHistory)-1, formatDuration(elapsed))
			return nil
		}

		output, err := s.Eval(ctx, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			continue
		}
		if output != "" {
			fmt.Print(output)
			if !strings.HasSuffix(output, "\n") {
				fmt.Println()
			}
		}
	}

	return nil
}

// Eval runs a single command line and returns its output.
func (s *Session) Eval(ctx context.Context, command string) (string, error) {
	args := strings.Fields(command)
	if len(args) == 0 {
		return "", nil
	}

	var output string
	var err error
	switch args[0] {
	case "help":
		output = s.helpText()
	case "history":
		var b strings.Builder
		for i, cmd := range s.CommandHistory {
			fmt.Fprintf(&b, "  %d  %s\n", i+1, cmd)
		}
		output = b.String()
	case "load":
		output, err = s.load(args[1:])
	case "stats":
		output, err = s.stats()
	case "categories":
		output, err = s.categories()
	case "tasks":
		output, err = s.tasks(args[1:])
	case "export":
		output, err = s.export(args[1:])
	case "set":
		output, err = s.set(args[1:])
	default:
		err = fmt.Errorf("unknown command %q — type 'help' for the command list", args[0])
	}

	if err == nil {
		s.LastOutput = output
	}
	return output, err
}

func (s *Session) load(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: load <file.xlsx|file.csv>")
	}
	plan, err := ingest.LoadFile(args[0])
	if err != nil {
		return "", err
	}
	s.Plan = plan
	s.File = args[0]
	return fmt.Sprintf("Loaded %s: %d tasks, %d categories.",
		filepath.Base(args[0]), len(plan.Tasks), len(plan.Categories())), nil
}

func (s *Session) requirePlan() (*schedule.Plan, error) {
	if s.Plan == nil {
		return nil, fmt.Errorf("no file loaded — run 'load <file>' first")
	}
	return s.Plan, nil
}

func (s *Session) stats() (string, error) {
	plan, err := s.requirePlan()
	if err != nil {
		return "", err
	}
	st := plan.Summary()

	var b strings.Builder
	fmt.Fprintf(&b, "File:        %s\n", filepath.Base(s.File))
	fmt.Fprintf(&b, "Tasks:       %d\n", st.Tasks)
	fmt.Fprintf(&b, "Categories:  %d\n", st.Categories)
	fmt.Fprintf(&b, "Avg length:  %.0f days\n", st.AvgDays)
	fmt.Fprintf(&b, "Span:        %s → %s (%d days)\n",
		dates.Format(st.Start), dates.Format(st.End), st.SpanDays)
	return b.String(), nil
}

func (s *Session) categories() (string, error) {
	plan, err := s.requirePlan()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, cs := range plan.CategorySummaries() {
		fmt.Fprintf(&b, "  %-30s %3d task(s), avg %.0f days\n", cs.Category, cs.Tasks, cs.AvgDays)
	}
	return b.String(), nil
}

func (s *Session) tasks(args []string) (string, error) {
	plan, err := s.requirePlan()
	if err != nil {
		return "", err
	}
	if len(args) > 0 {
		category := strings.Join(args, " ")
		sub := plan.ByCategory(category)
		if len(sub.Tasks) == 0 {
			return "", fmt.Errorf("no tasks in category %q", category)
		}
		plan = sub
	}
	var b strings.Builder
	for _, t := range plan.Tasks {
		fmt.Fprintf(&b, "  %-20s %-35s %s → %s (%dj)\n",
			t.Category, t.Name, dates.Format(t.Start), dates.Format(t.End), t.Days())
	}
	return b.String(), nil
}

func (s *Session) export(args []string) (string, error) {
	plan, err := s.requirePlan()
	if err != nil {
		return "", err
	}
	if len(args) < 1 || len(args) > 2 {
		return "", fmt.Errorf("usage: export <csv|svg|html> [dir]")
	}
	dir := "."
	if len(args) == 2 {
		dir = args[1]
	}
	res, err := export.Write(plan, args[0], dir, chart.Options{Title: s.Title, Width: s.Width}, time.Now())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Wrote %s (%d bytes).", res.Path, res.Bytes), nil
}

func (s *Session) set(args []string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("usage: set title <text> | set width <pixels>")
	}
	switch args[0] {
	case "title":
		s.Title = strings.Join(args[1:], " ")
		return fmt.Sprintf("Chart title: %s", s.Title), nil
	case "width":
		w, err := strconv.Atoi(args[1])
		if err != nil || w < 400 {
			return "", fmt.Errorf("width must be a number of at least 400")
		}
		s.Width = w
		return fmt.Sprintf("Chart width: %d", s.Width), nil
	default:
		return "", fmt.Errorf("unknown setting %q — use 'title' or 'width'", args[0])
	}
}

// Complete returns tab-completion candidates for the given input.
func (s *Session) Complete(input string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return s.KnownCommands
	}

	parts := strings.Fields(input)
	if len(parts) == 0 {
		return s.KnownCommands
	}

	if len(parts) == 1 && !strings.HasSuffix(input, " ") {
		prefix := parts[0]
		var matches []string
		for _, cmd := range s.KnownCommands {
			if strings.HasPrefix(cmd, prefix) {
				matches = append(matches, cmd)
			}
		}
		sort.Strings(matches)
		return matches
	}

	parent := parts[0]
	subcommands := s.subcommandsFor(parent)
	if len(parts) == 2 && !strings.HasSuffix(input, " ") {
		prefix := parts[1]
		var matches []string
		for _, sub := range subcommands {
			if strings.HasPrefix(sub, prefix) {
				matches = append(matches, sub)
			}
		}
		return matches
	}

	return nil
}

func (s *Session) subcommandsFor(parent string) []string {
	subs := map[string][]string{
		"export": {"csv", "svg", "html"},
		"set":    {"title", "width"},
	}
	return subs[parent]
}

func (s *Session) helpText() string {
	return `Available commands:

  load <file>         — load an Excel or CSV project file
  stats               — show plan statistics
  categories          — list categories with task counts
  tasks [category]    — list tasks, optionally for one category
  export <format> [dir] — write csv, svg, or html export
  set title <text>    — set the chart title
  set width <pixels>  — set the chart width

Shell commands:
  help       — show this help
  history    — show command history
  exit       — exit the shell
`
}

func (s *Session) buildCompleter() []readline.PrefixCompleterInterface {
	var items []readline.PrefixCompleterInterface
	for _, cmd := range s.KnownCommands {
		subs := s.subcommandsFor(cmd)
		if len(subs) > 0 {
			var subItems []readline.PrefixCompleterInterface
			for _, sub := range subs {
				subItems = append(subItems, readline.PcItem(sub))
			}
			items = append(items, readline.PcItem(cmd, subItems...))
		} else {
			items = append(items, readline.PcItem(cmd))
		}
	}
	return items
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", m, s)
}
