// cmd/weeklog/main.go
//
// Entry point for the weeklog generator. Run it from the project root and it
// writes next week's English and Chinese pages into weeklog/.
//
// Flow:
// 1. Resolve the project directory and load weeklog/weeklog.yaml if present
// 2. Open the logbook (file logging only when log_file is configured)
// 3. Generate every configured page for the upcoming Monday

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/weeklog/internal/config"
	"github.com/kingrea/weeklog/internal/generator"
	"github.com/kingrea/weeklog/internal/logbook"
	"github.com/kingrea/weeklog/internal/tui"
	"github.com/kingrea/weeklog/internal/week"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one generator invocation and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("weeklog", flag.ContinueOnError)
	flags.SetOutput(stderr)
	projectDir := flags.String("root", "", "path to the project directory (defaults to cwd)")
	refDate := flags.String("date", "", "reference date YYYY-MM-DD (defaults to today)")
	configFile := flags.String("config", "", "path to a weeklog.yaml overriding the defaults")
	confirm := flags.Bool("confirm", false, "ask before overwriting pages that already exist")
	dryRun := flags.Bool("dry-run", false, "render pages without writing them")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	project := *projectDir
	if project == "" {
		var err error
		project, err = os.Getwd()
		if err != nil {
			return fail(stderr, "determine working directory: %v", err)
		}
	}
	absoluteProject, err := filepath.Abs(project)
	if err != nil {
		return fail(stderr, "resolve project dir: %v", err)
	}

	cfg, err := config.NewConfig(absoluteProject, *configFile)
	if err != nil {
		return fail(stderr, "load config: %v", err)
	}
	logPath := cfg.LogPath()
	if *dryRun {
		logPath = ""
	}
	book, err := logbook.New(logPath, logbook.WithOutput(stdout, stderr))
	if err != nil {
		return fail(stderr, "open log: %v", err)
	}

	opts := []generator.Option{generator.WithDryRun(*dryRun)}
	if strings.TrimSpace(*refDate) != "" {
		ref, err := week.Parse(*refDate)
		if err != nil {
			return fail(stderr, "invalid -date: %v", err)
		}
		opts = append(opts, generator.WithClock(func() time.Time { return ref }))
	}
	if *confirm {
		opts = append(opts, generator.WithConfirm(func(paths []string) (bool, error) {
			return tui.Confirm(paths, tea.WithOutput(stdout))
		}))
	}

	if _, err := generator.New(cfg, book, opts...).Run(); err != nil {
		book.Error("%v", err)
		return 1
	}
	return 0
}

func fail(stderr io.Writer, format string, args ...any) int {
	fmt.Fprintf(stderr, format+"\n", args...)
	return 1
}
