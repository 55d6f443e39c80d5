package logbook

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Level represents the severity of a log entry.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Logbook prints run progress to the console and, when a path is set,
// persists the same entries to a simple text file.
type Logbook struct {
	path   string
	out    io.Writer
	errOut io.Writer
	now    func() time.Time
	tags   map[Level]lipgloss.Style
	mu     sync.Mutex
}

// Option customizes a Logbook during construction.
type Option func(*Logbook)

// WithOutput overrides the console writers. INFO entries go to out, WARN and
// ERROR entries go to errOut. Either may be nil to silence that stream.
func WithOutput(out, errOut io.Writer) Option {
	return func(l *Logbook) {
		l.out = out
		l.errOut = errOut
	}
}

// WithClock overrides the clock used for file timestamps.
func WithClock(clock func() time.Time) Option {
	return func(l *Logbook) {
		l.now = clock
	}
}

// New creates a logbook that writes to the provided path. An empty path
// keeps the logbook console-only.
func New(path string, opts ...Option) (*Logbook, error) {
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	l := &Logbook{
		path:   path,
		out:    os.Stdout,
		errOut: os.Stderr,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.tags = levelTags(l.errOut)
	return l, nil
}

// levelTags styles the warning prefixes for the error stream. The renderer
// drops colour when w is not a terminal.
func levelTags(w io.Writer) map[Level]lipgloss.Style {
	if w == nil {
		w = io.Discard
	}
	r := lipgloss.NewRenderer(w)
	return map[Level]lipgloss.Style{
		LevelWarn:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5A623")),
		LevelError: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
	}
}

// Path returns the file backing this logbook.
func (l *Logbook) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Append writes a single entry to the console and the logbook file.
func (l *Logbook) Append(level Level, message string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	message = strings.TrimSpace(message)
	l.writeConsole(level, message)
	if l.path == "" {
		return
	}
	line := fmt.Sprintf("%s %-5s %s\n",
		l.now().UTC().Format(time.RFC3339),
		string(level),
		message,
	)
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer file.Close()
	_, _ = file.WriteString(line)
}

func (l *Logbook) writeConsole(level Level, message string) {
	if level == LevelInfo {
		if l.out != nil {
			fmt.Fprintln(l.out, message)
		}
		return
	}
	if l.errOut == nil {
		return
	}
	tag := string(level)
	if style, ok := l.tags[level]; ok {
		tag = style.Render(tag)
	}
	fmt.Fprintf(l.errOut, "%s %s\n", tag, message)
}

// Tail returns up to maxLines of the most recent log entries together with
// the total number of entries in the file.
func (l *Logbook) Tail(maxLines int) ([]string, int) {
	if l == nil || l.path == "" || maxLines <= 0 {
		return nil, 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	file, err := os.Open(l.path)
	if err != nil {
		return nil, 0
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	total := len(lines)
	if total == 0 {
		return nil, 0
	}
	if total > maxLines {
		lines = lines[total-maxLines:]
	}
	return lines, total
}

// Info appends an informational entry.
func (l *Logbook) Info(format string, args ...any) {
	l.Append(LevelInfo, fmt.Sprintf(format, args...))
}

// Warn appends a warning entry.
func (l *Logbook) Warn(format string, args ...any) {
	l.Append(LevelWarn, fmt.Sprintf(format, args...))
}

// Error appends an error entry.
func (l *Logbook) Error(format string, args ...any) {
	l.Append(LevelError, fmt.Sprintf(format, args...))
}
