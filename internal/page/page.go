// Package page rewrites the week constant of an HTML template and writes the
// dated page next to it.
package page

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMarker identifies the line holding the configurable week constant.
const DefaultMarker = "const WEEK_START"

// Outcome describes what happened to a single page render.
type Outcome string

const (
	OutcomeWritten         Outcome = "written"
	OutcomeMissingTemplate Outcome = "missing-template"
	OutcomeMissingMarker   Outcome = "missing-marker"
	OutcomeSkipped         Outcome = "skipped"
)

// Logger receives progress and warning messages.
type Logger interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
}

// Result reports the outcome of rendering one template.
type Result struct {
	Template string
	Output   string
	Outcome  Outcome
	// Replaced counts the marker lines that were rewritten.
	Replaced int
	// Written is false for dry runs and missing templates.
	Written bool
}

// Renderer rewrites the marker line of a template and writes the result.
type Renderer struct {
	Marker string
	Log    Logger
	DryRun bool
}

// Render reads templatePath, replaces every marker line with a declaration of
// week, and writes the joined lines to outputPath. A missing template or a
// template without a marker line is reported through the logger and the
// returned Result; only I/O failures are returned as errors.
func (r *Renderer) Render(templatePath, outputPath, week string) (Result, error) {
	result := Result{Template: templatePath, Output: outputPath}
	marker := r.marker()

	info, err := os.Stat(templatePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.warn("Template not found: %s", templatePath)
			result.Outcome = OutcomeMissingTemplate
			return result, nil
		}
		return result, fmt.Errorf("page: stat %s: %w", templatePath, err)
	}
	if info.IsDir() {
		return result, fmt.Errorf("page: template %s is a directory", templatePath)
	}

	r.info("Generating from %s for week %s -> %s", filepath.Base(templatePath), week, outputPath)

	data, err := os.ReadFile(templatePath)
	if err != nil {
		return result, fmt.Errorf("page: read %s: %w", templatePath, err)
	}
	lines, replaced := Substitute(SplitLines(string(data)), marker, week)
	result.Replaced = replaced
	result.Outcome = OutcomeWritten
	if replaced == 0 {
		r.warn("%s line not found in template %s.", marker, filepath.Base(templatePath))
		result.Outcome = OutcomeMissingMarker
	}

	content := strings.Join(lines, "\n")
	if r.DryRun {
		r.info("Dry run: would write %d bytes to %s", len(content), outputPath)
		return result, nil
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return result, fmt.Errorf("page: ensure dir for %s: %w", outputPath, err)
	}
	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		return result, fmt.Errorf("page: write %s: %w", outputPath, err)
	}
	result.Written = true
	r.info("Done writing %s", outputPath)
	return result, nil
}

// Substitute returns a copy of lines where each line containing marker is
// replaced by MarkerLine, keeping its indentation. The second return value
// is the number of replaced lines.
func Substitute(lines []string, marker, week string) ([]string, int) {
	out := make([]string, 0, len(lines))
	replaced := 0
	for _, line := range lines {
		if marker != "" && strings.Contains(line, marker) {
			out = append(out, MarkerLine(Indent(line), marker, week))
			replaced++
			continue
		}
		out = append(out, line)
	}
	return out, replaced
}

// MarkerLine builds the declaration written in place of a marker line.
func MarkerLine(indent, marker, week string) string {
	return fmt.Sprintf(`%s%s = "%s";`, indent, marker, week)
}

// Indent returns the leading whitespace of line.
func Indent(line string) string {
	return line[:len(line)-len(strings.TrimLeftFunc(line, unicode.IsSpace))]
}

// SplitLines splits content at line boundaries: \n, \r\n, \r, \v, \f,
// \x1c-\x1e, U+0085, U+2028 and U+2029. A trailing line break does not
// produce a final empty line.
func SplitLines(content string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(content); {
		r, size := utf8.DecodeRuneInString(content[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, content[start:i])
		i += size
		if r == '\r' && i < len(content) && content[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(content) {
		lines = append(lines, content[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

func (r *Renderer) marker() string {
	if r == nil || strings.TrimSpace(r.Marker) == "" {
		return DefaultMarker
	}
	return r.Marker
}

func (r *Renderer) info(format string, args ...any) {
	if r.Log != nil {
		r.Log.Info(format, args...)
	}
}

func (r *Renderer) warn(format string, args ...any) {
	if r.Log != nil {
		r.Log.Warn(format, args...)
	}
}
