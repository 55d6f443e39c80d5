package logbook

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestTailReturnsRecentLinesAndTotal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weeklog.log")
	book, err := New(path, WithOutput(nil, nil))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	for i := 0; i < 5; i++ {
		book.Info("entry-%d", i)
	}
	lines, total := book.Tail(3)
	if total != 5 {
		t.Fatalf("total lines = %d, want 5", total)
	}
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	for idx, want := range []string{"entry-2", "entry-3", "entry-4"} {
		if !strings.Contains(lines[idx], want) {
			t.Fatalf("line %d = %q, missing %s", idx, lines[idx], want)
		}
	}
}

func TestConsoleRoutesLevels(t *testing.T) {
	var out, errOut bytes.Buffer
	book, err := New("", WithOutput(&out, &errOut))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	book.Info("Generating from %s", "week-template-berlin.html")
	book.Warn("Template not found: %s", "missing.html")
	book.Error("boom")

	if got := out.String(); got != "Generating from week-template-berlin.html\n" {
		t.Fatalf("stdout = %q", got)
	}
	errText := errOut.String()
	if strings.Contains(out.String(), "missing.html") {
		t.Fatalf("warning leaked to stdout")
	}
	if !strings.Contains(errText, "WARN") || !strings.Contains(errText, "Template not found: missing.html") {
		t.Fatalf("stderr missing warning: %q", errText)
	}
	if !strings.Contains(errText, "ERROR") || !strings.Contains(errText, "boom") {
		t.Fatalf("stderr missing error: %q", errText)
	}
	if lines, total := book.Tail(10); lines != nil || total != 0 {
		t.Fatalf("console-only logbook should have no tail, got %v/%d", lines, total)
	}
}

func TestFileEntriesAreTimestamped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "weeklog.log")
	fixed := time.Date(2024, time.June, 12, 9, 30, 0, 0, time.UTC)
	book, err := New(path, WithOutput(nil, nil), WithClock(func() time.Time { return fixed }))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	book.Warn("  padded  ")
	lines, total := book.Tail(1)
	if total != 1 {
		t.Fatalf("total = %d, want 1", total)
	}
	if want := "2024-06-12T09:30:00Z WARN  padded"; lines[0] != want {
		t.Fatalf("line = %q, want %q", lines[0], want)
	}
	if book.Path() != path {
		t.Fatalf("Path = %s, want %s", book.Path(), path)
	}
}

func TestNilLogbookIsSafe(t *testing.T) {
	var book *Logbook
	book.Info("ignored")
	if book.Path() != "" {
		t.Fatalf("nil logbook path should be empty")
	}
	if lines, total := book.Tail(3); lines != nil || total != 0 {
		t.Fatalf("nil logbook tail = %v/%d", lines, total)
	}
}
