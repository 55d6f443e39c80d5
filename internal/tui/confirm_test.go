package tui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func press(t *testing.T, m ConfirmModel, msg tea.KeyMsg) (ConfirmModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(ConfirmModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestConfirmYesQuitsConfirmed(t *testing.T) {
	m := NewConfirm([]string{"weeklog/week-2024-06-17.html"})
	m, cmd := press(t, m, runes("y"))
	if !m.Confirmed() {
		t.Fatalf("expected confirmation after y")
	}
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Fatalf("view should be empty once answered")
	}
}

func TestConfirmNoAndEscapeDecline(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("n"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m := NewConfirm([]string{"a.html"})
		m, cmd := press(t, m, msg)
		if m.Confirmed() {
			t.Fatalf("%s should decline", msg.String())
		}
		if cmd == nil {
			t.Fatalf("%s should quit", msg.String())
		}
	}
}

func TestConfirmIgnoresOtherKeys(t *testing.T) {
	m := NewConfirm([]string{"a.html"})
	m, cmd := press(t, m, runes("x"))
	if cmd != nil || m.Confirmed() {
		t.Fatalf("unrelated key should be ignored")
	}
	view := m.View()
	if !strings.Contains(view, "a.html") || !strings.Contains(view, "overwrite") {
		t.Fatalf("view missing content: %q", view)
	}
}

func TestConfirmWithoutPathsSkipsPrompt(t *testing.T) {
	ok, err := Confirm(nil)
	if err != nil || !ok {
		t.Fatalf("Confirm(nil) = %v, %v", ok, err)
	}
}

func TestConfirmRunsProgram(t *testing.T) {
	var out bytes.Buffer
	ok, err := Confirm(
		[]string{"a.html"},
		tea.WithInput(strings.NewReader("y")),
		tea.WithOutput(&out),
	)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !ok {
		t.Fatalf("expected confirmation from input")
	}
}
