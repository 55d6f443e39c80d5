// internal/tui/confirm.go
//
// A small bubbletea prompt shown before generated pages are overwritten.
// It follows The Elm Architecture like any other bubbletea program:
// Model -> Update on key messages -> View.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type keyMap struct {
	Yes key.Binding
	No  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Yes: key.NewBinding(
			key.WithKeys("y", "Y", "enter"),
			key.WithHelp("y/enter", "overwrite"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc", "q", "ctrl+c"),
			key.WithHelp("n/esc", "cancel"),
		),
	}
}

// ConfirmModel asks whether existing pages may be overwritten.
type ConfirmModel struct {
	paths     []string
	keys      keyMap
	confirmed bool
	done      bool
}

// NewConfirm builds a prompt listing the pages that already exist.
func NewConfirm(paths []string) ConfirmModel {
	return ConfirmModel{
		paths: append([]string{}, paths...),
		keys:  defaultKeyMap(),
	}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.done {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		m.confirmed = true
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.No):
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	if m.done {
		return ""
	}
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		Render("These pages already exist and will be overwritten:")
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		PaddingLeft(2).
		Render(strings.Join(m.paths, "\n"))
	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(fmt.Sprintf("%s · %s", helpText(m.keys.Yes), helpText(m.keys.No)))
	return lipgloss.JoinVertical(lipgloss.Left, title, body, help) + "\n"
}

// Confirmed reports whether the user accepted the overwrite.
func (m ConfirmModel) Confirmed() bool {
	return m.confirmed
}

// Confirm runs the prompt and returns the user's answer.
func Confirm(paths []string, opts ...tea.ProgramOption) (bool, error) {
	if len(paths) == 0 {
		return true, nil
	}
	final, err := tea.NewProgram(NewConfirm(paths), opts...).Run()
	if err != nil {
		return false, fmt.Errorf("tui: confirm overwrite: %w", err)
	}
	model, ok := final.(ConfirmModel)
	if !ok {
		return false, fmt.Errorf("tui: unexpected model %T", final)
	}
	return model.Confirmed(), nil
}

func helpText(b key.Binding) string {
	h := b.Help()
	return fmt.Sprintf("%s %s", h.Key, h.Desc)
}
