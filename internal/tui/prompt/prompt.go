// Package prompt implements a small Bubble Tea form that collects the
// player name when it was not supplied on the command line.
package prompt

import (
	"strings"

	"github.com/Digital-Shane/clip-tidy/internal/clip"
	"github.com/Digital-Shane/clip-tidy/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type field int

const (
	fieldFirst field = iota
	fieldLast
)

// Model collects the player's first and last name.
type Model struct {
	first textinput.Model
	last  textinput.Model
	focus field

	width     int
	errText   string
	submitted bool
	canceled  bool

	theme theme.Theme
}

// New creates a prompt model with optional pre-filled values.
func New(first, last string, th theme.Theme) *Model {
	fi := newInput(first, th)
	li := newInput(last, th)
	fi.Focus()
	return &Model{
		first: fi,
		last:  li,
		focus: fieldFirst,
		width: 60,
		theme: th,
	}
}

func newInput(value string, th theme.Theme) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = ""
	ti.CursorStyle = lipgloss.NewStyle().Background(th.Colors().Accent).Foreground(th.Colors().Background)
	ti.TextStyle = lipgloss.NewStyle().Foreground(th.Colors().Primary)
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Width = 32
	return ti
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return textinput.Blink }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.canceled = true
			return m, tea.Quit
		case "tab", "shift+tab":
			m.toggleFocus()
			return m, nil
		case "enter":
			if m.focus == fieldFirst {
				m.toggleFocus()
				return m, nil
			}
			if _, err := clip.NewPlayer(m.first.Value(), m.last.Value()); err != nil {
				m.errText = err.Error()
				return m, nil
			}
			m.submitted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	if m.focus == fieldFirst {
		m.first, cmd = m.first.Update(msg)
	} else {
		m.last, cmd = m.last.Update(msg)
	}
	return m, cmd
}

func (m *Model) toggleFocus() {
	if m.focus == fieldFirst {
		m.focus = fieldLast
		m.first.Blur()
		m.last.Focus()
	} else {
		m.focus = fieldFirst
		m.last.Blur()
		m.first.Focus()
	}
	m.errText = ""
}

// View implements tea.Model.
func (m *Model) View() string {
	label := lipgloss.NewStyle().Foreground(m.theme.Colors().Secondary).Bold(true)

	lines := []string{
		m.theme.HeaderStyle().Width(m.width).Render("Player Name"),
		"",
		label.Render("First name:") + " " + m.first.View(),
		label.Render("Last name: ") + " " + m.last.View(),
	}
	if m.errText != "" {
		errStyle := lipgloss.NewStyle().Foreground(m.theme.Colors().Error)
		lines = append(lines, "", errStyle.Render(m.errText))
	}
	lines = append(lines, "",
		m.theme.StatusBarStyle().Width(m.width).Render("enter confirm • tab switch • esc cancel"))
	return strings.Join(lines, "\n")
}

// Player returns the collected name. ok is false when the prompt was
// canceled or never submitted.
func (m *Model) Player() (clip.Player, bool) {
	if !m.submitted || m.canceled {
		return clip.Player{}, false
	}
	p, err := clip.NewPlayer(m.first.Value(), m.last.Value())
	if err != nil {
		return clip.Player{}, false
	}
	return p, true
}
