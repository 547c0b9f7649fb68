package prompt

import (
	"testing"
	"time"

	"github.com/Digital-Shane/clip-tidy/internal/clip"
	"github.com/Digital-Shane/clip-tidy/internal/tui/theme"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/google/go-cmp/cmp"
)

func finalPromptModel(t *testing.T, tm *teatest.TestModel) *Model {
	t.Helper()
	final := tm.FinalModel(t, teatest.WithFinalTimeout(2*time.Second))
	model, ok := final.(*Model)
	if !ok {
		t.Fatalf("Final model type = %T, want *Model", final)
	}
	return model
}

func TestPromptSubmitCollectsPlayer(t *testing.T) {
	model := New("", "", theme.Default())
	tm := teatest.NewTestModel(t, model, teatest.WithInitialTermSize(80, 20))
	t.Cleanup(func() { _ = tm.Quit() })

	tm.Type("Keldon")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Type("Johnson")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))
	final := finalPromptModel(t, tm)

	player, ok := final.Player()
	if !ok {
		t.Fatal("Player() ok = false, want true after submit")
	}
	want := clip.Player{First: "Keldon", Last: "Johnson"}
	if diff := cmp.Diff(want, player); diff != "" {
		t.Errorf("Player() diff (-want +got):\n%s", diff)
	}
}

func TestPromptEscCancels(t *testing.T) {
	model := New("Keldon", "Johnson", theme.Default())
	tm := teatest.NewTestModel(t, model, teatest.WithInitialTermSize(80, 20))
	t.Cleanup(func() { _ = tm.Quit() })

	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})

	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))
	final := finalPromptModel(t, tm)

	if _, ok := final.Player(); ok {
		t.Error("Player() ok = true, want false after cancel")
	}
}

func TestPromptRejectsEmptyName(t *testing.T) {
	model := New("", "", theme.Default())

	var m tea.Model = model
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	prompt := m.(*Model)
	if prompt.submitted {
		t.Error("submitted = true, want false for empty name")
	}
	if prompt.errText == "" {
		t.Error("errText empty, want validation message")
	}
}

func TestPromptTabSwitchesFocus(t *testing.T) {
	model := New("", "", theme.Default())

	var m tea.Model = model
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	prompt := m.(*Model)
	if prompt.focus != fieldLast {
		t.Errorf("focus = %v, want fieldLast after tab", prompt.focus)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	prompt = m.(*Model)
	if prompt.focus != fieldFirst {
		t.Errorf("focus = %v, want fieldFirst after second tab", prompt.focus)
	}
}
