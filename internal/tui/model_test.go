package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/vocadrill/internal/model"
	"github.com/verte-zerg/vocadrill/internal/session"
)

func enter(t *testing.T, m *Model, line string) tea.Cmd {
	t.Helper()
	m.input.SetValue(line)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.input.Value() != "" {
		t.Fatalf("input should be cleared after enter")
	}
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func applePair() []model.WordPair {
	return []model.WordPair{{Word: "apple", Expected: "사과"}}
}

func TestModelWrongThenRight(t *testing.T) {
	m := NewModel(session.New(applePair()), false)
	if cmd := enter(t, m, "wrong"); isQuit(cmd) {
		t.Fatalf("wrong answer should not end the drill")
	}
	if !strings.Contains(m.verdict, "Incorrect. (type 'hint' for a hint)") {
		t.Fatalf("unexpected verdict: %q", m.verdict)
	}
	if m.hintLine != "Hint: __ (2 letters)" {
		t.Fatalf("unexpected hint: %q", m.hintLine)
	}
	if m.prompt.Attempt != 2 {
		t.Fatalf("expected second attempt, got %d", m.prompt.Attempt)
	}

	if cmd := enter(t, m, "사과"); !isQuit(cmd) {
		t.Fatalf("last correct answer should end the drill")
	}
	if m.Quit() {
		t.Fatalf("finished drill should not report quit")
	}
	if m.View() != "" {
		t.Fatalf("finished drill should render nothing")
	}
}

func TestModelQuitCommands(t *testing.T) {
	m := NewModel(session.New(applePair()), false)
	if cmd := enter(t, m, "q"); !isQuit(cmd) || !m.Quit() {
		t.Fatalf("q should quit")
	}

	m = NewModel(session.New(applePair()), false)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC}); !isQuit(cmd) || !m.Quit() {
		t.Fatalf("ctrl+c should quit")
	}
}

func TestModelHintPenaltyInReview(t *testing.T) {
	e := session.New(applePair())
	m := NewModel(e, true)
	enter(t, m, "h")
	if m.hintLine != "Hint: __ (2 letters)" {
		t.Fatalf("unexpected first hint: %q", m.hintLine)
	}
	enter(t, m, "hint")
	if m.hintLine != "Hint: 사_" {
		t.Fatalf("unexpected second hint: %q", m.hintLine)
	}
	if !strings.Contains(m.verdict, "(Hint used twice - marked as incorrect)") {
		t.Fatalf("expected penalty notice, got %q", m.verdict)
	}
	enter(t, m, "사과")
	if !strings.Contains(m.verdict, "keeping in wrong deck") {
		t.Fatalf("unexpected verdict: %q", m.verdict)
	}
	if len(e.Remainder()) != 1 {
		t.Fatalf("penalized item should remain in deck")
	}
}

func TestModelEmptyEngineQuitsOnInit(t *testing.T) {
	m := NewModel(session.New(nil), false)
	if !isQuit(m.Init()) {
		t.Fatalf("empty drill should quit on init")
	}
}

func TestRenderFooterFormats(t *testing.T) {
	pairs := []model.WordPair{{Word: "a", Expected: "1"}, {Word: "b", Expected: "2"}}
	m := NewModel(session.New(pairs), true)
	enter(t, m, "1")
	out := m.renderFooter()
	for _, want := range []string{"Score 1/2", "Attempt 1", "Review"} {
		if !strings.Contains(out, want) {
			t.Fatalf("footer missing %q: %s", want, out)
		}
	}
}

func TestViewPlacesContent(t *testing.T) {
	m := NewModel(session.New(applePair()), false)
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 12})
	view := m.View()
	if !strings.Contains(view, "What is the meaning of apple?") {
		t.Fatalf("view missing question: %s", view)
	}
	if got := len(strings.Split(view, "\n")); got != 12 {
		t.Fatalf("expected 12 lines, got %d", got)
	}
}
