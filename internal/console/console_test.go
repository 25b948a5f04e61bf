package console

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/vocadrill/internal/model"
	"github.com/verte-zerg/vocadrill/internal/quiz"
	"github.com/verte-zerg/vocadrill/internal/session"
)

func newTestConsole(input string) (*Console, *bytes.Buffer) {
	var out bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(strings.NewReader(input), &out, logger), &out
}

func assertContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestSelectModeRepromptsOnInvalidInput(t *testing.T) {
	c, out := newTestConsole("x\n1\n")
	mode, err := c.SelectMode()
	if err != nil {
		t.Fatalf("select mode: %v", err)
	}
	if mode != model.ModeTest {
		t.Fatalf("expected test mode, got %q", mode)
	}
	assertContains(t, out.String(), "=== Mode Selection ===", "Please enter 0, 1, or 2")
}

func TestSelectModeGivesUp(t *testing.T) {
	c, _ := newTestConsole(strings.Repeat("9\n", maxMenuAttempts))
	if _, err := c.SelectMode(); !errors.Is(err, ErrNoChoice) {
		t.Fatalf("expected ErrNoChoice, got %v", err)
	}
	c, _ = newTestConsole("")
	if _, err := c.SelectMode(); !errors.Is(err, ErrNoChoice) {
		t.Fatalf("expected ErrNoChoice on EOF, got %v", err)
	}
}

func TestConfirm(t *testing.T) {
	c, _ := newTestConsole("Y\nn\n")
	if !c.Confirm("? ") {
		t.Fatalf("expected yes")
	}
	if c.Confirm("? ") {
		t.Fatalf("expected no")
	}
	if c.Confirm("? ") {
		t.Fatalf("expected no on EOF")
	}
}

func TestDrillWrongThenRight(t *testing.T) {
	c, out := newTestConsole("wrong\n사과\n")
	e := session.New([]model.WordPair{{Word: "apple", Expected: "사과"}})
	if !c.Drill(e, false) {
		t.Fatalf("expected completed drill")
	}
	assertContains(t, out.String(),
		"What is the meaning of apple? ",
		"Incorrect. (type 'hint' for a hint)",
		"Hint: __ (2 letters)",
	)
	if s := e.Summary(); s.Score != 0 || s.Total != 1 || s.WrongCount != 1 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestDrillRevealsAnswerAfterFourMisses(t *testing.T) {
	c, out := newTestConsole("x\nx\nx\nx\n사과\n")
	e := session.New([]model.WordPair{{Word: "apple", Expected: `"사과"`}})
	if !c.Drill(e, false) {
		t.Fatalf("expected completed drill")
	}
	assertContains(t, out.String(), "Incorrect. The correct answer is: 사과 (type it again)")
}

func TestDrillHintPenalty(t *testing.T) {
	c, out := newTestConsole("h\nh\n사과\n")
	e := session.New([]model.WordPair{{Word: "apple", Expected: "사과"}})
	if !c.Drill(e, false) {
		t.Fatalf("expected completed drill")
	}
	assertContains(t, out.String(), "Hint: __ (2 letters)", "Hint: 사_", "(Hint used twice - marked as incorrect)")
	if s := e.Summary(); s.Score != 0 || s.WrongCount != 1 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestDrillExplicitHintReplacesPromptHint(t *testing.T) {
	c, out := newTestConsole("wrong\nh\n사과\n")
	e := session.New([]model.WordPair{{Word: "apple", Expected: "사과"}})
	if !c.Drill(e, false) {
		t.Fatalf("expected completed drill")
	}
	got := out.String()
	assertContains(t, got, "Hint: 사_")
	if n := strings.Count(got, "Hint: __ (2 letters)"); n != 1 {
		t.Fatalf("prompt hint printed %d times, want 1:\n%s", n, got)
	}
	if n := strings.Count(got, "What is the meaning of apple? "); n != 3 {
		t.Fatalf("expected 3 prompts, got %d:\n%s", n, got)
	}
}

func TestDrillQuitAndEOF(t *testing.T) {
	pairs := []model.WordPair{{Word: "a", Expected: "1"}, {Word: "b", Expected: "2"}}
	c, _ := newTestConsole("q\n")
	e := session.New(pairs)
	if c.Drill(e, false) {
		t.Fatalf("expected quit")
	}
	if q := e.Quit(); len(q.Primary) != 2 {
		t.Fatalf("quit should keep both items queued: %+v", q)
	}

	c, _ = newTestConsole("1\n")
	e = session.New(pairs)
	if c.Drill(e, false) {
		t.Fatalf("expected EOF to stop the drill")
	}
}

func TestDrillReviewMessages(t *testing.T) {
	c, out := newTestConsole("1\nh\nh\n2\n")
	e := session.New([]model.WordPair{{Word: "a", Expected: "1"}, {Word: "b", Expected: "2"}})
	if !c.Drill(e, true) {
		t.Fatalf("expected completed drill")
	}
	assertContains(t, out.String(),
		"Correct! (removed from wrong deck)",
		"Correct! (but keeping in wrong deck due to hint usage)",
	)
}

func TestReport(t *testing.T) {
	c, out := newTestConsole("")
	c.Report(quiz.Outcome{Score: 3, Total: 3})
	assertContains(t, out.String(), "Score: 3 / 3", "Perfect! No wrong answers.")

	out.Reset()
	c.Report(quiz.Outcome{Score: 1, Total: 2, Wrong: []model.MissedEntry{{Word: "b", Expected: "2", FailureCount: 1}}})
	assertContains(t, out.String(), "Score: 1 / 2", "The following words were answered incorrectly: ", "b:2")
}

func TestChooseWrongDeck(t *testing.T) {
	dir := t.TempDir()
	older := filepath.Join(dir, "1_wrong.csv")
	newer := filepath.Join(dir, "2_wrong.csv")
	for _, p := range []string{older, newer} {
		if err := os.WriteFile(p, []byte("a,1\n"), 0o644); err != nil {
			t.Fatalf("write deck: %v", err)
		}
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	c, out := newTestConsole("d1\ny\n5\n1\n")
	info, ok := c.ChooseWrongDeck(dir)
	if !ok {
		t.Fatalf("expected a deck to be chosen")
	}
	if info.Path != older {
		t.Fatalf("expected %s, got %s", older, info.Path)
	}
	if _, err := os.Stat(newer); !os.IsNotExist(err) {
		t.Fatalf("expected newest deck to be deleted, stat err: %v", err)
	}
	assertContains(t, out.String(), "=== Wrong Deck List ===", "1. 2_wrong [", "Deleted.", "Invalid selection.")
}

func TestChooseWrongDeckEmpty(t *testing.T) {
	c, out := newTestConsole("")
	if _, ok := c.ChooseWrongDeck(t.TempDir()); ok {
		t.Fatalf("expected no deck")
	}
	assertContains(t, out.String(), "No wrong decks available.")
}
