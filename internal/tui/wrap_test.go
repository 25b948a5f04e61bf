package tui

import "testing"

func TestWrapTextBreaksAtSpaces(t *testing.T) {
	got := wrapText("run, operate, manage", 10)
	want := "run,\noperate,\nmanage"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapTextCountsWideRunes(t *testing.T) {
	got := wrapText("달리다 운영하다", 8)
	want := "달리다\n운영하다"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapTextHardBreaksLongWords(t *testing.T) {
	got := wrapText("abcdefgh", 3)
	want := "abc\ndef\ngh"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapTextKeepsShortLines(t *testing.T) {
	if got := wrapText("short\nline", 20); got != "short\nline" {
		t.Fatalf("unexpected wrap: %q", got)
	}
	if got := wrapText("anything", 0); got != "anything" {
		t.Fatalf("zero width should not wrap: %q", got)
	}
}
