package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Word", "Failures", "Runs"}
	rows := [][]string{
		{"a", "12", "3"},
		{"apple", "4", "10"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Word  Failures Runs" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "a           12    3" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "apple        4   10" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Meaning", "N"}, [][]string{{"사과", "1"}, {"ab", "2"}}, nil)
	if lines[1] != "사과    1" {
		t.Fatalf("unexpected wide row: %q", lines[1])
	}
	if lines[2] != "ab      2" {
		t.Fatalf("unexpected narrow row: %q", lines[2])
	}
}
