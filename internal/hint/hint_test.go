package hint

import (
	"strings"
	"testing"
)

func TestMakeLevels(t *testing.T) {
	tests := []struct {
		expected string
		level    int
		want     string
	}{
		{"사과", 1, "Hint: __ (2 letters)"},
		{"사과", 2, "Hint: 사_"},
		{"사과", 3, "Hint: 사_"},
		{"사과", 4, "Hint: 사과 (type it again)"},
		{"바나나", 3, "Hint: 바나_"},
		{`"달리다, 뛰다"`, 1, "Hint: _____ (5 letters)"},
		{`"달리다, 뛰다"`, 2, "Hint: 달____"},
		{`"달리다, 뛰다"`, 4, "Hint: 달리다, 뛰다 (type it again)"},
		{"a", 3, "Hint: _"},
		{"apple", 9, "Hint: apple (type it again)"},
		{"apple", 0, "Hint: _____ (5 letters)"},
	}
	for _, tt := range tests {
		if got := Make(tt.expected, tt.level); got != tt.want {
			t.Errorf("Make(%q, %d) = %q, want %q", tt.expected, tt.level, got, tt.want)
		}
	}
}

func TestMakeNoLetters(t *testing.T) {
	for _, expected := range []string{"", `""`, " , ", `" "`} {
		for level := MinLevel; level <= MaxLevel; level++ {
			if got := Make(expected, level); got != NoLetters {
				t.Fatalf("Make(%q, %d) = %q, want %q", expected, level, got, NoLetters)
			}
		}
	}
}

func TestMakeRevealsMoreAtHigherLevels(t *testing.T) {
	expected := "작동하다"
	prev := -1
	for level := MinLevel; level <= MaxLevel; level++ {
		h := Make(expected, level)
		revealed := 0
		for _, u := range Units(expected) {
			if strings.Contains(h, u) {
				revealed++
			}
		}
		if revealed < prev {
			t.Fatalf("level %d reveals %d units, less than previous %d", level, revealed, prev)
		}
		prev = revealed
	}
	if !strings.Contains(Make(expected, MaxLevel), expected) {
		t.Fatalf("max level must contain the full answer")
	}
}

func TestUnitsMalformedBytes(t *testing.T) {
	units := Units("a\xe4\xb8")
	if len(units) != 3 {
		t.Fatalf("expected 3 units, got %d: %q", len(units), units)
	}
	if units[0] != "a" {
		t.Fatalf("unexpected first unit %q", units[0])
	}
}

func TestUnitsLeadByteClaimsSequence(t *testing.T) {
	units := Units("\xe0ab")
	if len(units) != 1 || units[0] != "\xe0ab" {
		t.Fatalf("expected one 3-byte unit, got %q", units)
	}
	units = Units("사과")
	if len(units) != 2 || units[0] != "사" || units[1] != "과" {
		t.Fatalf("unexpected units for valid text: %q", units)
	}
}

func TestClampLevel(t *testing.T) {
	if ClampLevel(-3) != MinLevel || ClampLevel(7) != MaxLevel || ClampLevel(2) != 2 {
		t.Fatalf("clamp out of range")
	}
}
