package answer

import "testing"

func TestStripQuotes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"사과"`, "사과"},
		{`"사과`, "사과"},
		{`사과"`, "사과"},
		{`"`, ""},
		{`""`, ""},
		{"사과", "사과"},
		{`"a, b"`, "a, b"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripQuotes(tt.in); got != tt.want {
			t.Errorf("StripQuotes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsCorrectSingleValue(t *testing.T) {
	tests := []struct {
		answer   string
		expected string
		want     bool
	}{
		{"사과", "사과", true},
		{" 사 과 ", "사과", true},
		{"사과", `"사과"`, true},
		{"사과", `"사과`, true},
		{"apple pie", "applepie", true},
		{"사과\t", "사과\r\n", true},
		{"배", "사과", false},
		{"", "사과", false},
		{"Apple", "apple", false},
	}
	for _, tt := range tests {
		if got := IsCorrect(tt.answer, tt.expected); got != tt.want {
			t.Errorf("IsCorrect(%q, %q) = %v, want %v", tt.answer, tt.expected, got, tt.want)
		}
	}
}

func TestIsCorrectSetAnswers(t *testing.T) {
	expected := `"달리다, 운영하다, 작동하다"`
	permutations := []string{
		"달리다,운영하다,작동하다",
		"운영하다,달리다,작동하다",
		"작동하다, 운영하다, 달리다",
		"운영하다 ,작동하다,달리다",
	}
	for _, p := range permutations {
		if !IsCorrect(p, expected) {
			t.Fatalf("expected permutation %q to be accepted", p)
		}
	}

	rejected := []string{
		"달리다,운영하다",
		"달리다,운영하다,작동하다,뛰다",
		"달리다,운영하다,작동한다",
		"달리다운영하다작동하다",
		"달리다",
	}
	for _, r := range rejected {
		if IsCorrect(r, expected) {
			t.Fatalf("expected %q to be rejected", r)
		}
	}
}

func TestIsCorrectIgnoresAnswerCommasForSingleValue(t *testing.T) {
	if IsCorrect("사과,사과", "사과") {
		t.Fatalf("comma in answer must not match a single expected value")
	}
}

func TestIsCorrectIdempotent(t *testing.T) {
	for i := 0; i < 3; i++ {
		if !IsCorrect("b,a", `"a,b"`) {
			t.Fatalf("call %d: expected match", i)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize(`" a , b "`); got != "a,b" {
		t.Fatalf("Normalize = %q, want %q", got, "a,b")
	}
}
