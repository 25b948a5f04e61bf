// Package answer normalizes learner answers and compares them to expected meanings.
package answer

import (
	"slices"
	"strings"
)

const (
	quote     = '"'
	separator = ","
)

// asciiSpace lists the characters that never carry meaning in an answer.
const asciiSpace = " \t\n\r\v\f"

// StripQuotes removes one pair of surrounding double quotes. A lone leading or
// trailing quote left behind by the CSV loader is removed as well.
func StripQuotes(expected string) string {
	n := len(expected)
	switch {
	case n >= 2 && expected[0] == quote && expected[n-1] == quote:
		return expected[1 : n-1]
	case n > 0 && expected[0] == quote:
		return expected[1:]
	case n > 0 && expected[n-1] == quote:
		return expected[:n-1]
	}
	return expected
}

// RemoveSpace drops every whitespace character from s.
func RemoveSpace(s string) string {
	if !strings.ContainsAny(s, asciiSpace) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(asciiSpace, s[i]) >= 0 {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// Normalize returns the comparable form of an expected value.
func Normalize(expected string) string {
	return RemoveSpace(StripQuotes(expected))
}

// IsCorrect reports whether rawAnswer matches rawExpected.
//
// Whitespace is ignored on both sides. When the expected value lists several
// meanings separated by commas, the answer must name the same set in any order.
func IsCorrect(rawAnswer, rawExpected string) bool {
	got := RemoveSpace(rawAnswer)
	want := Normalize(rawExpected)
	if !strings.Contains(want, separator) {
		return got == want
	}
	return slices.Equal(sortedTokens(got), sortedTokens(want))
}

func sortedTokens(s string) []string {
	tokens := strings.Split(s, separator)
	slices.Sort(tokens)
	return tokens
}
