// Package hint builds progressively revealing hints for a missed answer.
package hint

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/vocadrill/internal/answer"
)

// Hint levels.
const (
	MinLevel = 1
	MaxLevel = 4
)

// NoLetters is returned when the expected answer has nothing to reveal.
const NoLetters = "Hint: (no letters)"

const blank = "_"

// ClampLevel limits level to [MinLevel, MaxLevel].
func ClampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// Units splits s into code-point units. A lead byte claims the length it
// announces; bytes that start no sequence, or sequences cut short by the end
// of s, become single-byte units.
func Units(s string) []string {
	units := make([]string, 0, len(s))
	for i := 0; i < len(s); {
		size := leadLen(s[i])
		if i+size > len(s) {
			size = 1
		}
		units = append(units, s[i:i+size])
		i += size
	}
	return units
}

func leadLen(c byte) int {
	switch {
	case c&0xE0 == 0xC0:
		return 2
	case c&0xF0 == 0xE0:
		return 3
	case c&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

// Make returns the hint for expected at the given failure level.
//
// Level 1 shows only the length, level 2 the first unit, level 3 up to two
// leading units, and level 4 the whole answer. Separators and whitespace are
// never counted or revealed below level 4.
func Make(expected string, level int) string {
	level = ClampLevel(level)
	text := answer.StripQuotes(expected)
	units := Units(strings.ReplaceAll(answer.RemoveSpace(text), ",", ""))
	n := len(units)
	if n == 0 {
		return NoLetters
	}

	switch level {
	case 1:
		return fmt.Sprintf("Hint: %s (%d letters)", strings.Repeat(blank, n), n)
	case 2:
		return "Hint: " + units[0] + strings.Repeat(blank, n-1)
	case 3:
		reveal := min(2, n-1)
		return "Hint: " + strings.Join(units[:reveal], "") + strings.Repeat(blank, n-reveal)
	default:
		return "Hint: " + text + " (type it again)"
	}
}
