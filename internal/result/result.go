// Package result keeps the per-session score and the ledger of missed items.
package result

import "github.com/verte-zerg/vocadrill/internal/model"

// Tracker counts first-pass answers and failures per distinct item.
//
// Total only counts first attempts; retries of an item that was already
// counted as wrong go through RecordWrongAttempt and leave Total alone.
type Tracker struct {
	correct int
	total   int
	wrong   []model.MissedEntry
}

// New returns an empty tracker.
func New() *Tracker {
	return &Tracker{}
}

// MarkCorrect records a correct first attempt.
func (t *Tracker) MarkCorrect() {
	t.correct++
	t.total++
}

// MarkWrong records a missed first attempt.
func (t *Tracker) MarkWrong(word, expected string) {
	t.total++
	t.RecordWrongAttempt(word, expected)
}

// RecordWrongAttempt bumps the failure counter of (word, expected), adding it on first miss.
func (t *Tracker) RecordWrongAttempt(word, expected string) {
	if i := t.find(word, expected); i >= 0 {
		t.wrong[i].FailureCount++
		return
	}
	t.wrong = append(t.wrong, model.MissedEntry{Word: word, Expected: expected, FailureCount: 1})
}

// WrongCount returns how often (word, expected) was missed, or 0.
func (t *Tracker) WrongCount(word, expected string) int {
	if i := t.find(word, expected); i >= 0 {
		return t.wrong[i].FailureCount
	}
	return 0
}

// Score returns the number of correct first attempts.
func (t *Tracker) Score() int {
	return t.correct
}

// Total returns the number of first attempts.
func (t *Tracker) Total() int {
	return t.total
}

// Wrong returns a copy of the missed items in first-miss order.
func (t *Tracker) Wrong() []model.MissedEntry {
	out := make([]model.MissedEntry, len(t.wrong))
	copy(out, t.wrong)
	return out
}

// Reset clears all counters.
func (t *Tracker) Reset() {
	t.correct = 0
	t.total = 0
	t.wrong = nil
}

func (t *Tracker) find(word, expected string) int {
	for i, item := range t.wrong {
		if item.Word == word && item.Expected == expected {
			return i
		}
	}
	return -1
}
