// Package session schedules questions and judges answers for one quiz run.
package session

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/verte-zerg/vocadrill/internal/answer"
	"github.com/verte-zerg/vocadrill/internal/hint"
	"github.com/verte-zerg/vocadrill/internal/model"
	"github.com/verte-zerg/vocadrill/internal/result"
)

// HintPenaltyThreshold is the number of hint requests on one question that
// marks it wrong.
const HintPenaltyThreshold = 2

type question struct {
	id        string
	index     int
	word      string
	expected  string
	fromRetry bool
	// wrongAtStart is the item's failure count when it was selected.
	wrongAtStart int
	hintsUsed    int
	penalized    bool
}

// Engine drives one session: it picks the next question, judges answers and
// keeps the retry queue ahead of unseen items. An Engine is owned by a single
// caller and is not safe for concurrent use.
type Engine struct {
	pairs     []model.WordPair
	primary   []int
	retry     []model.MissedEntry
	tracker   *result.Tracker
	current   *question
	scheduled int
	kept      []model.WordPair
}

// New returns an engine over pairs with every index queued in order.
func New(pairs []model.WordPair) *Engine {
	e := &Engine{
		pairs:   append([]model.WordPair(nil), pairs...),
		tracker: result.New(),
	}
	e.Start()
	return e
}

// Start queues every item in list order and clears previous results.
func (e *Engine) Start() {
	indices := make([]int, len(e.pairs))
	for i := range indices {
		indices[i] = i
	}
	e.StartIndices(indices)
}

// StartIndices queues the given items in order. Out-of-range indices are dropped.
func (e *Engine) StartIndices(indices []int) {
	e.reset()
	for _, idx := range indices {
		if !e.validIndex(idx) {
			continue
		}
		e.primary = append(e.primary, idx)
	}
	e.scheduled = len(e.primary)
}

// Restore resumes from persisted queues. Invalid primary indices are dropped.
func (e *Engine) Restore(q model.Queues) {
	e.StartIndices(q.Primary)
	for _, item := range q.Retry {
		e.retry = append(e.retry, model.MissedEntry{Word: item.Word, Expected: item.Expected})
	}
	e.scheduled += len(e.retry)
}

func (e *Engine) reset() {
	e.primary = nil
	e.retry = nil
	e.current = nil
	e.kept = nil
	e.scheduled = 0
	e.tracker.Reset()
}

// State reports where the engine is in the prompt/answer cycle.
func (e *Engine) State() State {
	switch {
	case e.current != nil:
		return AwaitingAnswer
	case len(e.primary) == 0 && len(e.retry) == 0:
		return Finished
	default:
		return NoCurrentQuestion
	}
}

// Finished reports whether both queues are drained and nothing is pending.
func (e *Engine) Finished() bool {
	return e.State() == Finished
}

// Prompt returns the pending question, selecting the next one if needed.
// ok is false once the session is finished.
func (e *Engine) Prompt() (p Prompt, ok bool) {
	if !e.ensureCurrent() {
		return Prompt{}, false
	}
	q := e.current
	wrong := e.tracker.WrongCount(q.word, q.expected)
	hintText := ""
	if wrong > 0 {
		hintText = hint.Make(q.expected, wrong)
	}
	return Prompt{
		QuestionID:   q.id,
		QuestionText: q.word,
		Direction:    Direction,
		Hint:         hintText,
		Attempt:      wrong + 1,
		Progress:     Progress{Done: e.tracker.Score(), Total: e.scheduled},
	}, true
}

// Submit judges ans against the pending question.
func (e *Engine) Submit(ans string) Feedback {
	if !e.ensureCurrent() {
		return Feedback{IsCorrect: true, NextAction: ActionShowSummary}
	}
	q := e.current
	e.current = nil
	display := answer.StripQuotes(q.expected)
	wrongBefore := e.tracker.WrongCount(q.word, q.expected)

	if answer.IsCorrect(ans, q.expected) {
		switch {
		case q.penalized:
			e.kept = append(e.kept, model.WordPair{Word: q.word, Expected: q.expected})
		case !q.fromRetry:
			e.tracker.MarkCorrect()
		}
		next := ActionNextQuestion
		if len(e.primary) == 0 && len(e.retry) == 0 {
			next = ActionShowSummary
		}
		return Feedback{IsCorrect: true, CorrectAnswer: display, NextAction: next, HintLevel: wrongBefore}
	}

	if !q.penalized {
		e.recordMiss(q)
	}
	wrong := e.tracker.WrongCount(q.word, q.expected)
	e.pushRetry(model.MissedEntry{Word: q.word, Expected: q.expected, FailureCount: wrong})
	return Feedback{
		IsCorrect:     false,
		CorrectAnswer: display,
		NextAction:    ActionRetrySame,
		HintLevel:     min(wrong, hint.MaxLevel),
	}
}

// RequestHint reveals the next hint level for the pending question without
// counting as an attempt. The HintPenaltyThreshold-th request marks the
// question wrong once. ok is false when the session is finished.
func (e *Engine) RequestHint() (h HintResult, ok bool) {
	if !e.ensureCurrent() {
		return HintResult{}, false
	}
	q := e.current
	q.hintsUsed++
	level := hint.ClampLevel(q.wrongAtStart + q.hintsUsed)
	h = HintResult{Hint: hint.Make(q.expected, level), Level: level}
	if q.hintsUsed >= HintPenaltyThreshold && !q.penalized {
		q.penalized = true
		e.recordMiss(q)
		h.Penalized = true
	}
	return h, true
}

// Quit puts the pending question back and returns a snapshot of the
// outstanding queues. Nothing is marked wrong. Only a never-missed item
// returns to the primary queue; anything already counted wrong, including
// a hint penalty, goes to the front of the retry queue.
func (e *Engine) Quit() model.Queues {
	if q := e.current; q != nil {
		e.current = nil
		if q.fromRetry || q.penalized {
			e.pushRetry(model.MissedEntry{
				Word:         q.word,
				Expected:     q.expected,
				FailureCount: e.tracker.WrongCount(q.word, q.expected),
			})
		} else {
			e.primary = append([]int{q.index}, e.primary...)
		}
	}
	return e.Queues()
}

// Queues returns a copy of the outstanding queues.
func (e *Engine) Queues() model.Queues {
	return model.Queues{
		Primary: append([]int(nil), e.primary...),
		Retry:   append([]model.MissedEntry(nil), e.retry...),
	}
}

// Current returns the pending question's item, if any.
func (e *Engine) Current() (model.WordPair, bool) {
	if e.current == nil {
		return model.WordPair{}, false
	}
	return model.WordPair{Word: e.current.word, Expected: e.current.expected}, true
}

// Summary returns the session score.
func (e *Engine) Summary() Summary {
	return Summary{
		Score:      e.tracker.Score(),
		Total:      e.scheduled,
		WrongCount: len(e.tracker.Wrong()),
	}
}

// Attempts returns the number of first-pass answers recorded so far.
func (e *Engine) Attempts() int {
	return e.tracker.Total()
}

// Wrong returns the distinct missed items with their failure counts.
func (e *Engine) Wrong() []model.MissedEntry {
	return e.tracker.Wrong()
}

// WrongCount returns how often the item was missed in this session.
func (e *Engine) WrongCount(word, expected string) int {
	return e.tracker.WrongCount(word, expected)
}

// ExportWrong renders the missed items as word,expected lines.
func (e *Engine) ExportWrong() string {
	var b strings.Builder
	for _, item := range e.tracker.Wrong() {
		b.WriteString(item.Word)
		b.WriteByte(',')
		b.WriteString(item.Expected)
		b.WriteByte('\n')
	}
	return b.String()
}

// Remainder lists the items a wrong-deck review must keep: questions that
// were only answered after the hint penalty, followed by everything still
// queued. Call it after Quit or once the session is finished.
func (e *Engine) Remainder() []model.WordPair {
	out := append([]model.WordPair(nil), e.kept...)
	if e.current != nil {
		out = append(out, model.WordPair{Word: e.current.word, Expected: e.current.expected})
	}
	for _, idx := range e.primary {
		if e.validIndex(idx) {
			out = append(out, e.pairs[idx])
		}
	}
	return append(out, lo.Map(e.retry, func(item model.MissedEntry, _ int) model.WordPair {
		return item.Pair()
	})...)
}

func (e *Engine) recordMiss(q *question) {
	if q.fromRetry {
		e.tracker.RecordWrongAttempt(q.word, q.expected)
		return
	}
	e.tracker.MarkWrong(q.word, q.expected)
}

func (e *Engine) pushRetry(item model.MissedEntry) {
	e.retry = append([]model.MissedEntry{item}, e.retry...)
}

func (e *Engine) ensureCurrent() bool {
	if e.current != nil {
		return true
	}
	if len(e.retry) > 0 {
		item := e.retry[0]
		e.retry = e.retry[1:]
		e.current = &question{
			id:           item.Word,
			index:        -1,
			word:         item.Word,
			expected:     item.Expected,
			fromRetry:    true,
			wrongAtStart: e.tracker.WrongCount(item.Word, item.Expected),
		}
		return true
	}
	for len(e.primary) > 0 {
		idx := e.primary[0]
		e.primary = e.primary[1:]
		if !e.validIndex(idx) {
			continue
		}
		pair := e.pairs[idx]
		e.current = &question{
			id:           strconv.Itoa(idx),
			index:        idx,
			word:         pair.Word,
			expected:     pair.Expected,
			wrongAtStart: e.tracker.WrongCount(pair.Word, pair.Expected),
		}
		return true
	}
	return false
}

func (e *Engine) validIndex(idx int) bool {
	return idx >= 0 && idx < len(e.pairs)
}
