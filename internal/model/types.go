// Package model defines shared data structures.
package model

import "time"

// Run modes.
const (
	ModePractice = "practice"
	ModeTest     = "test"
	ModeWrong    = "wrong"
)

// WordPair is one quiz item. Expected may hold several comma-separated
// meanings and may still carry the quotes it was stored with.
type WordPair struct {
	Word     string
	Expected string
}

// MissedEntry is a distinct missed item keyed by (Word, Expected).
type MissedEntry struct {
	Word         string
	Expected     string
	FailureCount int
}

// Pair returns the entry without its failure counter.
func (m MissedEntry) Pair() WordPair {
	return WordPair{Word: m.Word, Expected: m.Expected}
}

// Queues holds the outstanding work of a session.
type Queues struct {
	Primary []int
	Retry   []MissedEntry
}

// Empty reports whether both queues are drained.
func (q Queues) Empty() bool {
	return len(q.Primary) == 0 && len(q.Retry) == 0
}

// Config defines run settings after flags and the config file are merged.
type Config struct {
	DeckDir    string
	Decks      []string
	Mode       string
	TestSize   int
	Seed       int64
	TUI        bool
	FocusWeak  bool
	WeakTop    int
	WeakFactor float64
	WeakWindow int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Base        string
	Since       *time.Time
	Last        int
	CurveWindow int
	Top         int
}

// RunRecord captures a completed quiz run.
type RunRecord struct {
	ID         string
	StartedAt  time.Time
	EndedAt    time.Time
	Base       string
	Mode       string
	Score      int
	Total      int
	WrongCount int
}

// RunAggregate summarizes a run for reporting.
type RunAggregate struct {
	ID         string
	EndedAt    time.Time
	Score      int
	Total      int
	WrongCount int
}

// MissAggregate aggregates failures of one item across runs.
type MissAggregate struct {
	Word     string
	Expected string
	Failures int
	Runs     int
}
