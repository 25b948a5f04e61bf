// Package quiz runs practice, test and wrong-deck review sessions on top of
// the session engine and wires their results into persistence and history.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/vocadrill/internal/deck"
	"github.com/verte-zerg/vocadrill/internal/generator"
	"github.com/verte-zerg/vocadrill/internal/model"
	"github.com/verte-zerg/vocadrill/internal/persist"
	"github.com/verte-zerg/vocadrill/internal/session"
	"github.com/verte-zerg/vocadrill/internal/stats"
	"github.com/verte-zerg/vocadrill/internal/store"
)

// Driver presents a session to the learner.
type Driver interface {
	// Confirm asks a yes/no question.
	Confirm(question string) bool
	// Drill runs the prompt/answer loop. It returns false when the learner
	// quit before the engine finished.
	Drill(e *session.Engine, review bool) bool
	// Report shows the result of a completed practice or test run.
	Report(o Outcome)
	// Notice shows a one-line status message.
	Notice(msg string)
}

// Outcome is the result of a completed run.
type Outcome struct {
	Mode  string
	Score int
	Total int
	Wrong []model.MissedEntry
}

// Runner starts sessions for one deck directory.
type Runner struct {
	cfg   model.Config
	gen   *generator.Generator
	store *store.Store
	log   logrus.FieldLogger
	now   func() time.Time
}

// NewRunner builds a Runner. st may be nil, in which case runs are not
// recorded and weak-item focus is unavailable.
func NewRunner(cfg model.Config, gen *generator.Generator, st *store.Store, log logrus.FieldLogger) *Runner {
	return &Runner{
		cfg:   cfg,
		gen:   gen,
		store: st,
		log:   log,
		now:   time.Now,
	}
}

// Practice drills every item of the collection, offering to resume an
// interrupted session first.
func (r *Runner) Practice(ctx context.Context, d Driver, pairs []model.WordPair, base string) {
	state := persist.NewStateFile(persist.StatePath(base))
	e := session.New(pairs)
	runID := ""
	resumed := false

	snap, err := state.Load()
	switch {
	case err == nil:
		if d.Confirm("Resume previous session? (y/n): ") {
			e.Restore(snap.Queues)
			resumed = true
			runID = snap.RunID
			r.log.WithField("run", runID).Debug("resumed session")
		} else {
			r.clearState(state)
		}
	case !errors.Is(err, persist.ErrNoState):
		r.log.WithError(err).Warn("ignoring unreadable session state")
	}

	if !resumed {
		e.StartIndices(r.order(ctx, pairs, base, 0))
	}
	if runID == "" {
		runID = uuid.NewString()
	}
	r.run(ctx, d, e, state, runID, base, model.ModePractice, len(pairs))
}

// Test drills a random sample of at most TestSize items. Test runs are never
// offered for resume.
func (r *Runner) Test(ctx context.Context, d Driver, pairs []model.WordPair, base string) {
	state := persist.NewStateFile(persist.StatePath(base))
	order := r.order(ctx, pairs, base, r.cfg.TestSize)
	e := session.New(pairs)
	e.StartIndices(order)
	r.run(ctx, d, e, state, uuid.NewString(), base, model.ModeTest, len(order))
}

func (r *Runner) run(ctx context.Context, d Driver, e *session.Engine, state *persist.StateFile, runID, base, mode string, total int) {
	startedAt := r.now()
	if !d.Drill(e, false) {
		r.saveState(d, state, persist.Snapshot{RunID: runID, Queues: e.Quit()})
		return
	}
	if mode == model.ModePractice {
		r.clearState(state)
	}

	summary := e.Summary()
	wrong := e.Wrong()
	d.Report(Outcome{Mode: mode, Score: summary.Score, Total: total, Wrong: wrong})

	path := persist.WrongDeckPath(base, mode)
	if err := persist.AppendWrong(path, wrong); err != nil {
		r.log.WithError(err).WithField("path", path).Error("failed to save wrong answers")
	}
	r.record(ctx, model.RunRecord{
		ID:         runID,
		StartedAt:  startedAt,
		EndedAt:    r.now(),
		Base:       base,
		Mode:       mode,
		Score:      summary.Score,
		Total:      summary.Total,
		WrongCount: summary.WrongCount,
	}, wrong)
}

// Review drills a wrong deck. Correctly answered items leave the deck unless
// the learner took the hint penalty on them.
func (r *Runner) Review(d Driver, info persist.DeckInfo) error {
	pairs, err := deck.LoadPairs(info.Path)
	if err != nil {
		return fmt.Errorf("failed to load wrong deck: %w", err)
	}

	d.Notice("")
	d.Notice("Starting wrong deck review: " + info.Name)
	d.Notice(fmt.Sprintf("Words in deck: %d", len(pairs)))
	d.Notice("(Type 'quit' to save and exit, correct answers are removed from deck)")
	d.Notice("")

	e := session.New(pairs)
	e.StartIndices(r.gen.Order(len(pairs)))
	completed := d.Drill(e, true)
	if !completed {
		e.Quit()
	}
	remaining := e.Remainder()

	switch {
	case !completed:
		if err := persist.UpdateDeck(info.Path, remaining); err != nil {
			r.log.WithError(err).WithField("path", info.Path).Error("failed to save wrong deck")
			d.Notice("Failed to save wrong deck.")
			return nil
		}
		d.Notice(fmt.Sprintf("Saved remaining %d words.", len(remaining)))
	case len(remaining) == 0:
		if err := persist.DeleteDeck(info.Path); err != nil {
			r.log.WithError(err).WithField("path", info.Path).Error("failed to delete wrong deck")
			return nil
		}
		d.Notice("")
		d.Notice("Perfect! Wrong deck cleared and deleted!")
	default:
		if err := persist.UpdateDeck(info.Path, remaining); err != nil {
			r.log.WithError(err).WithField("path", info.Path).Error("failed to save wrong deck")
		}
		d.Notice("")
		d.Notice(fmt.Sprintf("Remaining words in wrong deck: %d", len(remaining)))
	}
	return nil
}

// order draws at most limit item indices; a non-positive limit keeps all.
func (r *Runner) order(ctx context.Context, pairs []model.WordPair, base string, limit int) []int {
	n := len(pairs)
	if !r.cfg.FocusWeak || r.store == nil {
		return r.gen.Sample(n, limit)
	}
	aggs, err := r.store.GetWeakItems(ctx, r.cfg.WeakWindow, base)
	if err != nil {
		r.log.WithError(err).Warn("failed to load weak items")
		return r.gen.Sample(n, limit)
	}
	weights := stats.WeakWeights(pairs, aggs, r.cfg.WeakTop, r.cfg.WeakFactor)
	if len(weights) == 0 {
		r.log.Info("no history for weak-item focus yet; using plain shuffle")
		return r.gen.Sample(n, limit)
	}
	r.log.WithField("items", len(weights)).Debug("weak-item focus enabled")
	return r.gen.SampleWeighted(n, limit, weights)
}

func (r *Runner) saveState(d Driver, state *persist.StateFile, snap persist.Snapshot) {
	if err := state.Save(snap); err != nil {
		r.log.WithError(err).WithField("path", state.Path()).Error("failed to save session")
		d.Notice("Failed to save session.")
		return
	}
	d.Notice("Session saved. You can resume later.")
}

func (r *Runner) clearState(state *persist.StateFile) {
	if err := state.Clear(); err != nil {
		r.log.WithError(err).WithField("path", state.Path()).Warn("failed to clear session state")
	}
}

func (r *Runner) record(ctx context.Context, run model.RunRecord, wrong []model.MissedEntry) {
	if r.store == nil {
		return
	}
	id, err := r.store.InsertRun(ctx, run, wrong)
	if err != nil {
		r.log.WithError(err).Error("failed to record run history")
		return
	}
	r.log.WithField("run", id).Debug("recorded run")
}
