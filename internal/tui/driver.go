package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/vocadrill/internal/console"
	"github.com/verte-zerg/vocadrill/internal/quiz"
	"github.com/verte-zerg/vocadrill/internal/session"
)

// Driver runs drills full screen and falls back to the console for prompts
// and reports shown outside the drill.
type Driver struct {
	*console.Console
	log  logrus.FieldLogger
	opts []tea.ProgramOption
}

var _ quiz.Driver = (*Driver)(nil)

// NewDriver wraps c. opts are passed to every Bubble Tea program.
func NewDriver(c *console.Console, log logrus.FieldLogger, opts ...tea.ProgramOption) *Driver {
	return &Driver{Console: c, log: log, opts: opts}
}

// Drill implements quiz.Driver.
func (d *Driver) Drill(e *session.Engine, review bool) bool {
	m := NewModel(e, review)
	final, err := tea.NewProgram(m, d.opts...).Run()
	if err != nil {
		d.log.WithError(err).Error("failed to run TUI")
		return false
	}
	if fm, ok := final.(*Model); ok {
		return !fm.Quit()
	}
	return e.Finished()
}
