// Package console provides the line-based quiz interface.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/vocadrill/internal/hint"
	"github.com/verte-zerg/vocadrill/internal/model"
	"github.com/verte-zerg/vocadrill/internal/quiz"
	"github.com/verte-zerg/vocadrill/internal/session"
)

// maxMenuAttempts bounds how often a menu is shown again after invalid input.
const maxMenuAttempts = 5

// ErrNoChoice is returned when a menu gets no valid answer.
var ErrNoChoice = errors.New("no valid selection")

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// Console reads answers line by line and writes plain text feedback.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
	log logrus.FieldLogger
}

var _ quiz.Driver = (*Console)(nil)

// New returns a Console reading from in and writing to out.
func New(in io.Reader, out io.Writer, log logrus.FieldLogger) *Console {
	return &Console{in: bufio.NewScanner(in), out: out, log: log}
}

// SelectMode shows the mode menu until a valid choice is made.
func (c *Console) SelectMode() (string, error) {
	modes := []string{model.ModePractice, model.ModeTest, model.ModeWrong}
	for attempt := 0; attempt < maxMenuAttempts; attempt++ {
		c.println(headerStyle.Render("=== Mode Selection ==="))
		c.println("0: Practice mode")
		c.println("1: Test mode")
		c.println("2: Wrong deck review")
		c.print("Select mode (0/1/2): ")
		line, ok := c.readLine()
		if !ok {
			return "", ErrNoChoice
		}
		if idx, err := strconv.Atoi(line); err == nil && idx >= 0 && idx < len(modes) {
			return modes[idx], nil
		}
		c.println("Please enter 0, 1, or 2")
	}
	return "", ErrNoChoice
}

// Confirm asks a y/n question. Anything but y or Y is a no.
func (c *Console) Confirm(question string) bool {
	c.print(question)
	line, ok := c.readLine()
	return ok && (line == "y" || line == "Y")
}

// Drill runs the question loop. End of input counts as quit.
func (c *Console) Drill(e *session.Engine, review bool) bool {
	penalized, hinted := false, false
	for {
		p, ok := e.Prompt()
		if !ok {
			return true
		}
		if p.Hint != "" && !hinted {
			c.println(hintStyle.Render(p.Hint))
		}
		c.print(fmt.Sprintf("What is the meaning of %s? ", p.QuestionText))
		line, ok := c.readLine()
		if !ok {
			c.println("")
			return false
		}

		switch line {
		case "quit", "q":
			return false
		case "hint", "h":
			h, _ := e.RequestHint()
			hinted = true
			c.println(hintStyle.Render(h.Hint))
			if h.Penalized {
				penalized = true
				c.println(wrongStyle.Render("(Hint used twice - marked as incorrect)"))
			}
			continue
		}

		fb := e.Submit(line)
		wasPenalized := penalized
		penalized, hinted = false, false
		if fb.IsCorrect {
			if review {
				if wasPenalized {
					c.println(correctStyle.Render("Correct! (but keeping in wrong deck due to hint usage)"))
				} else {
					c.println(correctStyle.Render("Correct! (removed from wrong deck)"))
				}
			}
			continue
		}
		if fb.HintLevel >= hint.MaxLevel {
			c.println(wrongStyle.Render(fmt.Sprintf("Incorrect. The correct answer is: %s (type it again)", fb.CorrectAnswer)))
		} else {
			c.println(wrongStyle.Render("Incorrect. (type 'hint' for a hint)"))
		}
	}
}

// Report prints the score and the missed items.
func (c *Console) Report(o quiz.Outcome) {
	c.println(headerStyle.Render(fmt.Sprintf("Score: %d / %d", o.Score, o.Total)))
	if len(o.Wrong) == 0 {
		c.println(correctStyle.Render("Perfect! No wrong answers."))
		return
	}
	c.println("The following words were answered incorrectly: ")
	for _, item := range o.Wrong {
		c.println(fmt.Sprintf("%s:%s", item.Word, item.Expected))
	}
}

// Notice prints a status line.
func (c *Console) Notice(msg string) {
	if msg == "" {
		c.println("")
		return
	}
	c.println(noticeStyle.Render(msg))
}

func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			c.log.WithError(err).Warn("failed to read input")
		}
		return "", false
	}
	return strings.TrimRight(c.in.Text(), "\r"), true
}

func (c *Console) print(s string) {
	if _, err := io.WriteString(c.out, s); err != nil {
		// Best-effort terminal output.
		_ = err
	}
}

func (c *Console) println(s string) {
	c.print(s + "\n")
}
