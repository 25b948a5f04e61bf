// Package tui provides the Bubble Tea quiz interface.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/vocadrill/internal/hint"
	"github.com/verte-zerg/vocadrill/internal/session"
)

var (
	wordStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea drill UI over a session engine.
type Model struct {
	engine *session.Engine
	review bool

	input textinput.Model
	bar   progress.Model

	width  int
	height int

	prompt    session.Prompt
	hasPrompt bool
	hintLine  string
	verdict   string
	penalized bool

	quit bool
}

// NewModel constructs a drill model. review switches the verdicts to the
// wrong-deck review wording.
func NewModel(e *session.Engine, review bool) *Model {
	input := textinput.New()
	input.Placeholder = "meaning, or 'hint' / 'quit'"
	input.Prompt = "> "
	input.Focus()

	m := &Model{
		engine: e,
		review: review,
		input:  input,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	m.nextPrompt()
	return m
}

// Quit reports whether the learner left before the engine finished.
func (m *Model) Quit() bool {
	return m.quit
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if !m.hasPrompt {
		return tea.Quit
	}
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(msg.Width/2, 10)
		m.input.Width = max(msg.Width/2, 10)
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quit = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.handleLine(m.input.Value())
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleLine(line string) tea.Cmd {
	m.input.Reset()
	switch line {
	case "quit", "q":
		m.quit = true
		return tea.Quit
	case "hint", "h":
		h, ok := m.engine.RequestHint()
		if !ok {
			return nil
		}
		m.hintLine = h.Hint
		if h.Penalized {
			m.penalized = true
			m.verdict = wrongStyle.Render("(Hint used twice - marked as incorrect)")
		}
		return nil
	}

	fb := m.engine.Submit(line)
	wasPenalized := m.penalized
	m.penalized = false
	switch {
	case fb.IsCorrect && m.review && wasPenalized:
		m.verdict = correctStyle.Render("Correct! (but keeping in wrong deck due to hint usage)")
	case fb.IsCorrect && m.review:
		m.verdict = correctStyle.Render("Correct! (removed from wrong deck)")
	case fb.IsCorrect:
		m.verdict = correctStyle.Render("Correct!")
	case fb.HintLevel >= hint.MaxLevel:
		m.verdict = wrongStyle.Render(fmt.Sprintf("Incorrect. The correct answer is: %s (type it again)", fb.CorrectAnswer))
	default:
		m.verdict = wrongStyle.Render("Incorrect. (type 'hint' for a hint)")
	}

	if !m.nextPrompt() {
		return tea.Quit
	}
	return nil
}

func (m *Model) nextPrompt() bool {
	p, ok := m.engine.Prompt()
	m.prompt = p
	m.hasPrompt = ok
	m.hintLine = p.Hint
	return ok
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.hasPrompt {
		return ""
	}
	contentWidth := int(float64(m.width) * 0.70)
	lines := []string{
		wordStyle.Render(fmt.Sprintf("What is the meaning of %s?", m.prompt.QuestionText)),
		"",
	}
	if m.hintLine != "" {
		lines = append(lines, hintStyle.Render(wrapText(m.hintLine, contentWidth)))
	}
	lines = append(lines, m.input.View())
	if m.verdict != "" {
		lines = append(lines, "", wrapText(m.verdict, contentWidth))
	}
	content := strings.Join(lines, "\n")
	if m.width == 0 || m.height == 0 {
		return content + "\n" + m.renderFooter()
	}

	footer := m.renderFooter()
	if m.height < 4 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 2
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerBlock := lipgloss.Place(m.width, 2, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerBlock
}

func (m *Model) renderFooter() string {
	p := m.prompt.Progress
	percent := 0.0
	if p.Total > 0 {
		percent = float64(p.Done) / float64(p.Total)
	}
	segments := []string{
		fmt.Sprintf("Score %d/%d", p.Done, p.Total),
		fmt.Sprintf("Attempt %d", m.prompt.Attempt),
	}
	if m.review {
		segments = append(segments, "Review")
	}
	return m.bar.ViewAs(percent) + "\n" + footerStyle.Render(strings.Join(segments, "  "))
}
