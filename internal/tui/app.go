// Package tui is the terminal transport for the review engine: it renders
// one card at a time and feeds answers back through the engine's
// StartSession/SubmitAnswer contract.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/mpetrov/cardbox/internal/engine"
	"github.com/mpetrov/cardbox/internal/session"
	"github.com/mpetrov/cardbox/internal/tui/components"
)

// localUser identifies the single terminal user to the engine, which is
// keyed by opaque user ids for multi-user transports.
const localUser = "local"

type phase int

const (
	phaseLoading phase = iota
	phaseNothingDue
	phaseQuestion
	phaseFeedback
	phaseSummary
	phaseError
)

// Model is the root Bubble Tea model for a review session.
type Model struct {
	eng    *engine.Engine
	width  int
	height int

	phase     phase
	view      *engine.SessionView
	last      *engine.AnswerResult
	choice    components.MultiChoice
	input     components.TextInput
	typing    bool // typed-answer mode instead of option selection
	answered  int
	batchSize int
	errMsg    string
}

// NewModel creates the review model over an engine.
func NewModel(eng *engine.Engine) Model {
	return Model{
		eng:   eng,
		phase: phaseLoading,
		input: components.NewTextInput("Type your answer...", 60),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.startSession(), m.input.Init())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sessionStartedMsg:
		return m.handleStarted(msg)

	case answerGradedMsg:
		return m.handleGraded(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.phase == phaseQuestion && m.typing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleStarted(msg sessionStartedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.phase = phaseError
		m.errMsg = msg.err.Error()
		return m, nil
	}
	if msg.result.NothingToReview {
		m.phase = phaseNothingDue
		return m, nil
	}

	m.showCard(msg.result.View)
	m.answered = 0
	m.batchSize = msg.result.View.Remaining + 1
	return m, nil
}

func (m Model) handleGraded(msg answerGradedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// A stale answer means this card was already graded; ignore the
		// duplicate rather than tearing the session down.
		if errors.Is(msg.err, session.ErrStaleAnswer) {
			return m, nil
		}
		m.phase = phaseError
		m.errMsg = msg.err.Error()
		return m, nil
	}

	m.last = msg.result
	m.answered++
	if m.typing {
		m.input.Submit(msg.result.Correct)
	}
	m.phase = phaseFeedback
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		m.eng.EndSession(localUser)
		return m, tea.Quit
	}

	switch m.phase {
	case phaseQuestion:
		switch key {
		case "esc":
			m.eng.EndSession(localUser)
			return m, tea.Quit
		case "tab":
			m.typing = !m.typing
			return m, nil
		case "enter":
			answer := m.choice.Value()
			if m.typing {
				answer = m.input.Value()
				if strings.TrimSpace(answer) == "" {
					return m, nil
				}
			}
			return m, m.submitAnswer(m.view.CardID, answer)
		}
		if m.typing {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.choice, cmd = m.choice.Update(msg)
		return m, cmd

	case phaseFeedback:
		if key == "esc" {
			m.eng.EndSession(localUser)
			return m, tea.Quit
		}
		// Any other key continues.
		if m.last.Finished {
			m.phase = phaseSummary
			return m, nil
		}
		m.showCard(m.last.Next)
		return m, nil

	case phaseSummary:
		switch key {
		case "r":
			m.phase = phaseLoading
			return m, m.startSession()
		default:
			return m, tea.Quit
		}

	case phaseNothingDue, phaseError:
		return m, tea.Quit
	}

	return m, nil
}

// showCard installs the next view and resets the per-card inputs.
func (m *Model) showCard(v *engine.SessionView) {
	m.view = v
	m.choice = components.NewMultiChoice(v.Options)
	m.input.Reset()
	m.phase = phaseQuestion
}

func (m Model) startSession() tea.Cmd {
	return func() tea.Msg {
		res, err := m.eng.StartSession(context.Background(), localUser)
		return sessionStartedMsg{result: res, err: err}
	}
}

func (m Model) submitAnswer(cardID int64, answer string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.eng.SubmitAnswer(context.Background(), localUser, cardID, answer)
		return answerGradedMsg{result: res, err: err}
	}
}

// Run starts the Bubble Tea program over the engine.
func Run(eng *engine.Engine) error {
	p := tea.NewProgram(NewModel(eng))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
