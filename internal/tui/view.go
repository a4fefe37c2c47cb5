package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mpetrov/cardbox/internal/tui/components"
	"github.com/mpetrov/cardbox/internal/tui/theme"
)

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	var content string
	switch m.phase {
	case phaseLoading:
		content = m.renderLoading()
	case phaseNothingDue:
		content = m.renderNothingDue()
	case phaseQuestion:
		content = m.renderQuestion()
	case phaseFeedback:
		content = m.renderFeedback()
	case phaseSummary:
		content = m.renderSummary()
	case phaseError:
		content = m.renderError()
	}

	v.SetContent(content)
	return v
}

func (m Model) renderLoading() string {
	return m.centered(theme.Subtitle.Render("Loading cards..."))
}

func (m Model) renderNothingDue() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Nothing to review"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render("The deck is empty. Add cards with `cardbox import`."))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Press any key to exit"))
	return m.centered(b.String())
}

func (m Model) renderQuestion() string {
	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s", m.view.Category))

	infoRight := theme.Subtitle.Render(
		fmt.Sprintf("Card %d/%d", m.answered+1, m.batchSize))

	infoLine := infoLeft
	rightPad := m.width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(m.divider())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(m.view.Question))
	b.WriteString("\n\n")

	if m.typing {
		b.WriteString(lipgloss.NewStyle().
			Width(m.width).
			Align(lipgloss.Center).
			Render("Answer: " + m.input.View()))
		b.WriteString("\n\n")
		b.WriteString(m.hintLine("Enter submit · Tab pick from options · Esc quit"))
	} else {
		b.WriteString(m.choice.View())
		b.WriteString("\n")
		b.WriteString(m.hintLine("↑↓ navigate · Enter submit · Tab type answer · Esc quit"))
	}

	return b.String()
}

func (m Model) renderFeedback() string {
	var b strings.Builder

	if m.last.Correct {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Incorrect."))
		if m.last.CorrectAnswer != "" {
			b.WriteString(theme.Body.Render("  The answer was: "))
			b.WriteString(theme.Correct.Render(m.last.CorrectAnswer))
		}
	}
	b.WriteString("\n\n")

	b.WriteString(m.choice.ViewGraded(m.last.CorrectAnswer))
	b.WriteString("\n")

	if m.last.Explanation != "" {
		b.WriteString(theme.Card.Width(min(m.width-4, 70)).Render(m.last.Explanation))
		b.WriteString("\n\n")
	}

	b.WriteString(m.hintLine("Any key to continue · Esc quit"))
	return b.String()
}

func (m Model) renderSummary() string {
	sum := m.last.Summary

	var b strings.Builder
	b.WriteString(theme.Title.Render("Session complete"))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("Accuracy", sum.Percent/100, true, min(m.width-8, 50))
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	b.WriteString(theme.Body.Render(
		fmt.Sprintf("%d of %d correct (%.0f%%)", sum.Correct, sum.Total, sum.Percent)))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("R review again · any other key to exit"))

	return m.centered(b.String())
}

func (m Model) renderError() string {
	var b strings.Builder
	b.WriteString(theme.Incorrect.Render("Something went wrong"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(m.errMsg))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Press any key to exit"))
	return m.centered(b.String())
}

func (m Model) centered(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) divider() string {
	w := m.width - 4
	if w < 0 {
		w = 0
	}
	return lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", w))
}

func (m Model) hintLine(text string) string {
	return lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(text)
}
