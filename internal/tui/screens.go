package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/closer/internal/flow"
	"github.com/f3rmion/closer/internal/tui/banner"
)

const (
	bannerText    = "CLOSER"
	envelopeTitle = "Will you be my Valentine?"
)

// renderCard renders the panel under the map for the current screen.
func (m AppModel) renderCard() string {
	b := m.board

	var body string
	switch b.screen {
	case flow.ScreenStart:
		body = m.renderStart()
	case flow.ScreenQuiz:
		body = renderQuiz(b)
	case flow.ScreenMove:
		body = renderMove(b)
	case flow.ScreenEnvelope:
		body = renderEnvelope(b)
	case flow.ScreenNo:
		body = renderNo(b)
	case flow.ScreenFinal:
		body = m.renderFinal()
	}

	style := CardStyle
	switch {
	case b.modes[flow.ModeCry]:
		style = CryCardStyle
	case b.modes[flow.ModeReunion]:
		style = ReunionCardStyle
	}
	return style.Width(max(m.width-2, 20) - 2).Render(body)
}

func (m AppModel) renderStart() string {
	cols := min(max(m.width-10, 12), 48)
	art := BannerStyle.Render(banner.Render(bannerText, cols, 4))
	return lipgloss.JoinVertical(lipgloss.Left,
		art,
		"",
		SubtitleStyle.Render("Every right answer brings us closer."),
		"",
		button("Start", true),
	)
}

func renderQuiz(b *board) string {
	var sb strings.Builder
	sb.WriteString(CounterStyle.Render(fmt.Sprintf("Question %d of %d   Solved: %d/%d",
		b.index+1, b.total, b.solved, b.total)))
	sb.WriteString("\n\n")
	sb.WriteString(QuestionStyle.Render(b.question.Text))
	sb.WriteString("\n")

	for i, a := range b.question.Answers {
		line := fmt.Sprintf("%d. %s", i+1, a)
		if i == b.highlighted {
			sb.WriteString(AnswerSelectedStyle.Render("▸ " + line))
		} else {
			sb.WriteString(AnswerStyle.Render("  " + line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(button("Submit", b.controls[flow.ControlSubmit]))
	return sb.String()
}

func renderMove(b *board) string {
	label := b.controlLabels[flow.ControlMoveContinue]
	enabled := b.controls[flow.ControlMoveContinue] && !b.modes[flow.ModeMoving]
	if !enabled {
		label = "..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		ResultStyle.Render(b.result),
		MoveMessageStyle.Render(b.move),
		"",
		button(label, enabled),
	)
}

func renderEnvelope(b *board) string {
	if !b.envelopeOpen {
		return lipgloss.JoinVertical(lipgloss.Left,
			ReunionBannerStyle.Render("✉  A letter for you"),
			"",
			button("Open", b.controls[flow.ControlOpenEnvelope]),
		)
	}

	lines := []string{
		ReunionBannerStyle.Render("♥ " + envelopeTitle + " ♥"),
		"",
		button("y  Yes", true) + "  " + button("n  No", true),
	}
	if b.response != "" {
		lines = append(lines, "", ResponseStyle.Render(b.response))
	}
	if b.controls[flow.ControlProceedToFinal] {
		lines = append(lines, "", button("Continue", true))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderNo(b *board) string {
	lines := []string{CryPromptStyle.Render(b.cryPrompt)}
	if b.cryActions {
		enabled := !b.modes[flow.ModeMoving]
		lines = append(lines, "", button("y  Yes", enabled)+"  "+button("n  No", enabled))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m AppModel) renderFinal() string {
	lines := []string{
		ReunionBannerStyle.Render("♥ Happy Valentine's Day ♥"),
		"",
		SummaryStyle.Render(m.board.summary),
	}
	if m.copied {
		lines = append(lines, "", CopiedStyle.Render("Copied to clipboard"))
	}
	lines = append(lines, "", button("Play again", true))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func button(label string, enabled bool) string {
	if enabled {
		return ButtonStyle.Render(label)
	}
	return ButtonDisabledStyle.Render(label)
}
