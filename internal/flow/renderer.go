package flow

import (
	"github.com/f3rmion/closer/internal/geo"
	"github.com/f3rmion/closer/internal/quiz"
)

// Renderer draws what the controller decides. Implementations must not call
// back into the controller from these methods.
type Renderer interface {
	ShowScreen(s Screen)
	SetMode(m Mode, on bool)

	RenderQuestion(q quiz.Question, solved, total, index int)
	HighlightAnswer(index int)

	DrawMarkers(gf, me geo.PlanePoint)
	SetLabel(place Place, p geo.PlanePoint)
	SetProgressBar(percent float64)

	SetResultMessages(result, move string)
	SetFinalSummary(text string)
	SetEnvelopeResponse(text string)
	SetEnvelopeOpen(open bool)
	SetCryPrompt(text string)
	SetCryActionsVisible(visible bool)

	SetControl(c Control, enabled bool)
	SetControlLabel(c Control, label string)
}
