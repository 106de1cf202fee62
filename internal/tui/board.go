package tui

import (
	"github.com/f3rmion/closer/internal/flow"
	"github.com/f3rmion/closer/internal/geo"
	"github.com/f3rmion/closer/internal/quiz"
)

// board is the renderer's view state. The controller writes it through the
// flow.Renderer methods and View reads it. It is shared by pointer because
// bubbletea copies the model on every update.
type board struct {
	screen flow.Screen
	modes  map[flow.Mode]bool

	question    quiz.Question
	solved      int
	total       int
	index       int
	highlighted int

	gf, me geo.PlanePoint
	labels map[flow.Place]geo.PlanePoint

	progress float64

	result       string
	move         string
	summary      string
	response     string
	envelopeOpen bool
	cryPrompt    string
	cryActions   bool

	controls      map[flow.Control]bool
	controlLabels map[flow.Control]string
}

var _ flow.Renderer = (*board)(nil)

func newBoard() *board {
	return &board{
		modes:         make(map[flow.Mode]bool),
		labels:        make(map[flow.Place]geo.PlanePoint),
		controls:      make(map[flow.Control]bool),
		controlLabels: make(map[flow.Control]string),
		highlighted:   -1,
	}
}

func (b *board) ShowScreen(s flow.Screen)     { b.screen = s }
func (b *board) SetMode(m flow.Mode, on bool) { b.modes[m] = on }

func (b *board) RenderQuestion(q quiz.Question, solved, total, index int) {
	b.question = q
	b.solved = solved
	b.total = total
	b.index = index
	b.highlighted = -1
}

func (b *board) HighlightAnswer(i int)                        { b.highlighted = i }
func (b *board) DrawMarkers(gf, me geo.PlanePoint)            { b.gf, b.me = gf, me }
func (b *board) SetLabel(p flow.Place, pt geo.PlanePoint)     { b.labels[p] = pt }
func (b *board) SetProgressBar(percent float64)               { b.progress = percent }
func (b *board) SetResultMessages(result, move string)        { b.result, b.move = result, move }
func (b *board) SetFinalSummary(text string)                  { b.summary = text }
func (b *board) SetEnvelopeResponse(text string)              { b.response = text }
func (b *board) SetEnvelopeOpen(open bool)                    { b.envelopeOpen = open }
func (b *board) SetCryPrompt(text string)                     { b.cryPrompt = text }
func (b *board) SetCryActionsVisible(visible bool)            { b.cryActions = visible }
func (b *board) SetControl(c flow.Control, enabled bool)      { b.controls[c] = enabled }
func (b *board) SetControlLabel(c flow.Control, label string) { b.controlLabels[c] = label }
