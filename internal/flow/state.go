package flow

import (
	"github.com/f3rmion/closer/internal/geo"
	"github.com/f3rmion/closer/internal/quiz"
)

// State is a read-only copy of a session.
type State struct {
	Session string
	Screen  Screen
	Phase   Phase

	Index    int
	Solved   int
	Total    int
	Selected int // -1 when nothing is selected
	Answers  []quiz.Answer
	Retries  int

	GF geo.Coordinate
	ME geo.Coordinate

	Reunion bool
	Hearts  bool
	Cry     bool
	Moving  bool

	PendingCorrect bool
	EnvelopeOpen   bool
	CanProceed     bool
	CryResolved    bool
	HasSnapshot    bool
	Summary        string
}

// State returns a snapshot of the session.
func (c *Controller) State() State {
	sel, ok := c.quiz.Selected()
	if !ok {
		sel = -1
	}
	_, saved := c.pos.Saved()

	return State{
		Session:        c.id,
		Screen:         c.screen,
		Phase:          c.phase,
		Index:          c.quiz.Index(),
		Solved:         c.quiz.Solved(),
		Total:          c.quiz.Total(),
		Selected:       sel,
		Answers:        c.quiz.Answers(),
		Retries:        c.quiz.RetryCount(),
		GF:             c.pos.GF(),
		ME:             c.pos.ME(),
		Reunion:        c.modes[ModeReunion],
		Hearts:         c.modes[ModeHearts],
		Cry:            c.modes[ModeCry],
		Moving:         c.modes[ModeMoving],
		PendingCorrect: c.pendingCorrect,
		EnvelopeOpen:   c.envelopeOpen,
		CanProceed:     c.canProceed,
		CryResolved:    c.cryResolved,
		HasSnapshot:    saved,
		Summary:        c.summary,
	}
}
