package flow

import "fmt"

// Screen is the active top-level view. Exactly one is shown at a time.
type Screen int

const (
	ScreenStart Screen = iota
	ScreenQuiz
	ScreenMove
	ScreenEnvelope
	ScreenNo
	ScreenFinal
)

var screenNames = [...]string{"start", "quiz", "move", "envelope", "no", "final"}

func (s Screen) String() string {
	if s < 0 || int(s) >= len(screenNames) {
		return fmt.Sprintf("screen(%d)", int(s))
	}
	return screenNames[s]
}

// MapOverlay reports whether the screen shows the map without the tracker card.
func (s Screen) MapOverlay() bool {
	return s == ScreenMove || s == ScreenNo
}

// Mode is a display overlay toggled independently of the screen.
type Mode int

const (
	ModeReunion Mode = iota // sticky once every question is solved
	ModeHearts
	ModeCry
	ModeMoving // markers are animating
)

var modeNames = [...]string{"reunion", "hearts", "cry", "moving"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// Control is a named button the renderer enables, disables or relabels.
type Control int

const (
	ControlSubmit Control = iota
	ControlMoveContinue
	ControlOpenEnvelope
	ControlProceedToFinal
)

var controlNames = [...]string{"submit", "move-continue", "open-envelope", "proceed-to-final"}

func (c Control) String() string {
	if c < 0 || int(c) >= len(controlNames) {
		return fmt.Sprintf("control(%d)", int(c))
	}
	return controlNames[c]
}

// Place names the static map labels.
type Place string

const (
	PlaceConnecticut Place = "connecticut"
	PlaceNepal       Place = "nepal"
	PlaceAlaska      Place = "alaska"
)

// Phase is the controller's animation state. Any phase other than PhaseIdle
// rejects every event.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAnimatingMove
	PhaseAnimatingDrift
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAnimatingMove:
		return "animating-move"
	case PhaseAnimatingDrift:
		return "animating-drift"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// EventKind identifies a user intent emitted by the renderer.
type EventKind int

const (
	KindStart EventKind = iota
	KindSelectAnswer
	KindSubmit
	KindMoveContinue
	KindOpenEnvelope
	KindEnvelopeYes
	KindEnvelopeNo
	KindProceedToFinal
	KindCryYes
	KindCryNo
	KindRestart
)

var kindNames = [...]string{
	"start", "select-answer", "submit", "move-continue", "open-envelope",
	"envelope-yes", "envelope-no", "proceed-to-final", "cry-yes", "cry-no", "restart",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("event(%d)", int(k))
	}
	return kindNames[k]
}

// Event is a user intent. Answer is only read for KindSelectAnswer.
type Event struct {
	Kind   EventKind
	Answer int
}

func (e Event) String() string {
	if e.Kind == KindSelectAnswer {
		return fmt.Sprintf("%s(%d)", e.Kind, e.Answer)
	}
	return e.Kind.String()
}

// Events without a payload.
var (
	Begin          = Event{Kind: KindStart}
	Submit         = Event{Kind: KindSubmit}
	MoveContinue   = Event{Kind: KindMoveContinue}
	OpenEnvelope   = Event{Kind: KindOpenEnvelope}
	EnvelopeYes    = Event{Kind: KindEnvelopeYes}
	EnvelopeNo     = Event{Kind: KindEnvelopeNo}
	ProceedToFinal = Event{Kind: KindProceedToFinal}
	CryYes         = Event{Kind: KindCryYes}
	CryNo          = Event{Kind: KindCryNo}
	Restart        = Event{Kind: KindRestart}
)

// SelectAnswer picks answer option i of the current question.
func SelectAnswer(i int) Event {
	return Event{Kind: KindSelectAnswer, Answer: i}
}
