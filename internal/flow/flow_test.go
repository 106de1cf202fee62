package flow

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/f3rmion/closer/internal/anim"
	"github.com/f3rmion/closer/internal/config"
	"github.com/f3rmion/closer/internal/geo"
	"github.com/f3rmion/closer/internal/position"
	"github.com/f3rmion/closer/internal/quiz"
)

// recorder is a Renderer that keeps the latest value of everything drawn.
type recorder struct {
	screen        Screen
	screens       []Screen
	modes         map[Mode]bool
	question      quiz.Question
	solved        int
	total         int
	index         int
	highlighted   int
	gf, me        geo.PlanePoint
	draws         int
	labels        map[Place]geo.PlanePoint
	progress      float64
	result, move  string
	summary       string
	response      string
	envelopeOpen  bool
	cryPrompt     string
	cryActions    bool
	controls      map[Control]bool
	controlLabels map[Control]string
}

func newRecorder() *recorder {
	return &recorder{
		modes:         make(map[Mode]bool),
		labels:        make(map[Place]geo.PlanePoint),
		controls:      make(map[Control]bool),
		controlLabels: make(map[Control]string),
		highlighted:   -1,
	}
}

func (r *recorder) ShowScreen(s Screen) {
	r.screen = s
	r.screens = append(r.screens, s)
}
func (r *recorder) SetMode(m Mode, on bool) { r.modes[m] = on }
func (r *recorder) RenderQuestion(q quiz.Question, solved, total, index int) {
	r.question, r.solved, r.total, r.index = q, solved, total, index
	r.highlighted = -1
}
func (r *recorder) HighlightAnswer(i int) { r.highlighted = i }
func (r *recorder) DrawMarkers(gf, me geo.PlanePoint) {
	r.gf, r.me = gf, me
	r.draws++
}
func (r *recorder) SetLabel(p Place, pt geo.PlanePoint)     { r.labels[p] = pt }
func (r *recorder) SetProgressBar(percent float64)          { r.progress = percent }
func (r *recorder) SetResultMessages(result, move string)   { r.result, r.move = result, move }
func (r *recorder) SetFinalSummary(text string)             { r.summary = text }
func (r *recorder) SetEnvelopeResponse(text string)         { r.response = text }
func (r *recorder) SetEnvelopeOpen(open bool)               { r.envelopeOpen = open }
func (r *recorder) SetCryPrompt(text string)                { r.cryPrompt = text }
func (r *recorder) SetCryActionsVisible(visible bool)       { r.cryActions = visible }
func (r *recorder) SetControl(c Control, enabled bool)      { r.controls[c] = enabled }
func (r *recorder) SetControlLabel(c Control, label string) { r.controlLabels[c] = label }

// clock is a manually advanced time source.
type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

type harness struct {
	t     *testing.T
	c     *Controller
	r     *recorder
	clk   *clock
	deck  *config.Deck
	place position.Places
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	deck, err := config.DefaultDeck()
	if err != nil {
		t.Fatalf("loading deck: %v", err)
	}
	clk := &clock{t: time.Date(2026, 2, 14, 20, 0, 0, 0, time.UTC)}
	r := newRecorder()
	places := deck.Places()
	c := New(r, deck.Questions, places, WithClock(clk.now), WithSessionID("test"))
	return &harness{t: t, c: c, r: r, clk: clk, deck: deck, place: places}
}

func (h *harness) dispatch(ev Event) {
	h.t.Helper()
	if err := h.c.Dispatch(ev); err != nil {
		h.t.Fatalf("Dispatch(%s): %v", ev, err)
	}
}

// settle pumps 60 Hz frames until the running animation completes.
func (h *harness) settle() {
	h.t.Helper()
	for i := 0; i < 1000; i++ {
		h.clk.t = h.clk.t.Add(16 * time.Millisecond)
		if !h.c.Tick(h.clk.t) {
			return
		}
	}
	h.t.Fatal("animation never finished")
}

// answer selects option i on the current question, submits, and waits for
// the move animation.
func (h *harness) answer(i int) {
	h.t.Helper()
	h.dispatch(SelectAnswer(i))
	h.dispatch(Submit)
	h.settle()
}

func (h *harness) correct() int {
	return h.deck.Questions[h.c.State().Index].Correct
}

func (h *harness) wrong() int {
	return (h.correct() + 1) % len(h.deck.Questions[h.c.State().Index].Answers)
}

// finishQuiz answers every remaining question correctly.
func (h *harness) finishQuiz() {
	h.t.Helper()
	for h.c.State().Screen == ScreenQuiz {
		h.answer(h.correct())
		h.dispatch(MoveContinue)
	}
}

func sameCoord(a, b geo.Coordinate) bool {
	return math.Abs(a.Lat-b.Lat) < 1e-9 && math.Abs(a.Lon-b.Lon) < 1e-9
}

func TestNewDrawsInitialState(t *testing.T) {
	h := newHarness(t)
	st := h.c.State()

	if st.Screen != ScreenStart || h.r.screen != ScreenStart {
		t.Fatalf("initial screen = %s", st.Screen)
	}
	if st.Session != "test" {
		t.Errorf("session = %q", st.Session)
	}
	if len(h.r.labels) != 3 {
		t.Errorf("got %d labels, want 3", len(h.r.labels))
	}
	if h.r.labels[PlaceAlaska] != h.place.Alaska.Plane() {
		t.Errorf("alaska label = %+v", h.r.labels[PlaceAlaska])
	}
	if h.r.gf != h.place.Connecticut.Plane() || h.r.me != h.place.Nepal.Plane() {
		t.Errorf("markers = %+v / %+v", h.r.gf, h.r.me)
	}
	if h.r.cryPrompt != msgCryIdle || !h.r.cryActions {
		t.Errorf("cry prompt = %q visible=%v", h.r.cryPrompt, h.r.cryActions)
	}
}

func TestBeginRendersFirstQuestion(t *testing.T) {
	h := newHarness(t)
	h.dispatch(Begin)

	if h.r.screen != ScreenQuiz {
		t.Fatalf("screen = %s, want quiz", h.r.screen)
	}
	if h.r.question.Text != h.deck.Questions[0].Text || h.r.index != 0 || h.r.total != 6 {
		t.Errorf("rendered %q index=%d total=%d", h.r.question.Text, h.r.index, h.r.total)
	}
	if h.r.controls[ControlSubmit] {
		t.Error("submit enabled before a selection")
	}
	if h.r.progress != 0 {
		t.Errorf("progress = %v", h.r.progress)
	}

	h.dispatch(SelectAnswer(1))
	if !h.r.controls[ControlSubmit] || h.r.highlighted != 1 {
		t.Errorf("after select: submit=%v highlighted=%d", h.r.controls[ControlSubmit], h.r.highlighted)
	}
}

func TestAllCorrect(t *testing.T) {
	h := newHarness(t)
	h.dispatch(Begin)

	for i := 0; i < 6; i++ {
		h.answer(h.correct())
		want := labelNextQuestion
		if i == 5 {
			want = labelWhatNext
		}
		if got := h.r.controlLabels[ControlMoveContinue]; got != want {
			t.Errorf("question %d continue label = %q, want %q", i+1, got, want)
		}
		if !h.r.controls[ControlMoveContinue] {
			t.Errorf("question %d continue control disabled after settle", i+1)
		}
		h.dispatch(MoveContinue)
	}

	st := h.c.State()
	if st.Solved != 6 || st.Screen != ScreenEnvelope {
		t.Fatalf("solved=%d screen=%s", st.Solved, st.Screen)
	}
	if st.GF != h.place.Meet || st.ME != h.place.Meet {
		t.Errorf("final positions %+v / %+v, want meet %+v", st.GF, st.ME, h.place.Meet)
	}
	if !st.Reunion || !h.r.modes[ModeReunion] {
		t.Error("reunion mode not enabled")
	}
	if st.Hearts {
		t.Error("hearts still visible on envelope screen")
	}

	h.dispatch(OpenEnvelope)
	h.dispatch(EnvelopeYes)
	h.dispatch(ProceedToFinal)

	if h.r.screen != ScreenFinal || h.r.progress != 100 {
		t.Errorf("screen=%s progress=%v", h.r.screen, h.r.progress)
	}
	if want := "Solved all 6 questions. Retries used: 0."; h.r.summary != want {
		t.Errorf("summary = %q, want %q", h.r.summary, want)
	}
}

func TestRetriesDoNotChangeReunion(t *testing.T) {
	h := newHarness(t)
	h.dispatch(Begin)

	h.answer(h.wrong())
	h.dispatch(MoveContinue)
	h.answer(h.wrong())
	h.dispatch(MoveContinue)
	h.finishQuiz()

	st := h.c.State()
	// Three entries for question 1 plus one for each of the other five.
	if len(st.Answers) != 8 || st.Retries != 2 {
		t.Fatalf("answers=%d retries=%d, want 8 and 2", len(st.Answers), st.Retries)
	}
	if st.Solved != 6 {
		t.Errorf("solved = %d", st.Solved)
	}
	if st.GF != h.place.Meet || st.ME != h.place.Meet || !st.Reunion {
		t.Errorf("reunion outcome differs: %+v / %+v reunion=%v", st.GF, st.ME, st.Reunion)
	}

	h.dispatch(OpenEnvelope)
	h.dispatch(EnvelopeYes)
	h.dispatch(ProceedToFinal)
	if want := "Solved all 6 questions. Retries used: 2."; h.r.summary != want {
		t.Errorf("summary = %q, want %q", h.r.summary, want)
	}
}

func TestWrongAnswerDriftCompounds(t *testing.T) {
	h := newHarness(t)
	h.dispatch(Begin)

	h.answer(h.wrong())
	st := h.c.State()
	wantGF := geo.MoveToward(h.place.Connecticut, h.place.Alaska, 0.26)
	wantME := geo.Coordinate{Lat: h.place.Nepal.Lat, Lon: h.place.Nepal.Lon + 22}
	if !sameCoord(st.GF, wantGF) || !sameCoord(st.ME, wantME) {
		t.Fatalf("after one miss %+v / %+v, want %+v / %+v", st.GF, st.ME, wantGF, wantME)
	}
	if h.r.controlLabels[ControlMoveContinue] != labelTryAgain || h.r.result != msgResultWrong {
		t.Errorf("label=%q result=%q", h.r.controlLabels[ControlMoveContinue], h.r.result)
	}

	h.dispatch(MoveContinue)
	if h.c.State().Index != 0 || h.r.screen != ScreenQuiz {
		t.Fatal("a wrong answer advanced the quiz")
	}

	h.answer(h.wrong())
	st = h.c.State()
	wantGF = geo.MoveToward(wantGF, h.place.Alaska, 0.26)
	wantME.Lon = geo.NormalizeLongitude(wantME.Lon + 22)
	if !sameCoord(st.GF, wantGF) || !sameCoord(st.ME, wantME) {
		t.Errorf("after two misses %+v / %+v, want %+v / %+v", st.GF, st.ME, wantGF, wantME)
	}
	if st.Solved != 0 {
		t.Errorf("solved = %d", st.Solved)
	}
}

func TestMeLongitudeWraps(t *testing.T) {
	h := newHarness(t)
	h.dispatch(Begin)

	// Nepal starts at 84.124 east; the fifth miss crosses 180.
	for i := 0; i < 5; i++ {
		h.answer(h.wrong())
		h.dispatch(MoveContinue)
	}
	lon := h.c.State().ME.Lon
	if want := 84.124 + 5*22 - 360; math.Abs(lon-want) > 1e-9 {
		t.Errorf("ME lon = %v, want %v", lon, want)
	}
}

func TestCorrectAnswerTargets(t *testing.T) {
	h := newHarness(t)
	h.dispatch(Begin)
	h.answer(h.correct())

	st := h.c.State()
	ratio := quiz.ProgressRatio(1, 6)
	wantGF := geo.MoveToward(h.place.Connecticut, h.place.Meet, ratio)
	wantME := geo.MoveToward(h.place.Nepal, h.place.Meet, ratio)
	if !sameCoord(st.GF, wantGF) || !sameCoord(st.ME, wantME) {
		t.Errorf("positions %+v / %+v, want %+v / %+v", st.GF, st.ME, wantGF, wantME)
	}
	if h.r.result != msgResultCloser || st.Reunion {
		t.Errorf("result=%q reunion=%v", h.r.result, st.Reunion)
	}

	h.dispatch(MoveContinue)
	if h.r.index != 1 || math.Abs(h.r.progress-100.0/6) > 1e-9 {
		t.Errorf("index=%d progress=%v", h.r.index, h.r.progress)
	}
}

func TestAnimationIsExclusive(t *testing.T) {
	h := newHarness(t)
	h.dispatch(Begin)
	if h.c.Animation() != nil {
		t.Fatal("animation present before any submit")
	}
	h.dispatch(SelectAnswer(h.correct()))
	h.dispatch(Submit)
	if a := h.c.Animation(); a == nil || a.Duration() != anim.MoveDuration {
		t.Fatalf("running animation = %v, want one lasting %v", a, anim.MoveDuration)
	}

	st := h.c.State()
	if st.Phase != PhaseAnimatingMove || !h.c.Busy() || !h.r.modes[ModeMoving] {
		t.Fatalf("phase=%s busy=%v moving=%v", st.Phase, h.c.Busy(), h.r.modes[ModeMoving])
	}
	if h.r.controls[ControlMoveContinue] {
		t.Error("continue enabled during animation")
	}

	for _, ev := range []Event{MoveContinue, Restart, Submit, SelectAnswer(0)} {
		if err := h.c.Dispatch(ev); !errors.Is(err, ErrBusy) {
			t.Errorf("Dispatch(%s) during animation = %v, want ErrBusy", ev, err)
		}
	}

	// Half way through the markers sit between start and target.
	h.clk.t = h.clk.t.Add(550 * time.Millisecond)
	if !h.c.Tick(h.clk.t) {
		t.Fatal("animation finished early")
	}
	mid := h.c.State().GF
	if mid == h.place.Connecticut {
		t.Error("markers did not move during the animation")
	}

	h.settle()
	if h.c.Busy() || h.r.modes[ModeMoving] || h.c.Animation() != nil {
		t.Error("still busy after settle")
	}
	if h.c.Tick(h.clk.t) {
		t.Error("Tick reported a running animation after settle")
	}
}

func TestSubmitWithoutSelection(t *testing.T) {
	h := newHarness(t)
	h.dispatch(Begin)

	err := h.c.Dispatch(Submit)
	if !errors.Is(err, ErrInvalidState) || !errors.Is(err, quiz.ErrNoSelection) {
		t.Fatalf("Submit error = %v, want ErrInvalidState wrapping ErrNoSelection", err)
	}
	if st := h.c.State(); len(st.Answers) != 0 || st.Screen != ScreenQuiz {
		t.Errorf("rejected submit changed state: %+v", st)
	}
}

func TestSelectionClearedOnRender(t *testing.T) {
	h := newHarness(t)
	h.dispatch(Begin)
	h.answer(h.wrong())
	h.dispatch(MoveContinue)

	if st := h.c.State(); st.Selected != -1 {
		t.Errorf("selection survived re-render: %d", st.Selected)
	}
	if err := h.c.Dispatch(Submit); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Submit after re-render = %v", err)
	}
}

func TestUnexpectedEvents(t *testing.T) {
	h := newHarness(t)

	tests := []Event{Submit, SelectAnswer(0), MoveContinue, OpenEnvelope, EnvelopeYes,
		EnvelopeNo, ProceedToFinal, CryYes, CryNo, {Kind: EventKind(99)}}
	for _, ev := range tests {
		if err := h.c.Dispatch(ev); !errors.Is(err, ErrUnexpectedEvent) {
			t.Errorf("Dispatch(%s) on start = %v, want ErrUnexpectedEvent", ev, err)
		}
	}

	h.dispatch(Begin)
	if err := h.c.Dispatch(Begin); !errors.Is(err, ErrUnexpectedEvent) {
		t.Errorf("Begin on quiz screen = %v", err)
	}
	if err := h.c.Dispatch(SelectAnswer(9)); !errors.Is(err, quiz.ErrBadOption) {
		t.Errorf("SelectAnswer(9) = %v, want ErrBadOption", err)
	}
}

func TestEnvelopeAffordances(t *testing.T) {
	h := newHarness(t)
	h.dispatch(Begin)
	h.finishQuiz()

	if err := h.c.Dispatch(EnvelopeYes); !errors.Is(err, ErrInvalidState) {
		t.Errorf("EnvelopeYes before open = %v", err)
	}
	if err := h.c.Dispatch(ProceedToFinal); !errors.Is(err, ErrInvalidState) {
		t.Errorf("ProceedToFinal before answer = %v", err)
	}

	h.dispatch(OpenEnvelope)
	if !h.r.envelopeOpen || h.r.controls[ControlOpenEnvelope] || h.r.controls[ControlProceedToFinal] {
		t.Errorf("after open: open=%v openCtl=%v proceed=%v",
			h.r.envelopeOpen, h.r.controls[ControlOpenEnvelope], h.r.controls[ControlProceedToFinal])
	}

	h.dispatch(EnvelopeYes)
	h.dispatch(OpenEnvelope) // already open, no effect
	if !h.r.controls[ControlProceedToFinal] || !h.c.State().CanProceed {
		t.Error("second OpenEnvelope changed the affordances")
	}
	if h.r.response != msgEnvelopeYes {
		t.Errorf("response = %q", h.r.response)
	}
}

func TestEnvelopeNoCryNoRestoresPositions(t *testing.T) {
	h := newHarness(t)
	h.dispatch(Begin)
	h.answer(h.wrong())
	h.dispatch(MoveContinue)
	h.finishQuiz()
	h.dispatch(OpenEnvelope)

	before := h.c.State()
	h.dispatch(EnvelopeNo)

	st := h.c.State()
	if st.Screen != ScreenNo || st.Phase != PhaseAnimatingDrift || !st.Cry || st.Hearts {
		t.Fatalf("after EnvelopeNo: %+v", st)
	}
	if !st.HasSnapshot || h.r.cryPrompt != msgCryPrompt || !h.r.cryActions {
		t.Errorf("snapshot=%v prompt=%q actions=%v", st.HasSnapshot, h.r.cryPrompt, h.r.cryActions)
	}
	if err := h.c.Dispatch(CryNo); !errors.Is(err, ErrBusy) {
		t.Errorf("CryNo during drift = %v, want ErrBusy", err)
	}

	h.settle()
	st = h.c.State()
	if st.GF != h.place.NoPathHer || st.ME != h.place.NoPathMe {
		t.Errorf("drift ended at %+v / %+v", st.GF, st.ME)
	}

	h.dispatch(CryNo)
	st = h.c.State()
	if st.GF != before.GF || st.ME != before.ME {
		t.Errorf("restored %+v / %+v, want %+v / %+v", st.GF, st.ME, before.GF, before.ME)
	}
	if st.Screen != ScreenEnvelope || st.Cry || st.HasSnapshot {
		t.Errorf("after CryNo: screen=%s cry=%v snapshot=%v", st.Screen, st.Cry, st.HasSnapshot)
	}
	if h.r.gf != before.GF.Plane() {
		t.Error("markers not redrawn after restore")
	}

	// The envelope stays open, so the player can still say yes.
	h.dispatch(EnvelopeYes)
	h.dispatch(ProceedToFinal)
	if want := "Solved all 6 questions. Retries used: 1."; h.r.summary != want {
		t.Errorf("summary = %q, want %q", h.r.summary, want)
	}
}

func TestCryYesIsTerminalUntilRestart(t *testing.T) {
	h := newHarness(t)
	h.dispatch(Begin)
	h.finishQuiz()
	h.dispatch(OpenEnvelope)
	h.dispatch(EnvelopeNo)
	h.settle()

	h.dispatch(CryYes)
	if h.r.cryPrompt != msgCryResigned || h.r.cryActions {
		t.Errorf("prompt=%q actions=%v", h.r.cryPrompt, h.r.cryActions)
	}
	for _, ev := range []Event{CryYes, CryNo} {
		if err := h.c.Dispatch(ev); !errors.Is(err, ErrInvalidState) {
			t.Errorf("Dispatch(%s) after CryYes = %v", ev, err)
		}
	}

	h.dispatch(Restart)
	st := h.c.State()
	if st.Screen != ScreenStart || st.Solved != 0 || st.Index != 0 || len(st.Answers) != 0 {
		t.Fatalf("restart left %+v", st)
	}
	if st.Reunion || st.Cry || st.Hearts || st.EnvelopeOpen || st.CanProceed || st.HasSnapshot {
		t.Errorf("restart left modes set: %+v", st)
	}
	if st.GF != h.place.Connecticut || st.ME != h.place.Nepal {
		t.Errorf("restart positions %+v / %+v", st.GF, st.ME)
	}
	if h.r.cryPrompt != msgCryIdle || !h.r.cryActions || h.r.progress != 0 {
		t.Errorf("restart affordances: prompt=%q actions=%v progress=%v", h.r.cryPrompt, h.r.cryActions, h.r.progress)
	}
	if !h.r.controls[ControlOpenEnvelope] || h.r.envelopeOpen {
		t.Error("envelope not reset")
	}
}

func TestRestartFromQuiz(t *testing.T) {
	h := newHarness(t)
	h.dispatch(Begin)
	h.answer(h.correct())
	h.dispatch(MoveContinue)
	h.dispatch(Restart)
	h.dispatch(Begin)

	st := h.c.State()
	if st.Index != 0 || st.Solved != 0 || h.r.question.Text != h.deck.Questions[0].Text {
		t.Errorf("after restart: index=%d solved=%d question=%q", st.Index, st.Solved, h.r.question.Text)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	a := newHarness(t)
	b := newHarness(t)
	a.dispatch(Begin)
	a.answer(a.correct())

	if b.c.State().Screen != ScreenStart || b.c.State().GF != b.place.Connecticut {
		t.Error("second session observed the first one's progress")
	}

	deck, _ := config.DefaultDeck()
	c1 := New(newRecorder(), deck.Questions, deck.Places())
	c2 := New(newRecorder(), deck.Questions, deck.Places())
	if c1.ID() == "" || c1.ID() == c2.ID() {
		t.Errorf("session ids %q and %q", c1.ID(), c2.ID())
	}
}
