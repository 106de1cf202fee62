// Package flow is the quiz state machine. It moves between screens, decides
// where the markers go after each answer, runs the marker animations and
// handles the envelope epilogue.
//
// A Controller is a single session. It is not safe for concurrent use: the
// host calls Dispatch for user events and Tick once per frame, both from the
// same goroutine.
package flow

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/f3rmion/closer/internal/anim"
	"github.com/f3rmion/closer/internal/geo"
	"github.com/f3rmion/closer/internal/position"
	"github.com/f3rmion/closer/internal/quiz"
	"github.com/google/uuid"
)

var (
	// ErrBusy is returned for any event received while an animation runs.
	ErrBusy = errors.New("animation in progress")
	// ErrUnexpectedEvent is returned for events that do not belong to the
	// current screen.
	ErrUnexpectedEvent = errors.New("event not valid on this screen")
	// ErrInvalidState is returned when an event's precondition does not hold,
	// such as submitting with no answer selected.
	ErrInvalidState = errors.New("invalid state")
)

// Wrong answers pull GF this fraction of the remaining distance toward the
// drift target and push ME this many degrees east.
const (
	wrongDriftRatio = 0.26
	wrongDriftLon   = 22.0
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithClock sets the time source used to start animations.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithSessionID overrides the generated session identifier.
func WithSessionID(id string) Option {
	return func(c *Controller) { c.id = id }
}

// Controller owns one quiz session.
type Controller struct {
	id     string
	logger *slog.Logger
	render Renderer
	now    func() time.Time

	quiz *quiz.Quiz
	pos  *position.Model

	screen Screen
	phase  Phase
	anim   *anim.Animation
	settle func()

	modes          [4]bool
	pendingCorrect bool
	envelopeOpen   bool
	canProceed     bool
	cryResolved    bool
	summary        string
}

// New creates a session on the Start screen and draws the static labels and
// initial markers.
func New(r Renderer, questions []quiz.Question, places position.Places, opts ...Option) *Controller {
	c := &Controller{
		id:     uuid.NewString(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		render: r,
		now:    time.Now,
		quiz:   quiz.New(questions),
		pos:    position.New(places),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("session", c.id)

	r.SetLabel(PlaceConnecticut, places.Connecticut.Plane())
	r.SetLabel(PlaceNepal, places.Nepal.Plane())
	r.SetLabel(PlaceAlaska, places.Alaska.Plane())

	c.resetRun()
	c.showScreen(ScreenStart)
	return c
}

// ID is the session identifier.
func (c *Controller) ID() string { return c.id }

// Animation returns the running animation, or nil when idle. Hosts that
// drive frames themselves pass the sampled times back through Tick.
func (c *Controller) Animation() *anim.Animation { return c.anim }

// Busy reports whether an animation is in flight.
func (c *Controller) Busy() bool { return c.phase != PhaseIdle }

// Dispatch applies a user event. Rejected events leave the state unchanged.
func (c *Controller) Dispatch(ev Event) error {
	err := c.dispatch(ev)
	if err != nil {
		c.logger.Warn("event rejected", "event", ev.String(), "screen", c.screen.String(), "err", err)
		return err
	}
	c.logger.Debug("event applied", "event", ev.String(), "screen", c.screen.String())
	return nil
}

func (c *Controller) dispatch(ev Event) error {
	if c.phase != PhaseIdle {
		return fmt.Errorf("%s during %s: %w", ev, c.phase, ErrBusy)
	}

	switch ev.Kind {
	case KindStart:
		return c.begin()
	case KindSelectAnswer:
		return c.selectAnswer(ev.Answer)
	case KindSubmit:
		return c.submit()
	case KindMoveContinue:
		return c.moveContinue()
	case KindOpenEnvelope:
		return c.openEnvelope()
	case KindEnvelopeYes:
		return c.envelopeYes()
	case KindEnvelopeNo:
		return c.envelopeNo()
	case KindProceedToFinal:
		return c.proceedToFinal()
	case KindCryYes:
		return c.cryYes()
	case KindCryNo:
		return c.cryNo()
	case KindRestart:
		c.resetRun()
		c.showScreen(ScreenStart)
		return nil
	}
	return fmt.Errorf("%s: %w", ev, ErrUnexpectedEvent)
}

// Tick advances the running animation to `now`, publishing the sampled
// positions. When the animation completes the final positions are committed
// and the pending transition finishes. It reports whether an animation is
// still running.
func (c *Controller) Tick(now time.Time) bool {
	if c.anim == nil {
		return false
	}

	f := c.anim.Sample(now)
	c.pos.Commit(f.GF, f.ME)
	c.drawMarkers()
	if !f.Done {
		return true
	}

	gf, me := c.anim.End()
	settle := c.settle
	c.anim = nil
	c.settle = nil
	c.phase = PhaseIdle
	c.setMode(ModeMoving, false)

	c.pos.Commit(gf, me)
	c.drawMarkers()
	if settle != nil {
		settle()
	}
	return false
}

func (c *Controller) expect(ev EventKind, s Screen) error {
	if c.screen != s {
		return fmt.Errorf("%s on %s screen: %w", ev, c.screen, ErrUnexpectedEvent)
	}
	return nil
}

func (c *Controller) begin() error {
	if err := c.expect(KindStart, ScreenStart); err != nil {
		return err
	}
	c.resetRun()
	c.showScreen(ScreenQuiz)
	return c.renderQuestion()
}

func (c *Controller) selectAnswer(option int) error {
	if err := c.expect(KindSelectAnswer, ScreenQuiz); err != nil {
		return err
	}
	if err := c.quiz.Select(option); err != nil {
		return err
	}
	c.render.HighlightAnswer(option)
	c.render.SetControl(ControlSubmit, true)
	return nil
}

func (c *Controller) submit() error {
	if err := c.expect(KindSubmit, ScreenQuiz); err != nil {
		return err
	}

	correct, err := c.quiz.Submit()
	if errors.Is(err, quiz.ErrNoSelection) {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	if err != nil {
		return err
	}
	c.pendingCorrect = correct

	places := c.pos.Places()
	startGF, startME := c.pos.GF(), c.pos.ME()
	var endGF, endME geo.Coordinate

	if correct {
		solved, total := c.quiz.Solved(), c.quiz.Total()
		// Targets depend only on the solved count, so retries never change
		// where the markers end up.
		progress := quiz.ProgressRatio(solved, total)
		endGF = geo.MoveToward(places.Connecticut, places.Meet, progress)
		endME = geo.MoveToward(places.Nepal, places.Meet, progress)

		if solved == total {
			c.setMode(ModeReunion, true)
			c.setMode(ModeHearts, true)
			endGF, endME = places.Meet, places.Meet
			c.render.SetResultMessages(msgResultReunion, msgMoveReunion)
		} else {
			c.render.SetResultMessages(msgResultCloser, msgMoveCloser)
		}
	} else {
		// Relative to the current position, so repeated misses compound.
		endGF = geo.MoveToward(startGF, places.Alaska, wrongDriftRatio)
		endME = geo.Coordinate{Lat: startME.Lat, Lon: geo.NormalizeLongitude(startME.Lon + wrongDriftLon)}
		c.render.SetResultMessages(msgResultWrong, msgMoveWrong)
	}

	c.logger.Info("answer submitted",
		"question", c.quiz.Index()+1,
		"correct", correct,
		"solved", c.quiz.Solved(),
	)

	c.render.SetControl(ControlMoveContinue, false)
	c.showScreen(ScreenMove)
	c.startAnimation(PhaseAnimatingMove,
		anim.Path{From: startGF, To: endGF},
		anim.Path{From: startME, To: endME},
		anim.MoveDuration, geo.Identity, c.settleMove)
	return nil
}

func (c *Controller) settleMove() {
	label := labelTryAgain
	if c.pendingCorrect {
		label = labelNextQuestion
		if c.quiz.IsLast() {
			label = labelWhatNext
		}
	}
	c.render.SetControlLabel(ControlMoveContinue, label)
	c.render.SetControl(ControlMoveContinue, true)
}

func (c *Controller) moveContinue() error {
	if err := c.expect(KindMoveContinue, ScreenMove); err != nil {
		return err
	}
	if c.pendingCorrect {
		c.quiz.Advance()
		c.pendingCorrect = false
	}

	if c.quiz.Exhausted() {
		c.showEnvelope()
		return nil
	}
	c.setMode(ModeHearts, false)
	c.showScreen(ScreenQuiz)
	return c.renderQuestion()
}

func (c *Controller) openEnvelope() error {
	if err := c.expect(KindOpenEnvelope, ScreenEnvelope); err != nil {
		return err
	}
	if c.envelopeOpen {
		return nil
	}
	c.envelopeOpen = true
	c.canProceed = false
	c.render.SetEnvelopeOpen(true)
	c.render.SetControl(ControlOpenEnvelope, false)
	c.render.SetControl(ControlProceedToFinal, false)
	return nil
}

func (c *Controller) envelopeYes() error {
	if err := c.expect(KindEnvelopeYes, ScreenEnvelope); err != nil {
		return err
	}
	if !c.envelopeOpen {
		return fmt.Errorf("%w: envelope is sealed", ErrInvalidState)
	}
	c.canProceed = true
	c.render.SetEnvelopeResponse(msgEnvelopeYes)
	c.render.SetControl(ControlProceedToFinal, true)
	return nil
}

func (c *Controller) envelopeNo() error {
	if err := c.expect(KindEnvelopeNo, ScreenEnvelope); err != nil {
		return err
	}
	if !c.envelopeOpen {
		return fmt.Errorf("%w: envelope is sealed", ErrInvalidState)
	}

	c.pos.Snapshot()
	c.setMode(ModeHearts, false)
	c.setMode(ModeCry, true)
	c.cryResolved = false
	c.render.SetCryPrompt(msgCryPrompt)
	c.render.SetCryActionsVisible(true)
	c.showScreen(ScreenNo)

	places := c.pos.Places()
	c.startAnimation(PhaseAnimatingDrift,
		anim.Path{From: c.pos.GF(), To: places.NoPathHer},
		anim.Path{From: c.pos.ME(), To: places.NoPathMe},
		anim.DriftDuration, geo.EaseOutBounce, nil)
	return nil
}

func (c *Controller) cryYes() error {
	if err := c.expect(KindCryYes, ScreenNo); err != nil {
		return err
	}
	if c.cryResolved {
		return fmt.Errorf("%w: cry actions are hidden", ErrInvalidState)
	}
	c.cryResolved = true
	c.render.SetCryPrompt(msgCryResigned)
	c.render.SetCryActionsVisible(false)
	return nil
}

func (c *Controller) cryNo() error {
	if err := c.expect(KindCryNo, ScreenNo); err != nil {
		return err
	}
	if c.cryResolved {
		return fmt.Errorf("%w: cry actions are hidden", ErrInvalidState)
	}
	c.setMode(ModeCry, false)
	if c.pos.Restore() {
		c.drawMarkers()
	}
	c.showEnvelope()
	return nil
}

func (c *Controller) proceedToFinal() error {
	if err := c.expect(KindProceedToFinal, ScreenEnvelope); err != nil {
		return err
	}
	if !c.canProceed {
		return fmt.Errorf("%w: no answer to the envelope yet", ErrInvalidState)
	}

	c.showScreen(ScreenFinal)
	c.render.SetProgressBar(100)
	c.summary = fmt.Sprintf(msgFinalSummary, c.quiz.Total(), c.quiz.RetryCount())
	c.render.SetFinalSummary(c.summary)

	c.logger.Info("run finished",
		"answers", c.quiz.Answers(),
		"retries", c.quiz.RetryCount(),
		"gf", c.pos.GF(),
		"me", c.pos.ME(),
	)
	return nil
}

func (c *Controller) showEnvelope() {
	c.showScreen(ScreenEnvelope)
	c.setMode(ModeHearts, false)
	c.setMode(ModeCry, false)
}

func (c *Controller) renderQuestion() error {
	q, err := c.quiz.Current()
	if err != nil {
		return err
	}
	c.quiz.ClearSelection()
	idx, total := c.quiz.Index(), c.quiz.Total()
	c.render.RenderQuestion(q, c.quiz.Solved(), total, idx)
	c.render.SetProgressBar(float64(idx) / float64(total) * 100)
	c.render.SetControl(ControlSubmit, false)
	return nil
}

// resetRun restores every piece of session state and every affordance to
// its initial value. It does not change the screen.
func (c *Controller) resetRun() {
	c.quiz.Reset()
	c.pos.Reset()
	c.pendingCorrect = false
	c.envelopeOpen = false
	c.canProceed = false
	c.cryResolved = false
	c.summary = ""

	c.render.SetResultMessages(msgResultIdle, msgMoveIdle)
	c.render.SetEnvelopeOpen(false)
	c.render.SetEnvelopeResponse("")
	c.render.SetCryPrompt(msgCryIdle)
	c.render.SetCryActionsVisible(true)
	c.render.SetFinalSummary("")
	c.render.SetControl(ControlSubmit, false)
	c.render.SetControl(ControlOpenEnvelope, true)
	c.render.SetControl(ControlProceedToFinal, false)

	c.setMode(ModeReunion, false)
	c.setMode(ModeHearts, false)
	c.setMode(ModeCry, false)

	c.render.SetProgressBar(0)
	c.drawMarkers()
}

func (c *Controller) startAnimation(phase Phase, gf, me anim.Path, d time.Duration, ease geo.Easing, settle func()) {
	c.phase = phase
	c.anim = anim.New(c.now(), gf, me, d, ease)
	c.settle = settle
	c.setMode(ModeMoving, true)
	c.logger.Debug("animation started", "phase", phase.String(), "duration", d)
}

func (c *Controller) showScreen(s Screen) {
	c.screen = s
	c.render.ShowScreen(s)
}

func (c *Controller) setMode(m Mode, on bool) {
	c.modes[m] = on
	c.render.SetMode(m, on)
}

func (c *Controller) drawMarkers() {
	c.render.DrawMarkers(c.pos.GF().Plane(), c.pos.ME().Plane())
}
