package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/f3rmion/closer/internal/anim"
	"github.com/f3rmion/closer/internal/config"
	"github.com/f3rmion/closer/internal/flow"
	"github.com/f3rmion/closer/internal/geo"
	"github.com/f3rmion/closer/internal/quiz"
	"github.com/spf13/cobra"
)

// Epilogues for the envelope once the quiz is solved.
const (
	epilogueYes = "yes"
	epilogueNo  = "no"
	epilogueCry = "cry"
)

var replayEpilogue string

var replayCmd = &cobra.Command{
	Use:   "replay <answers>",
	Short: "Play a session without the TUI",
	Long: `Play a whole session from a script of answers and print everything the
screen would show.

Answers are 1-based option numbers separated by commas. Each one is
submitted for the current question; a wrong answer is retried on the
same question by the next entry. Once every question is solved the
envelope is opened and answered according to --epilogue:

  yes   accept and go to the final screen
  no    decline, take it back, then accept
  cry   decline and stay on the crying screen

Example:
  closer replay 3,2,1,4,4,5
  closer replay 1,3,2,1,4,4,5 --epilogue no`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().StringVar(&replayEpilogue, "epilogue", epilogueYes, "envelope answer: yes, no or cry")
}

func runReplay(cmd *cobra.Command, args []string) error {
	answers, err := parseAnswers(args[0])
	if err != nil {
		return err
	}
	switch replayEpilogue {
	case epilogueYes, epilogueNo, epilogueCry:
	default:
		return fmt.Errorf("unknown epilogue %q (want yes, no or cry)", replayEpilogue)
	}

	settings, logger, deck, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = replay(cmd.Context(), cmd.OutOrStdout(), deck, answers, replayEpilogue, settings.FPS, logger)
	return err
}

// parseAnswers reads a comma separated list of 1-based options into 0-based
// indices.
func parseAnswers(script string) ([]int, error) {
	var answers []int
	for _, field := range strings.Split(script, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("answer %q is not a number", field)
		}
		if n < 1 || n > config.MaxAnswers {
			return nil, fmt.Errorf("answer %d out of range 1-%d", n, config.MaxAnswers)
		}
		answers = append(answers, n-1)
	}
	if len(answers) == 0 {
		return nil, errors.New("no answers given")
	}
	return answers, nil
}

// player drives a controller on a simulated clock so animations finish
// instantly.
type player struct {
	w     io.Writer
	ctrl  *flow.Controller
	now   time.Time
	frame time.Duration
}

func (p *player) clock() time.Time { return p.now }

// do dispatches ev and plays any animation it starts to the end on simulated
// frames. Rejections are printed; only an exhausted question index or a
// cancelled context is returned as an error.
func (p *player) do(ctx context.Context, ev flow.Event) error {
	colorMuted.Fprintf(p.w, "> %s\n", ev)
	err := p.ctrl.Dispatch(ev)
	if errors.Is(err, quiz.ErrOutOfRange) {
		return err
	}
	if err != nil {
		colorAlert.Fprintf(p.w, "  rejected: %v\n", err)
		return nil
	}

	a := p.ctrl.Animation()
	if a == nil {
		return nil
	}
	return anim.Play(ctx, a, p.ticks(a.Duration()), func(f anim.Frame) {
		p.now = f.At
		p.ctrl.Tick(f.At)
	})
}

// ticks returns a closed channel holding one frame time per refresh from now
// until at least d has passed.
func (p *player) ticks(d time.Duration) <-chan time.Time {
	n := int(d/p.frame) + 1
	ch := make(chan time.Time, n)
	for i := 1; i <= n; i++ {
		ch <- p.now.Add(time.Duration(i) * p.frame)
	}
	close(ch)
	return ch
}

// replay plays answers against deck, then the epilogue, writing every
// renderer call to w. It returns the state the session ended in.
func replay(ctx context.Context, w io.Writer, deck *config.Deck, answers []int, epilogue string, fps int, logger *slog.Logger) (flow.State, error) {
	if fps <= 0 {
		fps = 60
	}

	p := &player{
		w:     w,
		now:   time.Date(2024, time.February, 14, 0, 0, 0, 0, time.UTC),
		frame: time.Second / time.Duration(fps),
	}
	r := &textRenderer{w: w}
	p.ctrl = flow.New(r, deck.Questions, deck.Places(), flow.WithLogger(logger), flow.WithClock(p.clock))
	colorTitle.Fprintf(w, "session %s\n", p.ctrl.ID())

	steps := []flow.Event{flow.Begin}
	for _, a := range answers {
		steps = append(steps, flow.SelectAnswer(a), flow.Submit, flow.MoveContinue)
	}
	for _, ev := range steps {
		if err := p.do(ctx, ev); err != nil {
			return p.ctrl.State(), err
		}
		if p.ctrl.State().Screen == flow.ScreenEnvelope {
			break
		}
	}

	st := p.ctrl.State()
	if st.Screen != flow.ScreenEnvelope {
		colorAlert.Fprintf(w, "quiz not finished: solved %d/%d after %d answers\n", st.Solved, st.Total, len(st.Answers))
		return st, nil
	}

	var tail []flow.Event
	switch epilogue {
	case epilogueNo:
		tail = []flow.Event{flow.OpenEnvelope, flow.EnvelopeNo, flow.CryNo, flow.EnvelopeYes, flow.ProceedToFinal}
	case epilogueCry:
		tail = []flow.Event{flow.OpenEnvelope, flow.EnvelopeNo, flow.CryYes}
	default:
		tail = []flow.Event{flow.OpenEnvelope, flow.EnvelopeYes, flow.ProceedToFinal}
	}
	for _, ev := range tail {
		if err := p.do(ctx, ev); err != nil {
			return p.ctrl.State(), err
		}
	}
	return p.ctrl.State(), nil
}

// textRenderer prints renderer calls as coloured lines. Marker updates are
// only printed while nothing is moving.
type textRenderer struct {
	w      io.Writer
	moving bool
}

var _ flow.Renderer = (*textRenderer)(nil)

func (r *textRenderer) ShowScreen(s flow.Screen) {
	colorScreen.Fprintf(r.w, "[%s]\n", s)
}

func (r *textRenderer) SetMode(m flow.Mode, on bool) {
	if m == flow.ModeMoving {
		r.moving = on
		return
	}
	if on {
		colorInfo.Fprintf(r.w, "  mode %s on\n", m)
	}
}

func (r *textRenderer) RenderQuestion(q quiz.Question, solved, total, index int) {
	colorInfo.Fprintf(r.w, "  Question %d of %d  Solved: %d/%d\n", index+1, total, solved, total)
	fmt.Fprintf(r.w, "  %s\n", q.Text)
	for i, a := range q.Answers {
		fmt.Fprintf(r.w, "    %d) %s\n", i+1, a)
	}
}

func (r *textRenderer) HighlightAnswer(index int) {
	colorMuted.Fprintf(r.w, "  selected %d\n", index+1)
}

func (r *textRenderer) DrawMarkers(gf, me geo.PlanePoint) {
	if r.moving {
		return
	}
	colorMarker.Fprintf(r.w, "  gf (%.1f, %.1f)  me (%.1f, %.1f)\n", gf.X, gf.Y, me.X, me.Y)
}

func (r *textRenderer) SetLabel(flow.Place, geo.PlanePoint) {}
func (r *textRenderer) SetProgressBar(float64)               {}
func (r *textRenderer) SetEnvelopeOpen(bool)                 {}
func (r *textRenderer) SetCryActionsVisible(bool)            {}
func (r *textRenderer) SetControl(flow.Control, bool)        {}
func (r *textRenderer) SetControlLabel(flow.Control, string) {}

func (r *textRenderer) SetResultMessages(result, move string) {
	colorMsg.Fprintf(r.w, "  %s\n  %s\n", result, move)
}

func (r *textRenderer) SetFinalSummary(text string) {
	if text != "" {
		colorTitle.Fprintf(r.w, "  %s\n", text)
	}
}

func (r *textRenderer) SetEnvelopeResponse(text string) {
	if text != "" {
		colorMsg.Fprintf(r.w, "  %s\n", text)
	}
}

func (r *textRenderer) SetCryPrompt(text string) {
	if text != "" {
		colorMsg.Fprintf(r.w, "  %s\n", text)
	}
}
