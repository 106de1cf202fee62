package tui

import (
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/closer/internal/clipboard"
	"github.com/f3rmion/closer/internal/config"
	"github.com/f3rmion/closer/internal/flow"
	"github.com/f3rmion/closer/internal/quiz"
)

// frameMsg carries the display refresh time to the animation pump.
type frameMsg time.Time

type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// AppModel is the bubbletea model hosting one quiz session.
type AppModel struct {
	ctrl   *flow.Controller
	board  *board
	logger *slog.Logger

	keys keyMap
	help help.Model
	bar  progress.Model

	// Progress bar value follows the board's target on a spring.
	spring   harmonica.Spring
	shown    float64
	velocity float64

	frame   time.Duration
	pumping bool

	width  int
	height int
	ready  bool

	showHelp bool
	status   string
	copied   bool
	err      error
}

// NewApp creates the TUI for a deck. fps sets the animation frame rate.
func NewApp(deck *config.Deck, fps int, logger *slog.Logger) AppModel {
	if fps <= 0 {
		fps = 60
	}
	b := newBoard()
	keys := newKeyMap()
	// Hidden from help and ignored by key.Matches when there is no tool.
	keys.Copy.SetEnabled(clipboard.Available())
	ctrl := flow.New(b, deck.Questions, deck.Places(), flow.WithLogger(logger))
	logger.Info("session started", "session", ctrl.ID(), "questions", len(deck.Questions))

	return AppModel{
		ctrl:   ctrl,
		board:  b,
		logger: logger,
		keys:   keys,
		help:   help.New(),
		bar: progress.New(
			progress.WithGradient(string(ColorPrimary), string(ColorHeart)),
			progress.WithoutPercentage(),
		),
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		frame:  time.Second / time.Duration(fps),
	}
}

// Err reports a fatal controller error that ended the program.
func (m AppModel) Err() error { return m.err }

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return tea.SetWindowTitle("closer")
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.bar.Width = max(m.width-14, 10)
		m.help.Width = m.width
		return m, nil

	case frameMsg:
		running := m.ctrl.Tick(time.Time(msg))
		settled := m.stepSpring()
		if running || !settled {
			return m, m.nextFrame()
		}
		m.pumping = false
		return m, nil

	case clearCopiedMsg:
		m.copied = false
		return m, nil

	case tea.KeyMsg:
		// Help overlay - any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		}

		cmd := m.handleKey(msg)
		frame := m.pump()
		return m, tea.Batch(cmd, frame)
	}

	return m, nil
}

// handleKey maps a key press to a flow event for the current screen.
func (m *AppModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	b := m.board

	if key.Matches(msg, m.keys.Restart) {
		return m.dispatch(flow.Restart)
	}

	switch b.screen {
	case flow.ScreenStart:
		if key.Matches(msg, m.keys.Start) {
			return m.dispatch(flow.Begin)
		}

	case flow.ScreenQuiz:
		n := len(b.question.Answers)
		switch {
		case key.Matches(msg, m.keys.Pick):
			return m.dispatch(flow.SelectAnswer(int(msg.String()[0] - '1')))
		case key.Matches(msg, m.keys.Up):
			if n == 0 {
				return nil
			}
			if b.highlighted < 0 {
				return m.dispatch(flow.SelectAnswer(n - 1))
			}
			return m.dispatch(flow.SelectAnswer((b.highlighted - 1 + n) % n))
		case key.Matches(msg, m.keys.Down):
			if n > 0 {
				return m.dispatch(flow.SelectAnswer((b.highlighted + 1) % n))
			}
		case key.Matches(msg, m.keys.Submit):
			if b.controls[flow.ControlSubmit] {
				return m.dispatch(flow.Submit)
			}
		}

	case flow.ScreenMove:
		if key.Matches(msg, m.keys.Continue) {
			return m.dispatch(flow.MoveContinue)
		}

	case flow.ScreenEnvelope:
		switch {
		case !b.envelopeOpen && key.Matches(msg, m.keys.Open):
			return m.dispatch(flow.OpenEnvelope)
		case key.Matches(msg, m.keys.Yes):
			return m.dispatch(flow.EnvelopeYes)
		case key.Matches(msg, m.keys.No):
			return m.dispatch(flow.EnvelopeNo)
		case key.Matches(msg, m.keys.Final):
			return m.dispatch(flow.ProceedToFinal)
		}

	case flow.ScreenNo:
		switch {
		case key.Matches(msg, m.keys.Yes):
			return m.dispatch(flow.CryYes)
		case key.Matches(msg, m.keys.No):
			return m.dispatch(flow.CryNo)
		}

	case flow.ScreenFinal:
		if key.Matches(msg, m.keys.Copy) {
			return m.copySummary()
		}
	}
	return nil
}

// dispatch sends ev to the controller and shows any rejection in the status
// line. An exhausted question index is a controller bug and ends the program.
func (m *AppModel) dispatch(ev flow.Event) tea.Cmd {
	err := m.ctrl.Dispatch(ev)
	switch {
	case err == nil:
		m.status = ""
		return nil
	case errors.Is(err, quiz.ErrOutOfRange):
		m.logger.Error("controller reached an invalid question", "event", ev.String(), "err", err)
		m.err = err
		return tea.Quit
	case errors.Is(err, flow.ErrBusy):
		// Presses during an animation are expected; ignore them quietly.
		return nil
	}
	m.status = err.Error()
	return nil
}

func (m *AppModel) copySummary() tea.Cmd {
	if err := clipboard.Write(m.board.summary); err != nil {
		m.status = err.Error()
		return nil
	}
	m.copied = true
	return clearCopiedAfter(2 * time.Second)
}

// pump starts the frame loop when there is something to animate and no loop
// is already running.
func (m *AppModel) pump() tea.Cmd {
	if m.pumping {
		return nil
	}
	if !m.ctrl.Busy() && m.springSettled() {
		return nil
	}
	m.pumping = true
	return m.nextFrame()
}

func (m AppModel) nextFrame() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// stepSpring moves the displayed progress one frame toward the target and
// reports whether it has come to rest.
func (m *AppModel) stepSpring() bool {
	m.shown, m.velocity = m.spring.Update(m.shown, m.velocity, m.board.progress)
	if m.springSettled() {
		m.shown = m.board.progress
		m.velocity = 0
		return true
	}
	return false
}

func (m AppModel) springSettled() bool {
	return math.Abs(m.shown-m.board.progress) < 0.05 && math.Abs(m.velocity) < 0.05
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	// Show help overlay if active
	if m.showHelp {
		return m.renderHelp()
	}

	var parts []string
	if !m.board.screen.MapOverlay() {
		parts = append(parts, m.renderHeader())
	}

	card := m.renderCard()
	footer := m.renderFooter()

	used := lipgloss.Height(card) + lipgloss.Height(footer) + 2 // map border
	if len(parts) > 0 {
		used += lipgloss.Height(parts[0])
	}
	mapH := max(m.height-used, 5)
	mapW := max(m.width-2, 20)

	parts = append(parts, MapStyle.Render(drawMap(m.board, mapW, mapH).Render()), card, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m AppModel) renderHeader() string {
	title := TitleStyle.Render("closer")
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", m.bar.ViewAs(m.shown/100))
}

func (m AppModel) renderFooter() string {
	line := m.help.ShortHelpView(m.keys.screenKeys(m.board))
	if m.status != "" {
		line = ErrorStyle.Render(m.status) + "  " + line
	}
	return line
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	full := help.New()
	full.ShowAll = true

	body := titleStyle.Render("closer - keys") + "\n\n" +
		full.FullHelpView(m.keys.FullHelp()) + "\n\n" +
		lipgloss.NewStyle().Foreground(ColorMuted).Italic(true).Render("Press any key to close")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		Padding(1, 2)

	// Center the help box
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, boxStyle.Render(body))
}
