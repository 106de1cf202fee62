package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/f3rmion/closer/internal/flow"
)

type keyMap struct {
	Start    key.Binding
	Up       key.Binding
	Down     key.Binding
	Pick     key.Binding
	Submit   key.Binding
	Continue key.Binding
	Open     key.Binding
	Yes      key.Binding
	No       key.Binding
	Final    key.Binding
	Copy     key.Binding
	Restart  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous answer"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next answer"),
		),
		Pick: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "pick answer"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Continue: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "continue"),
		),
		Open: key.NewBinding(
			key.WithKeys("o", " "),
			key.WithHelp("o", "open envelope"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "no"),
		),
		Final: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "continue"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy summary"),
		),
		Restart: key.NewBinding(
			key.WithKeys("ctrl+r", "r"),
			key.WithHelp("r", "restart"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// screenKeys is the short help shown under each screen.
func (k keyMap) screenKeys(b *board) []key.Binding {
	switch b.screen {
	case flow.ScreenStart:
		return []key.Binding{k.Start, k.Help, k.Quit}
	case flow.ScreenQuiz:
		if !b.controls[flow.ControlSubmit] {
			return []key.Binding{k.Pick, k.Up, k.Down, k.Restart}
		}
		return []key.Binding{k.Pick, k.Up, k.Down, k.Submit, k.Restart}
	case flow.ScreenMove:
		return []key.Binding{k.Continue, k.Restart}
	case flow.ScreenEnvelope:
		if !b.envelopeOpen {
			return []key.Binding{k.Open, k.Restart}
		}
		bindings := []key.Binding{k.Yes, k.No}
		if b.controls[flow.ControlProceedToFinal] {
			bindings = append(bindings, k.Final)
		}
		return append(bindings, k.Restart)
	case flow.ScreenNo:
		if b.cryActions {
			return []key.Binding{k.Yes, k.No, k.Restart}
		}
		return []key.Binding{k.Restart}
	case flow.ScreenFinal:
		return []key.Binding{k.Copy, k.Restart, k.Quit}
	}
	return []key.Binding{k.Help, k.Quit}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Up, k.Down, k.Pick, k.Submit},
		{k.Continue, k.Open, k.Yes, k.No, k.Final},
		{k.Copy, k.Restart, k.Help, k.Quit},
	}
}
