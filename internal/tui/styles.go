// Package tui is the terminal front end: it renders the quiz screens and the
// map, turns key presses into flow events and pumps animation frames.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#FF6B6B") // Red - titles, GF marker
	ColorSecondary = lipgloss.Color("#4ecdc4") // Teal - ME marker, subtitles
	ColorAccent    = lipgloss.Color("#ffe66d") // Yellow - selection, buttons
	ColorMuted     = lipgloss.Color("#666666") // Gray - help text, disabled
	ColorSuccess   = lipgloss.Color("#a8e6cf") // Green - correct, reunion
	ColorText      = lipgloss.Color("#f1faee") // Light text
	ColorLabel     = lipgloss.Color("#a8dadc") // Place labels
	ColorHeart     = lipgloss.Color("#ff8fab") // Hearts layer
	ColorTear      = lipgloss.Color("#74c0fc") // Cry mode
	ColorBg        = lipgloss.Color("#1a1a2e") // Dark background
	ColorBgAlt     = lipgloss.Color("#2d3436") // Alt background
	ColorBorder    = lipgloss.Color("#3d5a80") // Border color
)

// Title styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(ColorBg).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	BannerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	ReunionBannerStyle = lipgloss.NewStyle().
				Foreground(ColorHeart).
				Bold(true)
)

// Card styles
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ReunionCardStyle = CardStyle.
				BorderForeground(ColorHeart)

	CryCardStyle = CardStyle.
			BorderForeground(ColorTear)

	QuestionStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true).
			MarginBottom(1)

	CounterStyle = lipgloss.NewStyle().
			Foreground(ColorLabel)

	AnswerStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Padding(0, 1)

	AnswerSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent).
				Background(ColorBgAlt).
				Padding(0, 1)
)

// Message styles
var (
	ResultStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	MoveMessageStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Italic(true)

	ResponseStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	CryPromptStyle = lipgloss.NewStyle().
			Foreground(ColorTear).
			Bold(true)

	SummaryStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)
)

// Button styles
var (
	ButtonStyle = lipgloss.NewStyle().
			Foreground(ColorBg).
			Background(ColorAccent).
			Bold(true).
			Padding(0, 2)

	ButtonDisabledStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Background(ColorBgAlt).
				Padding(0, 2)
)

// Map styles
var (
	MapStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	MapGridStyle = lipgloss.NewStyle().
			Foreground(ColorBgAlt)

	MapLabelStyle = lipgloss.NewStyle().
			Foreground(ColorLabel).
			Italic(true)

	GFMarkerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	MEMarkerStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	HeartStyle = lipgloss.NewStyle().
			Foreground(ColorHeart)

	TearStyle = lipgloss.NewStyle().
			Foreground(ColorTear)
)

// Status styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	CopiedStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)
)
