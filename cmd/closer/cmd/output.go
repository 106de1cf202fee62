package cmd

import "github.com/fatih/color"

var (
	colorTitle  = color.New(color.FgGreen, color.Bold)
	colorScreen = color.New(color.FgHiMagenta, color.Bold)
	colorInfo   = color.New(color.FgHiBlue)
	colorMarker = color.New(color.FgCyan)
	colorMsg    = color.New(color.FgYellow)
	colorAlert  = color.New(color.FgRed)
	colorMuted  = color.New(color.FgHiBlack)
)
