package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Carmen-Shannon/oxy-hands/engine/interaction"
)

// Catppuccin Mocha palette.
const (
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(colorMauve).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(colorOverlay1)
	textStyle   = lipgloss.NewStyle().Foreground(colorText)
	helpStyle   = lipgloss.NewStyle().Foreground(colorOverlay1)
	barStyle    = lipgloss.NewStyle().Foreground(colorTeal)
	barOffStyle = lipgloss.NewStyle().Foreground(colorSurface1)
	downStyle   = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	eventStyle  = lipgloss.NewStyle().Foreground(colorLavender)
	errorStyle  = lipgloss.NewStyle().Foreground(colorRed)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1).
			Width(38)
	activePanelStyle = panelStyle.BorderForeground(colorBlue)

	stateStyles = map[interaction.State]lipgloss.Style{
		interaction.StateNone:     lipgloss.NewStyle().Foreground(colorOverlay1),
		interaction.StateHovering: lipgloss.NewStyle().Foreground(colorYellow),
		interaction.StateSelected: lipgloss.NewStyle().Foreground(colorPeach).Bold(true),
	}
)
