package tui

import (
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/models"
	"github.com/charmbracelet/lipgloss"
)

// Colors matching output/colors.go, with the line colors of the network map
var (
	colorYellow = lipgloss.Color("3")
	colorRed    = lipgloss.Color("1")
	colorGreen  = lipgloss.Color("2")
	colorWhite  = lipgloss.Color("15")
	colorGray   = lipgloss.Color("8")
	colorFocus  = lipgloss.Color(models.ColorLine3)
)

// Text styles
var (
	styleTime    = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	styleWait    = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleStale   = lipgloss.NewStyle().Foreground(colorYellow)
	styleMuted   = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader  = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	styleControl = lipgloss.NewStyle().Foreground(colorWhite)
)

// Panel border styles
var (
	stylePanelFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorFocus)

	stylePanelNormal = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorGray)
)

// Selected item in a list
var styleSelected = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)

// Status bar at the bottom
var styleStatusBar = lipgloss.NewStyle().
	Foreground(colorGray).
	Background(lipgloss.Color("0"))

// Transient notice in the status bar
var styleNotice = lipgloss.NewStyle().
	Foreground(lipgloss.Color("0")).
	Background(colorYellow).
	Bold(true)

// Loading indicator
var styleLoading = lipgloss.NewStyle().Foreground(colorYellow).Italic(true)

// Error text
var styleError = lipgloss.NewStyle().Foreground(colorRed)

// Logo/brand style
var styleLogo = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)

// lineStyle renders text in the fixed color of a line. LineNone is gray.
func lineStyle(l models.Line) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color())).Bold(l != models.LineNone)
}

// slotStyle renders an indicator slot in the color it was rendered with.
func slotStyle(color string, placeholder bool) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	if placeholder {
		return s.Italic(true)
	}
	return s.Bold(true)
}
