package output

import (
	"os"
	"strings"

	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/models"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorMode represents the color output mode
type ColorMode int

const (
	// ColorAuto enables colors if output is a TTY
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on
	ColorAlways
	// ColorNever disables colors
	ColorNever
)

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	}
	return "auto"
}

// ParseColorMode parses a color mode string
func ParseColorMode(s string) ColorMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}

// SprintfFunc formats and colors text
type SprintfFunc func(format string, a ...interface{}) string

// Colors holds the color functions for different output types
type Colors struct {
	Time    SprintfFunc
	Header  SprintfFunc
	Muted   SprintfFunc
	Station SprintfFunc
	Wait    SprintfFunc
	Warn    SprintfFunc
	Error   SprintfFunc

	enabled     bool
	lines       map[models.Line]SprintfFunc
	reliability map[models.Reliability]SprintfFunc
}

// NewColors creates a new Colors instance based on the color mode
func NewColors(mode ColorMode) *Colors {
	useColors := false
	switch mode {
	case ColorAlways:
		useColors = true
		color.NoColor = false
	case ColorNever:
		useColors = false
	case ColorAuto:
		useColors = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	if !useColors {
		noColor := func(format string, a ...interface{}) string {
			if len(a) == 0 {
				return format
			}
			return color.New().Sprintf(format, a...)
		}
		return &Colors{
			Time:        noColor,
			Header:      noColor,
			Muted:       noColor,
			Station:     noColor,
			Wait:        noColor,
			Warn:        noColor,
			Error:       noColor,
			lines:       map[models.Line]SprintfFunc{},
			reliability: map[models.Reliability]SprintfFunc{},
		}
	}

	return &Colors{
		Time:    color.New(color.FgWhite, color.Bold).SprintfFunc(),
		Header:  color.New(color.FgWhite, color.Bold).SprintfFunc(),
		Muted:   color.New(color.FgHiBlack).SprintfFunc(),
		Station: color.New(color.FgWhite).SprintfFunc(),
		Wait:    color.New(color.FgCyan, color.Bold).SprintfFunc(),
		Warn:    color.New(color.FgYellow).SprintfFunc(),
		Error:   color.New(color.FgRed, color.Bold).SprintfFunc(),
		enabled: true,
		lines: map[models.Line]SprintfFunc{
			models.Line1: color.New(color.FgGreen, color.Bold).SprintfFunc(),
			models.Line2: color.New(color.FgRed, color.Bold).SprintfFunc(),
			models.Line3: color.New(color.FgBlue, color.Bold).SprintfFunc(),
		},
		reliability: map[models.Reliability]SprintfFunc{
			models.ReliabilityHigh:   color.New(color.FgGreen).SprintfFunc(),
			models.ReliabilityMedium: color.New(color.FgYellow).SprintfFunc(),
			models.ReliabilityLow:    color.New(color.FgRed).SprintfFunc(),
		},
	}
}

// Enabled reports whether escape codes are emitted
func (c *Colors) Enabled() bool {
	return c.enabled
}

// Line returns the color function of a metro line, muted for LineNone
func (c *Colors) Line(l models.Line) SprintfFunc {
	if f, ok := c.lines[l]; ok {
		return f
	}
	return c.Muted
}

// Reliability returns the color function of a reliability tier
func (c *Colors) Reliability(r models.Reliability) SprintfFunc {
	if f, ok := c.reliability[r]; ok {
		return f
	}
	return c.Wait
}
