package models

import (
	"fmt"
	"strings"
)

// Line identifies one of the Athens metro lines.
type Line int

const (
	LineNone Line = iota
	Line1
	Line2
	Line3
)

// Lines lists every metro line in lookup order.
var Lines = []Line{Line1, Line2, Line3}

// Fixed line colors as used on the official network map
const (
	ColorLine1   = "#00A651" // green, Kifisia - Piraeus
	ColorLine2   = "#ED1C24" // red, Anthoupoli - Elliniko
	ColorLine3   = "#0072BC" // blue, Dimotiko Theatro - Airport
	ColorNeutral = "#808080"
)

// Color returns the fixed hex color of the line.
func (l Line) Color() string {
	switch l {
	case Line1:
		return ColorLine1
	case Line2:
		return ColorLine2
	case Line3:
		return ColorLine3
	}
	return ColorNeutral
}

// Number returns 1, 2 or 3, and 0 for LineNone.
func (l Line) Number() int {
	if l < Line1 || l > Line3 {
		return 0
	}
	return int(l)
}

func (l Line) String() string {
	if l.Number() == 0 {
		return "No line"
	}
	return fmt.Sprintf("Line %d", l.Number())
}

// Short returns the compact label used in tables (M1, M2, M3).
func (l Line) Short() string {
	if l.Number() == 0 {
		return "--"
	}
	return fmt.Sprintf("M%d", l.Number())
}

// MarshalText encodes the line as its number so JSON output stays readable.
func (l Line) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%d", l.Number())), nil
}

// UnmarshalText accepts anything ParseLine accepts.
func (l *Line) UnmarshalText(b []byte) error {
	parsed, err := ParseLine(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLine parses "1", "M1", "line1" or "Line 1" (case-insensitive).
func ParseLine(s string) (Line, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, "line")
	v = strings.TrimPrefix(v, "m")
	v = strings.TrimSpace(v)

	switch v {
	case "1":
		return Line1, nil
	case "2":
		return Line2, nil
	case "3":
		return Line3, nil
	}
	return LineNone, fmt.Errorf("unknown metro line %q", s)
}
