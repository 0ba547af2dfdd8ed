package selection

import (
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/models"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/stations"
)

// Placeholder texts of empty slots
const (
	PlaceholderStart = "Select start station"
	PlaceholderEnd   = "Select destination"
)

// Interchanger finds where to change lines between two stations.
// *stations.Registry implements it.
type Interchanger interface {
	Interchange(start, end models.Station) (stations.Transfer, bool)
}

// Slot is the text and color of one indicator position.
type Slot struct {
	Text        string      `json:"text"`
	Color       string      `json:"color"`
	Line        models.Line `json:"line"`
	Placeholder bool        `json:"placeholder"`
}

// Directives describes what the selection indicator shows.
type Directives struct {
	Start Slot `json:"start"`
	End   Slot `json:"end"`

	ResetVisible       bool `json:"resetVisible"`
	SwapEnabled        bool `json:"swapEnabled"`
	AirportVisible     bool `json:"airportVisible"`
	HarborVisible      bool `json:"harborVisible"`
	InterchangeVisible bool `json:"interchangeVisible"`
	EndSelectable      bool `json:"endSelectable"`
	PrimaryEnabled     bool `json:"primaryEnabled"`

	// Interchange is only filled when InterchangeVisible is set
	Interchange Slot               `json:"interchange"`
	Transfer    *stations.Transfer `json:"-"`
}

// Render maps a (start, end) pair to indicator directives. It reads nothing
// but its arguments, so equal inputs always give equal directives.
// A nil ix never reveals the interchange segment.
func Render(start, end *models.Station, ix Interchanger) Directives {
	d := Directives{
		Start: placeholder(PlaceholderStart),
		End:   placeholder(PlaceholderEnd),
	}
	if start == nil {
		return d
	}

	d.Start = stationSlot(*start, start.PrimaryLine())
	d.ResetVisible = true
	d.EndSelectable = true
	if end == nil {
		return d
	}

	d.End = stationSlot(*end, end.PrimaryLine())
	d.SwapEnabled = true
	d.PrimaryEnabled = true
	d.AirportVisible = end.Role == models.RoleAirport
	d.HarborVisible = end.Role == models.RoleHarbor

	if ix == nil {
		return d
	}
	if tr, ok := ix.Interchange(*start, *end); ok {
		d.InterchangeVisible = true
		d.Interchange = stationSlot(tr.Station, tr.To)
		d.Transfer = &tr
	}
	return d
}

func placeholder(text string) Slot {
	return Slot{
		Text:        text,
		Color:       models.LineNone.Color(),
		Line:        models.LineNone,
		Placeholder: true,
	}
}

func stationSlot(st models.Station, line models.Line) Slot {
	return Slot{Text: st.Name, Color: line.Color(), Line: line}
}

// Glyph returns the indicator glyph of a line.
func Glyph(line models.Line) string {
	switch line {
	case models.Line1:
		return "①"
	case models.Line2:
		return "②"
	case models.Line3:
		return "③"
	}
	return "○"
}

// Glyphs returns the glyphs of every line serving st, e.g. "①②".
func Glyphs(st models.Station) string {
	if len(st.Lines) == 0 {
		return Glyph(models.LineNone)
	}
	out := ""
	for _, l := range st.Lines {
		out += Glyph(l)
	}
	return out
}
