package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/models"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/selection"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/settings"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/timetable"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/waittime"
)

// TableOptions configures the table output
type TableOptions struct {
	Colors    *Colors
	LineNames func(models.Line) string // optional, e.g. "Kifisia - Piraeus"
}

func (o TableOptions) colors() *Colors {
	if o.Colors == nil {
		return NewColors(ColorNever)
	}
	return o.Colors
}

// WriteJSON writes v as indented JSON
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// lineBadge renders "M1" in the line's color
func lineBadge(c *Colors, l models.Line) string {
	return c.Line(l)("%s", l.Short())
}

func glyphs(c *Colors, st models.Station) string {
	if len(st.Lines) == 0 {
		return c.Muted("%s", selection.Glyph(models.LineNone))
	}
	var b strings.Builder
	for _, l := range st.Lines {
		b.WriteString(c.Line(l)("%s", selection.Glyph(l)))
	}
	return b.String()
}

// RenderStations renders stations with their line glyphs
func RenderStations(w io.Writer, stations []models.Station, opts TableOptions) {
	if len(stations) == 0 {
		_, _ = fmt.Fprintln(w, "No stations found.")
		return
	}
	c := opts.colors()

	for _, st := range stations {
		// Pad by glyph count since escape codes take no space
		pad := strings.Repeat(" ", max(1, 4-max(1, len(st.Lines))))
		tags := ""
		if st.Interchange {
			tags += c.Muted(" [interchange]")
		}
		if st.Role != models.RoleNone {
			tags += c.Muted(" [%s]", st.Role)
		}
		_, _ = fmt.Fprintf(w, "  %s%s%-24s %s%s\n",
			glyphs(c, st),
			pad,
			st.Name,
			c.Muted("%s", st.NameGreek),
			tags,
		)
	}
}

// RenderTimetable renders the rows of one station
func RenderTimetable(w io.Writer, res timetable.Result, opts TableOptions) {
	if res.Empty() {
		_, _ = fmt.Fprintf(w, "No timetable found for %s.\n", res.Station.Name)
		return
	}
	c := opts.colors()

	header := fmt.Sprintf("%s %s", lineBadge(c, res.Line), c.Header("%s", res.Station.Name))
	if opts.LineNames != nil {
		if name := opts.LineNames(res.Line); name != "" {
			header += c.Muted(" (%s)", name)
		}
	}
	_, _ = fmt.Fprintln(w, header)
	if len(res.Rows) > 0 {
		_, _ = fmt.Fprintln(w, c.Muted("  %s service", res.Rows[0].ServiceDay))
	}

	for _, row := range res.Rows {
		_, _ = fmt.Fprintf(w, "  to %-20s %s-%s  %s\n",
			row.Direction,
			c.Time("%s", row.FirstTrain),
			c.Time("%s", row.LastTrain),
			c.Muted("every %d min", row.HeadwayMinutes),
		)
	}

	if res.Line == models.Line3 {
		if res.Wait != nil {
			_, _ = fmt.Fprintf(w, "  Next train to %s in %s\n", res.Wait.Direction, c.Wait("%d min", res.Wait.Minutes))
		} else {
			_, _ = fmt.Fprintln(w, c.Warn("  No more trains today"))
		}
	}
}

// RenderAirport renders the Airport lookup
func RenderAirport(w io.Writer, res timetable.AirportResult, opts TableOptions) {
	c := opts.colors()
	_, _ = fmt.Fprintf(w, "%s %s\n", c.Header("From:"), res.From.Name)

	if res.Target == nil {
		_, _ = fmt.Fprintln(w, c.Warn("%s", res.Instruction))
		return
	}
	_, _ = fmt.Fprintln(w, res.Instruction)
	_, _ = fmt.Fprintln(w)
	RenderTimetable(w, res.Timetable, opts)
}

// RenderRoute renders the selection indicator of a station pair
func RenderRoute(w io.Writer, d selection.Directives, opts TableOptions) {
	c := opts.colors()

	slot := func(s selection.Slot) string {
		if s.Placeholder {
			return c.Muted("%s", s.Text)
		}
		return c.Line(s.Line)("%s %s", selection.Glyph(s.Line), s.Text)
	}

	_, _ = fmt.Fprintf(w, "%s %s\n", c.Header("From:"), slot(d.Start))
	_, _ = fmt.Fprintf(w, "%s   %s\n", c.Header("To:"), slot(d.End))

	if d.InterchangeVisible {
		_, _ = fmt.Fprintf(w, "%s %s\n", c.Header("Change at:"), slot(d.Interchange))
		if d.Transfer != nil {
			_, _ = fmt.Fprintf(w, "  %s %s %s, %d stops\n",
				lineBadge(c, d.Transfer.From),
				c.Muted("→"),
				lineBadge(c, d.Transfer.To),
				d.Transfer.Hops,
			)
		}
	}

	var extras []string
	if d.AirportVisible {
		extras = append(extras, "airport timetable (athensplus airport)")
	}
	if d.HarborVisible {
		extras = append(extras, "harbor map")
	}
	if len(extras) > 0 {
		_, _ = fmt.Fprintf(w, "%s %s\n", c.Muted("Also:"), strings.Join(extras, ", "))
	}
}

// RenderDirections renders provider steps with their wait times
func RenderDirections(w io.Writer, steps []models.TransitStep, f *waittime.Formatter, opts TableOptions) {
	if len(steps) == 0 {
		_, _ = fmt.Fprintln(w, "No directions found.")
		return
	}
	c := opts.colors()
	if f == nil {
		f = waittime.NewFormatter()
	}

	for i := range steps {
		step := &steps[i]
		if !step.IsTransit() {
			_, _ = fmt.Fprintf(w, "  %s  %s → %s\n", c.Muted("walk"), step.From, step.To)
			continue
		}

		line, err := models.ParseLine(step.Line)
		badge := lineBadge(c, line)
		if err != nil {
			badge = c.Muted("%-2s", step.Line)
		}
		desc := fmt.Sprintf("%s → %s", step.From, step.To)
		if step.Stops > 0 {
			desc += c.Muted(" (%d stops)", step.Stops)
		}
		if step.Headsign != "" {
			desc += c.Muted(" towards %s", step.Headsign)
		}
		_, _ = fmt.Fprintf(w, "  %s    %s\n", badge, desc)

		d := f.Format(step)
		wait := waitColor(c, d)("%s", d.Text())
		if d.NextDep != "" {
			_, _ = fmt.Fprintf(w, "        wait %s  %s\n", wait, c.Muted("%s", d.NextDep))
		} else {
			_, _ = fmt.Fprintf(w, "        wait %s\n", wait)
		}
	}
}

func waitColor(c *Colors, d waittime.Display) SprintfFunc {
	switch d.Kind {
	case waittime.KindExplicit:
		return c.Reliability(d.Reliability)
	case waittime.KindComputed:
		return c.Wait
	case waittime.KindStale:
		return c.Warn
	case waittime.KindError:
		return c.Error
	}
	return c.Muted
}

// RenderSavedRoutes renders the saved station pairs
func RenderSavedRoutes(w io.Writer, routes []settings.Route, opts TableOptions) {
	if len(routes) == 0 {
		_, _ = fmt.Fprintln(w, "No saved routes.")
		return
	}
	c := opts.colors()
	for i, r := range routes {
		_, _ = fmt.Fprintf(w, "%3d  %s %s\n", i+1, r.String(), c.Muted("(saved %s)", r.SavedAt.Local().Format("2006-01-02")))
	}
}
