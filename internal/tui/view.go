package tui

import (
	"fmt"
	"strings"

	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/models"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/selection"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/timetable"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/waittime"
	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Layout: header + search bar + panels + status bar
	header := renderHeader()
	searchBar := m.renderSearchBar()
	statusBar := m.renderStatusBar()

	panelHeight := m.height - lipgloss.Height(header) - lipgloss.Height(searchBar) - lipgloss.Height(statusBar)
	if panelHeight < 3 {
		panelHeight = 3
	}

	// Panel widths: ~35% left, ~65% right
	leftWidth := m.width*35/100 - 2 // subtract border
	rightWidth := m.width - leftWidth - 4
	if leftWidth < 20 {
		leftWidth = 20
	}
	if rightWidth < 20 {
		rightWidth = 20
	}

	leftPanel := m.renderStationList(leftWidth, panelHeight-2)
	rightPanel := m.renderRightPanel(rightWidth, panelHeight-2)

	leftBorder := stylePanelNormal
	if m.focus == focusStations {
		leftBorder = stylePanelFocused
	}
	leftPanel = leftBorder.
		Width(leftWidth).
		Height(panelHeight - 2).
		Render(leftPanel)

	rightBorder := stylePanelNormal
	if m.focus == focusResult {
		rightBorder = stylePanelFocused
	}
	rightPanel = rightBorder.
		Width(rightWidth).
		Height(panelHeight - 2).
		Render(rightPanel)

	panels := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, rightPanel)

	return lipgloss.JoinVertical(lipgloss.Left, header, searchBar, panels, statusBar)
}

// renderHeader renders the brand name with one bar per line color.
func renderHeader() string {
	bars := lineStyle(models.Line1).Render("━━") +
		lineStyle(models.Line2).Render("━━") +
		lineStyle(models.Line3).Render("━━")
	return bars + " " + styleLogo.Render("ATHENS+") + " " + styleMuted.Render("metro navigator")
}

// renderSearchBar renders the search input at the top.
func (m Model) renderSearchBar() string {
	border := stylePanelNormal
	if m.focus == focusSearch {
		border = stylePanelFocused
	}

	label := styleHeader.Render("Search: ")
	return border.Width(m.width - 2).Render(label + m.searchInput.View())
}

// renderStationList renders the left station panel.
func (m Model) renderStationList(width, height int) string {
	title := styleHeader.Render("STATIONS")

	if len(m.stations) == 0 {
		return title + "\n" + styleMuted.Render(" No station matches")
	}

	var b strings.Builder
	b.WriteString(title)

	maxVisible := height - 1
	if maxVisible < 1 {
		maxVisible = 1
	}
	start, end := visibleRange(m.stationCursor, len(m.stations), maxVisible)

	for i := start; i < end; i++ {
		b.WriteString("\n")
		b.WriteString(m.renderStationLine(m.stations[i], width, i == m.stationCursor))
	}
	return b.String()
}

func (m Model) renderStationLine(st models.Station, width int, selected bool) string {
	var glyphs strings.Builder
	for _, l := range st.Lines {
		glyphs.WriteString(lineStyle(l).Render(selection.Glyph(l)))
	}
	pad := strings.Repeat(" ", max(1, 4-len(st.Lines)))

	var mark string
	switch {
	case m.selection.Start != nil && st.Same(*m.selection.Start):
		mark = styleHeader.Render(" [from]")
	case m.selection.End != nil && st.Same(*m.selection.End):
		mark = styleHeader.Render(" [to]")
	}

	name := truncate(st.Name, width-len(st.Lines)-12)
	if selected {
		return styleSelected.Render(">") + glyphs.String() + pad + styleSelected.Render(name) + mark
	}
	return " " + glyphs.String() + pad + name + mark
}

// renderRightPanel renders the selection indicator above the lookup result.
func (m Model) renderRightPanel(width, height int) string {
	indicator := renderIndicator(m.directives())
	body := m.renderResult(width)

	lines := strings.Split(indicator, "\n")
	lines = append(lines, styleMuted.Render(strings.Repeat("─", width)))

	bodyLines := strings.Split(body, "\n")
	if m.scroll > 0 && len(bodyLines) > 1 {
		bodyLines = bodyLines[min(m.scroll, len(bodyLines)-1):]
	}
	lines = append(lines, bodyLines...)

	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// renderIndicator renders the From/To slots and the controls the pair unlocks.
func renderIndicator(d selection.Directives) string {
	slot := func(s selection.Slot) string {
		if s.Placeholder {
			return slotStyle(s.Color, true).Render(s.Text)
		}
		return slotStyle(s.Color, false).Render(selection.Glyph(s.Line) + " " + s.Text)
	}

	var b strings.Builder
	b.WriteString(styleHeader.Render("From ") + " " + slot(d.Start) + "\n")
	b.WriteString(styleHeader.Render("To   ") + " " + slot(d.End))

	if d.InterchangeVisible {
		b.WriteString("\n" + styleHeader.Render("Change") + " " + slot(d.Interchange))
		if d.Transfer != nil {
			b.WriteString(styleMuted.Render(fmt.Sprintf("  %s → %s, %d stops",
				d.Transfer.From.Short(), d.Transfer.To.Short(), d.Transfer.Hops)))
		}
	}

	var controls []string
	if d.PrimaryEnabled {
		controls = append(controls, "[g] go")
	}
	if d.SwapEnabled {
		controls = append(controls, "[x] swap")
	}
	if d.ResetVisible {
		controls = append(controls, "[r] reset")
	}
	if d.AirportVisible {
		controls = append(controls, "[a] airport timetable")
	}
	if d.HarborVisible {
		controls = append(controls, "[p] harbor map")
	}
	if len(controls) > 0 {
		b.WriteString("\n" + styleControl.Render(strings.Join(controls, "  ")))
	}
	return b.String()
}

// renderResult renders the body of the right panel.
func (m Model) renderResult(width int) string {
	if m.loading {
		return styleLoading.Render(" Loading...")
	}
	if m.err != nil {
		return styleError.Render(" Error: " + m.err.Error())
	}

	switch m.view {
	case viewTimetable:
		if m.timetable != nil {
			return m.renderTimetable(*m.timetable, width)
		}
	case viewAirport:
		if m.airport != nil {
			return styleHeader.Render(m.airport.Instruction) + "\n\n" + m.renderTimetable(m.airport.Timetable, width)
		}
	case viewDirections:
		return m.renderDirections(width)
	case viewHarbor:
		return styleHeader.Render("Piraeus harbor map") + "\n" + m.deps.HarborMapURL
	}

	return styleMuted.Render(" Enter:select station  t:timetable  g:directions")
}

func (m Model) renderTimetable(res timetable.Result, width int) string {
	var b strings.Builder

	b.WriteString(lineStyle(res.Line).Render(res.Line.Short()) + " " + styleHeader.Render(res.Station.Name))
	if m.deps.Registry != nil {
		if name := m.deps.Registry.LineName(res.Line); name != "" {
			b.WriteString(styleMuted.Render(" (" + name + ")"))
		}
	}
	if len(res.Rows) > 0 {
		b.WriteString("\n" + styleMuted.Render(string(res.Rows[0].ServiceDay)+" service"))
	}

	for _, row := range res.Rows {
		dir := truncate("to "+row.Direction, max(10, width-30))
		b.WriteString(fmt.Sprintf("\n %-20s %s-%s", dir,
			styleTime.Render(row.FirstTrain), styleTime.Render(row.LastTrain)))
		if row.HeadwayMinutes > 0 {
			b.WriteString(styleMuted.Render(fmt.Sprintf("  every %d min", row.HeadwayMinutes)))
		}
	}

	if res.Line == models.Line3 {
		if res.Wait != nil {
			b.WriteString("\n\n" + styleWait.Render(fmt.Sprintf("Next train to %s in %d min", res.Wait.Direction, res.Wait.Minutes)))
		} else {
			b.WriteString("\n\n" + styleStale.Render("No more trains today"))
		}
	}
	return b.String()
}

func (m Model) renderDirections(width int) string {
	if len(m.steps) == 0 {
		return styleMuted.Render(" No directions found")
	}

	var b strings.Builder
	for i := range m.steps {
		step := &m.steps[i]
		if i > 0 {
			b.WriteString("\n")
		}
		if !step.IsTransit() {
			b.WriteString(styleMuted.Render("walk ") + truncate(step.From+" → "+step.To, width-6))
			continue
		}

		line, err := models.ParseLine(step.Line)
		badge := lineStyle(line).Render(line.Short())
		if err != nil {
			badge = styleMuted.Render(step.Line)
		}
		desc := step.From + " → " + step.To
		if step.Headsign != "" {
			desc += " towards " + step.Headsign
		}
		b.WriteString(badge + " " + truncate(desc, width-5))

		d := m.deps.Formatter.Format(step)
		b.WriteString("\n    wait " + waitStyle(d).Render(d.Text()))
		if d.NextDep != "" {
			b.WriteString("  " + styleMuted.Render(d.NextDep))
		}
	}
	return b.String()
}

func waitStyle(d waittime.Display) lipgloss.Style {
	switch d.Kind {
	case waittime.KindExplicit, waittime.KindComputed:
		return styleWait
	case waittime.KindStale:
		return styleStale
	case waittime.KindError:
		return styleError
	}
	return styleMuted
}

// renderStatusBar renders the notice, or context-aware keyboard hints.
func (m Model) renderStatusBar() string {
	if m.notice != "" {
		return styleNotice.Width(m.width).Render(" " + m.notice)
	}

	var hints string
	switch m.focus {
	case focusSearch:
		hints = "type:filter  Enter:stations  Esc:clear  Ctrl+C:quit"
	case focusStations:
		hints = "j/k:navigate  Enter:select  g:go  t:timetable  x:swap  r:reset  s:save  Tab:result  q:quit"
	case focusResult:
		hints = "j/k:scroll  Esc:close  g:go  t:timetable  Tab:search  q:quit"
	}

	return styleStatusBar.Width(m.width).Render(" " + hints)
}

// visibleRange calculates the start and end indices for a scrollable list.
func visibleRange(cursor, total, maxVisible int) (int, int) {
	if total <= maxVisible {
		return 0, total
	}

	start := cursor - maxVisible/2
	if start < 0 {
		start = 0
	}
	end := start + maxVisible
	if end > total {
		end = total
		start = end - maxVisible
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

// truncate truncates a string to the given display width.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "~"
}
