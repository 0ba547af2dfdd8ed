package tui

import (
	"errors"
	"fmt"

	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/api"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case timetableResultMsg:
		if msg.seq != m.lookupSeq {
			return m, nil // stale result
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.deps.Log.Error().Err(msg.err).Str("station", msg.result.Station.Name).Msg("Timetable lookup failed")
			return m, nil
		}
		if msg.result.Empty() {
			m.view = viewNone
			return m, m.setNotice(fmt.Sprintf("No timetable found for %s", msg.result.Station.Name))
		}
		res := msg.result
		m.timetable = &res
		return m, nil

	case airportResultMsg:
		if msg.seq != m.lookupSeq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.deps.Log.Error().Err(msg.err).Str("from", msg.result.From.Name).Msg("Airport lookup failed")
			return m, nil
		}
		if msg.result.Target == nil || msg.result.Timetable.Empty() {
			m.view = viewNone
			return m, m.setNotice(msg.result.Instruction)
		}
		res := msg.result
		m.airport = &res
		return m, nil

	case directionsResultMsg:
		if msg.seq != m.lookupSeq {
			return m, nil
		}
		m.loading = false
		if errors.Is(msg.err, api.ErrNoResults) || (msg.err == nil && len(msg.steps) == 0) {
			m.view = viewNone
			return m, m.setNotice("No directions found")
		}
		if msg.err != nil {
			m.err = msg.err
			m.deps.Log.Error().Err(msg.err).Msg("Directions lookup failed")
			return m, nil
		}
		m.steps = msg.steps
		return m, waitTick()

	case waitTickMsg:
		// Keep ticking only while countdowns are on screen
		if m.view == viewDirections && len(m.steps) > 0 {
			return m, waitTick()
		}
		return m, nil

	case routeSavedMsg:
		switch {
		case msg.err != nil:
			m.deps.Log.Error().Err(msg.err).Str("route", msg.route).Msg("Failed to save route")
			return m, m.setNotice("Failed to save route: " + msg.err.Error())
		case msg.added:
			return m, m.setNotice("Saved " + msg.route)
		default:
			return m, m.setNotice(msg.route + " is already saved")
		}

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	}

	// Forward other messages (e.g. cursor blink) to text input
	if m.focus == focusSearch {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

// setNotice shows text in the status bar and schedules its removal.
func (m *Model) setNotice(text string) tea.Cmd {
	m.noticeSeq++
	m.notice = text
	return clearNoticeAfter(m.noticeSeq)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.focus {
	case focusSearch:
		return m.handleSearchKeys(msg)
	case focusStations:
		return m.handleStationKeys(msg)
	case focusResult:
		return m.handleResultKeys(msg)
	}
	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.searchInput.Value() != "" {
			m.searchInput.SetValue("")
			m.stations = m.filterStations("")
			m.stationCursor = 0
			return m, nil
		}
		m.focusPanel(focusStations)
		return m, nil

	case "tab", "enter", "down":
		m.focusPanel(focusStations)
		return m, nil

	case "shift+tab":
		m.focusPanel(focusResult)
		return m, nil
	}

	prev := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	if m.searchInput.Value() != prev {
		m.stations = m.filterStations(m.searchInput.Value())
		m.stationCursor = 0
	}
	return m, cmd
}

func (m Model) handleStationKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.stations) > 0 {
		m.stationCursor = clamp(m.stationCursor, 0, len(m.stations)-1)
	}

	switch msg.String() {
	case "j", "down":
		if m.stationCursor < len(m.stations)-1 {
			m.stationCursor++
		}
		return m, nil

	case "k", "up":
		if m.stationCursor > 0 {
			m.stationCursor--
		}
		return m, nil

	case "pgdown":
		if len(m.stations) > 0 {
			m.stationCursor = clamp(m.stationCursor+m.pageSize(), 0, len(m.stations)-1)
		}
		return m, nil

	case "pgup":
		if len(m.stations) > 0 {
			m.stationCursor = clamp(m.stationCursor-m.pageSize(), 0, len(m.stations)-1)
		}
		return m, nil

	case "home":
		m.stationCursor = 0
		return m, nil

	case "end":
		if len(m.stations) > 0 {
			m.stationCursor = len(m.stations) - 1
		}
		return m, nil

	case "enter":
		st, ok := m.cursorStation()
		if !ok {
			return m, nil
		}
		if m.selection.Select(st) {
			m.clearResult()
		}
		return m, nil
	}

	return m.handleAction(msg)
}

func (m Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.scroll++
		return m, nil

	case "k", "up":
		if m.scroll > 0 {
			m.scroll--
		}
		return m, nil

	case "home":
		m.scroll = 0
		return m, nil
	}

	return m.handleAction(msg)
}

// handleAction handles the keys shared by the station list and result panel.
func (m Model) handleAction(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "tab":
		m.focusPanel((m.focus + 1) % 3)
		return m, nil

	case "shift+tab":
		m.focusPanel((m.focus + 2) % 3)
		return m, nil

	case "/":
		m.focusPanel(focusSearch)
		return m, nil

	case "esc":
		if m.view != viewNone {
			m.clearResult()
			return m, nil
		}
		m.focusPanel(focusSearch)
		return m, nil

	case "g":
		return m.goDirections()

	case "t":
		return m.showTimetable()

	case "a":
		if !m.directives().AirportVisible {
			return m, nil
		}
		seq := m.startLookup(viewAirport)
		return m, fetchAirport(m.deps.Lookup, *m.selection.Start, seq)

	case "p":
		if !m.directives().HarborVisible {
			return m, nil
		}
		m.clearResult()
		m.view = viewHarbor
		return m, nil

	case "x":
		if m.selection.Swap() {
			m.clearResult()
		}
		return m, nil

	case "r":
		if !m.selection.Empty() {
			m.selection.Reset()
			m.clearResult()
		}
		return m, nil

	case "s":
		if !m.selection.Complete() {
			return m, m.setNotice("Select start and destination first")
		}
		if m.deps.Settings == nil {
			return m, m.setNotice("Saved routes are unavailable")
		}
		return m, saveRoute(m.deps.Settings, *m.selection.Start, *m.selection.End)
	}

	return m, nil
}

// goDirections is the primary action: provider directions for the pair.
func (m Model) goDirections() (tea.Model, tea.Cmd) {
	if !m.directives().PrimaryEnabled {
		return m, m.setNotice("Select start and destination first")
	}
	if m.deps.Directions == nil || !m.deps.Directions.Configured() {
		return m, m.setNotice("Live directions need ATHENSPLUS_API_KEY")
	}
	seq := m.startLookup(viewDirections)
	return m, fetchDirections(m.deps.Directions, *m.selection.Start, *m.selection.End, seq)
}

// showTimetable looks up the start station, or the station under the
// cursor when nothing is selected.
func (m Model) showTimetable() (tea.Model, tea.Cmd) {
	st, ok := m.cursorStation()
	if m.selection.Start != nil {
		st, ok = *m.selection.Start, true
	}
	if !ok {
		return m, m.setNotice("Select a station first")
	}
	seq := m.startLookup(viewTimetable)
	return m, fetchTimetable(m.deps.Lookup, st, seq)
}

func (m *Model) focusPanel(f focusPanel) {
	m.focus = f
	if f == focusSearch {
		m.searchInput.Focus()
	} else {
		m.searchInput.Blur()
	}
}

func (m Model) pageSize() int {
	// header, search bar, indicator and status bar
	size := m.height - 10
	if size < 1 {
		size = 10
	}
	return size
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
