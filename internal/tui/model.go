package tui

import (
	"context"

	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/api"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/models"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/selection"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/settings"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/stations"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/timetable"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/waittime"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

type focusPanel int

const (
	focusSearch focusPanel = iota
	focusStations
	focusResult
)

// resultView is what the right panel currently shows below the indicator
type resultView int

const (
	viewNone resultView = iota
	viewTimetable
	viewAirport
	viewDirections
	viewHarbor
)

// Directions is the subset of *api.Client the TUI needs.
type Directions interface {
	Configured() bool
	GetDirections(ctx context.Context, req api.DirectionsRequest) (*models.DirectionsResponse, error)
}

// Deps bundles the services the TUI talks to. Directions and Settings may be nil.
type Deps struct {
	Registry     *stations.Registry
	Lookup       *timetable.Lookup
	Directions   Directions
	Formatter    *waittime.Formatter
	Settings     *settings.Store
	HarborMapURL string
	Log          zerolog.Logger
}

// Model is the root Bubble Tea model for the TUI.
type Model struct {
	deps   Deps
	width  int
	height int

	searchInput textinput.Model
	focus       focusPanel

	// Left panel - stations
	stations      []models.Station
	stationCursor int

	// Station pair being planned
	selection selection.State

	// Right panel - lookup results
	view      resultView
	lookupSeq int
	loading   bool
	err       error
	timetable *timetable.Result
	airport   *timetable.AirportResult
	steps     []models.TransitStep
	scroll    int

	// Transient message in the status bar
	notice    string
	noticeSeq int
}

// New creates a new TUI model.
func New(deps Deps) Model {
	ti := textinput.New()
	ti.Placeholder = "Search station..."
	ti.Focus()
	ti.CharLimit = 60
	ti.Width = 40

	if deps.Formatter == nil {
		deps.Formatter = waittime.NewFormatter(waittime.WithLogger(deps.Log))
	}

	m := Model{
		deps:        deps,
		searchInput: ti,
		focus:       focusSearch,
	}
	m.stations = m.filterStations("")
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Selection returns the current station pair.
func (m Model) Selection() selection.State {
	return m.selection
}

// directives renders the selection indicator for the current pair.
func (m Model) directives() selection.Directives {
	if m.deps.Registry == nil {
		return m.selection.Render(nil)
	}
	return m.selection.Render(m.deps.Registry)
}

func (m Model) filterStations(query string) []models.Station {
	if m.deps.Registry == nil {
		return nil
	}
	return m.deps.Registry.Search(query)
}

// cursorStation returns the station under the list cursor.
func (m Model) cursorStation() (models.Station, bool) {
	if m.stationCursor < 0 || m.stationCursor >= len(m.stations) {
		return models.Station{}, false
	}
	return m.stations[m.stationCursor], true
}

// clearResult drops whatever the right panel shows and invalidates
// lookups still in flight.
func (m *Model) clearResult() {
	m.lookupSeq++
	m.view = viewNone
	m.loading = false
	m.err = nil
	m.timetable = nil
	m.airport = nil
	m.steps = nil
	m.scroll = 0
}

// startLookup prepares the right panel for a new lookup and returns its seq.
func (m *Model) startLookup(v resultView) int {
	m.clearResult()
	m.view = v
	m.loading = true
	return m.lookupSeq
}
