package tui

import (
	"context"
	"time"

	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/api"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/models"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/settings"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/timetable"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	apiTimeout     = 5 * time.Second
	noticeDuration = 3 * time.Second
)

// clearNoticeAfter returns a tea.Cmd that expires the notice with seq.
func clearNoticeAfter(seq int) tea.Cmd {
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// waitTick returns a tea.Cmd that sends a tick every second while wait
// countdowns are visible.
func waitTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return waitTickMsg(t)
	})
}

// fetchTimetable returns a tea.Cmd that resolves a station timetable.
func fetchTimetable(lookup *timetable.Lookup, station models.Station, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
		defer cancel()

		res, err := lookup.TablesFor(ctx, station)
		return timetableResultMsg{seq: seq, result: res, err: err}
	}
}

// fetchAirport returns a tea.Cmd that resolves the timetable towards the Airport.
func fetchAirport(lookup *timetable.Lookup, from models.Station, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
		defer cancel()

		res, err := lookup.Airport(ctx, from)
		return airportResultMsg{seq: seq, result: res, err: err}
	}
}

// fetchDirections returns a tea.Cmd that asks the directions provider for
// metro legs between two stations.
func fetchDirections(client Directions, from, to models.Station, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
		defer cancel()

		resp, err := client.GetDirections(ctx, api.StationDirections(from, to))
		if err != nil {
			return directionsResultMsg{seq: seq, err: err}
		}
		return directionsResultMsg{seq: seq, steps: resp.Steps}
	}
}

// saveRoute returns a tea.Cmd that stores a station pair in the settings file.
func saveRoute(store *settings.Store, from, to models.Station) tea.Cmd {
	return func() tea.Msg {
		added, err := store.SaveRoute(from.Name, to.Name)
		return routeSavedMsg{
			route: settings.Route{Start: from.Name, End: to.Name}.String(),
			added: added,
			err:   err,
		}
	}
}
