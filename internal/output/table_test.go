package output

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/models"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/selection"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/settings"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/stations"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/testutil"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/timetable"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/waittime"
)

var plain = TableOptions{Colors: NewColors(ColorNever)}

func registry(t *testing.T) *stations.Registry {
	t.Helper()
	reg, err := stations.Default()
	testutil.AssertNil(t, err)
	return reg
}

func station(t *testing.T, reg *stations.Registry, name string) models.Station {
	t.Helper()
	st, err := reg.Find(name)
	testutil.AssertNil(t, err)
	return st
}

func TestRenderStations(t *testing.T) {
	reg := registry(t)
	var buf bytes.Buffer
	RenderStations(&buf, []models.Station{
		station(t, reg, "Kifisia"),
		station(t, reg, "Syntagma"),
		station(t, reg, "Airport"),
	}, plain)

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	testutil.AssertLen(t, lines, 3)
	testutil.AssertContains(t, lines[0], "①")
	testutil.AssertContains(t, lines[0], "Kifisia")
	testutil.AssertNotContains(t, lines[0], "[interchange]")
	testutil.AssertContains(t, lines[1], "②③")
	testutil.AssertContains(t, lines[1], "[interchange]")
	testutil.AssertContains(t, lines[2], "[airport]")
}

func TestRenderStations_Empty(t *testing.T) {
	var buf bytes.Buffer
	RenderStations(&buf, nil, plain)
	testutil.AssertContains(t, buf.String(), "No stations found")
}

func TestRenderTimetable(t *testing.T) {
	reg := registry(t)
	res := timetable.Result{
		Station: station(t, reg, "Halandri"),
		Line:    models.Line3,
		Rows: []models.TimetableRow{
			{Line: models.Line3, Station: "Halandri", Direction: "Airport", ServiceDay: models.ServiceWeekday, FirstTrain: "06:12", LastTrain: "00:12", HeadwayMinutes: 5},
		},
		Wait: &timetable.Supplement{Direction: "Airport", Minutes: 1},
	}

	var buf bytes.Buffer
	opts := plain
	opts.LineNames = reg.LineName
	RenderTimetable(&buf, res, opts)

	out := buf.String()
	testutil.AssertContains(t, out, "M3 Halandri")
	testutil.AssertContains(t, out, "weekday service")
	testutil.AssertContains(t, out, "to Airport")
	testutil.AssertContains(t, out, "06:12-00:12")
	testutil.AssertContains(t, out, "every 5 min")
	testutil.AssertContains(t, out, "Next train to Airport in 1 min")
}

func TestRenderTimetable_NoMoreTrains(t *testing.T) {
	res := timetable.Result{
		Station: models.Station{Name: "Halandri"},
		Line:    models.Line3,
		Rows:    []models.TimetableRow{{Direction: "Airport", FirstTrain: "06:12", LastTrain: "00:12", HeadwayMinutes: 5}},
	}
	var buf bytes.Buffer
	RenderTimetable(&buf, res, plain)
	testutil.AssertContains(t, buf.String(), "No more trains today")
}

func TestRenderTimetable_Empty(t *testing.T) {
	var buf bytes.Buffer
	RenderTimetable(&buf, timetable.Result{Station: models.Station{Name: "Atlantis"}}, plain)
	testutil.AssertEqual(t, buf.String(), "No timetable found for Atlantis.\n")
}

func TestRenderAirport(t *testing.T) {
	reg := registry(t)
	noon := time.Date(2026, 10, 16, 12, 1, 0, 0, time.UTC)
	l := timetable.NewLookup(reg, timetable.NewEmbeddedParser(reg), timetable.WithClock(testutil.FixedClock(noon)))

	res, err := l.Airport(context.Background(), station(t, reg, "Kifisia"))
	testutil.AssertNil(t, err)

	var buf bytes.Buffer
	RenderAirport(&buf, res, plain)
	out := buf.String()
	testutil.AssertContains(t, out, "From: Kifisia")
	testutil.AssertContains(t, out, "Take the metro to Piraeus, then change to Line 3 for the Airport")
	testutil.AssertContains(t, out, "M3 Piraeus")
	testutil.AssertContains(t, out, "to Airport")
}

func TestRenderAirport_NoRoute(t *testing.T) {
	var buf bytes.Buffer
	RenderAirport(&buf, timetable.AirportResult{
		From:        models.Station{Name: "Alpha"},
		Instruction: timetable.InstructionNoRoute,
	}, plain)
	testutil.AssertContains(t, buf.String(), timetable.InstructionNoRoute)
	testutil.AssertNotContains(t, buf.String(), "No timetable found")
}

func TestRenderRoute(t *testing.T) {
	reg := registry(t)
	start, end := station(t, reg, "Kifisia"), station(t, reg, "Airport")

	var buf bytes.Buffer
	RenderRoute(&buf, selection.Render(&start, &end, reg), plain)
	out := buf.String()
	testutil.AssertContains(t, out, "From: ① Kifisia")
	testutil.AssertContains(t, out, "To:   ③ Airport")
	testutil.AssertContains(t, out, "Change at: ③ Monastiraki")
	testutil.AssertContains(t, out, "M1 → M3")
	testutil.AssertContains(t, out, "airport timetable")
	testutil.AssertNotContains(t, out, "harbor map")
}

func TestRenderRoute_Placeholders(t *testing.T) {
	var buf bytes.Buffer
	RenderRoute(&buf, selection.Render(nil, nil, nil), plain)
	out := buf.String()
	testutil.AssertContains(t, out, selection.PlaceholderStart)
	testutil.AssertContains(t, out, selection.PlaceholderEnd)
	testutil.AssertNotContains(t, out, "Change at")
	testutil.AssertNotContains(t, out, "Also:")
}

func TestRenderDirections(t *testing.T) {
	wait := "7 min"
	steps := []models.TransitStep{
		{Mode: "walking", From: "Ermou", To: "Syntagma"},
		{
			Mode: "subway", Line: "3", From: "Syntagma", To: "Airport", Headsign: "Airport", Stops: 15,
			WaitTime: &wait, WaitTimeMinutes: 7, DepartureTime: "14:32",
			Reliability: models.ReliabilityHigh, Frequency: "every 36 min",
		},
		{Mode: "bus", Line: "X95", From: "Syntagma", To: "Airport", DepartureTime: "15:00"},
	}

	var buf bytes.Buffer
	RenderDirections(&buf, steps, waittime.NewFormatter(), plain)
	out := buf.String()
	testutil.AssertContains(t, out, "walk  Ermou → Syntagma")
	testutil.AssertContains(t, out, "M3    Syntagma → Airport (15 stops) towards Airport")
	testutil.AssertContains(t, out, "wait 🟢 7m  Next departure: 14:32 · every 36 min")
	testutil.AssertContains(t, out, "X95")
	testutil.AssertContains(t, out, "wait Check schedule  15:00")
}

func TestRenderDirections_Empty(t *testing.T) {
	var buf bytes.Buffer
	RenderDirections(&buf, nil, nil, plain)
	testutil.AssertContains(t, buf.String(), "No directions found")
}

func TestRenderSavedRoutes(t *testing.T) {
	var buf bytes.Buffer
	RenderSavedRoutes(&buf, []settings.Route{
		{Start: "Kifisia", End: "Airport", SavedAt: time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)},
	}, plain)
	testutil.AssertContains(t, buf.String(), "1  Kifisia → Airport")

	buf.Reset()
	RenderSavedRoutes(&buf, nil, plain)
	testutil.AssertContains(t, buf.String(), "No saved routes")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	err := WriteJSON(&buf, timetable.Result{Station: models.Station{Name: "Omonia", Lines: []models.Line{models.Line1, models.Line2}}, Line: models.Line1})
	testutil.AssertNil(t, err)
	testutil.AssertContains(t, buf.String(), `"name": "Omonia"`)
	testutil.AssertContains(t, buf.String(), `"line": "1"`)
}
