package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/api"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/settings"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/stations"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/testutil"
)

// isolate points every file the CLI touches into a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("ATHENSPLUS_LOG_FILE", filepath.Join(dir, "athensplus.log"))
	t.Setenv("ATHENSPLUS_SETTINGS_FILE", filepath.Join(dir, "settings.json"))
	t.Setenv("ATHENSPLUS_API_KEY", "")
	t.Setenv("ATHENSPLUS_API_URL", "")
	t.Setenv("ATHENSPLUS_TIMETABLE_DIR", "")
	return dir
}

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	flagJSON, flagColor, flagNoCache, flagVerbose = false, "", false, false
	flagLine, flagWatch, flagRawJSON = "", false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func withDirectionsServer(t *testing.T, status int, body string) *testutil.MockServer {
	t.Helper()
	server := testutil.NewJSONServer(status, body)
	t.Cleanup(server.Close)
	t.Setenv("ATHENSPLUS_API_URL", server.URL)
	t.Setenv("ATHENSPLUS_API_KEY", "test-key")
	return server
}

func TestCLI_Version(t *testing.T) {
	out, err := execute(t, "--version")
	testutil.AssertNil(t, err)
	testutil.AssertContains(t, out, "athensplus version "+version)
}

func TestCLI_Help(t *testing.T) {
	out, err := execute(t, "--help")
	testutil.AssertNil(t, err)
	testutil.AssertContains(t, out, "athensplus plans trips on the Athens metro")

	for _, cmd := range []string{"tui", "stations", "route", "timetable", "airport", "directions", "saved", "theme"} {
		testutil.AssertContains(t, out, cmd)
	}
}

func TestCLI_Stations(t *testing.T) {
	isolate(t)

	out, err := execute(t, "stations", "--line", "3", "--color", "never")
	testutil.AssertNil(t, err)
	testutil.AssertContains(t, out, "Dimotiko Theatro")
	testutil.AssertContains(t, out, "Airport")
	testutil.AssertNotContains(t, out, "Kifisia")
}

func TestCLI_Stations_JSON(t *testing.T) {
	isolate(t)

	out, err := execute(t, "stations", "--json")
	testutil.AssertNil(t, err)

	var list []map[string]any
	testutil.AssertNil(t, json.Unmarshal([]byte(out), &list))
	reg, err := stations.Default()
	testutil.AssertNil(t, err)
	testutil.AssertLen(t, list, len(reg.All()))
	testutil.AssertEqual(t, list[0]["name"], any("Kifisia"))
}

func TestCLI_Stations_BadLine(t *testing.T) {
	isolate(t)
	_, err := execute(t, "stations", "--line", "9")
	testutil.AssertError(t, err)
}

func TestCLI_Route(t *testing.T) {
	isolate(t)

	out, err := execute(t, "route", "Kifisia", "Airport", "--color", "never")
	testutil.AssertNil(t, err)
	testutil.AssertContains(t, out, "① Kifisia")
	testutil.AssertContains(t, out, "③ Airport")
	testutil.AssertContains(t, out, "Change at: ③ Monastiraki")
	testutil.AssertContains(t, out, "airport timetable")
}

func TestCLI_Route_StartOnly(t *testing.T) {
	isolate(t)

	out, err := execute(t, "route", "Syntagma", "--color", "never")
	testutil.AssertNil(t, err)
	testutil.AssertContains(t, out, "Select destination")
	testutil.AssertNotContains(t, out, "Change at:")
}

func TestCLI_Route_JSON(t *testing.T) {
	isolate(t)

	out, err := execute(t, "route", "Elliniko", "Kifisia", "--json")
	testutil.AssertNil(t, err)

	var d struct {
		InterchangeVisible bool `json:"interchangeVisible"`
		PrimaryEnabled     bool `json:"primaryEnabled"`
		Interchange        struct {
			Text  string `json:"text"`
			Color string `json:"color"`
		} `json:"interchange"`
	}
	testutil.AssertNil(t, json.Unmarshal([]byte(out), &d))
	testutil.AssertTrue(t, d.InterchangeVisible)
	testutil.AssertTrue(t, d.PrimaryEnabled)
	testutil.AssertEqual(t, d.Interchange.Text, "Omonia")
	testutil.AssertEqual(t, d.Interchange.Color, "#00A651")
}

func TestCLI_Route_Errors(t *testing.T) {
	isolate(t)

	_, err := execute(t, "route", "Omonia", "Omonia")
	testutil.AssertError(t, err)

	_, err = execute(t, "route", "Atlantis")
	testutil.AssertErrorIs(t, err, stations.ErrUnknownStation)
}

func TestCLI_Timetable(t *testing.T) {
	isolate(t)

	out, err := execute(t, "timetable", "Omonia", "--color", "never")
	testutil.AssertNil(t, err)
	testutil.AssertContains(t, out, "M1 Omonia")
	testutil.AssertContains(t, out, "Kifisia - Piraeus")
	testutil.AssertContains(t, out, "to Piraeus")
}

func TestCLI_Timetable_JSON(t *testing.T) {
	isolate(t)

	out, err := execute(t, "timetable", "Halandri", "--json")
	testutil.AssertNil(t, err)

	var res struct {
		Line string `json:"line"`
		Rows []struct {
			Direction string `json:"direction"`
		} `json:"rows"`
	}
	testutil.AssertNil(t, json.Unmarshal([]byte(out), &res))
	testutil.AssertEqual(t, res.Line, "3")
	testutil.AssertTrue(t, len(res.Rows) > 0)
}

func TestCLI_Airport(t *testing.T) {
	isolate(t)

	out, err := execute(t, "airport", "Kifisia", "--color", "never")
	testutil.AssertNil(t, err)
	testutil.AssertContains(t, out, "From: Kifisia")
	testutil.AssertContains(t, out, "Take the metro to Piraeus")
	testutil.AssertContains(t, out, "to Airport")
}

func TestCLI_Directions_NotConfigured(t *testing.T) {
	isolate(t)

	_, err := execute(t, "directions", "Syntagma", "Airport")
	testutil.AssertErrorIs(t, err, api.ErrNotConfigured)
}

func TestCLI_Directions(t *testing.T) {
	isolate(t)
	server := withDirectionsServer(t, http.StatusOK, testutil.SampleDirectionsResponse)

	out, err := execute(t, "directions", "Syntagma", "Airport", "--color", "never", "--no-cache")
	testutil.AssertNil(t, err)
	testutil.AssertContains(t, out, "Syntagma → Airport")
	testutil.AssertContains(t, out, "7m")
	testutil.AssertContains(t, out, "every 36 min")

	req := server.LastRequest()
	testutil.AssertTrue(t, req != nil)
	testutil.AssertContains(t, req.URL.Query().Get("origin"), "Syntagma")
}

func TestCLI_Directions_JSON(t *testing.T) {
	isolate(t)
	withDirectionsServer(t, http.StatusOK, testutil.SampleDirectionsResponse)

	out, err := execute(t, "directions", "Syntagma", "Airport", "--json", "--no-cache")
	testutil.AssertNil(t, err)

	var steps []map[string]any
	testutil.AssertNil(t, json.Unmarshal([]byte(out), &steps))
	testutil.AssertLen(t, steps, 2)
	_, walkHasWait := steps[0]["wait"]
	testutil.AssertFalse(t, walkHasWait)
	testutil.AssertEqual(t, steps[1]["wait"], any("🟢 7m"))
}

func TestCLI_Directions_RawJSON(t *testing.T) {
	isolate(t)
	withDirectionsServer(t, http.StatusOK, testutil.SampleDirectionsResponse)

	out, err := execute(t, "directions", "Syntagma", "Airport", "--raw-json", "--no-cache")
	testutil.AssertNil(t, err)
	testutil.AssertContains(t, out, `"status": "OK"`)
}

func TestCLI_Directions_NoResults(t *testing.T) {
	isolate(t)
	withDirectionsServer(t, http.StatusOK, testutil.SampleZeroResultsResponse)

	out, err := execute(t, "directions", "Syntagma", "Airport", "--no-cache")
	testutil.AssertNil(t, err)
	testutil.AssertContains(t, out, "No directions found.")
}

func TestCLI_Directions_Denied(t *testing.T) {
	isolate(t)
	withDirectionsServer(t, http.StatusOK, testutil.SampleDeniedResponse)

	_, err := execute(t, "directions", "Syntagma", "Airport", "--no-cache")
	testutil.AssertErrorIs(t, err, api.ErrDenied)
}

func TestCLI_SavedRoutes(t *testing.T) {
	dir := isolate(t)

	out, err := execute(t, "saved", "list")
	testutil.AssertNil(t, err)
	testutil.AssertContains(t, out, "No saved routes.")

	out, err = execute(t, "saved", "add", "Kifisia", "Airport")
	testutil.AssertNil(t, err)
	testutil.AssertContains(t, out, "Saved Kifisia → Airport")

	out, err = execute(t, "saved", "add", "Kifisia", "Airport")
	testutil.AssertNil(t, err)
	testutil.AssertContains(t, out, "already saved")

	out, err = execute(t, "saved", "list", "--color", "never")
	testutil.AssertNil(t, err)
	testutil.AssertContains(t, out, "Kifisia → Airport")

	store, err := settings.Open(filepath.Join(dir, "settings.json"))
	testutil.AssertNil(t, err)
	routes, err := store.SavedRoutes()
	testutil.AssertNil(t, err)
	testutil.AssertLen(t, routes, 1)

	out, err = execute(t, "saved", "remove", "Kifisia", "Airport")
	testutil.AssertNil(t, err)
	testutil.AssertContains(t, out, "Removed Kifisia → Airport")

	_, err = execute(t, "saved", "remove", "Kifisia", "Airport")
	testutil.AssertError(t, err)
}

func TestCLI_SavedList_JSONEmpty(t *testing.T) {
	isolate(t)

	out, err := execute(t, "saved", "list", "--json")
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, strings.TrimSpace(out), "[]")
}

func TestCLI_SavedAdd_SameStation(t *testing.T) {
	isolate(t)
	_, err := execute(t, "saved", "add", "Omonia", "Omonia")
	testutil.AssertError(t, err)
}

func TestCLI_Theme(t *testing.T) {
	isolate(t)

	out, err := execute(t, "theme")
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, strings.TrimSpace(out), settings.ThemeAuto)

	out, err = execute(t, "theme", "never")
	testutil.AssertNil(t, err)
	testutil.AssertContains(t, out, "Theme set to never")

	out, err = execute(t, "theme")
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, strings.TrimSpace(out), settings.ThemeNever)

	_, err = execute(t, "theme", "rainbow")
	testutil.AssertErrorIs(t, err, settings.ErrInvalidTheme)
}

func TestCLI_InvalidCommand(t *testing.T) {
	_, err := execute(t, "departures")
	testutil.AssertError(t, err)
}

func TestRunWatch_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	calls := 0
	err := runWatch(ctx, &out, time.Hour, func(w io.Writer) error {
		calls++
		_, _ = io.WriteString(w, "frame")
		return nil
	})

	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, calls, 1)
	testutil.AssertContains(t, out.String(), "frame")
	testutil.AssertContains(t, out.String(), "Watch mode ended.")
}

func TestPrintPrettyJSON(t *testing.T) {
	var out bytes.Buffer
	testutil.AssertNil(t, printPrettyJSON(&out, []byte(`{"status":"OK"}`)))
	testutil.AssertContains(t, out.String(), `"status": "OK"`)

	out.Reset()
	testutil.AssertError(t, printPrettyJSON(&out, []byte("not json")))
	testutil.AssertContains(t, out.String(), "not json")
}
