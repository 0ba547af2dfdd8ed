package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/api"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/config"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/logger"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/models"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/output"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/selection"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/settings"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/stations"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/timetable"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/tui"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/waittime"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	ctx, stop := output.InterruptContext(context.Background())
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "athensplus",
	Short: "Athens metro navigator for the terminal",
	Long: `athensplus plans trips on the Athens metro (Lines 1, 2 and 3).

Features:
  - Start/destination selection with the interchange station
  - Station timetables from the published service patterns
  - Airport timetable from any station
  - Live directions with wait times (needs ATHENSPLUS_API_KEY)
  - Saved routes and a persistent color theme
  - JSON output for scripting

Quick Start:
  1. Launch TUI:               athensplus (or athensplus tui)
  2. List stations:            athensplus stations --line 3
  3. Plan a route:             athensplus route Kifisia Airport
  4. Show a timetable:         athensplus timetable Halandri
  5. Airport timetable:        athensplus airport Omonia
  6. Live directions:          athensplus directions Syntagma Airport`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no subcommand is provided, launch TUI
		if len(args) == 0 {
			return runTUI(cmd, args)
		}
		return cmd.Help()
	},
}

// Global flags
var (
	flagJSON    bool
	flagColor   string
	flagNoCache bool
	flagVerbose bool
)

// Command flags
var (
	flagLine    string
	flagWatch   bool
	flagRawJSON bool
)

const watchInterval = 30 * time.Second

func init() {
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(stationsCmd)
	rootCmd.AddCommand(routeCmd)
	rootCmd.AddCommand(timetableCmd)
	rootCmd.AddCommand(airportCmd)
	rootCmd.AddCommand(directionsCmd)
	rootCmd.AddCommand(savedCmd)
	rootCmd.AddCommand(themeCmd)

	savedCmd.AddCommand(savedListCmd)
	savedCmd.AddCommand(savedAddCmd)
	savedCmd.AddCommand(savedRemoveCmd)

	// Global flags
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "", "Color output: auto, always, never (default: saved theme)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Disable directions caching")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output to stderr")

	stationsCmd.Flags().StringVarP(&flagLine, "line", "l", "", "Only stations of this line (1, 2, 3 or M1..M3)")
	timetableCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Watch mode: refresh every 30 seconds")
	directionsCmd.Flags().BoolVar(&flagRawJSON, "raw-json", false, "Output raw provider response")
}

// app holds the services shared by every command.
type app struct {
	cfg       *config.Config
	log       zerolog.Logger
	closer    io.Closer
	registry  *stations.Registry
	lookup    *timetable.Lookup
	client    *api.Client
	formatter *waittime.Formatter
	settings  *settings.Store
}

// newApp loads configuration and wires the services.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logCfg := logger.DefaultConfig(cfg.Logging.FilePath)
	logCfg.Level = logger.ParseLevel(cfg.Logging.Level)
	if flagVerbose {
		logCfg.Console = true
		logCfg.Level = zerolog.DebugLevel
	}
	log, closer, err := logger.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	registry, err := stations.Default()
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	parser := timetable.NewEmbeddedParser(registry)
	if cfg.Timetable.Dir != "" {
		parser = timetable.NewDirParser(cfg.Timetable.Dir, registry)
	}

	client, err := createClient(cfg, log)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	store, err := settings.Open(cfg.Settings.FilePath)
	if err != nil {
		// A broken settings file should not block lookups
		log.Warn().Err(err).Str("path", cfg.Settings.FilePath).Msg("Settings unavailable")
		store = nil
	}

	return &app{
		cfg:       cfg,
		log:       log,
		closer:    closer,
		registry:  registry,
		lookup:    timetable.NewLookup(registry, parser, timetable.WithLogger(log)),
		client:    client,
		formatter: waittime.NewFormatter(waittime.WithLogger(log)),
		settings:  store,
	}, nil
}

func (a *app) Close() {
	_ = a.closer.Close()
}

// createClient creates an API client with common options
func createClient(cfg *config.Config, log zerolog.Logger) (*api.Client, error) {
	opts := []api.ClientOption{
		api.WithLogger(log),
		api.WithBaseURL(cfg.Directions.BaseURL),
		api.WithAPIKey(cfg.Directions.APIKey),
		api.WithUserAgent("athensplus/" + version),
	}

	// Enable caching unless disabled
	if !flagNoCache {
		opts = append(opts, api.WithDefaultCache(cfg.Directions.CacheTTL))
	}

	return api.NewClient(opts...)
}

// colors returns the color scheme from --color, falling back to the saved theme
func (a *app) colors() *output.Colors {
	mode := flagColor
	if mode == "" && a.settings != nil {
		mode = a.settings.Theme()
	}
	return output.NewColors(output.ParseColorMode(mode))
}

func (a *app) tableOptions() output.TableOptions {
	return output.TableOptions{
		Colors:    a.colors(),
		LineNames: a.registry.LineName,
	}
}

func (a *app) requireSettings() (*settings.Store, error) {
	if a.settings == nil {
		return nil, fmt.Errorf("settings file %s is unreadable", a.cfg.Settings.FilePath)
	}
	return a.settings, nil
}

// withApp wraps a command body with app setup and teardown.
func withApp(run func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()
		return run(cmd, args, a)
	}
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive full-screen TUI",
	Long: `Launch an interactive full-screen terminal UI for planning
metro trips.

Keyboard:
  Tab            Cycle focus between search, stations and result
  j/k or arrows  Navigate lists
  Enter          Select start, then destination
  g              Live directions for the pair
  t              Timetable of the start station
  a              Airport timetable (Airport destination)
  p              Harbor map (Piraeus destination)
  x / r          Swap / reset the pair
  s              Save the route
  /              Jump to search
  q              Quit`,
	RunE: runTUI,
}

var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "List metro stations",
	Long: `List metro stations in table order with the lines serving them.

Examples:
  athensplus stations
  athensplus stations --line 3
  athensplus stations -l M2 --json`,
	Args: cobra.NoArgs,
	RunE: withApp(runStations),
}

var routeCmd = &cobra.Command{
	Use:   "route <start> [destination]",
	Short: "Show the selection and interchange for a station pair",
	Long: `Show what the selection indicator displays for a station pair:
the line colors of both stations, the interchange station when the
pair shares no line, and the extra Airport and harbor controls.

Station names match English or Greek, or a unique prefix.

Examples:
  athensplus route Kifisia Airport
  athensplus route Elliniko Kifisia --json
  athensplus route Syntagma`,
	Args: cobra.RangeArgs(1, 2),
	RunE: withApp(runRoute),
}

var timetableCmd = &cobra.Command{
	Use:   "timetable <station>",
	Short: "Show the timetable of a station",
	Long: `Show first and last trains and the headway of a station for
today's service day. Line 3 stations also show the wait for the next train.

Examples:
  athensplus timetable Omonia
  athensplus timetable Halandri --watch`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(runTimetable),
}

var airportCmd = &cobra.Command{
	Use:   "airport <from>",
	Short: "Show the timetable towards the Airport",
	Long: `Show Line 3 trains towards the Airport. Stations off Line 3 are
sent to a Line 3 interchange first.

Examples:
  athensplus airport Syntagma
  athensplus airport Kifisia`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(runAirport),
}

var directionsCmd = &cobra.Command{
	Use:   "directions <start> <destination>",
	Short: "Show live metro directions with wait times",
	Long: `Ask the directions provider for metro legs between two stations and
show the wait for each ride.

Requires ATHENSPLUS_API_KEY (environment or .env).

Examples:
  athensplus directions Syntagma Airport
  athensplus directions Omonia Piraeus --raw-json`,
	Args: cobra.ExactArgs(2),
	RunE: withApp(runDirections),
}

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage saved routes",
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved routes",
	Args:  cobra.NoArgs,
	RunE:  withApp(runSavedList),
}

var savedAddCmd = &cobra.Command{
	Use:   "add <start> <destination>",
	Short: "Save a route",
	Args:  cobra.ExactArgs(2),
	RunE:  withApp(runSavedAdd),
}

var savedRemoveCmd = &cobra.Command{
	Use:   "remove <start> <destination>",
	Short: "Remove a saved route",
	Args:  cobra.ExactArgs(2),
	RunE:  withApp(runSavedRemove),
}

var themeCmd = &cobra.Command{
	Use:   "theme [auto|always|never]",
	Short: "Show or set the saved color theme",
	Args:  cobra.MaximumNArgs(1),
	RunE:  withApp(runTheme),
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	model := tui.New(tui.Deps{
		Registry:     a.registry,
		Lookup:       a.lookup,
		Directions:   a.client,
		Formatter:    a.formatter,
		Settings:     a.settings,
		HarborMapURL: a.cfg.Harbor.MapURL,
		Log:          a.log,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func runStations(cmd *cobra.Command, args []string, a *app) error {
	list := a.registry.All()
	if flagLine != "" {
		line, err := models.ParseLine(flagLine)
		if err != nil {
			return err
		}
		list = a.registry.Table(line)
	}

	if flagJSON {
		return output.WriteJSON(cmd.OutOrStdout(), list)
	}
	output.RenderStations(cmd.OutOrStdout(), list, a.tableOptions())
	return nil
}

func runRoute(cmd *cobra.Command, args []string, a *app) error {
	var state selection.State
	for _, name := range args {
		st, err := a.registry.Find(name)
		if err != nil {
			return err
		}
		if !state.Select(st) {
			return fmt.Errorf("start and destination are both %s", st.Name)
		}
	}

	d := state.Render(a.registry)
	if flagJSON {
		return output.WriteJSON(cmd.OutOrStdout(), d)
	}
	output.RenderRoute(cmd.OutOrStdout(), d, a.tableOptions())
	return nil
}

func runTimetable(cmd *cobra.Command, args []string, a *app) error {
	st, err := a.registry.Find(args[0])
	if err != nil {
		return err
	}

	render := func(w io.Writer) error {
		res, err := a.lookup.TablesFor(cmd.Context(), st)
		if err != nil {
			return err
		}
		if flagJSON {
			return output.WriteJSON(w, res)
		}
		output.RenderTimetable(w, res, a.tableOptions())
		return nil
	}

	if flagWatch {
		return runWatch(cmd.Context(), cmd.OutOrStdout(), watchInterval, render)
	}
	return render(cmd.OutOrStdout())
}

func runAirport(cmd *cobra.Command, args []string, a *app) error {
	from, err := a.registry.Find(args[0])
	if err != nil {
		return err
	}

	res, err := a.lookup.Airport(cmd.Context(), from)
	if err != nil {
		return err
	}
	if flagJSON {
		return output.WriteJSON(cmd.OutOrStdout(), res)
	}
	output.RenderAirport(cmd.OutOrStdout(), res, a.tableOptions())
	return nil
}

func runDirections(cmd *cobra.Command, args []string, a *app) error {
	from, err := a.registry.Find(args[0])
	if err != nil {
		return err
	}
	to, err := a.registry.Find(args[1])
	if err != nil {
		return err
	}
	if !a.client.Configured() {
		return fmt.Errorf("directions not available, set %s: %w", config.EnvAPIKey, api.ErrNotConfigured)
	}

	req := api.StationDirections(from, to)

	// Raw JSON output
	if flagRawJSON {
		raw, err := a.client.GetDirectionsRaw(cmd.Context(), req)
		if err != nil {
			return err
		}
		return printPrettyJSON(cmd.OutOrStdout(), raw)
	}

	resp, err := a.client.GetDirections(cmd.Context(), req)
	if errors.Is(err, api.ErrNoResults) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No directions found.")
		return nil
	}
	if err != nil {
		return err
	}

	if flagJSON {
		return output.WriteJSON(cmd.OutOrStdout(), directionsJSON(resp.Steps, a.formatter))
	}
	output.RenderDirections(cmd.OutOrStdout(), resp.Steps, a.formatter, a.tableOptions())
	return nil
}

// stepJSON is a provider step with its formatted wait time
type stepJSON struct {
	models.TransitStep
	Wait    string `json:"wait,omitempty"`
	NextDep string `json:"nextDeparture,omitempty"`
}

func directionsJSON(steps []models.TransitStep, f *waittime.Formatter) []stepJSON {
	out := make([]stepJSON, 0, len(steps))
	for i := range steps {
		s := stepJSON{TransitStep: steps[i]}
		if steps[i].IsTransit() {
			d := f.Format(&steps[i])
			s.Wait = d.Text()
			s.NextDep = d.NextDep
		}
		out = append(out, s)
	}
	return out
}

func runSavedList(cmd *cobra.Command, args []string, a *app) error {
	store, err := a.requireSettings()
	if err != nil {
		return err
	}
	routes, err := store.SavedRoutes()
	if err != nil {
		return err
	}
	if flagJSON {
		if routes == nil {
			routes = []settings.Route{}
		}
		return output.WriteJSON(cmd.OutOrStdout(), routes)
	}
	output.RenderSavedRoutes(cmd.OutOrStdout(), routes, a.tableOptions())
	return nil
}

func runSavedAdd(cmd *cobra.Command, args []string, a *app) error {
	from, to, err := resolvePair(a.registry, args)
	if err != nil {
		return err
	}
	store, err := a.requireSettings()
	if err != nil {
		return err
	}

	route := settings.Route{Start: from.Name, End: to.Name}
	added, err := store.SaveRoute(from.Name, to.Name)
	if err != nil {
		return fmt.Errorf("failed to save route: %w", err)
	}
	if added {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", route)
	} else {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is already saved\n", route)
	}
	return nil
}

func runSavedRemove(cmd *cobra.Command, args []string, a *app) error {
	from, to, err := resolvePair(a.registry, args)
	if err != nil {
		return err
	}
	store, err := a.requireSettings()
	if err != nil {
		return err
	}

	route := settings.Route{Start: from.Name, End: to.Name}
	removed, err := store.RemoveRoute(from.Name, to.Name)
	if err != nil {
		return fmt.Errorf("failed to remove route: %w", err)
	}
	if !removed {
		return fmt.Errorf("%s is not saved", route)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", route)
	return nil
}

func runTheme(cmd *cobra.Command, args []string, a *app) error {
	store, err := a.requireSettings()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), store.Theme())
		return nil
	}
	if err := store.SetTheme(args[0]); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", store.Theme())
	return nil
}

// resolvePair finds two distinct stations by name.
func resolvePair(reg *stations.Registry, args []string) (models.Station, models.Station, error) {
	from, err := reg.Find(args[0])
	if err != nil {
		return models.Station{}, models.Station{}, err
	}
	to, err := reg.Find(args[1])
	if err != nil {
		return models.Station{}, models.Station{}, err
	}
	if from.Same(to) {
		return models.Station{}, models.Station{}, fmt.Errorf("start and destination are both %s", from.Name)
	}
	return from, to, nil
}

// runWatch redraws every interval until ctx is cancelled
func runWatch(ctx context.Context, w io.Writer, interval time.Duration, render func(io.Writer) error) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	screen := output.NewScreen(w)
	defer screen.Close()

	for {
		screen.Redraw(func(w io.Writer) {
			_, _ = fmt.Fprintf(w, "Last update: %s | Next refresh in %s | Press Ctrl+C to exit\n\n",
				time.Now().Format("15:04:05"), interval)
			if err := render(w); err != nil {
				_, _ = fmt.Fprintf(w, "Error: %v\n", err)
			}
		})

		select {
		case <-ticker.C:
			continue
		case <-ctx.Done():
			output.ClearScreen(w)
			_, _ = fmt.Fprintln(w, "Watch mode ended.")
			return nil
		}
	}
}

func printPrettyJSON(w io.Writer, data []byte) error {
	var prettyJSON interface{}
	if err := json.Unmarshal(data, &prettyJSON); err != nil {
		// If we can't parse it, just print raw
		_, _ = fmt.Fprintln(w, string(data))
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(prettyJSON)
}
