// Package timetable resolves the timetable of a station from the per-line
// service patterns, including the Airport variant.
package timetable

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/models"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/stations"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
)

// Instruction texts of the Airport lookup
const (
	InstructionDirect      = "Line 3 runs direct to the Airport"
	InstructionNoRoute     = "No direct route to the Airport"
	instructionInterchange = "Take the metro to %s, then change to Line 3 for the Airport"
)

// WaitEstimator computes the supplementary wait figure for a row.
type WaitEstimator interface {
	Estimate(ctx context.Context, row models.TimetableRow, now time.Time) (time.Duration, bool)
}

// DefaultEstimator waits for the next departure of the row's service pattern.
type DefaultEstimator struct{}

// Estimate implements WaitEstimator.
func (DefaultEstimator) Estimate(ctx context.Context, row models.TimetableRow, now time.Time) (time.Duration, bool) {
	if ctx.Err() != nil {
		return 0, false
	}
	next, ok := row.NextDeparture(now)
	if !ok {
		return 0, false
	}
	return next.Sub(now), true
}

// Supplement is the extra wait figure computed for Line 3 stations.
type Supplement struct {
	Direction string `json:"direction"`
	Minutes   int    `json:"minutes"`
}

// Result is the timetable of one station.
type Result struct {
	Station models.Station        `json:"station"`
	Line    models.Line           `json:"line"` // LineNone when no table lists the station
	Rows    []models.TimetableRow `json:"rows"`
	Wait    *Supplement           `json:"wait,omitempty"`
}

// Empty reports whether the lookup produced no rows.
func (r Result) Empty() bool {
	return len(r.Rows) == 0
}

// AirportResult is the outcome of the Airport lookup.
type AirportResult struct {
	From        models.Station  `json:"from"`
	Target      *models.Station `json:"target,omitempty"` // nil when there is no route
	Direct      bool            `json:"direct"`
	Instruction string          `json:"instruction"`
	Timetable   Result          `json:"timetable"`
}

// Lookup dispatches stations to their line tables.
type Lookup struct {
	registry  *stations.Registry
	parser    Parser
	estimator WaitEstimator
	now       func() time.Time
	workers   int
	log       zerolog.Logger
}

// Option configures a Lookup
type Option func(*Lookup)

// WithEstimator replaces DefaultEstimator.
func WithEstimator(e WaitEstimator) Option {
	return func(l *Lookup) {
		l.estimator = e
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Lookup) {
		l.now = now
	}
}

// WithWorkers bounds the estimator pool. Defaults to runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(l *Lookup) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Lookup) {
		l.log = log
	}
}

// NewLookup creates a Lookup over registry and parser.
func NewLookup(registry *stations.Registry, parser Parser, opts ...Option) *Lookup {
	l := &Lookup{
		registry:  registry,
		parser:    parser,
		estimator: DefaultEstimator{},
		now:       time.Now,
		workers:   runtime.NumCPU(),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// TablesFor returns the timetable of station from the first line table
// (Line 1, then 2, then 3) that lists it. Only that line is parsed.
// Line 3 results also carry a supplementary wait estimate.
func (l *Lookup) TablesFor(ctx context.Context, station models.Station) (Result, error) {
	for _, line := range models.Lines {
		if l.registry.Contains(line, station) {
			return l.lookupLine(ctx, line, station, "")
		}
	}
	l.log.Debug().Str("station", station.Name).Msg("Station not listed on any line")
	return Result{Station: station}, nil
}

// Airport resolves the timetable towards the Airport starting from from.
// Stations off Line 3 are redirected to the first Line 3 interchange in table
// order, preferring one served by from's line. This is a first match, not a
// distance search.
func (l *Lookup) Airport(ctx context.Context, from models.Station) (AirportResult, error) {
	res := AirportResult{From: from}

	airport, ok := l.registry.StationWithRole(models.RoleAirport)
	if !ok {
		res.Instruction = InstructionNoRoute
		return res, nil
	}

	target := from
	if from.OnLine(models.Line3) {
		res.Direct = true
		res.Instruction = InstructionDirect
	} else {
		interchange, ok := l.registry.FirstInterchange(models.Line3, from.PrimaryLine())
		if !ok {
			res.Instruction = InstructionNoRoute
			return res, nil
		}
		target = interchange
		res.Instruction = fmt.Sprintf(instructionInterchange, interchange.Name)
	}
	res.Target = &target

	tt, err := l.lookupLine(ctx, models.Line3, target, airport.Name)
	if err != nil {
		return res, err
	}
	res.Timetable = tt
	return res, nil
}

// lookupLine parses one line's rows for station, optionally keeping only
// rows heading to direction.
func (l *Lookup) lookupLine(ctx context.Context, line models.Line, station models.Station, direction string) (Result, error) {
	now := l.now()
	rows, err := l.parser.Parse(ctx, line, station, models.ServiceDayFor(now))
	if err != nil {
		return Result{}, fmt.Errorf("timetable for %s on %s: %w", station.Name, line, err)
	}

	if direction != "" {
		filtered := rows[:0:0]
		for _, r := range rows {
			if r.Direction == direction {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	res := Result{Station: station, Line: line, Rows: rows}
	if line == models.Line3 && len(rows) > 0 {
		wait, err := l.estimate(ctx, rows, now)
		if err != nil {
			return Result{}, err
		}
		res.Wait = wait
	}

	l.log.Debug().
		Str("station", station.Name).
		Str("line", line.Short()).
		Int("rows", len(rows)).
		Msg("Timetable resolved")
	return res, nil
}

type estimate struct {
	direction string
	wait      time.Duration
	ok        bool
}

// estimate runs the estimator for every row on a bounded pool and keeps the
// soonest departure. Returns nil when no row has a departure left.
func (l *Lookup) estimate(ctx context.Context, rows []models.TimetableRow, now time.Time) (*Supplement, error) {
	p := pool.NewWithResults[estimate]().
		WithMaxGoroutines(l.workers).
		WithContext(ctx)

	for _, row := range rows {
		p.Go(func(ctx context.Context) (estimate, error) {
			wait, ok := l.estimator.Estimate(ctx, row, now)
			return estimate{direction: row.Direction, wait: wait, ok: ok}, nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	var best *estimate
	for i := range results {
		e := &results[i]
		if !e.ok {
			continue
		}
		// Ties resolve by direction name since pool results are unordered
		if best == nil || e.wait < best.wait || (e.wait == best.wait && e.direction < best.direction) {
			best = e
		}
	}
	if best == nil {
		return nil, nil
	}
	return &Supplement{
		Direction: best.direction,
		Minutes:   int(math.Ceil(best.wait.Minutes())),
	}, nil
}
