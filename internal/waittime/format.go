// Package waittime turns the timing fields of a directions step into the
// wait-time text shown next to each ride.
package waittime

import (
	"errors"
	"fmt"
	"time"

	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/models"
	"github.com/rs/zerolog"
)

// ErrInvalidStep indicates timing fields that cannot be formatted
var ErrInvalidStep = errors.New("invalid transit step")

// Kind tells which policy produced a Display
type Kind int

const (
	KindNoData   Kind = iota // nothing known about the departure
	KindExplicit             // provider supplied a wait time in minutes
	KindComputed             // derived from the departure timestamp
	KindStale                // departure timestamp is in the past
	KindSchedule             // only a scheduled departure string is known
	KindError                // step failed validation
)

// Fixed user-facing texts
const (
	TextDeparted      = "Departed"
	TextCheckSchedule = "Check schedule"
	TextNotAvailable  = "Not available"
	TextError         = "Error loading wait time"
)

// Display is the formatted wait time of one step.
type Display struct {
	Kind        Kind
	Wait        string // primary text, e.g. "2m 5s"
	NextDep     string // secondary text, e.g. "Next departure: 14:32 · every 6 min"
	Reliability models.Reliability
}

// Text returns the primary text with the reliability glyph prefixed.
func (d Display) Text() string {
	if g := Glyph(d.Reliability); g != "" && d.Kind == KindExplicit {
		return g + " " + d.Wait
	}
	return d.Wait
}

// Glyph returns the colored marker for a reliability tier.
func Glyph(r models.Reliability) string {
	switch r {
	case models.ReliabilityHigh:
		return "🟢"
	case models.ReliabilityMedium:
		return "🟡"
	case models.ReliabilityLow:
		return "🔴"
	}
	return ""
}

// Format applies the wait-time policies to step at nowSeconds (Unix seconds).
// It has no failure path other than input validation.
func Format(step *models.TransitStep, nowSeconds int64) (Display, error) {
	if err := validate(step); err != nil {
		return Display{Kind: KindError, Wait: TextError}, err
	}

	d := Display{Kind: KindNoData, Wait: TextNotAvailable}
	if step.DepartureTime != "" {
		d.NextDep = "Next departure: " + step.DepartureTime
	}

	switch {
	case step.WaitTime != nil && step.WaitTimeMinutes > 0:
		d.Kind = KindExplicit
		d.Wait = fmt.Sprintf("%dm", step.WaitTimeMinutes)
		d.Reliability = step.Reliability

	case step.DepartureTimeValue > 0 && step.DepartureTime != "":
		delta := step.DepartureTimeValue - nowSeconds
		if delta > 0 {
			d.Kind = KindComputed
			d.Wait = FormatDelta(delta)
		} else {
			d.Kind = KindStale
			d.Wait = TextDeparted
		}

	case step.DepartureTime != "":
		d.Kind = KindSchedule
		d.Wait = TextCheckSchedule
		d.NextDep = step.DepartureTime
	}

	if step.Frequency != "" {
		if d.NextDep == "" {
			d.NextDep = step.Frequency
		} else {
			d.NextDep += " · " + step.Frequency
		}
	}

	return d, nil
}

// FormatDelta renders a positive number of seconds as "2m 5s", or "45s"
// when there are no whole minutes.
func FormatDelta(seconds int64) string {
	m, s := seconds/60, seconds%60
	if m == 0 {
		return fmt.Sprintf("%ds", s)
	}
	return fmt.Sprintf("%dm %ds", m, s)
}

func validate(step *models.TransitStep) error {
	if step == nil {
		return fmt.Errorf("%w: nil step", ErrInvalidStep)
	}
	if step.WaitTimeMinutes < 0 {
		return fmt.Errorf("%w: negative wait minutes %d", ErrInvalidStep, step.WaitTimeMinutes)
	}
	if step.DepartureTimeValue < 0 {
		return fmt.Errorf("%w: negative departure timestamp %d", ErrInvalidStep, step.DepartureTimeValue)
	}
	return nil
}

// Formatter formats steps against a clock and logs failures instead of
// returning them.
type Formatter struct {
	now func() time.Time
	log zerolog.Logger
}

// Option configures a Formatter
type Option func(*Formatter)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(f *Formatter) {
		f.now = now
	}
}

// WithLogger sets the logger used for formatting failures.
func WithLogger(l zerolog.Logger) Option {
	return func(f *Formatter) {
		f.log = l
	}
}

// NewFormatter creates a Formatter using time.Now and a disabled logger.
func NewFormatter(opts ...Option) *Formatter {
	f := &Formatter{
		now: time.Now,
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format never fails: invalid input or a panic while formatting yields the
// fixed error text.
func (f *Formatter) Format(step *models.TransitStep) (d Display) {
	defer func() {
		if r := recover(); r != nil {
			f.log.Error().Interface("panic", r).Msg("Wait time formatting panicked")
			d = Display{Kind: KindError, Wait: TextError}
		}
	}()

	d, err := Format(step, f.now().Unix())
	if err != nil {
		f.log.Error().Err(err).Msg("Failed to format wait time")
	}
	return d
}

// FormatAll formats every transit step, skipping walking legs.
func (f *Formatter) FormatAll(steps []models.TransitStep) []Display {
	out := make([]Display, 0, len(steps))
	for i := range steps {
		if !steps[i].IsTransit() {
			continue
		}
		out = append(out, f.Format(&steps[i]))
	}
	return out
}
