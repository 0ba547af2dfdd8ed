package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ServiceDay selects which service pattern applies
type ServiceDay string

const (
	ServiceWeekday  ServiceDay = "weekday"
	ServiceSaturday ServiceDay = "saturday"
	ServiceSunday   ServiceDay = "sunday"
)

// ServiceDayFor returns the service pattern that runs on t's weekday.
func ServiceDayFor(t time.Time) ServiceDay {
	switch t.Weekday() {
	case time.Saturday:
		return ServiceSaturday
	case time.Sunday:
		return ServiceSunday
	}
	return ServiceWeekday
}

// TimetableRow is one direction of service at one station for one service day
type TimetableRow struct {
	Line           Line       `json:"line"`
	Station        string     `json:"station"`
	Direction      string     `json:"direction"`
	ServiceDay     ServiceDay `json:"serviceDay"`
	FirstTrain     string     `json:"firstTrain"`
	LastTrain      string     `json:"lastTrain"`
	HeadwayMinutes int        `json:"headwayMinutes"`
}

// String renders the row for display, e.g. "to Piraeus  05:34-00:19  every 6 min".
func (r TimetableRow) String() string {
	s := fmt.Sprintf("to %s  %s-%s", r.Direction, r.FirstTrain, r.LastTrain)
	if r.HeadwayMinutes > 0 {
		s += fmt.Sprintf("  every %d min", r.HeadwayMinutes)
	}
	return s
}

// NextDeparture returns the first departure at or after now within the service window.
// A window whose last train is earlier than its first runs past midnight.
func (r TimetableRow) NextDeparture(now time.Time) (time.Time, bool) {
	first, err := ParseClock(r.FirstTrain)
	if err != nil {
		return time.Time{}, false
	}
	last, err := ParseClock(r.LastTrain)
	if err != nil {
		return time.Time{}, false
	}
	if last < first {
		last += 24 * time.Hour
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// Yesterday's window may still be running after midnight
	for _, base := range []time.Time{midnight.AddDate(0, 0, -1), midnight, midnight.AddDate(0, 0, 1)} {
		start := base.Add(first)
		end := base.Add(last)
		if now.After(end) {
			continue
		}
		if !now.After(start) {
			return start, true
		}
		if r.HeadwayMinutes <= 0 {
			continue
		}
		headway := time.Duration(r.HeadwayMinutes) * time.Minute
		elapsed := now.Sub(start)
		n := (elapsed + headway - 1) / headway
		next := start.Add(n * headway)
		if !next.After(end) {
			return next, true
		}
	}
	return time.Time{}, false
}

// ParseClock parses "HH:MM" into an offset from midnight.
// Hours up to 47 are accepted for services listed past midnight.
func ParseClock(s string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 47 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute, nil
}

// FormatClock formats an offset from midnight as "HH:MM", wrapping past 24h.
func FormatClock(d time.Duration) string {
	total := int(d.Minutes()) % (24 * 60)
	if total < 0 {
		total += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
