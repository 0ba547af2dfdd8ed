package tui

import (
	"time"

	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/models"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/timetable"
)

// timetableResultMsg carries a station timetable back to the model.
// seq is used for stale-result detection.
type timetableResultMsg struct {
	seq    int
	result timetable.Result
	err    error
}

// airportResultMsg carries the Airport lookup.
type airportResultMsg struct {
	seq    int
	result timetable.AirportResult
	err    error
}

// directionsResultMsg carries provider steps between the selected stations.
type directionsResultMsg struct {
	seq   int
	steps []models.TransitStep
	err   error
}

// routeSavedMsg reports the outcome of saving the selected pair.
type routeSavedMsg struct {
	route string
	added bool
	err   error
}

// noticeExpiredMsg clears the notice it was scheduled for.
type noticeExpiredMsg struct {
	seq int
}

// waitTickMsg is sent every second while directions are shown to refresh
// computed wait times.
type waitTickMsg time.Time
