package models

import (
	"strings"
)

// Reliability is the confidence tier attached to a predicted departure
type Reliability int

const (
	ReliabilityUnknown Reliability = iota
	ReliabilityHigh
	ReliabilityMedium
	ReliabilityLow
)

func (r Reliability) String() string {
	switch r {
	case ReliabilityHigh:
		return "High"
	case ReliabilityMedium:
		return "Medium"
	case ReliabilityLow:
		return "Low"
	}
	return ""
}

// MarshalText encodes the tier by name; unknown encodes as empty.
func (r Reliability) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes HIGH/High/high etc. Unrecognized values become Unknown.
func (r *Reliability) UnmarshalText(b []byte) error {
	*r = ParseReliability(string(b))
	return nil
}

// ParseReliability parses a reliability tier name.
func ParseReliability(s string) Reliability {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return ReliabilityHigh
	case "medium":
		return ReliabilityMedium
	case "low":
		return ReliabilityLow
	}
	return ReliabilityUnknown
}

// TransitStep is one leg of a directions result
type TransitStep struct {
	Mode     string `json:"mode"`
	Line     string `json:"line,omitempty"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	Headsign string `json:"headsign,omitempty"`
	Stops    int    `json:"stops,omitempty"`

	WaitTime           *string     `json:"waitTime,omitempty"`
	WaitTimeMinutes    int         `json:"waitTimeMinutes,omitempty"`
	DepartureTime      string      `json:"departureTime,omitempty"`
	DepartureTimeValue int64       `json:"departureTimeValue,omitempty"`
	Reliability        Reliability `json:"reliability,omitempty"`
	Frequency          string      `json:"frequency,omitempty"`
}

// IsTransit reports whether the step rides a vehicle (as opposed to walking).
func (s *TransitStep) IsTransit() bool {
	return !strings.EqualFold(s.Mode, "walking")
}

// DirectionsResponse represents the raw JSON returned by the directions provider
type DirectionsResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"errorMessage,omitempty"`
	Steps        []TransitStep `json:"steps"`
}
