package models

import "strings"

// StationRole marks stations that unlock extra controls in the UI.
type StationRole int

const (
	RoleNone StationRole = iota
	RoleAirport
	RoleHarbor
)

func (r StationRole) String() string {
	switch r {
	case RoleAirport:
		return "airport"
	case RoleHarbor:
		return "harbor"
	}
	return ""
}

// MarshalText encodes the role by name.
func (r StationRole) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Station represents a metro station from the static reference tables
type Station struct {
	Name        string      `json:"name"`
	NameGreek   string      `json:"nameGreek"`
	Lines       []Line      `json:"lines"`
	Interchange bool        `json:"interchange"`
	Role        StationRole `json:"role,omitempty"`
}

// PrimaryLine returns the first line the station is listed on.
func (s Station) PrimaryLine() Line {
	if len(s.Lines) == 0 {
		return LineNone
	}
	return s.Lines[0]
}

// OnLine reports whether the station is served by line.
func (s Station) OnLine(line Line) bool {
	for _, l := range s.Lines {
		if l == line {
			return true
		}
	}
	return false
}

// SharesLine reports whether both stations are served by a common line.
func (s Station) SharesLine(other Station) bool {
	for _, l := range s.Lines {
		if other.OnLine(l) {
			return true
		}
	}
	return false
}

// Matches reports whether query names this station in either language.
func (s Station) Matches(query string) bool {
	q := strings.TrimSpace(query)
	return strings.EqualFold(s.Name, q) || strings.EqualFold(s.NameGreek, q)
}

// Same compares stations by identity (English name).
func (s Station) Same(other Station) bool {
	return s.Name == other.Name
}
