package settings

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Theme values, matching the --color flag
const (
	ThemeAuto   = "auto"
	ThemeAlways = "always"
	ThemeNever  = "never"
)

// ErrInvalidTheme indicates a theme outside auto/always/never
var ErrInvalidTheme = errors.New("invalid theme")

// Theme returns the stored color theme, ThemeAuto when unset or unreadable.
func (s *Store) Theme() string {
	var theme string
	if ok, err := s.Get(KeyTheme, &theme); !ok || err != nil {
		return ThemeAuto
	}
	return theme
}

// SetTheme stores the color theme.
func (s *Store) SetTheme(theme string) error {
	theme = strings.ToLower(strings.TrimSpace(theme))
	switch theme {
	case ThemeAuto, ThemeAlways, ThemeNever:
	default:
		return fmt.Errorf("%w: %q (want auto, always or never)", ErrInvalidTheme, theme)
	}
	return s.Set(KeyTheme, theme)
}

// Route is a saved station pair.
type Route struct {
	Start   string    `json:"start"`
	End     string    `json:"end"`
	SavedAt time.Time `json:"savedAt"`
}

// Same compares routes by their stations.
func (r Route) Same(start, end string) bool {
	return r.Start == start && r.End == end
}

func (r Route) String() string {
	return r.Start + " → " + r.End
}

// SavedRoutes returns the saved routes, oldest first.
func (s *Store) SavedRoutes() ([]Route, error) {
	var routes []Route
	if _, err := s.Get(KeySavedRoutes, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

// SaveRoute appends start → end unless it is already saved. It reports
// whether the route was added.
func (s *Store) SaveRoute(start, end string) (bool, error) {
	if start == "" || end == "" {
		return false, errors.New("route needs a start and an end station")
	}
	routes, err := s.SavedRoutes()
	if err != nil {
		return false, err
	}
	for _, r := range routes {
		if r.Same(start, end) {
			return false, nil
		}
	}
	routes = append(routes, Route{Start: start, End: end, SavedAt: s.now().UTC()})
	return true, s.Set(KeySavedRoutes, routes)
}

// RemoveRoute deletes start → end and reports whether it was saved.
func (s *Store) RemoveRoute(start, end string) (bool, error) {
	routes, err := s.SavedRoutes()
	if err != nil {
		return false, err
	}
	kept := routes[:0]
	removed := false
	for _, r := range routes {
		if r.Same(start, end) {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	if !removed {
		return false, nil
	}
	if len(kept) == 0 {
		return true, s.Delete(KeySavedRoutes)
	}
	return true, s.Set(KeySavedRoutes, kept)
}
