// Package selection tracks the start/destination pair chosen by the user and
// derives what the selection indicator shows for it.
package selection

import "github.com/Tsopelas/ATHENSPLUS-sub001/internal/models"

// State is the selected station pair. End is only meaningful once Start is
// set; Select enforces that, SetEnd does not.
type State struct {
	Start *models.Station `json:"start,omitempty"`
	End   *models.Station `json:"end,omitempty"`
}

// Select fills the start slot first, then the destination. With both set a
// new selection replaces the destination. Picking the start station again
// as destination is ignored. Reports whether the state changed.
func (s *State) Select(st models.Station) bool {
	switch {
	case s.Start == nil:
		s.Start = &st
	case st.Same(*s.Start):
		return false
	case s.End != nil && st.Same(*s.End):
		return false
	default:
		s.End = &st
	}
	return true
}

// SetStart replaces the start station.
func (s *State) SetStart(st models.Station) {
	s.Start = &st
}

// SetEnd replaces the destination.
func (s *State) SetEnd(st models.Station) {
	s.End = &st
}

// Swap exchanges start and destination. It needs both to be set.
func (s *State) Swap() bool {
	if !s.Complete() {
		return false
	}
	s.Start, s.End = s.End, s.Start
	return true
}

// Reset clears both slots.
func (s *State) Reset() {
	s.Start = nil
	s.End = nil
}

// Complete reports whether both stations are selected.
func (s State) Complete() bool {
	return s.Start != nil && s.End != nil
}

// Empty reports whether nothing is selected.
func (s State) Empty() bool {
	return s.Start == nil && s.End == nil
}

// Render derives the indicator directives of the current pair.
func (s State) Render(ix Interchanger) Directives {
	return Render(s.Start, s.End, ix)
}
