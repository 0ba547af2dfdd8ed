package stations

import "github.com/Tsopelas/ATHENSPLUS-sub001/internal/models"

// Transfer describes where to change lines between two stations.
type Transfer struct {
	Station models.Station
	From    models.Line
	To      models.Line
	Hops    int // stations travelled on both legs together
}

// Interchange finds the common station with the fewest hops start -> X -> end.
// Stations that share a line need no transfer. Ties resolve to the station
// that comes first in the start line's table.
func (r *Registry) Interchange(start, end models.Station) (Transfer, bool) {
	if start.SharesLine(end) {
		return Transfer{}, false
	}

	best := Transfer{Hops: -1}
	for _, from := range start.Lines {
		startIdx := r.Index(from, start.Name)
		if startIdx < 0 {
			continue
		}
		for _, to := range end.Lines {
			endIdx := r.Index(to, end.Name)
			if endIdx < 0 {
				continue
			}
			for i, cand := range r.tables[from] {
				if !cand.OnLine(to) {
					continue
				}
				hops := abs(startIdx-i) + abs(r.Index(to, cand.Name)-endIdx)
				if best.Hops < 0 || hops < best.Hops {
					best = Transfer{Station: cand, From: from, To: to, Hops: hops}
				}
			}
		}
	}
	if best.Hops < 0 {
		return Transfer{}, false
	}
	return best, true
}

// FirstInterchange returns the first interchange-flagged station of line in
// table order. Stations that are also on prefer win over the rest; pass
// models.LineNone to take the plain first match.
func (r *Registry) FirstInterchange(line, prefer models.Line) (models.Station, bool) {
	var fallback *models.Station
	for i, s := range r.tables[line] {
		if !s.Interchange {
			continue
		}
		if prefer == models.LineNone || s.OnLine(prefer) {
			return s, true
		}
		if fallback == nil {
			fallback = &r.tables[line][i]
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return models.Station{}, false
}

// StationWithRole returns the first station carrying role.
func (r *Registry) StationWithRole(role models.StationRole) (models.Station, bool) {
	for _, s := range r.all {
		if s.Role == role {
			return s, true
		}
	}
	return models.Station{}, false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
