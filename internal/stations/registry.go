package stations

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed data/metro.yaml
var metroYAML []byte

var (
	// ErrUnknownStation indicates no station matches the query
	ErrUnknownStation = errors.New("unknown station")

	// ErrAmbiguousStation indicates the query matches more than one station
	ErrAmbiguousStation = errors.New("ambiguous station")
)

type stationRecord struct {
	Name        string `yaml:"name"`
	NameGreek   string `yaml:"name_el"`
	Interchange bool   `yaml:"interchange"`
	Role        string `yaml:"role"`
}

type lineRecord struct {
	Line                   int             `yaml:"line"`
	Name                   string          `yaml:"name"`
	MinutesBetweenStations int             `yaml:"minutes_between_stations"`
	Stations               []stationRecord `yaml:"stations"`
}

type fileRecord struct {
	Lines []lineRecord `yaml:"lines"`
}

// Registry holds the immutable station/line reference tables.
// It is safe for concurrent use since nothing mutates it after Load.
type Registry struct {
	tables  map[models.Line][]models.Station
	names   map[models.Line]string
	minutes map[models.Line]int
	all     []models.Station
	byName  map[string]models.Station
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Default returns the registry built from the embedded tables.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = Load(bytes.NewReader(metroYAML))
	})
	return defaultRegistry, defaultErr
}

// Load parses reference tables from YAML.
func Load(r io.Reader) (*Registry, error) {
	var file fileRecord
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse station tables: %w", err)
	}

	// First pass: collect line membership per station in file order
	type merged struct {
		rec   stationRecord
		lines []models.Line
	}
	order := []string{}
	seen := map[string]*merged{}
	reg := &Registry{
		tables:  make(map[models.Line][]models.Station),
		names:   make(map[models.Line]string),
		minutes: make(map[models.Line]int),
		byName:  make(map[string]models.Station),
	}

	for _, lr := range file.Lines {
		line, err := models.ParseLine(fmt.Sprintf("%d", lr.Line))
		if err != nil {
			return nil, err
		}
		if _, dup := reg.names[line]; dup {
			return nil, fmt.Errorf("line %d listed twice", lr.Line)
		}
		if len(lr.Stations) == 0 {
			return nil, fmt.Errorf("line %d has no stations", lr.Line)
		}
		reg.names[line] = lr.Name
		reg.minutes[line] = lr.MinutesBetweenStations

		for _, sr := range lr.Stations {
			if strings.TrimSpace(sr.Name) == "" {
				return nil, fmt.Errorf("line %d: station without a name", lr.Line)
			}
			m, ok := seen[sr.Name]
			if !ok {
				m = &merged{rec: sr}
				seen[sr.Name] = m
				order = append(order, sr.Name)
			}
			m.rec.Interchange = m.rec.Interchange || sr.Interchange
			if m.rec.Role == "" {
				m.rec.Role = sr.Role
			}
			m.lines = append(m.lines, line)
		}
	}

	for _, name := range order {
		m := seen[name]
		role, err := parseRole(m.rec.Role)
		if err != nil {
			return nil, fmt.Errorf("station %s: %w", name, err)
		}
		st := models.Station{
			Name:        m.rec.Name,
			NameGreek:   m.rec.NameGreek,
			Lines:       m.lines,
			Interchange: m.rec.Interchange || len(m.lines) > 1,
			Role:        role,
		}
		reg.byName[name] = st
		reg.all = append(reg.all, st)
	}

	// Second pass: ordered per-line tables sharing the merged stations
	for _, lr := range file.Lines {
		line, _ := models.ParseLine(fmt.Sprintf("%d", lr.Line))
		for _, sr := range lr.Stations {
			reg.tables[line] = append(reg.tables[line], reg.byName[sr.Name])
		}
	}

	return reg, nil
}

func parseRole(s string) (models.StationRole, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return models.RoleNone, nil
	case "airport":
		return models.RoleAirport, nil
	case "harbor", "harbour":
		return models.RoleHarbor, nil
	}
	return models.RoleNone, fmt.Errorf("unknown role %q", s)
}

// Table returns the ordered stations of a line.
func (r *Registry) Table(line models.Line) []models.Station {
	return r.tables[line]
}

// LineName returns the descriptive name of a line, e.g. "Kifisia - Piraeus".
func (r *Registry) LineName(line models.Line) string {
	return r.names[line]
}

// MinutesBetweenStations returns the average running time between adjacent stations.
func (r *Registry) MinutesBetweenStations(line models.Line) int {
	return r.minutes[line]
}

// Terminals returns the first and last station names of a line.
func (r *Registry) Terminals(line models.Line) (string, string) {
	t := r.tables[line]
	if len(t) == 0 {
		return "", ""
	}
	return t[0].Name, t[len(t)-1].Name
}

// Contains is the membership test of a line table.
func (r *Registry) Contains(line models.Line, station models.Station) bool {
	return r.Index(line, station.Name) >= 0
}

// Index returns the position of a station on a line, or -1.
func (r *Registry) Index(line models.Line, name string) int {
	for i, s := range r.tables[line] {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// All returns every station once, in table order.
func (r *Registry) All() []models.Station {
	return r.all
}

// Find resolves a station by exact English or Greek name, falling back
// to a unique case-insensitive prefix match.
func (r *Registry) Find(query string) (models.Station, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return models.Station{}, fmt.Errorf("%w: empty name", ErrUnknownStation)
	}
	for _, s := range r.all {
		if s.Matches(q) {
			return s, nil
		}
	}

	matches := r.Search(q)
	switch len(matches) {
	case 0:
		return models.Station{}, fmt.Errorf("%w: %q", ErrUnknownStation, query)
	case 1:
		return matches[0], nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.Name)
	}
	return models.Station{}, fmt.Errorf("%w: %q matches %s", ErrAmbiguousStation, query, strings.Join(names, ", "))
}

// Search returns stations whose English or Greek name starts with query
// (case-insensitive). An empty query returns every station.
func (r *Registry) Search(query string) []models.Station {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return r.all
	}
	var out []models.Station
	for _, s := range r.all {
		if strings.HasPrefix(strings.ToLower(s.Name), q) || strings.HasPrefix(strings.ToLower(s.NameGreek), q) {
			out = append(out, s)
		}
	}
	return out
}
