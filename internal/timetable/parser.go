package timetable

import (
	"context"
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/models"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/stations"
	"github.com/gocarina/gocsv"
)

//go:embed data/*.csv
var embedded embed.FS

// Parser produces the timetable rows of one station on one line.
type Parser interface {
	Parse(ctx context.Context, line models.Line, station models.Station, day models.ServiceDay) ([]models.TimetableRow, error)
}

// patternRecord is one row of a line's service pattern file
type patternRecord struct {
	Line           int    `csv:"line"`
	Direction      string `csv:"direction"`
	ServiceDay     string `csv:"service_day"`
	FirstTrain     string `csv:"first_train"`
	LastTrain      string `csv:"last_train"`
	HeadwayMinutes int    `csv:"headway_minutes"`
}

// CSVParser reads per-line service patterns (line1.csv, line2.csv, line3.csv)
// and derives station rows by offsetting terminal times by running time.
type CSVParser struct {
	files    fs.FS
	registry *stations.Registry
}

// NewCSVParser reads pattern files from files.
func NewCSVParser(files fs.FS, registry *stations.Registry) *CSVParser {
	return &CSVParser{files: files, registry: registry}
}

// NewEmbeddedParser reads the pattern files compiled into the binary.
func NewEmbeddedParser(registry *stations.Registry) *CSVParser {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		// embed paths are fixed at compile time
		panic(err)
	}
	return NewCSVParser(sub, registry)
}

// NewDirParser reads pattern files from dir, e.g. ATHENSPLUS_TIMETABLE_DIR.
func NewDirParser(dir string, registry *stations.Registry) *CSVParser {
	return NewCSVParser(os.DirFS(dir), registry)
}

// Parse implements Parser.
func (p *CSVParser) Parse(ctx context.Context, line models.Line, station models.Station, day models.ServiceDay) ([]models.TimetableRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx := p.registry.Index(line, station.Name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s is not on %s", stations.ErrUnknownStation, station.Name, line)
	}

	patterns, err := p.readPatterns(line)
	if err != nil {
		return nil, err
	}

	table := p.registry.Table(line)
	firstTerminal, lastTerminal := p.registry.Terminals(line)
	step := time.Duration(p.registry.MinutesBetweenStations(line)) * time.Minute

	var rows []models.TimetableRow
	for _, rec := range patterns {
		if models.ServiceDay(rec.ServiceDay) != day {
			continue
		}

		// Stops between the direction's origin terminal and this station
		var stops int
		switch rec.Direction {
		case lastTerminal:
			stops = idx
		case firstTerminal:
			stops = len(table) - 1 - idx
		default:
			return nil, fmt.Errorf("line%d.csv: direction %q is not a terminal of %s", line.Number(), rec.Direction, line)
		}
		if rec.Direction == station.Name {
			continue
		}

		first, err := models.ParseClock(rec.FirstTrain)
		if err != nil {
			return nil, fmt.Errorf("line%d.csv: %w", line.Number(), err)
		}
		last, err := models.ParseClock(rec.LastTrain)
		if err != nil {
			return nil, fmt.Errorf("line%d.csv: %w", line.Number(), err)
		}
		offset := time.Duration(stops) * step

		rows = append(rows, models.TimetableRow{
			Line:           line,
			Station:        station.Name,
			Direction:      rec.Direction,
			ServiceDay:     day,
			FirstTrain:     models.FormatClock(first + offset),
			LastTrain:      models.FormatClock(last + offset),
			HeadwayMinutes: rec.HeadwayMinutes,
		})
	}

	return rows, nil
}

func (p *CSVParser) readPatterns(line models.Line) ([]patternRecord, error) {
	name := fmt.Sprintf("line%d.csv", line.Number())
	f, err := p.files.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	var records []patternRecord
	if err := gocsv.UnmarshalCSV(newCSVReader(f), &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	for i := range records {
		records[i].Direction = strings.TrimSpace(records[i].Direction)
		records[i].ServiceDay = strings.ToLower(strings.TrimSpace(records[i].ServiceDay))
	}
	return records, nil
}

// newCSVReader tolerates rows with missing trailing columns.
func newCSVReader(in io.Reader) gocsv.CSVReader {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return r
}
