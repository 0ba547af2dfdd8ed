package stations

import (
	"strings"
	"testing"

	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/models"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/testutil"
)

func mustDefault(t *testing.T) *Registry {
	t.Helper()
	reg, err := Default()
	testutil.AssertNil(t, err)
	return reg
}

func TestDefault_Tables(t *testing.T) {
	reg := mustDefault(t)

	testutil.AssertLen(t, reg.Table(models.Line1), 24)
	testutil.AssertLen(t, reg.Table(models.Line2), 20)
	testutil.AssertLen(t, reg.Table(models.Line3), 27)
	testutil.AssertLen(t, reg.Table(models.LineNone), 0)

	// Five stations are shared between lines
	testutil.AssertLen(t, reg.All(), 24+20+27-5)

	first, last := reg.Terminals(models.Line1)
	testutil.AssertEqual(t, first, "Kifisia")
	testutil.AssertEqual(t, last, "Piraeus")
	testutil.AssertEqual(t, reg.LineName(models.Line3), "Dimotiko Theatro - Airport")
	testutil.AssertEqual(t, reg.MinutesBetweenStations(models.Line2), 2)
}

func TestDefault_Returns_SameRegistry(t *testing.T) {
	a := mustDefault(t)
	b := mustDefault(t)
	testutil.AssertTrue(t, a == b)
}

func TestDefault_InterchangesAndRoles(t *testing.T) {
	reg := mustDefault(t)

	tests := []struct {
		name        string
		lines       []models.Line
		interchange bool
		role        models.StationRole
	}{
		{"Omonia", []models.Line{models.Line1, models.Line2}, true, models.RoleNone},
		{"Attiki", []models.Line{models.Line1, models.Line2}, true, models.RoleNone},
		{"Monastiraki", []models.Line{models.Line1, models.Line3}, true, models.RoleNone},
		{"Piraeus", []models.Line{models.Line1, models.Line3}, true, models.RoleHarbor},
		{"Syntagma", []models.Line{models.Line2, models.Line3}, true, models.RoleNone},
		{"Airport", []models.Line{models.Line3}, false, models.RoleAirport},
		{"Kifisia", []models.Line{models.Line1}, false, models.RoleNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := reg.Find(tt.name)
			testutil.AssertNil(t, err)
			testutil.AssertLen(t, s.Lines, len(tt.lines))
			for i, l := range tt.lines {
				testutil.AssertEqual(t, s.Lines[i], l)
			}
			testutil.AssertEqual(t, s.Interchange, tt.interchange)
			testutil.AssertEqual(t, s.Role, tt.role)
		})
	}
}

func TestRegistry_Contains(t *testing.T) {
	reg := mustDefault(t)
	syntagma, err := reg.Find("Syntagma")
	testutil.AssertNil(t, err)

	testutil.AssertFalse(t, reg.Contains(models.Line1, syntagma))
	testutil.AssertTrue(t, reg.Contains(models.Line2, syntagma))
	testutil.AssertTrue(t, reg.Contains(models.Line3, syntagma))
	testutil.AssertEqual(t, reg.Index(models.Line3, "Airport"), 26)
	testutil.AssertEqual(t, reg.Index(models.Line3, "Kifisia"), -1)
}

func TestRegistry_Find(t *testing.T) {
	reg := mustDefault(t)

	tests := []struct {
		query   string
		want    string
		wantErr error
	}{
		{"Piraeus", "Piraeus", nil},
		{"piraeus", "Piraeus", nil},
		{"Αεροδρόμιο", "Airport", nil},
		{"Kifis", "Kifisia", nil},
		{"Agios", "", ErrAmbiguousStation},
		{"Atlantis", "", ErrUnknownStation},
		{"  ", "", ErrUnknownStation},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := reg.Find(tt.query)
			if tt.wantErr != nil {
				testutil.AssertErrorIs(t, err, tt.wantErr)
				return
			}
			testutil.AssertNil(t, err)
			testutil.AssertEqual(t, got.Name, tt.want)
		})
	}
}

func TestRegistry_Search(t *testing.T) {
	reg := mustDefault(t)

	testutil.AssertLen(t, reg.Search(""), len(reg.All()))

	for _, s := range reg.Search("agi") {
		if !strings.HasPrefix(strings.ToLower(s.Name), "agi") {
			t.Errorf("unexpected match %s", s.Name)
		}
	}
	testutil.AssertLen(t, reg.Search("zzz"), 0)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "lines: [ {"},
		{"unknown line", "lines:\n  - line: 4\n    stations:\n      - name: A\n"},
		{"duplicate line", "lines:\n  - line: 1\n    stations:\n      - name: A\n  - line: 1\n    stations:\n      - name: B\n"},
		{"empty line", "lines:\n  - line: 1\n    stations: []\n"},
		{"unnamed station", "lines:\n  - line: 1\n    stations:\n      - name_el: Α\n"},
		{"unknown role", "lines:\n  - line: 1\n    stations:\n      - name: A\n        role: spaceport\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.yaml))
			testutil.AssertError(t, err)
		})
	}
}

func TestLoad_DerivesInterchange(t *testing.T) {
	src := `lines:
  - line: 1
    stations:
      - name: A
      - name: Hub
  - line: 2
    stations:
      - name: Hub
      - name: B
`
	reg, err := Load(strings.NewReader(src))
	testutil.AssertNil(t, err)

	hub, err := reg.Find("Hub")
	testutil.AssertNil(t, err)
	testutil.AssertTrue(t, hub.Interchange)
	testutil.AssertEqual(t, hub.PrimaryLine(), models.Line1)
}
