package stations

import (
	"testing"

	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/models"
	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/testutil"
)

func find(t *testing.T, reg *Registry, name string) models.Station {
	t.Helper()
	s, err := reg.Find(name)
	testutil.AssertNil(t, err)
	return s
}

func TestRegistry_Interchange(t *testing.T) {
	reg := mustDefault(t)

	tests := []struct {
		start, end string
		want       string
		wantTo     models.Line
		wantOK     bool
	}{
		{"Kifisia", "Airport", "Monastiraki", models.Line3, true},
		{"Anthoupoli", "Airport", "Syntagma", models.Line3, true},
		{"Elliniko", "Kifisia", "Omonia", models.Line1, true},
		// Equal hop counts via Omonia (M2) and Monastiraki (M3): first found wins
		{"Kifisia", "Syntagma", "Omonia", models.Line2, true},
		{"Kifisia", "Piraeus", "", models.LineNone, false},
		{"Syntagma", "Airport", "", models.LineNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.start+"->"+tt.end, func(t *testing.T) {
			got, ok := reg.Interchange(find(t, reg, tt.start), find(t, reg, tt.end))
			testutil.AssertEqual(t, ok, tt.wantOK)
			if !tt.wantOK {
				return
			}
			testutil.AssertEqual(t, got.Station.Name, tt.want)
			testutil.AssertEqual(t, got.To, tt.wantTo)
		})
	}
}

func TestRegistry_Interchange_Deterministic(t *testing.T) {
	reg := mustDefault(t)
	a := find(t, reg, "Perissos")
	b := find(t, reg, "Halandri")

	first, ok := reg.Interchange(a, b)
	testutil.AssertTrue(t, ok)
	for i := 0; i < 5; i++ {
		again, _ := reg.Interchange(a, b)
		testutil.AssertEqual(t, again.Station.Name, first.Station.Name)
		testutil.AssertEqual(t, again.Hops, first.Hops)
	}
}

func TestRegistry_FirstInterchange(t *testing.T) {
	reg := mustDefault(t)

	tests := []struct {
		name   string
		prefer models.Line
		want   string
	}{
		{"any", models.LineNone, "Piraeus"},
		{"from line 1", models.Line1, "Piraeus"},
		{"from line 2", models.Line2, "Syntagma"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := reg.FirstInterchange(models.Line3, tt.prefer)
			testutil.AssertTrue(t, ok)
			testutil.AssertEqual(t, got.Name, tt.want)
		})
	}

	_, ok := reg.FirstInterchange(models.LineNone, models.LineNone)
	testutil.AssertFalse(t, ok)
}

func TestRegistry_StationWithRole(t *testing.T) {
	reg := mustDefault(t)

	airport, ok := reg.StationWithRole(models.RoleAirport)
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, airport.Name, "Airport")

	harbor, ok := reg.StationWithRole(models.RoleHarbor)
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, harbor.Name, "Piraeus")
}
