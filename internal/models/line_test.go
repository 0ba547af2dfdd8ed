package models

import (
	"encoding/json"
	"testing"

	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/testutil"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		input   string
		want    Line
		wantErr bool
	}{
		{"1", Line1, false},
		{"M2", Line2, false},
		{"m3", Line3, false},
		{"line1", Line1, false},
		{"Line 3", Line3, false},
		{" 2 ", Line2, false},
		{"4", LineNone, true},
		{"", LineNone, true},
		{"green", LineNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLine(tt.input)
			if tt.wantErr {
				testutil.AssertError(t, err)
				return
			}
			testutil.AssertNil(t, err)
			testutil.AssertEqual(t, got, tt.want)
		})
	}
}

func TestLine_Color(t *testing.T) {
	testutil.AssertEqual(t, Line1.Color(), ColorLine1)
	testutil.AssertEqual(t, Line2.Color(), ColorLine2)
	testutil.AssertEqual(t, Line3.Color(), ColorLine3)
	testutil.AssertEqual(t, LineNone.Color(), ColorNeutral)

	// Colors must be distinct per line
	seen := map[string]bool{}
	for _, l := range Lines {
		if seen[l.Color()] {
			t.Errorf("duplicate color %s for %s", l.Color(), l)
		}
		seen[l.Color()] = true
	}
}

func TestLine_String(t *testing.T) {
	testutil.AssertEqual(t, Line1.String(), "Line 1")
	testutil.AssertEqual(t, Line3.Short(), "M3")
	testutil.AssertEqual(t, LineNone.String(), "No line")
	testutil.AssertEqual(t, Line(9).Number(), 0)
}

func TestLine_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		L Line `json:"l"`
	}{Line2})
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, string(data), `{"l":"2"}`)

	var out struct {
		L Line `json:"l"`
	}
	testutil.AssertNil(t, json.Unmarshal([]byte(`{"l":"M3"}`), &out))
	testutil.AssertEqual(t, out.L, Line3)
}

func TestStation_Lines(t *testing.T) {
	syntagma := Station{Name: "Syntagma", Lines: []Line{Line2, Line3}, Interchange: true}
	omonia := Station{Name: "Omonia", Lines: []Line{Line1, Line2}, Interchange: true}
	kifisia := Station{Name: "Kifisia", Lines: []Line{Line1}}

	testutil.AssertEqual(t, syntagma.PrimaryLine(), Line2)
	testutil.AssertTrue(t, syntagma.OnLine(Line3))
	testutil.AssertFalse(t, syntagma.OnLine(Line1))
	testutil.AssertTrue(t, syntagma.SharesLine(omonia))
	testutil.AssertFalse(t, syntagma.SharesLine(kifisia))
	testutil.AssertEqual(t, Station{}.PrimaryLine(), LineNone)
}

func TestStation_Matches(t *testing.T) {
	s := Station{Name: "Monastiraki", NameGreek: "Μοναστηράκι"}
	testutil.AssertTrue(t, s.Matches("monastiraki"))
	testutil.AssertTrue(t, s.Matches(" Μοναστηράκι "))
	testutil.AssertFalse(t, s.Matches("Monastir"))
}
