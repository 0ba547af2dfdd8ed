package models

import (
	"encoding/json"
	"testing"

	"github.com/Tsopelas/ATHENSPLUS-sub001/internal/testutil"
)

func TestParseReliability(t *testing.T) {
	tests := []struct {
		input string
		want  Reliability
	}{
		{"High", ReliabilityHigh},
		{"HIGH", ReliabilityHigh},
		{"medium", ReliabilityMedium},
		{" Low ", ReliabilityLow},
		{"", ReliabilityUnknown},
		{"certain", ReliabilityUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			testutil.AssertEqual(t, ParseReliability(tt.input), tt.want)
		})
	}
}

func TestDirectionsResponse_Unmarshal(t *testing.T) {
	raw := `{
		"status": "OK",
		"steps": [
			{"mode": "walking", "from": "Home", "to": "Syntagma"},
			{
				"mode": "subway",
				"line": "3",
				"from": "Syntagma",
				"to": "Airport",
				"waitTime": "4 min",
				"waitTimeMinutes": 4,
				"departureTime": "14:32",
				"departureTimeValue": 1760000000,
				"reliability": "MEDIUM",
				"frequency": "every 36 min"
			}
		]
	}`

	var resp DirectionsResponse
	testutil.AssertNil(t, json.Unmarshal([]byte(raw), &resp))
	testutil.AssertEqual(t, resp.Status, "OK")
	testutil.AssertLen(t, resp.Steps, 2)

	walk := resp.Steps[0]
	testutil.AssertFalse(t, walk.IsTransit())
	testutil.AssertTrue(t, walk.WaitTime == nil)

	ride := resp.Steps[1]
	testutil.AssertTrue(t, ride.IsTransit())
	testutil.AssertTrue(t, ride.WaitTime != nil)
	testutil.AssertEqual(t, *ride.WaitTime, "4 min")
	testutil.AssertEqual(t, ride.WaitTimeMinutes, 4)
	testutil.AssertEqual(t, ride.DepartureTimeValue, int64(1760000000))
	testutil.AssertEqual(t, ride.Reliability, ReliabilityMedium)
	testutil.AssertEqual(t, ride.Frequency, "every 36 min")
}
