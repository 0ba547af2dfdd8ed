package api

import "github.com/Tsopelas/ATHENSPLUS-sub001/internal/models"

const (
	// BaseURL is the default directions provider
	BaseURL = "https://maps.googleapis.com/maps/api"

	// EndpointDirections returns transit directions between two places
	// Required params: origin, destination, mode, key
	EndpointDirections = "/directions"

	// ModeTransit asks for public transport directions
	ModeTransit = "transit"

	// TransitModeSubway restricts transit directions to the metro
	TransitModeSubway = "subway"
)

// Response statuses of the directions provider
const (
	StatusOK             = "OK"
	StatusZeroResults    = "ZERO_RESULTS"
	StatusNotFound       = "NOT_FOUND"
	StatusInvalidRequest = "INVALID_REQUEST"
	StatusRequestDenied  = "REQUEST_DENIED"
	StatusOverQueryLimit = "OVER_QUERY_LIMIT"
	StatusUnknownError   = "UNKNOWN_ERROR"
)

// PlaceQuery turns a station into a geocodable origin/destination string.
func PlaceQuery(st models.Station) string {
	return st.Name + " metro station, Athens, Greece"
}
