package testutil

// Sample JSON responses for directions provider testing

// SampleDirectionsResponse is a walk + Line 3 ride towards the Airport
const SampleDirectionsResponse = `{
	"status": "OK",
	"steps": [
		{
			"mode": "walking",
			"from": "Ermou",
			"to": "Syntagma"
		},
		{
			"mode": "subway",
			"line": "3",
			"from": "Syntagma",
			"to": "Airport",
			"headsign": "Airport",
			"stops": 15,
			"waitTime": "7 min",
			"waitTimeMinutes": 7,
			"departureTime": "14:32",
			"departureTimeValue": 1760621520,
			"reliability": "HIGH",
			"frequency": "every 36 min"
		}
	]
}`

// SampleTimestampDirectionsResponse carries only absolute departure data
const SampleTimestampDirectionsResponse = `{
	"status": "OK",
	"steps": [
		{
			"mode": "subway",
			"line": "1",
			"from": "Omonia",
			"to": "Piraeus",
			"departureTime": "09:15",
			"departureTimeValue": 1760606100
		}
	]
}`

// SampleZeroResultsResponse is returned when no route exists
const SampleZeroResultsResponse = `{
	"status": "ZERO_RESULTS",
	"steps": []
}`

// SampleDeniedResponse is returned for a rejected API key
const SampleDeniedResponse = `{
	"status": "REQUEST_DENIED",
	"errorMessage": "The provided API key is invalid.",
	"steps": []
}`

// SampleEmptyResponse is an empty JSON response
const SampleEmptyResponse = `{}`

// SampleTimetableCSV is a minimal service pattern file for one line
const SampleTimetableCSV = `line,direction,service_day,first_train,last_train,headway_minutes
1,Piraeus,weekday,05:30,00:30,6
1,Kifisia,weekday,05:30,00:30,6
1,Piraeus,saturday,05:30,00:30,8
1,Kifisia,saturday,05:30,00:30,8
1,Piraeus,sunday,05:30,00:30,10
1,Kifisia,sunday,05:30,00:30,10
`
