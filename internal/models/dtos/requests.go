package dtos

import "github.com/andysilva90/flight-fare-optimizer/internal/models/entities"

// CheapestFlightReq asks for the single cheapest flight matching the
// dataset filter, optionally narrowed by secondary constraints.
type CheapestFlightReq struct {
	Filter             entities.FlightFilter `json:"filter"`
	MaxDurationHours   float64               `json:"max_duration_hours,omitempty"`
	PreferredDeparture entities.TimeBucket   `json:"preferred_departure,omitempty"`
	LatestArrival      entities.TimeBucket   `json:"latest_arrival,omitempty"`
}

// CheapestRouteReq asks for the cheapest chain of flights from
// SourceCity to DestinationCity. The filter narrows the candidate set
// but its own city fields are ignored: route legs may touch any
// intermediate city.
type CheapestRouteReq struct {
	SourceCity      string                `json:"source_city"`
	DestinationCity string                `json:"destination_city"`
	Filter          entities.FlightFilter `json:"filter"`
}

// ShareItineraryReq asks for a signed, single-use link token for a
// route request.
type ShareItineraryReq struct {
	Route CheapestRouteReq `json:"route"`
}
