package dtos

import "github.com/andysilva90/flight-fare-optimizer/internal/models/entities"

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

// ItineraryDto is the solve result envelope. Feasible is false when the
// optimizer returned the empty sentinel, letting clients distinguish
// "no feasible itinerary" from an error.
type ItineraryDto struct {
	Feasible   bool              `json:"feasible"`
	Flights    []entities.Flight `json:"flights"`
	TotalPrice float64           `json:"total_price"`
	Candidates int               `json:"candidates_considered"`
}

type FlightListDto struct {
	Flights []entities.Flight `json:"flights"`
	Count   int               `json:"count"`
}

type DatasetStatsDto struct {
	Flights     int64  `json:"flights"`
	Cities      int64  `json:"cities"`
	LastImport  string `json:"last_import,omitempty"`
	ImportCount int64  `json:"import_count"`
}

type ImportResultDto struct {
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	ImportID string `json:"import_id"`
}

type ShareTokenDto struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}
