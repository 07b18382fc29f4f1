package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/andysilva90/flight-fare-optimizer/internal/common"
	"github.com/andysilva90/flight-fare-optimizer/internal/models/dtos"
	"github.com/andysilva90/flight-fare-optimizer/internal/models/entities"
)

// ItineraryFinder is the service surface the flight and itinerary
// handlers depend on.
type ItineraryFinder interface {
	FindCheapestFlight(ctx context.Context, req dtos.CheapestFlightReq) (*dtos.ItineraryDto, error)
	FindCheapestRoute(ctx context.Context, req dtos.CheapestRouteReq) (*dtos.ItineraryDto, error)
	ListFlights(ctx context.Context, filter entities.FlightFilter) (*dtos.FlightListDto, error)
}

// filterFromQuery builds a dataset filter from list query parameters.
func filterFromQuery(r *http.Request) (entities.FlightFilter, error) {
	q := r.URL.Query()

	filter := entities.FlightFilter{
		SourceCity:         q.Get("source_city"),
		DestinationCity:    q.Get("destination_city"),
		Class:              entities.CabinClass(q.Get("class")),
		PreferredDeparture: entities.TimeBucket(q.Get("departure_time")),
		LatestArrival:      entities.TimeBucket(q.Get("arrival_time")),
	}

	if raw := q.Get("max_stops"); raw != "" {
		maxStops, err := strconv.Atoi(raw)
		if err != nil || maxStops < 0 {
			return filter, errInvalidParam("max_stops")
		}
		filter.MaxStops = &maxStops
	}
	if raw := q.Get("max_price"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil || maxPrice < 0 {
			return filter, errInvalidParam("max_price")
		}
		filter.MaxPrice = maxPrice
	}
	if raw := q.Get("max_duration_hours"); raw != "" {
		maxDuration, err := strconv.ParseFloat(raw, 64)
		if err != nil || maxDuration < 0 {
			return filter, errInvalidParam("max_duration_hours")
		}
		filter.MaxDurationHours = maxDuration
	}

	return filter, nil
}

type paramError struct{ name string }

func (e paramError) Error() string { return "invalid " + e.name + " parameter" }

func errInvalidParam(name string) error { return paramError{name: name} }

// ListFlightsHandler handles GET /api/v1/flights
func ListFlightsHandler(svc ItineraryFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		filter, err := filterFromQuery(r)
		if err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		dto, err := svc.ListFlights(r.Context(), filter)
		if err != nil {
			common.RespondError(w, initTime, err, "", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Fetched flights", dto)
	}
}
