package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/andysilva90/flight-fare-optimizer/internal/common"
	"github.com/andysilva90/flight-fare-optimizer/internal/constants"
	"github.com/andysilva90/flight-fare-optimizer/internal/logging"
	"github.com/andysilva90/flight-fare-optimizer/internal/metrics"
	"github.com/andysilva90/flight-fare-optimizer/internal/models/dtos"
	"github.com/andysilva90/flight-fare-optimizer/internal/models/entities"
	"github.com/andysilva90/flight-fare-optimizer/internal/optimizer"
)

const resultCacheTTL = 5 * time.Minute

// CandidateProvider supplies filtered candidate sets from storage.
type CandidateProvider interface {
	List(ctx context.Context, filter entities.FlightFilter) ([]entities.Flight, error)
}

// ItineraryService runs optimization requests against the stored dataset.
type ItineraryService struct {
	provider CandidateProvider
	cache    common.CacheInterface
	metrics  *metrics.MetricsRegistry
	opts     []optimizer.Option
}

func NewItineraryService(
	provider CandidateProvider,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
	opts ...optimizer.Option,
) *ItineraryService {
	return &ItineraryService{
		provider: provider,
		cache:    cache,
		metrics:  metricsReg,
		opts:     opts,
	}
}

// FindCheapestFlight returns the single cheapest flight admitted by the
// filter and secondary constraints. An infeasible request is not an
// error: the result comes back with Feasible=false and zero price.
func (s *ItineraryService) FindCheapestFlight(ctx context.Context, req dtos.CheapestFlightReq) (*dtos.ItineraryDto, error) {
	cacheKey := fmt.Sprintf("%s%s|%g|%s|%s",
		constants.CachePrefixItinerary, req.Filter.CacheKey(),
		req.MaxDurationHours, req.PreferredDeparture, req.LatestArrival)

	if cached, found := s.cacheGet(cacheKey); found {
		return cached, nil
	}

	candidates, err := s.loadCandidates(ctx, req.Filter, "single_hop")
	if err != nil {
		return nil, err
	}

	sec := optimizer.SecondaryConstraints{
		MaxDurationHours:   req.MaxDurationHours,
		PreferredDeparture: req.PreferredDeparture,
		LatestArrival:      req.LatestArrival,
	}

	start := time.Now()
	itinerary, err := optimizer.CheapestFlight(ctx, candidates, sec, s.opts...)
	s.observeSolve("single_hop", start, itinerary, err)
	if err != nil {
		return nil, fmt.Errorf("cheapest flight solve failed: %w", err)
	}

	result := toItineraryDto(itinerary, len(candidates))
	s.cacheSet(cacheKey, result)
	return result, nil
}

// FindCheapestRoute returns the cheapest chain of flights from source to
// destination. City fields on the filter are cleared before loading so
// legs through intermediate cities stay in the candidate set.
func (s *ItineraryService) FindCheapestRoute(ctx context.Context, req dtos.CheapestRouteReq) (*dtos.ItineraryDto, error) {
	filter := req.Filter
	filter.SourceCity = ""
	filter.DestinationCity = ""

	cacheKey := fmt.Sprintf("%s%s|%s>%s",
		constants.CachePrefixItinerary, filter.CacheKey(), req.SourceCity, req.DestinationCity)

	if cached, found := s.cacheGet(cacheKey); found {
		return cached, nil
	}

	candidates, err := s.loadCandidates(ctx, filter, "multi_leg")
	if err != nil {
		return nil, err
	}

	start := time.Now()
	itinerary, err := optimizer.CheapestRoute(ctx, candidates, req.SourceCity, req.DestinationCity, s.opts...)
	s.observeSolve("multi_leg", start, itinerary, err)
	if err != nil {
		return nil, fmt.Errorf("cheapest route solve failed: %w", err)
	}

	if itinerary.Empty() {
		logging.Info("No feasible route",
			"source_city", req.SourceCity,
			"destination_city", req.DestinationCity,
			"candidates", len(candidates),
		)
	}

	result := toItineraryDto(itinerary, len(candidates))
	s.cacheSet(cacheKey, result)
	return result, nil
}

// ListFlights returns the raw candidate set for a filter.
func (s *ItineraryService) ListFlights(ctx context.Context, filter entities.FlightFilter) (*dtos.FlightListDto, error) {
	flights, err := s.provider.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list flights: %w", err)
	}
	return &dtos.FlightListDto{Flights: flights, Count: len(flights)}, nil
}

func (s *ItineraryService) loadCandidates(ctx context.Context, filter entities.FlightFilter, mode string) ([]entities.Flight, error) {
	candKey := string(constants.CachePrefixCandidates) + filter.CacheKey()
	if s.cache != nil {
		if val, found := s.cache.Get(candKey); found {
			var candidates []entities.Flight
			if decodeCached(val, &candidates) {
				if s.metrics != nil {
					s.metrics.CandidateSetSize.WithLabelValues(mode).Observe(float64(len(candidates)))
				}
				return candidates, nil
			}
		}
	}

	candidates, err := s.provider.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}
	if err := entities.ValidateFlights(candidates); err != nil {
		return nil, fmt.Errorf("%s: %w", constants.ErrMsgDatasetMalformed, err)
	}
	if s.metrics != nil {
		s.metrics.CandidateSetSize.WithLabelValues(mode).Observe(float64(len(candidates)))
	}
	if s.cache != nil {
		s.cache.Set(candKey, candidates, resultCacheTTL)
	}
	return candidates, nil
}

func (s *ItineraryService) observeSolve(mode string, start time.Time, itinerary entities.Itinerary, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.SolveDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())

	outcome := "found"
	switch {
	case err != nil:
		outcome = "error"
	case itinerary.Empty():
		outcome = "infeasible"
	}
	s.metrics.SolvesTotal.WithLabelValues(mode, outcome).Inc()
}

func (s *ItineraryService) cacheGet(key string) (*dtos.ItineraryDto, bool) {
	if s.cache == nil {
		return nil, false
	}
	val, found := s.cache.Get(key)
	if found {
		var result dtos.ItineraryDto
		if decodeCached(val, &result) {
			if s.metrics != nil {
				s.metrics.CacheHitsTotal.WithLabelValues(string(constants.CachePrefixItinerary)).Inc()
			}
			return &result, true
		}
	}
	if s.metrics != nil {
		s.metrics.CacheMissesTotal.WithLabelValues(string(constants.CachePrefixItinerary)).Inc()
	}
	return nil, false
}

// decodeCached recovers a concretely typed value from a cache entry.
// The in-memory cache hands back the stored value as-is; Redis
// round-trips it through JSON into generic maps and slices, so anything
// else is re-marshaled into the target type.
func decodeCached(val interface{}, target interface{}) bool {
	switch v := val.(type) {
	case *dtos.ItineraryDto:
		if t, ok := target.(*dtos.ItineraryDto); ok {
			*t = *v
			return true
		}
	case []entities.Flight:
		if t, ok := target.(*[]entities.Flight); ok {
			*t = v
			return true
		}
	}
	data, err := json.Marshal(val)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, target) == nil
}

func (s *ItineraryService) cacheSet(key string, result *dtos.ItineraryDto) {
	if s.cache != nil {
		s.cache.Set(key, result, resultCacheTTL)
	}
}

func toItineraryDto(itinerary entities.Itinerary, candidates int) *dtos.ItineraryDto {
	flights := itinerary.Flights
	if flights == nil {
		flights = []entities.Flight{}
	}
	return &dtos.ItineraryDto{
		Feasible:   !itinerary.Empty(),
		Flights:    flights,
		TotalPrice: itinerary.TotalPrice,
		Candidates: candidates,
	}
}
