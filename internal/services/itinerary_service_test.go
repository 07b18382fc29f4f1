package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/andysilva90/flight-fare-optimizer/internal/common"
	"github.com/andysilva90/flight-fare-optimizer/internal/models/dtos"
	"github.com/andysilva90/flight-fare-optimizer/internal/models/entities"
)

type mockProvider struct {
	flights []entities.Flight
	err     error
	calls   int
}

func (m *mockProvider) List(_ context.Context, filter entities.FlightFilter) ([]entities.Flight, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return filter.Apply(m.flights), nil
}

func testFlights() []entities.Flight {
	return []entities.Flight{
		{ID: 1, Airline: "AirAsia", FlightNumber: "I5-100", SourceCity: "Delhi", DestinationCity: "Mumbai", DepartureTime: "Morning", ArrivalTime: "Afternoon", Stops: "zero", Class: "Economy", DurationHours: 2.2, Price: 120},
		{ID: 2, Airline: "Vistara", FlightNumber: "UK-200", SourceCity: "Delhi", DestinationCity: "Mumbai", DepartureTime: "Evening", ArrivalTime: "Night", Stops: "zero", Class: "Economy", DurationHours: 2.1, Price: 80},
		{ID: 3, Airline: "Indigo", FlightNumber: "6E-300", SourceCity: "Mumbai", DestinationCity: "Chennai", DepartureTime: "Morning", ArrivalTime: "Afternoon", Stops: "zero", Class: "Economy", DurationHours: 1.8, Price: 60},
	}
}

func TestItineraryService_FindCheapestFlight(t *testing.T) {
	provider := &mockProvider{flights: testFlights()}
	svc := NewItineraryService(provider, common.NewCacheService(60, 120), nil)

	req := dtos.CheapestFlightReq{
		Filter: entities.FlightFilter{SourceCity: "Delhi", DestinationCity: "Mumbai"},
	}

	result, err := svc.FindCheapestFlight(context.Background(), req)
	if err != nil {
		t.Fatalf("FindCheapestFlight: %v", err)
	}
	if !result.Feasible || result.TotalPrice != 80 {
		t.Errorf("expected feasible result at 80, got %+v", result)
	}
	if len(result.Flights) != 1 || result.Flights[0].ID != 2 {
		t.Errorf("expected flight 2, got %+v", result.Flights)
	}
	if result.Candidates != 2 {
		t.Errorf("expected 2 candidates, got %d", result.Candidates)
	}
}

func TestItineraryService_InfeasibleIsNotAnError(t *testing.T) {
	provider := &mockProvider{flights: testFlights()}
	svc := NewItineraryService(provider, common.NewCacheService(60, 120), nil)

	req := dtos.CheapestFlightReq{
		Filter: entities.FlightFilter{SourceCity: "Delhi", DestinationCity: "Kolkata"},
	}

	result, err := svc.FindCheapestFlight(context.Background(), req)
	if err != nil {
		t.Fatalf("expected sentinel result, got error: %v", err)
	}
	if result.Feasible || result.TotalPrice != 0 || len(result.Flights) != 0 {
		t.Errorf("expected empty infeasible result, got %+v", result)
	}
}

func TestItineraryService_CachesResults(t *testing.T) {
	provider := &mockProvider{flights: testFlights()}
	svc := NewItineraryService(provider, common.NewCacheService(60, 120), nil)

	req := dtos.CheapestFlightReq{
		Filter: entities.FlightFilter{SourceCity: "Delhi", DestinationCity: "Mumbai"},
	}

	if _, err := svc.FindCheapestFlight(context.Background(), req); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := svc.FindCheapestFlight(context.Background(), req); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("expected 1 provider call after cache hit, got %d", provider.calls)
	}
}

func TestItineraryService_FindCheapestRoute(t *testing.T) {
	provider := &mockProvider{flights: testFlights()}
	svc := NewItineraryService(provider, common.NewCacheService(60, 120), nil)

	req := dtos.CheapestRouteReq{
		SourceCity:      "Delhi",
		DestinationCity: "Chennai",
		// City fields on the filter must not exclude connecting legs.
		Filter: entities.FlightFilter{SourceCity: "Delhi", DestinationCity: "Chennai"},
	}

	result, err := svc.FindCheapestRoute(context.Background(), req)
	if err != nil {
		t.Fatalf("FindCheapestRoute: %v", err)
	}
	if !result.Feasible || result.TotalPrice != 140 {
		t.Errorf("expected route at 140, got %+v", result)
	}
	// Legs come back ordered by departure-time bucket: Morning before Evening.
	if len(result.Flights) != 2 || result.Flights[0].ID != 3 || result.Flights[1].ID != 2 {
		t.Errorf("expected legs [3 2], got %+v", result.Flights)
	}
}

// jsonCache mimics the Redis cache: values survive only as their JSON
// encoding, so Get hands back generic maps and slices.
type jsonCache struct {
	store map[string][]byte
}

func newJSONCache() *jsonCache { return &jsonCache{store: map[string][]byte{}} }

func (c *jsonCache) Set(key string, value interface{}, _ time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.store[key] = data
}

func (c *jsonCache) Get(key string) (interface{}, bool) {
	data, ok := c.store[key]
	if !ok {
		return nil, false
	}
	var val interface{}
	if err := json.Unmarshal(data, &val); err != nil {
		return nil, false
	}
	return val, true
}

func (c *jsonCache) Delete(key string) { delete(c.store, key) }

func (c *jsonCache) DeleteByPrefix(prefix string) error {
	for key := range c.store {
		if strings.HasPrefix(key, prefix) {
			delete(c.store, key)
		}
	}
	return nil
}

func (c *jsonCache) GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error) {
	if val, found := c.Get(key); found {
		return val, nil
	}
	val, err := loader()
	if err != nil {
		return nil, err
	}
	c.Set(key, val, duration)
	return val, nil
}

func (c *jsonCache) Close() error { return nil }

func TestItineraryService_CacheSurvivesJSONRoundTrip(t *testing.T) {
	// Redis-backed caches lose the concrete type across the JSON round
	// trip; cached results must still be recovered, not silently missed.
	provider := &mockProvider{flights: testFlights()}
	svc := NewItineraryService(provider, newJSONCache(), nil)

	req := dtos.CheapestFlightReq{
		Filter: entities.FlightFilter{SourceCity: "Delhi", DestinationCity: "Mumbai"},
	}

	if _, err := svc.FindCheapestFlight(context.Background(), req); err != nil {
		t.Fatalf("first call: %v", err)
	}

	second, err := svc.FindCheapestFlight(context.Background(), req)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("expected cache hit across JSON round trip, got %d provider calls", provider.calls)
	}
	if !second.Feasible || second.TotalPrice != 80 || len(second.Flights) != 1 || second.Flights[0].ID != 2 {
		t.Errorf("round-tripped result corrupted: %+v", second)
	}
}

func TestItineraryService_RejectsMalformedCandidates(t *testing.T) {
	bad := testFlights()
	bad[1].Price = -5
	provider := &mockProvider{flights: bad}
	svc := NewItineraryService(provider, common.NewCacheService(60, 120), nil)

	req := dtos.CheapestFlightReq{
		Filter: entities.FlightFilter{SourceCity: "Delhi", DestinationCity: "Mumbai"},
	}

	if _, err := svc.FindCheapestFlight(context.Background(), req); err == nil {
		t.Fatal("expected validation error for negative price")
	}
}

func TestItineraryService_ProviderError(t *testing.T) {
	provider := &mockProvider{err: errors.New("db down")}
	svc := NewItineraryService(provider, common.NewCacheService(60, 120), nil)

	if _, err := svc.ListFlights(context.Background(), entities.FlightFilter{}); err == nil {
		t.Fatal("expected provider error to surface")
	}
}
