package services

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/andysilva90/flight-fare-optimizer/internal/common"
	"github.com/andysilva90/flight-fare-optimizer/internal/models/dtos"
	"github.com/andysilva90/flight-fare-optimizer/internal/models/entities"
	models "github.com/andysilva90/flight-fare-optimizer/internal/models/gorm"
)

type mockLoader struct {
	result *common.ImportResult
	err    error
}

func (m *mockLoader) LoadFromCSV(_ context.Context, _ io.Reader, _ string) (*common.ImportResult, error) {
	return m.result, m.err
}

type mockStats struct {
	flights, cities int64
	calls           int
}

func (m *mockStats) Stats(_ context.Context) (int64, int64, error) {
	m.calls++
	return m.flights, m.cities, nil
}

type mockHistory struct {
	latest *models.DatasetImport
	count  int64
}

func (m *mockHistory) Latest(_ context.Context) (*models.DatasetImport, error) { return m.latest, nil }
func (m *mockHistory) Count(_ context.Context) (int64, error)                  { return m.count, nil }

func TestDatasetService_Import(t *testing.T) {
	loader := &mockLoader{result: &common.ImportResult{ImportID: "abc", Rows: 10, Skipped: 1}}
	svc := NewDatasetService(loader, &mockStats{}, &mockHistory{}, common.NewCacheService(60, 120), nil)

	result, err := svc.Import(context.Background(), strings.NewReader("csv"), "flights.csv")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.Imported != 10 || result.Skipped != 1 || result.ImportID != "abc" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestDatasetService_ImportInvalidatesSolveCaches(t *testing.T) {
	// The itinerary and dataset services share one cache. A solve
	// populates both the candidate-set and result entries; an import
	// must drop both, or the next solve optimizes over deleted rows.
	cache := common.NewCacheService(60, 120)
	provider := &mockProvider{flights: []entities.Flight{
		{ID: 1, SourceCity: "Delhi", DestinationCity: "Mumbai", Stops: "zero", Price: 500},
	}}
	itinSvc := NewItineraryService(provider, cache, nil)
	loader := &mockLoader{result: &common.ImportResult{ImportID: "abc", Rows: 1}}
	datasetSvc := NewDatasetService(loader, &mockStats{}, &mockHistory{}, cache, nil)

	req := dtos.CheapestFlightReq{
		Filter: entities.FlightFilter{SourceCity: "Delhi", DestinationCity: "Mumbai"},
	}

	first, err := itinSvc.FindCheapestFlight(context.Background(), req)
	if err != nil {
		t.Fatalf("first solve: %v", err)
	}
	if first.TotalPrice != 500 {
		t.Fatalf("expected 500 before import, got %v", first.TotalPrice)
	}

	provider.flights = []entities.Flight{
		{ID: 9, SourceCity: "Delhi", DestinationCity: "Mumbai", Stops: "zero", Price: 100},
	}
	if _, err := datasetSvc.Import(context.Background(), strings.NewReader("csv"), "upload"); err != nil {
		t.Fatalf("Import: %v", err)
	}

	second, err := itinSvc.FindCheapestFlight(context.Background(), req)
	if err != nil {
		t.Fatalf("second solve: %v", err)
	}
	if second.TotalPrice != 100 || len(second.Flights) != 1 || second.Flights[0].ID != 9 {
		t.Errorf("solve after import returned stale data: %+v", second)
	}
}

func TestDatasetService_StatsCachedUntilImport(t *testing.T) {
	stats := &mockStats{flights: 300153, cities: 6}
	history := &mockHistory{
		latest: &models.DatasetImport{ID: "abc", RowCount: 300153, CreatedAt: time.Now()},
		count:  2,
	}
	loader := &mockLoader{result: &common.ImportResult{ImportID: "def", Rows: 5}}
	svc := NewDatasetService(loader, stats, history, common.NewCacheService(60, 120), nil)

	first, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if first.Flights != 300153 || first.Cities != 6 || first.ImportCount != 2 {
		t.Errorf("unexpected stats: %+v", first)
	}
	if first.LastImport == "" {
		t.Error("expected last import timestamp")
	}

	if _, err := svc.Stats(context.Background()); err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.calls != 1 {
		t.Errorf("expected cached stats after first call, got %d provider calls", stats.calls)
	}

	// Import invalidates the cached counts.
	if _, err := svc.Import(context.Background(), strings.NewReader("csv"), "upload"); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if _, err := svc.Stats(context.Background()); err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.calls != 2 {
		t.Errorf("expected stats recomputed after import, got %d provider calls", stats.calls)
	}
}
