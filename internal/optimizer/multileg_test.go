package optimizer

import (
	"context"
	"errors"
	"testing"

	"github.com/andysilva90/flight-fare-optimizer/internal/models/entities"
)

// checkFlowConservation asserts the selected flights form one simple
// path: one departure from source, one arrival at destination, and
// balanced inbound/outbound counts everywhere else.
func checkFlowConservation(t *testing.T, it entities.Itinerary, source, destination string) {
	t.Helper()

	in := map[string]int{}
	out := map[string]int{}
	for _, f := range it.Flights {
		out[f.SourceCity]++
		in[f.DestinationCity]++
	}

	if out[source] != 1 || in[source] != 0 {
		t.Errorf("source %s: out=%d in=%d, want out=1 in=0", source, out[source], in[source])
	}
	if in[destination] != 1 || out[destination] != 0 {
		t.Errorf("destination %s: in=%d out=%d, want in=1 out=0", destination, in[destination], out[destination])
	}
	for city := range in {
		if city == source || city == destination {
			continue
		}
		if in[city] != out[city] {
			t.Errorf("intermediate %s: in=%d out=%d", city, in[city], out[city])
		}
		if in[city] > 1 {
			t.Errorf("intermediate %s visited %d times", city, in[city])
		}
	}
}

func TestCheapestRoute_ConnectionBeatsDirect(t *testing.T) {
	candidates := []entities.Flight{
		hop(1, "A", "B", 50),
		hop(2, "B", "C", 60),
		hop(3, "A", "C", 200),
	}

	it, err := CheapestRoute(context.Background(), candidates, "A", "C")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if len(it.Flights) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(it.Flights))
	}
	if it.Flights[0].ID != 1 || it.Flights[1].ID != 2 {
		t.Errorf("expected legs [1 2], got [%d %d]", it.Flights[0].ID, it.Flights[1].ID)
	}
	if it.TotalPrice != 110 {
		t.Errorf("expected total 110, got %v", it.TotalPrice)
	}
	checkFlowConservation(t, it, "A", "C")
}

func TestCheapestRoute_DirectBeatsExpensiveConnection(t *testing.T) {
	candidates := []entities.Flight{
		hop(1, "A", "B", 150),
		hop(2, "B", "C", 160),
		hop(3, "A", "C", 200),
	}

	it, err := CheapestRoute(context.Background(), candidates, "A", "C")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if len(it.Flights) != 1 || it.Flights[0].ID != 3 {
		t.Errorf("expected direct flight 3, got %+v", it.Flights)
	}
	if it.TotalPrice != 200 {
		t.Errorf("expected total 200, got %v", it.TotalPrice)
	}
}

func TestCheapestRoute_ParallelEdges(t *testing.T) {
	candidates := []entities.Flight{
		hop(1, "A", "B", 90),
		hop(2, "A", "B", 70),
		hop(3, "A", "B", 85),
	}

	it, err := CheapestRoute(context.Background(), candidates, "A", "B")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if len(it.Flights) != 1 || it.Flights[0].ID != 2 {
		t.Errorf("expected cheapest parallel edge 2, got %+v", it.Flights)
	}
}

func TestCheapestRoute_SourceEqualsDestination(t *testing.T) {
	candidates := []entities.Flight{hop(1, "A", "B", 50)}

	it, err := CheapestRoute(context.Background(), candidates, "A", "A")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if !it.Empty() || it.TotalPrice != 0 {
		t.Errorf("expected empty sentinel for source==destination, got %+v", it)
	}
}

func TestCheapestRoute_EmptyCandidateSet(t *testing.T) {
	it, err := CheapestRoute(context.Background(), nil, "A", "B")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if !it.Empty() || it.TotalPrice != 0 {
		t.Errorf("expected empty sentinel, got %+v", it)
	}
}

func TestCheapestRoute_UnknownCities(t *testing.T) {
	candidates := []entities.Flight{hop(1, "A", "B", 50)}

	for _, pair := range [][2]string{{"Z", "B"}, {"A", "Z"}, {"Y", "Z"}} {
		it, err := CheapestRoute(context.Background(), candidates, pair[0], pair[1])
		if err != nil {
			t.Fatalf("%v: %v", pair, err)
		}
		if !it.Empty() {
			t.Errorf("%v: expected empty sentinel for unknown city", pair)
		}
	}
}

func TestCheapestRoute_NoPath(t *testing.T) {
	// B->A exists but A->B does not; edges are directed.
	candidates := []entities.Flight{
		hop(1, "B", "A", 50),
		hop(2, "C", "D", 60),
	}

	it, err := CheapestRoute(context.Background(), candidates, "A", "B")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if !it.Empty() {
		t.Errorf("expected empty sentinel when no directed path exists, got %+v", it)
	}
}

func TestCheapestRoute_MultiLegThroughSeveralCities(t *testing.T) {
	candidates := []entities.Flight{
		hop(1, "A", "B", 10),
		hop(2, "B", "C", 10),
		hop(3, "C", "D", 10),
		hop(4, "A", "D", 100),
		hop(5, "B", "D", 50),
	}

	it, err := CheapestRoute(context.Background(), candidates, "A", "D")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if it.TotalPrice != 30 {
		t.Errorf("expected total 30 via A-B-C-D, got %v (%d legs)", it.TotalPrice, len(it.Flights))
	}
	checkFlowConservation(t, it, "A", "D")
}

func TestCheapestRoute_OrdersByDepartureBucket(t *testing.T) {
	first := hop(1, "A", "B", 10)
	first.DepartureTime = entities.BucketNight
	second := hop(2, "B", "C", 10)
	second.DepartureTime = entities.BucketEarlyMorning

	it, err := CheapestRoute(context.Background(), []entities.Flight{first, second}, "A", "C")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if len(it.Flights) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(it.Flights))
	}
	// Bucket ordering is categorical: the early-morning leg sorts
	// ahead of the night leg even though it is the second hop.
	if it.Flights[0].ID != 2 || it.Flights[1].ID != 1 {
		t.Errorf("expected bucket order [2 1], got [%d %d]", it.Flights[0].ID, it.Flights[1].ID)
	}
}

func TestCheapestRoute_NegativePriceRejected(t *testing.T) {
	candidates := []entities.Flight{hop(1, "A", "B", -5)}

	_, err := CheapestRoute(context.Background(), candidates, "A", "B")
	if !errors.Is(err, ErrNegativeCost) {
		t.Errorf("expected ErrNegativeCost, got %v", err)
	}
}

func TestCheapestRoute_Idempotent(t *testing.T) {
	candidates := []entities.Flight{
		hop(1, "A", "B", 50),
		hop(2, "A", "B", 50),
		hop(3, "B", "C", 60),
	}

	first, err := CheapestRoute(context.Background(), candidates, "A", "C")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	second, err := CheapestRoute(context.Background(), candidates, "A", "C")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}

	if first.TotalPrice != second.TotalPrice {
		t.Errorf("total changed across identical solves: %v vs %v", first.TotalPrice, second.TotalPrice)
	}
	for i := range first.Flights {
		if first.Flights[i].ID != second.Flights[i].ID {
			t.Errorf("leg %d changed across identical solves: %d vs %d", i, first.Flights[i].ID, second.Flights[i].ID)
		}
	}
}
