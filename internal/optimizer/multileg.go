package optimizer

import (
	"container/heap"
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/andysilva90/flight-fare-optimizer/internal/models/entities"
)

// CheapestRoute finds the minimum-total-price chain of flights from
// source to destination through any intermediate cities. Each flight is
// a directed edge between city nodes; the feasible region is the set of
// simple paths, i.e. unit flow out of the source, unit flow into the
// destination, and inbound == outbound at every intermediate city.
//
// With non-negative prices that flow program collapses to a shortest
// path, so the search runs Dijkstra with a lazy-decrease-key heap over
// the directed multigraph (parallel edges between the same city pair
// are kept as distinct edges).
//
// Edge cases, all yielding the empty itinerary with zero price and a
// nil error: empty candidate set, source == destination, either city
// absent from the candidate set, or no connecting path.
//
// Determinism: candidate edges are scanned in ascending flight-id order
// and relaxation only accepts strict improvements, so equal-cost routes
// resolve the same way for identical input.
//
// The returned flights are ordered by departure-time bucket ascending
// (stable on path position). The buckets are categorical labels, not
// timestamps, so this is not a true chronological sort; it reproduces
// the dataset's presentation order.
func CheapestRoute(ctx context.Context, candidates []entities.Flight, source, destination string, _ ...Option) (entities.Itinerary, error) {
	if len(candidates) == 0 || source == "" || destination == "" || source == destination {
		return entities.EmptyItinerary(), nil
	}

	// Prices are validated upstream; fail fast anyway, a negative edge
	// breaks the shortest-path reduction.
	for _, f := range candidates {
		if f.Price < 0 {
			return entities.EmptyItinerary(), fmt.Errorf("%w: flight %d price %v", ErrNegativeCost, f.ID, f.Price)
		}
	}

	edges := append([]entities.Flight(nil), candidates...)
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].ID < edges[j].ID })

	adjacency := make(map[string][]int, len(edges))
	cities := make(map[string]struct{}, len(edges)*2)
	for i, f := range edges {
		adjacency[f.SourceCity] = append(adjacency[f.SourceCity], i)
		cities[f.SourceCity] = struct{}{}
		cities[f.DestinationCity] = struct{}{}
	}
	if _, ok := cities[source]; !ok {
		return entities.EmptyItinerary(), nil
	}
	if _, ok := cities[destination]; !ok {
		return entities.EmptyItinerary(), nil
	}

	dist := make(map[string]float64, len(cities))
	prevEdge := make(map[string]int, len(cities))
	visited := make(map[string]bool, len(cities))
	for c := range cities {
		dist[c] = math.Inf(1)
	}
	dist[source] = 0

	pq := make(cityPQ, 0, len(cities))
	heap.Init(&pq)
	heap.Push(&pq, &cityItem{city: source, dist: 0})

	for pq.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return entities.EmptyItinerary(), fmt.Errorf("route solve canceled: %w", err)
		}

		item := heap.Pop(&pq).(*cityItem)
		if visited[item.city] {
			continue // stale lazy-decrease-key entry
		}
		visited[item.city] = true
		if item.city == destination {
			break
		}

		for _, ei := range adjacency[item.city] {
			e := edges[ei]
			next := e.DestinationCity
			candidate := dist[item.city] + e.Price
			if candidate >= dist[next] {
				continue
			}
			dist[next] = candidate
			prevEdge[next] = ei
			heap.Push(&pq, &cityItem{city: next, dist: candidate})
		}
	}

	if math.IsInf(dist[destination], 1) {
		return entities.EmptyItinerary(), nil
	}

	// Walk predecessors back from the destination. Strict relaxation
	// over non-negative weights guarantees a simple path.
	var path []entities.Flight
	for at := destination; at != source; {
		e := edges[prevEdge[at]]
		path = append(path, e)
		at = e.SourceCity
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	sort.SliceStable(path, func(i, j int) bool {
		return path[i].DepartureTime.Order() < path[j].DepartureTime.Order()
	})

	return entities.Itinerary{Flights: path, TotalPrice: dist[destination]}, nil
}

// cityItem is a heap entry pairing a city with its tentative distance.
type cityItem struct {
	city string
	dist float64
}

// cityPQ is a min-heap over tentative distances using the lazy
// decrease-key pattern: improvements push duplicates, stale entries are
// skipped on pop.
type cityPQ []*cityItem

func (pq cityPQ) Len() int            { return len(pq) }
func (pq cityPQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq cityPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *cityPQ) Push(x interface{}) { *pq = append(*pq, x.(*cityItem)) }
func (pq *cityPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
