package optimizer

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/andysilva90/flight-fare-optimizer/internal/models/entities"
)

// SecondaryConstraints narrow the candidate set before the price
// minimization. Zero values mean "unconstrained", mirroring the
// dataset filter conventions.
type SecondaryConstraints struct {
	// MaxDurationHours admits flights with duration <= the cap.
	MaxDurationHours float64
	// PreferredDeparture admits flights departing in exactly this
	// bucket.
	PreferredDeparture entities.TimeBucket
	// LatestArrival admits flights arriving in exactly this bucket.
	// The comparison is equality on the categorical label, not a
	// chronological "no later than".
	LatestArrival entities.TimeBucket
}

func (sc SecondaryConstraints) admits(f entities.Flight) bool {
	if sc.MaxDurationHours > 0 && f.DurationHours > sc.MaxDurationHours {
		return false
	}
	if sc.PreferredDeparture != "" && f.DepartureTime != sc.PreferredDeparture {
		return false
	}
	if sc.LatestArrival != "" && f.ArrivalTime != sc.LatestArrival {
		return false
	}
	return true
}

// CheapestFlight selects the minimum-price flight among the candidates
// satisfying the secondary constraints. The selection is framed as a
// binary assignment problem with a single "choose exactly one"
// constraint and handed to the configured solver.
//
// An empty constrained candidate set yields the empty itinerary with
// zero price and a nil error; callers distinguish that sentinel from a
// found flight via Itinerary.Empty. Price ties resolve to the lowest
// flight id.
func CheapestFlight(ctx context.Context, candidates []entities.Flight, sec SecondaryConstraints, opts ...Option) (entities.Itinerary, error) {
	cfg := buildOptions(opts)

	narrowed := make([]entities.Flight, 0, len(candidates))
	for _, f := range candidates {
		if sec.admits(f) {
			narrowed = append(narrowed, f)
		}
	}
	if len(narrowed) == 0 {
		return entities.EmptyItinerary(), nil
	}

	// Ascending id order makes the solver's first-found tie-break
	// deterministic: lowest id wins among equal prices.
	sort.SliceStable(narrowed, func(i, j int) bool { return narrowed[i].ID < narrowed[j].ID })

	costs := make([]float64, len(narrowed))
	for i, f := range narrowed {
		costs[i] = f.Price
	}
	problem := NewProblem(costs)
	if err := problem.SelectExactlyOne(); err != nil {
		return entities.EmptyItinerary(), err
	}

	sol, err := cfg.Solver.Solve(ctx, problem)
	if err != nil {
		if errors.Is(err, ErrInfeasible) {
			return entities.EmptyItinerary(), nil
		}
		return entities.EmptyItinerary(), fmt.Errorf("single-hop solve: %w", err)
	}

	flights := make([]entities.Flight, 0, len(sol.Selected))
	for _, v := range sol.Selected {
		flights = append(flights, narrowed[v])
	}
	return entities.Itinerary{Flights: flights, TotalPrice: sol.Cost}, nil
}
