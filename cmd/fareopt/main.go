package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/andysilva90/flight-fare-optimizer/internal/common"
	"github.com/andysilva90/flight-fare-optimizer/internal/models/entities"
	"github.com/andysilva90/flight-fare-optimizer/internal/optimizer"
)

// memoryStore captures the parsed dataset so one-shot runs skip the
// database entirely.
type memoryStore struct {
	flights []entities.Flight
}

func (m *memoryStore) ReplaceAll(_ context.Context, flights []entities.Flight) error {
	m.flights = flights
	return nil
}

func main() {
	var (
		dataPath    = flag.String("data", "Clean_Dataset.csv", "path to the flight dataset CSV")
		source      = flag.String("source", "", "source city")
		destination = flag.String("destination", "", "destination city")
		route       = flag.Bool("route", false, "find a multi-leg route instead of a single flight")
		maxStops    = flag.Int("max-stops", -1, "maximum stop count, -1 for unconstrained")
		class       = flag.String("class", "", "cabin class (Economy, Business)")
		maxPrice    = flag.Float64("max-price", 0, "maximum price, 0 for unconstrained")
		maxDuration = flag.Float64("max-duration", 0, "maximum duration in hours, 0 for unconstrained")
		departure   = flag.String("departure", "", "departure time bucket (e.g. Morning)")
		arrival     = flag.String("arrival", "", "arrival time bucket (e.g. Night)")
		asJSON      = flag.Bool("json", false, "print the result as JSON")
	)
	flag.Parse()

	if *source == "" || *destination == "" {
		fmt.Fprintln(os.Stderr, "both -source and -destination are required")
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	store := &memoryStore{}
	loader := common.NewDatasetLoaderService(store, nil)
	result, err := loader.LoadFromFile(ctx, *dataPath)
	if err != nil {
		log.Fatalf("load dataset: %v", err)
	}
	fmt.Fprintf(os.Stderr, "loaded %d flights (%d rows skipped)\n", result.Rows, result.Skipped)

	filter := entities.FlightFilter{
		Class:            entities.CabinClass(*class),
		MaxPrice:         *maxPrice,
		MaxDurationHours: *maxDuration,
	}
	if *maxStops >= 0 {
		filter.MaxStops = maxStops
	}

	var itinerary entities.Itinerary
	if *route {
		candidates := filter.Apply(store.flights)
		itinerary, err = optimizer.CheapestRoute(ctx, candidates, *source, *destination)
	} else {
		filter.SourceCity = *source
		filter.DestinationCity = *destination
		candidates := filter.Apply(store.flights)
		sec := optimizer.SecondaryConstraints{
			MaxDurationHours:   *maxDuration,
			PreferredDeparture: entities.TimeBucket(*departure),
			LatestArrival:      entities.TimeBucket(*arrival),
		}
		itinerary, err = optimizer.CheapestFlight(ctx, candidates, sec)
	}
	if err != nil {
		log.Fatalf("solve: %v", err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(itinerary); err != nil {
			log.Fatalf("encode result: %v", err)
		}
		return
	}

	if itinerary.Empty() {
		fmt.Printf("no feasible itinerary from %s to %s\n", *source, *destination)
		return
	}

	fmt.Printf("cheapest itinerary from %s to %s: %.0f\n", *source, *destination, itinerary.TotalPrice)
	for _, f := range itinerary.Flights {
		fmt.Printf("  %s %s  %s -> %s  %s dep, %s arr  %.0f\n",
			f.Airline, f.FlightNumber, f.SourceCity, f.DestinationCity,
			f.DepartureTime, f.ArrivalTime, f.Price)
	}
}
