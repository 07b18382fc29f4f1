package entities

import (
	"fmt"
	"hash/fnv"
)

// FlightFilter narrows the full dataset to one candidate set. Zero
// values mean "unconstrained"; MaxStops is a pointer because zero stops
// is a meaningful ceiling.
type FlightFilter struct {
	SourceCity         string     `json:"source_city,omitempty"`
	DestinationCity    string     `json:"destination_city,omitempty"`
	MaxStops           *int       `json:"max_stops,omitempty"`
	Class              CabinClass `json:"class,omitempty"`
	PreferredDeparture TimeBucket `json:"preferred_departure,omitempty"`
	LatestArrival      TimeBucket `json:"latest_arrival,omitempty"`
	MaxDurationHours   float64    `json:"max_duration_hours,omitempty"`
	MaxPrice           float64    `json:"max_price,omitempty"`
}

func (f FlightFilter) admits(fl Flight) bool {
	if f.SourceCity != "" && fl.SourceCity != f.SourceCity {
		return false
	}
	if f.DestinationCity != "" && fl.DestinationCity != f.DestinationCity {
		return false
	}
	if f.MaxStops != nil && fl.Stops.Ceiling() > *f.MaxStops {
		return false
	}
	if f.Class != "" && fl.Class != f.Class {
		return false
	}
	if f.PreferredDeparture != "" && fl.DepartureTime != f.PreferredDeparture {
		return false
	}
	if f.LatestArrival != "" && fl.ArrivalTime != f.LatestArrival {
		return false
	}
	if f.MaxDurationHours > 0 && fl.DurationHours > f.MaxDurationHours {
		return false
	}
	if f.MaxPrice > 0 && fl.Price > f.MaxPrice {
		return false
	}
	return true
}

// Apply returns the flights admitted by every set field, preserving
// input order.
func (f FlightFilter) Apply(flights []Flight) []Flight {
	out := make([]Flight, 0, len(flights))
	for _, fl := range flights {
		if f.admits(fl) {
			out = append(out, fl)
		}
	}
	return out
}

// CacheKey derives a stable key for caching candidate sets and solve
// results per filter combination.
func (f FlightFilter) CacheKey() string {
	maxStops := "-"
	if f.MaxStops != nil {
		maxStops = fmt.Sprintf("%d", *f.MaxStops)
	}
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s|%s|%s|%s|%g|%g",
		f.SourceCity, f.DestinationCity, maxStops, f.Class,
		f.PreferredDeparture, f.LatestArrival, f.MaxDurationHours, f.MaxPrice)
	return fmt.Sprintf("%x", h.Sum64())
}
