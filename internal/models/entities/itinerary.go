package entities

// Itinerary is the result of one optimization call: the selected
// flight(s) in order plus the aggregate price. An empty itinerary with
// zero price is the documented "no feasible result" sentinel, not an
// error.
type Itinerary struct {
	Flights    []Flight `json:"flights"`
	TotalPrice float64  `json:"total_price"`
}

// Empty reports whether the itinerary carries no flights.
func (it Itinerary) Empty() bool {
	return len(it.Flights) == 0
}

// EmptyItinerary returns the infeasible-request sentinel.
func EmptyItinerary() Itinerary {
	return Itinerary{Flights: []Flight{}, TotalPrice: 0}
}
