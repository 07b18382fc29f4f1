package entities

import "fmt"

// ValidateFlights checks a candidate set at the provider boundary.
// The optimizer assumes validated input, so malformed rows fail fast
// here with a descriptive error: duplicate ids, missing city names,
// negative price or duration.
func ValidateFlights(flights []Flight) error {
	seen := make(map[int64]struct{}, len(flights))
	for _, f := range flights {
		if _, dup := seen[f.ID]; dup {
			return fmt.Errorf("flight %d: duplicate id in candidate set", f.ID)
		}
		seen[f.ID] = struct{}{}

		if f.SourceCity == "" {
			return fmt.Errorf("flight %d: missing source city", f.ID)
		}
		if f.DestinationCity == "" {
			return fmt.Errorf("flight %d: missing destination city", f.ID)
		}
		if f.Price < 0 {
			return fmt.Errorf("flight %d: negative price %v", f.ID, f.Price)
		}
		if f.DurationHours < 0 {
			return fmt.Errorf("flight %d: negative duration %v", f.ID, f.DurationHours)
		}
	}
	return nil
}
