package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/andysilva90/flight-fare-optimizer/internal/constants"
	"github.com/andysilva90/flight-fare-optimizer/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

const flightColumns = `id, airline, flight_number, source_city, departure_time, stops,
	arrival_time, destination_city, class, duration, days_left, price`

// stopCeilingExpr maps the categorical stops label to its numeric
// ceiling inside SQL, lowercased like the in-memory mapping; unknown
// labels fall through to 2, the same pessimistic default the filter
// applies.
const stopCeilingExpr = `(CASE LOWER(stops) WHEN 'zero' THEN 0 WHEN 'one' THEN 1 ELSE 2 END)`

type FlightRepo struct {
	db *sqlx.DB
}

func NewFlightRepo(db *sqlx.DB) *FlightRepo {
	return &FlightRepo{db: db}
}

// List returns flights matching the filter, pushing every set field
// into the WHERE clause. Rows come back ordered by id so downstream
// tie-breaking is deterministic.
func (r *FlightRepo) List(ctx context.Context, filter entities.FlightFilter) ([]entities.Flight, error) {
	var (
		conds []string
		args  []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.SourceCity != "" {
		add("source_city = $%d", filter.SourceCity)
	}
	if filter.DestinationCity != "" {
		add("destination_city = $%d", filter.DestinationCity)
	}
	if filter.MaxStops != nil {
		add(stopCeilingExpr+" <= $%d", *filter.MaxStops)
	}
	if filter.Class != "" {
		add("class = $%d", string(filter.Class))
	}
	if filter.PreferredDeparture != "" {
		add("departure_time = $%d", string(filter.PreferredDeparture))
	}
	if filter.LatestArrival != "" {
		add("arrival_time = $%d", string(filter.LatestArrival))
	}
	if filter.MaxDurationHours > 0 {
		add("duration <= $%d", filter.MaxDurationHours)
	}
	if filter.MaxPrice > 0 {
		add("price <= $%d", filter.MaxPrice)
	}

	query := "SELECT " + flightColumns + " FROM flights"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	flights := make([]entities.Flight, 0)
	if err := r.db.SelectContext(ctx, &flights, query, args...); err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}
	return flights, nil
}

// ReplaceAll clears the flights table and inserts the given rows in
// batches inside one transaction.
func (r *FlightRepo) ReplaceAll(ctx context.Context, flights []entities.Flight) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, constants.DeleteAllFlights); err != nil {
		return fmt.Errorf("clear flights: %w", err)
	}

	const batchSize = 500
	for start := 0; start < len(flights); start += batchSize {
		end := start + batchSize
		if end > len(flights) {
			end = len(flights)
		}
		if _, err := tx.NamedExecContext(ctx, constants.InsertFlight, flights[start:end]); err != nil {
			return fmt.Errorf("insert flights batch at %d: %w", start, err)
		}
	}

	return tx.Commit()
}

// Stats returns the row and distinct-city counts.
func (r *FlightRepo) Stats(ctx context.Context) (flights int64, cities int64, err error) {
	if err = r.db.GetContext(ctx, &flights, constants.CountFlights); err != nil {
		return 0, 0, fmt.Errorf("count flights: %w", err)
	}
	if err = r.db.GetContext(ctx, &cities, constants.CountCities); err != nil {
		return 0, 0, fmt.Errorf("count cities: %w", err)
	}
	return flights, cities, nil
}
