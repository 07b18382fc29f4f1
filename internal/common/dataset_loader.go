package common

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/andysilva90/flight-fare-optimizer/internal/logging"
	"github.com/andysilva90/flight-fare-optimizer/internal/models/entities"
	models "github.com/andysilva90/flight-fare-optimizer/internal/models/gorm"

	"github.com/google/uuid"
)

// FlightStore is the subset of the flight repository the loader needs.
type FlightStore interface {
	ReplaceAll(ctx context.Context, flights []entities.Flight) error
}

// ImportRecorder persists a record of each completed import.
type ImportRecorder interface {
	Create(ctx context.Context, record *models.DatasetImport) error
}

// DatasetLoaderService handles loading flight data from CSV exports.
//
// The expected layout matches the Clean_Dataset.csv distribution: a leading
// unnamed index column followed by airline, flight, source_city,
// departure_time, stops, arrival_time, destination_city, class, duration,
// days_left and price. Columns are resolved by header name, so extra columns
// and reordered files load fine.
type DatasetLoaderService struct {
	flights FlightStore
	imports ImportRecorder
}

// ImportResult summarizes a completed dataset import.
type ImportResult struct {
	ImportID string
	Rows     int
	Skipped  int
}

func NewDatasetLoaderService(flights FlightStore, imports ImportRecorder) *DatasetLoaderService {
	return &DatasetLoaderService{flights: flights, imports: imports}
}

// LoadFromCSV parses flight rows from a CSV reader, validates them and
// replaces the stored dataset. Rows with unparsable numeric fields are
// skipped and counted; structural problems in the surviving rows (duplicate
// ids, blank cities, negative prices) fail the whole import.
func (s *DatasetLoaderService) LoadFromCSV(ctx context.Context, reader io.Reader, source string) (*ImportResult, error) {
	log := logging.GetLogger()

	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"airline", "flight", "source_city", "destination_city", "price"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("CSV is missing required column %q", required)
		}
	}

	field := func(record []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var flights []entities.Flight
	skipped := 0
	rowNum := 0

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		rowNum++

		price, err := strconv.ParseFloat(field(record, "price"), 64)
		if err != nil {
			skipped++
			continue
		}

		// duration and days_left are optional in some exports
		duration, _ := strconv.ParseFloat(field(record, "duration"), 64)
		daysLeft, _ := strconv.Atoi(field(record, "days_left"))

		id := int64(rowNum)
		if raw := field(record, "id"); raw != "" {
			if parsed, perr := strconv.ParseInt(raw, 10, 64); perr == nil {
				id = parsed
			}
		} else if raw := field(record, ""); raw != "" {
			// pandas writes the index as an unnamed first column
			if parsed, perr := strconv.ParseInt(raw, 10, 64); perr == nil {
				id = parsed
			}
		}

		flights = append(flights, entities.Flight{
			ID:              id,
			Airline:         field(record, "airline"),
			FlightNumber:    field(record, "flight"),
			SourceCity:      field(record, "source_city"),
			DestinationCity: field(record, "destination_city"),
			DepartureTime:   entities.TimeBucket(field(record, "departure_time")),
			ArrivalTime:     entities.TimeBucket(field(record, "arrival_time")),
			Stops:           entities.StopCount(field(record, "stops")),
			Class:           entities.CabinClass(field(record, "class")),
			DurationHours:   duration,
			DaysLeft:        daysLeft,
			Price:           price,
		})
	}

	if len(flights) == 0 {
		return nil, fmt.Errorf("no flight rows found in %s", source)
	}

	if err := entities.ValidateFlights(flights); err != nil {
		return nil, fmt.Errorf("dataset validation failed: %w", err)
	}

	if err := s.flights.ReplaceAll(ctx, flights); err != nil {
		return nil, fmt.Errorf("failed to store flights: %w", err)
	}

	result := &ImportResult{
		ImportID: uuid.New().String(),
		Rows:     len(flights),
		Skipped:  skipped,
	}

	if s.imports != nil {
		record := &models.DatasetImport{
			ID:       result.ImportID,
			Source:   source,
			RowCount: result.Rows,
			Skipped:  result.Skipped,
		}
		if err := s.imports.Create(ctx, record); err != nil {
			log.Warnf("dataset import record not persisted: %v", err)
		}
	}

	log.Infof("Imported %d flights from %s (%d rows skipped)", result.Rows, source, skipped)
	return result, nil
}

// LoadFromFile opens a CSV file on disk and imports it.
func (s *DatasetLoaderService) LoadFromFile(ctx context.Context, path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer f.Close()

	return s.LoadFromCSV(ctx, f, path)
}
