package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/andysilva90/flight-fare-optimizer/internal/common"
	"github.com/andysilva90/flight-fare-optimizer/internal/constants"
	"github.com/andysilva90/flight-fare-optimizer/internal/logging"
	"github.com/andysilva90/flight-fare-optimizer/internal/metrics"
	"github.com/andysilva90/flight-fare-optimizer/internal/models/dtos"
	models "github.com/andysilva90/flight-fare-optimizer/internal/models/gorm"
)

const statsCacheTTL = time.Minute

// StatsProvider reports aggregate counts over the stored dataset.
type StatsProvider interface {
	Stats(ctx context.Context) (flights int64, cities int64, err error)
}

// ImportHistory reads back recorded import runs.
type ImportHistory interface {
	Latest(ctx context.Context) (*models.DatasetImport, error)
	Count(ctx context.Context) (int64, error)
}

// Loader runs a CSV import end to end.
type Loader interface {
	LoadFromCSV(ctx context.Context, reader io.Reader, source string) (*common.ImportResult, error)
}

// DatasetService wraps dataset imports and statistics.
type DatasetService struct {
	loader  Loader
	stats   StatsProvider
	history ImportHistory
	cache   common.CacheInterface
	metrics *metrics.MetricsRegistry
}

func NewDatasetService(
	loader Loader,
	stats StatsProvider,
	history ImportHistory,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
) *DatasetService {
	return &DatasetService{
		loader:  loader,
		stats:   stats,
		history: history,
		cache:   cache,
		metrics: metricsReg,
	}
}

// Import replaces the stored dataset from a CSV stream and invalidates
// cached solve results, which are stale once the data changes.
func (s *DatasetService) Import(ctx context.Context, reader io.Reader, source string) (*dtos.ImportResultDto, error) {
	result, err := s.loader.LoadFromCSV(ctx, reader, source)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.FlightsImportedTotal.Add(float64(result.Rows))
	}
	s.invalidateCaches()

	return &dtos.ImportResultDto{
		Imported: result.Rows,
		Skipped:  result.Skipped,
		ImportID: result.ImportID,
	}, nil
}

// Stats returns dataset counts plus import history, cached briefly since
// the counts only change on import.
func (s *DatasetService) Stats(ctx context.Context) (*dtos.DatasetStatsDto, error) {
	cacheKey := string(constants.CachePrefixDataStats)
	if s.cache != nil {
		if val, found := s.cache.Get(cacheKey); found {
			if stats, ok := val.(*dtos.DatasetStatsDto); ok {
				return stats, nil
			}
		}
	}

	flights, cities, err := s.stats.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("dataset stats: %w", err)
	}

	stats := &dtos.DatasetStatsDto{
		Flights: flights,
		Cities:  cities,
	}

	if s.history != nil {
		latest, err := s.history.Latest(ctx)
		if err != nil {
			return nil, fmt.Errorf("latest import: %w", err)
		}
		if latest != nil {
			stats.LastImport = latest.CreatedAt.Format(time.RFC3339)
		}
		count, err := s.history.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("import count: %w", err)
		}
		stats.ImportCount = count
	}

	if s.cache != nil {
		s.cache.Set(cacheKey, stats, statsCacheTTL)
	}
	return stats, nil
}

// invalidateCaches drops everything derived from the replaced dataset:
// the stats snapshot, every cached candidate set, and every cached
// solve result.
func (s *DatasetService) invalidateCaches() {
	if s.cache == nil {
		return
	}
	s.cache.Delete(string(constants.CachePrefixDataStats))

	for _, prefix := range []constants.CachePrefix{
		constants.CachePrefixCandidates,
		constants.CachePrefixItinerary,
	} {
		if err := s.cache.DeleteByPrefix(string(prefix)); err != nil {
			logging.Warn("Cache invalidation failed",
				"prefix", string(prefix),
				"error", err.Error(),
			)
		}
	}
}
