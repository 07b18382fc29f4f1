package jobs

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/andysilva90/flight-fare-optimizer/internal/services"
)

// DatasetRefreshJob re-imports the flight dataset from a CSV file on
// disk. Dataset exports are replaced wholesale, so a periodic reload
// keeps the stored flights in step with the file the operator mounts.
type DatasetRefreshJob struct {
	dataset *services.DatasetService
	path    string
}

// NewDatasetRefreshJob creates a new dataset refresh job instance
func NewDatasetRefreshJob(dataset *services.DatasetService, path string) *DatasetRefreshJob {
	return &DatasetRefreshJob{
		dataset: dataset,
		path:    path,
	}
}

// Run executes one refresh from the configured CSV file
func (j *DatasetRefreshJob) Run(ctx context.Context) error {
	start := time.Now()
	log.Printf("[DatasetRefreshJob] Starting dataset refresh from %s", j.path)

	f, err := os.Open(j.path)
	if err != nil {
		log.Printf("[DatasetRefreshJob] Error opening dataset file: %v", err)
		return fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer f.Close()

	result, err := j.dataset.Import(ctx, f, j.path)
	if err != nil {
		log.Printf("[DatasetRefreshJob] Error importing dataset: %v", err)
		return fmt.Errorf("failed to import dataset: %w", err)
	}

	log.Printf("[DatasetRefreshJob] Completed dataset refresh in %s. Imported %d rows, skipped %d",
		time.Since(start).Truncate(time.Millisecond), result.Imported, result.Skipped)

	return nil
}

// RunScheduled runs the refresh on a fixed interval until ctx is done
func (j *DatasetRefreshJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[DatasetRefreshJob] Stopping scheduled refresh")
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				log.Printf("[DatasetRefreshJob] Scheduled run failed: %v", err)
			}
		}
	}
}
