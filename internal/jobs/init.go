package jobs

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/andysilva90/flight-fare-optimizer/internal/services"
)

// InitializeJobs initializes and starts all background jobs
func InitializeJobs(ctx context.Context, dataset *services.DatasetService) *DatasetRefreshJob {
	path := os.Getenv("DATASET_PATH")
	if path == "" {
		log.Printf("[Jobs] DATASET_PATH not set, dataset refresh job disabled")
		return nil
	}

	interval := 6 * time.Hour
	if raw := os.Getenv("DATASET_REFRESH_HOURS"); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			interval = time.Duration(hours) * time.Hour
		}
	}

	refreshJob := NewDatasetRefreshJob(dataset, path)

	// Load once at startup, then on the schedule
	go func() {
		if err := refreshJob.Run(ctx); err != nil {
			log.Printf("[Jobs] Initial dataset load failed: %v", err)
		}
		refreshJob.RunScheduled(ctx, interval)
	}()

	return refreshJob
}
