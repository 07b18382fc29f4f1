package api

import (
	"os"

	"github.com/andysilva90/flight-fare-optimizer/internal/common"
	"github.com/andysilva90/flight-fare-optimizer/internal/db"
	"github.com/andysilva90/flight-fare-optimizer/internal/db/repositories"
	"github.com/andysilva90/flight-fare-optimizer/internal/logging"
	"github.com/andysilva90/flight-fare-optimizer/internal/metrics"
	"github.com/andysilva90/flight-fare-optimizer/internal/services"
)

type Repositories struct {
	Flights *repositories.FlightRepo
	Keys    *repositories.KeysRepo
	Imports *repositories.DatasetImportRepo
}

type Services struct {
	Cache     common.CacheInterface
	Loader    *common.DatasetLoaderService
	Signer    *common.ShareSignerService
	Itinerary *services.ItineraryService
	Dataset   *services.DatasetService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
}

// InitDependencies wires repositories and services against the global
// database handles. REDIS_ENABLED=true swaps the in-memory cache for
// Redis so several instances share solve results and share-token state.
func InitDependencies(metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	repos := &Repositories{
		Flights: repositories.NewFlightRepo(db.DB),
		Keys:    repositories.NewApiKeysRepo(db.DB),
		Imports: repositories.NewDatasetImportRepo(db.PgDB),
	}

	var cacheSvc common.CacheInterface
	if os.Getenv("REDIS_ENABLED") == "true" {
		redisCache, err := common.NewRedisCacheService()
		if err != nil {
			logging.Warn("Redis unavailable, falling back to in-memory cache", "error", err.Error())
			cacheSvc = common.NewCacheService(300, 600)
		} else {
			cacheSvc = redisCache
		}
	} else {
		cacheSvc = common.NewCacheService(300, 600)
	}

	secret := os.Getenv("SHARE_TOKEN_SECRET")
	if secret == "" {
		secret = "dev-share-secret"
	}

	loaderSvc := common.NewDatasetLoaderService(repos.Flights, repos.Imports)

	svcs := &Services{
		Cache:     cacheSvc,
		Loader:    loaderSvc,
		Signer:    common.NewShareSignerService([]byte(secret), cacheSvc),
		Itinerary: services.NewItineraryService(repos.Flights, cacheSvc, metricsReg),
		Dataset:   services.NewDatasetService(loaderSvc, repos.Flights, repos.Imports, cacheSvc, metricsReg),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
	}, nil
}
