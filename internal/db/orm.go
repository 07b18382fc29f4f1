package db

import (
	"fmt"

	models "github.com/andysilva90/flight-fare-optimizer/internal/models/gorm"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var PgDB *gorm.DB

// InitORM opens the GORM connection used for import bookkeeping.
// driver is "postgres" (dsn = connection string) or "sqlite"
// (dsn = file path, ":memory:" for throwaway local runs).
func InitORM(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect via gorm (%s): %w", driver, err)
	}

	if err := db.AutoMigrate(&models.DatasetImport{}); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	PgDB = db
	return db, nil
}
