package repositories

import (
	"context"

	models "github.com/andysilva90/flight-fare-optimizer/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// DatasetImportRepo tracks CSV import runs.
type DatasetImportRepo struct {
	db *gormlib.DB
}

func NewDatasetImportRepo(db *gormlib.DB) *DatasetImportRepo {
	return &DatasetImportRepo{db: db}
}

func (r *DatasetImportRepo) Create(ctx context.Context, imp *models.DatasetImport) error {
	return r.db.WithContext(ctx).Create(imp).Error
}

// Latest returns the most recent import, or nil when none exist.
func (r *DatasetImportRepo) Latest(ctx context.Context) (*models.DatasetImport, error) {
	var imp models.DatasetImport

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		First(&imp).Error

	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &imp, nil
}

func (r *DatasetImportRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.DatasetImport{}).Count(&count).Error
	return count, err
}
