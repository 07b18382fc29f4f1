package gorm

import "time"

// DatasetImport records one CSV import of the flight dataset.
type DatasetImport struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	Source    string    `gorm:"not null"` // file name or "upload"
	RowCount  int       `gorm:"not null"`
	Skipped   int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (DatasetImport) TableName() string {
	return "dataset_imports"
}
