package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/andysilva90/flight-fare-optimizer/internal/common"
	"github.com/andysilva90/flight-fare-optimizer/internal/models/dtos"
)

// DatasetManager is the dataset surface the admin handlers use.
type DatasetManager interface {
	Import(ctx context.Context, reader io.Reader, source string) (*dtos.ImportResultDto, error)
	Stats(ctx context.Context) (*dtos.DatasetStatsDto, error)
}

const maxImportBytes = 64 << 20 // 64 MiB upload cap

// ImportDatasetHandler handles POST /api/v1/admin/data/import. The body
// is either a multipart form with a "file" field or a raw CSV stream.
func ImportDatasetHandler(svc DatasetManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var (
			reader io.Reader = http.MaxBytesReader(w, r.Body, maxImportBytes)
			source           = "upload"
		)

		if err := r.ParseMultipartForm(maxImportBytes); err == nil {
			file, header, ferr := r.FormFile("file")
			if ferr != nil {
				common.RespondError(w, initTime, ferr, "", http.StatusBadRequest)
				return
			}
			defer file.Close()
			reader = file
			source = header.Filename
		}

		result, err := svc.Import(r.Context(), reader, source)
		if err != nil {
			common.RespondError(w, initTime, err, "", http.StatusUnprocessableEntity)
			return
		}

		common.RespondSuccess(w, initTime, "Dataset imported", result, http.StatusCreated)
	}
}

// DatasetStatsHandler handles GET /api/v1/admin/data/stats
func DatasetStatsHandler(svc DatasetManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		stats, err := svc.Stats(r.Context())
		if err != nil {
			common.RespondError(w, initTime, err, "", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Dataset stats", stats)
	}
}
