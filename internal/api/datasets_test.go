package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andysilva90/flight-fare-optimizer/internal/models/dtos"
)

type mockDataset struct {
	result  *dtos.ImportResultDto
	stats   *dtos.DatasetStatsDto
	err     error
	source  string
	payload string
}

func (m *mockDataset) Import(_ context.Context, reader io.Reader, source string) (*dtos.ImportResultDto, error) {
	data, _ := io.ReadAll(reader)
	m.payload = string(data)
	m.source = source
	return m.result, m.err
}

func (m *mockDataset) Stats(_ context.Context) (*dtos.DatasetStatsDto, error) {
	return m.stats, m.err
}

func TestImportDatasetHandler_RawBody(t *testing.T) {
	svc := &mockDataset{result: &dtos.ImportResultDto{Imported: 3, ImportID: "abc"}}
	handler := ImportDatasetHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/data/import", strings.NewReader("csv,data"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.source != "upload" || svc.payload != "csv,data" {
		t.Errorf("unexpected import call: source=%q payload=%q", svc.source, svc.payload)
	}
}

func TestImportDatasetHandler_MultipartFile(t *testing.T) {
	svc := &mockDataset{result: &dtos.ImportResultDto{Imported: 1}}
	handler := ImportDatasetHandler(svc)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "flights.csv")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte("csv,data")); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/data/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.source != "flights.csv" {
		t.Errorf("expected filename as source, got %q", svc.source)
	}
}

func TestImportDatasetHandler_ImportError(t *testing.T) {
	svc := &mockDataset{err: errors.New("dataset validation failed")}
	handler := ImportDatasetHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/data/import", strings.NewReader("bad"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestDatasetStatsHandler(t *testing.T) {
	svc := &mockDataset{stats: &dtos.DatasetStatsDto{Flights: 300153, Cities: 6}}
	handler := DatasetStatsHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/data/stats", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
