package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/Lllllllleong/pdfocrflow/internal/gcp"
	"github.com/Lllllllleong/pdfocrflow/internal/models"
	"github.com/Lllllllleong/pdfocrflow/internal/services"
)

var (
	pipelineInstance *services.Pipeline
	once             sync.Once
	initErr          error
)

func init() {
	// --- Set up structured logging ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	functions.HTTP("HandleOCRBatch", handleOCRBatch)
}

// main is required by the Go Functions Framework.
func main() {}

// newPipeline wires the production rasterizer and extractor from environment
// configuration. The credential is an opaque secret and is never logged.
func newPipeline(ctx context.Context) (*services.Pipeline, error) {
	projectID := gcp.GetEnv("PROJECT_ID", "")
	if projectID == "" {
		return nil, fmt.Errorf("PROJECT_ID environment variable must be set")
	}

	vertexClient, err := gcp.NewVertexClient(ctx,
		projectID,
		gcp.GetEnv("VERTEX_AI_REGION", "us-central1"),
		gcp.GetEnv("OCR_MODEL", "gemini-1.5-pro"),
		gcp.GetEnv("VERTEX_AI_CREDENTIALS_JSON", ""),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex client: %w", err)
	}

	extractor := services.NewVertexExtractor(vertexClient, 0)
	return services.NewPipeline(services.NewFitzRasterizer(), extractor, 0), nil
}

// handleOCRBatch is the HTTP handler for one processing run.
func handleOCRBatch(w http.ResponseWriter, r *http.Request) {
	// Use sync.Once for robust, one-time initialization of clients.
	once.Do(func() {
		pipelineInstance, initErr = newPipeline(context.Background())
	})
	if initErr != nil {
		slog.Error("Critical: pipeline initialization failed", "error", initErr)
		http.Error(w, "Internal Server Error: failed to initialize service", http.StatusInternalServerError)
		return
	}

	var req models.OCRBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Could not decode request body", "error", err)
		http.Error(w, "Bad Request: could not parse JSON", http.StatusBadRequest)
		return
	}

	uploads := make([]models.Upload, 0, len(req.Files))
	for _, f := range req.Files {
		uploads = append(uploads, models.Upload{Filename: f.Filename, Data: f.Data})
	}

	batch, err := pipelineInstance.Run(r.Context(), uploads, req.FormatTemplate)
	if err != nil {
		var capErr *services.InputCapError
		if errors.As(err, &capErr) {
			http.Error(w, capErr.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("Processing failed", "error", err)
		http.Error(w, "Internal Server Error: processing failed", http.StatusInternalServerError)
		return
	}

	csvOut, err := services.ExportCSV(batch.Reports)
	if err != nil {
		slog.Error("Failed to export CSV", "error", err)
		http.Error(w, "Internal Server Error: failed to export results", http.StatusInternalServerError)
		return
	}

	res := models.OCRBatchResponse{
		Status: "success",
		CSV:    csvOut,
	}
	for _, report := range batch.Reports {
		res.Reports = append(res.Reports, models.ReportPayload{
			Filename: report.Filename,
			Pages:    report.Pages,
			FullText: report.FullText,
			Preview:  report.Preview,
		})
	}
	for _, failure := range batch.Failures {
		res.Failures = append(res.Failures, models.FailurePayload{
			Filename: failure.Filename,
			Reason:   failure.Reason,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		slog.Error("Failed to write response", "error", err)
		http.Error(w, "Internal Server Error: failed to encode response", http.StatusInternalServerError)
	}
}
