package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Lllllllleong/pdfocrflow/internal/gcp"
	"github.com/Lllllllleong/pdfocrflow/internal/models"
	"github.com/Lllllllleong/pdfocrflow/internal/services"
	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(context.Background()); err != nil {
		slog.Error("ocr-batch failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	templatePath := flag.String("template", "", "path to a structured format template file")
	csvPath := flag.String("csv", "ocr_results.csv", "output path for the tabular report")
	textPath := flag.String("text", "", "optional output path for the full text view")
	workers := flag.Int("workers", 0, "concurrent page extractions per document (default 4)")
	flag.Parse()

	pdfPaths := flag.Args()
	if len(pdfPaths) == 0 {
		return fmt.Errorf("usage: ocr-batch [flags] file.pdf [file.pdf ...] (max %d files)", services.MaxDocuments)
	}

	formatTemplate := ""
	if *templatePath != "" {
		data, err := os.ReadFile(*templatePath)
		if err != nil {
			return fmt.Errorf("failed to read template file: %w", err)
		}
		formatTemplate = string(data)
	}

	uploads := make([]models.Upload, 0, len(pdfPaths))
	for _, path := range pdfPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		uploads = append(uploads, models.Upload{Filename: filepath.Base(path), Data: data})
	}

	projectID := gcp.GetEnv("PROJECT_ID", "")
	if projectID == "" {
		return fmt.Errorf("PROJECT_ID environment variable must be set")
	}
	vertexClient, err := gcp.NewVertexClient(ctx,
		projectID,
		gcp.GetEnv("VERTEX_AI_REGION", "us-central1"),
		gcp.GetEnv("OCR_MODEL", "gemini-1.5-pro"),
		gcp.GetEnv("VERTEX_AI_CREDENTIALS_JSON", ""),
	)
	if err != nil {
		return fmt.Errorf("failed to create vertex client: %w", err)
	}
	defer vertexClient.Close()

	pipeline := services.NewPipeline(
		services.NewFitzRasterizer(),
		services.NewVertexExtractor(vertexClient, 0),
		*workers,
	)

	batch, err := pipeline.Run(ctx, uploads, formatTemplate)
	if err != nil {
		return err
	}

	for _, failure := range batch.Failures {
		slog.Error("Document failed.", "filename", failure.Filename, "reason", failure.Reason)
	}

	csvOut, err := services.ExportCSV(batch.Reports)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*csvPath, []byte(csvOut), 0o644); err != nil {
		return fmt.Errorf("failed to write CSV report: %w", err)
	}
	slog.Info("Wrote tabular report.", "path", *csvPath, "documents", len(batch.Reports))

	if *textPath != "" {
		if err := os.WriteFile(*textPath, []byte(services.FullTextView(batch.Reports)), 0o644); err != nil {
			return fmt.Errorf("failed to write full text view: %w", err)
		}
		slog.Info("Wrote full text view.", "path", *textPath)
	}
	return nil
}
