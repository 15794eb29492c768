package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Lllllllleong/pdfocrflow/internal/models"
	"golang.org/x/sync/errgroup"
)

// MaxDocuments caps the number of PDFs accepted in one processing run.
const MaxDocuments = 5

const defaultPageWorkers = 4

// InputCapError rejects a batch that exceeds MaxDocuments. No work is
// performed for a rejected batch.
type InputCapError struct {
	Submitted int
}

func (e *InputCapError) Error() string {
	return fmt.Sprintf("too many documents: %d submitted, maximum is %d", e.Submitted, MaxDocuments)
}

// Pipeline orchestrates one processing run: rasterize each upload, extract
// every page, and aggregate per-document reports.
type Pipeline struct {
	rasterizer  Rasterizer
	extractor   PageExtractor
	pageWorkers int
}

// NewPipeline creates a Pipeline. A non-positive pageWorkers selects the
// default concurrency for page extraction.
func NewPipeline(rasterizer Rasterizer, extractor PageExtractor, pageWorkers int) *Pipeline {
	if pageWorkers <= 0 {
		pageWorkers = defaultPageWorkers
	}
	return &Pipeline{
		rasterizer:  rasterizer,
		extractor:   extractor,
		pageWorkers: pageWorkers,
	}
}

// Run processes the uploads in order with the same format template applied to
// every page of every document. A document whose bytes cannot be parsed is
// recorded as a failure and excluded from the reports; remaining documents
// continue. A failed page contributes its error text to the aggregation and
// never halts subsequent pages or documents.
func (p *Pipeline) Run(ctx context.Context, uploads []models.Upload, formatTemplate string) (*models.BatchResult, error) {
	if len(uploads) > MaxDocuments {
		return nil, &InputCapError{Submitted: len(uploads)}
	}

	result := &models.BatchResult{}
	for _, upload := range uploads {
		logCtx := slog.With("filename", upload.Filename)
		logCtx.Info("Processing document.")

		pages, err := p.rasterizer.Render(upload.Data)
		if err != nil {
			logCtx.Error("Failed to rasterize document", "error", err)
			result.Failures = append(result.Failures, models.DocumentFailure{
				Filename: upload.Filename,
				Reason:   err.Error(),
			})
			continue
		}

		doc := models.Document{Filename: upload.Filename, Pages: pages}
		results := p.extractPages(ctx, doc, formatTemplate)
		fullText := joinPages(results)

		result.Reports = append(result.Reports, models.Report{
			Filename: doc.Filename,
			Pages:    len(doc.Pages),
			FullText: fullText,
			Preview:  models.BuildPreview(fullText),
		})
		logCtx.Info("Document complete.", "pageCount", len(doc.Pages))
	}
	return result, nil
}

// extractPages runs extraction across a document's pages with a bounded worker
// group. Results land in an indexed slice so assembly preserves native page
// order regardless of completion order.
func (p *Pipeline) extractPages(ctx context.Context, doc models.Document, formatTemplate string) []models.ExtractionResult {
	results := make([]models.ExtractionResult, len(doc.Pages))

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(p.pageWorkers)

	for i, page := range doc.Pages {
		eg.Go(func() error {
			label := fmt.Sprintf("%s - Page %d", doc.Filename, page.Number)
			text, err := p.extractor.ExtractPage(gctx, page.PNG, BuildPrompt(label, formatTemplate))
			if err != nil {
				slog.Warn("Page extraction failed, embedding error text.",
					"filename", doc.Filename,
					"page", page.Number,
					"error", err,
				)
			}
			results[i] = models.ExtractionResult{PageNumber: page.Number, Text: text, Err: err}
			// Extraction failures become error-bearing results, never group errors.
			return nil
		})
	}
	_ = eg.Wait()
	return results
}

// joinPages concatenates page texts with a boundary marker between them: page
// one first, then "--- Page <n> ---" ahead of each subsequent page. A P-page
// document therefore carries exactly P-1 markers in ascending order.
func joinPages(results []models.ExtractionResult) string {
	var b strings.Builder
	for i, res := range results {
		if i > 0 {
			fmt.Fprintf(&b, "\n\n--- Page %d ---\n", res.PageNumber)
		}
		b.WriteString(res.Display())
	}
	return b.String()
}
