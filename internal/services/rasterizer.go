package services

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/Lllllllleong/pdfocrflow/internal/models"
	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// renderDPI doubles the 72 DPI native page size (2x linear scale).
const renderDPI = 144

// DocumentParseError reports a byte stream that could not be read as a PDF.
type DocumentParseError struct {
	Err error
}

func (e *DocumentParseError) Error() string {
	return fmt.Sprintf("invalid PDF document: %v", e.Err)
}

func (e *DocumentParseError) Unwrap() error { return e.Err }

// Rasterizer converts raw PDF bytes into an ordered sequence of page images.
// A zero-page PDF yields an empty slice, not an error.
type Rasterizer interface {
	Render(data []byte) ([]models.Page, error)
}

// FitzRasterizer renders pages in memory with MuPDF after a relaxed pdfcpu
// validation pass. No intermediate files are written; the decoder handle is
// released on every exit path.
type FitzRasterizer struct{}

func NewFitzRasterizer() *FitzRasterizer {
	return &FitzRasterizer{}
}

func (r *FitzRasterizer) Render(data []byte) ([]models.Page, error) {
	if len(data) == 0 {
		return nil, &DocumentParseError{Err: fmt.Errorf("empty byte stream")}
	}
	if err := validatePDF(data); err != nil {
		return nil, &DocumentParseError{Err: err}
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, &DocumentParseError{Err: err}
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	pages := make([]models.Page, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		img, err := doc.ImageDPI(i, renderDPI)
		if err != nil {
			return nil, fmt.Errorf("failed to render page %d: %w", i+1, err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode page %d: %w", i+1, err)
		}
		pages = append(pages, models.Page{Number: i + 1, PNG: buf.Bytes()})
	}
	return pages, nil
}

func validatePDF(data []byte) error {
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	return api.Validate(bytes.NewReader(data), cfg)
}
