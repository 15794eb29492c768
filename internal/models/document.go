package models

import (
	"fmt"
	"strings"
)

// PreviewLimit is the maximum number of characters shown in a report preview.
const PreviewLimit = 500

// TruncationMarker is appended to a preview that was cut at PreviewLimit.
const TruncationMarker = "..."

// Upload is one submitted PDF: a filename paired with its raw byte stream.
type Upload struct {
	Filename string
	Data     []byte
}

// Document owns the ordered pages rendered from one upload. Page order is
// stable and matches the PDF's native page order.
type Document struct {
	Filename string
	Pages    []Page
}

// Page is a single rendered page. Number is 1-based. PNG holds the losslessly
// encoded raster image.
type Page struct {
	Number int
	PNG    []byte
}

// ExtractionResult pairs a page with its extracted text, or with the failure
// that occurred while extracting it. Results are immutable once produced.
type ExtractionResult struct {
	PageNumber int
	Text       string
	Err        error
}

// Display renders the result as user-visible text. A failed extraction is
// rendered as clearly marked error text so aggregation treats every page
// uniformly and one page's failure never blocks the rest of the batch.
func (r ExtractionResult) Display() string {
	if r.Err != nil {
		return fmt.Sprintf("Error processing image: %v", r.Err)
	}
	return r.Text
}

// Report is the finalized, per-document aggregation. It holds copies of the
// extracted text; later mutation of pages cannot affect a produced report.
type Report struct {
	Filename string
	Pages    int
	FullText string
	Preview  string
}

// DocumentFailure flags a document that was excluded from the reports because
// its byte stream could not be parsed as a PDF.
type DocumentFailure struct {
	Filename string
	Reason   string
}

// BatchResult is the outcome of one processing run.
type BatchResult struct {
	Reports  []Report
	Failures []DocumentFailure
}

// BuildPreview projects full text into its preview form: unchanged when it
// fits within PreviewLimit characters, otherwise the first PreviewLimit
// characters followed by the truncation marker. The projection is idempotent;
// an already-truncated preview passes through unchanged.
func BuildPreview(full string) string {
	runes := []rune(full)
	if len(runes) <= PreviewLimit {
		return full
	}
	if len(runes) == PreviewLimit+len(TruncationMarker) && strings.HasSuffix(full, TruncationMarker) {
		return full
	}
	return string(runes[:PreviewLimit]) + TruncationMarker
}
