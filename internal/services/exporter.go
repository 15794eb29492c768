package services

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/Lllllllleong/pdfocrflow/internal/models"
)

var csvHeader = []string{"Filename", "Pages", "Extracted Text"}

// ExportCSV serializes the reports into a character-separated table with a
// header row, one row per document in processing order. The text column holds
// the truncated preview. The exporter is a pure projection; it never mutates
// the reports or re-invokes extraction.
func ExportCSV(reports []models.Report) (string, error) {
	var buf strings.Builder
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range reports {
		if err := w.Write([]string{r.Filename, strconv.Itoa(r.Pages), r.Preview}); err != nil {
			return "", fmt.Errorf("failed to write CSV row for %s: %w", r.Filename, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to finalize CSV: %w", err)
	}
	return buf.String(), nil
}

// FullTextView renders one block per document using the authoritative,
// untruncated full text. Truncation markers only ever exist on previews, never
// on the full text, so nothing is stripped here.
func FullTextView(reports []models.Report) string {
	var b strings.Builder
	for i, r := range reports {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "===== %s =====\n", r.Filename)
		b.WriteString(r.FullText)
	}
	return b.String()
}

// StripTruncationMarker removes the trailing truncation marker from a reused
// preview field. It must never be applied to the authoritative full text.
func StripTruncationMarker(preview string) string {
	return strings.TrimSuffix(preview, models.TruncationMarker)
}
