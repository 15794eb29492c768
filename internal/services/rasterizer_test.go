package services

import (
	"bytes"
	"fmt"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalPDF builds a valid single-page PDF (200x100pt media box, no content
// stream) with a correct xref table.
func minimalPDF(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	offsets := make([]int, 4)
	buf.WriteString("%PDF-1.4\n")

	write := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}
	write(1, "<< /Type /Catalog /Pages 2 0 R >>")
	write(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	write(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 200 100] /Resources << >> >>")

	xrefStart := buf.Len()
	buf.WriteString("xref\n0 4\n0000000000 65535 f \n")
	for i := 1; i <= 3; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 4 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xrefStart)
	return buf.Bytes()
}

func TestFitzRasterizerRendersPagesAtDoubleScale(t *testing.T) {
	r := NewFitzRasterizer()

	pages, err := r.Render(minimalPDF(t))
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, 1, pages[0].Number)

	img, err := png.Decode(bytes.NewReader(pages[0].PNG))
	require.NoError(t, err)
	// 200x100pt page at 2x the 72 DPI native scale.
	assert.InDelta(t, 400, img.Bounds().Dx(), 1)
	assert.InDelta(t, 200, img.Bounds().Dy(), 1)
}

func TestFitzRasterizerEmptyInput(t *testing.T) {
	r := NewFitzRasterizer()

	_, err := r.Render(nil)
	var parseErr *DocumentParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestFitzRasterizerMalformedInput(t *testing.T) {
	r := NewFitzRasterizer()

	_, err := r.Render([]byte("this is definitely not a pdf"))
	var parseErr *DocumentParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestDocumentParseErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("boom")
	err := &DocumentParseError{Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "invalid PDF document")
}
