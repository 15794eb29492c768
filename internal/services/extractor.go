package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/vertexai/genai"
	"github.com/Lllllllleong/pdfocrflow/internal/gcp"
)

// defaultCallTimeout bounds one model invocation; expiry is a soft failure.
const defaultCallTimeout = 120 * time.Second

// PageExtractor sends one page image and a prompt to the model capability and
// returns the extracted text. Implementations are stateless per call.
type PageExtractor interface {
	ExtractPage(ctx context.Context, pngData []byte, prompt string) (string, error)
}

// VertexExtractor extracts page text with a single-turn multimodal request
// against the pre-configured OCR model.
type VertexExtractor struct {
	vertexClient *gcp.VertexClient
	callTimeout  time.Duration
}

// NewVertexExtractor creates a VertexExtractor. A non-positive callTimeout
// selects the default.
func NewVertexExtractor(vertexClient *gcp.VertexClient, callTimeout time.Duration) *VertexExtractor {
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}
	return &VertexExtractor{
		vertexClient: vertexClient,
		callTimeout:  callTimeout,
	}
}

// ExtractPage invokes the model with the prompt text and the PNG image bytes.
// Failures are returned to the caller; the orchestrator converts them into
// error-bearing results so the rest of the batch keeps processing.
func (e *VertexExtractor) ExtractPage(ctx context.Context, pngData []byte, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.callTimeout)
	defer cancel()

	imagePart := genai.Blob{
		MIMEType: "image/png",
		Data:     pngData,
	}
	resp, err := e.vertexClient.OCRModel.GenerateContent(callCtx, genai.Text(prompt), imagePart)
	if err != nil {
		return "", fmt.Errorf("failed to generate content from gemini: %w", err)
	}

	text := extractResponseText(resp)
	if text == "" {
		return "", fmt.Errorf("model response contained no text")
	}
	return text, nil
}

// extractResponseText parses the model's response and robustly extracts text
// content, concatenating multiple text parts and stripping code fences.
func extractResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return ""
	}

	var contentBuilder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			contentBuilder.WriteString(string(txt))
		}
	}

	contentStr := strings.TrimSpace(contentBuilder.String())
	contentStr = strings.TrimPrefix(contentStr, "```text")
	contentStr = strings.TrimPrefix(contentStr, "```")
	contentStr = strings.TrimSuffix(contentStr, "```")
	return strings.TrimSpace(contentStr)
}
