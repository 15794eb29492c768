package gcp

import (
	"context"
	"fmt"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"
)

// --- OCR Model Prompt ---
const OCRSystemPrompt = "You are an optical character recognition engine. Your task is to read a scanned document page image and transcribe its content faithfully. Accuracy, completeness, and preservation of the document's structure are of utmost importance."

// VertexClient holds the pre-configured generative model for our app.
type VertexClient struct {
	OCRModel   *genai.GenerativeModel
	baseClient *genai.Client
}

// NewVertexClient creates a new client holding the OCR model. credentialJSON
// is an opaque service-account credential; when empty, ambient application
// default credentials are used. The credential is never persisted or logged.
func NewVertexClient(ctx context.Context, projectID, region, modelName, credentialJSON string) (*VertexClient, error) {
	if projectID == "" || region == "" {
		return nil, fmt.Errorf("NewVertexClient: projectID and region cannot be empty")
	}
	if modelName == "" {
		modelName = "gemini-1.5-pro"
	}

	var opts []option.ClientOption
	if credentialJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialJSON)))
	}

	baseClient, err := genai.NewClient(ctx, projectID, region, opts...)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	// --- Configure the OCR model ---
	ocrModel := baseClient.GenerativeModel(modelName)
	ocrModel.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(OCRSystemPrompt)},
	}
	ocrModel.GenerationConfig = genai.GenerationConfig{
		Temperature:     genai.Ptr[float32](0.0), // Low temp for faithful transcription
		MaxOutputTokens: genai.Ptr[int32](4096),
	}
	ocrModel.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockNone},
	}

	return &VertexClient{
		OCRModel:   ocrModel,
		baseClient: baseClient,
	}, nil
}

func (c *VertexClient) Close() error {
	if c.baseClient != nil {
		return c.baseClient.Close()
	}
	return nil
}
