package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"meridian/pkg/llm"
)

// GeminiClient generates schema-constrained workspace updates through the
// Gemini API.
type GeminiClient struct {
	client          *genai.Client
	model           string
	schema          *genai.Schema
	temperature     float32
	maxOutputTokens int32
}

// NewGeminiClient creates a Gemini client for a single model and API key.
func NewGeminiClient(apiKey, model string, temperature float64, maxOutputTokens int) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	schema, err := llm.GeminiSchema()
	if err != nil {
		return nil, err
	}

	return &GeminiClient{
		client:          client,
		model:           model,
		schema:          schema,
		temperature:     float32(temperature),
		maxOutputTokens: int32(maxOutputTokens),
	}, nil
}

func (g *GeminiClient) Provider() string {
	return "gemini"
}

// GenerateStructured implements llm.StructuredClient. The response schema
// and JSON MIME type push conformance into the decoding loop; the returned
// bytes are still revalidated server-side before anything trusts them.
func (g *GeminiClient) GenerateStructured(ctx context.Context, systemInstructions, contextualPrompt string) ([]byte, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstructions}},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema:   g.schema,
		Temperature:      genai.Ptr(g.temperature),
		MaxOutputTokens:  g.maxOutputTokens,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(contextualPrompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("gemini generate: empty candidate")
	}
	return []byte(text), nil
}

// IsTransientError implements llm.StructuredClient.
func (g *GeminiClient) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())

	// 503 Service Unavailable / model overloaded
	if strings.Contains(errMsg, "503") || strings.Contains(errMsg, "overloaded") {
		return true
	}
	// 429 Too Many Requests (rate limit)
	if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "resource exhausted") {
		return true
	}
	// 500 Internal Error (occasional upstream crashes)
	if strings.Contains(errMsg, "500") || strings.Contains(errMsg, "internal error") {
		return true
	}
	return false
}
